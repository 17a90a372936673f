package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

const (
	SessionMorning     = "morning"
	SessionReplies     = "replies"
	SessionHashtags    = "hashtags"
	SessionExplore     = "explore"
	SessionMaintenance = "maintenance"
	SessionReport      = "report"
	SessionFull        = "full"

	SourceStaleFollows = "stale_follows"

	DefaultSizeJitter = 0.5
)

// Phase is one action type's engagement loop over a candidate stream.
type Phase struct {
	Action ActionType
	Source string

	// Size caps the candidates visited; zero or less is unbounded.
	Size       int
	SizeJitter float64

	// WatchProbability is the chance a permitted candidate is only looked at.
	WatchProbability float64
	WatchFirst       int
	SkipActed        bool

	// Delay overrides the timing table for Action when non-zero.
	Delay DelayRange
}

func (p Phase) Validate() error {
	var errs []error
	if strings.TrimSpace(string(p.Action)) == "" {
		errs = append(errs, errors.New("action is required"))
	}
	if strings.TrimSpace(p.Source) == "" {
		errs = append(errs, errors.New("source is required"))
	}
	if p.SizeJitter < 0 || p.SizeJitter > 1 {
		errs = append(errs, fmt.Errorf("size jitter %.2f outside [0,1]", p.SizeJitter))
	}
	if err := validateProbability("watch probability", p.WatchProbability); err != nil {
		errs = append(errs, err)
	}
	if p.WatchFirst < 0 {
		errs = append(errs, fmt.Errorf("watch_first %d is negative", p.WatchFirst))
	}
	if err := p.Delay.validate("delay"); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// SessionType is a named, ordered bundle of phases. Exempt sessions are never
// randomly skipped and start without jitter.
type SessionType struct {
	Name       string
	Exempt     bool
	PhasePause DelayRange
	Phases     []Phase
}

func (s SessionType) Validate() error {
	var errs []error
	if strings.TrimSpace(s.Name) == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if err := s.PhasePause.validate("phase pause"); err != nil {
		errs = append(errs, err)
	}
	for i, phase := range s.Phases {
		if err := phase.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("phase %d (%s): %w", i, phase.Action, err))
		}
	}
	if len(errs) == 0 {
		return nil
	}

	return fmt.Errorf("session %s: %w", s.Name, errors.Join(errs...))
}

// CandidateSourceSpec configures a named candidate source. Kind is one of
// "file", "command" or "ledger".
type CandidateSourceSpec struct {
	Name          string
	Kind          string
	Path          string
	Command       []string
	OlderThanDays int
}

const (
	SourceKindFile    = "file"
	SourceKindCommand = "command"
	SourceKindLedger  = "ledger"
)

func (s CandidateSourceSpec) Validate() error {
	switch s.Kind {
	case SourceKindFile:
		return nil
	case SourceKindCommand:
		if len(s.Command) == 0 {
			return fmt.Errorf("source %s: command is required", s.Name)
		}
		return nil
	case SourceKindLedger:
		if s.OlderThanDays < 0 {
			return fmt.Errorf("source %s: older_than_days is negative", s.Name)
		}
		return nil
	default:
		return fmt.Errorf("source %s: unsupported kind %q", s.Name, s.Kind)
	}
}

// Policy bundles the static tables for one persona. It is loaded once and
// never mutated during a run.
type Policy struct {
	Quotas   QuotaPolicy
	Warmup   WarmupPolicy
	Timing   TimingPolicy
	Sessions map[string]SessionType
	Sources  map[string]CandidateSourceSpec
}

func DefaultPolicy() Policy {
	return Policy{
		Quotas:   DefaultQuotaPolicy(),
		Warmup:   DefaultWarmupPolicy(),
		Timing:   DefaultTimingPolicy(),
		Sessions: DefaultSessionTypes(),
		Sources:  DefaultCandidateSources(),
	}
}

func (p Policy) Validate() error {
	errs := []error{p.Quotas.Validate(), p.Warmup.Validate(), p.Timing.Validate()}

	var sessionErrs []error
	for _, name := range p.SessionNames() {
		if err := p.Sessions[name].Validate(); err != nil {
			sessionErrs = append(sessionErrs, err)
		}
	}
	errs = append(errs, joinPolicyErrors("sessions", sessionErrs))

	var sourceErrs []error
	for _, spec := range p.Sources {
		if err := spec.Validate(); err != nil {
			sourceErrs = append(sourceErrs, err)
		}
	}
	errs = append(errs, joinPolicyErrors("sources", sourceErrs))

	return errors.Join(errs...)
}

func (p Policy) SessionNames() []string {
	names := make([]string, 0, len(p.Sessions))
	for name := range p.Sessions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func DefaultCandidateSources() map[string]CandidateSourceSpec {
	return map[string]CandidateSourceSpec{
		SourceStaleFollows: {Name: SourceStaleFollows, Kind: SourceKindLedger, OlderThanDays: 3},
	}
}

func DefaultSessionTypes() map[string]SessionType {
	phase := func(action ActionType, source string, size int, watch float64) Phase {
		return Phase{
			Action:           action,
			Source:           source,
			Size:             size,
			SizeJitter:       DefaultSizeJitter,
			WatchProbability: watch,
		}
	}

	replies := phase(ActionReply, "own_comments", 25, 0)
	replies.SkipActed = true
	replies.SizeJitter = 0

	unfollows := phase(ActionUnfollow, SourceStaleFollows, 30, 0)
	unfollows.SizeJitter = 0

	dms := phase(ActionDM, "new_followers", 10, 0)
	dms.SkipActed = true

	morningLikes := phase(ActionLike, "hashtags", 8, 0.3)
	morningLikes.WatchFirst = 1

	hashtagLikes := phase(ActionLike, "hashtags", 12, 0.3)
	hashtagLikes.WatchFirst = 2

	exploreLikes := phase(ActionLike, "explore", 12, 0.35)
	exploreLikes.WatchFirst = 3

	sessions := []SessionType{
		{Name: SessionMorning, Phases: []Phase{
			morningLikes,
			phase(ActionFollow, "hashtag_authors", 4, 0.8),
		}},
		{Name: SessionReplies, Phases: []Phase{replies}},
		{Name: SessionHashtags, Phases: []Phase{
			hashtagLikes,
			phase(ActionComment, "hashtags", 4, 0.9),
			phase(ActionFollow, "hashtag_authors", 6, 0.8),
			phase(ActionStoryView, "hashtag_authors", 6, 0.5),
		}},
		{Name: SessionExplore, Phases: []Phase{
			exploreLikes,
			phase(ActionComment, "explore", 4, 0.92),
		}},
		{Name: SessionMaintenance, Exempt: true, Phases: []Phase{unfollows, dms}},
		{Name: SessionReport, Exempt: true},
		{
			Name:       SessionFull,
			PhasePause: DelayRange{Min: 60 * time.Second, Max: 180 * time.Second},
			Phases: []Phase{
				unfollows,
				replies,
				phase(ActionLike, "hashtags", 15, 0.3),
				phase(ActionComment, "hashtags", 5, 0.9),
				phase(ActionFollow, "hashtag_authors", 6, 0.8),
				phase(ActionStoryView, "hashtag_authors", 6, 0.5),
			},
		},
	}

	out := make(map[string]SessionType, len(sessions))
	for _, session := range sessions {
		out[session.Name] = session
	}

	return out
}
