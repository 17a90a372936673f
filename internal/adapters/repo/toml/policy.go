package toml

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/bnema/pacer/internal/domain"
	toml "github.com/pelletier/go-toml/v2"
)

// LoadPolicy reads a policy file. A missing file yields domain.DefaultPolicy;
// every section left out keeps its default. The result is validated.
func LoadPolicy(path string) (domain.Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultPolicy(), nil
		}
		return domain.Policy{}, fmt.Errorf("read policy file: %w", err)
	}

	policy, err := DecodePolicy(data)
	if err != nil {
		return domain.Policy{}, fmt.Errorf("load policy %s: %w", path, err)
	}

	return policy, nil
}

func DecodePolicy(data []byte) (domain.Policy, error) {
	var file policyFileSchema
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&file); err != nil {
		return domain.Policy{}, fmt.Errorf("%w: decode policy file: %w", domain.ErrInvalidPolicy, err)
	}
	if err := file.validateVersion(); err != nil {
		return domain.Policy{}, fmt.Errorf("%w: %w", domain.ErrInvalidPolicy, err)
	}
	file.applyDefaults()

	policy := domain.DefaultPolicy()
	if err := mergePolicy(&policy, file); err != nil {
		return domain.Policy{}, fmt.Errorf("%w: %w", domain.ErrInvalidPolicy, err)
	}
	if err := policy.Validate(); err != nil {
		return domain.Policy{}, err
	}

	return policy, nil
}

func mergePolicy(policy *domain.Policy, file policyFileSchema) error {
	for action, limit := range file.Quotas {
		policy.Quotas[domain.ParseActionType(action)] = domain.Quota{BaseDailyLimit: limit}
	}

	if file.Warmup != nil {
		stages := make([]domain.WarmupStage, 0, len(file.Warmup.Stages))
		for _, stage := range file.Warmup.Stages {
			stages = append(stages, domain.WarmupStage{MinAgeDays: stage.MinAgeDays, Multiplier: stage.Multiplier})
		}
		policy.Warmup = domain.WarmupPolicy{Stages: stages}
	}

	if file.Timing != nil {
		if err := mergeTiming(&policy.Timing, *file.Timing); err != nil {
			return fmt.Errorf("timing: %w", err)
		}
	}

	for name, source := range file.Sources {
		spec := domain.CandidateSourceSpec{
			Name:    name,
			Kind:    source.Kind,
			Path:    source.Path,
			Command: source.Command,
		}
		if spec.Kind == "" {
			spec.Kind = domain.SourceKindFile
		}
		if source.OlderThanDays != nil {
			spec.OlderThanDays = *source.OlderThanDays
		} else if existing, ok := policy.Sources[name]; ok {
			spec.OlderThanDays = existing.OlderThanDays
		}
		policy.Sources[name] = spec
	}

	names := make([]string, 0, len(file.Sessions))
	for name := range file.Sessions {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		session, err := decodeSessionType(name, file.Sessions[name])
		if err != nil {
			return err
		}
		policy.Sessions[name] = session
	}

	return nil
}

func decodeSessionType(name string, schema sessionTypeSchema) (domain.SessionType, error) {
	session := domain.SessionType{Name: name, Exempt: schema.Exempt}

	if schema.PhasePause != nil {
		pause, err := decodeRange("sessions."+name+".phase_pause", *schema.PhasePause)
		if err != nil {
			return domain.SessionType{}, err
		}
		session.PhasePause = pause
	}

	for i, entry := range schema.Phases {
		phase := domain.Phase{
			Action:           domain.ParseActionType(entry.Action),
			Source:           entry.Source,
			Size:             entry.Size,
			SizeJitter:       domain.DefaultSizeJitter,
			WatchProbability: entry.WatchProbability,
			WatchFirst:       entry.WatchFirst,
			SkipActed:        entry.SkipActed,
		}
		if entry.SizeJitter != nil {
			phase.SizeJitter = *entry.SizeJitter
		}
		if entry.Delay != nil {
			delay, err := decodeRange(fmt.Sprintf("sessions.%s.phases[%d].delay", name, i), *entry.Delay)
			if err != nil {
				return domain.SessionType{}, err
			}
			phase.Delay = delay
		}
		session.Phases = append(session.Phases, phase)
	}

	return session, nil
}

func mergeTiming(timing *domain.TimingPolicy, schema timingSchema) error {
	floats := []struct {
		value  *float64
		target *float64
	}{
		{schema.MicroBreakProbability, &timing.MicroBreakProbability},
		{schema.QuickActionProbability, &timing.QuickActionProbability},
		{schema.SpreadDivisor, &timing.SpreadDivisor},
		{schema.ClampLowFactor, &timing.ClampLowFactor},
		{schema.ClampHighFactor, &timing.ClampHighFactor},
		{schema.SkipCandidateProbability, &timing.SkipCandidateProbability},
		{schema.AbortSessionProbability, &timing.AbortSessionProbability},
		{schema.SkipSessionProbability, &timing.SkipSessionProbability},
	}
	for _, f := range floats {
		if f.value != nil {
			*f.target = *f.value
		}
	}

	ranges := []struct {
		name   string
		value  *durationRangeSchema
		target *domain.DelayRange
	}{
		{"micro_break", schema.MicroBreak, &timing.MicroBreak},
		{"quick_action", schema.QuickAction, &timing.QuickAction},
		{"jitter", schema.Jitter, &timing.Jitter},
		{"startup_jitter", schema.StartupJitter, &timing.StartupJitter},
		{"scroll_pause", schema.ScrollPause, &timing.ScrollPause},
		{"browsing_pause", schema.BrowsingPause, &timing.BrowsingPause},
		{"default_delay", schema.DefaultDelay, &timing.DefaultDelay},
	}
	for _, r := range ranges {
		if r.value == nil {
			continue
		}
		decoded, err := decodeRange(r.name, *r.value)
		if err != nil {
			return err
		}
		*r.target = decoded
	}

	for action, raw := range schema.Delays {
		decoded, err := decodeRange("delays."+action, raw)
		if err != nil {
			return err
		}
		timing.ActionDelays[domain.ParseActionType(action)] = decoded
	}

	if schema.Fatigue != nil {
		bands := make([]domain.FatigueBand, 0, len(schema.Fatigue))
		for _, band := range schema.Fatigue {
			bands = append(bands, domain.FatigueBand{From: band.From, Multiplier: band.Multiplier})
		}
		timing.Fatigue = bands
	}

	if q := schema.QuietHours; q != nil {
		if q.Timezone != "" {
			loc, err := time.LoadLocation(q.Timezone)
			if err != nil {
				return fmt.Errorf("quiet_hours.timezone: %w", err)
			}
			timing.QuietHours.Location = loc
		}
		if q.StartHour != nil {
			timing.QuietHours.StartHour = *q.StartHour
		}
		if q.EndHour != nil {
			timing.QuietHours.EndHour = *q.EndHour
		}
		if q.Multiplier != nil {
			timing.QuietHours.Multiplier = *q.Multiplier
		}
	}

	return nil
}

func decodeRange(name string, schema durationRangeSchema) (domain.DelayRange, error) {
	minDelay, err := parseDurationValue(name+".min", schema.Min)
	if err != nil {
		return domain.DelayRange{}, err
	}
	maxDelay, err := parseDurationValue(name+".max", schema.Max)
	if err != nil {
		return domain.DelayRange{}, err
	}

	return domain.DelayRange{Min: minDelay, Max: maxDelay}, nil
}
