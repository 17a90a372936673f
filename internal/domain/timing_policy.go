package domain

import (
	"errors"
	"fmt"
	"math"
	"time"
)

type DelayRange struct {
	Min time.Duration
	Max time.Duration
}

func (r DelayRange) IsZero() bool {
	return r.Min == 0 && r.Max == 0
}

func (r DelayRange) validate(name string) error {
	if r.Min < 0 || r.Max < 0 {
		return fmt.Errorf("%s: negative bound (%s, %s)", name, r.Min, r.Max)
	}
	if r.Min > r.Max {
		return fmt.Errorf("%s: min %s above max %s", name, r.Min, r.Max)
	}

	return nil
}

// FatigueBand applies Multiplier once the session has taken From actions.
type FatigueBand struct {
	From       int
	Multiplier float64
}

// QuietHours slows pacing between StartHour (inclusive) and EndHour
// (exclusive) in Location. The window may wrap past midnight.
type QuietHours struct {
	Location   *time.Location
	StartHour  int
	EndHour    int
	Multiplier float64
}

func (q QuietHours) Contains(now time.Time) bool {
	if q.StartHour == q.EndHour {
		return false
	}

	loc := q.Location
	if loc == nil {
		loc = time.UTC
	}
	hour := now.In(loc).Hour()
	if q.StartHour < q.EndHour {
		return hour >= q.StartHour && hour < q.EndHour
	}

	return hour >= q.StartHour || hour < q.EndHour
}

// TimingPolicy holds every constant the timing model draws against.
type TimingPolicy struct {
	MicroBreakProbability  float64
	MicroBreak             DelayRange
	QuickActionProbability float64
	QuickAction            DelayRange

	SpreadDivisor   float64
	ClampLowFactor  float64
	ClampHighFactor float64
	Jitter          DelayRange

	Fatigue    []FatigueBand
	QuietHours QuietHours

	SkipCandidateProbability float64
	AbortSessionProbability  float64
	SkipSessionProbability   float64

	StartupJitter DelayRange
	ScrollPause   DelayRange
	BrowsingPause DelayRange

	ActionDelays map[ActionType]DelayRange
	DefaultDelay DelayRange
}

func DefaultTimingPolicy() TimingPolicy {
	return TimingPolicy{
		MicroBreakProbability:  0.15,
		MicroBreak:             DelayRange{Min: 90 * time.Second, Max: 420 * time.Second},
		QuickActionProbability: 0.03,
		QuickAction:            DelayRange{Min: 3 * time.Second, Max: 8 * time.Second},

		SpreadDivisor:   3.5,
		ClampLowFactor:  0.7,
		ClampHighFactor: 2.0,
		Jitter:          DelayRange{Min: 300 * time.Millisecond, Max: 900 * time.Millisecond},

		Fatigue: []FatigueBand{
			{From: 0, Multiplier: 1.0},
			{From: 5, Multiplier: 1.2},
			{From: 12, Multiplier: 1.5},
			{From: 20, Multiplier: 1.8},
		},
		QuietHours: QuietHours{Location: time.Local, StartHour: 0, EndHour: 7, Multiplier: 1.4},

		SkipCandidateProbability: 0.22,
		AbortSessionProbability:  0.12,
		SkipSessionProbability:   0.20,

		StartupJitter: DelayRange{Min: 30 * time.Second, Max: 6 * time.Minute},
		ScrollPause:   DelayRange{Min: 1 * time.Second, Max: 4 * time.Second},
		BrowsingPause: DelayRange{Min: 3 * time.Second, Max: 15 * time.Second},

		ActionDelays: map[ActionType]DelayRange{
			ActionLike:      {Min: 8 * time.Second, Max: 25 * time.Second},
			ActionComment:   {Min: 40 * time.Second, Max: 120 * time.Second},
			ActionFollow:    {Min: 30 * time.Second, Max: 80 * time.Second},
			ActionStoryView: {Min: 5 * time.Second, Max: 15 * time.Second},
			ActionUnfollow:  {Min: 25 * time.Second, Max: 70 * time.Second},
			ActionReply:     {Min: 35 * time.Second, Max: 100 * time.Second},
			ActionDM:        {Min: 30 * time.Second, Max: 90 * time.Second},
		},
		DefaultDelay: DelayRange{Min: 20 * time.Second, Max: 60 * time.Second},
	}
}

// DelayFor returns the configured delay range for action, or the default.
func (p TimingPolicy) DelayFor(action ActionType) DelayRange {
	if r, ok := p.ActionDelays[action]; ok {
		return r
	}

	return p.DefaultDelay
}

func (p TimingPolicy) Validate() error {
	var errs []error

	for name, value := range map[string]float64{
		"micro_break_probability":    p.MicroBreakProbability,
		"quick_action_probability":   p.QuickActionProbability,
		"skip_candidate_probability": p.SkipCandidateProbability,
		"abort_session_probability":  p.AbortSessionProbability,
		"skip_session_probability":   p.SkipSessionProbability,
	} {
		if err := validateProbability(name, value); err != nil {
			errs = append(errs, err)
		}
	}

	for name, r := range map[string]DelayRange{
		"micro_break":    p.MicroBreak,
		"quick_action":   p.QuickAction,
		"jitter":         p.Jitter,
		"startup_jitter": p.StartupJitter,
		"scroll_pause":   p.ScrollPause,
		"browsing_pause": p.BrowsingPause,
		"default_delay":  p.DefaultDelay,
	} {
		if err := r.validate(name); err != nil {
			errs = append(errs, err)
		}
	}
	for action, r := range p.ActionDelays {
		if err := r.validate("delay " + string(action)); err != nil {
			errs = append(errs, err)
		}
	}

	if p.SpreadDivisor <= 0 {
		errs = append(errs, fmt.Errorf("spread_divisor must be positive, got %.2f", p.SpreadDivisor))
	}
	if p.ClampLowFactor < 0 || p.ClampHighFactor <= 0 || p.ClampLowFactor > p.ClampHighFactor {
		errs = append(errs, fmt.Errorf("clamp factors (%.2f, %.2f) are inconsistent", p.ClampLowFactor, p.ClampHighFactor))
	}

	for i, band := range p.Fatigue {
		if band.Multiplier <= 0 {
			errs = append(errs, fmt.Errorf("fatigue band %d: multiplier must be positive", i))
		}
		if i > 0 {
			prev := p.Fatigue[i-1]
			if band.From <= prev.From {
				errs = append(errs, fmt.Errorf("fatigue band %d: threshold %d not after %d", i, band.From, prev.From))
			}
			if band.Multiplier < prev.Multiplier {
				errs = append(errs, fmt.Errorf("fatigue band %d: multiplier decreases", i))
			}
		}
	}

	q := p.QuietHours
	if q.StartHour < 0 || q.StartHour > 23 || q.EndHour < 0 || q.EndHour > 23 {
		errs = append(errs, fmt.Errorf("quiet hours %d-%d outside 0-23", q.StartHour, q.EndHour))
	}
	if q.Multiplier <= 0 {
		errs = append(errs, errors.New("quiet hours multiplier must be positive"))
	}

	return joinPolicyErrors("timing", errs)
}

func validateProbability(name string, value float64) error {
	if value < 0 || value > 1 || math.IsNaN(value) {
		return fmt.Errorf("%s %.3f outside [0,1]", name, value)
	}

	return nil
}
