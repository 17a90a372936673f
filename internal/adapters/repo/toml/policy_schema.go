package toml

import (
	"fmt"
	"time"
)

const currentPolicySchemaVersion = 1

type policyFileSchema struct {
	Version  int                          `toml:"version"`
	Quotas   map[string]int               `toml:"quotas"`
	Warmup   *warmupSchema                `toml:"warmup"`
	Timing   *timingSchema                `toml:"timing"`
	Sources  map[string]sourceSchema      `toml:"sources"`
	Sessions map[string]sessionTypeSchema `toml:"sessions"`
}

func (s *policyFileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentPolicySchemaVersion
	}
}

func (s policyFileSchema) validateVersion() error {
	if s.Version > currentPolicySchemaVersion {
		return fmt.Errorf("unsupported policy schema version %d (current %d)", s.Version, currentPolicySchemaVersion)
	}

	return nil
}

type warmupSchema struct {
	Stages []warmupStageSchema `toml:"stages"`
}

type warmupStageSchema struct {
	MinAgeDays int     `toml:"min_age_days"`
	Multiplier float64 `toml:"multiplier"`
}

type durationRangeSchema struct {
	Min string `toml:"min"`
	Max string `toml:"max"`
}

type fatigueBandSchema struct {
	From       int     `toml:"from"`
	Multiplier float64 `toml:"multiplier"`
}

type quietHoursSchema struct {
	Timezone   string   `toml:"timezone"`
	StartHour  *int     `toml:"start_hour"`
	EndHour    *int     `toml:"end_hour"`
	Multiplier *float64 `toml:"multiplier"`
}

type timingSchema struct {
	MicroBreakProbability  *float64             `toml:"micro_break_probability"`
	MicroBreak             *durationRangeSchema `toml:"micro_break"`
	QuickActionProbability *float64             `toml:"quick_action_probability"`
	QuickAction            *durationRangeSchema `toml:"quick_action"`

	SpreadDivisor   *float64             `toml:"spread_divisor"`
	ClampLowFactor  *float64             `toml:"clamp_low_factor"`
	ClampHighFactor *float64             `toml:"clamp_high_factor"`
	Jitter          *durationRangeSchema `toml:"jitter"`

	Fatigue    []fatigueBandSchema `toml:"fatigue"`
	QuietHours *quietHoursSchema   `toml:"quiet_hours"`

	SkipCandidateProbability *float64 `toml:"skip_candidate_probability"`
	AbortSessionProbability  *float64 `toml:"abort_session_probability"`
	SkipSessionProbability   *float64 `toml:"skip_session_probability"`

	StartupJitter *durationRangeSchema `toml:"startup_jitter"`
	ScrollPause   *durationRangeSchema `toml:"scroll_pause"`
	BrowsingPause *durationRangeSchema `toml:"browsing_pause"`

	DefaultDelay *durationRangeSchema           `toml:"default_delay"`
	Delays       map[string]durationRangeSchema `toml:"delays"`
}

type sourceSchema struct {
	Kind          string   `toml:"kind"`
	Path          string   `toml:"path"`
	Command       []string `toml:"command"`
	OlderThanDays *int     `toml:"older_than_days"`
}

type sessionTypeSchema struct {
	Exempt     bool                 `toml:"exempt"`
	PhasePause *durationRangeSchema `toml:"phase_pause"`
	Phases     []phaseSchema        `toml:"phases"`
}

type phaseSchema struct {
	Action           string               `toml:"action"`
	Source           string               `toml:"source"`
	Size             int                  `toml:"size"`
	SizeJitter       *float64             `toml:"size_jitter"`
	WatchProbability float64              `toml:"watch_probability"`
	WatchFirst       int                  `toml:"watch_first"`
	SkipActed        bool                 `toml:"skip_acted"`
	Delay            *durationRangeSchema `toml:"delay"`
}

func parseDurationValue(field, raw string) (time.Duration, error) {
	if raw == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}

	return d, nil
}
