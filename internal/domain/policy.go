package domain

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

type Quota struct {
	BaseDailyLimit int
}

// QuotaPolicy maps an action type to its base daily limit before warmup.
type QuotaPolicy map[ActionType]Quota

func DefaultQuotaPolicy() QuotaPolicy {
	return QuotaPolicy{
		ActionLike:      {BaseDailyLimit: 150},
		ActionComment:   {BaseDailyLimit: 40},
		ActionFollow:    {BaseDailyLimit: 60},
		ActionUnfollow:  {BaseDailyLimit: 30},
		ActionStoryView: {BaseDailyLimit: 80},
		ActionReply:     {BaseDailyLimit: 25},
		ActionDM:        {BaseDailyLimit: 20},
	}
}

func (q QuotaPolicy) Base(action ActionType) int {
	quota, ok := q[action]
	if !ok || quota.BaseDailyLimit < 0 {
		return 0
	}

	return quota.BaseDailyLimit
}

func (q QuotaPolicy) Validate() error {
	var errs []error
	for _, action := range q.Types() {
		if action == "" {
			errs = append(errs, errors.New("quota with empty action type"))
			continue
		}
		if q[action].BaseDailyLimit < 0 {
			errs = append(errs, fmt.Errorf("quota %s: negative base daily limit %d", action, q[action].BaseDailyLimit))
		}
	}

	return joinPolicyErrors("quotas", errs)
}

func (q QuotaPolicy) Types() []ActionType {
	keys := make([]ActionType, 0, len(q))
	for key := range q {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

type WarmupStage struct {
	MinAgeDays int
	Multiplier float64
}

// WarmupPolicy is a staged, monotonically non-decreasing ramp from account age
// to a quota multiplier in (0,1], saturating at 1.0.
type WarmupPolicy struct {
	Stages []WarmupStage
}

func DefaultWarmupPolicy() WarmupPolicy {
	return WarmupPolicy{Stages: []WarmupStage{
		{MinAgeDays: 0, Multiplier: 0.5},
		{MinAgeDays: 7, Multiplier: 0.7},
		{MinAgeDays: 14, Multiplier: 0.85},
		{MinAgeDays: 21, Multiplier: 1.0},
	}}
}

// Multiplier returns the stage multiplier for age. Unknown ages and policies
// without stages are fully warmed up.
func (w WarmupPolicy) Multiplier(age AccountAge) float64 {
	if !age.Known || len(w.Stages) == 0 {
		return 1.0
	}

	multiplier := w.Stages[0].Multiplier
	for _, stage := range w.Stages {
		if age.Days < stage.MinAgeDays {
			break
		}
		multiplier = stage.Multiplier
	}

	return multiplier
}

func (w WarmupPolicy) Validate() error {
	var errs []error
	for i, stage := range w.Stages {
		if stage.MinAgeDays < 0 {
			errs = append(errs, fmt.Errorf("stage %d: negative min age %d", i, stage.MinAgeDays))
		}
		if stage.Multiplier <= 0 || stage.Multiplier > 1 || math.IsNaN(stage.Multiplier) {
			errs = append(errs, fmt.Errorf("stage %d: multiplier %.3f outside (0,1]", i, stage.Multiplier))
		}
		if i == 0 {
			continue
		}
		prev := w.Stages[i-1]
		if stage.MinAgeDays <= prev.MinAgeDays {
			errs = append(errs, fmt.Errorf("stage %d: min age %d not after %d", i, stage.MinAgeDays, prev.MinAgeDays))
		}
		if stage.Multiplier < prev.Multiplier {
			errs = append(errs, fmt.Errorf("stage %d: multiplier %.3f decreases from %.3f", i, stage.Multiplier, prev.Multiplier))
		}
	}
	if n := len(w.Stages); n > 0 && w.Stages[n-1].Multiplier != 1.0 {
		errs = append(errs, fmt.Errorf("last stage multiplier %.3f must saturate at 1.0", w.Stages[n-1].Multiplier))
	}

	return joinPolicyErrors("warmup", errs)
}

func joinPolicyErrors(section string, errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	return fmt.Errorf("%w: %s: %w", ErrInvalidPolicy, section, errors.Join(errs...))
}
