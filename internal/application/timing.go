package application

import (
	"fmt"
	"math"
	"time"

	"github.com/bnema/pacer/internal/domain"
	"github.com/bnema/pacer/internal/ports"
)

// TimingModel draws human-like delays and coin flips from a TimingPolicy.
// All randomness comes from rng so runs can be replayed with a fixed seed.
type TimingModel struct {
	policy domain.TimingPolicy
	rng    ports.Random
}

func NewTimingModel(policy domain.TimingPolicy, rng ports.Random) *TimingModel {
	model, err := NewTimingModelChecked(policy, rng)
	if err != nil {
		panic(err)
	}

	return model
}

func NewTimingModelChecked(policy domain.TimingPolicy, rng ports.Random) (*TimingModel, error) {
	if rng == nil {
		return nil, fmt.Errorf("new timing model: random source is required")
	}
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("new timing model: %w", err)
	}

	return &TimingModel{policy: policy, rng: rng}, nil
}

func (m *TimingModel) Policy() domain.TimingPolicy {
	return m.policy
}

// FatigueMultiplier maps the number of actions already taken this session to
// a pacing multiplier. It never decreases as count grows.
func (m *TimingModel) FatigueMultiplier(count int) float64 {
	multiplier := 1.0
	for _, band := range m.policy.Fatigue {
		if count < band.From {
			break
		}
		multiplier = band.Multiplier
	}

	return multiplier
}

func (m *TimingModel) NightMultiplier(now time.Time) float64 {
	if m.policy.QuietHours.Contains(now) {
		return m.policy.QuietHours.Multiplier
	}

	return 1.0
}

// Delay returns the pause to take after an action whose nominal range is
// [minDelay, maxDelay]. Most draws are a clamped gaussian around the scaled
// midpoint plus jitter; a fraction are long micro-breaks or quick bursts.
func (m *TimingModel) Delay(minDelay, maxDelay time.Duration, fatigue int, now time.Time) time.Duration {
	if m.bernoulli(m.policy.MicroBreakProbability) {
		return m.observe("micro_break", m.Uniform(m.policy.MicroBreak))
	}
	if m.bernoulli(m.policy.QuickActionProbability) {
		return m.observe("quick_action", m.Uniform(m.policy.QuickAction))
	}

	scale := m.FatigueMultiplier(fatigue) * m.NightMultiplier(now)
	delay := m.mainDelay(minDelay, maxDelay, scale) + m.Uniform(m.policy.Jitter)

	return m.observe("action", delay)
}

// mainDelay is the gaussian branch before jitter. The result always lies in
// [ClampLowFactor*minDelay, ClampHighFactor*maxDelay].
func (m *TimingModel) mainDelay(minDelay, maxDelay time.Duration, scale float64) time.Duration {
	minS, maxS := minDelay.Seconds(), maxDelay.Seconds()

	mid := (minS + maxS) / 2 * scale
	std := (maxS - minS) / m.policy.SpreadDivisor
	value := mid + m.rng.NormFloat64()*std

	low := minS * m.policy.ClampLowFactor
	high := maxS * m.policy.ClampHighFactor
	value = math.Min(math.Max(value, low), high)

	return seconds(value)
}

// ActionDelay resolves the delay range for a phase and draws from it.
func (m *TimingModel) ActionDelay(phase domain.Phase, fatigue int, now time.Time) time.Duration {
	r := phase.Delay
	if r.IsZero() {
		r = m.policy.DelayFor(phase.Action)
	}

	return m.Delay(r.Min, r.Max, fatigue, now)
}

func (m *TimingModel) ShouldSkipCandidate() bool {
	return m.bernoulli(m.policy.SkipCandidateProbability)
}

func (m *TimingModel) ShouldAbortSession() bool {
	return m.bernoulli(m.policy.AbortSessionProbability)
}

func (m *TimingModel) ShouldSkipEntireSession() bool {
	return m.bernoulli(m.policy.SkipSessionProbability)
}

// ShouldWatch reports whether a permitted candidate is only looked at.
func (m *TimingModel) ShouldWatch(probability float64) bool {
	return m.bernoulli(probability)
}

func (m *TimingModel) StartupJitter() time.Duration {
	return m.observe("startup", m.Uniform(m.policy.StartupJitter))
}

func (m *TimingModel) ScrollPause() time.Duration {
	return m.observe("scroll", m.Uniform(m.policy.ScrollPause))
}

func (m *TimingModel) BrowsingPause() time.Duration {
	return m.observe("browse", m.Uniform(m.policy.BrowsingPause))
}

func (m *TimingModel) PhasePause(r domain.DelayRange) time.Duration {
	return m.observe("phase", m.Uniform(r))
}

// SessionCap draws how many candidates a phase visits. A size of zero or
// less means unbounded and returns zero. With jitter j the draw is uniform
// over [max(2, size*(1-j)), size*(1+j)], never below one.
func (m *TimingModel) SessionCap(size int, jitter float64) int {
	if size <= 0 {
		return 0
	}
	if jitter <= 0 {
		return size
	}

	lo := max(2, int(float64(size)*(1-jitter)))
	lo = min(lo, size)
	hi := max(lo, int(float64(size)*(1+jitter)))

	return lo + m.rng.IntN(hi-lo+1)
}

// Uniform draws uniformly from [r.Min, r.Max].
func (m *TimingModel) Uniform(r domain.DelayRange) time.Duration {
	if r.Max <= r.Min {
		return r.Min
	}

	return r.Min + time.Duration(m.rng.Float64()*float64(r.Max-r.Min))
}

func (m *TimingModel) bernoulli(p float64) bool {
	return m.rng.Float64() < p
}

func (m *TimingModel) observe(kind string, d time.Duration) time.Duration {
	pauseDuration.WithLabelValues(kind).Observe(d.Seconds())
	return d
}

func seconds(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}
