package application

import (
	"fmt"
	"math"
	"time"

	"github.com/bnema/pacer/internal/domain"
)

// RateLimiter answers whether one more action of a type fits today's quota.
// It is stateless; the ledger is the only source of counts.
type RateLimiter struct {
	quotas domain.QuotaPolicy
	warmup domain.WarmupPolicy
}

func NewRateLimiter(quotas domain.QuotaPolicy, warmup domain.WarmupPolicy) *RateLimiter {
	limiter, err := NewRateLimiterChecked(quotas, warmup)
	if err != nil {
		panic(err)
	}

	return limiter
}

func NewRateLimiterChecked(quotas domain.QuotaPolicy, warmup domain.WarmupPolicy) (*RateLimiter, error) {
	if err := quotas.Validate(); err != nil {
		return nil, fmt.Errorf("new rate limiter: %w", err)
	}
	if err := warmup.Validate(); err != nil {
		return nil, fmt.Errorf("new rate limiter: %w", err)
	}

	return &RateLimiter{quotas: quotas, warmup: warmup}, nil
}

// EffectiveLimit is floor(base * warmup multiplier). Unknown action types
// have a limit of zero.
func (r *RateLimiter) EffectiveLimit(action domain.ActionType, age domain.AccountAge) int {
	base := r.quotas.Base(action)
	if base <= 0 {
		return 0
	}

	return int(math.Floor(float64(base)*r.warmup.Multiplier(age) + 1e-9))
}

func (r *RateLimiter) CanAct(ledger domain.Ledger, action domain.ActionType, age domain.AccountAge, now time.Time) bool {
	limit := r.EffectiveLimit(action, age)
	return limit > 0 && ledger.CountToday(action, now) < limit
}

func (r *RateLimiter) Remaining(ledger domain.Ledger, action domain.ActionType, age domain.AccountAge, now time.Time) int {
	return max(0, r.EffectiveLimit(action, age)-ledger.CountToday(action, now))
}

// Status reports every configured quota plus any recorded action type that
// has no quota, ordered by action type.
func (r *RateLimiter) Status(ledger domain.Ledger, age domain.AccountAge, now time.Time) []QuotaStatus {
	used := ledger.SummaryToday(now)
	multiplier := r.warmup.Multiplier(age)

	types := r.quotas.Types()
	for _, action := range domain.SortedActionTypes(used) {
		if _, ok := r.quotas[action]; !ok {
			types = append(types, action)
		}
	}

	statuses := make([]QuotaStatus, 0, len(types))
	for _, action := range types {
		statuses = append(statuses, QuotaStatus{
			Action:     action,
			Used:       used[action],
			Limit:      r.EffectiveLimit(action, age),
			Base:       r.quotas.Base(action),
			Multiplier: multiplier,
		})
	}

	return statuses
}
