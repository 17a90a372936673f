package application

import (
	"context"
	"fmt"
	"time"

	"github.com/bnema/pacer/internal/domain"
	"github.com/bnema/pacer/internal/ports"
)

type QuotaStatus struct {
	Action     domain.ActionType `json:"action" yaml:"action"`
	Used       int               `json:"used" yaml:"used"`
	Limit      int               `json:"limit" yaml:"limit"`
	Base       int               `json:"base" yaml:"base"`
	Multiplier float64           `json:"multiplier" yaml:"multiplier"`
}

type Status struct {
	Account domain.Account    `json:"-" yaml:"-"`
	ID      domain.AccountID  `json:"account" yaml:"account"`
	Age     domain.AccountAge `json:"-" yaml:"-"`
	AgeDays *int              `json:"age_days" yaml:"age_days"`
	Date    string            `json:"date" yaml:"date"`
	At      time.Time         `json:"at" yaml:"at"`
	Quotas  []QuotaStatus     `json:"quotas" yaml:"quotas"`
}

// CanActResult answers a single quota query.
type CanActResult struct {
	Account domain.AccountID  `json:"account" yaml:"account"`
	Action  domain.ActionType `json:"action" yaml:"action"`
	Allowed bool              `json:"allowed" yaml:"allowed"`
	Used    int               `json:"used" yaml:"used"`
	Limit   int               `json:"limit" yaml:"limit"`
}

// QuotaService answers quota questions for accounts sharing one policy.
type QuotaService struct {
	ledgers *LedgerService
	limiter *RateLimiter
	clock   ports.Clock
}

func NewQuotaService(ledgers *LedgerService, limiter *RateLimiter, clock ports.Clock) *QuotaService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &QuotaService{ledgers: ledgers, limiter: limiter, clock: clock}
}

func (s *QuotaService) Status(ctx context.Context, account domain.Account) (Status, error) {
	ledger, err := s.ledgers.Load(ctx, account.ID)
	if err != nil {
		return Status{}, err
	}

	now := s.clock.Now().UTC()
	age := account.Age(now)
	status := Status{
		Account: account,
		ID:      account.ID,
		Age:     age,
		Date:    now.Format(time.DateOnly),
		At:      now,
		Quotas:  s.limiter.Status(ledger, age, now),
	}
	if age.Known {
		days := age.Days
		status.AgeDays = &days
	}

	return status, nil
}

func (s *QuotaService) CanAct(ctx context.Context, account domain.Account, action domain.ActionType) (CanActResult, error) {
	ledger, err := s.ledgers.Load(ctx, account.ID)
	if err != nil {
		return CanActResult{}, err
	}

	now := s.clock.Now()
	age := account.Age(now)

	return CanActResult{
		Account: account.ID,
		Action:  action,
		Allowed: s.limiter.CanAct(ledger, action, age, now),
		Used:    ledger.CountToday(action, now),
		Limit:   s.limiter.EffectiveLimit(action, age),
	}, nil
}

// Record logs an action performed outside the scheduler. It does not consult
// the quota.
func (s *QuotaService) Record(ctx context.Context, account domain.Account, action domain.ActionType, target string) (domain.ActionRecord, error) {
	if action == "" {
		return domain.ActionRecord{}, fmt.Errorf("record action: action type is required")
	}

	return s.ledgers.Record(ctx, account.ID, action, target)
}
