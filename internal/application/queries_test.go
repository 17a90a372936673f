package application

import (
	"context"
	"testing"
	"time"

	"github.com/bnema/pacer/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQuotaFixture(t *testing.T, now time.Time) (*QuotaService, *memoryLedgerStore) {
	t.Helper()

	store := newMemoryLedgerStore()
	clock := fixedClock{now: now}
	quotas := domain.QuotaPolicy{
		domain.ActionLike:    {BaseDailyLimit: 10},
		domain.ActionComment: {BaseDailyLimit: 3},
	}
	service := NewQuotaService(
		NewLedgerService(store, clock, nil, false),
		NewRateLimiter(quotas, domain.DefaultWarmupPolicy()),
		clock,
	)
	return service, store
}

func TestQuotaServiceStatusAppliesWarmup(t *testing.T) {
	now := time.Date(2026, 2, 14, 15, 0, 0, 0, time.UTC)
	service, store := newQuotaFixture(t, now)

	ledger := domain.NewLedger()
	ledger.Append(domain.ActionLike, "post-1", now.Add(-time.Hour))
	ledger.Append(domain.ActionLike, "post-2", now.Add(-26*time.Hour))
	ledger.Append("repost", "post-3", now.Add(-time.Minute))
	require.NoError(t, store.Save(context.Background(), "maya", ledger))

	account := domain.Account{ID: "maya", CreatedOn: now.Add(-8 * 24 * time.Hour)}
	status, err := service.Status(context.Background(), account)
	require.NoError(t, err)

	assert.Equal(t, "2026-02-14", status.Date)
	require.NotNil(t, status.AgeDays)
	assert.Equal(t, 8, *status.AgeDays)
	assert.Equal(t, []QuotaStatus{
		{Action: domain.ActionComment, Used: 0, Limit: 2, Base: 3, Multiplier: 0.7},
		{Action: domain.ActionLike, Used: 1, Limit: 7, Base: 10, Multiplier: 0.7},
		{Action: "repost", Used: 1, Limit: 0, Base: 0, Multiplier: 0.7},
	}, status.Quotas)
}

func TestQuotaServiceStatusUnknownAge(t *testing.T) {
	service, _ := newQuotaFixture(t, time.Date(2026, 2, 14, 15, 0, 0, 0, time.UTC))

	status, err := service.Status(context.Background(), domain.Account{ID: "maya"})
	require.NoError(t, err)
	assert.Nil(t, status.AgeDays)
	assert.Equal(t, 10, status.Quotas[1].Limit)
}

func TestQuotaServiceCanActAndRecord(t *testing.T) {
	now := time.Date(2026, 2, 14, 15, 0, 0, 0, time.UTC)
	service, store := newQuotaFixture(t, now)
	account := domain.Account{ID: "maya"}

	for i := 0; i < 3; i++ {
		result, err := service.CanAct(context.Background(), account, domain.ActionComment)
		require.NoError(t, err)
		assert.True(t, result.Allowed)
		assert.Equal(t, i, result.Used)

		_, err = service.Record(context.Background(), account, domain.ActionComment, "post")
		require.NoError(t, err)
	}

	result, err := service.CanAct(context.Background(), account, domain.ActionComment)
	require.NoError(t, err)
	assert.Equal(t, CanActResult{Account: "maya", Action: domain.ActionComment, Allowed: false, Used: 3, Limit: 3}, result)
	assert.Equal(t, 3, store.saves)

	result, err = service.CanAct(context.Background(), account, domain.ActionDM)
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Zero(t, result.Limit)
}

func TestQuotaServiceRecordRequiresAction(t *testing.T) {
	service, _ := newQuotaFixture(t, time.Date(2026, 2, 14, 15, 0, 0, 0, time.UTC))

	_, err := service.Record(context.Background(), domain.Account{ID: "maya"}, "", "post")
	require.Error(t, err)
}
