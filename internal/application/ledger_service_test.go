package application

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/bnema/pacer/internal/domain"
	"github.com/bnema/pacer/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLedgerServiceRecordRoundTripIncrementsCount(t *testing.T) {
	store := newMemoryLedgerStore()
	now := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)
	svc := NewLedgerService(store, fixedClock{now: now}, nil, false)

	before, err := svc.Load(context.Background(), "maya")
	require.NoError(t, err)
	require.Equal(t, 0, before.CountToday(domain.ActionLike, now))

	record, err := svc.Record(context.Background(), "maya", domain.ActionLike, "post-1")
	require.NoError(t, err)
	assert.Equal(t, domain.ActionRecord{Type: domain.ActionLike, Target: "post-1", At: now}, record)

	after, err := svc.Load(context.Background(), "maya")
	require.NoError(t, err)
	assert.Equal(t, before.CountToday(domain.ActionLike, now)+1, after.CountToday(domain.ActionLike, now))
}

func TestLedgerServiceCorruptLedgerFallsBackToEmpty(t *testing.T) {
	store := mocks.NewMockLedgerStore(t)
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	svc := NewLedgerService(store, nil, logger, false)

	corrupt := fmt.Errorf("decode ledger: %w", domain.ErrLedgerCorrupt)
	store.EXPECT().Load(mock.Anything, domain.AccountID("maya")).Return(domain.Ledger{}, corrupt)

	ledger, err := svc.Load(context.Background(), "maya")
	require.NoError(t, err)
	assert.Equal(t, 0, ledger.Len())
	assert.Contains(t, logs.String(), "level=WARN")
	assert.Contains(t, logs.String(), "account=maya")
}

func TestLedgerServiceStrictModeSurfacesCorruption(t *testing.T) {
	store := mocks.NewMockLedgerStore(t)
	svc := NewLedgerService(store, nil, slog.New(slog.DiscardHandler), true)

	store.EXPECT().Load(mock.Anything, domain.AccountID("maya")).Return(domain.Ledger{}, domain.ErrLedgerCorrupt)

	_, err := svc.Load(context.Background(), "maya")
	require.ErrorIs(t, err, domain.ErrLedgerCorrupt)
}

func TestLedgerServiceLoadPropagatesIOErrors(t *testing.T) {
	store := mocks.NewMockLedgerStore(t)
	svc := NewLedgerService(store, nil, nil, false)

	ioErr := errors.New("permission denied")
	store.EXPECT().Load(mock.Anything, domain.AccountID("maya")).Return(domain.Ledger{}, ioErr)

	_, err := svc.Load(context.Background(), "maya")
	require.ErrorIs(t, err, ioErr)
}

func TestLedgerServiceRecordReturnsSaveError(t *testing.T) {
	store := mocks.NewMockLedgerStore(t)
	svc := NewLedgerService(store, fixedClock{now: time.Now()}, nil, false)

	saveErr := errors.New("disk full")
	store.EXPECT().Load(mock.Anything, domain.AccountID("maya")).Return(domain.NewLedger(), nil)
	store.EXPECT().Save(mock.Anything, domain.AccountID("maya"), mock.AnythingOfType("domain.Ledger")).Return(saveErr)

	_, err := svc.Record(context.Background(), "maya", domain.ActionFollow, "u1")
	require.ErrorIs(t, err, saveErr)
}
