package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bnema/pacer/internal/domain"
	"github.com/bnema/pacer/internal/ports"
)

// LedgerService wraps a LedgerStore with the corrupt-ledger policy: an
// undecodable ledger is replaced by an empty one unless strict is set.
type LedgerService struct {
	store  ports.LedgerStore
	clock  ports.Clock
	logger *slog.Logger
	strict bool
}

func NewLedgerService(store ports.LedgerStore, clock ports.Clock, logger *slog.Logger, strict bool) *LedgerService {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &LedgerService{
		store:  store,
		clock:  clock,
		logger: logger,
		strict: strict,
	}
}

func (s *LedgerService) Load(ctx context.Context, account domain.AccountID) (domain.Ledger, error) {
	ledger, err := s.store.Load(ctx, account)
	if err == nil {
		return ledger, nil
	}
	if errors.Is(err, domain.ErrLedgerCorrupt) && !s.strict {
		ledgerResetCount.Inc()
		s.logger.Warn("ledger unreadable, starting from an empty history",
			"account", account,
			"error", err,
		)
		return domain.NewLedger(), nil
	}

	return domain.Ledger{}, fmt.Errorf("load ledger: %w", err)
}

func (s *LedgerService) Save(ctx context.Context, account domain.AccountID, ledger domain.Ledger) error {
	if err := s.store.Save(ctx, account, ledger); err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}

	return nil
}

// Record appends one action stamped with the current time and persists the
// ledger immediately.
func (s *LedgerService) Record(ctx context.Context, account domain.AccountID, action domain.ActionType, target string) (domain.ActionRecord, error) {
	ledger, err := s.Load(ctx, account)
	if err != nil {
		return domain.ActionRecord{}, err
	}

	record := ledger.Append(action, target, s.clock.Now())
	if err := s.Save(ctx, account, ledger); err != nil {
		return domain.ActionRecord{}, err
	}

	return record, nil
}
