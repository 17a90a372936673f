package ports

import (
	"context"

	"github.com/bnema/pacer/internal/domain"
)

// LedgerStore persists an account's whole ledger. Load returns an empty ledger
// when nothing has been stored yet and an error wrapping
// domain.ErrLedgerCorrupt when the stored blob cannot be decoded.
type LedgerStore interface {
	Load(ctx context.Context, account domain.AccountID) (domain.Ledger, error)
	Save(ctx context.Context, account domain.AccountID, ledger domain.Ledger) error
}
