package ports

import (
	"context"

	"github.com/bnema/pacer/internal/domain"
)

// CandidateSource is a finite, lazy stream of opaque target IDs.
type CandidateSource interface {
	Next(ctx context.Context) (string, bool)
	Close() error
}

// CandidateSourceProvider opens the source a phase refers to. The ledger is
// the one loaded for the current run.
type CandidateSourceProvider interface {
	Open(ctx context.Context, phase domain.Phase, ledger domain.Ledger) (CandidateSource, error)
}

// ActionExecutor performs one action against a candidate. Any error is a soft
// failure.
type ActionExecutor interface {
	Execute(ctx context.Context, candidateID string) error
}

// ExecutorProvider resolves the executor for an action type.
type ExecutorProvider interface {
	ExecutorFor(account domain.Account, action domain.ActionType) (ActionExecutor, error)
}
