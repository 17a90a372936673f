package ports

import (
	"context"

	"github.com/bnema/pacer/internal/domain"
)

type AccountRepository interface {
	GetByID(ctx context.Context, id domain.AccountID) (domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)
	Save(ctx context.Context, account domain.Account) error
}

// AccountAgeProvider resolves an account's age; failures map to an unknown age.
type AccountAgeProvider interface {
	AccountAge(ctx context.Context, id domain.AccountID) domain.AccountAge
}
