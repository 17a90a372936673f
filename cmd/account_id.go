package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/pacer/internal/domain"
)

var errAccountRequired = errors.New("several accounts are registered, pick one with --account")

// resolveAccount looks up raw, or the only registered account when raw is
// empty.
func resolveAccount(ctx context.Context, app *app, raw string) (domain.Account, error) {
	requested := strings.TrimSpace(raw)
	if requested != "" {
		return app.accountService.GetAccount(ctx, domain.AccountID(requested))
	}

	accounts, err := app.accountService.ListAccounts(ctx)
	if err != nil {
		return domain.Account{}, err
	}

	switch len(accounts) {
	case 0:
		return domain.Account{}, fmt.Errorf("%w: register one with `pacer account add`", domain.ErrAccountNotFound)
	case 1:
		return accounts[0], nil
	default:
		return domain.Account{}, errAccountRequired
	}
}

// resolveAccounts returns raw's account, or every registered one.
func resolveAccounts(ctx context.Context, app *app, raw string) ([]domain.Account, error) {
	if strings.TrimSpace(raw) == "" {
		return app.accountService.ListAccounts(ctx)
	}

	account, err := resolveAccount(ctx, app, raw)
	if err != nil {
		return nil, err
	}

	return []domain.Account{account}, nil
}
