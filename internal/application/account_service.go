package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/pacer/internal/domain"
	"github.com/bnema/pacer/internal/ports"
)

// CredentialRef is the secret store key holding an account's executor
// credential.
func CredentialRef(id domain.AccountID) string {
	return fmt.Sprintf("pacer://%s/credential", id)
}

type AccountService struct {
	repo  ports.AccountRepository
	store ports.SecretStore
	clock ports.Clock
}

func NewAccountService(repo ports.AccountRepository, store ports.SecretStore, clock ports.Clock) *AccountService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &AccountService{
		repo:  repo,
		store: store,
		clock: clock,
	}
}

// AddAccount registers a new account or updates the name, creation date and
// policy of an existing one. The credential reference is left untouched.
func (s *AccountService) AddAccount(ctx context.Context, account domain.Account) (domain.Account, error) {
	if err := account.Validate(); err != nil {
		return domain.Account{}, fmt.Errorf("validate account: %w", err)
	}

	existing, err := s.repo.GetByID(ctx, account.ID)
	switch {
	case err == nil:
		account.CredentialRef = existing.CredentialRef
		if account.Name == "" {
			account.Name = existing.Name
		}
		if account.CreatedOn.IsZero() {
			account.CreatedOn = existing.CreatedOn
		}
		if account.PolicyPath == "" {
			account.PolicyPath = existing.PolicyPath
		}
	case errors.Is(err, domain.ErrAccountNotFound):
		if account.Name == "" {
			account.Name = fmt.Sprintf("Account %s", account.ID)
		}
	default:
		return domain.Account{}, fmt.Errorf("get account by id: %w", err)
	}

	if account.CreatedOn.IsZero() {
		now := s.clock.Now().UTC()
		account.CreatedOn = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}

	if err := s.repo.Save(ctx, account); err != nil {
		return domain.Account{}, fmt.Errorf("save account: %w", err)
	}

	return account, nil
}

func (s *AccountService) GetAccount(ctx context.Context, id domain.AccountID) (domain.Account, error) {
	account, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Account{}, fmt.Errorf("get account by id: %w", err)
	}

	return account, nil
}

func (s *AccountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	return accounts, nil
}

// AccountAge resolves the account's age in days. Lookup failures yield an
// unknown age, which the limiter treats as fully warmed up.
func (s *AccountService) AccountAge(ctx context.Context, id domain.AccountID) domain.AccountAge {
	account, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.UnknownAge
	}

	return account.Age(s.clock.Now())
}

// SetCredential stores value in the secret store and points the account at
// it. A previous credential under a different key is deleted afterwards.
func (s *AccountService) SetCredential(ctx context.Context, id domain.AccountID, value string) error {
	account, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get account by id: %w", err)
	}
	originalAccount := account
	previousRef := account.CredentialRef
	secretKey := CredentialRef(id)

	if err := s.store.Put(ctx, secretKey, value); err != nil {
		return fmt.Errorf("store credential: %w", err)
	}

	account.CredentialRef = secretKey
	if err := s.repo.Save(ctx, account); err != nil {
		if rollbackErr := s.store.Delete(ctx, secretKey); rollbackErr != nil {
			return fmt.Errorf("save account credential and rollback stored secret: %w", errors.Join(err, rollbackErr))
		}

		return fmt.Errorf("save account credential: %w", err)
	}

	if previousRef == "" || previousRef == secretKey {
		return nil
	}
	if err := s.store.Delete(ctx, previousRef); err != nil {
		if restoreErr := s.repo.Save(ctx, originalAccount); restoreErr != nil {
			return fmt.Errorf("delete previous credential and restore account: %w", errors.Join(err, restoreErr))
		}
		return fmt.Errorf("delete previous credential: %w", err)
	}

	return nil
}

func (s *AccountService) RemoveCredential(ctx context.Context, id domain.AccountID) error {
	account, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get account by id: %w", err)
	}
	secretRef := account.CredentialRef
	if secretRef == "" {
		return nil
	}

	account.CredentialRef = ""
	if err := s.repo.Save(ctx, account); err != nil {
		return fmt.Errorf("save account credential: %w", err)
	}

	if err := s.store.Delete(ctx, secretRef); err != nil {
		account.CredentialRef = secretRef
		if restoreErr := s.repo.Save(ctx, account); restoreErr != nil {
			return fmt.Errorf("delete credential and restore ref: %w", errors.Join(err, restoreErr))
		}
		return fmt.Errorf("delete credential: %w", err)
	}

	return nil
}

// Credential returns the stored credential, or "" when the account has none.
func (s *AccountService) Credential(ctx context.Context, account domain.Account) (string, error) {
	if account.CredentialRef == "" || s.store == nil {
		return "", nil
	}

	value, err := s.store.Get(ctx, account.CredentialRef)
	if err != nil {
		return "", fmt.Errorf("get credential: %w", err)
	}

	return value, nil
}
