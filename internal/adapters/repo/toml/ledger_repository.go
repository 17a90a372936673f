package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bnema/pacer/internal/domain"
	"github.com/bnema/pacer/internal/ports"
	"github.com/spf13/viper"
)

const (
	ledgerDirKey   = "ledger.dir"
	ledgerDirName  = "ledgers"
	ledgerFileName = "ledger.toml"
)

// LedgerRepository keeps one ledger file per account under a root directory.
type LedgerRepository struct {
	root string
}

var _ ports.LedgerStore = (*LedgerRepository)(nil)

func NewLedgerRepository(cfg *viper.Viper) (*LedgerRepository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	root := cfg.GetString(ledgerDirKey)
	if root == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		root = filepath.Join(homeDir, accountsConfigDir, ledgerDirName)
	}

	root, err := normalizePath(root)
	if err != nil {
		return nil, err
	}

	return &LedgerRepository{root: root}, nil
}

func (r *LedgerRepository) PathFor(account domain.AccountID) (string, error) {
	if err := (domain.Account{ID: account}).Validate(); err != nil {
		return "", fmt.Errorf("ledger path: %w", err)
	}

	return filepath.Join(r.root, string(account), ledgerFileName), nil
}

func (r *LedgerRepository) Load(ctx context.Context, account domain.AccountID) (domain.Ledger, error) {
	if err := ctx.Err(); err != nil {
		return domain.Ledger{}, err
	}

	path, err := r.PathFor(account)
	if err != nil {
		return domain.Ledger{}, err
	}

	mu := lockForPath(path)
	mu.RLock()
	defer mu.RUnlock()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.NewLedger(), nil
		}
		return domain.Ledger{}, fmt.Errorf("read ledger file: %w", err)
	}

	ledger, err := DecodeLedger(data)
	if err != nil {
		return domain.Ledger{}, fmt.Errorf("decode ledger file %s: %w", path, err)
	}

	return ledger, nil
}

func (r *LedgerRepository) Save(ctx context.Context, account domain.AccountID, ledger domain.Ledger) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := r.PathFor(account)
	if err != nil {
		return err
	}

	data, err := EncodeLedger(account, ledger)
	if err != nil {
		return err
	}

	mu := lockForPath(path)
	mu.Lock()
	defer mu.Unlock()

	if err := writeFileAtomic(path, data); err != nil {
		return fmt.Errorf("write ledger file: %w", err)
	}

	return nil
}
