package redis

import (
	"context"
	"errors"
	"fmt"

	tomlrepo "github.com/bnema/pacer/internal/adapters/repo/toml"
	"github.com/bnema/pacer/internal/domain"
	"github.com/bnema/pacer/internal/ports"
	goredis "github.com/redis/go-redis/v9"
)

var ledgerKeyPrefix = "pacer/ledger/"

// LedgerStore keeps each account's ledger as one TOML blob under a single
// key, so a save replaces the whole history atomically.
type LedgerStore struct {
	Client *goredis.Client
}

var _ ports.LedgerStore = (*LedgerStore)(nil)

func NewLedgerStore(ctx context.Context, redisURL string) (*LedgerStore, error) {
	if redisURL == "" {
		return nil, errors.New("new redis ledger store: url is required")
	}

	opt, err := goredis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("new redis ledger store: %w", err)
	}
	rdb := goredis.NewClient(opt)
	// check redis connection
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("new redis ledger store: %w", err)
	}

	return &LedgerStore{Client: rdb}, nil
}

func ledgerKey(account domain.AccountID) string {
	return ledgerKeyPrefix + string(account)
}

func (s *LedgerStore) Load(ctx context.Context, account domain.AccountID) (domain.Ledger, error) {
	data, err := s.Client.Get(ctx, ledgerKey(account)).Bytes()
	if err == goredis.Nil {
		return domain.NewLedger(), nil
	} else if err != nil {
		return domain.Ledger{}, fmt.Errorf("get ledger %s: %w", account, err)
	}

	ledger, err := tomlrepo.DecodeLedger(data)
	if err != nil {
		return domain.Ledger{}, fmt.Errorf("decode ledger %s: %w", account, err)
	}

	return ledger, nil
}

func (s *LedgerStore) Save(ctx context.Context, account domain.AccountID, ledger domain.Ledger) error {
	if err := (domain.Account{ID: account}).Validate(); err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}

	data, err := tomlrepo.EncodeLedger(account, ledger)
	if err != nil {
		return err
	}

	if err := s.Client.Set(ctx, ledgerKey(account), data, 0).Err(); err != nil {
		return fmt.Errorf("set ledger %s: %w", account, err)
	}

	return nil
}

func (s *LedgerStore) Close() error {
	return s.Client.Close()
}
