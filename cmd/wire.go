package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"

	"github.com/bnema/pacer/internal/adapters/candidates"
	"github.com/bnema/pacer/internal/adapters/executor/command"
	statusadapter "github.com/bnema/pacer/internal/adapters/render/status"
	redisrepo "github.com/bnema/pacer/internal/adapters/repo/redis"
	tomlrepo "github.com/bnema/pacer/internal/adapters/repo/toml"
	chainstore "github.com/bnema/pacer/internal/adapters/secrets/chain"
	"github.com/bnema/pacer/internal/application"
	"github.com/bnema/pacer/internal/config"
	"github.com/bnema/pacer/internal/domain"
	"github.com/bnema/pacer/internal/observability"
	"github.com/bnema/pacer/internal/ports"
	"github.com/spf13/viper"
)

type app struct {
	cfg            *viper.Viper
	accounts       *tomlrepo.Repository
	accountService *application.AccountService
	secretStore    ports.SecretStore
	statusRenderer func([]application.Status, statusadapter.RenderOptions) (string, error)
	clock          ports.Clock

	ledgerStore ports.LedgerStore
	closers     []func() error
}

func wireApp() (*app, error) {
	cfg := viper.New()
	if err := config.Load(cfg); err != nil {
		return nil, fmt.Errorf("wire config: %w", err)
	}

	repo, err := tomlrepo.NewRepository(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire account repository: %w", err)
	}

	secretStore, err := chainstore.NewPassFirstWithFileFallback(cfg.GetString(config.SecretsDirKey))
	if err != nil {
		return nil, fmt.Errorf("wire secret store chain: %w", err)
	}

	clock := ports.SystemClock{}
	return &app{
		cfg:            cfg,
		accounts:       repo,
		accountService: application.NewAccountService(repo, secretStore, clock),
		secretStore:    secretStore,
		statusRenderer: statusadapter.Render,
		clock:          clock,
	}, nil
}

func (a *app) logger(w io.Writer) (*slog.Logger, error) {
	return observability.NewLogger(w, a.cfg.GetString(config.LogLevelKey), a.cfg.GetString(config.LogFormatKey))
}

// ledgers opens the configured ledger backend on first use.
func (a *app) ledgers(ctx context.Context) (ports.LedgerStore, error) {
	if a.ledgerStore != nil {
		return a.ledgerStore, nil
	}

	switch backend := a.cfg.GetString(config.LedgerBackendKey); backend {
	case config.LedgerBackendFile:
		store, err := tomlrepo.NewLedgerRepository(a.cfg)
		if err != nil {
			return nil, fmt.Errorf("wire ledger repository: %w", err)
		}
		a.ledgerStore = store
	case config.LedgerBackendRedis:
		store, err := redisrepo.NewLedgerStore(ctx, a.cfg.GetString(config.LedgerRedisURLKey))
		if err != nil {
			return nil, fmt.Errorf("wire redis ledger store: %w", err)
		}
		a.ledgerStore = store
		a.closers = append(a.closers, store.Close)
	default:
		return nil, fmt.Errorf("unsupported ledger backend %q (want %s or %s)", backend, config.LedgerBackendFile, config.LedgerBackendRedis)
	}

	return a.ledgerStore, nil
}

func (a *app) close() error {
	var errs []error
	for _, closeFn := range a.closers {
		errs = append(errs, closeFn())
	}
	a.closers = nil

	return errors.Join(errs...)
}

// policyFor loads the account's own policy file, or the default one.
func (a *app) policyFor(account domain.Account) (domain.Policy, error) {
	path := account.PolicyPath
	if path == "" {
		path = a.cfg.GetString(config.PolicyPathKey)
	}

	return tomlrepo.LoadPolicy(path)
}

// accountRuntime holds the services bound to one account's policy.
type accountRuntime struct {
	account domain.Account
	policy  domain.Policy
	ledgers *application.LedgerService
	limiter *application.RateLimiter
	quotas  *application.QuotaService
}

func (a *app) runtimeFor(ctx context.Context, account domain.Account, logger *slog.Logger) (*accountRuntime, error) {
	policy, err := a.policyFor(account)
	if err != nil {
		return nil, err
	}

	store, err := a.ledgers(ctx)
	if err != nil {
		return nil, err
	}

	limiter, err := application.NewRateLimiterChecked(policy.Quotas, policy.Warmup)
	if err != nil {
		return nil, err
	}

	ledgers := application.NewLedgerService(store, a.clock, logger, a.cfg.GetBool(config.LedgerStrictKey))
	return &accountRuntime{
		account: account,
		policy:  policy,
		ledgers: ledgers,
		limiter: limiter,
		quotas:  application.NewQuotaService(ledgers, limiter, a.clock),
	}, nil
}

func (a *app) newScheduler(rt *accountRuntime, rng ports.Random, logger *slog.Logger) (*application.Scheduler, error) {
	timing, err := application.NewTimingModelChecked(rt.policy.Timing, rng)
	if err != nil {
		return nil, err
	}

	return application.NewScheduler(application.SchedulerDeps{
		Ledgers: rt.ledgers,
		Limiter: rt.limiter,
		Timing:  timing,
		Sources: candidates.NewRegistry(rt.policy.Sources, a.cfg.GetString(config.CandidatesDirKey), a.clock, rng),
		Executors: command.NewProvider(
			a.cfg.GetStringSlice(config.ExecutorCommandKey),
			a.cfg.GetString(config.ExecutorCredentialEnvKey),
			a.accountService.Credential,
		),
		Ages:     a.accountService,
		Sessions: rt.policy.Sessions,
		Clock:    a.clock,
		Logger:   logger,
	}), nil
}

// newRandom seeds a PCG source. A zero seed draws a fresh one.
func newRandom(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
