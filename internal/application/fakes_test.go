package application

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bnema/pacer/internal/domain"
	"github.com/bnema/pacer/internal/ports"
)

type fixedClock struct {
	now time.Time
}

func (f fixedClock) Now() time.Time {
	return f.now
}

type inMemoryAccountRepo struct {
	accounts []domain.Account
}

func (r *inMemoryAccountRepo) GetByID(_ context.Context, id domain.AccountID) (domain.Account, error) {
	for _, account := range r.accounts {
		if account.ID == id {
			return account, nil
		}
	}

	return domain.Account{}, domain.ErrAccountNotFound
}

func (r *inMemoryAccountRepo) List(_ context.Context) ([]domain.Account, error) {
	return append([]domain.Account(nil), r.accounts...), nil
}

func (r *inMemoryAccountRepo) Save(_ context.Context, account domain.Account) error {
	for i := range r.accounts {
		if r.accounts[i].ID == account.ID {
			r.accounts[i] = account
			return nil
		}
	}
	r.accounts = append(r.accounts, account)
	return nil
}

type memoryLedgerStore struct {
	mu      sync.Mutex
	ledgers map[domain.AccountID]domain.Ledger
	saves   int
	loadErr error
	saveErr error
}

func newMemoryLedgerStore() *memoryLedgerStore {
	return &memoryLedgerStore{ledgers: map[domain.AccountID]domain.Ledger{}}
}

func (s *memoryLedgerStore) Load(_ context.Context, account domain.AccountID) (domain.Ledger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return domain.Ledger{}, s.loadErr
	}

	return domain.NewLedger(s.ledgers[account].Records()...), nil
}

func (s *memoryLedgerStore) Save(_ context.Context, account domain.AccountID, ledger domain.Ledger) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	s.ledgers[account] = domain.NewLedger(ledger.Records()...)
	return nil
}

// sliceSource yields a fixed list of candidate IDs.
type sliceSource struct {
	ids    []string
	pos    int
	closed bool
}

func (s *sliceSource) Next(_ context.Context) (string, bool) {
	if s.pos >= len(s.ids) {
		return "", false
	}
	id := s.ids[s.pos]
	s.pos++
	return id, true
}

func (s *sliceSource) Close() error {
	s.closed = true
	return nil
}

type sliceSourceProvider struct {
	bySource map[string][]string
	opened   []*sliceSource
}

func (p *sliceSourceProvider) Open(_ context.Context, phase domain.Phase, _ domain.Ledger) (ports.CandidateSource, error) {
	ids, ok := p.bySource[phase.Source]
	if !ok {
		return nil, errors.New("unknown source " + phase.Source)
	}
	source := &sliceSource{ids: ids}
	p.opened = append(p.opened, source)
	return source, nil
}

type recordingExecutor struct {
	calls []string
	fail  map[string]error
	// onExecute runs before the outcome is returned.
	onExecute func(candidate string)
}

func (e *recordingExecutor) Execute(_ context.Context, candidate string) error {
	e.calls = append(e.calls, candidate)
	if e.onExecute != nil {
		e.onExecute(candidate)
	}
	return e.fail[candidate]
}

type staticExecutorProvider struct {
	executors map[domain.ActionType]*recordingExecutor
}

func (p staticExecutorProvider) ExecutorFor(_ domain.Account, action domain.ActionType) (ports.ActionExecutor, error) {
	executor, ok := p.executors[action]
	if !ok {
		return nil, domain.ErrNoExecutor
	}
	return executor, nil
}

// recordingSleeper returns immediately and remembers every requested pause.
type recordingSleeper struct {
	pauses []time.Duration
}

func (s *recordingSleeper) Sleep(ctx context.Context, d time.Duration) error {
	s.pauses = append(s.pauses, d)
	return ctx.Err()
}

// scriptedRandom replays Float64 values in order and returns zero for every
// other draw. It is used where a test needs a specific coin flip outcome.
type scriptedRandom struct {
	floats []float64
}

func (r *scriptedRandom) Float64() float64 {
	if len(r.floats) == 0 {
		return 0.5
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *scriptedRandom) NormFloat64() float64 { return 0 }

func (r *scriptedRandom) IntN(int) int { return 0 }
