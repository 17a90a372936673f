package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bnema/pacer/internal/domain"
	"github.com/bnema/pacer/internal/ports"
)

type SchedulerDeps struct {
	Ledgers   *LedgerService
	Limiter   *RateLimiter
	Timing    *TimingModel
	Sources   ports.CandidateSourceProvider
	Executors ports.ExecutorProvider
	// Ages is optional; without it the age is derived from Account.CreatedOn.
	Ages     ports.AccountAgeProvider
	Sessions map[string]domain.SessionType
	Clock    ports.Clock
	Sleeper  ports.Sleeper
	Logger   *slog.Logger
	NewRunID func() string
}

// Scheduler runs named sessions for one account. Each run owns its fatigue
// counter and ledger copy; concurrent runs for the same account are not
// supported.
type Scheduler struct {
	ledgers   *LedgerService
	limiter   *RateLimiter
	timing    *TimingModel
	sources   ports.CandidateSourceProvider
	executors ports.ExecutorProvider
	ages      ports.AccountAgeProvider
	sessions  map[string]domain.SessionType
	clock     ports.Clock
	sleeper   ports.Sleeper
	logger    *slog.Logger
	newRunID  func() string
}

func NewScheduler(deps SchedulerDeps) *Scheduler {
	s := &Scheduler{
		ledgers:   deps.Ledgers,
		limiter:   deps.Limiter,
		timing:    deps.Timing,
		sources:   deps.Sources,
		executors: deps.Executors,
		ages:      deps.Ages,
		sessions:  deps.Sessions,
		clock:     deps.Clock,
		sleeper:   deps.Sleeper,
		logger:    deps.Logger,
		newRunID:  deps.NewRunID,
	}
	if s.clock == nil {
		s.clock = ports.SystemClock{}
	}
	if s.sleeper == nil {
		s.sleeper = ports.SystemSleeper{}
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.newRunID == nil {
		s.newRunID = func() string { return uuid.NewString() }
	}

	return s
}

// sessionRun is the mutable state of one Run call.
type sessionRun struct {
	account domain.Account
	age     domain.AccountAge
	ledger  domain.Ledger
	fatigue int
	summary *domain.SessionSummary
	logger  *slog.Logger
}

// Run executes sessionType for account. The returned summary is valid even
// when err is non-nil; it then describes the partial run.
func (s *Scheduler) Run(ctx context.Context, account domain.Account, sessionType string) (domain.SessionSummary, error) {
	session, ok := s.sessions[sessionType]
	if !ok {
		return domain.SessionSummary{}, fmt.Errorf("%w: %q", domain.ErrUnknownSessionType, sessionType)
	}

	runID := s.newRunID()
	summary := domain.SessionSummary{
		RunID:       runID,
		Account:     account.ID,
		SessionType: session.Name,
		StartedAt:   s.clock.Now().UTC(),
		Phases:      []domain.PhaseOutcome{},
		Counts:      map[domain.ActionType]int{},
	}
	logger := s.logger.With("run_id", runID, "account", account.ID, "session", session.Name)

	ledger, err := s.ledgers.Load(ctx, account.ID)
	if err != nil {
		return s.finish(summary, "failed"), err
	}

	if !session.Exempt && s.timing.ShouldSkipEntireSession() {
		summary.Skipped = true
		logger.Info("session skipped")
		return s.finish(summary, "skipped"), nil
	}

	run := &sessionRun{
		account: account,
		age:     s.accountAge(ctx, account),
		ledger:  ledger,
		summary: &summary,
		logger:  logger,
	}
	logger.Info("session started", "age", run.age.String(), "phases", len(session.Phases))

	if !session.Exempt {
		if err := s.pause(ctx, s.timing.StartupJitter()); err != nil {
			return s.finish(summary, "cancelled"), err
		}
	}

	for i, phase := range session.Phases {
		if i > 0 && !session.PhasePause.IsZero() {
			if err := s.pause(ctx, s.timing.PhasePause(session.PhasePause)); err != nil {
				return s.finish(summary, "cancelled"), err
			}
		}

		outcome, err := s.runPhase(ctx, run, phase)
		summary.Phases = append(summary.Phases, outcome)
		phaseStopCount.WithLabelValues(string(phase.Action), string(outcome.Stop)).Inc()
		if err != nil {
			result := "failed"
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				result = "cancelled"
			}
			return s.finish(summary, result), err
		}
	}

	if err := s.ledgers.Save(context.WithoutCancel(ctx), account.ID, run.ledger); err != nil {
		return s.finish(summary, "failed"), err
	}

	logger.Info("session finished", "recorded", summary.Total())
	return s.finish(summary, "completed"), nil
}

func (s *Scheduler) runPhase(ctx context.Context, run *sessionRun, phase domain.Phase) (domain.PhaseOutcome, error) {
	outcome := domain.PhaseOutcome{Action: phase.Action, Source: phase.Source}
	logger := run.logger.With("action", phase.Action, "source", phase.Source)

	executor, err := s.executors.ExecutorFor(run.account, phase.Action)
	if err != nil {
		logger.Warn("no executor for action, skipping phase", "error", err)
		outcome.Stop = domain.StopNoExecutor
		return outcome, nil
	}

	source, err := s.sources.Open(ctx, phase, run.ledger)
	if err != nil {
		logger.Warn("candidate source unavailable, skipping phase", "error", err)
		outcome.Stop = domain.StopSourceUnavailable
		return outcome, nil
	}
	defer func() {
		if err := source.Close(); err != nil {
			logger.Debug("close candidate source", "error", err)
		}
	}()

	limit := s.timing.SessionCap(phase.Size, phase.SizeJitter)
	seen := make(map[string]struct{})

	for {
		if err := ctx.Err(); err != nil {
			outcome.Stop = domain.StopCancelled
			return outcome, err
		}
		if limit > 0 && outcome.Visited >= limit {
			outcome.Stop = domain.StopSizeReached
			return outcome, nil
		}

		candidate, ok := source.Next(ctx)
		if !ok {
			if err := ctx.Err(); err != nil {
				outcome.Stop = domain.StopCancelled
				return outcome, err
			}
			outcome.Stop = domain.StopExhausted
			return outcome, nil
		}
		if candidate == "" {
			continue
		}
		if _, dup := seen[candidate]; dup {
			continue
		}
		seen[candidate] = struct{}{}
		if phase.SkipActed && run.ledger.HasTarget(phase.Action, candidate) {
			continue
		}
		outcome.Visited++

		if s.timing.ShouldAbortSession() {
			logger.Info("phase abandoned early", "visited", outcome.Visited)
			outcome.Stop = domain.StopAborted
			return outcome, nil
		}

		if s.timing.ShouldSkipCandidate() {
			outcome.Skipped++
			candidateDecisionCount.WithLabelValues(string(phase.Action), "skipped").Inc()
			if err := s.pause(ctx, s.timing.ScrollPause()); err != nil {
				outcome.Stop = domain.StopCancelled
				return outcome, err
			}
			continue
		}

		if !s.limiter.CanAct(run.ledger, phase.Action, run.age, s.clock.Now()) {
			logger.Info("daily limit reached", "used", run.ledger.CountToday(phase.Action, s.clock.Now()))
			outcome.Stop = domain.StopQuota
			return outcome, nil
		}

		if outcome.Visited <= phase.WatchFirst || s.timing.ShouldWatch(phase.WatchProbability) {
			outcome.Watched++
			candidateDecisionCount.WithLabelValues(string(phase.Action), "watched").Inc()
			if err := s.pause(ctx, s.timing.BrowsingPause()); err != nil {
				outcome.Stop = domain.StopCancelled
				return outcome, err
			}
			continue
		}

		candidateDecisionCount.WithLabelValues(string(phase.Action), "acted").Inc()
		if err := executor.Execute(ctx, candidate); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				outcome.Stop = domain.StopCancelled
				return outcome, ctxErr
			}
			outcome.Failed++
			actionAttemptCount.WithLabelValues(string(phase.Action), "failed").Inc()
			logger.Warn("action failed", "target", candidate, "error", err)
		} else {
			run.ledger.Append(phase.Action, candidate, s.clock.Now())
			if err := s.ledgers.Save(context.WithoutCancel(ctx), run.account.ID, run.ledger); err != nil {
				return outcome, fmt.Errorf("record %s on %s: %w", phase.Action, candidate, err)
			}
			outcome.Acted++
			run.summary.Counts[phase.Action]++
			actionAttemptCount.WithLabelValues(string(phase.Action), "recorded").Inc()
			logger.Debug("action recorded", "target", candidate)
		}

		delay := s.timing.ActionDelay(phase, run.fatigue, s.clock.Now())
		run.fatigue++
		if err := s.pause(ctx, delay); err != nil {
			outcome.Stop = domain.StopCancelled
			return outcome, err
		}
	}
}

func (s *Scheduler) accountAge(ctx context.Context, account domain.Account) domain.AccountAge {
	if s.ages != nil {
		return s.ages.AccountAge(ctx, account.ID)
	}

	return account.Age(s.clock.Now())
}

func (s *Scheduler) pause(ctx context.Context, d time.Duration) error {
	return s.sleeper.Sleep(ctx, d)
}

func (s *Scheduler) finish(summary domain.SessionSummary, result string) domain.SessionSummary {
	summary.FinishedAt = s.clock.Now().UTC()
	sessionRunCount.WithLabelValues(summary.SessionType, result).Inc()
	return summary
}
