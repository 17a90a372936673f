package application

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var actionAttemptCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "pacer_action_attempts_total",
	Help: "Executor invocations, by action type and outcome (recorded, failed)",
}, []string{"action", "outcome"})

var candidateDecisionCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "pacer_candidate_decisions_total",
	Help: "Candidates visited during phases, by action type and decision (skipped, watched, acted)",
}, []string{"action", "decision"})

var phaseStopCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "pacer_phase_stops_total",
	Help: "Phase loop terminations, by action type and stop reason",
}, []string{"action", "reason"})

var sessionRunCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "pacer_session_runs_total",
	Help: "Scheduler runs, by session type and result (completed, skipped, cancelled, failed)",
}, []string{"session", "result"})

var pauseDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "pacer_pause_duration_seconds",
	Help:    "Pauses drawn by the timing model, by kind",
	Buckets: prometheus.ExponentialBuckets(0.5, 2, 12),
}, []string{"kind"})

var ledgerResetCount = promauto.NewCounter(prometheus.CounterOpts{
	Name: "pacer_ledger_resets_total",
	Help: "Ledgers that could not be decoded and were replaced by an empty history",
})

// WriteMetrics dumps the default registry in the node_exporter textfile
// format.
func WriteMetrics(path string) error {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}

	return nil
}
