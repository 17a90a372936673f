package domain

import "time"

// StopReason records why a phase loop ended.
type StopReason string

const (
	StopExhausted         StopReason = "exhausted"
	StopSizeReached       StopReason = "size_reached"
	StopAborted           StopReason = "aborted"
	StopQuota             StopReason = "quota"
	StopNoExecutor        StopReason = "no_executor"
	StopSourceUnavailable StopReason = "source_unavailable"
	StopCancelled         StopReason = "cancelled"
)

type PhaseOutcome struct {
	Action  ActionType `json:"action" yaml:"action"`
	Source  string     `json:"source" yaml:"source"`
	Visited int        `json:"visited" yaml:"visited"`
	Acted   int        `json:"acted" yaml:"acted"`
	Failed  int        `json:"failed" yaml:"failed"`
	Skipped int        `json:"skipped" yaml:"skipped"`
	Watched int        `json:"watched" yaml:"watched"`
	Stop    StopReason `json:"stop" yaml:"stop"`
}

// SessionSummary reports one scheduler run. Counts only include actions that
// were recorded in the ledger during the run.
type SessionSummary struct {
	RunID       string             `json:"run_id" yaml:"run_id"`
	Account     AccountID          `json:"account" yaml:"account"`
	SessionType string             `json:"session_type" yaml:"session_type"`
	Skipped     bool               `json:"skipped" yaml:"skipped"`
	StartedAt   time.Time          `json:"started_at" yaml:"started_at"`
	FinishedAt  time.Time          `json:"finished_at" yaml:"finished_at"`
	Phases      []PhaseOutcome     `json:"phases" yaml:"phases"`
	Counts      map[ActionType]int `json:"counts" yaml:"counts"`
}

func (s SessionSummary) Total() int {
	total := 0
	for _, count := range s.Counts {
		total += count
	}

	return total
}
