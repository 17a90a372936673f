package domain

import (
	"sort"
	"time"
)

// Ledger is the append-only history of actions taken by one account. Quota
// accounting only ever looks at records whose timestamp falls on the current
// UTC calendar date. A Ledger is not safe for concurrent use.
type Ledger struct {
	records []ActionRecord
}

func NewLedger(records ...ActionRecord) Ledger {
	normalized := make([]ActionRecord, 0, len(records))
	for _, record := range records {
		record.At = normalizeTimestamp(record.At)
		normalized = append(normalized, record)
	}

	return Ledger{records: normalized}
}

func (l Ledger) Len() int {
	return len(l.records)
}

// Records returns a copy of the history in append order.
func (l Ledger) Records() []ActionRecord {
	out := make([]ActionRecord, len(l.records))
	copy(out, l.records)
	return out
}

// Append adds one record stamped with at (UTC, second precision) and returns it.
func (l *Ledger) Append(action ActionType, target string, at time.Time) ActionRecord {
	record := ActionRecord{Type: action, Target: target, At: normalizeTimestamp(at)}
	// Force a fresh backing array so copies taken before Append never observe it.
	l.records = append(l.records[:len(l.records):len(l.records)], record)
	return record
}

func (l Ledger) CountToday(action ActionType, now time.Time) int {
	count := 0
	for _, record := range l.records {
		if record.Type == action && SameUTCDay(record.At, now) {
			count++
		}
	}

	return count
}

func (l Ledger) SummaryToday(now time.Time) map[ActionType]int {
	counts := map[ActionType]int{}
	for _, record := range l.records {
		if SameUTCDay(record.At, now) {
			counts[record.Type]++
		}
	}

	return counts
}

func (l Ledger) HasTarget(action ActionType, target string) bool {
	for _, record := range l.records {
		if record.Type == action && record.Target == target {
			return true
		}
	}

	return false
}

// StaleTargets lists targets that received action before cutoff and never
// received undo afterwards, in order of first occurrence.
func (l Ledger) StaleTargets(action, undo ActionType, cutoff time.Time) []string {
	undone := map[string]struct{}{}
	for _, record := range l.records {
		if record.Type == undo {
			undone[record.Target] = struct{}{}
		}
	}

	seen := map[string]struct{}{}
	targets := make([]string, 0)
	for _, record := range l.records {
		if record.Type != action || record.Target == "" || !record.At.Before(cutoff) {
			continue
		}
		if _, ok := undone[record.Target]; ok {
			continue
		}
		if _, ok := seen[record.Target]; ok {
			continue
		}
		seen[record.Target] = struct{}{}
		targets = append(targets, record.Target)
	}

	return targets
}

// SameUTCDay reports whether a and b fall on the same UTC calendar date.
func SameUTCDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

// SortedActionTypes returns the keys of counts in lexical order.
func SortedActionTypes(counts map[ActionType]int) []ActionType {
	keys := make([]ActionType, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
