// Package service provides the business logic layer for the tt
// application: the entry lifecycle state machine, manual entry editing,
// and windowed minute aggregation. It wraps the SQLite store and exposes
// a clean API for the CLI and pomodoro frontends.
package service

import (
	"errors"
	"time"

	"github.com/okuren/tt/internal/entry"
)

// Validation errors: deterministic caller-input problems, never retried.
var (
	ErrAmbiguousShape       = errors.New("provide either --end or --minutes with --start, not both")
	ErrMissingShape         = errors.New("specify one of: --minutes, --ago, or --start (+ --end | --minutes)")
	ErrMissingEndOrMinutes  = errors.New("when using --start, specify either --end or --minutes")
	ErrNonPositiveDuration  = errors.New("end must be after start")
	ErrNonPositiveMinutes   = errors.New("minutes must be > 0")
	ErrNegativeMinutes      = errors.New("minutes must be >= 0")
	ErrOpenEntryResize      = errors.New("cannot edit duration of a running entry; stop it first")
	ErrOpenEntrySplit       = errors.New("cannot split a running entry")
	ErrOpenEntryTrim        = errors.New("cannot trim a running entry")
	ErrSplitOutsideInterval = errors.New("split point must be strictly inside the entry interval")
	ErrTrimNonPositive      = errors.New("trim results in non-positive duration")
	ErrEmptyTitle           = errors.New("title cannot be empty")
)

// Not-found conditions: surfaced so the caller can choose phrasing.
var (
	ErrNothingRunning = errors.New("nothing running")
	ErrNoPriorEntry   = errors.New("no previous entry to resume")
	ErrEntryNotFound  = errors.New("entry not found")
	ErrTaskNotFound   = errors.New("task not found")
)

// RunningStatus describes the currently open entry, if any.
type RunningStatus struct {
	Entry   *entry.TimeEntry
	Elapsed time.Duration
}

// BreakdownRow is one line of a per-task entry breakdown.
type BreakdownRow struct {
	Note    string
	Minutes int
}

// EntryRow pairs an entry with its rounded minutes for listings.
type EntryRow struct {
	Entry   entry.TimeEntry
	Minutes int
}

// GroupTotal is one row of a grouped report.
type GroupTotal struct {
	Key     string
	Minutes int
}

// DoctorReport holds the results of the store health checks.
type DoctorReport struct {
	OpenEntries       int
	DanglingEntries   int
	CorruptTimestamps int
}

// Healthy reports whether no invariant violations were found.
func (r DoctorReport) Healthy() bool {
	return r.OpenEntries <= 1 && r.DanglingEntries == 0 && r.CorruptTimestamps == 0
}
