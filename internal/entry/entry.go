// Package entry defines the time entry record and the pure interval
// arithmetic used for all reporting: window overlap and the rounding
// policy that converts raw seconds to whole minutes.
package entry

import (
	"regexp"
	"strings"
	"time"
)

// TimeEntry represents a single interval of work against a task.
// A nil End means the entry is open (currently running).
type TimeEntry struct {
	ID     int64
	TaskID int64
	Start  time.Time
	End    *time.Time
	Note   string
}

// Open reports whether the entry is still running.
func (e TimeEntry) Open() bool {
	return e.End == nil
}

// Window is an optional reporting window. A nil bound means unbounded
// on that side. Windows are read-side only and never persisted.
type Window struct {
	Start *time.Time
	End   *time.Time
}

// IsZero reports whether the window is unbounded on both sides.
func (w Window) IsZero() bool {
	return w.Start == nil && w.End == nil
}

// OverlapSeconds computes the intersection, in whole seconds, between the
// entry's interval and the window. An open entry is treated as ongoing up
// to now. Returns 0 for an empty or inverted intersection.
func OverlapSeconds(e TimeEntry, w Window, now time.Time) int {
	end := now
	if e.End != nil {
		end = *e.End
	}

	a := e.Start
	if w.Start != nil && w.Start.After(a) {
		a = *w.Start
	}
	b := end
	if w.End != nil && w.End.Before(b) {
		b = *w.End
	}

	if !b.After(a) {
		return 0
	}
	return int(b.Sub(a) / time.Second)
}

// RoundingMode selects how raw seconds become reported minutes.
type RoundingMode string

const (
	// RoundPerEntry rounds each entry's overlap independently and sums
	// the already-rounded minutes per group.
	RoundPerEntry RoundingMode = "entry"
	// RoundOverall sums seconds per group first and rounds once.
	RoundOverall RoundingMode = "overall"
)

// RoundSecondsToMinutes converts seconds to whole minutes: nearest-minute
// rounding, clamped so any positive overlap reports at least one minute.
// Non-positive input yields 0.
func RoundSecondsToMinutes(seconds int) int {
	if seconds <= 0 {
		return 0
	}
	minutes := (seconds + 30) / 60
	if minutes < 1 {
		return 1
	}
	return minutes
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// NormalizeNote collapses internal runs of whitespace, newlines, and tabs
// to single spaces and trims the result. An empty result means "no note".
func NormalizeNote(note string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(note, " "))
}
