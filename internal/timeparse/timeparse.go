// Package timeparse converts free-form duration and point-in-time strings
// into minutes or absolute local-zone timestamps.
//
// Durations: "1h30m", "2d", ":45" (minutes shorthand), or a bare integer
// minute count. Points: named anchors (today, yesterday, monday, week,
// last-week, month, now), RFC3339 timestamps, or "YYYY-MM-DD HH:MM" and
// "YYYY-MM-DD" shorthands interpreted in the local zone.
package timeparse

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/okuren/tt/internal/entry"
)

// Minutes parses a human duration string and returns whole minutes.
// Accepted forms: "NdNhNm" combinations in any order, ":N" shorthand,
// or a bare integer. A trailing number without a unit counts as minutes.
// Zero or empty durations are errors.
func Minutes(s string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	// ":30" shorthand for 30 minutes
	if strings.HasPrefix(s, ":") && isDigits(s[1:]) {
		val, _ := strconv.Atoi(s[1:])
		if val <= 0 {
			return 0, fmt.Errorf("duration must be > 0 minutes")
		}
		return val, nil
	}

	if isDigits(s) && s != "" {
		val, _ := strconv.Atoi(s)
		if val <= 0 {
			return 0, fmt.Errorf("duration must be > 0 minutes")
		}
		return val, nil
	}

	var num strings.Builder
	var days, hours, mins int
	for _, ch := range s {
		switch {
		case ch >= '0' && ch <= '9':
			num.WriteRune(ch)
		case ch == 'd' || ch == 'h' || ch == 'm':
			if num.Len() == 0 {
				return 0, fmt.Errorf("missing number before %q in %q", ch, s)
			}
			val, _ := strconv.Atoi(num.String())
			num.Reset()
			switch ch {
			case 'd':
				days += val
			case 'h':
				hours += val
			default:
				mins += val
			}
		case ch == ' ' || ch == '\t':
			// whitespace between parts is allowed
		default:
			return 0, fmt.Errorf("invalid char %q in duration %q", ch, s)
		}
	}
	if num.Len() > 0 {
		// trailing number without unit counts as minutes
		val, _ := strconv.Atoi(num.String())
		mins += val
	}

	total := days*24*60 + hours*60 + mins
	if total <= 0 {
		return 0, fmt.Errorf("duration must be > 0 minutes")
	}
	return total, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, ch := range s {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}

// DateTime parses an absolute timestamp: "now", RFC3339, or the
// "YYYY-MM-DD HH:MM[:SS]" and "YYYY-MM-DD" shorthands. Naive inputs are
// interpreted in the local zone; the result is always zone-aware.
func DateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "now") {
		return time.Now(), nil
	}

	// allow "YYYY-MM-DD HH:MM" as shorthand for the combined form
	if strings.Contains(s, " ") && !strings.Contains(s, "T") {
		s = strings.Replace(s, " ", "T", 1)
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Local(), nil
	}
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid datetime %q (use ISO format or 'YYYY-MM-DD HH:MM')", s)
}

// Point resolves a named window anchor or an absolute timestamp.
// Named anchors: today, yesterday, monday, week, last-week, month, now.
func Point(name string) (time.Time, error) {
	n := time.Now()
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "today":
		return StartOfDay(n), nil
	case "yesterday":
		return StartOfDay(n).AddDate(0, 0, -1), nil
	case "monday", "week":
		return StartOfWeek(n), nil
	case "last-week":
		return StartOfWeek(n).AddDate(0, 0, -7), nil
	case "month":
		return StartOfMonth(n), nil
	case "now":
		return n, nil
	}
	return DateTime(name)
}

// Window builds a reporting window from two optional point strings.
// Empty strings leave the corresponding bound open.
func Window(since, until string) (entry.Window, error) {
	var w entry.Window
	if since != "" {
		t, err := Point(since)
		if err != nil {
			return entry.Window{}, fmt.Errorf("invalid --since: %w", err)
		}
		w.Start = &t
	}
	if until != "" {
		t, err := Point(until)
		if err != nil {
			return entry.Window{}, fmt.Errorf("invalid --until: %w", err)
		}
		w.End = &t
	}
	return w, nil
}

// StartOfDay returns midnight (00:00:00) of the given day in its zone.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns Monday 00:00:00 of the week containing t (ISO).
// Handles the Sunday edge case where Go's Weekday() returns 0.
func StartOfWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 { // Sunday
		weekday = 7
	}
	return StartOfDay(t).AddDate(0, 0, -(weekday - 1))
}

// StartOfMonth returns the first day of the month at 00:00:00 in t's zone.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
