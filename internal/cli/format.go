// Package cli provides the CLI presentation layer for the tt application.
// It handles command-line output formatting and user interaction.
package cli

import (
	"fmt"
	"time"

	"github.com/fatih/color"

	"github.com/okuren/tt/internal/store"
)

// FormatMinutes formats rounded minutes as a human-readable string.
// Examples: "45m", "2h 05m", "0m"
func FormatMinutes(minutes int) string {
	if minutes <= 0 {
		return "0m"
	}
	hours := minutes / 60
	mins := minutes % 60
	if hours > 0 {
		return fmt.Sprintf("%dh %02dm", hours, mins)
	}
	return fmt.Sprintf("%dm", mins)
}

// FormatElapsed formats a running duration with second precision.
// Examples: "42s", "5m 03s", "1h 23m"
func FormatElapsed(d time.Duration) string {
	total := int(d.Seconds())
	if total < 0 {
		total = 0
	}
	hours := total / 3600
	mins := (total % 3600) / 60
	secs := total % 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
	if mins > 0 {
		return fmt.Sprintf("%dm %02ds", mins, secs)
	}
	return fmt.Sprintf("%ds", secs)
}

// FormatNote returns the note, or a placeholder for empty notes.
func FormatNote(note string) string {
	if note == "" {
		return "(no note)"
	}
	return note
}

// FormatTime formats an instant for listings, in local time.
func FormatTime(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04")
}

// FormatStatus returns the task status, colorized for terminals.
func FormatStatus(status string) string {
	switch status {
	case store.StatusDoing:
		return color.GreenString(status)
	case store.StatusDone:
		return color.CyanString(status)
	case store.StatusArchived:
		return color.New(color.Faint).Sprint(status)
	default:
		return status
	}
}

// Pluralize returns the singular or plural form of a word based on count
func Pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	return word + "s"
}
