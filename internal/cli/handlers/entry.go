package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gosuri/uitable"

	"github.com/okuren/tt/internal/cli"
	"github.com/okuren/tt/internal/service"
	"github.com/okuren/tt/internal/timeparse"
)

// AddEntry records a closed entry for the task from one of the manual
// shapes (minutes, ago, start+end, start+minutes).
func AddEntry(deps *cli.Deps, taskID int64, opts service.AddOptions) {
	id, err := deps.Services.Entries.Add(taskID, opts)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingShape):
			_, _ = fmt.Fprintln(deps.Stderr, "Error: Give the entry a duration or an interval")
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: --minutes 30, --ago 1h30m, or --start ... with --end/--minutes")
		case errors.Is(err, service.ErrAmbiguousShape):
			_, _ = fmt.Fprintln(deps.Stderr, "Error: --end and --minutes cannot be combined")
		case errors.Is(err, service.ErrMissingEndOrMinutes):
			_, _ = fmt.Fprintln(deps.Stderr, "Error: --start needs --end or --minutes")
		case errors.Is(err, service.ErrTaskNotFound):
			_, _ = fmt.Fprintf(deps.Stderr, "Error: No task with id %d\n", taskID)
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: List tasks with 'tt task ls'")
		default:
			_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		}
		deps.Exit(1)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Logged entry %d on task %d\n", id, taskID)
}

// ListEntries prints a task's entries, optionally restricted to a window.
func ListEntries(deps *cli.Deps, taskID int64, since, until string) {
	win, err := timeparse.Window(since, until)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}

	task, err := deps.Services.Tasks.Get(taskID)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}
	if task == nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: No task with id %d\n", taskID)
		deps.Exit(1)
		return
	}

	rows, err := deps.Services.Reports.EntriesForTask(taskID, win)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}
	if len(rows) == 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "No entries for task %d\n", taskID)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Entries for task %d: %s\n", task.ID, task.Title)
	table := uitable.New()
	table.MaxColWidth = 60
	table.AddRow("ID", "START", "END", "MINUTES", "NOTE")
	total := 0
	for _, r := range rows {
		end := "(open)"
		if r.Entry.End != nil {
			end = cli.FormatTime(*r.Entry.End)
		}
		table.AddRow(r.Entry.ID, cli.FormatTime(r.Entry.Start), end, r.Minutes, cli.FormatNote(r.Entry.Note))
		total += r.Minutes
	}
	_, _ = fmt.Fprintln(deps.Stdout, table)
	_, _ = fmt.Fprintf(deps.Stdout, "Total: %s\n", cli.FormatMinutes(total))
}

// RemoveEntry deletes an entry by id.
func RemoveEntry(deps *cli.Deps, id int64) {
	found, err := deps.Services.Entries.Delete(id)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}
	if !found {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: No entry with id %d\n", id)
		deps.Exit(1)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Removed entry %d\n", id)
}

// EditEntry rewrites an entry's note and, for closed entries, its
// duration.
func EditEntry(deps *cli.Deps, id int64, minutes *int, note *string) {
	if minutes == nil && note == nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Nothing to change")
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Give --minutes and/or --note")
		deps.Exit(1)
		return
	}

	found, err := deps.Services.Entries.Edit(id, minutes, note)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOpenEntryResize):
			_, _ = fmt.Fprintln(deps.Stderr, "Error: Cannot resize a running entry")
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: Stop it first with 'tt stop'")
		case errors.Is(err, service.ErrNegativeMinutes):
			_, _ = fmt.Fprintln(deps.Stderr, "Error: Minutes cannot be negative")
		default:
			_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		}
		deps.Exit(1)
		return
	}
	if !found {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: No entry with id %d\n", id)
		deps.Exit(1)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Updated entry %d\n", id)
}

// MoveEntry reassigns an entry to another task.
func MoveEntry(deps *cli.Deps, id, taskID int64) {
	ok, err := deps.Services.Entries.Reassign(id, taskID)
	if err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: No task with id %d\n", taskID)
		} else {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		}
		deps.Exit(1)
		return
	}
	if !ok {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: No entry with id %d\n", id)
		deps.Exit(1)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Moved entry %d to task %d\n", id, taskID)
}

// SplitEntry divides a closed entry at an instant strictly inside it.
func SplitEntry(deps *cli.Deps, id int64, at string) {
	point, err := timeparse.DateTime(at)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid split point %q\n", at)
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	left, right, err := deps.Services.Entries.Split(id, point)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEntryNotFound):
			_, _ = fmt.Fprintf(deps.Stderr, "Error: No entry with id %d\n", id)
		case errors.Is(err, service.ErrOpenEntrySplit):
			_, _ = fmt.Fprintln(deps.Stderr, "Error: Cannot split a running entry")
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: Stop it first with 'tt stop'")
		case errors.Is(err, service.ErrSplitOutsideInterval):
			_, _ = fmt.Fprintln(deps.Stderr, "Error: Split point must fall strictly inside the entry")
		default:
			_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		}
		deps.Exit(1)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Split entry %d into %d and %d\n", id, left, right)
}

// TrimEntry replaces one or both bounds of a closed entry.
func TrimEntry(deps *cli.Deps, id int64, start, end string) {
	if start == "" && end == "" {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Nothing to trim")
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Give --start and/or --end")
		deps.Exit(1)
		return
	}

	var newStart, newEnd *time.Time
	if start != "" {
		t, err := timeparse.DateTime(start)
		if err != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid --start %q: %v\n", start, err)
			deps.Exit(1)
			return
		}
		newStart = &t
	}
	if end != "" {
		t, err := timeparse.DateTime(end)
		if err != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid --end %q: %v\n", end, err)
			deps.Exit(1)
			return
		}
		newEnd = &t
	}

	found, err := deps.Services.Entries.Trim(id, newStart, newEnd)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOpenEntryTrim):
			_, _ = fmt.Fprintln(deps.Stderr, "Error: Cannot trim a running entry")
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: Stop it first with 'tt stop'")
		case errors.Is(err, service.ErrTrimNonPositive):
			_, _ = fmt.Fprintln(deps.Stderr, "Error: Trim would leave a non-positive interval; entry unchanged")
		default:
			_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		}
		deps.Exit(1)
		return
	}
	if !found {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: No entry with id %d\n", id)
		deps.Exit(1)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Trimmed entry %d\n", id)
}
