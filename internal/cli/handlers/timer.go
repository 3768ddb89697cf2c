// Package handlers implements the CLI command handlers. Each handler
// takes the injected Deps, talks to the service layer, and renders the
// outcome to Stdout/Stderr.
package handlers

import (
	"errors"
	"fmt"

	"github.com/okuren/tt/internal/cli"
	"github.com/okuren/tt/internal/service"
)

// StartTask opens a tracking entry for the task, auto-closing any entry
// that is already running.
func StartTask(deps *cli.Deps, taskID int64, note string) {
	running, _ := deps.Services.Tracker.Status()

	id, err := deps.Services.Tracker.Start(taskID, note)
	if err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: No task with id %d\n", taskID)
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: List tasks with 'tt task ls'")
		} else {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		}
		deps.Exit(1)
		return
	}

	if running.Entry != nil {
		_, _ = fmt.Fprintf(deps.Stdout, "Stopped entry %d on task %d (%s)\n",
			running.Entry.ID, running.Entry.TaskID, cli.FormatElapsed(running.Elapsed))
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Started entry %d on task %d\n", id, taskID)
}

// StopTask closes the running entry. A zero taskID stops whatever is
// running; otherwise only an entry on that task is stopped.
func StopTask(deps *cli.Deps, taskID int64) {
	id, err := deps.Services.Tracker.Stop(taskID)
	if err != nil {
		if errors.Is(err, service.ErrNothingRunning) {
			_, _ = fmt.Fprintln(deps.Stderr, "Error: Nothing is running")
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: Start tracking with 'tt start <task-id>'")
		} else {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		}
		deps.Exit(1)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Stopped entry %d\n", id)
}

// SwitchTask stops whatever is running and starts tracking the task.
func SwitchTask(deps *cli.Deps, taskID int64, note string) {
	StartTask(deps, taskID, note)
}

// ResumeLast reopens tracking on the task of the most recently closed
// entry, reusing its note unless an override is given.
func ResumeLast(deps *cli.Deps, note string) {
	id, taskID, err := deps.Services.Tracker.Resume(note)
	if err != nil {
		if errors.Is(err, service.ErrNoPriorEntry) {
			_, _ = fmt.Fprintln(deps.Stderr, "Error: No previous entry to resume")
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: Start tracking with 'tt start <task-id>'")
		} else {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		}
		deps.Exit(1)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Resumed task %d (entry %d)\n", taskID, id)
}

// ShowStatus prints the running entry, if any.
func ShowStatus(deps *cli.Deps) {
	status, err := deps.Services.Tracker.Status()
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}

	if status.Entry == nil {
		_, _ = fmt.Fprintln(deps.Stdout, "Nothing running")
		_, _ = fmt.Fprintln(deps.Stdout, "Start tracking with: tt start <task-id>")
		return
	}

	e := status.Entry
	task, _ := deps.Services.Tasks.Get(e.TaskID)
	title := fmt.Sprintf("task %d", e.TaskID)
	if task != nil {
		title = fmt.Sprintf("task %d: %s", task.ID, task.Title)
	}

	_, _ = fmt.Fprintln(deps.Stdout, "Tracking:")
	_, _ = fmt.Fprintf(deps.Stdout, "  %s\n", title)
	_, _ = fmt.Fprintf(deps.Stdout, "  Note:    %s\n", cli.FormatNote(e.Note))
	_, _ = fmt.Fprintf(deps.Stdout, "  Started: %s\n", cli.FormatTime(e.Start))
	_, _ = fmt.Fprintf(deps.Stdout, "  Elapsed: %s\n", cli.FormatElapsed(status.Elapsed))
}
