package handlers

import (
	"errors"
	"fmt"

	"github.com/gosuri/uitable"

	"github.com/okuren/tt/internal/cli"
	"github.com/okuren/tt/internal/service"
)

// AddTask creates a new task.
func AddTask(deps *cli.Deps, title string) {
	id, err := deps.Services.Tasks.Add(title)
	if err != nil {
		if errors.Is(err, service.ErrEmptyTitle) {
			_, _ = fmt.Fprintln(deps.Stderr, "Error: Title cannot be empty")
			_, _ = fmt.Fprintln(deps.Stderr, "Usage: tt task add <title>")
		} else {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		}
		deps.Exit(1)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Added task %d: %s\n", id, title)
}

// ListTasks prints a task table, with total logged minutes per task.
func ListTasks(deps *cli.Deps, includeArchived bool) {
	tasks, err := deps.Services.Tasks.List(includeArchived)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}
	if len(tasks) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No tasks")
		_, _ = fmt.Fprintln(deps.Stdout, "Add one with: tt task add <title>")
		return
	}

	if limit := deps.Config.List.Limit; limit > 0 && len(tasks) > limit {
		tasks = tasks[:limit]
	}

	table := uitable.New()
	table.MaxColWidth = 60

	if deps.Config.List.Compact {
		table.AddRow("ID", "STATUS", "TITLE")
		for _, t := range tasks {
			table.AddRow(t.ID, cli.FormatStatus(t.Status), t.Title)
		}
		_, _ = fmt.Fprintln(deps.Stdout, table)
		return
	}

	totals, err := deps.Services.Reports.TotalsByTask(windowAll(), deps.Services.Reports.Mode())
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}

	table.AddRow("ID", "STATUS", "LOGGED", "TITLE")
	for _, t := range tasks {
		table.AddRow(t.ID, cli.FormatStatus(t.Status), cli.FormatMinutes(totals[t.ID]), t.Title)
	}
	_, _ = fmt.Fprintln(deps.Stdout, table)
}

// CompleteTask marks the task done.
func CompleteTask(deps *cli.Deps, id int64) {
	setTaskStatus(deps, id, deps.Services.Tasks.Done, "Completed")
}

// ArchiveTask hides the task from default listings.
func ArchiveTask(deps *cli.Deps, id int64) {
	setTaskStatus(deps, id, deps.Services.Tasks.Archive, "Archived")
}

// UnarchiveTask restores an archived task to todo.
func UnarchiveTask(deps *cli.Deps, id int64) {
	setTaskStatus(deps, id, deps.Services.Tasks.Unarchive, "Unarchived")
}

func setTaskStatus(deps *cli.Deps, id int64, op func(int64) (bool, error), verb string) {
	ok, err := op(id)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}
	if !ok {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: No task with id %d\n", id)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: List tasks with 'tt task ls'")
		deps.Exit(1)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "%s task %d\n", verb, id)
}

// RemoveTask deletes the task. Tasks that still have entries require
// force, which deletes the entries too.
func RemoveTask(deps *cli.Deps, id int64, force bool) {
	ok, err := deps.Services.Tasks.Delete(id, force)
	if err != nil {
		if errors.Is(err, service.ErrTaskHasEntries) {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Task %d still has time entries\n", id)
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: Use 'tt task rm --force' to delete the task and its entries")
		} else {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		}
		deps.Exit(1)
		return
	}
	if !ok {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: No task with id %d\n", id)
		deps.Exit(1)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Removed task %d\n", id)
}
