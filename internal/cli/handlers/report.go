package handlers

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/gosuri/uitable"

	"github.com/okuren/tt/internal/cli"
	"github.com/okuren/tt/internal/entry"
	"github.com/okuren/tt/internal/timeparse"
)

func windowAll() entry.Window {
	return entry.Window{}
}

// reportRow is the JSON shape of one grouped report line.
type reportRow struct {
	Key     string `json:"key"`
	Minutes int    `json:"minutes"`
}

// ShowReport prints grouped minute totals for the window, as a table or
// as JSON/CSV when requested.
func ShowReport(deps *cli.Deps, since, until, groupBy string, asJSON, asCSV bool) {
	win, err := timeparse.Window(since, until)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}

	rows, err := deps.Services.Reports.Grouped(win, groupBy, deps.Services.Reports.Mode())
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}

	if asJSON {
		out := make([]reportRow, 0, len(rows))
		for _, r := range rows {
			out = append(out, reportRow{Key: r.Key, Minutes: r.Minutes})
		}
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
			deps.Exit(1)
		}
		return
	}

	if asCSV {
		w := csv.NewWriter(deps.Stdout)
		_ = w.Write([]string{"key", "minutes"})
		for _, r := range rows {
			_ = w.Write([]string{r.Key, strconv.Itoa(r.Minutes)})
		}
		w.Flush()
		if err := w.Error(); err != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
			deps.Exit(1)
		}
		return
	}

	if len(rows) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No time logged in this window")
		return
	}

	table := uitable.New()
	table.MaxColWidth = 60
	heading := "TASK"
	if groupBy == "day" {
		heading = "DAY"
	}
	table.AddRow(heading, "TIME")
	total := 0
	for _, r := range rows {
		table.AddRow(r.Key, cli.FormatMinutes(r.Minutes))
		total += r.Minutes
	}
	_, _ = fmt.Fprintln(deps.Stdout, table)
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 30))
	_, _ = fmt.Fprintf(deps.Stdout, "Total: %s\n", cli.FormatMinutes(total))
}

// ShowTaskReport prints the per-entry breakdown for one task.
func ShowTaskReport(deps *cli.Deps, taskID int64, since, until string) {
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

	rows, err := deps.Services.Reports.EntryBreakdown(taskID, win)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}
	if len(rows) == 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "No time logged for task %d\n", taskID)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Task %d: %s\n", task.ID, task.Title)
	total := 0
	for _, r := range rows {
		_, _ = fmt.Fprintf(deps.Stdout, "  %-40s %10s\n", cli.FormatNote(r.Note), cli.FormatMinutes(r.Minutes))
		total += r.Minutes
	}
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 52))
	_, _ = fmt.Fprintf(deps.Stdout, "  %-40s %10s\n", "Total", cli.FormatMinutes(total))
}

// ExportCSV writes every entry in the window as CSV rows.
func ExportCSV(deps *cli.Deps, since, until string) {
	win, err := timeparse.Window(since, until)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}

	tasks, err := deps.Services.Tasks.List(true)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}

	w := csv.NewWriter(deps.Stdout)
	_ = w.Write([]string{"entry_id", "task_id", "task", "start", "end", "minutes", "note"})
	for _, task := range tasks {
		rows, err := deps.Services.Reports.EntriesForTask(task.ID, win)
		if err != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
			deps.Exit(1)
			return
		}
		for _, r := range rows {
			end := ""
			if r.Entry.End != nil {
				end = cli.FormatTime(*r.Entry.End)
			}
			_ = w.Write([]string{
				strconv.FormatInt(r.Entry.ID, 10),
				strconv.FormatInt(task.ID, 10),
				task.Title,
				cli.FormatTime(r.Entry.Start),
				end,
				strconv.Itoa(r.Minutes),
				r.Entry.Note,
			})
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
	}
}

// ExportMarkdown writes a per-task markdown summary for the window.
func ExportMarkdown(deps *cli.Deps, since, until string) {
	win, err := timeparse.Window(since, until)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}

	tasks, err := deps.Services.Tasks.List(true)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}

	totals, err := deps.Services.Reports.TotalsByTask(win, deps.Services.Reports.Mode())
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout, "# Time report")
	_, _ = fmt.Fprintln(deps.Stdout)
	grand := 0
	for _, task := range tasks {
		mins, ok := totals[task.ID]
		if !ok {
			continue
		}
		grand += mins
		_, _ = fmt.Fprintf(deps.Stdout, "## %s (%s)\n", task.Title, cli.FormatMinutes(mins))
		_, _ = fmt.Fprintln(deps.Stdout)

		rows, err := deps.Services.Reports.EntryBreakdown(task.ID, win)
		if err != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
			deps.Exit(1)
			return
		}
		for _, r := range rows {
			_, _ = fmt.Fprintf(deps.Stdout, "- %s: %s\n", cli.FormatNote(r.Note), cli.FormatMinutes(r.Minutes))
		}
		_, _ = fmt.Fprintln(deps.Stdout)
	}
	_, _ = fmt.Fprintf(deps.Stdout, "**Total: %s**\n", cli.FormatMinutes(grand))
}

// ShowDoctor runs the store health checks and prints the results.
func ShowDoctor(deps *cli.Deps) {
	report, err := deps.Services.Doctor()
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Open entries:           %d\n", report.OpenEntries)
	_, _ = fmt.Fprintf(deps.Stdout, "Dangling entries:       %d\n", report.DanglingEntries)
	_, _ = fmt.Fprintf(deps.Stdout, "Unreadable timestamps:  %d\n", report.CorruptTimestamps)
	if report.Healthy() {
		_, _ = fmt.Fprintln(deps.Stdout, "Status: ok")
		return
	}
	_, _ = fmt.Fprintln(deps.Stderr, "Status: ledger needs attention")
	if report.OpenEntries > 1 {
		_, _ = fmt.Fprintf(deps.Stderr, "  %d entries are open; at most one should be\n", report.OpenEntries)
	}
	if report.DanglingEntries > 0 {
		_, _ = fmt.Fprintf(deps.Stderr, "  %d entries reference missing tasks\n", report.DanglingEntries)
	}
	if report.CorruptTimestamps > 0 {
		_, _ = fmt.Fprintf(deps.Stderr, "  %d entries have timestamps that cannot be read\n", report.CorruptTimestamps)
	}
	deps.Exit(1)
}
