package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/okuren/tt/internal/config"
	"github.com/okuren/tt/internal/entry"
	"github.com/okuren/tt/internal/store"
)

// ReportService answers aggregate questions over the ledger: per-task and
// per-entry minute totals within an optional window, under the configured
// rounding policy.
type ReportService struct {
	store *store.Store
	cfg   config.Config
	// Now is the clock used as the effective end of open entries.
	Now func() time.Time
}

// NewReportService creates a new ReportService
func NewReportService(st *store.Store, cfg config.Config) *ReportService {
	return &ReportService{store: st, cfg: cfg, Now: time.Now}
}

// Mode returns the configured rounding mode.
func (s *ReportService) Mode() entry.RoundingMode {
	if s.cfg.Rounding == "overall" {
		return entry.RoundOverall
	}
	return entry.RoundPerEntry
}

// TotalsByTask computes minutes per task over the window. In entry mode
// each entry's overlap is rounded independently and the rounded minutes
// are summed; in overall mode seconds are summed per task and rounded
// once. Entries with zero overlap contribute nothing.
func (s *ReportService) TotalsByTask(win entry.Window, mode entry.RoundingMode) (map[int64]int, error) {
	entries, err := s.store.ListEntries()
	if err != nil {
		return nil, fmt.Errorf("failed to read entries: %w", err)
	}
	now := s.Now()

	if mode == entry.RoundOverall {
		seconds := make(map[int64]int)
		for _, e := range entries {
			if sec := entry.OverlapSeconds(e, win, now); sec > 0 {
				seconds[e.TaskID] += sec
			}
		}
		totals := make(map[int64]int, len(seconds))
		for taskID, sec := range seconds {
			totals[taskID] = entry.RoundSecondsToMinutes(sec)
		}
		return totals, nil
	}

	totals := make(map[int64]int)
	for _, e := range entries {
		if sec := entry.OverlapSeconds(e, win, now); sec > 0 {
			totals[e.TaskID] += entry.RoundSecondsToMinutes(sec)
		}
	}
	return totals, nil
}

// EntryBreakdown lists a task's entries as (note, minutes) rows in
// creation order. Windowed listings drop zero-minute rows; unwindowed
// listings keep every entry for display parity with "all logs".
func (s *ReportService) EntryBreakdown(taskID int64, win entry.Window) ([]BreakdownRow, error) {
	entries, err := s.store.ListForTask(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to read entries: %w", err)
	}
	now := s.Now()

	var rows []BreakdownRow
	for _, e := range entries {
		mins := entry.RoundSecondsToMinutes(entry.OverlapSeconds(e, win, now))
		if !win.IsZero() && mins <= 0 {
			continue
		}
		rows = append(rows, BreakdownRow{Note: e.Note, Minutes: mins})
	}
	return rows, nil
}

// EntriesForTask lists a task's entries with ids and rounded minutes for
// the log listing. Windowed listings drop zero-minute rows.
func (s *ReportService) EntriesForTask(taskID int64, win entry.Window) ([]EntryRow, error) {
	entries, err := s.store.ListForTask(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to read entries: %w", err)
	}
	now := s.Now()

	var rows []EntryRow
	for _, e := range entries {
		mins := entry.RoundSecondsToMinutes(entry.OverlapSeconds(e, win, now))
		if !win.IsZero() && mins <= 0 {
			continue
		}
		rows = append(rows, EntryRow{Entry: e, Minutes: mins})
	}
	return rows, nil
}

// Grouped aggregates minutes by task or by day (local date of the entry's
// start) over the window, honoring the rounding mode. Rows are sorted by
// minutes descending, then key ascending.
func (s *ReportService) Grouped(win entry.Window, groupBy string, mode entry.RoundingMode) ([]GroupTotal, error) {
	if groupBy != "task" && groupBy != "day" {
		return nil, fmt.Errorf("invalid group %q (use task or day)", groupBy)
	}

	entries, err := s.store.ListEntries()
	if err != nil {
		return nil, fmt.Errorf("failed to read entries: %w", err)
	}
	titles, err := s.taskTitles()
	if err != nil {
		return nil, err
	}
	now := s.Now()

	seconds := make(map[string]int)
	perEntry := make(map[string]int)
	for _, e := range entries {
		sec := entry.OverlapSeconds(e, win, now)
		if sec <= 0 {
			continue
		}
		key := fmt.Sprintf("%d:%s", e.TaskID, titles[e.TaskID])
		if groupBy == "day" {
			key = e.Start.Local().Format("2006-01-02")
		}
		seconds[key] += sec
		perEntry[key] += entry.RoundSecondsToMinutes(sec)
	}

	totals := perEntry
	if mode == entry.RoundOverall {
		totals = make(map[string]int, len(seconds))
		for key, sec := range seconds {
			totals[key] = entry.RoundSecondsToMinutes(sec)
		}
	}

	rows := make([]GroupTotal, 0, len(totals))
	for key, mins := range totals {
		rows = append(rows, GroupTotal{Key: key, Minutes: mins})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Minutes != rows[j].Minutes {
			return rows[i].Minutes > rows[j].Minutes
		}
		return rows[i].Key < rows[j].Key
	})
	return rows, nil
}

func (s *ReportService) taskTitles() (map[int64]string, error) {
	tasks, err := s.store.ListTasks(true)
	if err != nil {
		return nil, fmt.Errorf("failed to read tasks: %w", err)
	}
	titles := make(map[int64]string, len(tasks))
	for _, t := range tasks {
		titles[t.ID] = t.Title
	}
	return titles, nil
}
