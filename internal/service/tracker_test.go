package service

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/okuren/tt/internal/config"
	"github.com/okuren/tt/internal/entry"
	"github.com/okuren/tt/internal/store"
)

func newTestServices(t *testing.T) *Services {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "tt.sqlite3"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return NewServicesWithStore(st, config.DefaultConfig())
}

// fixClock pins every service clock to the same mutable instant.
func fixClock(svcs *Services, at time.Time) *time.Time {
	now := at
	clock := func() time.Time { return now }
	svcs.Tracker.Now = clock
	svcs.Entries.Now = clock
	svcs.Reports.Now = clock
	svcs.Tasks.Now = clock
	return &now
}

func TestTrackerService_Start_OpensSingleEntry(t *testing.T) {
	svcs := newTestServices(t)
	fixClock(svcs, time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local))
	taskID, _ := svcs.Tasks.Add("write docs")

	id, err := svcs.Tracker.Start(taskID, "  first   draft ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	n, _ := svcs.Store.CountOpenEntries()
	if n != 1 {
		t.Fatalf("expected exactly one open entry, got %d", n)
	}

	e, _ := svcs.Store.GetEntry(id)
	if e.Note != "first draft" {
		t.Errorf("expected normalized note, got %q", e.Note)
	}

	status, _ := svcs.Store.GetTaskStatus(taskID)
	if status != store.StatusDoing {
		t.Errorf("expected doing, got %q", status)
	}
}

func TestTrackerService_Start_UnknownTask(t *testing.T) {
	svcs := newTestServices(t)
	if _, err := svcs.Tracker.Start(99, ""); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestTrackerService_Start_ClosesRunning(t *testing.T) {
	svcs := newTestServices(t)
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	now := fixClock(svcs, start)

	task1, _ := svcs.Tasks.Add("one")
	task2, _ := svcs.Tasks.Add("two")

	first, err := svcs.Tracker.Start(task1, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	*now = start.Add(10 * time.Minute)
	if _, err := svcs.Tracker.Start(task2, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// task 1's entry is auto-closed at T+10m
	e, _ := svcs.Store.GetEntry(first)
	if e.End == nil {
		t.Fatal("expected first entry to be closed")
	}
	if got := e.End.Sub(e.Start); got != 10*time.Minute {
		t.Errorf("expected 10m duration, got %v", got)
	}

	n, _ := svcs.Store.CountOpenEntries()
	if n != 1 {
		t.Fatalf("expected exactly one open entry, got %d", n)
	}

	// task 1 goes back to todo, task 2 is doing
	s1, _ := svcs.Store.GetTaskStatus(task1)
	s2, _ := svcs.Store.GetTaskStatus(task2)
	if s1 != store.StatusTodo || s2 != store.StatusDoing {
		t.Errorf("expected todo/doing, got %q/%q", s1, s2)
	}

	// entry-mode totals: task 1 gets 10 minutes
	totals, err := svcs.Reports.TotalsByTask(entry.Window{}, entry.RoundPerEntry)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if totals[task1] != 10 {
		t.Errorf("expected 10 minutes for task 1, got %d", totals[task1])
	}
}

func TestTrackerService_Stop_Global(t *testing.T) {
	svcs := newTestServices(t)
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	now := fixClock(svcs, start)
	taskID, _ := svcs.Tasks.Add("task")

	id, _ := svcs.Tracker.Start(taskID, "")
	*now = start.Add(25 * time.Minute)

	stopped, err := svcs.Tracker.Stop(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stopped != id {
		t.Errorf("expected entry %d, got %d", id, stopped)
	}

	status, _ := svcs.Store.GetTaskStatus(taskID)
	if status != store.StatusTodo {
		t.Errorf("expected todo after stop, got %q", status)
	}
}

func TestTrackerService_Stop_NothingRunning(t *testing.T) {
	svcs := newTestServices(t)
	if _, err := svcs.Tracker.Stop(0); !errors.Is(err, ErrNothingRunning) {
		t.Errorf("expected ErrNothingRunning, got %v", err)
	}
}

func TestTrackerService_Stop_ScopedToTask(t *testing.T) {
	svcs := newTestServices(t)
	fixClock(svcs, time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local))
	task1, _ := svcs.Tasks.Add("one")
	task2, _ := svcs.Tasks.Add("two")

	_, _ = svcs.Tracker.Start(task1, "")

	// stopping a task with no open entry is a no-op signal
	if _, err := svcs.Tracker.Stop(task2); !errors.Is(err, ErrNothingRunning) {
		t.Errorf("expected ErrNothingRunning for task 2, got %v", err)
	}

	// the entry on task 1 is still open
	n, _ := svcs.Store.CountOpenEntries()
	if n != 1 {
		t.Errorf("expected the open entry to survive, got %d open", n)
	}

	if _, err := svcs.Tracker.Stop(task1); err != nil {
		t.Errorf("unexpected error stopping task 1: %v", err)
	}
}

func TestTrackerService_Stop_NeverOverridesDone(t *testing.T) {
	svcs := newTestServices(t)
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	now := fixClock(svcs, start)
	taskID, _ := svcs.Tasks.Add("task")

	_, _ = svcs.Tracker.Start(taskID, "")
	_, _ = svcs.Tasks.Done(taskID) // marked done while running
	*now = start.Add(time.Hour)

	if _, err := svcs.Tracker.Stop(0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	status, _ := svcs.Store.GetTaskStatus(taskID)
	if status != store.StatusDone {
		t.Errorf("expected done to be preserved, got %q", status)
	}
}

func TestTrackerService_Switch(t *testing.T) {
	svcs := newTestServices(t)
	fixClock(svcs, time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local))
	task1, _ := svcs.Tasks.Add("one")
	task2, _ := svcs.Tasks.Add("two")

	_, _ = svcs.Tracker.Start(task1, "")
	if _, err := svcs.Tracker.Switch(task2, "new work"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	open, _ := svcs.Store.FindOpen()
	if open == nil || open.TaskID != task2 {
		t.Fatalf("expected open entry on task 2, got %+v", open)
	}
	n, _ := svcs.Store.CountOpenEntries()
	if n != 1 {
		t.Errorf("expected exactly one open entry, got %d", n)
	}
}

func TestTrackerService_Resume_ReusesNote(t *testing.T) {
	svcs := newTestServices(t)
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	now := fixClock(svcs, start)
	taskID, _ := svcs.Tasks.Add("task")

	_, _ = svcs.Tracker.Start(taskID, "refactoring")
	*now = start.Add(time.Hour)
	_, _ = svcs.Tracker.Stop(0)
	*now = start.Add(2 * time.Hour)

	id, resumedTask, err := svcs.Tracker.Resume("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resumedTask != taskID {
		t.Errorf("expected task %d, got %d", taskID, resumedTask)
	}
	e, _ := svcs.Store.GetEntry(id)
	if e.Note != "refactoring" {
		t.Errorf("expected reused note, got %q", e.Note)
	}
	if !e.Open() {
		t.Error("expected resumed entry to be open")
	}
}

func TestTrackerService_Resume_NoteOverride(t *testing.T) {
	svcs := newTestServices(t)
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	now := fixClock(svcs, start)
	taskID, _ := svcs.Tasks.Add("task")

	_, _ = svcs.Tracker.Start(taskID, "before")
	*now = start.Add(time.Hour)
	_, _ = svcs.Tracker.Stop(0)

	id, _, err := svcs.Tracker.Resume("after")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	e, _ := svcs.Store.GetEntry(id)
	if e.Note != "after" {
		t.Errorf("expected override note, got %q", e.Note)
	}
}

func TestTrackerService_Resume_EmptyLedger(t *testing.T) {
	svcs := newTestServices(t)
	if _, _, err := svcs.Tracker.Resume(""); !errors.Is(err, ErrNoPriorEntry) {
		t.Errorf("expected ErrNoPriorEntry, got %v", err)
	}
}

func TestTrackerService_Status(t *testing.T) {
	svcs := newTestServices(t)
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	now := fixClock(svcs, start)
	taskID, _ := svcs.Tasks.Add("task")

	status, err := svcs.Tracker.Status()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status.Entry != nil {
		t.Error("expected no running entry")
	}

	_, _ = svcs.Tracker.Start(taskID, "")
	*now = start.Add(42 * time.Minute)

	status, err = svcs.Tracker.Status()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status.Entry == nil {
		t.Fatal("expected running entry")
	}
	if status.Elapsed != 42*time.Minute {
		t.Errorf("expected 42m elapsed, got %v", status.Elapsed)
	}
}
