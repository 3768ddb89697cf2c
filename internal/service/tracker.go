package service

import (
	"fmt"
	"time"

	"github.com/okuren/tt/internal/entry"
	"github.com/okuren/tt/internal/store"
)

// TrackerService owns the entry lifecycle: start, stop, switch, resume.
// The "at most one open entry" invariant is global, not per-task, and is
// enforced inside a single store transaction.
type TrackerService struct {
	store *store.Store
	// Now is the clock used for all lifecycle transitions. Tests replace
	// it with a fixed instant.
	Now func() time.Time
}

// NewTrackerService creates a new TrackerService
func NewTrackerService(st *store.Store) *TrackerService {
	return &TrackerService{store: st, Now: time.Now}
}

func (s *TrackerService) now() time.Time {
	return s.Now().Truncate(time.Second)
}

// Start opens a new entry on the task at the current instant. If any entry
// anywhere is open it is closed first, so exactly one entry is open
// afterward. The task's status is set to doing.
func (s *TrackerService) Start(taskID int64, note string) (int64, error) {
	note = entry.NormalizeNote(note)
	now := s.now()

	var id int64
	err := s.store.Transact(func(tx *store.Tx) error {
		task, err := tx.GetTask(taskID)
		if err != nil {
			return err
		}
		if task == nil {
			return ErrTaskNotFound
		}

		open, err := tx.FindOpen()
		if err != nil {
			return err
		}
		if open != nil {
			if err := tx.CloseEntry(open.ID, now); err != nil {
				return err
			}
			if err := downgradeIfIdle(tx, open.TaskID); err != nil {
				return err
			}
		}

		id, err = tx.InsertEntry(taskID, now, nil, note)
		if err != nil {
			return err
		}
		return tx.SetTaskStatus(taskID, store.StatusDoing)
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Stop closes the open entry. A zero taskID means "whichever entry is
// globally open"; a nonzero taskID scopes the stop to that task. Returns
// the closed entry's id, or ErrNothingRunning.
func (s *TrackerService) Stop(taskID int64) (int64, error) {
	now := s.now()

	var id int64
	err := s.store.Transact(func(tx *store.Tx) error {
		var open *entry.TimeEntry
		var err error
		if taskID == 0 {
			open, err = tx.FindOpen()
		} else {
			open, err = tx.FindOpenForTask(taskID)
		}
		if err != nil {
			return err
		}
		if open == nil {
			return ErrNothingRunning
		}

		if err := tx.CloseEntry(open.ID, now); err != nil {
			return err
		}
		id = open.ID
		return downgradeIfIdle(tx, open.TaskID)
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Switch stops whatever is running and starts timing the given task.
// Net effect: exactly one open entry afterward, on the new task.
func (s *TrackerService) Switch(taskID int64, note string) (int64, error) {
	return s.Start(taskID, note)
}

// Resume starts a new entry on the task of the most recently closed entry,
// reusing its note unless an override is supplied. Returns the new entry
// id and the task id, or ErrNoPriorEntry for an empty ledger.
func (s *TrackerService) Resume(noteOverride string) (int64, int64, error) {
	last, err := s.store.LastClosed()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to find previous entry: %w", err)
	}
	if last == nil {
		return 0, 0, ErrNoPriorEntry
	}

	note := noteOverride
	if entry.NormalizeNote(note) == "" {
		note = last.Note
	}

	id, err := s.Start(last.TaskID, note)
	if err != nil {
		return 0, 0, err
	}
	return id, last.TaskID, nil
}

// Status returns the currently open entry with its elapsed time, or a
// zero RunningStatus when nothing is running.
func (s *TrackerService) Status() (RunningStatus, error) {
	open, err := s.store.FindOpen()
	if err != nil {
		return RunningStatus{}, err
	}
	if open == nil {
		return RunningStatus{}, nil
	}
	return RunningStatus{
		Entry:   open,
		Elapsed: s.now().Sub(open.Start),
	}, nil
}

// downgradeIfIdle flips a task back from doing to todo when it has no
// remaining open entry. done and archived are never overridden.
func downgradeIfIdle(tx *store.Tx, taskID int64) error {
	open, err := tx.FindOpenForTask(taskID)
	if err != nil {
		return err
	}
	if open != nil {
		return nil
	}
	return tx.SetTaskStatusIf(taskID, store.StatusDoing, store.StatusTodo)
}
