package service

import (
	"errors"
	"time"

	"github.com/okuren/tt/internal/entry"
	"github.com/okuren/tt/internal/store"
)

// ErrTaskHasEntries is returned by Delete when a task still has logged
// time and force was not given.
var ErrTaskHasEntries = errors.New("task has time entries; use --force to delete them too")

// TaskService provides the task bookkeeping the CLI needs. Tasks are the
// externally-owned side of the ledger; the entry core only ever toggles
// their status between todo and doing.
type TaskService struct {
	store *store.Store
	Now   func() time.Time
}

// NewTaskService creates a new TaskService
func NewTaskService(st *store.Store) *TaskService {
	return &TaskService{store: st, Now: time.Now}
}

// Add creates a task with status todo and returns its id. The title has
// its whitespace collapsed and must not be empty.
func (s *TaskService) Add(title string) (int64, error) {
	title = entry.NormalizeNote(title)
	if title == "" {
		return 0, ErrEmptyTitle
	}
	return s.store.InsertTask(title, s.Now().Truncate(time.Second))
}

// Get returns the task, or nil if it does not exist.
func (s *TaskService) Get(id int64) (*store.Task, error) {
	return s.store.GetTask(id)
}

// List returns tasks in creation order, excluding archived ones unless
// includeArchived is set.
func (s *TaskService) List(includeArchived bool) ([]store.Task, error) {
	return s.store.ListTasks(includeArchived)
}

// Done marks the task done. Returns false when the task does not exist.
func (s *TaskService) Done(id int64) (bool, error) {
	return s.setStatus(id, store.StatusDone)
}

// Archive marks the task archived. Returns false when it does not exist.
func (s *TaskService) Archive(id int64) (bool, error) {
	return s.setStatus(id, store.StatusArchived)
}

// Unarchive returns an archived task to todo. Returns false when the task
// does not exist.
func (s *TaskService) Unarchive(id int64) (bool, error) {
	return s.setStatus(id, store.StatusTodo)
}

func (s *TaskService) setStatus(id int64, status string) (bool, error) {
	task, err := s.store.GetTask(id)
	if err != nil {
		return false, err
	}
	if task == nil {
		return false, nil
	}
	return true, s.store.SetTaskStatus(id, status)
}

// Delete removes the task. Unless force is given, a task that still has
// time entries is refused. Returns false when the task does not exist.
func (s *TaskService) Delete(id int64, force bool) (bool, error) {
	found := false
	err := s.store.Transact(func(tx *store.Tx) error {
		task, err := tx.GetTask(id)
		if err != nil {
			return err
		}
		if task == nil {
			return nil
		}
		found = true

		if !force {
			n, err := tx.CountEntriesForTask(id)
			if err != nil {
				return err
			}
			if n > 0 {
				return ErrTaskHasEntries
			}
		}
		_, err = tx.DeleteTask(id)
		return err
	})
	return found, err
}
