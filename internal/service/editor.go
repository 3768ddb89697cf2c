package service

import (
	"fmt"
	"time"

	"github.com/okuren/tt/internal/entry"
	"github.com/okuren/tt/internal/store"
	"github.com/okuren/tt/internal/timeparse"
)

// EntryService provides the manual entry edit operations: add, edit,
// delete, split, trim, reassign. Every mutation validates that the result
// is a well-formed interval.
type EntryService struct {
	store *store.Store
	// Now is the clock used to resolve relative add shapes.
	Now func() time.Time
}

// NewEntryService creates a new EntryService
func NewEntryService(st *store.Store) *EntryService {
	return &EntryService{store: st, Now: time.Now}
}

func (s *EntryService) now() time.Time {
	return s.Now().Truncate(time.Second)
}

// AddOptions describes a manual entry. Exactly one of four shapes must be
// satisfiable: minutes only, ago only, start+end, or start+minutes.
type AddOptions struct {
	Minutes *int   // duration in minutes
	Start   string // absolute start point
	End     string // absolute end point (requires Start)
	Ago     string // duration string; interval is [now - ago, now]
	Note    string
}

// Add inserts a closed entry for the task. The resolved interval must
// satisfy start < end.
func (s *EntryService) Add(taskID int64, opts AddOptions) (int64, error) {
	note := entry.NormalizeNote(opts.Note)

	startAt, endAt, err := s.resolveInterval(opts)
	if err != nil {
		return 0, err
	}
	if !endAt.After(startAt) {
		return 0, ErrNonPositiveDuration
	}

	var id int64
	err = s.store.Transact(func(tx *store.Tx) error {
		task, err := tx.GetTask(taskID)
		if err != nil {
			return err
		}
		if task == nil {
			return ErrTaskNotFound
		}
		id, err = tx.InsertEntry(taskID, startAt, &endAt, note)
		return err
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (s *EntryService) resolveInterval(opts AddOptions) (time.Time, time.Time, error) {
	switch {
	case opts.Start != "":
		startAt, err := timeparse.DateTime(opts.Start)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --start: %w", err)
		}
		switch {
		case opts.End != "" && opts.Minutes != nil:
			return time.Time{}, time.Time{}, ErrAmbiguousShape
		case opts.End != "":
			endAt, err := timeparse.DateTime(opts.End)
			if err != nil {
				return time.Time{}, time.Time{}, fmt.Errorf("invalid --end: %w", err)
			}
			return startAt, endAt, nil
		case opts.Minutes != nil:
			if *opts.Minutes <= 0 {
				return time.Time{}, time.Time{}, ErrNonPositiveMinutes
			}
			return startAt, startAt.Add(time.Duration(*opts.Minutes) * time.Minute), nil
		default:
			return time.Time{}, time.Time{}, ErrMissingEndOrMinutes
		}

	case opts.Ago != "":
		mins, err := timeparse.Minutes(opts.Ago)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --ago: %w", err)
		}
		now := s.now()
		return now.Add(-time.Duration(mins) * time.Minute), now, nil

	case opts.Minutes != nil:
		if *opts.Minutes <= 0 {
			return time.Time{}, time.Time{}, ErrNonPositiveMinutes
		}
		now := s.now()
		return now.Add(-time.Duration(*opts.Minutes) * time.Minute), now, nil

	default:
		return time.Time{}, time.Time{}, ErrMissingShape
	}
}

// Edit rewrites an entry's note and/or, for closed entries, recomputes its
// end as start + minutes. Resizing an open entry is an error. Returns
// false when the entry does not exist.
func (s *EntryService) Edit(id int64, minutes *int, note *string) (bool, error) {
	found := false
	err := s.store.Transact(func(tx *store.Tx) error {
		e, err := tx.GetEntry(id)
		if err != nil {
			return err
		}
		if e == nil {
			return nil
		}
		found = true

		if note != nil {
			if err := tx.SetEntryNote(id, entry.NormalizeNote(*note)); err != nil {
				return err
			}
		}

		if minutes != nil {
			if *minutes < 0 {
				return ErrNegativeMinutes
			}
			if e.Open() {
				return ErrOpenEntryResize
			}
			newEnd := e.Start.Add(time.Duration(*minutes) * time.Minute)
			if err := tx.SetEntryBounds(id, e.Start, newEnd); err != nil {
				return err
			}
		}
		return nil
	})
	return found, err
}

// Delete removes the entry. If it was the open entry for its task, the
// task's status is re-evaluated (doing -> todo when nothing remains open).
// Returns false when the entry does not exist.
func (s *EntryService) Delete(id int64) (bool, error) {
	found := false
	err := s.store.Transact(func(tx *store.Tx) error {
		e, err := tx.GetEntry(id)
		if err != nil {
			return err
		}
		if e == nil {
			return nil
		}
		found = true

		if _, err := tx.DeleteEntry(id); err != nil {
			return err
		}
		if e.Open() {
			return downgradeIfIdle(tx, e.TaskID)
		}
		return nil
	})
	return found, err
}

// Split divides a closed entry in two at the given instant, which must
// fall strictly inside the interval. The original keeps [start, at) and a
// new entry takes [at, end) with the same task and note. Returns both
// ids, original first.
func (s *EntryService) Split(id int64, at time.Time) (int64, int64, error) {
	at = at.Truncate(time.Second)

	var left, right int64
	err := s.store.Transact(func(tx *store.Tx) error {
		e, err := tx.GetEntry(id)
		if err != nil {
			return err
		}
		if e == nil {
			return ErrEntryNotFound
		}
		if e.Open() {
			return ErrOpenEntrySplit
		}
		if !at.After(e.Start) || !at.Before(*e.End) {
			return ErrSplitOutsideInterval
		}

		if err := tx.SetEntryBounds(id, e.Start, at); err != nil {
			return err
		}
		end := *e.End
		rightID, err := tx.InsertEntry(e.TaskID, at, &end, e.Note)
		if err != nil {
			return err
		}
		left, right = id, rightID
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return left, right, nil
}

// Trim replaces one or both bounds of a closed entry. The final interval
// must satisfy start < end or the entry is left unmodified. Returns false
// when the entry does not exist.
func (s *EntryService) Trim(id int64, newStart, newEnd *time.Time) (bool, error) {
	found := false
	err := s.store.Transact(func(tx *store.Tx) error {
		e, err := tx.GetEntry(id)
		if err != nil {
			return err
		}
		if e == nil {
			return nil
		}
		found = true

		if e.Open() {
			return ErrOpenEntryTrim
		}

		startAt := e.Start
		endAt := *e.End
		if newStart != nil {
			startAt = newStart.Truncate(time.Second)
		}
		if newEnd != nil {
			endAt = newEnd.Truncate(time.Second)
		}
		if !startAt.Before(endAt) {
			return ErrTrimNonPositive
		}
		return tx.SetEntryBounds(id, startAt, endAt)
	})
	return found, err
}

// Reassign moves the entry to another task; the interval is untouched.
// Returns false when the entry does not exist.
func (s *EntryService) Reassign(id, newTaskID int64) (bool, error) {
	var ok bool
	err := s.store.Transact(func(tx *store.Tx) error {
		task, err := tx.GetTask(newTaskID)
		if err != nil {
			return err
		}
		if task == nil {
			return ErrTaskNotFound
		}
		ok, err = tx.SetEntryTask(id, newTaskID)
		return err
	})
	return ok, err
}
