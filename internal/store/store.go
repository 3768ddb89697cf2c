// Package store provides the SQLite-backed ledger for tasks and time
// entries. The running entry is a store row (end IS NULL), never in-memory
// state, so the "at most one open entry" invariant survives restarts.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/okuren/tt/internal/entry"
)

const (
	// AppName is the application name used for the config directory
	AppName = "tt"
	// DBFile is the default database file name
	DBFile = "tt.sqlite3"
)

// Task statuses. The time-entry core only ever toggles between todo and
// doing; done and archived are owned by the task commands.
const (
	StatusTodo     = "todo"
	StatusDoing    = "doing"
	StatusDone     = "done"
	StatusArchived = "archived"
)

// timeLayout is how timestamps are persisted: RFC3339 with offset, second
// precision. Writes are always zone-aware.
const timeLayout = "2006-01-02T15:04:05Z07:00"

// Task is the externally-owned record entries reference.
type Task struct {
	ID        int64
	Title     string
	Status    string
	CreatedAt time.Time
}

// DefaultPath returns the default database path under the user config dir.
// Creates the config directory if it doesn't exist.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	appDir := filepath.Join(configDir, AppName)
	if err := os.MkdirAll(appDir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(appDir, DBFile), nil
}

const schema = `
CREATE TABLE IF NOT EXISTS tasks (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'todo',
	created_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS time_entries (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	task_id INTEGER NOT NULL REFERENCES tasks(id),
	start TEXT NOT NULL,
	end TEXT,
	note TEXT
);
CREATE INDEX IF NOT EXISTS idx_time_entries_task ON time_entries(task_id);
`

// Store wraps the SQLite database. A single mutex serializes writers so
// the check-then-act in start stays atomic even when the store is embedded
// in a long-lived process.
type Store struct {
	queries
	db *sql.DB
	mu sync.Mutex
}

// Open opens (creating if necessary) the database at path and ensures the
// schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &Store{queries: queries{dbtx: db}, db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path-level Tx wrapping: Transact runs fn inside a single transaction,
// holding the writer lock, and rolls back on error.
func (s *Store) Transact(fn func(*Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(&Tx{queries{dbtx: tx}}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Tx exposes the store contract inside a transaction.
type Tx struct {
	queries
}

// dbtx abstracts *sql.DB and *sql.Tx so the contract methods are written once.
type dbtx interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

type queries struct {
	dbtx
}

// ---- time entries ----

// InsertEntry inserts an entry and returns its id. A nil end means the
// entry is open. An empty note is stored as NULL.
func (q queries) InsertEntry(taskID int64, start time.Time, end *time.Time, note string) (int64, error) {
	res, err := q.Exec(
		"INSERT INTO time_entries (task_id, start, end, note) VALUES (?, ?, ?, ?)",
		taskID, encodeTime(start), encodeTimePtr(end), encodeNote(note),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert entry: %w", err)
	}
	return res.LastInsertId()
}

// CloseEntry sets the end timestamp of an open entry.
func (q queries) CloseEntry(id int64, end time.Time) error {
	_, err := q.Exec("UPDATE time_entries SET end = ? WHERE id = ?", encodeTime(end), id)
	return err
}

// SetEntryBounds rewrites both interval bounds.
func (q queries) SetEntryBounds(id int64, start, end time.Time) error {
	_, err := q.Exec(
		"UPDATE time_entries SET start = ?, end = ? WHERE id = ?",
		encodeTime(start), encodeTime(end), id,
	)
	return err
}

// SetEntryNote replaces the note. An empty note is stored as NULL.
func (q queries) SetEntryNote(id int64, note string) error {
	_, err := q.Exec("UPDATE time_entries SET note = ? WHERE id = ?", encodeNote(note), id)
	return err
}

// SetEntryTask reassigns the entry to another task. Reports whether a row
// was updated.
func (q queries) SetEntryTask(id, taskID int64) (bool, error) {
	res, err := q.Exec("UPDATE time_entries SET task_id = ? WHERE id = ?", taskID, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// DeleteEntry removes the entry. Reports whether a row was deleted.
func (q queries) DeleteEntry(id int64) (bool, error) {
	res, err := q.Exec("DELETE FROM time_entries WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// GetEntry returns the entry with the given id, or nil if it does not exist.
func (q queries) GetEntry(id int64) (*entry.TimeEntry, error) {
	row := q.QueryRow(
		"SELECT id, task_id, start, end, note FROM time_entries WHERE id = ?", id,
	)
	return scanEntry(row)
}

// FindOpen returns the globally open entry, or nil if nothing is running.
func (q queries) FindOpen() (*entry.TimeEntry, error) {
	row := q.QueryRow(
		"SELECT id, task_id, start, end, note FROM time_entries WHERE end IS NULL ORDER BY id DESC LIMIT 1",
	)
	return scanEntry(row)
}

// FindOpenForTask returns the open entry scoped to a task, or nil.
func (q queries) FindOpenForTask(taskID int64) (*entry.TimeEntry, error) {
	row := q.QueryRow(
		"SELECT id, task_id, start, end, note FROM time_entries WHERE end IS NULL AND task_id = ? ORDER BY id DESC LIMIT 1",
		taskID,
	)
	return scanEntry(row)
}

// LastClosed returns the most recently closed entry (by end time, then id),
// or nil if no closed entries exist.
func (q queries) LastClosed() (*entry.TimeEntry, error) {
	row := q.QueryRow(
		"SELECT id, task_id, start, end, note FROM time_entries WHERE end IS NOT NULL ORDER BY end DESC, id DESC LIMIT 1",
	)
	return scanEntry(row)
}

// ListForTask returns a task's entries ordered by id ascending
// (creation order).
func (q queries) ListForTask(taskID int64) ([]entry.TimeEntry, error) {
	rows, err := q.Query(
		"SELECT id, task_id, start, end, note FROM time_entries WHERE task_id = ? ORDER BY id ASC",
		taskID,
	)
	if err != nil {
		return nil, err
	}
	return collectEntries(rows)
}

// ListEntries returns every entry ordered by id ascending.
func (q queries) ListEntries() ([]entry.TimeEntry, error) {
	rows, err := q.Query("SELECT id, task_id, start, end, note FROM time_entries ORDER BY id ASC")
	if err != nil {
		return nil, err
	}
	return collectEntries(rows)
}

// ---- tasks ----

// InsertTask inserts a task with status todo and returns its id.
func (q queries) InsertTask(title string, createdAt time.Time) (int64, error) {
	res, err := q.Exec(
		"INSERT INTO tasks (title, status, created_at) VALUES (?, ?, ?)",
		title, StatusTodo, encodeTime(createdAt),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert task: %w", err)
	}
	return res.LastInsertId()
}

// GetTask returns the task with the given id, or nil if it does not exist.
func (q queries) GetTask(id int64) (*Task, error) {
	var t Task
	var created string
	err := q.QueryRow(
		"SELECT id, title, status, created_at FROM tasks WHERE id = ?", id,
	).Scan(&t.ID, &t.Title, &t.Status, &created)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if t.CreatedAt, err = decodeTime(created); err != nil {
		return nil, fmt.Errorf("task %d: %w", t.ID, err)
	}
	return &t, nil
}

// ListTasks returns tasks ordered by id ascending. Archived tasks are
// excluded unless includeArchived is set.
func (q queries) ListTasks(includeArchived bool) ([]Task, error) {
	query := "SELECT id, title, status, created_at FROM tasks"
	if !includeArchived {
		query += " WHERE status != 'archived'"
	}
	query += " ORDER BY id ASC"

	rows, err := q.Query(query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var tasks []Task
	for rows.Next() {
		var t Task
		var created string
		if err := rows.Scan(&t.ID, &t.Title, &t.Status, &created); err != nil {
			return nil, err
		}
		if t.CreatedAt, err = decodeTime(created); err != nil {
			return nil, fmt.Errorf("task %d: %w", t.ID, err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// SetTaskStatus sets a task's status unconditionally.
func (q queries) SetTaskStatus(id int64, status string) error {
	_, err := q.Exec("UPDATE tasks SET status = ? WHERE id = ?", status, id)
	return err
}

// SetTaskStatusIf sets a task's status only when its current status matches.
// Used for the doing -> todo downgrade so done/archived are never overridden.
func (q queries) SetTaskStatusIf(id int64, from, to string) error {
	_, err := q.Exec("UPDATE tasks SET status = ? WHERE id = ? AND status = ?", to, id, from)
	return err
}

// GetTaskStatus returns a task's status, or "" if the task does not exist.
func (q queries) GetTaskStatus(id int64) (string, error) {
	var status string
	err := q.QueryRow("SELECT status FROM tasks WHERE id = ?", id).Scan(&status)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return status, err
}

// DeleteTask removes a task and all its entries. Reports whether the task
// existed.
func (q queries) DeleteTask(id int64) (bool, error) {
	if _, err := q.Exec("DELETE FROM time_entries WHERE task_id = ?", id); err != nil {
		return false, err
	}
	res, err := q.Exec("DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// CountEntriesForTask returns how many entries reference the task.
func (q queries) CountEntriesForTask(taskID int64) (int, error) {
	var n int
	err := q.QueryRow("SELECT COUNT(*) FROM time_entries WHERE task_id = ?", taskID).Scan(&n)
	return n, err
}

// ---- health checks ----

// CountOpenEntries returns the number of open entries. More than one means
// the singleton invariant has been violated.
func (q queries) CountOpenEntries() (int, error) {
	var n int
	err := q.QueryRow("SELECT COUNT(*) FROM time_entries WHERE end IS NULL").Scan(&n)
	return n, err
}

// CountDanglingEntries returns entries whose task no longer exists.
func (q queries) CountDanglingEntries() (int, error) {
	var n int
	err := q.QueryRow(`
		SELECT COUNT(*) FROM time_entries e
		LEFT JOIN tasks t ON t.id = e.task_id
		WHERE t.id IS NULL`).Scan(&n)
	return n, err
}

// CountCorruptTimestamps returns the number of entries whose stored start
// or end no longer parses as a timestamp. Such rows make every read of
// the entry fail, so the doctor reports them instead of hiding them.
func (q queries) CountCorruptTimestamps() (int, error) {
	rows, err := q.Query("SELECT start, end FROM time_entries")
	if err != nil {
		return 0, err
	}
	defer func() { _ = rows.Close() }()

	n := 0
	for rows.Next() {
		var start string
		var end sql.NullString
		if err := rows.Scan(&start, &end); err != nil {
			return 0, err
		}
		if _, err := decodeTime(start); err != nil {
			n++
			continue
		}
		if end.Valid {
			if _, err := decodeTime(end.String); err != nil {
				n++
			}
		}
	}
	return n, rows.Err()
}

// ---- encoding ----

func encodeTime(t time.Time) string {
	return t.Truncate(time.Second).Format(timeLayout)
}

func encodeTimePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return encodeTime(*t)
}

func encodeNote(note string) any {
	if note == "" {
		return nil
	}
	return note
}

// decodeTime parses a stored timestamp. Zone-aware values round-trip;
// a naive value (written by older tooling) is read as local time at read
// time, preserving historical behavior. Anything else is corruption and
// returns an error rather than a zero time.
func decodeTime(s string) (time.Time, error) {
	if t, err := time.Parse(timeLayout, s); err == nil {
		return t.Local(), nil
	}
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unreadable timestamp %q", s)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntryFrom(sc rowScanner) (entry.TimeEntry, error) {
	var e entry.TimeEntry
	var start string
	var end, note sql.NullString
	if err := sc.Scan(&e.ID, &e.TaskID, &start, &end, &note); err != nil {
		return entry.TimeEntry{}, err
	}
	var err error
	if e.Start, err = decodeTime(start); err != nil {
		return entry.TimeEntry{}, fmt.Errorf("entry %d: %w", e.ID, err)
	}
	if end.Valid {
		t, err := decodeTime(end.String)
		if err != nil {
			return entry.TimeEntry{}, fmt.Errorf("entry %d: %w", e.ID, err)
		}
		e.End = &t
	}
	if note.Valid {
		e.Note = note.String
	}
	return e, nil
}

func scanEntry(row *sql.Row) (*entry.TimeEntry, error) {
	e, err := scanEntryFrom(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func collectEntries(rows *sql.Rows) ([]entry.TimeEntry, error) {
	defer func() { _ = rows.Close() }()
	var entries []entry.TimeEntry
	for rows.Next() {
		e, err := scanEntryFrom(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
