package service

import (
	"fmt"

	"github.com/okuren/tt/internal/config"
	"github.com/okuren/tt/internal/store"
)

// Services holds all service instances used by the application
type Services struct {
	Store   *store.Store
	Tracker *TrackerService
	Entries *EntryService
	Reports *ReportService
	Tasks   *TaskService
}

// NewServices opens the store at the configured path (or the default
// location) and wires up all services.
func NewServices(cfg config.Config) (*Services, error) {
	dbPath := cfg.DB
	if dbPath == "" {
		var err error
		dbPath, err = store.DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("failed to determine database location: %w", err)
		}
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return nil, err
	}

	return NewServicesWithStore(st, cfg), nil
}

// NewServicesWithStore wires up all services over an existing store
// (useful for testing).
func NewServicesWithStore(st *store.Store, cfg config.Config) *Services {
	return &Services{
		Store:   st,
		Tracker: NewTrackerService(st),
		Entries: NewEntryService(st),
		Reports: NewReportService(st, cfg),
		Tasks:   NewTaskService(st),
	}
}

// Close releases the underlying store.
func (s *Services) Close() error {
	return s.Store.Close()
}

// Doctor runs the store health checks.
func (s *Services) Doctor() (DoctorReport, error) {
	var report DoctorReport
	var err error
	if report.OpenEntries, err = s.Store.CountOpenEntries(); err != nil {
		return report, err
	}
	if report.DanglingEntries, err = s.Store.CountDanglingEntries(); err != nil {
		return report, err
	}
	if report.CorruptTimestamps, err = s.Store.CountCorruptTimestamps(); err != nil {
		return report, err
	}
	return report, nil
}
