package handlers

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okuren/tt/internal/cli"
	"github.com/okuren/tt/internal/config"
	"github.com/okuren/tt/internal/service"
	"github.com/okuren/tt/internal/store"
)

func setupTestDeps(t *testing.T) (*cli.Deps, *bytes.Buffer, *bytes.Buffer, *int) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "tt.sqlite3"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	cfg := config.DefaultConfig()
	services := service.NewServicesWithStore(st, cfg)

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	exitCode := 0

	deps := &cli.Deps{
		Stdout:   stdout,
		Stderr:   stderr,
		Stdin:    strings.NewReader(""),
		Exit:     func(code int) { exitCode = code },
		Services: services,
		Config:   cfg,
	}

	return deps, stdout, stderr, &exitCode
}

func TestStartTask(t *testing.T) {
	deps, stdout, _, exitCode := setupTestDeps(t)
	id, _ := deps.Services.Tasks.Add("feature work")

	StartTask(deps, id, "kickoff")

	if *exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", *exitCode)
	}
	if !strings.Contains(stdout.String(), "Started entry") {
		t.Errorf("expected 'Started entry' in output, got %q", stdout.String())
	}
}

func TestStartTask_UnknownTask(t *testing.T) {
	deps, _, stderr, exitCode := setupTestDeps(t)

	StartTask(deps, 42, "")

	if *exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", *exitCode)
	}
	if !strings.Contains(stderr.String(), "No task with id 42") {
		t.Errorf("expected missing-task error, got %q", stderr.String())
	}
}

func TestStartTask_AutoClosesRunning(t *testing.T) {
	deps, stdout, _, exitCode := setupTestDeps(t)
	first, _ := deps.Services.Tasks.Add("first")
	second, _ := deps.Services.Tasks.Add("second")

	StartTask(deps, first, "")
	stdout.Reset()
	StartTask(deps, second, "")

	if *exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", *exitCode)
	}
	if !strings.Contains(stdout.String(), "Stopped entry") {
		t.Errorf("expected prior entry close notice, got %q", stdout.String())
	}
	n, _ := deps.Services.Store.CountOpenEntries()
	if n != 1 {
		t.Errorf("expected exactly one open entry, got %d", n)
	}
}

func TestStopTask_NothingRunning(t *testing.T) {
	deps, _, stderr, exitCode := setupTestDeps(t)

	StopTask(deps, 0)

	if *exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", *exitCode)
	}
	if !strings.Contains(stderr.String(), "Nothing is running") {
		t.Errorf("expected 'Nothing is running' error, got %q", stderr.String())
	}
}

func TestShowStatus(t *testing.T) {
	deps, stdout, _, exitCode := setupTestDeps(t)

	ShowStatus(deps)
	if !strings.Contains(stdout.String(), "Nothing running") {
		t.Errorf("expected idle message, got %q", stdout.String())
	}

	id, _ := deps.Services.Tasks.Add("review")
	StartTask(deps, id, "pr 17")
	stdout.Reset()

	ShowStatus(deps)
	if *exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", *exitCode)
	}
	if !strings.Contains(stdout.String(), "review") {
		t.Errorf("expected task title in output, got %q", stdout.String())
	}
	if !strings.Contains(stdout.String(), "pr 17") {
		t.Errorf("expected note in output, got %q", stdout.String())
	}
}

func TestAddTask_EmptyTitle(t *testing.T) {
	deps, _, stderr, exitCode := setupTestDeps(t)

	AddTask(deps, "   ")

	if *exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", *exitCode)
	}
	if !strings.Contains(stderr.String(), "Title cannot be empty") {
		t.Errorf("expected empty-title error, got %q", stderr.String())
	}
}

func TestListTasks(t *testing.T) {
	deps, stdout, _, exitCode := setupTestDeps(t)
	_, _ = deps.Services.Tasks.Add("write docs")

	ListTasks(deps, false)

	if *exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", *exitCode)
	}
	if !strings.Contains(stdout.String(), "write docs") {
		t.Errorf("expected task title in listing, got %q", stdout.String())
	}
}

func TestListTasks_CompactAndLimit(t *testing.T) {
	deps, stdout, _, _ := setupTestDeps(t)
	_, _ = deps.Services.Tasks.Add("first")
	_, _ = deps.Services.Tasks.Add("second")
	deps.Config.List.Compact = true
	deps.Config.List.Limit = 1

	ListTasks(deps, false)

	out := stdout.String()
	if strings.Contains(out, "LOGGED") {
		t.Errorf("expected compact listing without LOGGED column, got %q", out)
	}
	if !strings.Contains(out, "first") || strings.Contains(out, "second") {
		t.Errorf("expected only the first task, got %q", out)
	}
}

func TestAddEntry_AndReport(t *testing.T) {
	deps, stdout, _, exitCode := setupTestDeps(t)
	id, _ := deps.Services.Tasks.Add("deep work")

	minutes := 90
	AddEntry(deps, id, service.AddOptions{Minutes: &minutes, Note: "morning block"})
	if *exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", *exitCode, stdout.String())
	}
	stdout.Reset()

	ShowReport(deps, "", "", "task", false, false)
	if !strings.Contains(stdout.String(), "deep work") {
		t.Errorf("expected task in report, got %q", stdout.String())
	}
	if !strings.Contains(stdout.String(), "1h 30m") {
		t.Errorf("expected 1h 30m in report, got %q", stdout.String())
	}
}

func TestShowReport_JSON(t *testing.T) {
	deps, stdout, _, exitCode := setupTestDeps(t)
	id, _ := deps.Services.Tasks.Add("task")
	minutes := 30
	AddEntry(deps, id, service.AddOptions{Minutes: &minutes})
	stdout.Reset()

	ShowReport(deps, "", "", "task", true, false)

	if *exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", *exitCode)
	}
	if !strings.Contains(stdout.String(), `"minutes": 30`) {
		t.Errorf("expected JSON minutes field, got %q", stdout.String())
	}
}

func TestExportCSV(t *testing.T) {
	deps, stdout, _, exitCode := setupTestDeps(t)
	id, _ := deps.Services.Tasks.Add("task")
	minutes := 30
	AddEntry(deps, id, service.AddOptions{Minutes: &minutes, Note: "block"})
	stdout.Reset()

	ExportCSV(deps, "", "")

	if *exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", *exitCode)
	}
	out := stdout.String()
	if !strings.HasPrefix(out, "entry_id,task_id,task,start,end,minutes,note") {
		t.Errorf("expected CSV header, got %q", out)
	}
	if !strings.Contains(out, "block") {
		t.Errorf("expected note in CSV, got %q", out)
	}
}

func TestSplitEntry_InvalidPoint(t *testing.T) {
	deps, _, stderr, exitCode := setupTestDeps(t)

	SplitEntry(deps, 1, "not-a-time")

	if *exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", *exitCode)
	}
	if !strings.Contains(stderr.String(), "Invalid split point") {
		t.Errorf("expected parse error, got %q", stderr.String())
	}
}

func TestTrimEntry_NothingToTrim(t *testing.T) {
	deps, _, stderr, exitCode := setupTestDeps(t)

	TrimEntry(deps, 1, "", "")

	if *exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", *exitCode)
	}
	if !strings.Contains(stderr.String(), "Nothing to trim") {
		t.Errorf("expected usage error, got %q", stderr.String())
	}
}

func TestShowDoctor(t *testing.T) {
	deps, stdout, _, exitCode := setupTestDeps(t)

	ShowDoctor(deps)

	if *exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", *exitCode)
	}
	if !strings.Contains(stdout.String(), "Status: ok") {
		t.Errorf("expected healthy status, got %q", stdout.String())
	}
}
