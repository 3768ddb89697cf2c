package main

import (
	"os"
	"testing"
)

func TestRun_Success(t *testing.T) {
	originalArgs := os.Args
	defer func() { os.Args = originalArgs }()

	os.Args = []string{"tt", "--help"}

	if code := run(); code != 0 {
		t.Errorf("expected exit code 0, got %d", code)
	}
}

func TestRun_ExecuteError(t *testing.T) {
	originalArgs := os.Args
	defer func() { os.Args = originalArgs }()

	os.Args = []string{"tt", "--unknownflag"}

	if code := run(); code != 1 {
		t.Errorf("expected exit code 1 for unknown flag, got %d", code)
	}
}

func TestMain_CallsExitWithRunResult(t *testing.T) {
	originalExit := exitFunc
	originalArgs := os.Args
	defer func() {
		exitFunc = originalExit
		os.Args = originalArgs
	}()

	var capturedCode int
	exitFunc = func(code int) {
		capturedCode = code
	}
	os.Args = []string{"tt", "--help"}

	main()

	if capturedCode != 0 {
		t.Errorf("expected exit code 0, got %d", capturedCode)
	}
}
