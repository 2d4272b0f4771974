package shell

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalRunner_CapturesBothStreams(t *testing.T) {
	runner := NewLocalRunner(nil)

	result, err := runner.Run(context.Background(), t.TempDir(), "sh", "-c", "echo out; echo err 1>&2")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Stdout != "out\n" {
		t.Errorf("expected stdout 'out', got %q", result.Stdout)
	}
	if result.Stderr != "err\n" {
		t.Errorf("expected stderr 'err', got %q", result.Stderr)
	}
	if result.ExitCode != 0 {
		t.Errorf("expected exit code 0, got %d", result.ExitCode)
	}
}

func TestLocalRunner_RunsInWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "marker.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	runner := NewLocalRunner(nil)
	result, err := runner.Run(context.Background(), dir, "ls")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(result.Stdout, "marker.txt") {
		t.Fatalf("expected listing of %s, got %q", dir, result.Stdout)
	}
}

func TestLocalRunner_NonZeroExit(t *testing.T) {
	runner := NewLocalRunner(nil)

	result, err := runner.Run(context.Background(), t.TempDir(), "sh", "-c", "echo boom 1>&2; exit 3")
	if err == nil {
		t.Fatal("expected error for non-zero exit")
	}

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected *ExitError, got %T", err)
	}
	if exitErr.ExitCode != 3 {
		t.Errorf("expected exit code 3, got %d", exitErr.ExitCode)
	}
	if !strings.Contains(exitErr.Stderr, "boom") {
		t.Errorf("expected captured stderr, got %q", exitErr.Stderr)
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("expected diagnostics in error message, got %q", err.Error())
	}
	if result.ExitCode != 3 {
		t.Errorf("expected result exit code 3, got %d", result.ExitCode)
	}
}

func TestLocalRunner_LaunchFailure(t *testing.T) {
	runner := NewLocalRunner(nil)

	_, err := runner.Run(context.Background(), t.TempDir(), "servstack-no-such-binary")
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected *ExitError, got %T", err)
	}
	if exitErr.ExitCode != -1 {
		t.Errorf("expected exit code -1 for launch failure, got %d", exitErr.ExitCode)
	}
}
