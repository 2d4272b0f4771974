// Package shell runs external tools (git, docker compose) to completion and
// captures their output.
package shell

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Result holds the captured output of a completed command.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// Runner abstracts command execution.
type Runner interface {
	// Run executes binary with args in dir and waits for completion.
	// A non-zero exit or launch failure returns an *ExitError.
	Run(ctx context.Context, dir, binary string, args ...string) (Result, error)
}

// ExitError is returned when a command exits non-zero or cannot be launched.
// It carries the captured streams so callers can surface the tool's own
// diagnostics verbatim.
type ExitError struct {
	Binary   string
	Args     []string
	Dir      string
	ExitCode int
	Stdout   string
	Stderr   string
	cause    error
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%s %s failed", e.Binary, strings.Join(e.Args, " "))
	if e.ExitCode >= 0 {
		msg = fmt.Sprintf("%s (exit %d)", msg, e.ExitCode)
	}
	if out := strings.TrimSpace(e.Stderr); out != "" {
		msg = fmt.Sprintf("%s: %s", msg, out)
	} else if out := strings.TrimSpace(e.Stdout); out != "" {
		msg = fmt.Sprintf("%s: %s", msg, out)
	} else if e.cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.cause)
	}
	return msg
}

func (e *ExitError) Unwrap() error { return e.cause }

// LocalRunner executes commands directly on the host with os/exec.
type LocalRunner struct {
	logger *zap.Logger
}

// NewLocalRunner creates a runner logging through logger. A nil logger
// disables logging.
func NewLocalRunner(logger *zap.Logger) *LocalRunner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocalRunner{logger: logger}
}

// Run executes the command synchronously, capturing stdout and stderr.
// There is no timeout beyond ctx and no retry.
func (r *LocalRunner) Run(ctx context.Context, dir, binary string, args ...string) (Result, error) {
	start := time.Now()
	r.logger.Debug("running command",
		zap.String("binary", binary),
		zap.Strings("args", args),
		zap.String("dir", dir))

	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: 0,
		Duration: time.Since(start),
	}

	if err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		result.ExitCode = exitCode
		r.logger.Debug("command failed",
			zap.String("binary", binary),
			zap.Int("exit_code", exitCode),
			zap.Duration("duration", result.Duration),
			zap.String("stderr", result.Stderr))
		return result, &ExitError{
			Binary:   binary,
			Args:     args,
			Dir:      dir,
			ExitCode: exitCode,
			Stdout:   result.Stdout,
			Stderr:   result.Stderr,
			cause:    err,
		}
	}

	r.logger.Debug("command completed",
		zap.String("binary", binary),
		zap.Duration("duration", result.Duration))
	return result, nil
}
