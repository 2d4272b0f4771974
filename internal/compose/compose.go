// Package compose invokes the container orchestration tool against the
// generated manifest.
package compose

import (
	"context"
	"fmt"
	"os/exec"

	"go.uber.org/zap"

	"servstack/internal/config"
	"servstack/internal/shell"
)

// Compose wraps docker compose invocations. Commands run in the workspace
// root so environment passthrough and relative build contexts resolve the
// same way they would for a user running compose by hand.
type Compose struct {
	cfg    *config.Config
	runner shell.Runner
	logger *zap.Logger
}

// New creates a compose wrapper for cfg.
func New(cfg *config.Config, runner shell.Runner, logger *zap.Logger) *Compose {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Compose{cfg: cfg, runner: runner, logger: logger}
}

// command returns the binary and leading arguments for a compose invocation,
// preferring the `docker compose` plugin and falling back to the standalone
// docker-compose binary.
func (c *Compose) command() (string, []string, error) {
	if bin := c.cfg.Compose.Binary; bin != "" {
		if bin == "docker" {
			return bin, []string{"compose"}, nil
		}
		return bin, nil, nil
	}

	if path, err := exec.LookPath("docker"); err == nil {
		return path, []string{"compose"}, nil
	}
	if path, err := exec.LookPath("docker-compose"); err == nil {
		return path, nil, nil
	}
	return "", nil, fmt.Errorf("neither docker nor docker-compose found in PATH")
}

// Up builds and starts the named services in detached mode.
func (c *Compose) Up(ctx context.Context, names []string) error {
	return c.invoke(ctx, []string{"up", "-d", "--build"}, names)
}

// Stop stops the named services without removing their containers.
func (c *Compose) Stop(ctx context.Context, names []string) error {
	return c.invoke(ctx, []string{"stop"}, names)
}

func (c *Compose) invoke(ctx context.Context, verb, names []string) error {
	bin, lead, err := c.command()
	if err != nil {
		return err
	}

	args := append(lead, "-f", c.cfg.ManifestFile)
	args = append(args, verb...)
	args = append(args, names...)

	c.logger.Info("invoking orchestration tool",
		zap.String("binary", bin),
		zap.Strings("args", args))

	_, err = c.runner.Run(ctx, c.cfg.WorkspaceRoot, bin, args...)
	return err
}
