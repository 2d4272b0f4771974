// Package mirror manages the sparse local checkout of the upstream service
// repository.
package mirror

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"servstack/internal/config"
	"servstack/internal/shell"
)

// Mirror owns the local clone under ServersDir. It is created once and
// thereafter only fetched, never re-initialized or deleted.
type Mirror struct {
	cfg    *config.Config
	runner shell.Runner
	logger *zap.Logger
}

// New creates a mirror bound to cfg.ServersDir.
func New(cfg *config.Config, runner shell.Runner, logger *zap.Logger) *Mirror {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mirror{cfg: cfg, runner: runner, logger: logger}
}

// Dir returns the mirror's working directory.
func (m *Mirror) Dir() string { return m.cfg.ServersDir }

// sparseCheckoutPath is the file the version-control tool reads to decide
// which subdirectories to materialize.
func (m *Mirror) sparseCheckoutPath() string {
	return filepath.Join(m.cfg.ServersDir, ".git", "info", "sparse-checkout")
}

// EnsureInitialized performs the one-time mirror setup: init the repository,
// register the upstream remote, enable sparse checkout, and create an empty
// path list. If git metadata already exists this is a no-op; an existing
// mirror's remote URL and sparse flag are not re-verified.
func (m *Mirror) EnsureInitialized(ctx context.Context) error {
	dir := m.cfg.ServersDir
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create servers directory: %w", err)
	}

	if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
		return nil
	}

	m.logger.Info("initializing sparse mirror",
		zap.String("dir", dir),
		zap.String("upstream", m.cfg.Upstream.URL))

	if _, err := m.runner.Run(ctx, dir, "git", "init"); err != nil {
		return err
	}
	if _, err := m.runner.Run(ctx, dir, "git", "remote", "add", m.cfg.Upstream.Remote, m.cfg.Upstream.URL); err != nil {
		return err
	}
	if _, err := m.runner.Run(ctx, dir, "git", "config", "core.sparseCheckout", "true"); err != nil {
		return err
	}

	return m.writeSparseFile(nil)
}

// UpdateRetrievalPaths rewrites the sparse-checkout file from names, one
// src/<name>/ line per name in order. The file is always fully regenerated;
// callers pass the complete target set, never a delta.
func (m *Mirror) UpdateRetrievalPaths(names []string) error {
	return m.writeSparseFile(names)
}

func (m *Mirror) writeSparseFile(names []string) error {
	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "src/%s/\n", name)
	}

	path := m.sparseCheckoutPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create sparse-checkout directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write sparse-checkout file: %w", err)
	}
	return nil
}

// FetchLatest fetches the upstream branch and switches the working copy to
// it. A fetch or checkout failure aborts with the git diagnostics attached;
// there is no retry.
func (m *Mirror) FetchLatest(ctx context.Context) error {
	dir := m.cfg.ServersDir
	up := m.cfg.Upstream

	m.logger.Info("fetching upstream",
		zap.String("remote", up.Remote),
		zap.String("branch", up.Branch))

	if _, err := m.runner.Run(ctx, dir, "git", "fetch", up.Remote, up.Branch); err != nil {
		return err
	}
	if _, err := m.runner.Run(ctx, dir, "git", "checkout", up.Branch); err != nil {
		return err
	}
	return nil
}
