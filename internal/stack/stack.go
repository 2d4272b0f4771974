// Package stack coordinates the state file, the sparse mirror, and the
// compose manifest behind the user-facing commands.
//
// The three artifacts are written independently, in a fixed order, with no
// cross-artifact transaction: a failure mid-command leaves whatever was
// already durably written. Commands fail fast and do not roll back; re-running
// a command converges because every artifact is regenerated from the full
// target set rather than patched.
package stack

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"servstack/internal/compose"
	"servstack/internal/config"
	"servstack/internal/manifest"
	"servstack/internal/mirror"
	"servstack/internal/shell"
	"servstack/internal/state"
	"servstack/internal/ui"
)

// Stack wires the stores and external tools behind the CLI commands.
type Stack struct {
	state    *state.Store
	manifest *manifest.Store
	mirror   *mirror.Mirror
	compose  *compose.Compose
	logger   *zap.Logger
	printer  *ui.Printer
}

// New builds a stack for cfg, running external tools through runner and
// reporting to the user through printer.
func New(cfg *config.Config, runner shell.Runner, logger *zap.Logger, printer *ui.Printer) *Stack {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Stack{
		state:    state.NewStore(cfg.StateFile, logger),
		manifest: manifest.NewStore(cfg.ManifestFile, cfg.ServersDir, cfg.Compose.Environment, logger),
		mirror:   mirror.New(cfg, runner, logger),
		compose:  compose.New(cfg, runner, logger),
		logger:   logger,
		printer:  printer,
	}
}

// Add tracks a new service: extends the sparse checkout to its source
// directory, fetches the latest upstream, writes its manifest entry, and
// finally records it in the state file. Adding an already-tracked service is
// a benign no-op that touches nothing.
func (s *Stack) Add(ctx context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("service name is required")
	}

	names := s.state.Read()
	if slices.Contains(names, name) {
		s.printer.Warnf("%s is already added", name)
		return nil
	}

	if err := s.mirror.EnsureInitialized(ctx); err != nil {
		return err
	}

	updated := append(slices.Clone(names), name)
	if err := s.mirror.UpdateRetrievalPaths(updated); err != nil {
		return err
	}
	if err := s.mirror.FetchLatest(ctx); err != nil {
		return err
	}

	doc, err := s.manifest.Read()
	if err != nil {
		return err
	}
	s.manifest.AddEntry(doc, name)
	if err := s.manifest.Write(doc); err != nil {
		return err
	}

	if err := s.state.Write(updated); err != nil {
		return err
	}

	s.printer.Successf("Added %s", name)
	return nil
}

// Remove untracks a service: shrinks the sparse checkout, deletes its
// manifest entry, and records the new set. Removing a service that was never
// added is an error before anything is written.
func (s *Stack) Remove(ctx context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("service name is required")
	}

	names := s.state.Read()
	idx := slices.Index(names, name)
	if idx < 0 {
		return fmt.Errorf("%s is not added", name)
	}
	updated := slices.Delete(slices.Clone(names), idx, idx+1)

	if err := s.mirror.EnsureInitialized(ctx); err != nil {
		return err
	}
	if err := s.mirror.UpdateRetrievalPaths(updated); err != nil {
		return err
	}

	doc, err := s.manifest.Read()
	if err != nil {
		return err
	}
	s.manifest.RemoveEntry(doc, name)
	if err := s.manifest.Write(doc); err != nil {
		return err
	}

	if err := s.state.Write(updated); err != nil {
		return err
	}

	s.printer.Successf("Removed %s", name)
	return nil
}

// Update fetches the latest upstream sources for every added service.
func (s *Stack) Update(ctx context.Context) error {
	names := s.state.Read()
	if len(names) == 0 {
		s.printer.Plainf("No services added, nothing to update.")
		return nil
	}

	if err := s.mirror.EnsureInitialized(ctx); err != nil {
		return err
	}
	if err := s.mirror.FetchLatest(ctx); err != nil {
		return err
	}

	s.printer.Successf("Updated sources for %d service(s)", len(names))
	return nil
}

// Start brings up one service, or every added service when name is empty.
// A named service must be both added and present in the manifest. In the
// unnamed form, added services missing from the manifest are skipped with a
// warning.
func (s *Stack) Start(ctx context.Context, name string) error {
	if !s.manifest.Exists() {
		return fmt.Errorf("no compose manifest at %s; add a service first", s.manifest.Path())
	}

	names := s.state.Read()
	doc, err := s.manifest.Read()
	if err != nil {
		return err
	}

	var targets []string
	if name != "" {
		if !slices.Contains(names, name) {
			return fmt.Errorf("%s is not added", name)
		}
		if _, ok := doc.Services[name]; !ok {
			return fmt.Errorf("%s has no manifest entry", name)
		}
		targets = []string{name}
	} else {
		for _, n := range names {
			if _, ok := doc.Services[n]; !ok {
				s.printer.Warnf("skipping %s: no manifest entry", n)
				continue
			}
			targets = append(targets, n)
		}
		if len(targets) == 0 {
			s.printer.Plainf("No services to start.")
			return nil
		}
	}

	if err := s.compose.Up(ctx, targets); err != nil {
		return err
	}
	s.printer.Successf("Started %s", strings.Join(targets, ", "))
	return nil
}

// Stop stops one service, or every added service when name is empty. A named
// service only needs a manifest entry: a container can still be running for a
// service that was already removed from the added set, and stopping it must
// remain possible.
func (s *Stack) Stop(ctx context.Context, name string) error {
	if !s.manifest.Exists() {
		if name != "" {
			return fmt.Errorf("cannot stop %s: no compose manifest at %s", name, s.manifest.Path())
		}
		s.logger.Warn("no compose manifest", zap.String("path", s.manifest.Path()))
		s.printer.Plainf("No services to stop.")
		return nil
	}

	names := s.state.Read()
	doc, err := s.manifest.Read()
	if err != nil {
		return err
	}

	var targets []string
	if name != "" {
		if _, ok := doc.Services[name]; !ok {
			return fmt.Errorf("%s has no manifest entry", name)
		}
		targets = []string{name}
	} else {
		for _, n := range names {
			if _, ok := doc.Services[n]; ok {
				targets = append(targets, n)
			}
		}
		if len(targets) == 0 {
			s.printer.Plainf("No services to stop.")
			return nil
		}
	}

	if err := s.compose.Stop(ctx, targets); err != nil {
		return err
	}
	s.printer.Successf("Stopped %s", strings.Join(targets, ", "))
	return nil
}
