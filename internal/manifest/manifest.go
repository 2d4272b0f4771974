// Package manifest maintains the docker compose document describing how each
// added service is built and run.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Document is the compose file model. Only the fields servstack manages are
// declared; anything else a user adds by hand is not preserved across writes.
type Document struct {
	Services map[string]Service `yaml:"services"`
}

// Service is a single compose service definition.
type Service struct {
	Build       Build    `yaml:"build"`
	Restart     string   `yaml:"restart"`
	StdinOpen   bool     `yaml:"stdin_open"`
	Tty         bool     `yaml:"tty"`
	Environment []string `yaml:"environment,omitempty"`
}

// Build holds the build section of a service definition.
type Build struct {
	Context string `yaml:"context"`
}

// Store reads and writes the compose manifest at a fixed path.
//
// Read policy: a missing manifest yields an empty document, but a manifest
// that exists and fails to parse is an error. Treating a corrupt manifest as
// empty would silently deregister every service definition on the next write,
// so unlike the state store this one propagates decode failures.
type Store struct {
	path        string
	serversDir  string
	environment []string
	logger      *zap.Logger
}

// NewStore creates a manifest store. serversDir is the local mirror root the
// generated build contexts point into; environment lists the variable names
// passed through to each generated service.
func NewStore(path, serversDir string, environment []string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		path:        path,
		serversDir:  serversDir,
		environment: environment,
		logger:      logger,
	}
}

// Path returns the manifest file location.
func (s *Store) Path() string { return s.path }

// Exists reports whether the manifest file is present on disk.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Read loads the manifest. A missing file yields an empty document; a file
// that fails to decode is an error.
func (s *Store) Read() (*Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Document{Services: map[string]Service{}}, nil
		}
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", s.path, err)
	}
	if doc.Services == nil {
		doc.Services = map[string]Service{}
	}
	return &doc, nil
}

// AddEntry sets the definition for name, synthesized from the store's
// template: build context under the mirror's src tree, restart unless the
// service was explicitly stopped, and an interactive terminal (the services
// speak a stdio protocol). Replacing an existing entry is allowed with a
// warning.
func (s *Store) AddEntry(doc *Document, name string) {
	if _, ok := doc.Services[name]; ok {
		s.logger.Warn("replacing existing manifest entry", zap.String("service", name))
	}
	doc.Services[name] = Service{
		Build:       Build{Context: s.buildContext(name)},
		Restart:     "unless-stopped",
		StdinOpen:   true,
		Tty:         true,
		Environment: s.environment,
	}
}

// RemoveEntry deletes the definition for name. Removing an absent entry is
// tolerated with a warning.
func (s *Store) RemoveEntry(doc *Document, name string) {
	if _, ok := doc.Services[name]; !ok {
		s.logger.Warn("no manifest entry to remove", zap.String("service", name))
		return
	}
	delete(doc.Services, name)
}

// Write replaces the persisted manifest with doc. Failures propagate.
func (s *Store) Write(doc *Document) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create manifest directory: %w", err)
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// buildContext returns the build context for name, relative to the manifest's
// directory when possible so the compose file stays portable.
func (s *Store) buildContext(name string) string {
	target := filepath.Join(s.serversDir, "src", name)
	rel, err := filepath.Rel(filepath.Dir(s.path), target)
	if err != nil {
		return filepath.ToSlash(target)
	}
	return filepath.ToSlash(rel)
}
