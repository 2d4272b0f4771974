// Package state persists the list of added services.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// document is the on-disk schema of the state file.
type document struct {
	AddedServers []string `json:"addedServers"`
}

// Store reads and writes the added-service list at a fixed path.
//
// Read policy: a missing or unparseable state file degrades to an empty list
// so the tool stays usable after corruption; the damage is limited to
// forgetting which services were added. Write failures always propagate,
// because a state file that cannot be updated leaves the sparse checkout and
// the compose manifest describing services the state no longer tracks.
type Store struct {
	path   string
	logger *zap.Logger
}

// NewStore creates a store for the state file at path.
func NewStore(path string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{path: path, logger: logger}
}

// Path returns the state file location.
func (s *Store) Path() string { return s.path }

// Read returns the added-service list. A missing file or a file that fails
// to decode yields an empty list; decode failures are logged, never raised.
func (s *Store) Read() []string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("failed to read state file, treating as empty",
				zap.String("path", s.path), zap.Error(err))
		}
		return nil
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		s.logger.Warn("state file is not valid JSON, treating as empty",
			zap.String("path", s.path), zap.Error(err))
		return nil
	}
	return doc.AddedServers
}

// Write replaces the persisted list with names. Failures propagate.
func (s *Store) Write(names []string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	if names == nil {
		names = []string{}
	}
	data, err := json.MarshalIndent(document{AddedServers: names}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	return nil
}
