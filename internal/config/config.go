// Package config holds the servstack workspace configuration.
// All artifact paths are resolved once at startup and threaded into every
// component; no package reads the process working directory on its own.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// StateDir is the workspace-relative directory holding servstack's own files.
const StateDir = ".servstack"

// Config holds all servstack configuration.
type Config struct {
	// WorkspaceRoot is the directory holding every persisted artifact.
	WorkspaceRoot string `yaml:"-"`

	// ServersDir is the local mirror of the upstream source tree.
	ServersDir string `yaml:"servers_dir"`

	// StateFile persists the list of added services.
	StateFile string `yaml:"state_file"`

	// ManifestFile is the docker compose document.
	ManifestFile string `yaml:"manifest_file"`

	// Upstream describes the source repository.
	Upstream UpstreamConfig `yaml:"upstream"`

	// Compose configures the container orchestration invocation.
	Compose ComposeConfig `yaml:"compose"`
}

// UpstreamConfig describes the repository the service sources are fetched from.
type UpstreamConfig struct {
	URL    string `yaml:"url"`
	Remote string `yaml:"remote"`
	Branch string `yaml:"branch"`
}

// ComposeConfig configures how the orchestration tool is invoked.
type ComposeConfig struct {
	// Binary overrides executable discovery ("docker" or "docker-compose").
	// When empty the binary is detected at invocation time.
	Binary string `yaml:"binary"`

	// Environment lists variable names passed through to generated service
	// definitions. Only the names are written to the manifest; values are
	// resolved by the orchestration tool when it runs.
	Environment []string `yaml:"environment"`
}

// DefaultConfig returns the configuration for a workspace root with every
// path at its conventional location.
func DefaultConfig(workspaceRoot string) *Config {
	return &Config{
		WorkspaceRoot: workspaceRoot,
		ServersDir:    filepath.Join(workspaceRoot, StateDir, "servers"),
		StateFile:     filepath.Join(workspaceRoot, StateDir, "state.json"),
		ManifestFile:  filepath.Join(workspaceRoot, "docker-compose.yml"),
		Upstream: UpstreamConfig{
			URL:    "https://github.com/modelcontextprotocol/servers.git",
			Remote: "origin",
			Branch: "main",
		},
		Compose: ComposeConfig{
			Environment: []string{"GITHUB_PERSONAL_ACCESS_TOKEN"},
		},
	}
}

// ConfigPath returns the workspace config file location.
func ConfigPath(workspaceRoot string) string {
	return filepath.Join(workspaceRoot, StateDir, "config.yaml")
}

// Load reads the workspace configuration, falling back to defaults when no
// config file exists. A config file that exists but cannot be parsed is an
// error; silently running against default paths would scatter state across
// two locations.
func Load(workspaceRoot string) (*Config, error) {
	cfg := DefaultConfig(workspaceRoot)

	data, err := os.ReadFile(ConfigPath(workspaceRoot))
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Relative paths in the config file are workspace-relative.
	cfg.ServersDir = resolve(workspaceRoot, cfg.ServersDir)
	cfg.StateFile = resolve(workspaceRoot, cfg.StateFile)
	cfg.ManifestFile = resolve(workspaceRoot, cfg.ManifestFile)

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration to its workspace location.
func (c *Config) Save() error {
	path := ConfigPath(c.WorkspaceRoot)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvOverrides() {
	if url := os.Getenv("SERVSTACK_UPSTREAM_URL"); url != "" {
		c.Upstream.URL = url
	}
	if branch := os.Getenv("SERVSTACK_BRANCH"); branch != "" {
		c.Upstream.Branch = branch
	}
	if bin := os.Getenv("SERVSTACK_COMPOSE_BIN"); bin != "" {
		c.Compose.Binary = bin
	}
}

func resolve(root, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
