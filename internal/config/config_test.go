package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("/work")

	if cfg.ServersDir != filepath.Join("/work", ".servstack", "servers") {
		t.Errorf("unexpected ServersDir: %s", cfg.ServersDir)
	}
	if cfg.StateFile != filepath.Join("/work", ".servstack", "state.json") {
		t.Errorf("unexpected StateFile: %s", cfg.StateFile)
	}
	if cfg.ManifestFile != filepath.Join("/work", "docker-compose.yml") {
		t.Errorf("unexpected ManifestFile: %s", cfg.ManifestFile)
	}
	if cfg.Upstream.Remote != "origin" || cfg.Upstream.Branch != "main" {
		t.Errorf("unexpected upstream defaults: %+v", cfg.Upstream)
	}
	if len(cfg.Compose.Environment) == 0 {
		t.Error("expected a default environment passthrough list")
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("SERVSTACK_UPSTREAM_URL", "")
	t.Setenv("SERVSTACK_BRANCH", "")

	root := t.TempDir()
	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Upstream.URL == "" {
		t.Error("expected a default upstream URL")
	}
	if cfg.WorkspaceRoot != root {
		t.Errorf("expected WorkspaceRoot=%s, got %s", root, cfg.WorkspaceRoot)
	}
}

func TestLoad_RelativePathsAreWorkspaceRelative(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, StateDir), 0755); err != nil {
		t.Fatal(err)
	}
	content := []byte("servers_dir: mirror\nmanifest_file: compose/stack.yml\n")
	if err := os.WriteFile(ConfigPath(root), content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ServersDir != filepath.Join(root, "mirror") {
		t.Errorf("expected workspace-relative ServersDir, got %s", cfg.ServersDir)
	}
	if cfg.ManifestFile != filepath.Join(root, "compose", "stack.yml") {
		t.Errorf("expected workspace-relative ManifestFile, got %s", cfg.ManifestFile)
	}
	// Unset fields keep their defaults.
	if cfg.StateFile != filepath.Join(root, StateDir, "state.json") {
		t.Errorf("expected default StateFile, got %s", cfg.StateFile)
	}
}

func TestLoad_MalformedConfigIsAnError(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, StateDir), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(ConfigPath(root), []byte("upstream: [broken"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(root); err == nil {
		t.Fatal("expected an error for a malformed config file")
	}
}

func TestConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SERVSTACK_UPSTREAM_URL", "https://example.com/fork.git")
	t.Setenv("SERVSTACK_BRANCH", "develop")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Upstream.URL != "https://example.com/fork.git" {
		t.Errorf("expected URL override, got %s", cfg.Upstream.URL)
	}
	if cfg.Upstream.Branch != "develop" {
		t.Errorf("expected branch override, got %s", cfg.Upstream.Branch)
	}
}

func TestConfig_SaveLoadRoundTrip(t *testing.T) {
	t.Setenv("SERVSTACK_UPSTREAM_URL", "")
	t.Setenv("SERVSTACK_BRANCH", "")

	root := t.TempDir()
	cfg := DefaultConfig(root)
	cfg.Upstream.URL = "https://example.com/servers.git"
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(root)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Upstream.URL != "https://example.com/servers.git" {
		t.Errorf("expected saved URL, got %s", loaded.Upstream.URL)
	}
}
