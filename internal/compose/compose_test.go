package compose

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"servstack/internal/config"
	"servstack/internal/shell"
)

type fakeRunner struct {
	dir    string
	binary string
	args   []string
	calls  int
}

func (f *fakeRunner) Run(ctx context.Context, dir, binary string, args ...string) (shell.Result, error) {
	f.dir, f.binary, f.args = dir, binary, args
	f.calls++
	return shell.Result{}, nil
}

func newTestCompose(t *testing.T, binary string) (*Compose, *fakeRunner, *config.Config) {
	t.Helper()
	cfg := config.DefaultConfig(t.TempDir())
	cfg.Compose.Binary = binary
	runner := &fakeRunner{}
	return New(cfg, runner, nil), runner, cfg
}

func TestUp_DockerPlugin(t *testing.T) {
	c, runner, cfg := newTestCompose(t, "docker")

	require.NoError(t, c.Up(context.Background(), []string{"github", "slack"}))

	assert.Equal(t, 1, runner.calls)
	assert.Equal(t, cfg.WorkspaceRoot, runner.dir)
	assert.Equal(t, "docker", runner.binary)
	assert.Equal(t,
		[]string{"compose", "-f", cfg.ManifestFile, "up", "-d", "--build", "github", "slack"},
		runner.args)
}

func TestStop_StandaloneBinary(t *testing.T) {
	c, runner, cfg := newTestCompose(t, "docker-compose")

	require.NoError(t, c.Stop(context.Background(), []string{"github"}))

	assert.Equal(t, "docker-compose", runner.binary)
	assert.Equal(t, []string{"-f", cfg.ManifestFile, "stop", "github"}, runner.args)
}
