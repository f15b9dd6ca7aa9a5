package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mj1618/windows-mcp/internal/model"
	"github.com/mj1618/windows-mcp/internal/snapshot"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, path string) (*Config, error) {
	t.Helper()
	v := viper.New()
	require.NoError(t, Configure(v, path))
	return Load(v)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg, err := load(t, "")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, TransportStdio, cfg.Server.Transport)
	assert.Equal(t, snapshot.DefaultTimeout, cfg.Capture.Timeout)
	assert.Equal(t, snapshot.DefaultAvoided, cfg.Exclusion.Avoided)
	assert.Empty(t, cfg.Exclusion.Excluded)
	assert.Equal(t, "png", cfg.Screenshot.Format)

	policy, err := cfg.Policy()
	require.NoError(t, err)
	assert.Equal(t, snapshot.DefaultPartition(), policy.Partition)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "windows-mcp.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log:
  level: debug
server:
  transport: streamable-http
  addr: 127.0.0.1:9000
capture:
  timeout: 3s
exclusion:
  excluded: [Slack]
  avoided: []
partition:
  interactive: [button, edit]
  informative: [text]
screenshot:
  format: jpeg
  quality: 60
  scale: 0.5
`), 0o644))

	cfg, err := load(t, path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, TransportHTTP, cfg.Server.Transport)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, 3*time.Second, cfg.Capture.Timeout)
	assert.Equal(t, []string{"Slack"}, cfg.Exclusion.Excluded)
	assert.Empty(t, cfg.Exclusion.Avoided)

	policy, err := cfg.Policy()
	require.NoError(t, err)
	assert.Equal(t, []model.ControlType{model.ControlButton, model.ControlEdit}, policy.Partition.Interactive)
	assert.Equal(t, []model.ControlType{model.ControlText}, policy.Partition.Informative)

	img := cfg.ImageOptions()
	assert.Equal(t, "jpeg", img.Format)
	assert.Equal(t, 60, img.Quality)
	assert.InDelta(t, 0.5, img.Scale, 1e-9)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("WINDOWS_MCP_CAPTURE_TIMEOUT", "12s")
	t.Setenv("WINDOWS_MCP_LOG_LEVEL", "warn")
	t.Setenv("WINDOWS_MCP_FIXTURE", "sample")

	cfg, err := load(t, "")
	require.NoError(t, err)
	assert.Equal(t, 12*time.Second, cfg.Capture.Timeout)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "sample", cfg.Fixture)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	v := viper.New()
	err := Configure(v, filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"transport":    "server:\n  transport: grpc\n",
		"unknown type": "partition:\n  interactive: [Gizmo]\n",
		"overlap":      "partition:\n  interactive: [Button]\n  informative: [button]\n",
		"image format": "screenshot:\n  format: gif\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "c.yaml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
			_, err := load(t, path)
			assert.Error(t, err)
		})
	}
}

func TestClampTimeout(t *testing.T) {
	assert.Equal(t, snapshot.DefaultTimeout, ClampTimeout(0))
	assert.Equal(t, snapshot.DefaultTimeout, ClampTimeout(-time.Second))
	assert.Equal(t, MinCaptureTimeout, ClampTimeout(10*time.Millisecond))
	assert.Equal(t, MaxCaptureTimeout, ClampTimeout(time.Minute))
	assert.Equal(t, 5*time.Second, ClampTimeout(5*time.Second))
}
