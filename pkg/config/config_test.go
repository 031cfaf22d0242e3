package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.sweepbot/pkg/workflow"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "https://gleam.io", cfg.Platform.BaseURL)
	assert.Equal(t, workflow.DefaultDelays(), cfg.Delays)
	assert.Equal(t, BackendFile, cfg.Preferences.Backend)
	assert.False(t, cfg.Browser.Enabled)
	assert.True(t, cfg.Browser.IsHeadless())
	assert.Empty(t, cfg.Events.Addr)
	assert.Zero(t, cfg.Run.StaleThreshold)
}

func TestParse(t *testing.T) {
	data := []byte(`
platform:
  base_url: http://localhost:8080
  timeout: 5s
delays:
  inter_request: 1s
  post_action: 2s
run:
  stale_threshold: 10m
preferences:
  backend: sqlite
  database: /tmp/sweepbot.db
rules:
  files: [extra.yaml]
browser:
  enabled: true
  headless: false
  bin: /usr/bin/chromium
events:
  addr: 127.0.0.1:7777
logging:
  level: debug
  format: json
`)
	cfg, err := Parse(data, "test")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.Platform.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Platform.Timeout)
	assert.Equal(t, workflow.Delays{
		InterRequest: time.Second,
		PostAction:   2 * time.Second,
		TimerPadding: 7 * time.Second,
	}, cfg.Delays)
	assert.Equal(t, 10*time.Minute, cfg.Run.StaleThreshold)
	assert.Equal(t, BackendSQLite, cfg.Preferences.Backend)
	assert.Equal(t, "/tmp/sweepbot.db", cfg.Preferences.Database)
	assert.Equal(t, []string{"extra.yaml"}, cfg.Rules.Files)
	assert.True(t, cfg.Browser.Enabled)
	assert.False(t, cfg.Browser.IsHeadless())
	assert.Equal(t, "/usr/bin/chromium", cfg.Browser.Bin)
	assert.Equal(t, "127.0.0.1:7777", cfg.Events.Addr)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{"bad yaml", "platform: [", "failed to parse config"},
		{"bad backend", "preferences:\n  backend: postgres\n", "preferences.backend"},
		{"bad level", "logging:\n  level: loud\n", "logging.level"},
		{"bad format", "logging:\n  format: xml\n", "logging.format"},
		{"negative delay", "delays:\n  inter_request: -1s\n", "delays must not be negative"},
		{"empty base url", "platform:\n  base_url: \"\"\n", "platform.base_url"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), "test")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_SearchOrder(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	cfg, path, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, filepath.Join(home, ".sweepbot", "preferences.yaml"), cfg.Preferences.Path)

	homeCfg := filepath.Join(home, ".sweepbot", "config.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(homeCfg), 0o755))
	require.NoError(t, os.WriteFile(homeCfg, []byte("events:\n  addr: :1\n"), 0o644))
	cfg, path, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, homeCfg, path)
	assert.Equal(t, ":1", cfg.Events.Addr)

	require.NoError(t, os.WriteFile(FileName, []byte("events:\n  addr: :2\n"), 0o644))
	cfg, path, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, FileName, path)
	assert.Equal(t, ":2", cfg.Events.Addr)

	explicit := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(explicit, []byte("events:\n  addr: :3\n"), 0o644))
	cfg, path, err = Load(explicit)
	require.NoError(t, err)
	assert.Equal(t, explicit, path)
	assert.Equal(t, ":3", cfg.Events.Addr)
}

func TestLoad_MissingExplicit(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	assert.Equal(t, filepath.Join(home, "a", "b"), ExpandHome("~/a/b"))
	assert.Equal(t, home, ExpandHome("~"))
	assert.Equal(t, "/abs/path", ExpandHome("/abs/path"))
	assert.Equal(t, "~user/x", ExpandHome("~user/x"))
	assert.Equal(t, "", ExpandHome(""))
}
