package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o600))
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 12*time.Second, cfg.Poll.Interval)
	assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
	assert.True(t, cfg.Preview.Enabled)
	assert.Equal(t, "INFO", cfg.Logging.Level)
	assert.Empty(t, cfg.Server.URL)
}

func TestLoad_File(t *testing.T) {
	dir := writeConfig(t, `
server:
  url: https://api.example.com/
  timeout: 5s
  max_rps: 0.5
poll:
  interval: 2s
storage:
  dir: /tmp/reelfind-test
preview:
  enabled: false
browser:
  command: firefox
  args: ["--new-tab"]
logging:
  level: debug
`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com/", cfg.Server.URL)
	assert.Equal(t, 5*time.Second, cfg.Server.Timeout)
	assert.Equal(t, 0.5, cfg.Server.MaxRPS)
	assert.Equal(t, 2*time.Second, cfg.Poll.Interval)
	assert.Equal(t, "/tmp/reelfind-test", cfg.Storage.Dir)
	assert.False(t, cfg.Preview.Enabled)
	assert.Equal(t, "firefox", cfg.Browser.Command)
	assert.Equal(t, []string{"--new-tab"}, cfg.Browser.Args)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := writeConfig(t, "server:\n  url: https://file.example.com\n")
	t.Setenv("REELFIND_SERVER_URL", "https://env.example.com")
	t.Setenv("REELFIND_POLL_INTERVAL", "3s")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "https://env.example.com", cfg.Server.URL)
	assert.Equal(t, 3*time.Second, cfg.Poll.Interval)
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := writeConfig(t, "server: [unclosed")

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"valid", func(c *Config) {}, true},
		{"missing url", func(c *Config) { c.Server.URL = "" }, false},
		{"relative url", func(c *Config) { c.Server.URL = "api/v1" }, false},
		{"wrong scheme", func(c *Config) { c.Server.URL = "ftp://example.com" }, false},
		{"zero interval", func(c *Config) { c.Poll.Interval = 0 }, false},
		{"zero timeout", func(c *Config) { c.Server.Timeout = 0 }, false},
		{"negative rps", func(c *Config) { c.Server.MaxRPS = -1 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Server.URL = "https://api.example.com"
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.Is(err, ErrInvalidConfig))
			}
		})
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "data"), ExpandHome("~/data"))
	assert.Equal(t, "/abs/path", ExpandHome("/abs/path"))
	assert.Equal(t, "", ExpandHome(""))
}
