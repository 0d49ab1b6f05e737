package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ogulcanaydogan/vitals-guardian/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, ":8080", cfg.Server.Listen)
	assert.Equal(t, "10s", cfg.Server.ReadTimeout)
	assert.Equal(t, "15s", cfg.Server.WriteTimeout)
	assert.Equal(t, int64(64*1024), cfg.Server.MaxBodySize)
	assert.Equal(t, "1.5", cfg.Monitor.TemperatureMargin)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "#patient-alerts", cfg.Alerts.Slack.Channel)
	assert.False(t, cfg.Alerts.Slack.Enabled)
	assert.Empty(t, cfg.Directory.SeedFile)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	data := []byte(`
storage:
  driver: memory
  path: /tmp/test.db
server:
  listen: ":9090"
monitor:
  temperature_margin: "1.0"
directory:
  seed_file: patients.yaml
alerts:
  webhook:
    enabled: true
    url: https://example.com/hook
    secret: s3cret
logging:
  level: debug
`)
	err := os.WriteFile(cfgPath, data, 0o644)
	require.NoError(t, err)

	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, "/tmp/test.db", cfg.Storage.Path)
	assert.Equal(t, ":9090", cfg.Server.Listen)
	assert.Equal(t, "1.0", cfg.Monitor.TemperatureMargin)
	assert.Equal(t, "patients.yaml", cfg.Directory.SeedFile)
	assert.True(t, cfg.Alerts.Webhook.Enabled)
	assert.Equal(t, "s3cret", cfg.Alerts.Webhook.Secret)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("VITALS_LOGGING_LEVEL", "error")
	t.Setenv("VITALS_SERVER_LISTEN", ":7070")
	t.Setenv("VITALS_MONITOR_TEMPERATURE_MARGIN", "2")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "error", cfg.Logging.Level)
	assert.Equal(t, ":7070", cfg.Server.Listen)
	assert.Equal(t, "2", cfg.Monitor.TemperatureMargin)
}

func TestLoad_NegativeMarginFromEnv(t *testing.T) {
	t.Setenv("VITALS_MONITOR_TEMPERATURE_MARGIN", "-1")

	_, err := config.Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must not be negative")
}

func TestLoad_ZeroMargin(t *testing.T) {
	t.Setenv("VITALS_MONITOR_TEMPERATURE_MARGIN", "0")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "0", cfg.Monitor.TemperatureMargin)
}

func TestLoad_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "bad.yaml")
	err := os.WriteFile(cfgPath, []byte("invalid: [yaml"), 0o644)
	require.NoError(t, err)

	_, err = config.Load(cfgPath)
	assert.Error(t, err)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"driver", "storage:\n  driver: postgres\n", "invalid storage driver"},
		{"slack without url", "alerts:\n  slack:\n    enabled: true\n", "webhook_url"},
		{"negative margin", "monitor:\n  temperature_margin: \"-1\"\n", "must not be negative"},
		{"unparsable margin", "monitor:\n  temperature_margin: lots\n", "invalid monitor.temperature_margin"},
		{"webhook without url", "alerts:\n  webhook:\n    enabled: true\n", "alerts.webhook.url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfgPath := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(cfgPath, []byte(tt.data), 0o644))

			_, err := config.Load(cfgPath)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
