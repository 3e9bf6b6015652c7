package config

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv clears key for the duration of the test.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestLoadFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"AGENTLY_API_KEY", "AGENTLY_BASE_URL", "MCP_TRANSPORT", "MCP_PORT", "METRICS_PORT", "LOG_LEVEL"} {
		unsetEnv(t, key)
	}

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "https://agently.gg", cfg.BaseURL)
	assert.Empty(t, cfg.APIKey)
	assert.Equal(t, TransportStdio, cfg.Transport)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 0, cfg.MetricsPort)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestLoadFromEnvOverrides(t *testing.T) {
	t.Setenv("AGENTLY_API_KEY", "k-123")
	t.Setenv("AGENTLY_BASE_URL", "http://localhost:3000")
	t.Setenv("MCP_TRANSPORT", "http")
	t.Setenv("MCP_PORT", "9000")
	t.Setenv("METRICS_PORT", "9100")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "k-123", cfg.APIKey)
	assert.Equal(t, "http://localhost:3000", cfg.BaseURL)
	assert.Equal(t, TransportHTTP, cfg.Transport)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, 9100, cfg.MetricsPort)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestLoadFromEnvBadPort(t *testing.T) {
	t.Setenv("MCP_PORT", "not-a-port")

	_, err := LoadFromEnv()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			BaseURL:   "https://agently.gg",
			Transport: TransportStdio,
			Port:      8080,
			LogLevel:  "info",
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "relative base url", mutate: func(c *Config) { c.BaseURL = "agently.gg" }},
		{name: "unknown transport", mutate: func(c *Config) { c.Transport = "websocket" }},
		{name: "port out of range", mutate: func(c *Config) { c.Port = 70000 }},
		{name: "negative metrics port", mutate: func(c *Config) { c.MetricsPort = -1 }},
		{name: "metrics port collides", mutate: func(c *Config) {
			c.Transport = TransportHTTP
			c.MetricsPort = c.Port
		}},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "verbose" }},
	}

	require.NoError(t, valid().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
