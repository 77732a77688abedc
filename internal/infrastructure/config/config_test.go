package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Server config
	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 10, cfg.Server.ShutdownTimeoutSeconds)

	// Fetch config
	assert.Equal(t, 0, cfg.Fetch.TimeoutSeconds)
	assert.Equal(t, 0, cfg.Fetch.Retries)
	assert.False(t, cfg.Fetch.BreakerEnabled)
	assert.Equal(t, int64(10*1024*1024), cfg.Fetch.MaxBodyBytes)
	assert.NotEmpty(t, cfg.Fetch.UserAgent)

	// Scan config
	assert.Empty(t, cfg.Scan.AssetExclude)

	// Logging config
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)

	assert.Equal(t, []string{"*"}, cfg.CORS.AllowOrigins)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"PORT":                  "9000",
		"HOST":                  "127.0.0.1",
		"FETCH_TIMEOUT_SECONDS": "5",
		"FETCH_USER_AGENT":      "test-agent",
		"FETCH_RETRIES":         "2",
		"FETCH_BREAKER_ENABLED": "true",
		"SCAN_ASSET_EXCLUDE":    "_next/**,**/*.map",
		"LOG_LEVEL":             "debug",
		"LOG_DEV":               "true",
		"CORS_ORIGINS":          "https://a.example,https://b.example",
		"METRICS_ENABLED":       "false",
	}
	for key, value := range envVars {
		t.Setenv(key, value)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, "127.0.0.1:9000", cfg.Address())
	assert.Equal(t, 5, cfg.Fetch.TimeoutSeconds)
	assert.Equal(t, "test-agent", cfg.Fetch.UserAgent)
	assert.Equal(t, 2, cfg.Fetch.Retries)
	assert.True(t, cfg.Fetch.BreakerEnabled)
	assert.Equal(t, []string{"_next/**", "**/*.map"}, cfg.Scan.AssetExclude)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowOrigins)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoadInvalidEnvironment(t *testing.T) {
	t.Setenv("FETCH_RETRIES", "many")

	_, err := Load()
	assert.Error(t, err)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	t.Run("yaml", func(t *testing.T) {
		path := writeFile(t, "config.yaml", `
server:
  port: "9100"
fetch:
  timeout_seconds: 12
scan:
  asset_exclude:
    - "**/*.map"
logging:
  level: warn
`)
		cfg, err := LoadFile(path)
		require.NoError(t, err)

		assert.Equal(t, "9100", cfg.Server.Port)
		assert.Equal(t, "0.0.0.0", cfg.Server.Host, "missing keys keep defaults")
		assert.Equal(t, 12, cfg.Fetch.TimeoutSeconds)
		assert.Equal(t, []string{"**/*.map"}, cfg.Scan.AssetExclude)
		assert.Equal(t, "warn", cfg.Logging.Level)
	})

	t.Run("toml", func(t *testing.T) {
		path := writeFile(t, "config.toml", `
[server]
port = "9200"

[fetch]
retries = 1
user_agent = "toml-agent"

[metrics]
enabled = false
`)
		cfg, err := LoadFile(path)
		require.NoError(t, err)

		assert.Equal(t, "9200", cfg.Server.Port)
		assert.Equal(t, 1, cfg.Fetch.Retries)
		assert.Equal(t, "toml-agent", cfg.Fetch.UserAgent)
		assert.False(t, cfg.Metrics.Enabled)
		assert.Equal(t, 0, cfg.Fetch.TimeoutSeconds)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := writeFile(t, "config.ini", "port=1")
		_, err := LoadFile(path)
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writeFile(t, "bad.yml", "server: [unclosed")
		_, err := LoadFile(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}
