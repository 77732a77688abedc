package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server" toml:"server"`
	Fetch   FetchConfig   `yaml:"fetch" toml:"fetch"`
	Scan    ScanConfig    `yaml:"scan" toml:"scan"`
	Logging LogConfig     `yaml:"logging" toml:"logging"`
	CORS    CORSConfig    `yaml:"cors" toml:"cors"`
	Metrics MetricsConfig `yaml:"metrics" toml:"metrics"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port                   string `envconfig:"PORT" default:"8000" yaml:"port" toml:"port"`
	Host                   string `envconfig:"HOST" default:"0.0.0.0" yaml:"host" toml:"host"`
	ShutdownTimeoutSeconds int    `envconfig:"SHUTDOWN_TIMEOUT_SECONDS" default:"10" yaml:"shutdown_timeout_seconds" toml:"shutdown_timeout_seconds"`
}

// FetchConfig holds outbound fetch configuration. A zero timeout means fetches
// end only when the inbound request does. Breakers are off unless enabled
// because they carry failure state from one scan to the next.
type FetchConfig struct {
	TimeoutSeconds int    `envconfig:"FETCH_TIMEOUT_SECONDS" default:"0" yaml:"timeout_seconds" toml:"timeout_seconds"`
	UserAgent      string `envconfig:"FETCH_USER_AGENT" default:"SeoInspect/1.0" yaml:"user_agent" toml:"user_agent"`
	Retries        int    `envconfig:"FETCH_RETRIES" default:"0" yaml:"retries" toml:"retries"`
	MaxBodyBytes   int64  `envconfig:"FETCH_MAX_BODY_BYTES" default:"10485760" yaml:"max_body_bytes" toml:"max_body_bytes"`
	BreakerEnabled bool   `envconfig:"FETCH_BREAKER_ENABLED" default:"false" yaml:"breaker_enabled" toml:"breaker_enabled"`
}

// ScanConfig holds scan pipeline configuration.
type ScanConfig struct {
	AssetExclude []string `envconfig:"SCAN_ASSET_EXCLUDE" yaml:"asset_exclude" toml:"asset_exclude"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info" yaml:"level" toml:"level"`
	Development bool   `envconfig:"LOG_DEV" default:"false" yaml:"development" toml:"development"`
}

// CORSConfig holds allowed browser origins.
type CORSConfig struct {
	AllowOrigins []string `envconfig:"CORS_ORIGINS" default:"*" yaml:"allow_origins" toml:"allow_origins"`
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `envconfig:"METRICS_ENABLED" default:"true" yaml:"enabled" toml:"enabled"`
}

// Load loads configuration from environment variables, reading an optional
// .env file in the working directory first.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadFile applies a YAML or TOML file on top of the defaults.
// Keys missing from the file keep their default values.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("unsupported config format: %s", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}

// Address returns the host:port the server listens on.
func (c *Config) Address() string {
	return c.Server.Host + ":" + c.Server.Port
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:                   "8000",
			Host:                   "0.0.0.0",
			ShutdownTimeoutSeconds: 10,
		},
		Fetch: FetchConfig{
			TimeoutSeconds: 0,
			UserAgent:      "SeoInspect/1.0",
			Retries:        0,
			MaxBodyBytes:   10 * 1024 * 1024,
			BreakerEnabled: false,
		},
		Scan: ScanConfig{},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		CORS: CORSConfig{
			AllowOrigins: []string{"*"},
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}
