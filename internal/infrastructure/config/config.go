package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for bookmarkd.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
	Security SecurityConfig `yaml:"security"`
}

// ServerConfig contains HTTP API server settings.
type ServerConfig struct {
	Host     string        `yaml:"host"`
	Port     int           `yaml:"port"`
	TLS      TLSConfig     `yaml:"tls"`
	Timeouts TimeoutConfig `yaml:"timeouts"`
	CORS     CORSConfig    `yaml:"cors"`
}

// TLSConfig contains TLS certificate settings.
type TLSConfig struct {
	Enabled  bool   `yaml:"enabled"`
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
}

// TimeoutConfig contains HTTP timeout settings in seconds.
type TimeoutConfig struct {
	Read  int `yaml:"read"`
	Write int `yaml:"write"`
	Idle  int `yaml:"idle"`
}

// CORSConfig contains Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
	AllowedMethods []string `yaml:"allowed_methods"`
	AllowedHeaders []string `yaml:"allowed_headers"`
}

// DatabaseConfig contains SQLite database settings.
type DatabaseConfig struct {
	Path        string `yaml:"path"`
	WALMode     bool   `yaml:"wal_mode"`
	BusyTimeout int    `yaml:"busy_timeout"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// SecurityConfig contains security settings.
type SecurityConfig struct {
	Tokens TokenConfig `yaml:"tokens"`
}

// TokenConfig contains the token signing secrets and lifetimes.
// Access and refresh tokens are signed with distinct secrets so the two
// classes can be rotated independently; the secrets must differ.
type TokenConfig struct {
	AccessSecret  string `yaml:"access_secret"`
	RefreshSecret string `yaml:"refresh_secret"`

	// AccessTTL is the access token lifetime in minutes (default 15).
	AccessTTL int `yaml:"access_ttl"`

	// RefreshTTL is the refresh token lifetime in minutes (default 10080, i.e. 7 days).
	RefreshTTL int `yaml:"refresh_ttl"`
}

// Default token lifetimes in minutes.
const (
	defaultAccessTTLMinutes  = 15
	defaultRefreshTTLMinutes = 7 * 24 * 60
)

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: BOOKMARKD_SECTION_KEY
// For example: BOOKMARKD_DATABASE_PATH, BOOKMARKD_ACCESS_SECRET
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
			Timeouts: TimeoutConfig{
				Read:  30,
				Write: 30,
				Idle:  60,
			},
		},
		Database: DatabaseConfig{
			Path:        "./data/bookmarkd.db",
			WALMode:     true,
			BusyTimeout: 5,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
		Security: SecurityConfig{
			Tokens: TokenConfig{
				AccessTTL:  defaultAccessTTLMinutes,
				RefreshTTL: defaultRefreshTTLMinutes,
			},
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("BOOKMARKD_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("BOOKMARKD_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("BOOKMARKD_DATABASE_PATH"); v != "" {
		cfg.Database.Path = v
	}

	// Token secrets (IMPORTANT: always set in production)
	if v := os.Getenv("BOOKMARKD_ACCESS_SECRET"); v != "" {
		cfg.Security.Tokens.AccessSecret = v
	}
	if v := os.Getenv("BOOKMARKD_REFRESH_SECRET"); v != "" {
		cfg.Security.Tokens.RefreshSecret = v
	}
}

// minSecretLength is the minimum accepted signing secret length. Short
// HMAC secrets make forged tokens brute-forceable offline.
const minSecretLength = 32

// Validate checks the configuration for errors and security issues.
// A missing or weak signing secret is a fatal startup error, never a
// per-request one.
func (c *Config) Validate() error {
	var errs []string

	if c.Database.Path == "" {
		errs = append(errs, "database.path is required")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, "server.port must be between 1 and 65535")
	}

	tokens := c.Security.Tokens
	switch {
	case tokens.AccessSecret == "":
		errs = append(errs, "security.tokens.access_secret is required (set BOOKMARKD_ACCESS_SECRET environment variable)")
	case len(tokens.AccessSecret) < minSecretLength:
		errs = append(errs, "security.tokens.access_secret must be at least 32 characters")
	}
	switch {
	case tokens.RefreshSecret == "":
		errs = append(errs, "security.tokens.refresh_secret is required (set BOOKMARKD_REFRESH_SECRET environment variable)")
	case len(tokens.RefreshSecret) < minSecretLength:
		errs = append(errs, "security.tokens.refresh_secret must be at least 32 characters")
	}
	if tokens.AccessSecret != "" && tokens.AccessSecret == tokens.RefreshSecret {
		errs = append(errs, "security.tokens.access_secret and refresh_secret must differ")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// GetReadTimeout returns the server read timeout as a Duration.
func (c *Config) GetReadTimeout() time.Duration {
	return time.Duration(c.Server.Timeouts.Read) * time.Second
}

// GetWriteTimeout returns the server write timeout as a Duration.
func (c *Config) GetWriteTimeout() time.Duration {
	return time.Duration(c.Server.Timeouts.Write) * time.Second
}

// GetIdleTimeout returns the server idle timeout as a Duration.
func (c *Config) GetIdleTimeout() time.Duration {
	return time.Duration(c.Server.Timeouts.Idle) * time.Second
}

// GetAccessTTL returns the access token lifetime as a Duration.
func (t TokenConfig) GetAccessTTL() time.Duration {
	return time.Duration(t.AccessTTL) * time.Minute
}

// GetRefreshTTL returns the refresh token lifetime as a Duration.
func (t TokenConfig) GetRefreshTTL() time.Duration {
	return time.Duration(t.RefreshTTL) * time.Minute
}
