package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for the knowledge backend.
// Configuration can come from YAML file (config.yaml) or environment variables.
// Environment variables always override YAML values for fields that support both.
// Secrets (database password, signing secret) must only come from environment variables.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"127.0.0.1"`
	Port     string `yaml:"port" env:"PORT" env-default:"8000"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	Version  string `yaml:"-"` // Set at load time, not from config

	// Token issuance configuration
	Auth AuthConfig `yaml:"auth"`

	// Database configuration (PostgreSQL)
	Database DatabaseConfig `yaml:"database"`

	// MediaRoot is the directory where uploaded artifact files are stored.
	MediaRoot string `yaml:"media_root" env:"MEDIA_ROOT" env-default:"static/uploads"`

	// MigrationsPath is the directory containing SQL migration files.
	MigrationsPath string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"migrations"`
}

// AuthConfig holds token signing configuration.
type AuthConfig struct {
	// SigningSecret is the shared secret used to sign access and refresh tokens.
	// Server will fail to start if this is not set.
	SigningSecret string `yaml:"-" env:"AUTH_SIGNING_SECRET"` // Secret - not in YAML

	// SigningAlgorithm identifies the symmetric JWT signing algorithm.
	SigningAlgorithm string `yaml:"signing_algorithm" env:"AUTH_SIGNING_ALGORITHM" env-default:"HS256"`

	// AccessTokenMinutes is the access token lifetime in minutes.
	AccessTokenMinutes int `yaml:"access_token_minutes" env:"AUTH_ACCESS_TOKEN_MINUTES" env-default:"30"`

	// RefreshTokenDays is the refresh token lifetime in days.
	RefreshTokenDays int `yaml:"refresh_token_days" env:"AUTH_REFRESH_TOKEN_DAYS" env-default:"7"`
}

// DatabaseConfig holds PostgreSQL database configuration.
type DatabaseConfig struct {
	Host           string `yaml:"host" env:"PGHOST" env-default:"localhost"`
	Port           int    `yaml:"port" env:"PGPORT" env-default:"5432"`
	User           string `yaml:"user" env:"PGUSER" env-default:"dkn"`
	Password       string `yaml:"-" env:"PGPASSWORD"` // Secret - not in YAML
	Database       string `yaml:"database" env:"PGDATABASE" env-default:"dkn_backend"`
	MaxConnections int32  `yaml:"max_connections" env:"PGMAX_CONNECTIONS" env-default:"25"`

	// Pool connection recycling, in minutes.
	ConnMaxLifetimeMinutes int `yaml:"conn_max_lifetime_minutes" env:"PGCONN_MAX_LIFETIME_MINUTES" env-default:"60"`
	ConnMaxIdleMinutes     int `yaml:"conn_max_idle_minutes" env:"PGCONN_MAX_IDLE_MINUTES" env-default:"30"`

	SSLMode string `yaml:"ssl_mode" env:"PGSSLMODE" env-default:"disable"`
}

// Load reads configuration from config.yaml with environment variable overrides.
// The version parameter is injected at build time and set on the returned Config.
// If config.yaml does not exist, configuration comes from environment variables alone.
func Load(version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	if _, err := os.Stat("config.yaml"); err == nil {
		if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
			return nil, fmt.Errorf("failed to read config.yaml: %w", err)
		}
	} else {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// validate checks configuration invariants that cannot be expressed as defaults.
func (c *Config) validate() error {
	if c.Auth.SigningSecret == "" {
		return fmt.Errorf("AUTH_SIGNING_SECRET must be set")
	}
	if c.Auth.AccessTokenMinutes <= 0 {
		return fmt.Errorf("access_token_minutes must be positive")
	}
	if c.Auth.RefreshTokenDays <= 0 {
		return fmt.Errorf("refresh_token_days must be positive")
	}
	return nil
}

// ConnectionString returns a PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}
