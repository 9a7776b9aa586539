// Package database owns the pgx connection pool shared by all repositories
// and the golang-migrate runner that brings the schema up to date at boot.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps the pgx pool. Repositories embed nothing else; every query in the
// service runs through this pool.
type DB struct {
	*pgxpool.Pool
}

// Config controls pool sizing. Zero fields fall back to the defaults below.
type Config struct {
	URL             string
	MaxConnections  int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

const (
	defaultMaxConnections  int32 = 25
	defaultMaxConnLifetime       = time.Hour
	defaultMaxConnIdleTime       = 30 * time.Minute
)

// withDefaults returns a copy of the config with zero fields filled in.
func (c Config) withDefaults() Config {
	out := c
	if out.MaxConnections == 0 {
		out.MaxConnections = defaultMaxConnections
	}
	if out.MaxConnLifetime == 0 {
		out.MaxConnLifetime = defaultMaxConnLifetime
	}
	if out.MaxConnIdleTime == 0 {
		out.MaxConnIdleTime = defaultMaxConnIdleTime
	}
	return out
}

// NewConnection opens a pool against cfg.URL and verifies it with a ping, so
// a bad DSN fails at startup rather than on the first request.
func NewConnection(ctx context.Context, cfg *Config) (*DB, error) {
	effective := cfg.withDefaults()

	poolConfig, err := pgxpool.ParseConfig(effective.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	poolConfig.MaxConns = effective.MaxConnections
	poolConfig.MaxConnLifetime = effective.MaxConnLifetime
	poolConfig.MaxConnIdleTime = effective.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{Pool: pool}, nil
}

// Close closes the connection pool.
func (db *DB) Close() {
	db.Pool.Close()
}
