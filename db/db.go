// Package db manages the PostgreSQL connection pool and schema migrations.
package db

import (
	"context"
	"fmt"

	"github.com/WeatherVane/weather-vane-backend/config"
	"github.com/WeatherVane/weather-vane-backend/logger"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Connect creates a pgx connection pool from the database configuration and
// verifies connectivity with a ping. The pool bounds concurrent connections;
// callers queue for a connection when it is saturated.
func Connect(ctx context.Context, cfg *config.DatabaseConfig) (*pgxpool.Pool, error) {
	log := logger.GetLogger()

	poolConfig, err := pgxpool.ParseConfig(cfg.URL())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	poolConfig.MaxConns = int32(cfg.MaxOpenConns)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Infow("Database connected",
		"url", logger.MaskConnectionString(cfg.URL()),
		"max_conns", cfg.MaxOpenConns,
	)
	return pool, nil
}
