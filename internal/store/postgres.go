// Package store persists scan runs and ranking results to PostgreSQL.
// The store is optional: commands that take it accept nil and skip
// persistence.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/tradekit/pkg/config"
)

// DB wraps the pgxpool.Pool.
type DB struct {
	Pool *pgxpool.Pool
}

// New creates a new database connection pool and verifies connectivity.
func New(cfg *config.Config) (*DB, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.Database.MaxConns)
	poolConfig.MinConns = int32(cfg.Database.MinConns)
	poolConfig.MaxConnLifetime = cfg.Database.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.Database.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{Pool: pool}, nil
}

// Close closes the connection pool.
func (db *DB) Close() {
	if db.Pool != nil {
		db.Pool.Close()
	}
}

// Ping checks if the database is accessible.
func (db *DB) Ping(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}

// EnsureSchema creates the tables if they do not exist yet.
func (db *DB) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS scan_runs (
			id          BIGSERIAL PRIMARY KEY,
			kind        TEXT        NOT NULL,
			preset      TEXT        NOT NULL DEFAULT '',
			ran_at      TIMESTAMPTZ NOT NULL,
			candidates  INT         NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS scan_candidates (
			id          BIGSERIAL PRIMARY KEY,
			run_id      BIGINT NOT NULL REFERENCES scan_runs(id) ON DELETE CASCADE,
			ticker      TEXT   NOT NULL,
			name        TEXT   NOT NULL DEFAULT '',
			pre_price   DOUBLE PRECISION NOT NULL,
			prev_close  DOUBLE PRECISION NOT NULL,
			gap_pct     DOUBLE PRECISION NOT NULL,
			pre_volume  BIGINT NOT NULL,
			avg_volume  BIGINT NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_scan_candidates_run ON scan_candidates(run_id)`,
		`CREATE TABLE IF NOT EXISTS ranked_scores (
			id          BIGSERIAL PRIMARY KEY,
			run_id      BIGINT NOT NULL REFERENCES scan_runs(id) ON DELETE CASCADE,
			rank        INT    NOT NULL,
			ticker      TEXT   NOT NULL,
			total       DOUBLE PRECISION NOT NULL,
			momentum    DOUBLE PRECISION NOT NULL,
			trend       DOUBLE PRECISION NOT NULL,
			volume      DOUBLE PRECISION NOT NULL,
			grade       TEXT   NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_ranked_scores_run ON ranked_scores(run_id)`,
	}

	for _, stmt := range statements {
		if _, err := db.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
