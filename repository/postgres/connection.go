package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"cadence/configs"
)

// NewPool creates a pgx connection pool from the database configuration
func NewPool(ctx context.Context, cfg *configs.DatabaseConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		poolCfg.MaxConns = int32(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime
	}
	if cfg.ConnMaxIdleTime > 0 {
		poolCfg.MaxConnIdleTime = cfg.ConnMaxIdleTime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS tasks (
		id             VARCHAR(36) PRIMARY KEY,
		content        TEXT        NOT NULL,
		original_input TEXT        NOT NULL,
		priority       VARCHAR(10) NOT NULL,
		category       VARCHAR(100) NOT NULL DEFAULT '',
		status         VARCHAR(20) NOT NULL,
		due_date       TIMESTAMPTZ NULL,
		is_recurring   BOOLEAN     NOT NULL DEFAULT FALSE,
		frequency      VARCHAR(20) NULL,
		recur_interval INT         NULL,
		recur_unit     VARCHAR(10) NULL,
		next_due_date  TIMESTAMPTZ NULL,
		created_at     TIMESTAMPTZ NOT NULL,
		completed_at   TIMESTAMPTZ NULL
	)`,
	`CREATE TABLE IF NOT EXISTS task_occurrences (
		id             VARCHAR(36) PRIMARY KEY,
		task_id        VARCHAR(36) NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		seq            INT         NOT NULL,
		scheduled_date TIMESTAMPTZ NOT NULL,
		completed_date TIMESTAMPTZ NULL,
		status         VARCHAR(20) NOT NULL,
		delay_reason   TEXT        NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_task_occurrences_due
		ON task_occurrences (status, scheduled_date)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks (status)`,
}

// EnsureSchema creates the tables when they do not exist yet
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
