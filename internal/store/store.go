// Package store persists screening runs and their ranked candidates to
// PostgreSQL.
package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schemaDDL bootstraps the screening tables. Statements are idempotent so
// EnsureSchema can run on every start.
var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS screening_runs (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		job_title TEXT NOT NULL,
		job JSONB NOT NULL,
		summary JSONB,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS screened_candidates (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		run_id UUID NOT NULL REFERENCES screening_runs(id) ON DELETE CASCADE,
		rank INT NOT NULL,
		name TEXT NOT NULL,
		total_score DOUBLE PRECISION NOT NULL,
		candidate JSONB NOT NULL,
		UNIQUE (run_id, rank)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_screened_candidates_run
		ON screened_candidates (run_id, rank)`,
}

// Store wraps a PostgreSQL connection pool holding screening history.
type Store struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool and verifies it with a ping.
func Connect(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Close releases the connection pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates the screening tables when they do not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, ddl := range schemaDDL {
		if _, err := s.pool.Exec(ctx, ddl); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}
