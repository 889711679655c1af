package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/screenware/resume-screener/internal/analytics"
	"github.com/screenware/resume-screener/internal/types"
)

// ScreeningRun is one persisted ranking execution.
type ScreeningRun struct {
	ID         uuid.UUID         `json:"id"`
	JobTitle   string            `json:"job_title"`
	Candidates int               `json:"candidates"`
	Summary    analytics.Summary `json:"summary"`
	CreatedAt  time.Time         `json:"created_at"`
}

// SaveRun stores a ranked batch as one screening run and returns the run
// ID. The run row and all candidate rows commit together.
func (s *Store) SaveRun(ctx context.Context, job *types.JobRequirement, candidates []types.ScoredCandidate, summary analytics.Summary) (uuid.UUID, error) {
	jobJSON, err := json.Marshal(job)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal job: %w", err)
	}
	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal summary: %w", err)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var id uuid.UUID
	err = tx.QueryRow(ctx,
		`INSERT INTO screening_runs (job_title, job, summary)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		job.Title, jobJSON, summaryJSON,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create screening run: %w", err)
	}

	batch := &pgx.Batch{}
	for i := range candidates {
		candidateJSON, err := json.Marshal(&candidates[i])
		if err != nil {
			return uuid.Nil, fmt.Errorf("failed to marshal candidate %d: %w", i, err)
		}
		batch.Queue(
			`INSERT INTO screened_candidates (run_id, rank, name, total_score, candidate)
			 VALUES ($1, $2, $3, $4, $5)`,
			id, candidates[i].Rank, candidates[i].Name, candidates[i].TotalScore, candidateJSON,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return uuid.Nil, fmt.Errorf("failed to save candidates: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("failed to commit screening run: %w", err)
	}
	return id, nil
}

// GetRun retrieves one screening run by ID, or nil when it does not
// exist.
func (s *Store) GetRun(ctx context.Context, runID uuid.UUID) (*ScreeningRun, error) {
	var run ScreeningRun
	var summaryJSON []byte

	err := s.pool.QueryRow(ctx,
		`SELECT r.id, r.job_title, r.summary, r.created_at,
		        (SELECT COUNT(*) FROM screened_candidates c WHERE c.run_id = r.id)
		 FROM screening_runs r
		 WHERE r.id = $1`,
		runID,
	).Scan(&run.ID, &run.JobTitle, &summaryJSON, &run.CreatedAt, &run.Candidates)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get screening run: %w", err)
	}

	if summaryJSON != nil {
		_ = json.Unmarshal(summaryJSON, &run.Summary)
	}
	return &run, nil
}

// ListRuns retrieves recent screening runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]ScreeningRun, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.pool.Query(ctx,
		`SELECT r.id, r.job_title, r.summary, r.created_at,
		        (SELECT COUNT(*) FROM screened_candidates c WHERE c.run_id = r.id)
		 FROM screening_runs r
		 ORDER BY r.created_at DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list screening runs: %w", err)
	}
	defer rows.Close()

	var runs []ScreeningRun
	for rows.Next() {
		var run ScreeningRun
		var summaryJSON []byte
		if err := rows.Scan(&run.ID, &run.JobTitle, &summaryJSON, &run.CreatedAt, &run.Candidates); err != nil {
			return nil, fmt.Errorf("failed to scan screening run: %w", err)
		}
		if summaryJSON != nil {
			_ = json.Unmarshal(summaryJSON, &run.Summary)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// RunCandidates retrieves the ranked candidates of a run, best first.
func (s *Store) RunCandidates(ctx context.Context, runID uuid.UUID) ([]types.ScoredCandidate, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT candidate FROM screened_candidates
		 WHERE run_id = $1
		 ORDER BY rank ASC`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list run candidates: %w", err)
	}
	defer rows.Close()

	var candidates []types.ScoredCandidate
	for rows.Next() {
		var candidateJSON []byte
		if err := rows.Scan(&candidateJSON); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		var c types.ScoredCandidate
		if err := json.Unmarshal(candidateJSON, &c); err != nil {
			return nil, fmt.Errorf("failed to decode candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

// DeleteRun removes a screening run and its candidates via cascade.
func (s *Store) DeleteRun(ctx context.Context, runID uuid.UUID) error {
	result, err := s.pool.Exec(ctx, `DELETE FROM screening_runs WHERE id = $1`, runID)
	if err != nil {
		return fmt.Errorf("failed to delete screening run: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("screening run not found: %s", runID)
	}
	return nil
}
