// Package ranking orders candidate profiles by how well they score against
// a job requirement.
package ranking

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/screenware/resume-screener/internal/logger"
	"github.com/screenware/resume-screener/internal/scoring"
	"github.com/screenware/resume-screener/internal/types"
)

// DefaultConcurrency bounds parallel scoring when the caller does not set
// a limit.
const DefaultConcurrency = 4

// Coordinator scores candidate batches in parallel and assigns ranks.
type Coordinator struct {
	engine      *scoring.Engine
	concurrency int
	log         *zap.Logger
}

// NewCoordinator wires a coordinator around a scoring engine. A
// non-positive concurrency falls back to DefaultConcurrency.
func NewCoordinator(engine *scoring.Engine, concurrency int, log *zap.Logger) *Coordinator {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Coordinator{
		engine:      engine,
		concurrency: concurrency,
		log:         logger.Or(log),
	}
}

// Rank scores every candidate against the job and returns them ordered by
// total score, best first, with ranks assigned from 1. Candidates with
// equal totals keep their input order. The input slice is not modified;
// candidates that cannot be scored appear last with a zero breakdown.
func (c *Coordinator) Rank(ctx context.Context, candidates []*types.CandidateProfile, job *types.JobRequirement) ([]types.ScoredCandidate, error) {
	if job == nil {
		return nil, fmt.Errorf("ranking requires a job requirement")
	}

	scored := make([]types.ScoredCandidate, len(candidates))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i, profile := range candidates {
		i, profile := i, profile
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			if profile != nil {
				scored[i].CandidateProfile = *profile
			} else {
				c.log.Warn("candidate could not be scored, applying zero scores", zap.Int("index", i))
			}
			scored[i].ScoreBreakdown = c.engine.Score(profile, job)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("scoring candidates: %w", err)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].TotalScore > scored[j].TotalScore
	})
	for i := range scored {
		scored[i].Rank = i + 1
	}

	c.log.Info("ranked candidates",
		zap.String("job_title", job.Title),
		zap.Int("candidates", len(scored)),
	)
	return scored, nil
}
