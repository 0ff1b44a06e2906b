package scoring

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/hr-matcher/internal/embedding"
	"github.com/spigell/hr-matcher/internal/profile"
)

// Cultural compares the soft skills asked by the job with the ones shown by the candidate.
type Cultural struct {
	engine *embedding.Engine
	logger *zap.Logger
}

func NewCultural(engine *embedding.Engine, logger *zap.Logger) *Cultural {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cultural{engine: engine, logger: logger}
}

// Score returns the mean best soft skill match. Missing soft skills on either side give 0.5.
func (c *Cultural) Score(ctx context.Context, job profile.Job, candidate profile.Candidate) (float64, error) {
	return c.engine.Similarity(ctx, job.SoftSkills, candidate.SoftSkills, embedding.CulturalOptions)
}

func (c *Cultural) ScoreBatch(ctx context.Context, pairs []profile.MatchPair) ([]float64, error) {
	semanticPairs := make([]embedding.Pair, len(pairs))
	for i, pair := range pairs {
		semanticPairs[i] = embedding.Pair{A: pair.Job.SoftSkills, B: pair.Candidate.SoftSkills}
	}

	scores, err := c.engine.SimilarityBatch(ctx, semanticPairs, embedding.CulturalOptions)
	if err != nil {
		return nil, fmt.Errorf("cultural similarity: %w", err)
	}

	c.logger.Debug("cultural scored", zap.Int("pairs", len(pairs)))
	return scores, nil
}
