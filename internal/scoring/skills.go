// Package scoring computes the technical, cultural and behavioral scores of a match pair.
package scoring

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/hr-matcher/internal/embedding"
	"github.com/spigell/hr-matcher/internal/level"
	"github.com/spigell/hr-matcher/internal/logger"
	"github.com/spigell/hr-matcher/internal/profile"
)

const (
	semanticWeight   = 0.7
	structuredWeight = 0.3
)

// Skills blends semantic skill overlap with structured level fit.
type Skills struct {
	engine  *embedding.Engine
	weights level.Weights
	log     *zap.Logger
}

// NewSkills creates a Skills scorer. Nil weights use level.DefaultWeights.
func NewSkills(engine *embedding.Engine, weights level.Weights, log *zap.Logger) *Skills {
	if weights == nil {
		weights = level.DefaultWeights
	}
	return &Skills{engine: engine, weights: weights, log: logger.WithFields(log)}
}

// Score returns 0.7 * semantic + 0.3 * structured for one job and candidate.
func (s *Skills) Score(ctx context.Context, job profile.Job, candidate profile.Candidate) (float64, error) {
	scores, err := s.ScoreBatch(ctx, []profile.MatchPair{{Candidate: candidate, Job: job}})
	if err != nil {
		return 0, err
	}
	return scores[0], nil
}

func (s *Skills) ScoreBatch(ctx context.Context, pairs []profile.MatchPair) ([]float64, error) {
	semanticPairs := make([]embedding.Pair, len(pairs))
	for i, pair := range pairs {
		semanticPairs[i] = embedding.Pair{A: pair.Job.SkillTerms(), B: pair.Candidate.SkillTerms()}
	}

	semantic, err := s.engine.SimilarityBatch(ctx, semanticPairs, embedding.SkillsOptions)
	if err != nil {
		return nil, fmt.Errorf("skills similarity: %w", err)
	}

	scores := make([]float64, len(pairs))
	for i, pair := range pairs {
		structured := level.WeightedStructuredScore(pair.Job.Levels(), pair.Candidate.Levels(), s.weights)
		scores[i] = clamp(semanticWeight*semantic[i] + structuredWeight*structured)

		s.log.Debug("skills scored", append(logger.PairFields(pair.Candidate.ID, pair.Job.ID),
			zap.Float64("semantic", semantic[i]),
			zap.Float64("structured", structured),
			zap.Float64("score", scores[i]),
		)...)
	}

	return scores, nil
}

func clamp(v float64) float64 {
	return min(max(v, 0), 1)
}
