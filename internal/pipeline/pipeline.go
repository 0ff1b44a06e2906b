// Package pipeline runs the scoring stages over a batch of match pairs and aggregates the results.
package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/hr-matcher/internal/aggregate"
	"github.com/spigell/hr-matcher/internal/profile"
	"github.com/spigell/hr-matcher/internal/scoring"
)

// Stage computes one score column for a batch.
type Stage interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool
	// Column reports which score the stage fills.
	Column() Column

	Validate(cfg *Config) error
	Apply(ctx context.Context, deps Deps, pairs []profile.MatchPair) ([]float64, Step, error)
}

// Column identifies a component score.
type Column int

const (
	SkillsColumn Column = iota
	CulturalColumn
	BehavioralColumn
)

// Deps aggregates the scorers shared by the stages.
type Deps struct {
	Skills     *scoring.Skills
	Cultural   *scoring.Cultural
	Behavioral *scoring.Behavioral
	Logger     *zap.Logger
}

// Step describes the result of executing a stage.
type Step struct {
	Initial int
	Scored  int
	// Defaulted counts pairs that got the stage's missing-data value.
	Defaulted int
}

// Config contains the settings reported and checked by the stages.
type Config struct {
	Embedding  *EmbeddingConfig
	Behavioral *BehavioralConfig
}

type EmbeddingConfig struct {
	Provider string
	Model    string
	Cached   bool
}

type BehavioralConfig struct {
	ModelPath  string
	Recruiters []string
}

// Status represents runtime information about a stage.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
	Details map[string]string
}

type statusProvider interface {
	Status() Status
}

// DefaultStages returns the skills, cultural and behavioral stages.
func DefaultStages() []Stage {
	return []Stage{NewSkills(), NewCultural(), NewBehavioral()}
}

// DisableByName marks a stage with the provided name as disabled while keeping it in the list.
func DisableByName(stages []Stage, name, reason string) bool {
	found := false
	for _, stage := range stages {
		if stage.Name() == name {
			stage.Disable(reason)
			found = true
		}
	}
	return found
}

// Run validates the enabled stages, runs them concurrently and aggregates every pair.
// Disabled stages fill their column with the missing-data value. Any stage error aborts the batch.
func Run(ctx context.Context, cfg *Config, deps Deps, stages []Stage, pairs []profile.MatchPair) ([]profile.ScoreResult, error) {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	for _, stage := range stages {
		if !stage.IsEnabled() {
			continue
		}
		if err := stage.Validate(cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", stage.Name(), err)
		}
	}

	columns := map[Column][]float64{
		SkillsColumn:     constant(len(pairs), missingSkills),
		CulturalColumn:   constant(len(pairs), missingCultural),
		BehavioralColumn: constant(len(pairs), missingBehavioral),
	}

	outputs := make([][]float64, len(stages))
	g, gctx := errgroup.WithContext(ctx)
	for i, stage := range stages {
		if !stage.IsEnabled() {
			deps.Logger.Info("stage disabled", zap.String("name", stage.Name()))
			continue
		}

		g.Go(func() error {
			scores, info, err := stage.Apply(gctx, deps, pairs)
			if err != nil {
				return fmt.Errorf("%s: %w", stage.Name(), err)
			}
			if len(scores) != len(pairs) {
				return fmt.Errorf("%s: returned %d scores for %d pairs", stage.Name(), len(scores), len(pairs))
			}

			deps.Logger.Info("scoring step",
				zap.String("name", stage.Name()),
				zap.Int("initial", info.Initial),
				zap.Int("scored", info.Scored),
				zap.Int("defaulted", info.Defaulted),
			)

			outputs[i] = scores
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, stage := range stages {
		if outputs[i] != nil {
			columns[stage.Column()] = outputs[i]
		}
	}

	results := make([]profile.ScoreResult, len(pairs))
	for i, pair := range pairs {
		skills := columns[SkillsColumn][i]
		cultural := columns[CulturalColumn][i]
		behavioral := columns[BehavioralColumn][i]

		agg, err := aggregate.Aggregate(skills, cultural, behavioral)
		if err != nil {
			return nil, fmt.Errorf("aggregate candidate %s job %s: %w", pair.Candidate.ID, pair.Job.ID, err)
		}

		results[i] = profile.ScoreResult{
			CandidateID:  pair.Candidate.ID,
			JobID:        pair.Job.ID,
			Skills:       skills,
			Cultural:     cultural,
			Behavioral:   behavioral,
			OverallMatch: agg.OverallMatch,
			Status:       agg.Status,
		}
	}

	return results, nil
}

// Describe returns status entries for the provided stages.
func Describe(stages []Stage) []Status {
	statuses := make([]Status, 0, len(stages))
	for _, stage := range stages {
		if reporter, ok := stage.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    stage.Name(),
			Enabled: stage.IsEnabled(),
		})
	}
	return statuses
}

func constant(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}
