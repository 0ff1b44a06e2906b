package pipeline

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/spigell/hr-matcher/internal/profile"
)

// Values used when a stage has nothing to compare or is disabled.
const (
	missingSkills     = 0.0
	missingCultural   = 0.5
	missingBehavioral = 0.5
)

var errScorerMissing = errors.New("scorer is not configured")

type skillsStage struct {
	disabled bool
	reason   string
	config   *EmbeddingConfig
}

// NewSkills creates the technical skills stage.
func NewSkills() Stage {
	return &skillsStage{}
}

func (s *skillsStage) Name() string { return "skills" }

func (s *skillsStage) Column() Column { return SkillsColumn }

func (s *skillsStage) Disable(reason string) {
	s.disabled = true
	s.reason = reason
}

func (s *skillsStage) IsEnabled() bool { return !s.disabled }

func (s *skillsStage) Validate(cfg *Config) error {
	return validateEmbedding(cfg, &s.config)
}

func (s *skillsStage) Apply(ctx context.Context, deps Deps, pairs []profile.MatchPair) ([]float64, Step, error) {
	if deps.Skills == nil {
		return nil, Step{}, errScorerMissing
	}

	scores, err := deps.Skills.ScoreBatch(ctx, pairs)
	if err != nil {
		return nil, Step{}, err
	}

	defaulted := 0
	for _, pair := range pairs {
		if len(pair.Job.SkillTerms()) == 0 || len(pair.Candidate.SkillTerms()) == 0 {
			defaulted++
		}
	}

	return scores, Step{Initial: len(pairs), Scored: len(pairs) - defaulted, Defaulted: defaulted}, nil
}

func (s *skillsStage) Status() Status {
	return Status{Name: s.Name(), Enabled: s.IsEnabled(), Reason: s.reason, Details: embeddingDetails(s.config)}
}

type culturalStage struct {
	disabled bool
	reason   string
	config   *EmbeddingConfig
}

// NewCultural creates the cultural fit stage.
func NewCultural() Stage {
	return &culturalStage{}
}

func (s *culturalStage) Name() string { return "cultural" }

func (s *culturalStage) Column() Column { return CulturalColumn }

func (s *culturalStage) Disable(reason string) {
	s.disabled = true
	s.reason = reason
}

func (s *culturalStage) IsEnabled() bool { return !s.disabled }

func (s *culturalStage) Validate(cfg *Config) error {
	return validateEmbedding(cfg, &s.config)
}

func (s *culturalStage) Apply(ctx context.Context, deps Deps, pairs []profile.MatchPair) ([]float64, Step, error) {
	if deps.Cultural == nil {
		return nil, Step{}, errScorerMissing
	}

	scores, err := deps.Cultural.ScoreBatch(ctx, pairs)
	if err != nil {
		return nil, Step{}, err
	}

	defaulted := 0
	for _, pair := range pairs {
		if len(pair.Job.SoftSkills) == 0 || len(pair.Candidate.SoftSkills) == 0 {
			defaulted++
		}
	}

	return scores, Step{Initial: len(pairs), Scored: len(pairs) - defaulted, Defaulted: defaulted}, nil
}

func (s *culturalStage) Status() Status {
	return Status{Name: s.Name(), Enabled: s.IsEnabled(), Reason: s.reason, Details: embeddingDetails(s.config)}
}

type behavioralStage struct {
	disabled bool
	reason   string
	config   *BehavioralConfig
	// set by Apply
	classifier bool
}

// NewBehavioral creates the engagement stage.
func NewBehavioral() Stage {
	return &behavioralStage{}
}

func (s *behavioralStage) Name() string { return "behavioral" }

func (s *behavioralStage) Column() Column { return BehavioralColumn }

func (s *behavioralStage) Disable(reason string) {
	s.disabled = true
	s.reason = reason
}

func (s *behavioralStage) IsEnabled() bool { return !s.disabled }

func (s *behavioralStage) Validate(cfg *Config) error {
	s.config = nil
	if cfg != nil {
		s.config = cfg.Behavioral
	}
	return nil
}

func (s *behavioralStage) Apply(_ context.Context, deps Deps, pairs []profile.MatchPair) ([]float64, Step, error) {
	if deps.Behavioral == nil {
		return nil, Step{}, errScorerMissing
	}
	s.classifier = deps.Behavioral.UsesClassifier()

	predictions := deps.Behavioral.PredictBatch(pairs)
	scores := make([]float64, len(predictions))
	defaulted := 0
	for i, p := range predictions {
		scores[i] = p.Score
		if p.Heuristic {
			defaulted++
		}
	}

	return scores, Step{Initial: len(pairs), Scored: len(pairs) - defaulted, Defaulted: defaulted}, nil
}

func (s *behavioralStage) Status() Status {
	details := map[string]string{"classifier": strconv.FormatBool(s.classifier)}
	if s.config != nil {
		if s.config.ModelPath != "" {
			details["model_path"] = s.config.ModelPath
		}
		if len(s.config.Recruiters) > 0 {
			details["recruiters"] = strings.Join(s.config.Recruiters, ",")
		}
	}
	return Status{Name: s.Name(), Enabled: s.IsEnabled(), Reason: s.reason, Details: details}
}

func validateEmbedding(cfg *Config, target **EmbeddingConfig) error {
	*target = nil
	if cfg == nil || cfg.Embedding == nil {
		return errors.New("embedding configuration is required")
	}
	if strings.TrimSpace(cfg.Embedding.Provider) == "" {
		return errors.New("embedding provider is required")
	}
	*target = cfg.Embedding
	return nil
}

func embeddingDetails(cfg *EmbeddingConfig) map[string]string {
	details := map[string]string{}
	if cfg != nil {
		details["provider"] = cfg.Provider
		if cfg.Model != "" {
			details["model"] = cfg.Model
		}
		details["cache"] = strconv.FormatBool(cfg.Cached)
	}
	return details
}
