package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/hr-matcher/internal/embedding"
	"github.com/spigell/hr-matcher/internal/embedding/gemini"
	"github.com/spigell/hr-matcher/internal/embedding/httpapi"
	"github.com/spigell/hr-matcher/internal/embedding/rediscache"
	"github.com/spigell/hr-matcher/internal/logger"
	"github.com/spigell/hr-matcher/internal/pipeline"
	"github.com/spigell/hr-matcher/internal/records"
	"github.com/spigell/hr-matcher/internal/scoring"
	"github.com/spigell/hr-matcher/internal/secrets"
)

const (
	providerGemini = "gemini"
	providerHTTP   = "http"
)

// scorers holds everything built once per command and shared by the pipeline stages.
type scorers struct {
	deps   pipeline.Deps
	config *pipeline.Config
	close  func()
}

func buildScorers(ctx context.Context, config *Config, log *zap.Logger) (*scorers, error) {
	if config == nil || config.Embedding == nil {
		return nil, errors.New("embedding configuration is required")
	}

	encoder, model, closeEncoder, err := newEncoder(ctx, config.Embedding, log)
	if err != nil {
		return nil, err
	}

	provider := normalizedProvider(config.Embedding.Provider)
	engine := embedding.NewEngine(encoder, logger.WithCommonFields(log, provider, model))
	behavioral := newBehavioral(config.Behavioral, log)

	pipelineConfig := &pipeline.Config{
		Embedding: &pipeline.EmbeddingConfig{
			Provider: provider,
			Model:    model,
			Cached:   config.Embedding.Cache != nil && config.Embedding.Cache.Enabled,
		},
	}
	if config.Behavioral != nil {
		pipelineConfig.Behavioral = &pipeline.BehavioralConfig{
			ModelPath:  config.Behavioral.ModelPath,
			Recruiters: config.Behavioral.CommonRecruiters,
		}
	}

	return &scorers{
		deps: pipeline.Deps{
			Skills:     scoring.NewSkills(engine, nil, log),
			Cultural:   scoring.NewCultural(engine, log),
			Behavioral: behavioral,
			Logger:     log,
		},
		config: pipelineConfig,
		close:  closeEncoder,
	}, nil
}

func normalizedProvider(provider string) string {
	provider = strings.ToLower(strings.TrimSpace(provider))
	if provider == "" {
		return providerGemini
	}
	return provider
}

// newEncoder builds the configured provider, wrapped in the redis cache when enabled.
// It returns the effective model name and a cleanup function.
func newEncoder(ctx context.Context, cfg *EmbeddingConfig, log *zap.Logger) (embedding.Encoder, string, func(), error) {
	provider := normalizedProvider(cfg.Provider)
	providerLogger := logger.WithFields(log, zap.String(logger.FieldProvider, provider))

	var (
		encoder embedding.Encoder
		model   string
	)

	switch provider {
	case providerGemini:
		apiKey, err := secrets.Load(secrets.Source{
			Name:  "gemini api key",
			File:  cfg.APIKeyFile,
			Value: cfg.APIKey,
			Env:   "GEMINI_API_KEY",
		})
		if err != nil {
			return nil, "", nil, fmt.Errorf("%w (set embedding.api-key-file or GEMINI_API_KEY)", err)
		}

		g, err := gemini.NewEncoder(ctx, apiKey, cfg.Model, cfg.Dimensions, providerLogger)
		if err != nil {
			return nil, "", nil, err
		}
		encoder, model = g, g.Model()
	case providerHTTP:
		// Self hosted endpoints often run without authentication.
		apiKey, err := secrets.Load(secrets.Source{
			Name:  "embeddings api key",
			File:  cfg.APIKeyFile,
			Value: cfg.APIKey,
			Env:   "HR_MATCHER_API_KEY",
		})
		if err != nil && !errors.Is(err, secrets.ErrNotConfigured) {
			return nil, "", nil, err
		}

		client := httpapi.New(providerLogger, cfg.BaseURL, apiKey, cfg.Model, cfg.Dimensions)
		encoder, model = client, client.Model()
	default:
		return nil, "", nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Provider)
	}

	noop := func() {}
	if cfg.Cache == nil || !cfg.Cache.Enabled {
		return encoder, model, noop, nil
	}

	cache, err := rediscache.New(ctx, cfg.Cache.Addr, cfg.Cache.Password, cfg.Cache.DB, cfg.Cache.TTL)
	if err != nil {
		log.Warn("embedding cache disabled", zap.Error(err))
		return encoder, model, noop, nil
	}

	log.Info("embedding cache enabled", zap.String("addr", cfg.Cache.Addr))
	cached := embedding.NewCachedEncoder(encoder, cache, provider+":"+model, log)
	return cached, model, func() { cache.Close() }, nil
}

// newBehavioral loads the optional classifier. A missing or broken artifact is logged and
// the scorer falls back to the comment heuristic.
func newBehavioral(cfg *BehavioralConfig, log *zap.Logger) *scoring.Behavioral {
	if cfg == nil {
		return scoring.NewBehavioral(nil, scoring.NewRecruiters(nil), log)
	}

	var classifier *scoring.Classifier
	if path := strings.TrimSpace(cfg.ModelPath); path != "" {
		loaded, err := scoring.LoadClassifier(path)
		switch {
		case errors.Is(err, scoring.ErrClassifierNotFound):
			log.Info("behavioral classifier not found, using heuristic", zap.String("path", path))
		case err != nil:
			log.Warn("loading behavioral classifier failed, using heuristic", zap.String("path", path), zap.Error(err))
		default:
			log.Info("behavioral classifier loaded",
				zap.String("path", path),
				zap.String("version", loaded.Version),
				zap.Int("features", len(loaded.Features)),
			)
			classifier = loaded
		}
	}

	return scoring.NewBehavioral(classifier, newRecruiters(cfg, log), log)
}

func newRecruiters(cfg *BehavioralConfig, log *zap.Logger) scoring.Recruiters {
	if len(cfg.CommonRecruiters) > 0 {
		return scoring.NewRecruiters(cfg.CommonRecruiters)
	}

	history := strings.TrimSpace(cfg.RecruiterHistory)
	if history == "" {
		return scoring.NewRecruiters(nil)
	}

	rows, err := records.LoadRows(history)
	if err != nil {
		log.Warn("reading recruiter history failed, using default recruiters", zap.String("path", history), zap.Error(err))
		return scoring.NewRecruiters(nil)
	}

	names := make([]string, 0, len(rows))
	for _, row := range rows {
		if name, ok := row["p_recrutador"].(string); ok {
			names = append(names, name)
		}
	}

	recruiters := scoring.RecruitersFromHistory(names, cfg.RecruiterMinCount)
	log.Debug("recruiter buckets", zap.Strings("buckets", recruiters.Buckets()))
	return recruiters
}
