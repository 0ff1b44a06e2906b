package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	defaultModel = "gemini-embedding-001"
	taskType     = "SEMANTIC_SIMILARITY"
	// maxBatch is the largest number of contents the API accepts per embed request.
	maxBatch    = 100
	maxAttempts = 3
)

// after is replaced in tests.
var after = time.After

type embedder interface {
	EmbedContent(ctx context.Context, model string, contents []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error)
}

// Encoder embeds phrases with the Gemini embedding API.
type Encoder struct {
	models     embedder
	modelName  string
	dimensions int32
	logger     *zap.Logger
}

// NewEncoder creates an Encoder configured for the Gemini API backend.
// A zero dimensions value keeps the model default.
func NewEncoder(ctx context.Context, apiKey, model string, dimensions int, logger *zap.Logger) (*Encoder, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return newEncoder(client.Models, model, dimensions, logger), nil
}

func newEncoder(models embedder, model string, dimensions int, logger *zap.Logger) *Encoder {
	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Encoder{
		models:     models,
		modelName:  model,
		dimensions: int32(max(dimensions, 0)),
		logger:     logger,
	}
}

func (e *Encoder) Model() string {
	if e == nil {
		return ""
	}
	return e.modelName
}

// Encode embeds texts in chunks of at most maxBatch, preserving order.
func (e *Encoder) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	if e == nil || e.models == nil {
		return nil, errors.New("gemini encoder is not initialized")
	}

	vectors := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += maxBatch {
		end := min(start+maxBatch, len(texts))
		chunk, err := e.embedWithRetry(ctx, texts[start:end])
		if err != nil {
			return nil, err
		}
		vectors = append(vectors, chunk...)
	}
	return vectors, nil
}

func (e *Encoder) embedWithRetry(ctx context.Context, texts []string) ([][]float32, error) {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		vectors, err := e.embed(ctx, texts)
		if err == nil {
			return vectors, nil
		}
		lastErr = err
		if !isTemporary(err) || attempt == maxAttempts {
			break
		}

		delay := time.Duration(attempt) * time.Second
		e.logger.Warn("gemini embed request failed, retrying",
			zap.String("model", e.modelName),
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(err),
		)
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("retry cancelled after %v: %w", lastErr, ctx.Err())
		case <-after(delay):
		}
	}
	return nil, lastErr
}

func (e *Encoder) embed(ctx context.Context, texts []string) ([][]float32, error) {
	contents := make([]*genai.Content, len(texts))
	for i, text := range texts {
		contents[i] = &genai.Content{
			Role:  genai.RoleUser,
			Parts: []*genai.Part{{Text: text}},
		}
	}

	cfg := &genai.EmbedContentConfig{TaskType: taskType}
	if e.dimensions > 0 {
		dims := e.dimensions
		cfg.OutputDimensionality = &dims
	}

	resp, err := e.models.EmbedContent(ctx, e.modelName, contents, cfg)
	if err != nil {
		return nil, fmt.Errorf("embed content: %w", err)
	}
	if resp == nil || len(resp.Embeddings) != len(texts) {
		got := 0
		if resp != nil {
			got = len(resp.Embeddings)
		}
		return nil, fmt.Errorf("gemini api returned %d embeddings for %d texts", got, len(texts))
	}

	vectors := make([][]float32, len(texts))
	for i, embedding := range resp.Embeddings {
		if embedding == nil || len(embedding.Values) == 0 {
			return nil, fmt.Errorf("gemini api returned empty embedding at %d", i)
		}
		vectors[i] = embedding.Values
	}
	return vectors, nil
}

func isTemporary(err error) bool {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError
}
