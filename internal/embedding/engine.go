package embedding

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/hr-matcher/internal/utils"
)

// Options controls how a best-match vector is reduced to a score.
type Options struct {
	// Gated zeroes every best match below Threshold before averaging.
	Gated     bool
	Threshold float64
	// EmptyDefault is returned when either list has no usable phrase.
	EmptyDefault float64
}

var (
	// SkillsOptions qualifies a job skill only when the candidate has a close enough one.
	// Missing skill data never rewards a candidate.
	SkillsOptions = Options{Gated: true, Threshold: 0.5, EmptyDefault: 0}
	// CulturalOptions averages best matches as is. Missing culture data is neutral.
	CulturalOptions = Options{EmptyDefault: 0.5}
)

// Pair holds the two phrase lists compared by the engine. A is the reference side (the job).
type Pair struct {
	A []string
	B []string
}

// Engine computes semantic similarity between phrase lists. It holds no mutable state
// and can be shared between goroutines as long as its Encoder can.
type Engine struct {
	encoder Encoder
	logger  *zap.Logger
}

func NewEngine(encoder Encoder, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{encoder: encoder, logger: logger}
}

// Similarity scores a against b.
func (e *Engine) Similarity(ctx context.Context, a, b []string, opts Options) (float64, error) {
	scores, err := e.SimilarityBatch(ctx, []Pair{{A: a, B: b}}, opts)
	if err != nil {
		return 0, err
	}
	return scores[0], nil
}

// SimilarityBatch scores every pair, embedding all distinct phrases of the batch in one encoder call.
// The result for a pair does not depend on the other pairs in the batch.
func (e *Engine) SimilarityBatch(ctx context.Context, pairs []Pair, opts Options) ([]float64, error) {
	scores := make([]float64, len(pairs))
	cleaned := make([]Pair, len(pairs))

	index := make(map[string]int)
	texts := make([]string, 0)
	add := func(items []string) {
		for _, item := range items {
			if _, ok := index[item]; ok {
				continue
			}
			index[item] = len(texts)
			texts = append(texts, item)
		}
	}

	for i, pair := range pairs {
		a, b := utils.CleanList(pair.A), utils.CleanList(pair.B)
		cleaned[i] = Pair{A: a, B: b}
		if len(a) == 0 || len(b) == 0 {
			continue
		}
		add(a)
		add(b)
	}

	if len(texts) == 0 {
		for i := range scores {
			scores[i] = opts.EmptyDefault
		}
		return scores, nil
	}

	e.logger.Debug("encoding phrases",
		zap.Int("pairs", len(pairs)),
		zap.Int("phrases", len(texts)),
	)

	vectors, err := e.encoder.Encode(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("encode %d phrases: %w", len(texts), err)
	}

	if err := checkVectors(vectors, len(texts)); err != nil {
		return nil, err
	}

	for i, pair := range cleaned {
		if len(pair.A) == 0 || len(pair.B) == 0 {
			scores[i] = opts.EmptyDefault
			continue
		}
		scores[i] = reduce(bestMatches(pair, index, vectors), opts)
	}

	return scores, nil
}

func checkVectors(vectors [][]float32, expected int) error {
	if len(vectors) != expected {
		return fmt.Errorf("%w: got %d for %d phrases", ErrVectorCount, len(vectors), expected)
	}

	dims := len(vectors[0])
	for i, v := range vectors {
		if len(v) != dims || len(v) == 0 {
			return fmt.Errorf("%w: vector %d has %d values, expected %d", ErrDimensionMismatch, i, len(v), dims)
		}
	}
	return nil
}

// bestMatches returns, for every phrase of A, its highest cosine similarity against B.
func bestMatches(pair Pair, index map[string]int, vectors [][]float32) []float64 {
	best := make([]float64, len(pair.A))
	for i, a := range pair.A {
		va := vectors[index[a]]
		for j, b := range pair.B {
			sim := Cosine(va, vectors[index[b]])
			if j == 0 || sim > best[i] {
				best[i] = sim
			}
		}
	}
	return best
}

func reduce(best []float64, opts Options) float64 {
	total := 0.0
	for _, score := range best {
		if opts.Gated && score < opts.Threshold {
			continue
		}
		total += score
	}
	return clamp(total / float64(len(best)))
}

func clamp(v float64) float64 {
	return min(max(v, 0), 1)
}
