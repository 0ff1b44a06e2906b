// Package embedding turns short phrase lists into vectors and reduces their
// pairwise cosine similarity matrix to one bounded score.
package embedding

import (
	"context"
	"errors"
	"math"
)

var (
	// ErrVectorCount is returned when an encoder answers with a different number of vectors than phrases.
	ErrVectorCount = errors.New("encoder returned unexpected number of vectors")
	// ErrDimensionMismatch is returned when vectors from one encoder call differ in length.
	ErrDimensionMismatch = errors.New("encoder returned vectors of different dimensions")
)

// Encoder embeds texts into fixed-length vectors. The i-th vector belongs to the i-th text.
type Encoder interface {
	Encode(ctx context.Context, texts []string) ([][]float32, error)
}

// EncoderFunc adapts a function to the Encoder interface.
type EncoderFunc func(ctx context.Context, texts []string) ([][]float32, error)

func (f EncoderFunc) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	return f(ctx, texts)
}

// Cosine returns the cosine similarity of a and b. Mismatched, empty or zero vectors yield 0.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
