package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"go.uber.org/zap"
)

// Cache stores vectors by key. Implementations must be safe for concurrent use.
type Cache interface {
	GetMany(ctx context.Context, keys []string) (map[string][]float32, error)
	SetMany(ctx context.Context, entries map[string][]float32) error
}

// CachedEncoder is a read-through Encoder. Cache failures are logged and never
// fail an encode call: the cache only saves encoder round trips.
type CachedEncoder struct {
	next      Encoder
	cache     Cache
	namespace string
	logger    *zap.Logger
}

// NewCachedEncoder wraps next. The namespace should identify the model so that
// vectors from different models never mix.
func NewCachedEncoder(next Encoder, cache Cache, namespace string, logger *zap.Logger) *CachedEncoder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedEncoder{next: next, cache: cache, namespace: namespace, logger: logger}
}

func (c *CachedEncoder) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	keys := make([]string, len(texts))
	for i, text := range texts {
		keys[i] = c.key(text)
	}

	hits, err := c.cache.GetMany(ctx, keys)
	if err != nil {
		c.logger.Warn("embedding cache lookup failed", zap.Error(err))
		hits = nil
	}

	vectors := make([][]float32, len(texts))
	missing := make([]string, 0)
	missingAt := make([]int, 0)
	for i, key := range keys {
		if v, ok := hits[key]; ok {
			vectors[i] = v
			continue
		}
		missing = append(missing, texts[i])
		missingAt = append(missingAt, i)
	}

	c.logger.Debug("embedding cache",
		zap.Int("hits", len(texts)-len(missing)),
		zap.Int("misses", len(missing)),
	)

	if len(missing) == 0 {
		return vectors, nil
	}

	encoded, err := c.next.Encode(ctx, missing)
	if err != nil {
		return nil, err
	}
	if len(encoded) != len(missing) {
		return nil, ErrVectorCount
	}

	entries := make(map[string][]float32, len(missing))
	for j, i := range missingAt {
		vectors[i] = encoded[j]
		entries[keys[i]] = encoded[j]
	}

	if err := c.cache.SetMany(ctx, entries); err != nil {
		c.logger.Warn("embedding cache store failed", zap.Error(err))
	}

	return vectors, nil
}

func (c *CachedEncoder) key(text string) string {
	sum := sha256.Sum256([]byte(text))
	return c.namespace + ":" + hex.EncodeToString(sum[:])
}
