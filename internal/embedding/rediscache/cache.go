// Package rediscache stores phrase embeddings in Redis so repeated runs skip the provider.
package rediscache

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultTTL = 30 * 24 * time.Hour

var errCorruptVector = errors.New("corrupt cached vector")

// Cache implements embedding.Cache on top of a Redis client.
type Cache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// New connects to addr and checks the connection. A zero ttl keeps entries for 30 days.
func New(ctx context.Context, addr, password string, db int, ttl time.Duration) (*Cache, error) {
	if addr == "" {
		return nil, errors.New("redis address is required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err := client.Ping(pingCtx).Result(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", addr, err)
	}

	return NewWithClient(client, ttl), nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client redis.Cmdable, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Cache{client: client, ttl: ttl}
}

// GetMany returns the cached vectors found for keys. Missing or unreadable entries are left out.
func (c *Cache) GetMany(ctx context.Context, keys []string) (map[string][]float32, error) {
	found := make(map[string][]float32, len(keys))
	if len(keys) == 0 {
		return found, nil
	}

	values, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			continue
		}
		vector, err := decode([]byte(raw))
		if err != nil {
			continue
		}
		found[keys[i]] = vector
	}
	return found, nil
}

// SetMany stores entries in one pipeline.
func (c *Cache) SetMany(ctx context.Context, entries map[string][]float32) error {
	if len(entries) == 0 {
		return nil
	}

	pipe := c.client.Pipeline()
	for key, vector := range entries {
		pipe.Set(ctx, key, encode(vector), c.ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// Close releases the connection when the cache owns a *redis.Client.
func (c *Cache) Close() error {
	if closer, ok := c.client.(*redis.Client); ok {
		return closer.Close()
	}
	return nil
}

// encode packs a vector as little-endian float32 values.
func encode(vector []float32) []byte {
	buf := make([]byte, 4*len(vector))
	for i, v := range vector {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(v))
	}
	return buf
}

func decode(buf []byte) ([]float32, error) {
	if len(buf) == 0 || len(buf)%4 != 0 {
		return nil, errCorruptVector
	}
	vector := make([]float32, len(buf)/4)
	for i := range vector {
		vector[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[4*i:]))
	}
	return vector, nil
}
