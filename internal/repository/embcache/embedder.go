// Package embcache caches query embeddings in a key-value store so repeated
// queries skip the embedding provider entirely.
package embcache

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"math"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/bazaar-labs/bazaarsearch/internal/db"
	"github.com/bazaar-labs/bazaarsearch/internal/domain"
)

const keyPrefix = "bazaarsearch:emb_cache:"

// store is the slice of db.Store this decorator actually needs.
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// CachedEmbedder decorates an embedder with a KV cache. Cache failures are
// logged and treated as misses; the cache can never fail a request that the
// provider could have served.
type CachedEmbedder struct {
	inner      domain.Embedder
	store      store
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates the caching decorator. cacheTotal is an optional counter with a
// "result" label (hit/miss).
func New(inner domain.Embedder, s store, cacheTotal *prometheus.CounterVec, logger *zap.Logger) *CachedEmbedder {
	return &CachedEmbedder{inner: inner, store: s, cacheTotal: cacheTotal, logger: logger}
}

// Embed returns the cached vector when present, otherwise asks the inner
// embedder and stores the result. A hit reports zero token usage.
func (c *CachedEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	sum := sha256.Sum256([]byte(text))
	key := keyPrefix + hex.EncodeToString(sum[:])

	if vec := c.lookup(ctx, key); vec != nil {
		c.count("hit")
		return domain.EmbeddingResult{Embedding: vec}, nil
	}
	c.count("miss")

	result, err := c.inner.Embed(ctx, text)
	if err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("embed text: %w", err)
	}

	if err := c.store.Set(ctx, key, encodeVector(result.Embedding)); err != nil {
		c.logger.Warn("embedding cache put failed", zap.String("key", key), zap.Error(err))
	}
	return result, nil
}

func (c *CachedEmbedder) lookup(ctx context.Context, key string) []float32 {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("embedding cache get failed", zap.String("key", key), zap.Error(err))
		}
		return nil
	}
	if len(data) == 0 {
		return nil
	}

	vec, err := decodeVector(data)
	if err != nil {
		c.logger.Warn("embedding cache entry unreadable", zap.String("key", key), zap.Error(err))
		return nil
	}
	return vec
}

func (c *CachedEmbedder) count(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

// Cache values are raw little-endian float32s, the same framing the vector
// artifact uses.

func encodeVector(v []float32) []byte {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

func decodeVector(data []byte) ([]float32, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("cached embedding has %d bytes, not a float32 sequence", len(data))
	}
	vec := make([]float32, len(data)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return vec, nil
}
