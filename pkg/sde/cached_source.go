package sde

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/evefit/fitcalc/internal/metrics"
)

// CachedSource wraps a Source with a gzip+JSON read-through Redis cache.
// Type records are immutable once loaded, so a TTL just bounds staleness
// against a source bundle being swapped out from under the cache.
type CachedSource struct {
	inner Source
	redis *redis.Client
	ttl   time.Duration
}

// NewCachedSource wraps inner with a Redis-backed type cache. ttl of 0
// disables expiry (suitable for a static-data bundle that never changes
// underneath a running process).
func NewCachedSource(inner Source, redisClient *redis.Client, ttl time.Duration) *CachedSource {
	return &CachedSource{inner: inner, redis: redisClient, ttl: ttl}
}

// Name implements Source.
func (c *CachedSource) Name() string { return c.inner.Name() }

// Attribute implements Source; attribute metadata is small and queried far
// less often than types, so it bypasses the cache and goes straight to inner.
func (c *CachedSource) Attribute(attr AttrID) (Attribute, bool) {
	return c.inner.Attribute(attr)
}

// Type implements Source with a Redis-backed cache in front of inner.
func (c *CachedSource) Type(typeID int64) (*Type, bool) {
	ctx := context.Background()
	key := fmt.Sprintf("sde:type:%s:%d", c.inner.Name(), typeID)

	if data, err := c.redis.Get(ctx, key).Bytes(); err == nil {
		if t, err := decompressType(data); err == nil {
			metrics.SourceCacheHitsTotal.Inc()
			return t, true
		}
	}
	metrics.SourceCacheMissesTotal.Inc()

	t, ok := c.inner.Type(typeID)
	if !ok {
		return nil, false
	}

	if data, err := compressType(t); err == nil {
		_ = c.redis.Set(ctx, key, data, c.ttl).Err()
	}

	return t, true
}

func compressType(t *Type) ([]byte, error) {
	jsonData, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(jsonData); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decompressType(data []byte) (*Type, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()

	jsonData, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var t Type
	if err := json.Unmarshal(jsonData, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

var _ Source = (*CachedSource)(nil)
