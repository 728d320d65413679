// Package cache wraps Redis as a best-effort read-through cache. Every
// failure is logged and swallowed: a broken cache degrades latency, never
// results.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"key-control-backend/internal/logger"

	"github.com/go-redis/redis/v8"
)

// TTLs mirror the source system: short for CRUD reads, longer for the
// history report.
const (
	CRUDTTL    = 30 * time.Second
	HistoryTTL = 2 * time.Minute
)

// Cache is the narrow contract the services depend on. Get reports a miss
// (not an error) when the key is absent or the cache is unreachable.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration)
	Invalidate(ctx context.Context, patterns ...string)
}

type RedisCache struct {
	client *redis.Client
}

func New(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		logger.Warn("Cache read failed, falling through to database", "key", key, "error", err)
		return nil, false
	}
	return payload, true
}

func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	payload, err := json.Marshal(value)
	if err != nil {
		logger.Warn("Cache encode failed", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		logger.Warn("Cache write failed", "key", key, "error", err)
	}
}

// Invalidate removes every key matching the given patterns, mirroring the
// source system's delete-by-pattern helper.
func (c *RedisCache) Invalidate(ctx context.Context, patterns ...string) {
	for _, pattern := range patterns {
		keys, err := c.client.Keys(ctx, pattern).Result()
		if err != nil {
			logger.Warn("Cache invalidation scan failed", "pattern", pattern, "error", err)
			continue
		}
		if len(keys) == 0 {
			continue
		}
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			logger.Warn("Cache invalidation delete failed", "pattern", pattern, "error", err)
		}
	}
}
