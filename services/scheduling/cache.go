package scheduling

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"medisched/models"

	"github.com/go-redis/redis/v8"
)

// ResultCache memoizes optimization results by request fingerprint.
// Entries expire by TTL only; there is no partial invalidation.
type ResultCache interface {
	Get(ctx context.Context, fingerprint string) (*models.OptimizationResult, bool, error)
	Set(ctx context.Context, fingerprint string, result *models.OptimizationResult, ttl time.Duration) error
}

const cacheKeyPrefix = "sched:result:"

func cacheKey(fingerprint string) string {
	return fmt.Sprintf("%s%s", cacheKeyPrefix, fingerprint)
}

// RedisResultCache stores JSON snapshots of results in Redis.
type RedisResultCache struct {
	client *redis.Client
}

func NewRedisResultCache(client *redis.Client) ResultCache {
	return &RedisResultCache{client: client}
}

func (c *RedisResultCache) Get(ctx context.Context, fingerprint string) (*models.OptimizationResult, bool, error) {
	val, err := c.client.Get(ctx, cacheKey(fingerprint)).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache read failed: %w", err)
	}
	var result models.OptimizationResult
	if err := json.Unmarshal([]byte(val), &result); err != nil {
		return nil, false, fmt.Errorf("cache entry corrupt: %w", err)
	}
	return &result, true, nil
}

func (c *RedisResultCache) Set(ctx context.Context, fingerprint string, result *models.OptimizationResult, ttl time.Duration) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	if err := c.client.Set(ctx, cacheKey(fingerprint), data, ttl).Err(); err != nil {
		return fmt.Errorf("cache write failed: %w", err)
	}
	return nil
}
