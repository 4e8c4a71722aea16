package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "reco:"

// RecommendationCache stores provider responses keyed by prompt hash.
// Key format: reco:<hash>
type RecommendationCache struct {
	client redis.Cmdable
}

// NewRecommendationCache wraps the given Redis client.
func NewRecommendationCache(client redis.Cmdable) *RecommendationCache {
	return &RecommendationCache{client: client}
}

// Get returns the cached value. A missing key is a miss, not an error.
func (c *RecommendationCache) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := c.client.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("cache get: %w", err)
	}
	return v, true, nil
}

// Set stores value under key for ttl.
func (c *RecommendationCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := c.client.Set(ctx, keyPrefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}
