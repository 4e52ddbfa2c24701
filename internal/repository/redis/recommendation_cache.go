package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"myBeautyMarket/domain"
	"myBeautyMarket/pkg/logger"
	"time"

	"github.com/redis/go-redis/v9"
)

// RecommendationCache is the Redis-backed result cache. Each key holds the
// whole ordered list as one JSON value, so SET replaces an entry atomically
// and a reader can never observe a partial write. Redis faults degrade to
// misses; the engine just recomputes.
type RecommendationCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRecommendationCache(client *redis.Client, ttl time.Duration) *RecommendationCache {
	return &RecommendationCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *RecommendationCache) Get(ctx context.Context, key string) ([]domain.Recommendation, bool) {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Warn("failed to read recommendation cache", "key", key, "error", err)
		}
		return nil, false
	}

	var recs []domain.Recommendation
	if err := json.Unmarshal([]byte(val), &recs); err != nil {
		logger.Warn("failed to unmarshal cached recommendations", "key", key, "error", err)
		return nil, false
	}

	return recs, true
}

func (c *RecommendationCache) Set(ctx context.Context, key string, recs []domain.Recommendation) {
	jsonData, err := json.Marshal(recs)
	if err != nil {
		logger.Warn("failed to marshal recommendations", "key", key, "error", err)
		return
	}

	if err := c.client.Set(ctx, key, jsonData, c.ttl).Err(); err != nil {
		logger.Warn("failed to write recommendation cache", "key", key, "error", err)
	}
}

func (c *RecommendationCache) Invalidate(ctx context.Context, key string) {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		logger.Warn(fmt.Sprintf("failed to invalidate cache key %s", key), "error", err)
	}
}
