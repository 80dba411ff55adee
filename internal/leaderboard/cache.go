package leaderboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/osse101/WagerBot_Go/internal/domain"
)

// Cache stores computed all-time leaderboards per metric
type Cache interface {
	Get(ctx context.Context, metric domain.LeaderboardMetric) (*domain.Leaderboard, bool, error)
	Set(ctx context.Context, board *domain.Leaderboard) error
	Invalidate(ctx context.Context) error
}

// RedisCache keeps leaderboards as JSON values with a TTL
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// ConnectRedis opens a client and checks the server answers
func ConnectRedis(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	pingCtx, cancel := context.WithTimeout(ctx, RedisPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%s %s: %w", ErrMsgRedisPing, addr, err)
	}
	return client, nil
}

// NewRedisCache wraps a connected client. A non-positive ttl uses DefaultCacheTTL.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &RedisCache{client: client, ttl: ttl}
}

func cacheKey(metric domain.LeaderboardMetric) string {
	return CacheKeyPrefix + string(metric)
}

// Get returns false without error when nothing is cached for the metric
func (c *RedisCache) Get(ctx context.Context, metric domain.LeaderboardMetric) (*domain.Leaderboard, bool, error) {
	data, err := c.client.Get(ctx, cacheKey(metric)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", ErrMsgRedisGet, err)
	}

	var board domain.Leaderboard
	if err := json.Unmarshal(data, &board); err != nil {
		return nil, false, fmt.Errorf("%s: %w", ErrMsgCacheUnmarshal, err)
	}
	return &board, true, nil
}

func (c *RedisCache) Set(ctx context.Context, board *domain.Leaderboard) error {
	data, err := json.Marshal(board)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgCacheMarshal, err)
	}
	if err := c.client.Set(ctx, cacheKey(board.Metric), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgRedisSet, err)
	}
	return nil
}

// Invalidate drops the cached boards of every metric
func (c *RedisCache) Invalidate(ctx context.Context) error {
	keys := []string{cacheKey(domain.MetricPoints), cacheKey(domain.MetricDistance)}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgRedisDel, err)
	}
	return nil
}
