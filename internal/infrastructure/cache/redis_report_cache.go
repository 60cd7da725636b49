package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/laundrypos/backend/internal/infrastructure/config"
)

// RedisReportCache caches serialized report payloads in Redis so repeated
// dashboard loads do not re-run the aggregate queries. Suitable for
// deployments where several instances share one cache.
type RedisReportCache struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisReportCache connects to Redis and verifies the connection
func NewRedisReportCache(cfg config.RedisConfig) (*RedisReportCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisReportCache{client: client, keyPrefix: "laundrypos:"}, nil
}

// NewRedisReportCacheWithClient wraps an existing client, useful for tests
// or when sharing one client across components.
func NewRedisReportCacheWithClient(client *redis.Client, keyPrefix string) *RedisReportCache {
	if keyPrefix == "" {
		keyPrefix = "laundrypos:"
	}
	return &RedisReportCache{client: client, keyPrefix: keyPrefix}
}

// Get returns the cached payload for key, with found=false on a miss
func (c *RedisReportCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := c.client.Get(ctx, c.keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read cache key %s: %w", key, err)
	}
	return value, true, nil
}

// Set stores the payload under key with the given TTL
func (c *RedisReportCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.keyPrefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache key %s: %w", key, err)
	}
	return nil
}

// Close releases the underlying Redis connection
func (c *RedisReportCache) Close() error {
	return c.client.Close()
}
