package cooldown

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient is the subset of the go-redis client the limiter uses
type RedisClient interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	PTTL(ctx context.Context, key string) *redis.DurationCmd
}

// RedisLimiter keeps cooldowns in Redis so they survive restarts and are shared between shards
type RedisLimiter struct {
	client RedisClient
}

// NewRedisLimiter creates a Redis backed limiter
func NewRedisLimiter(client RedisClient) *RedisLimiter {
	return &RedisLimiter{client: client}
}

// NewRedisClient connects to a single Redis instance
func NewRedisClient(addr string) (*redis.Client, error) {
	if addr == "" {
		return nil, fmt.Errorf("redis: address is required")
	}
	return redis.NewClient(&redis.Options{Addr: addr}), nil
}

// Acquire implements Limiter with SET NX PX
func (r *RedisLimiter) Acquire(ctx context.Context, key string, window time.Duration) (time.Duration, error) {
	acquired, err := r.client.SetNX(ctx, key, 1, window).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to set cooldown %s: %w", key, err)
	}
	if acquired {
		return 0, nil
	}

	ttl, err := r.client.PTTL(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to read cooldown %s: %w", key, err)
	}
	if ttl <= 0 {
		// expired between the two calls, or the key has no expiry
		return time.Millisecond, nil
	}
	return ttl, nil
}
