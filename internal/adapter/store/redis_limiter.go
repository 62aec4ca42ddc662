package store

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// usageWindow is the rolling span of a user's token budget.
const usageWindow = 24 * time.Hour

// RedisLimiter tracks per-user token usage over a daily window.
type RedisLimiter struct {
	client *redis.Client
	limit  int // max tokens per window
}

func NewRedisLimiter(client *redis.Client, limit int) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		limit:  limit,
	}
}

func (r *RedisLimiter) CheckLimit(ctx context.Context, userID string) (bool, error) {
	val, err := r.client.Get(ctx, usageKey(userID)).Result()
	if err == redis.Nil {
		return true, nil // no usage yet this window
	}
	if err != nil {
		return false, err
	}
	usage, _ := strconv.Atoi(val)
	return usage < r.limit, nil
}

func (r *RedisLimiter) Increment(ctx context.Context, userID string, tokens int) error {
	key := usageKey(userID)
	total, err := r.client.IncrBy(ctx, key, int64(tokens)).Result()
	if err != nil {
		return err
	}
	if total == int64(tokens) {
		// First write of the window starts the expiry clock.
		return r.client.Expire(ctx, key, usageWindow).Err()
	}
	return nil
}

func usageKey(userID string) string {
	return "ordo:usage:" + userID
}
