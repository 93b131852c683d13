package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// FixedWindowLimiter implements a fixed-window rate limit backed by Redis.
// Key format: ratelimit:<key>. The counter expires with the window, so the
// limit resets naturally without cleanup.
type FixedWindowLimiter struct {
	client *redis.Client
	window time.Duration
	max    int64
}

// NewFixedWindowLimiter creates a limiter allowing max hits per window.
func NewFixedWindowLimiter(client *redis.Client, window time.Duration, max int64) *FixedWindowLimiter {
	if window <= 0 {
		window = 15 * time.Minute
	}
	if max <= 0 {
		max = 5
	}
	return &FixedWindowLimiter{client: client, window: window, max: max}
}

// Allow counts a hit for key and reports whether it is still within the
// limit. INCR and EXPIRE run in a pipeline so the window TTL is set
// atomically with the first hit.
func (l *FixedWindowLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := "ratelimit:" + key

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.ExpireNX(ctx, redisKey, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("rate limit incr: %w", err)
	}

	return incr.Val() <= l.max, nil
}
