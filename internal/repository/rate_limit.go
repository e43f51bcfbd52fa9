package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"real_estate/pkg/logger"
)

// RateLimitRepository keeps fixed-window request counters.
type RateLimitRepository interface {
	// Hit counts one request against key and returns the count so far in
	// the current window plus the time left until it resets.
	Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

type rateLimitRepository struct {
	redis *redis.Client
	log   logger.Logger
}

func NewRateLimitRepository(redis *redis.Client, log logger.Logger) RateLimitRepository {
	return &rateLimitRepository{redis: redis, log: log}
}

func (r *rateLimitRepository) Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	key = "ratelimit:" + key

	count, err := r.redis.Incr(ctx, key).Result()
	if err != nil {
		r.log.Error("Failed to increment rate limit", "error", err)
		return 0, 0, err
	}

	if count == 1 {
		if err := r.redis.Expire(ctx, key, window).Err(); err != nil {
			r.log.Error("Failed to set rate limit window", "error", err)
			return 0, 0, err
		}
		return count, window, nil
	}

	ttl, err := r.redis.TTL(ctx, key).Result()
	if err != nil {
		r.log.Error("Failed to read rate limit window", "error", err)
		return 0, 0, err
	}
	if ttl < 0 {
		// Counter lost its expiry; restart the window.
		r.redis.Expire(ctx, key, window)
		ttl = window
	}

	return count, ttl, nil
}
