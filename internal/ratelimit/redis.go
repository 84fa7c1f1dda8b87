package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nardosm/ik-registry/internal"
)

// RedisLimiter is a fixed-window counter over redis, used to slow down
// credential stuffing on the login route. Redis being unavailable fails
// open: a broken cache must not lock everyone out.
type RedisLimiter struct {
	client      *redis.Client
	maxAttempts int64
	window      time.Duration
	logger      *slog.Logger
}

func NewRedisLimiter(client *redis.Client, maxAttempts int64, window time.Duration, logger *slog.Logger) *RedisLimiter {
	return &RedisLimiter{
		client:      client,
		maxAttempts: maxAttempts,
		window:      window,
		logger:      logger,
	}
}

// Allow counts an attempt for key and returns ErrTooManyAttempts once
// the window budget is spent.
func (l *RedisLimiter) Allow(ctx context.Context, key string) error {
	redisKey := fmt.Sprintf("ratelimit:login:%s", key)

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		l.logger.Warn("rate limiter unavailable, allowing request", "error", err)
		return nil
	}
	if count == 1 {
		if err := l.client.Expire(ctx, redisKey, l.window).Err(); err != nil {
			l.logger.Warn("failed to set rate limit window", "error", err)
		}
	}

	if count > l.maxAttempts {
		return internal.ErrTooManyAttempts
	}
	return nil
}

// NoopLimiter is used when no redis address is configured.
type NoopLimiter struct{}

func (NoopLimiter) Allow(ctx context.Context, key string) error { return nil }
