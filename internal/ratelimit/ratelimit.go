// Package ratelimit provides fixed-window request limits and one-shot
// cooldowns backed by Redis or process memory.
package ratelimit

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/rajasatyajit/FloodAlert/config"
	"github.com/rajasatyajit/FloodAlert/internal/logger"
)

// Limiter is shared by the HTTP middleware and the alert endpoints.
type Limiter interface {
	// CheckRate counts one hit for key in the current window and reports
	// whether it is within limit. retryAfter is the time left in the window
	// when the hit is rejected.
	CheckRate(ctx context.Context, key string, limit int, window time.Duration) (allowed bool, retryAfter time.Duration, err error)
	// AcquireCooldown succeeds at most once per ttl for key.
	AcquireCooldown(ctx context.Context, key string, ttl time.Duration) (acquired bool, retryAfter time.Duration, err error)
	// ReleaseCooldown drops a cooldown early so the next AcquireCooldown
	// for key succeeds. Releasing an absent key is not an error.
	ReleaseCooldown(ctx context.Context, key string) error
	Close() error
}

// New returns a Redis limiter when cfg.URL is set, otherwise an in-memory
// one. A Redis that cannot be reached is an error, not a silent fallback.
func New(cfg config.RedisConfig, clock clockwork.Clock) (Limiter, error) {
	if cfg.URL == "" {
		logger.Info("REDIS_URL not set; using in-memory rate limiter")
		return NewMemoryLimiter(clock), nil
	}
	return NewRedisLimiter(cfg, clock)
}

func windowStart(now time.Time, window time.Duration) time.Time {
	return now.Truncate(window)
}

func untilWindowEnd(now time.Time, window time.Duration) time.Duration {
	return windowStart(now, window).Add(window).Sub(now)
}
