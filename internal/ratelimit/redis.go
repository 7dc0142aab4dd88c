package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	redis "github.com/redis/go-redis/v9"

	"github.com/rajasatyajit/FloodAlert/config"
)

// RedisLimiter shares counters across instances.
type RedisLimiter struct {
	redis *redis.Client
	clock clockwork.Clock
}

// NewRedisLimiter connects and pings. REDIS_PASSWORD and REDIS_DB override
// whatever the URL carries.
func NewRedisLimiter(cfg config.RedisConfig, clock clockwork.Clock) (*RedisLimiter, error) {
	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if cfg.Password != "" {
		opt.Password = cfg.Password
	}
	if cfg.DB != 0 {
		opt.DB = cfg.DB
	}
	client := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &RedisLimiter{redis: client, clock: clock}, nil
}

func (l *RedisLimiter) Close() error { return l.redis.Close() }

func (l *RedisLimiter) CheckRate(ctx context.Context, key string, limit int, window time.Duration) (bool, time.Duration, error) {
	now := l.clock.Now().UTC()
	rk := fmt.Sprintf("rl:%s:%d", key, windowStart(now, window).Unix())

	// INCR and set TTL in one round trip
	pipe := l.redis.TxPipeline()
	incr := pipe.Incr(ctx, rk)
	pipe.Expire(ctx, rk, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, err
	}
	if int(incr.Val()) > limit {
		return false, untilWindowEnd(now, window), nil
	}
	return true, 0, nil
}

func (l *RedisLimiter) AcquireCooldown(ctx context.Context, key string, ttl time.Duration) (bool, time.Duration, error) {
	ck := "cooldown:" + key
	ok, err := l.redis.SetNX(ctx, ck, l.clock.Now().UTC().Unix(), ttl).Result()
	if err != nil {
		return false, 0, err
	}
	if ok {
		return true, 0, nil
	}
	left, err := l.redis.PTTL(ctx, ck).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return false, 0, err
	}
	if left < 0 {
		left = 0
	}
	return false, left, nil
}

// ReleaseCooldown deletes the cooldown key.
func (l *RedisLimiter) ReleaseCooldown(ctx context.Context, key string) error {
	return l.redis.Del(ctx, "cooldown:"+key).Err()
}
