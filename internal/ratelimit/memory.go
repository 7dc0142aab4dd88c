package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	gocache "github.com/patrickmn/go-cache"
)

// MemoryLimiter keeps counters in process. Expiry follows wall time; the
// clock only decides which window a hit falls into.
type MemoryLimiter struct {
	cache *gocache.Cache
	clock clockwork.Clock
}

func NewMemoryLimiter(clock clockwork.Clock) *MemoryLimiter {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &MemoryLimiter{
		cache: gocache.New(time.Minute, 5*time.Minute),
		clock: clock,
	}
}

func (l *MemoryLimiter) Close() error {
	l.cache.Flush()
	return nil
}

func (l *MemoryLimiter) CheckRate(ctx context.Context, key string, limit int, window time.Duration) (bool, time.Duration, error) {
	now := l.clock.Now().UTC()
	rk := fmt.Sprintf("rl:%s:%d", key, windowStart(now, window).Unix())

	count := 1
	if err := l.cache.Add(rk, 1, window); err != nil {
		n, err := l.cache.IncrementInt(rk, 1)
		if err != nil {
			return false, 0, err
		}
		count = n
	}
	if count > limit {
		return false, untilWindowEnd(now, window), nil
	}
	return true, 0, nil
}

func (l *MemoryLimiter) AcquireCooldown(ctx context.Context, key string, ttl time.Duration) (bool, time.Duration, error) {
	ck := "cooldown:" + key
	until := l.clock.Now().Add(ttl)
	if err := l.cache.Add(ck, until, ttl); err == nil {
		return true, 0, nil
	}
	v, ok := l.cache.Get(ck)
	if !ok {
		// Expired between Add and Get.
		return l.AcquireCooldown(ctx, key, ttl)
	}
	left := v.(time.Time).Sub(l.clock.Now())
	if left < 0 {
		left = 0
	}
	return false, left, nil
}

func (l *MemoryLimiter) ReleaseCooldown(ctx context.Context, key string) error {
	l.cache.Delete("cooldown:" + key)
	return nil
}
