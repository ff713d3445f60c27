package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// counter is the subset of the Redis API the limiter needs.
type counter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	TTL(ctx context.Context, key string) *redis.DurationCmd
}

// noExpiry is what TTL reports for a key that exists without a timeout.
const noExpiry = time.Duration(-1)

// Limiter is a fixed-window counter per key. A nil *Limiter allows everything.
type Limiter struct {
	rdb    counter
	prefix string
	max    int
	window time.Duration
}

// New builds a limiter allowing max hits per window for each key under prefix.
func New(rdb counter, prefix string, max int, window time.Duration) *Limiter {
	return &Limiter{rdb: rdb, prefix: prefix, max: max, window: window}
}

// Allow records a hit for key and reports whether it is within the limit.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	if l == nil || l.rdb == nil {
		return true, nil
	}

	k := fmt.Sprintf("rate:%s:%s", l.prefix, key)
	count, err := l.rdb.Incr(ctx, k).Result()
	if err != nil {
		return false, err
	}

	// The first hit opens the window. Later hits re-arm it if an earlier
	// EXPIRE was lost, otherwise the key would never reset.
	arm := count == 1
	if !arm {
		ttl, err := l.rdb.TTL(ctx, k).Result()
		if err != nil {
			return false, err
		}
		arm = ttl == noExpiry
	}
	if arm {
		if err := l.rdb.Expire(ctx, k, l.window).Err(); err != nil {
			return false, err
		}
	}
	return count <= int64(l.max), nil
}
