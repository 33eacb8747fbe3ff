package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/rueidis"
)

// RedisLimiter shares counters between replicas. Each window gets its own
// key that expires shortly after the window closes.
type RedisLimiter struct {
	client rueidis.Client
	prefix string
	opts   Options
}

func NewRedisLimiter(client rueidis.Client, prefix string, opts Options) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		prefix: prefix,
		opts:   opts.withDefaults(),
	}
}

func (r *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	windowKey := r.windowKey(key)
	ttl := int64(r.opts.Window/time.Second) + 1

	results := r.client.DoMulti(
		ctx,
		r.client.B().Incr().Key(windowKey).Build(),
		r.client.B().Expire().Key(windowKey).Seconds(ttl).Build(),
	)

	count, err := results[0].AsInt64()
	if err != nil {
		return false, fmt.Errorf("incr %s: %w", windowKey, err)
	}
	if err := results[1].Error(); err != nil {
		return false, fmt.Errorf("expire %s: %w", windowKey, err)
	}

	return count <= int64(r.opts.Limit), nil
}

func (r *RedisLimiter) windowKey(key string) string {
	start := r.opts.Now().Truncate(r.opts.Window).Unix()
	return fmt.Sprintf("%s:%s:%d", r.prefix, key, start)
}
