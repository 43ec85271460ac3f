package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps windows in Redis as counters with a TTL equal to the
// window length (INCR, then PEXPIRE on the first hit).
type RedisStore struct {
	client redis.Cmdable
	prefix string
	now    func() time.Time
}

// NewRedisStore creates a store using client. Keys are namespaced with prefix.
func NewRedisStore(client redis.Cmdable, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, now: time.Now}
}

// Hit implements Store.
func (s *RedisStore) Hit(ctx context.Context, key string, window time.Duration) (Window, error) {
	k := s.prefix + key

	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, k)
	ttl := pipe.PTTL(ctx, k)
	if _, err := pipe.Exec(ctx); err != nil {
		return Window{}, fmt.Errorf("redis rate hit %s: %w", k, err)
	}

	count := int(incr.Val())
	remaining := ttl.Val()

	// First hit of a window, or a counter that lost its TTL.
	if count == 1 || remaining < 0 {
		if err := s.client.PExpire(ctx, k, window).Err(); err != nil {
			return Window{}, fmt.Errorf("redis rate expire %s: %w", k, err)
		}
		remaining = window
	}

	return Window{Count: count, ResetAt: s.now().Add(remaining)}, nil
}
