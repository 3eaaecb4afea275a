package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimitRedisStore counts requests in Redis so limits hold across
// server instances. It uses fixed window buckets: the key carries the
// bucket start, and the counter expires with the window.
type RateLimitRedisStore struct {
	client *redis.Client
}

// NewRateLimitRedisStore creates a Redis-backed rate limit store.
func NewRateLimitRedisStore(client *redis.Client) *RateLimitRedisStore {
	return &RateLimitRedisStore{client: client}
}

func (s *RateLimitRedisStore) Record(ctx context.Context, key string, window time.Duration) (int64, error) {
	bucket := time.Now().UnixMilli() / window.Milliseconds()
	bucketKey := fmt.Sprintf("ratelimit:%s:%d", key, bucket)

	pipe := s.client.Pipeline()
	count := pipe.Incr(ctx, bucketKey)
	pipe.Expire(ctx, bucketKey, window)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}

	return count.Val(), nil
}
