package bucket

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"dlscan/internal/ratelimit/models"
)

// slidingWindowScript trims the sorted set to the window, admits cost
// members when they fit, and returns {allowed, count, oldest score in ms}.
var slidingWindowScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
local cost = tonumber(ARGV[4])
local member = ARGV[5]

redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)
local count = redis.call('ZCARD', key)
local allowed = 0
if count + cost <= limit then
  for i = 1, cost do
    redis.call('ZADD', key, now, member .. ':' .. i)
  end
  count = count + cost
  allowed = 1
end
redis.call('PEXPIRE', key, window)

local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
local oldestScore = now
if oldest[2] then
  oldestScore = tonumber(oldest[2])
end
return {allowed, count, oldestScore}
`)

// RedisBucketStore implements BucketStore with one sorted set per key, scored
// by request time in milliseconds. Buckets are shared by every instance using
// the same Redis.
type RedisBucketStore struct {
	client redis.UniversalClient
	now    func() time.Time
}

// RedisOption configures a RedisBucketStore.
type RedisOption func(*RedisBucketStore)

// WithRedisClock replaces time.Now.
func WithRedisClock(now func() time.Time) RedisOption {
	return func(s *RedisBucketStore) { s.now = now }
}

// NewRedis creates a Redis-backed bucket store.
func NewRedis(client redis.UniversalClient, opts ...RedisOption) *RedisBucketStore {
	s := &RedisBucketStore{client: client, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Allow checks if a request is allowed and increments the counter.
func (s *RedisBucketStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.RateLimitResult, error) {
	return s.AllowN(ctx, key, 1, limit, window)
}

// AllowN checks if 'cost' requests are allowed and records them if so.
func (s *RedisBucketStore) AllowN(ctx context.Context, key string, cost, limit int, window time.Duration) (*models.RateLimitResult, error) {
	now := s.now()
	nowMs := now.UnixMilli()
	windowMs := window.Milliseconds()

	vals, err := slidingWindowScript.Run(ctx, s.client, []string{key},
		nowMs, windowMs, limit, cost, uuid.NewString(),
	).Int64Slice()
	if err != nil {
		return nil, fmt.Errorf("redis sliding window %s: %w", key, err)
	}
	if len(vals) != 3 {
		return nil, fmt.Errorf("redis sliding window %s: unexpected reply of %d values", key, len(vals))
	}

	allowed := vals[0] == 1
	count := int(vals[1])
	resetAt := time.UnixMilli(vals[2]).Add(window)

	res := &models.RateLimitResult{
		Allowed:   allowed,
		Limit:     limit,
		Remaining: max(limit-count, 0),
		ResetAt:   resetAt,
	}
	if !allowed {
		res.Remaining = 0
		res.RetryAfter = models.RetryAfterSeconds(now, resetAt)
	}
	return res, nil
}

// Reset clears the rate limit counter for a key.
func (s *RedisBucketStore) Reset(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

// GetCurrentCount returns the size of the bucket. Expired requests are only
// trimmed on the next write.
func (s *RedisBucketStore) GetCurrentCount(ctx context.Context, key string) (int, error) {
	n, err := s.client.ZCard(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
