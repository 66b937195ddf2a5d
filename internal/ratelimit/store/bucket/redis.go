package bucket

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"legatia/internal/ratelimit/models"
)

const redisKeyPrefix = "legatia:ratelimit:"

// slidingWindowScript trims, counts and conditionally records one request in
// a sorted set scored by microseconds. It returns {allowed, count, oldest}.
var slidingWindowScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)
local count = redis.call('ZCARD', key)
local allowed = 0
if count < limit then
	redis.call('ZADD', key, now, ARGV[4])
	redis.call('PEXPIRE', key, math.ceil(window / 1000))
	count = count + 1
	allowed = 1
end
local oldest = now
local first = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
if first[2] then
	oldest = tonumber(first[2])
end
return {allowed, count, oldest}
`)

// RedisStore shares sliding windows across replicas.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Allow(ctx context.Context, key string, limit int, window time.Duration, now time.Time) (*models.RateLimitResult, error) {
	res, err := slidingWindowScript.Run(ctx, s.client, []string{redisKeyPrefix + key},
		now.UnixMicro(), window.Microseconds(), limit, uuid.NewString()).Int64Slice()
	if err != nil {
		return nil, fmt.Errorf("sliding window %s: %w", key, err)
	}
	if len(res) != 3 {
		return nil, fmt.Errorf("sliding window %s: unexpected reply %v", key, res)
	}

	count := int(res[1])
	resetAt := time.UnixMicro(res[2]).Add(window)
	if res[0] == 0 {
		return &models.RateLimitResult{Allowed: false, Limit: limit, Remaining: 0, ResetAt: resetAt}, nil
	}
	return &models.RateLimitResult{Allowed: true, Limit: limit, Remaining: limit - count, ResetAt: resetAt}, nil
}

func (s *RedisStore) Reset(ctx context.Context, key string) error {
	return s.client.Del(ctx, redisKeyPrefix+key).Err()
}
