//go:build integration

package bucket

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"legatia/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *RedisStore
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
	s.store = NewRedisStore(s.redis.Client)
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisStoreSuite) TestSlidingWindow() {
	ctx := context.Background()
	now := time.Now().Truncate(time.Microsecond)

	for i := range 3 {
		result, err := s.store.Allow(ctx, "user:u1:workflow", 3, time.Minute, now.Add(time.Duration(i)*time.Second))
		s.Require().NoError(err)
		s.True(result.Allowed)
		s.Equal(2-i, result.Remaining)
		s.True(now.Add(time.Minute).Equal(result.ResetAt))
	}

	result, err := s.store.Allow(ctx, "user:u1:workflow", 3, time.Minute, now.Add(10*time.Second))
	s.Require().NoError(err)
	s.False(result.Allowed)
	s.True(now.Add(time.Minute).Equal(result.ResetAt))

	result, err = s.store.Allow(ctx, "user:u1:workflow", 3, time.Minute, now.Add(time.Minute+time.Millisecond))
	s.Require().NoError(err)
	s.True(result.Allowed)

	ttl, err := s.redis.Client.PTTL(ctx, redisKeyPrefix+"user:u1:workflow").Result()
	s.Require().NoError(err)
	s.Positive(ttl)
}

func (s *RedisStoreSuite) TestReset() {
	ctx := context.Background()
	now := time.Now()
	_, err := s.store.Allow(ctx, "user:u2:read", 1, time.Minute, now)
	s.Require().NoError(err)
	s.Require().NoError(s.store.Reset(ctx, "user:u2:read"))

	result, err := s.store.Allow(ctx, "user:u2:read", 1, time.Minute, now)
	s.Require().NoError(err)
	s.True(result.Allowed)
}
