// Package cache keeps per-user unread notification counts in Redis so the
// badge poll does not hit the notification table.
package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	id "legatia/pkg/domain"
)

const unreadKeyPrefix = "legatia:unread:"

// DefaultTTL bounds how long a filled count lives without a write.
const DefaultTTL = 5 * time.Minute

const generationTTL = 24 * time.Hour

// fillScript stores the count only while the generation the reader saw on its
// miss is still current. KEYS: count, generation. ARGV: generation, count, ttl ms.
var fillScript = redis.NewScript(`
local gen = redis.call('GET', KEYS[2]) or '0'
if gen ~= ARGV[1] then
	return 0
end
redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
return 1
`)

// UnreadCache is a Redis-backed counter cache. Every write to a recipient's
// inbox drops the count and advances the recipient's generation, so a reader
// that counted before the write cannot put its stale count back.
type UnreadCache struct {
	client *redis.Client
	ttl    time.Duration
}

type Option func(*UnreadCache)

func WithTTL(ttl time.Duration) Option {
	return func(c *UnreadCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

func NewUnreadCache(client *redis.Client, opts ...Option) *UnreadCache {
	c := &UnreadCache{client: client, ttl: DefaultTTL}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached count. On a miss ok is false and gen is the
// generation a following Fill must present.
func (c *UnreadCache) Get(ctx context.Context, userID id.UserID) (int, int64, bool, error) {
	vals, err := c.client.MGet(ctx, countKey(userID), generationKey(userID)).Result()
	if err != nil {
		return 0, 0, false, err
	}
	gen, _ := asInt64(vals[1])
	n, ok := asInt64(vals[0])
	return int(n), gen, ok, nil
}

// Fill stores count unless an invalidation happened since gen was read.
func (c *UnreadCache) Fill(ctx context.Context, userID id.UserID, count int, gen int64) error {
	err := fillScript.Run(ctx, c.client, []string{countKey(userID), generationKey(userID)},
		gen, count, c.ttl.Milliseconds()).Err()
	if err != nil {
		return fmt.Errorf("fill unread count: %w", err)
	}
	return nil
}

func (c *UnreadCache) Invalidate(ctx context.Context, userID id.UserID) error {
	gk := generationKey(userID)
	_, err := c.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Incr(ctx, gk)
		p.Expire(ctx, gk, generationTTL)
		p.Del(ctx, countKey(userID))
		return nil
	})
	return err
}

// Both keys share a hash tag so the script and the transaction stay on one
// cluster slot.
func countKey(userID id.UserID) string {
	return unreadKeyPrefix + "{" + userID.String() + "}:count"
}

func generationKey(userID id.UserID) string {
	return unreadKeyPrefix + "{" + userID.String() + "}:gen"
}

func asInt64(v any) (int64, bool) {
	s, ok := v.(string)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	return n, err == nil
}
