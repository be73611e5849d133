// Package cache keeps a disposable Redis copy of the cross-user activity summary.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keySummaries  = "activity:summaries"
	keyGeneration = "activity:gen"
)

// setIfGeneration stores ARGV[2] only while the generation still equals ARGV[1].
var setIfGeneration = redis.NewScript(`
local cur = redis.call('GET', KEYS[1]) or '0'
if cur ~= ARGV[1] then
	return 0
end
redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[3])
return 1
`)

// ActivityCache stores the JSON-encoded user activity list under one key.
// Every Invalidate bumps a generation counter; a fill computed under an
// older generation is discarded instead of stored.
type ActivityCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewActivityCache returns a cache whose entries expire after ttl.
func NewActivityCache(rdb *redis.Client, ttl time.Duration) *ActivityCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &ActivityCache{rdb: rdb, ttl: ttl}
}

// Get decodes the cached value into dst. ok is false on a miss.
func (c *ActivityCache) Get(ctx context.Context, dst any) (ok bool, err error) {
	b, err := c.rdb.Get(ctx, keySummaries).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return false, err
	}
	return true, nil
}

// Generation returns the current invalidation count, 0 before the first write.
func (c *ActivityCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.rdb.Get(ctx, keyGeneration).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// SetAt stores v if no Invalidate happened since gen was read.
// stored is false when the value was computed from superseded data.
func (c *ActivityCache) SetAt(ctx context.Context, gen int64, v any) (stored bool, err error) {
	b, err := json.Marshal(v)
	if err != nil {
		return false, err
	}
	n, err := setIfGeneration.Run(ctx, c.rdb,
		[]string{keyGeneration, keySummaries},
		strconv.FormatInt(gen, 10), b, c.ttl.Milliseconds(),
	).Int()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// Invalidate drops the cached summary and advances the generation.
func (c *ActivityCache) Invalidate(ctx context.Context) error {
	_, err := c.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Incr(ctx, keyGeneration)
		p.Del(ctx, keySummaries)
		return nil
	})
	return err
}
