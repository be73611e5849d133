package cache

import (
	"context"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type entry struct {
	Username string `json:"username"`
	Total    int    `json:"total_todos"`
}

func newCache(t *testing.T, ttl time.Duration) (*ActivityCache, *mr.Miniredis) {
	m, err := mr.Run()
	require.NoError(t, err)
	t.Cleanup(m.Close)
	return NewActivityCache(redis.NewClient(&redis.Options{Addr: m.Addr()}), ttl), m
}

func TestActivityCache_SetGetInvalidate(t *testing.T) {
	c, _ := newCache(t, time.Minute)
	ctx := context.Background()

	var got []entry
	ok, err := c.Get(ctx, &got)
	require.NoError(t, err)
	require.False(t, ok)

	stored, err := c.SetAt(ctx, 0, []entry{{Username: "alice", Total: 2}})
	require.NoError(t, err)
	require.True(t, stored)
	ok, err = c.Get(ctx, &got)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []entry{{Username: "alice", Total: 2}}, got)

	require.NoError(t, c.Invalidate(ctx))
	ok, err = c.Get(ctx, &got)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestActivityCache_TTLExpiry(t *testing.T) {
	c, m := newCache(t, 5*time.Second)
	ctx := context.Background()

	_, err := c.SetAt(ctx, 0, []entry{{Username: "bob"}})
	require.NoError(t, err)
	m.FastForward(6 * time.Second)

	var got []entry
	ok, err := c.Get(ctx, &got)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestActivityCache_SetAtDiscardsSupersededFill(t *testing.T) {
	c, m := newCache(t, time.Minute)
	ctx := context.Background()

	gen, err := c.Generation(ctx)
	require.NoError(t, err)
	require.Zero(t, gen)

	// a write lands while the fill for gen is being computed
	require.NoError(t, c.Invalidate(ctx))
	stored, err := c.SetAt(ctx, gen, []entry{{Username: "stale"}})
	require.NoError(t, err)
	require.False(t, stored)
	require.False(t, m.Exists(keySummaries))

	gen, err = c.Generation(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), gen)
	stored, err = c.SetAt(ctx, gen, []entry{{Username: "fresh"}})
	require.NoError(t, err)
	require.True(t, stored)

	var got []entry
	ok, err := c.Get(ctx, &got)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "fresh", got[0].Username)
}

func TestActivityCache_RedisDown(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	c := NewActivityCache(redis.NewClient(&redis.Options{Addr: m.Addr(), MaxRetries: -1}), time.Minute)
	m.Close()

	var got []entry
	_, err = c.Get(context.Background(), &got)
	require.Error(t, err)
}
