package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, ttl time.Duration) (*RedisScorecardCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisScorecardCache(client, ttl, "scorecards"), mr
}

func TestScorecardCacheRoundTrip(t *testing.T) {
	c, _ := newTestCache(t, 5*time.Minute)
	ctx := context.Background()

	payload := []byte(`{"driver_id":1,"rating":5}`)
	require.NoError(t, c.Put(ctx, "range:2026-08-01:2026-08-31:1", payload))

	got, hit, err := c.Get(ctx, "range:2026-08-01:2026-08-31:1")
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, payload, got)
}

func TestScorecardCacheMiss(t *testing.T) {
	c, _ := newTestCache(t, 5*time.Minute)

	got, hit, err := c.Get(context.Background(), "range:2026-08-01:2026-08-31:all")
	require.NoError(t, err, "a miss is not an error")
	assert.False(t, hit)
	assert.Nil(t, got)
}

func TestScorecardCacheTTLExpiry(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "weekly:2026-08-01:2026-08-31:all", []byte("x")))

	_, hit, err := c.Get(ctx, "weekly:2026-08-01:2026-08-31:all")
	require.NoError(t, err)
	require.True(t, hit)

	mr.FastForward(2 * time.Minute)

	_, hit, err = c.Get(ctx, "weekly:2026-08-01:2026-08-31:all")
	require.NoError(t, err)
	assert.False(t, hit, "entry must expire after the TTL")
}

func TestScorecardCacheInvalidate(t *testing.T) {
	c, mr := newTestCache(t, 5*time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "a", []byte("1")))
	require.NoError(t, c.Put(ctx, "b", []byte("2")))
	// Foreign key outside the prefix must survive invalidation.
	require.NoError(t, mr.Set("sessions:xyz", "keep"))

	require.NoError(t, c.Invalidate(ctx))

	_, hit, err := c.Get(ctx, "a")
	require.NoError(t, err)
	assert.False(t, hit)

	_, hit, err = c.Get(ctx, "b")
	require.NoError(t, err)
	assert.False(t, hit)

	assert.True(t, mr.Exists("sessions:xyz"))
}

func TestScorecardCacheEmptyKeyRejected(t *testing.T) {
	c, _ := newTestCache(t, 5*time.Minute)
	ctx := context.Background()

	if err := c.Put(ctx, "", []byte("x")); err == nil {
		t.Error("expected error for empty key on Put")
	}
	if _, _, err := c.Get(ctx, ""); err == nil {
		t.Error("expected error for empty key on Get")
	}
}

func TestScorecardCacheInvalidateEmpty(t *testing.T) {
	c, _ := newTestCache(t, 5*time.Minute)
	assert.NoError(t, c.Invalidate(context.Background()))
}
