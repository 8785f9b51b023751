package cache_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	goRedis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yadoya/infras/otel/mocks"
	"yadoya/shared/cache"
	"yadoya/shared/metrics"
)

func newTestCache(t *testing.T) cache.RedisCache {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goRedis.NewClient(&goRedis.Options{Addr: mr.Addr()})

	return cache.NewRedisCache(client, mocks.NewOtel())
}

func cacheEventCount(event string) float64 {
	return testutil.ToFloat64(metrics.CacheEvents.WithLabelValues("redis", event))
}

func TestRedisCache_SaveAndGet(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Save(ctx, "greeting", "hello", 60))

	var value string
	require.NoError(t, c.Get(ctx, "greeting", &value))
	assert.Equal(t, "hello", value)
}

func TestRedisCache_GetMissingKey(t *testing.T) {
	c := newTestCache(t)

	var value string
	err := c.Get(context.Background(), "nope", &value)
	assert.Error(t, err)
}

func TestRedisCache_ObservesEvents(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	// the counters are process-global, so compare deltas
	hits := cacheEventCount("hit")
	misses := cacheEventCount("miss")
	sets := cacheEventCount("set")
	dels := cacheEventCount("del")

	var value string
	require.Error(t, c.Get(ctx, "greeting", &value))
	require.NoError(t, c.Save(ctx, "greeting", "hello", 60))
	require.NoError(t, c.Get(ctx, "greeting", &value))
	require.NoError(t, c.Delete(ctx, "greeting"))

	assert.Equal(t, misses+1, cacheEventCount("miss"))
	assert.Equal(t, sets+1, cacheEventCount("set"))
	assert.Equal(t, hits+1, cacheEventCount("hit"))
	assert.Equal(t, dels+1, cacheEventCount("del"))
}

func TestRedisCache_ClearByPrefix(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Save(ctx, "room:get:1", "a", 60))
	require.NoError(t, c.Save(ctx, "room:get:2", "b", 60))
	require.NoError(t, c.Save(ctx, "news:get:1", "c", 60))

	require.NoError(t, c.Clear(ctx, "room:get*"))

	var value string
	assert.Error(t, c.Get(ctx, "room:get:1", &value))
	assert.Error(t, c.Get(ctx, "room:get:2", &value))
	assert.NoError(t, c.Get(ctx, "news:get:1", &value))
}
