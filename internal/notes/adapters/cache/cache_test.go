package cache_test

import (
	"context"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"noteapi/internal/notes/adapters/cache"
	"noteapi/pkg/db/redis"
)

func newTestCache(t *testing.T, ttl time.Duration) (*cache.RenderCache, *miniredis.Miniredis) {
	t.Helper()

	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)

	host, portStr, err := net.SplitHostPort(s.Addr())
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	client, err := redis.NewClient(context.Background(), &redis.Config{Host: host, Port: port})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close(context.Background()) })

	return cache.NewRenderCache(client, ttl), s
}

func TestKey(t *testing.T) {
	assert.Equal(t, "notes:html:42", cache.Key(42))
}

func TestRenderCache_Miss(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)

	html, ok, err := c.Get(context.Background(), 1)

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, html)
}

func TestRenderCache_SetGet(t *testing.T) {
	c, s := newTestCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, 1, "<h1>Note</h1>\n"))

	html, ok, err := c.Get(ctx, 1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "<h1>Note</h1>\n", html)
	assert.Equal(t, time.Minute, s.TTL(cache.Key(1)))
}

func TestRenderCache_Expiry(t *testing.T) {
	c, s := newTestCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, 1, "<p>x</p>"))
	s.FastForward(2 * time.Minute)

	_, ok, err := c.Get(ctx, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRenderCache_Delete(t *testing.T) {
	c, s := newTestCache(t, 0)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, 7, "<p>x</p>"))
	assert.Equal(t, cache.DefaultTTL, s.TTL(cache.Key(7)))

	require.NoError(t, c.Delete(ctx, 7))
	assert.False(t, s.Exists(cache.Key(7)))

	require.NoError(t, c.Delete(ctx, 7), "deleting a missing key is not an error")
}

func TestRenderCache_ServerDown(t *testing.T) {
	c, s := newTestCache(t, time.Minute)
	s.Close()

	_, ok, err := c.Get(context.Background(), 1)

	require.Error(t, err)
	assert.False(t, ok)
	assert.Contains(t, err.Error(), cache.ErrorFailedToGet)
}
