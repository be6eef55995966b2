package redisclient

import (
	"context"
	"os"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func setupRedis(t *testing.T) *Client {
	t.Helper()
	if os.Getenv("TEST_INTEGRATION") == "" {
		t.Skip("TEST_INTEGRATION not set, skipping container-backed test")
	}

	ctx := context.Background()
	container, err := tcredis.Run(ctx, "redis:7")
	require.NoError(t, err, "failed to start redis container")
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	opts, err := goredis.ParseURL(uri)
	require.NoError(t, err)

	return NewClient(goredis.NewClient(opts))
}

func TestClient_SetGetDel(t *testing.T) {
	client := setupRedis(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "otp:code:test", "123456", time.Minute).Err())

	value, err := client.Get(ctx, "otp:code:test").Result()
	require.NoError(t, err)
	assert.Equal(t, "123456", value)

	require.NoError(t, client.Del(ctx, "otp:code:test").Err())
	_, err = client.Get(ctx, "otp:code:test").Result()
	assert.ErrorIs(t, err, goredis.Nil)
}

func TestClient_IncrExpireTTL(t *testing.T) {
	client := setupRedis(t)
	ctx := context.Background()

	count, err := client.Incr(ctx, "otp:count:test").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	ok, err := client.Expire(ctx, "otp:count:test", time.Minute).Result()
	require.NoError(t, err)
	assert.True(t, ok)

	ttl, err := client.TTL(ctx, "otp:count:test").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	count, err = client.Incr(ctx, "otp:count:test").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestClient_Ping(t *testing.T) {
	client := setupRedis(t)
	assert.NoError(t, client.Ping(context.Background()).Err())
}
