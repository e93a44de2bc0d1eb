package cache

import (
	"context"
	"github.com/AhmedKotbb/simple-payment-geteway/internal/infrastructure/api/middlewares"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"testing"
	"time"
)

// TEST_REDIS_URL=redis://localhost:6379/15
const testRedisEnv = "TEST_REDIS_URL"

func TestIdempotencyStore(t *testing.T) {
	url := os.Getenv(testRedisEnv)
	if url == "" {
		t.Skipf("%s not set, skipping redis integration test", testRedisEnv)
	}

	opts, err := redis.ParseURL(url)
	require.NoError(t, err)
	client := redis.NewClient(opts)
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	store := NewIdempotencyStore(client)
	key := "test:" + time.Now().Format(time.RFC3339Nano)
	t.Cleanup(func() { _ = store.Release(ctx, key) })

	ok, err := store.Reserve(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Reserve(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	inFlight, err := store.Get(ctx, key)
	require.NoError(t, err)
	require.NotNil(t, inFlight)
	assert.Equal(t, 0, inFlight.Status)

	require.NoError(t, store.Save(ctx, key, middlewares.StoredResponse{Status: 201, Body: []byte(`{"ok":true}`)}, time.Minute))
	done, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, 201, done.Status)
	assert.JSONEq(t, `{"ok":true}`, string(done.Body))

	require.NoError(t, store.Release(ctx, key))
	gone, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, gone)
}
