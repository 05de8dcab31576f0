//go:build integration

package cachestore_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yadaporn-l/Papakjai/pkg/cachestore"
)

// Requires a running Redis; set REDIS_TEST_ADDR to run.
func TestRedis_Integration(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	t.Cleanup(cancel)

	store, err := cachestore.NewRedis[string, storedValue](ctx, &cachestore.RedisConfig{
		Addr: addr,
	}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	key := "cachestore-test-" + time.Now().Format("150405.000")

	t.Run("get miss", func(t *testing.T) {
		_, err := store.Get(ctx, key)
		require.Error(t, err)
		assert.ErrorIs(t, err, cachestore.ErrNotFound)
	})

	t.Run("put then get", func(t *testing.T) {
		want := storedValue{Name: "test-item", Count: 42}
		require.NoError(t, store.Put(ctx, key, want))

		got, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("put overwrites", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, key, storedValue{Name: "replaced", Count: 7}))

		got, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, storedValue{Name: "replaced", Count: 7}, got)
	})
}
