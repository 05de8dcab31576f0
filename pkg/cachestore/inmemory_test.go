package cachestore_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yadaporn-l/Papakjai/pkg/cachestore"
)

type storedValue struct {
	Name  string
	Count int
}

func TestInMemory_GetPut(t *testing.T) {
	ctx := context.Background()
	store := cachestore.NewInMemory[string, storedValue]()

	t.Run("get on an absent key reports not found", func(t *testing.T) {
		_, err := store.Get(ctx, "missing")
		require.Error(t, err)
		assert.ErrorIs(t, err, cachestore.ErrNotFound)
	})

	t.Run("put then get round-trips the value", func(t *testing.T) {
		want := storedValue{Name: "first", Count: 1}
		require.NoError(t, store.Put(ctx, "k1", want))

		got, err := store.Get(ctx, "k1")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("put overwrites the prior value", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "k1", storedValue{Name: "second", Count: 2}))

		got, err := store.Get(ctx, "k1")
		require.NoError(t, err)
		assert.Equal(t, storedValue{Name: "second", Count: 2}, got)
		assert.Equal(t, 1, store.Len())
	})
}

func TestInMemory_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	store := cachestore.NewInMemory[string, int]()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = store.Put(ctx, "shared", n)
			_, _ = store.Get(ctx, "shared")
		}(i)
	}
	wg.Wait()

	_, err := store.Get(ctx, "shared")
	assert.NoError(t, err)
	assert.Equal(t, 1, store.Len())
}
