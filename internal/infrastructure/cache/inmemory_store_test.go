package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedItem struct {
	Name  string
	Count int
}

func TestInMemoryStore_GetSet(t *testing.T) {
	store := NewInMemoryStore()
	defer store.Close()

	ctx := context.Background()

	t.Run("returns miss for unknown key", func(t *testing.T) {
		var out cachedItem
		assert.ErrorIs(t, store.Get(ctx, "unknown", &out), ErrCacheMiss)
	})

	t.Run("round trips a value", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "item", cachedItem{Name: "a", Count: 2}, time.Hour))

		var out cachedItem
		require.NoError(t, store.Get(ctx, "item", &out))
		assert.Equal(t, cachedItem{Name: "a", Count: 2}, out)
	})

	t.Run("stored values are copies", func(t *testing.T) {
		items := []cachedItem{{Name: "x"}}
		require.NoError(t, store.Set(ctx, "slice", items, time.Hour))
		items[0].Name = "mutated"

		var out []cachedItem
		require.NoError(t, store.Get(ctx, "slice", &out))
		assert.Equal(t, "x", out[0].Name)
	})

	t.Run("delete removes keys", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "gone", 1, time.Hour))
		require.NoError(t, store.Delete(ctx, "gone", "never-set"))

		var out int
		assert.ErrorIs(t, store.Get(ctx, "gone", &out), ErrCacheMiss)
	})
}

func TestInMemoryStore_Expiry(t *testing.T) {
	store := NewInMemoryStore()
	defer store.Close()

	now := time.Now()
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "short", "v", time.Minute))
	require.NoError(t, store.Set(ctx, "long", "v", time.Hour))

	now = now.Add(2 * time.Minute)

	var out string
	assert.ErrorIs(t, store.Get(ctx, "short", &out), ErrCacheMiss)
	require.NoError(t, store.Get(ctx, "long", &out))

	store.cleanup()
	assert.Equal(t, 1, store.Size())
}

func TestInMemoryStore_Concurrent(t *testing.T) {
	store := NewInMemoryStore()
	defer store.Close()

	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = store.Set(ctx, "k", n, time.Hour)
		}(i)
		go func() {
			defer wg.Done()
			var out int
			_ = store.Get(ctx, "k", &out)
		}()
	}
	wg.Wait()

	var out int
	require.NoError(t, store.Get(ctx, "k", &out))
}

func TestInMemoryStore_CloseIsIdempotent(t *testing.T) {
	store := NewInMemoryStore()
	require.NoError(t, store.Close())
	require.NoError(t, store.Close())
}
