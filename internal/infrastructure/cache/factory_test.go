package cache

import (
	"context"
	"testing"

	"github.com/homefinder/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unreachableRedis points at a port nothing listens on
func unreachableRedis() config.RedisConfig {
	return config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1}
}

func TestStoreFactory_CreateStore(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled redis uses in-memory store", func(t *testing.T) {
		store, client, err := NewStoreFactory(config.RedisConfig{Enabled: false}).CreateStore(ctx)
		require.NoError(t, err)
		assert.Nil(t, client)
		assert.IsType(t, &InMemoryStore{}, store)
	})

	t.Run("falls back when redis is unreachable", func(t *testing.T) {
		store, client, err := NewStoreFactory(unreachableRedis()).CreateStore(ctx)
		require.NoError(t, err)
		assert.Nil(t, client)
		assert.IsType(t, &InMemoryStore{}, store)
	})

	t.Run("fails when fallback is not allowed", func(t *testing.T) {
		_, _, err := NewStoreFactory(unreachableRedis(), WithInMemoryFallback(false)).CreateStore(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "redis required")
	})
}
