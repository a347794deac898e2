package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Store.Get when the key is absent or expired
var ErrCacheMiss = errors.New("cache miss")

// Store is a TTL key/value cache for JSON-serializable values.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get decodes the value stored at key into dest, or returns ErrCacheMiss
	Get(ctx context.Context, key string, dest any) error
	// Set stores value at key for ttl
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	// Delete removes the keys; missing keys are ignored
	Delete(ctx context.Context, keys ...string) error
}
