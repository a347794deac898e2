package cache

import (
	"context"
	"errors"
	"time"

	"github.com/homefinder/backend/internal/domain/listing"
	"github.com/homefinder/backend/internal/domain/location"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultReferenceTTL is how long location and house type lists stay cached
const DefaultReferenceTTL = time.Hour

// LocationCache is a read-through cache in front of location.Reader.
// Cache failures are logged and fall back to the underlying reader.
type LocationCache struct {
	next   location.Reader
	store  Store
	ttl    time.Duration
	logger *zap.Logger
}

// NewLocationCache creates a location cache. A non-positive ttl uses DefaultReferenceTTL.
func NewLocationCache(next location.Reader, store Store, ttl time.Duration, logger *zap.Logger) *LocationCache {
	if ttl <= 0 {
		ttl = DefaultReferenceTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocationCache{next: next, store: store, ttl: ttl, logger: logger}
}

// ListRegions returns all regions
func (c *LocationCache) ListRegions(ctx context.Context) ([]location.Region, error) {
	return remember(ctx, c.store, c.ttl, c.logger, "locations:regions", func() ([]location.Region, error) {
		return c.next.ListRegions(ctx)
	})
}

// ListDivisions returns the divisions of a region
func (c *LocationCache) ListDivisions(ctx context.Context, regionID uuid.UUID) ([]location.Division, error) {
	return remember(ctx, c.store, c.ttl, c.logger, "locations:divisions:"+regionID.String(), func() ([]location.Division, error) {
		return c.next.ListDivisions(ctx, regionID)
	})
}

// ListSubdivisions returns the subdivisions of a division
func (c *LocationCache) ListSubdivisions(ctx context.Context, divisionID uuid.UUID) ([]location.Subdivision, error) {
	return remember(ctx, c.store, c.ttl, c.logger, "locations:subdivisions:"+divisionID.String(), func() ([]location.Subdivision, error) {
		return c.next.ListSubdivisions(ctx, divisionID)
	})
}

// ListNeighborhoods returns the neighborhoods of a subdivision
func (c *LocationCache) ListNeighborhoods(ctx context.Context, subdivisionID uuid.UUID) ([]location.Neighborhood, error) {
	return remember(ctx, c.store, c.ttl, c.logger, "locations:neighborhoods:"+subdivisionID.String(), func() ([]location.Neighborhood, error) {
		return c.next.ListNeighborhoods(ctx, subdivisionID)
	})
}

var _ location.Reader = (*LocationCache)(nil)

// HouseTypeLister lists house types
type HouseTypeLister interface {
	List(ctx context.Context) ([]listing.HouseType, error)
}

// HouseTypeCache is a read-through cache for the house type list
type HouseTypeCache struct {
	next   HouseTypeLister
	store  Store
	ttl    time.Duration
	logger *zap.Logger
}

// NewHouseTypeCache creates a house type cache. A non-positive ttl uses DefaultReferenceTTL.
func NewHouseTypeCache(next HouseTypeLister, store Store, ttl time.Duration, logger *zap.Logger) *HouseTypeCache {
	if ttl <= 0 {
		ttl = DefaultReferenceTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HouseTypeCache{next: next, store: store, ttl: ttl, logger: logger}
}

// List returns all house types
func (c *HouseTypeCache) List(ctx context.Context) ([]listing.HouseType, error) {
	return remember(ctx, c.store, c.ttl, c.logger, "house_types", func() ([]listing.HouseType, error) {
		return c.next.List(ctx)
	})
}

// remember returns the cached value for key, loading and storing it on a miss.
// Store errors never fail the read.
func remember[T any](ctx context.Context, store Store, ttl time.Duration, logger *zap.Logger, key string, load func() ([]T, error)) ([]T, error) {
	var cached []T
	err := store.Get(ctx, key, &cached)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		logger.Warn("Cache read failed, reading from store", zap.String("key", key), zap.Error(err))
	}

	items, err := load()
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}

	if err := store.Set(ctx, key, items, ttl); err != nil {
		logger.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
	}
	return items, nil
}
