package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/homestay-platform/backend/internal/domain/entities"
	"github.com/homestay-platform/backend/internal/domain/providers"
	"github.com/homestay-platform/backend/internal/domain/repositories"
	"github.com/homestay-platform/backend/internal/infrastructure/observability"
)

// Cache TTLs (in seconds)
const (
	placeByIDTTL  = 300
	placeListTTL  = 120
	amenityRowTTL = 300
)

// CachedPlaceAdapter wraps a PlaceRepository with read-through caching of
// single-place and amenity-association lookups. Every write invalidates the
// affected keys.
type CachedPlaceAdapter struct {
	adapter repositories.PlaceRepository
	cache   providers.CacheProvider
	metrics *observability.Metrics
}

// NewCachedPlaceAdapter creates a new cached place adapter. A nil metrics
// disables hit/miss recording.
func NewCachedPlaceAdapter(adapter repositories.PlaceRepository, cache providers.CacheProvider, metrics *observability.Metrics) repositories.PlaceRepository {
	return &CachedPlaceAdapter{
		adapter: adapter,
		cache:   cache,
		metrics: metrics,
	}
}

func placeCacheKey(id string) string {
	return fmt.Sprintf("place:%s", id)
}

func placeAmenitiesCacheKey(id string) string {
	return fmt.Sprintf("place:%s:amenities", id)
}

const placeListCacheKey = "places:list"

// Create inserts a place and invalidates the list cache.
func (a *CachedPlaceAdapter) Create(ctx context.Context, place *entities.Place) error {
	if err := a.adapter.Create(ctx, place); err != nil {
		return err
	}
	a.invalidate(ctx, placeListCacheKey)
	return nil
}

// GetByID retrieves a place by ID with caching.
func (a *CachedPlaceAdapter) GetByID(ctx context.Context, id string) (*entities.Place, error) {
	cacheKey := placeCacheKey(id)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var place entities.Place
		if err := json.Unmarshal(cached, &place); err == nil {
			a.recordHit(ctx, cacheKey)
			return &place, nil
		}
	}
	a.recordMiss(ctx, cacheKey)

	place, err := a.adapter.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	a.store(ctx, cacheKey, place, placeByIDTTL)
	return place, nil
}

// List retrieves all places with caching.
func (a *CachedPlaceAdapter) List(ctx context.Context) ([]*entities.Place, error) {
	if cached, err := a.cache.Get(ctx, placeListCacheKey); err == nil {
		var places []*entities.Place
		if err := json.Unmarshal(cached, &places); err == nil {
			a.recordHit(ctx, placeListCacheKey)
			return places, nil
		}
	}
	a.recordMiss(ctx, placeListCacheKey)

	places, err := a.adapter.List(ctx)
	if err != nil {
		return nil, err
	}

	a.store(ctx, placeListCacheKey, places, placeListTTL)
	return places, nil
}

// ListByOwner bypasses the cache; owner listings are rare and cheap.
func (a *CachedPlaceAdapter) ListByOwner(ctx context.Context, ownerID string) ([]*entities.Place, error) {
	return a.adapter.ListByOwner(ctx, ownerID)
}

// Update replaces a place and invalidates its cache entries.
func (a *CachedPlaceAdapter) Update(ctx context.Context, place *entities.Place) error {
	if err := a.adapter.Update(ctx, place); err != nil {
		return err
	}
	a.invalidate(ctx, placeCacheKey(place.ID), placeListCacheKey)
	return nil
}

// Delete removes a place and invalidates its cache entries.
func (a *CachedPlaceAdapter) Delete(ctx context.Context, id string) error {
	if err := a.adapter.Delete(ctx, id); err != nil {
		return err
	}
	a.invalidate(ctx, placeCacheKey(id), placeAmenitiesCacheKey(id), placeListCacheKey)
	return nil
}

// SetAmenities replaces the association set and invalidates the cached join.
func (a *CachedPlaceAdapter) SetAmenities(ctx context.Context, placeID string, amenityIDs []string) error {
	if err := a.adapter.SetAmenities(ctx, placeID, amenityIDs); err != nil {
		return err
	}
	a.invalidate(ctx, placeAmenitiesCacheKey(placeID))
	return nil
}

// ListAmenities retrieves the amenities associated with a place with caching.
func (a *CachedPlaceAdapter) ListAmenities(ctx context.Context, placeID string) ([]*entities.Amenity, error) {
	cacheKey := placeAmenitiesCacheKey(placeID)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var amenities []*entities.Amenity
		if err := json.Unmarshal(cached, &amenities); err == nil {
			a.recordHit(ctx, cacheKey)
			return amenities, nil
		}
	}
	a.recordMiss(ctx, cacheKey)

	amenities, err := a.adapter.ListAmenities(ctx, placeID)
	if err != nil {
		return nil, err
	}

	a.store(ctx, cacheKey, amenities, amenityRowTTL)
	return amenities, nil
}

// RemoveAmenityFromAll removes an amenity everywhere. The per-place amenity
// keys cannot be enumerated cheaply, so they are left to expire by TTL.
func (a *CachedPlaceAdapter) RemoveAmenityFromAll(ctx context.Context, amenityID string) error {
	return a.adapter.RemoveAmenityFromAll(ctx, amenityID)
}

func (a *CachedPlaceAdapter) recordHit(ctx context.Context, key string) {
	if a.metrics != nil {
		observability.RecordCacheHit(ctx, a.metrics, key)
	}
}

func (a *CachedPlaceAdapter) recordMiss(ctx context.Context, key string) {
	if a.metrics != nil {
		observability.RecordCacheMiss(ctx, a.metrics, key)
	}
}

// store updates the cache in the background so reads are never blocked on it.
func (a *CachedPlaceAdapter) store(ctx context.Context, key string, value interface{}, ttl int) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	go func() {
		if err := a.cache.Set(context.Background(), key, data, ttl); err != nil {
			log.Debug().Err(err).Str("key", key).Msg("failed to cache place data")
		}
	}()
}

func (a *CachedPlaceAdapter) invalidate(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if err := a.cache.Delete(ctx, key); err != nil {
			log.Debug().Err(err).Str("key", key).Msg("failed to invalidate cache key")
		}
	}
}
