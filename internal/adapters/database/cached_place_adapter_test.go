package database_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homestay-platform/backend/internal/adapters/database"
	"github.com/homestay-platform/backend/internal/adapters/memory"
	"github.com/homestay-platform/backend/internal/domain/entities"
	"github.com/homestay-platform/backend/internal/infrastructure/observability"
	apperrors "github.com/homestay-platform/backend/pkg/errors"
)

// stubCache is an in-process CacheProvider for exercising the decorator.
type stubCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	deleted []string
}

func newStubCache() *stubCache {
	return &stubCache{data: make(map[string][]byte)}
}

func (c *stubCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if value, ok := c.data[key]; ok {
		return value, nil
	}
	return nil, apperrors.NewNotFoundError("cache miss")
}

func (c *stubCache) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *stubCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	c.deleted = append(c.deleted, key)
	return nil
}

func (c *stubCache) seen(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, deletedKey := range c.deleted {
		if deletedKey == key {
			return true
		}
	}
	return false
}

func TestCachedPlaceAdapter_GetByIDServedFromCache(t *testing.T) {
	ctx := context.Background()
	cache := newStubCache()
	// the backing store stays empty: a hit must not touch it
	adapter := database.NewCachedPlaceAdapter(memory.NewPlaceStore(memory.NewAmenityStore()), cache, nil)

	place, err := entities.NewPlace("Cached loft", "d", 10, 0, 0, "owner-1")
	require.NoError(t, err)
	payload, err := json.Marshal(place)
	require.NoError(t, err)
	require.NoError(t, cache.Set(ctx, "place:"+place.ID, payload, 300))

	got, err := adapter.GetByID(ctx, place.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cached loft", got.Title)
}

func TestCachedPlaceAdapter_MissFallsThrough(t *testing.T) {
	ctx := context.Background()
	store := memory.NewPlaceStore(memory.NewAmenityStore())
	adapter := database.NewCachedPlaceAdapter(store, newStubCache(), nil)

	place, err := entities.NewPlace("Loft", "d", 10, 0, 0, "owner-1")
	require.NoError(t, err)
	require.NoError(t, store.Create(ctx, place))

	got, err := adapter.GetByID(ctx, place.ID)
	require.NoError(t, err)
	assert.Equal(t, place.ID, got.ID)

	_, err = adapter.GetByID(ctx, "missing")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestCachedPlaceAdapter_WritesInvalidate(t *testing.T) {
	ctx := context.Background()
	store := memory.NewPlaceStore(memory.NewAmenityStore())
	cache := newStubCache()
	adapter := database.NewCachedPlaceAdapter(store, cache, nil)

	place, err := entities.NewPlace("Loft", "d", 10, 0, 0, "owner-1")
	require.NoError(t, err)
	require.NoError(t, adapter.Create(ctx, place))
	assert.True(t, cache.seen("places:list"))

	require.NoError(t, adapter.Update(ctx, place))
	assert.True(t, cache.seen("place:"+place.ID))

	require.NoError(t, adapter.SetAmenities(ctx, place.ID, nil))
	assert.True(t, cache.seen("place:"+place.ID+":amenities"))

	require.NoError(t, adapter.Delete(ctx, place.ID))
	_, err = store.GetByID(ctx, place.ID)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestCachedPlaceAdapter_RecordsHitAndMissMetrics(t *testing.T) {
	ctx := context.Background()
	metrics, err := observability.InitMetrics()
	require.NoError(t, err)

	store := memory.NewPlaceStore(memory.NewAmenityStore())
	cache := newStubCache()
	adapter := database.NewCachedPlaceAdapter(store, cache, metrics)

	place, err := entities.NewPlace("Metered loft", "d", 10, 0, 0, "owner-1")
	require.NoError(t, err)
	require.NoError(t, store.Create(ctx, place))

	// miss path first, then seed the cache and take the hit path
	got, err := adapter.GetByID(ctx, place.ID)
	require.NoError(t, err)
	assert.Equal(t, place.ID, got.ID)

	payload, err := json.Marshal(place)
	require.NoError(t, err)
	require.NoError(t, cache.Set(ctx, "place:"+place.ID, payload, 300))

	got, err = adapter.GetByID(ctx, place.ID)
	require.NoError(t, err)
	assert.Equal(t, place.ID, got.ID)

	_, err = adapter.List(ctx)
	require.NoError(t, err)
	_, err = adapter.ListAmenities(ctx, place.ID)
	require.NoError(t, err)
}
