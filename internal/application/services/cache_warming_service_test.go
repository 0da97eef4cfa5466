package services_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campventure/backend/internal/adapters/database"
	"github.com/campventure/backend/internal/adapters/memory"
	"github.com/campventure/backend/internal/application/services"
	"github.com/campventure/backend/internal/domain/entities"
	"github.com/campventure/backend/internal/domain/repositories"
)

// stubCache is an in-memory CacheProvider for warming tests
type stubCache struct {
	mu    sync.Mutex
	store map[string][]byte
}

func newStubCache() *stubCache {
	return &stubCache{store: map[string][]byte{}}
}

func (c *stubCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.store[key]; ok {
		return v, nil
	}
	return nil, assert.AnError
}

func (c *stubCache) GetMulti(ctx context.Context, keys []string) (map[string][]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := map[string][]byte{}
	for _, k := range keys {
		if v, ok := c.store[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

func (c *stubCache) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[key] = value
	return nil
}

func (c *stubCache) SetMulti(ctx context.Context, items map[string][]byte, expirationSeconds int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, v := range items {
		c.store[k] = v
	}
	return nil
}

func (c *stubCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
	return nil
}

func (c *stubCache) DeletePattern(ctx context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range c.store {
		if strings.HasPrefix(k, prefix) {
			delete(c.store, k)
		}
	}
	return nil
}

func (c *stubCache) Exists(ctx context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.store[key]
	return ok, nil
}

// countingCatalog counts List calls that reach the underlying catalog
type countingCatalog struct {
	repositories.CampRepository
	mu        sync.Mutex
	listCalls int
}

func (c *countingCatalog) List(ctx context.Context, filter repositories.CampFilter) ([]*entities.Camp, error) {
	c.mu.Lock()
	c.listCalls++
	c.mu.Unlock()
	return c.CampRepository.List(ctx, filter)
}

func (c *countingCatalog) calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.listCalls
}

func TestCacheWarming_WarmedListPageIsServedFromCache(t *testing.T) {
	ctx := context.Background()
	cacheStore := newStubCache()
	catalog := &countingCatalog{CampRepository: memory.NewCatalogWith(fixtureCamps()...)}

	warming := services.NewCacheWarmingService(catalog, cacheStore)
	require.NoError(t, warming.WarmCache(ctx))

	// The cached adapter derives its key from the same filter, so the warmed
	// first page must be a hit that never reaches the catalog
	cached := database.NewCachedCampAdapter(catalog, cacheStore)
	before := catalog.calls()

	active := true
	camps, err := cached.List(ctx, repositories.CampFilter{IsActive: &active, Limit: 20})
	require.NoError(t, err)
	assert.NotEmpty(t, camps)
	assert.Equal(t, before, catalog.calls())
}

func TestCacheWarming_FeaturedCampsAreCachedIndividually(t *testing.T) {
	ctx := context.Background()
	cacheStore := newStubCache()
	catalog := &countingCatalog{CampRepository: memory.NewCatalogWith(fixtureCamps()...)}

	warming := services.NewCacheWarmingService(catalog, cacheStore)
	require.NoError(t, warming.WarmCache(ctx))

	// camp-2 and camp-4 are featured fixtures
	for _, id := range []string{"camp-2", "camp-4"} {
		exists, err := cacheStore.Exists(ctx, "camp:"+id)
		require.NoError(t, err)
		assert.True(t, exists)
	}
}

func TestCacheWarming_InvalidateDropsCampKeys(t *testing.T) {
	ctx := context.Background()
	cacheStore := newStubCache()
	catalog := &countingCatalog{CampRepository: memory.NewCatalogWith(fixtureCamps()...)}

	warming := services.NewCacheWarmingService(catalog, cacheStore)
	require.NoError(t, warming.WarmCache(ctx))
	require.NoError(t, warming.InvalidateCache(ctx))

	exists, err := cacheStore.Exists(ctx, "camp:camp-2")
	require.NoError(t, err)
	assert.False(t, exists)
}
