package middleware_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campventure/backend/internal/api/middleware"
)

// fakeCache is an in-memory CacheProvider for middleware tests
type fakeCache struct {
	mu    sync.Mutex
	store map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: map[string][]byte{}}
}

func (c *fakeCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.store[key]; ok {
		return v, nil
	}
	return nil, fmt.Errorf("key not found: %s", key)
}

func (c *fakeCache) GetMulti(ctx context.Context, keys []string) (map[string][]byte, error) {
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

func (c *fakeCache) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[key] = value
	return nil
}

func (c *fakeCache) SetMulti(ctx context.Context, items map[string][]byte, expirationSeconds int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, v := range items {
		c.store[k] = v
	}
	return nil
}

func (c *fakeCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
	return nil
}

func (c *fakeCache) DeletePattern(ctx context.Context, pattern string) error {
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

func (c *fakeCache) Exists(ctx context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.store[key]
	return ok, nil
}

func TestCacheMiddleware_SecondRequestIsServedFromCache(t *testing.T) {
	cache := newFakeCache()
	m := middleware.NewCacheMiddleware(cache)

	hits := 0
	handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(`{"camps":[]}`))
	}))

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/api/camps", nil))
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/api/camps", nil))
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, `{"camps":[]}`, second.Body.String())

	assert.Equal(t, 1, hits)
}

func TestCacheMiddleware_QueryStringsGetDistinctEntries(t *testing.T) {
	m := middleware.NewCacheMiddleware(newFakeCache())

	handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(r.URL.RawQuery))
	}))

	recA := httptest.NewRecorder()
	handler.ServeHTTP(recA, httptest.NewRequest(http.MethodGet, "/api/camps?state=Goa", nil))

	recB := httptest.NewRecorder()
	handler.ServeHTTP(recB, httptest.NewRequest(http.MethodGet, "/api/camps?state=Kerala", nil))

	assert.Equal(t, "state=Goa", recA.Body.String())
	assert.Equal(t, "state=Kerala", recB.Body.String())
}

func TestCacheMiddleware_SkipsNonGETAndUnknownRoutes(t *testing.T) {
	m := middleware.NewCacheMiddleware(newFakeCache())

	handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))

	post := httptest.NewRecorder()
	handler.ServeHTTP(post, httptest.NewRequest(http.MethodPost, "/api/camps", nil))
	assert.Empty(t, post.Header().Get("X-Cache"))

	unknown := httptest.NewRecorder()
	handler.ServeHTTP(unknown, httptest.NewRequest(http.MethodGet, "/api/recommendations", nil))
	assert.Empty(t, unknown.Header().Get("X-Cache"))
}

func TestCacheMiddleware_DoesNotCacheErrors(t *testing.T) {
	cache := newFakeCache()
	m := middleware.NewCacheMiddleware(cache)

	handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"boom"}`))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/camps", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	assert.Empty(t, cache.store)
}
