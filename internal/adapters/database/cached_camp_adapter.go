package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/campventure/backend/internal/domain/entities"
	"github.com/campventure/backend/internal/domain/providers"
	"github.com/campventure/backend/internal/domain/repositories"
)

// CachedCampAdapter wraps a CampRepository with read-through Redis caching
type CachedCampAdapter struct {
	adapter repositories.CampRepository
	cache   providers.CacheProvider
}

// NewCachedCampAdapter creates a new cached camp adapter
func NewCachedCampAdapter(adapter repositories.CampRepository, cache providers.CacheProvider) repositories.CampRepository {
	return &CachedCampAdapter{
		adapter: adapter,
		cache:   cache,
	}
}

// Cache TTLs (in seconds)
const (
	campByIDTTL = 300 // 5 minutes for single camp
	campListTTL = 180 // 3 minutes for lists
)

func campCacheKey(id string) string {
	return fmt.Sprintf("camp:%s", id)
}

// GetByID retrieves a camp by ID with caching
func (a *CachedCampAdapter) GetByID(ctx context.Context, id string) (*entities.Camp, error) {
	cacheKey := campCacheKey(id)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var camp entities.Camp
		if err := json.Unmarshal(cached, &camp); err == nil {
			return &camp, nil
		}
		log.Warn().Str("camp_id", id).Msg("failed to unmarshal cached camp, falling through")
	}

	camp, err := a.adapter.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Populate cache off the request path
	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(camp); err == nil {
			if err := a.cache.Set(bgCtx, cacheKey, data, campByIDTTL); err != nil {
				log.Warn().Err(err).Str("camp_id", id).Msg("failed to cache camp")
			}
		}
	}()

	return camp, nil
}

// GetByIDs retrieves multiple camps by IDs with batch caching
func (a *CachedCampAdapter) GetByIDs(ctx context.Context, ids []string) ([]*entities.Camp, error) {
	if len(ids) == 0 {
		return []*entities.Camp{}, nil
	}

	cacheKeys := make([]string, len(ids))
	for i, id := range ids {
		cacheKeys[i] = campCacheKey(id)
	}

	cached, _ := a.cache.GetMulti(ctx, cacheKeys)

	var cachedCamps []*entities.Camp
	missingIDs := make([]string, 0)

	for i, id := range ids {
		if data, ok := cached[cacheKeys[i]]; ok {
			var camp entities.Camp
			if err := json.Unmarshal(data, &camp); err == nil {
				cachedCamps = append(cachedCamps, &camp)
				continue
			}
		}
		missingIDs = append(missingIDs, id)
	}

	if len(missingIDs) == 0 {
		return cachedCamps, nil
	}

	dbCamps, err := a.adapter.GetByIDs(ctx, missingIDs)
	if err != nil {
		return nil, err
	}

	go func() {
		bgCtx := context.Background()
		items := make(map[string][]byte)
		for _, camp := range dbCamps {
			if data, err := json.Marshal(camp); err == nil {
				items[campCacheKey(camp.ID)] = data
			}
		}
		if len(items) > 0 {
			if err := a.cache.SetMulti(bgCtx, items, campByIDTTL); err != nil {
				log.Warn().Err(err).Msg("failed to batch cache camps")
			}
		}
	}()

	return append(cachedCamps, dbCamps...), nil
}

// List retrieves camps with caching
func (a *CachedCampAdapter) List(ctx context.Context, filter repositories.CampFilter) ([]*entities.Camp, error) {
	cacheKey := filter.CacheKey()

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var camps []*entities.Camp
		if err := json.Unmarshal(cached, &camps); err == nil {
			return camps, nil
		}
		log.Warn().Msg("failed to unmarshal cached camp list, falling through")
	}

	camps, err := a.adapter.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(camps); err == nil {
			if err := a.cache.Set(bgCtx, cacheKey, data, campListTTL); err != nil {
				log.Warn().Err(err).Msg("failed to cache camp list")
			}
		}
	}()

	return camps, nil
}

// Create creates a camp and invalidates list caches
func (a *CachedCampAdapter) Create(ctx context.Context, camp *entities.Camp) error {
	if err := a.adapter.Create(ctx, camp); err != nil {
		return err
	}

	a.invalidateLists()
	return nil
}

// Update updates a camp and invalidates its caches
func (a *CachedCampAdapter) Update(ctx context.Context, camp *entities.Camp) error {
	if err := a.adapter.Update(ctx, camp); err != nil {
		return err
	}

	a.invalidateCamp(camp.ID)
	a.invalidateLists()
	return nil
}

// Delete deletes a camp and invalidates its caches
func (a *CachedCampAdapter) Delete(ctx context.Context, id string) error {
	if err := a.adapter.Delete(ctx, id); err != nil {
		return err
	}

	a.invalidateCamp(id)
	a.invalidateLists()
	return nil
}

func (a *CachedCampAdapter) invalidateCamp(id string) {
	go func() {
		bgCtx := context.Background()
		if err := a.cache.Delete(bgCtx, campCacheKey(id)); err != nil {
			log.Warn().Err(err).Str("camp_id", id).Msg("failed to invalidate camp cache")
		}
	}()
}

func (a *CachedCampAdapter) invalidateLists() {
	go func() {
		bgCtx := context.Background()
		if err := a.cache.DeletePattern(bgCtx, "camps:list:*"); err != nil {
			log.Warn().Err(err).Msg("failed to invalidate camp list cache")
		}
	}()
}
