package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/campventure/backend/internal/domain/providers"
	"github.com/campventure/backend/internal/domain/repositories"
)

// CacheWarmingService pre-populates the cache with frequently accessed camps
type CacheWarmingService struct {
	campRepo repositories.CampRepository
	cache    providers.CacheProvider
}

// NewCacheWarmingService creates a new cache warming service
func NewCacheWarmingService(campRepo repositories.CampRepository, cache providers.CacheProvider) *CacheWarmingService {
	return &CacheWarmingService{
		campRepo: campRepo,
		cache:    cache,
	}
}

// WarmCache warms the cache with frequently accessed data
func (s *CacheWarmingService) WarmCache(ctx context.Context) error {
	log.Info().Msg("starting cache warming")

	if err := s.warmFeaturedCamps(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to warm featured camps")
	}

	if err := s.warmCampLists(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to warm camp lists")
	}

	log.Info().Msg("cache warming completed")
	return nil
}

// warmFeaturedCamps caches featured camps individually, since they appear on
// the landing page and in most recommendation responses.
func (s *CacheWarmingService) warmFeaturedCamps(ctx context.Context) error {
	active := true
	camps, err := s.campRepo.List(ctx, repositories.CampFilter{
		FeaturedOnly: true,
		IsActive:     &active,
		Limit:        50,
	})
	if err != nil {
		return fmt.Errorf("failed to fetch featured camps: %w", err)
	}

	items := make(map[string][]byte)
	for _, camp := range camps {
		data, err := json.Marshal(camp)
		if err != nil {
			log.Warn().Err(err).Str("camp_id", camp.ID).Msg("failed to marshal camp")
			continue
		}
		items[fmt.Sprintf("camp:%s", camp.ID)] = data
	}

	if len(items) > 0 {
		if err := s.cache.SetMulti(ctx, items, 300); err != nil {
			return fmt.Errorf("failed to cache featured camps: %w", err)
		}
		log.Info().Int("count", len(items)).Msg("warmed cache with featured camps")
	}

	return nil
}

// warmCampLists caches the first pages of the default camp listing
func (s *CacheWarmingService) warmCampLists(ctx context.Context) error {
	active := true
	for page := 0; page < 3; page++ {
		filter := repositories.CampFilter{
			IsActive: &active,
			Limit:    20,
			Offset:   page * 20,
		}
		camps, err := s.campRepo.List(ctx, filter)
		if err != nil {
			log.Warn().Err(err).Int("page", page).Msg("failed to fetch camp list page")
			continue
		}

		data, err := json.Marshal(camps)
		if err != nil {
			log.Warn().Err(err).Int("page", page).Msg("failed to marshal camp list page")
			continue
		}

		if err := s.cache.Set(ctx, filter.CacheKey(), data, 180); err != nil {
			log.Warn().Err(err).Int("page", page).Msg("failed to cache camp list page")
		}
	}

	return nil
}

// StartPeriodicWarming warms the cache immediately and then on a ticker until
// the context is cancelled.
func (s *CacheWarmingService) StartPeriodicWarming(ctx context.Context, interval time.Duration) {
	if err := s.WarmCache(ctx); err != nil {
		log.Warn().Err(err).Msg("initial cache warming failed")
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("stopping cache warming service")
				return
			case <-ticker.C:
				if err := s.WarmCache(context.Background()); err != nil {
					log.Warn().Err(err).Msg("periodic cache warming failed")
				}
			}
		}
	}()
	log.Info().Dur("interval", interval).Msg("started periodic cache warming")
}

// InvalidateCache drops all cached camp data, useful after bulk imports
func (s *CacheWarmingService) InvalidateCache(ctx context.Context) error {
	patterns := []string{"camp:*", "camps:*"}

	for _, pattern := range patterns {
		if err := s.cache.DeletePattern(ctx, pattern); err != nil {
			log.Warn().Err(err).Str("pattern", pattern).Msg("failed to invalidate cache pattern")
		}
	}

	log.Info().Msg("cache invalidated")
	return nil
}
