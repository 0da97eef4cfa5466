package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/campventure/backend/internal/domain/entities"
	"github.com/campventure/backend/internal/domain/providers"
	"github.com/campventure/backend/internal/domain/repositories"
)

// CampService handles business logic for camps: persistence, search
// indexing, and real-time event publication.
type CampService struct {
	repo       repositories.CampRepository
	searchRepo repositories.CampSearchRepository
	eventBus   providers.EventBus
}

// NewCampService creates a new camp service. searchRepo and eventBus may be
// nil; the service degrades to database-only behavior without them.
func NewCampService(repo repositories.CampRepository, searchRepo repositories.CampSearchRepository, eventBus providers.EventBus) *CampService {
	return &CampService{
		repo:       repo,
		searchRepo: searchRepo,
		eventBus:   eventBus,
	}
}

// Create creates a new camp, indexes it, and publishes a created event
func (s *CampService) Create(ctx context.Context, camp *entities.Camp) error {
	if camp.ID == "" {
		camp.ID = uuid.NewString()
	}
	now := time.Now()
	if camp.CreatedAt.IsZero() {
		camp.CreatedAt = now
	}
	camp.UpdatedAt = now
	camp.IsActive = true

	if err := s.repo.Create(ctx, camp); err != nil {
		return err
	}

	// Index failures do not fail the request (eventual consistency)
	if s.searchRepo != nil {
		if err := s.searchRepo.Index(ctx, camp); err != nil {
			log.Warn().Err(err).Str("camp_id", camp.ID).Msg("failed to index camp")
		}
	}

	s.publish(ctx, camp, entities.CampEventTypeCreated, nil)
	return nil
}

// GetByID retrieves a camp by ID
func (s *CampService) GetByID(ctx context.Context, id string) (*entities.Camp, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByIDs retrieves multiple camps by their IDs
func (s *CampService) GetByIDs(ctx context.Context, ids []string) ([]*entities.Camp, error) {
	return s.repo.GetByIDs(ctx, ids)
}

// Update updates a camp, reindexes it, and publishes an updated event
func (s *CampService) Update(ctx context.Context, camp *entities.Camp, changedFields map[string]interface{}) error {
	camp.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, camp); err != nil {
		return err
	}

	if s.searchRepo != nil {
		if err := s.searchRepo.Index(ctx, camp); err != nil {
			log.Warn().Err(err).Str("camp_id", camp.ID).Msg("failed to update camp index")
		}
	}

	eventType := entities.CampEventTypeUpdated
	if _, ok := changedFields["availability"]; ok {
		eventType = entities.CampEventTypeAvailabilityChanged
	}
	s.publish(ctx, camp, eventType, changedFields)
	return nil
}

// Delete soft-deletes a camp, removes it from the index, and publishes a
// deleted event.
func (s *CampService) Delete(ctx context.Context, id string) error {
	camp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if s.searchRepo != nil {
		if err := s.searchRepo.Delete(ctx, id); err != nil {
			log.Warn().Err(err).Str("camp_id", id).Msg("failed to delete camp from index")
		}
	}

	s.publish(ctx, camp, entities.CampEventTypeDeleted, nil)
	return nil
}

// List retrieves camps with filters
func (s *CampService) List(ctx context.Context, filter repositories.CampFilter) ([]*entities.Camp, error) {
	return s.repo.List(ctx, filter)
}

// Search searches camps through the search engine when available; hits come
// back as partial documents and are resolved to full records through the
// repository so cached copies are reused.
func (s *CampService) Search(ctx context.Context, params repositories.SearchParams) ([]*entities.Camp, error) {
	if s.searchRepo == nil {
		return s.repo.List(ctx, repositories.CampFilter{
			State:  params.State,
			Limit:  params.Limit,
			Offset: params.Offset,
		})
	}

	hits, err := s.searchRepo.Search(ctx, params)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(hits))
	for _, hit := range hits {
		ids = append(ids, hit.ID)
	}

	camps, err := s.repo.GetByIDs(ctx, ids)
	if err != nil {
		// Partial documents are still usable for result lists
		log.Warn().Err(err).Msg("failed to hydrate search hits, returning partial documents")
		return hits, nil
	}

	// Preserve search relevance order
	byID := make(map[string]*entities.Camp, len(camps))
	for _, c := range camps {
		byID[c.ID] = c
	}
	ordered := make([]*entities.Camp, 0, len(ids))
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			ordered = append(ordered, c)
		}
	}
	return ordered, nil
}

func (s *CampService) publish(ctx context.Context, camp *entities.Camp, eventType entities.CampEventType, changedFields map[string]interface{}) {
	if s.eventBus == nil {
		return
	}

	event := entities.NewCampEvent(camp.ID, eventType, camp.Location, changedFields)

	channels := []string{
		providers.EventChannelCampUpdates,
		providers.GetCampChannel(camp.ID),
	}
	if camp.Location.State != "" {
		channels = append(channels, providers.GetStateChannel(camp.Location.State))
	}

	for _, channel := range channels {
		if err := s.eventBus.Publish(ctx, channel, event); err != nil {
			log.Warn().Err(err).
				Str("camp_id", camp.ID).
				Str("channel", channel).
				Msg("failed to publish camp event")
		}
	}
}
