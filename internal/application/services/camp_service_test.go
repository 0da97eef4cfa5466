package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campventure/backend/internal/adapters/memory"
	"github.com/campventure/backend/internal/application/services"
	"github.com/campventure/backend/internal/domain/entities"
	"github.com/campventure/backend/internal/domain/repositories"
)

// stubSearchRepo records index and delete calls
type stubSearchRepo struct {
	mu      sync.Mutex
	indexed []string
	deleted []string
	hits    []*entities.Camp
	failAll bool
}

func (s *stubSearchRepo) Index(ctx context.Context, camp *entities.Camp) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAll {
		return errors.New("index unavailable")
	}
	s.indexed = append(s.indexed, camp.ID)
	return nil
}

func (s *stubSearchRepo) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubSearchRepo) Search(ctx context.Context, params repositories.SearchParams) ([]*entities.Camp, error) {
	return s.hits, nil
}

// stubEventBus collects published events
type stubEventBus struct {
	mu     sync.Mutex
	events map[string][]*entities.CampEvent
}

func newStubEventBus() *stubEventBus {
	return &stubEventBus{events: map[string][]*entities.CampEvent{}}
}

func (b *stubEventBus) Publish(ctx context.Context, channel string, event *entities.CampEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events[channel] = append(b.events[channel], event)
	return nil
}

func (b *stubEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.CampEvent, error) {
	ch := make(chan *entities.CampEvent)
	close(ch)
	return ch, nil
}

func (b *stubEventBus) Unsubscribe(ctx context.Context, channel string) error { return nil }

func (b *stubEventBus) Close() error { return nil }

func TestCampService_CreateAssignsIDIndexesAndPublishes(t *testing.T) {
	ctx := context.Background()
	searchRepo := &stubSearchRepo{}
	bus := newStubEventBus()
	svc := services.NewCampService(memory.NewCatalog(), searchRepo, bus)

	camp := &entities.Camp{
		Title:    "Valley Camp",
		Location: entities.Location{Name: "Araku", State: "Andhra Pradesh"},
	}

	require.NoError(t, svc.Create(ctx, camp))

	assert.NotEmpty(t, camp.ID)
	assert.True(t, camp.IsActive)
	assert.False(t, camp.CreatedAt.IsZero())
	assert.Equal(t, []string{camp.ID}, searchRepo.indexed)

	updates := bus.events["camp:updates"]
	require.Len(t, updates, 1)
	assert.Equal(t, entities.CampEventTypeCreated, updates[0].EventType)
	assert.Len(t, bus.events["camp:"+camp.ID], 1)
	assert.Len(t, bus.events["state:Andhra Pradesh"], 1)
}

func TestCampService_CreateSurvivesIndexFailure(t *testing.T) {
	ctx := context.Background()
	searchRepo := &stubSearchRepo{failAll: true}
	svc := services.NewCampService(memory.NewCatalog(), searchRepo, nil)

	camp := &entities.Camp{Title: "Resilient Camp"}
	require.NoError(t, svc.Create(ctx, camp))

	// The camp is persisted even though indexing failed
	stored, err := svc.GetByID(ctx, camp.ID)
	require.NoError(t, err)
	assert.Equal(t, "Resilient Camp", stored.Title)
}

func TestCampService_UpdateAvailabilityEmitsDedicatedEvent(t *testing.T) {
	ctx := context.Background()
	bus := newStubEventBus()
	catalog := memory.NewCatalog()
	svc := services.NewCampService(catalog, nil, bus)

	camp := &entities.Camp{Title: "Slots Camp"}
	require.NoError(t, svc.Create(ctx, camp))

	require.NoError(t, svc.Update(ctx, camp, map[string]interface{}{
		"availability": []interface{}{},
	}))

	updates := bus.events["camp:updates"]
	require.Len(t, updates, 2)
	assert.Equal(t, entities.CampEventTypeAvailabilityChanged, updates[1].EventType)
}

func TestCampService_DeletePublishesDeletedEventAndDropsIndex(t *testing.T) {
	ctx := context.Background()
	searchRepo := &stubSearchRepo{}
	bus := newStubEventBus()
	svc := services.NewCampService(memory.NewCatalog(), searchRepo, bus)

	camp := &entities.Camp{Title: "Doomed Camp"}
	require.NoError(t, svc.Create(ctx, camp))
	require.NoError(t, svc.Delete(ctx, camp.ID))

	assert.Equal(t, []string{camp.ID}, searchRepo.deleted)

	updates := bus.events["camp:updates"]
	require.Len(t, updates, 2)
	assert.Equal(t, entities.CampEventTypeDeleted, updates[1].EventType)
}

func TestCampService_SearchHydratesHitsThroughRepository(t *testing.T) {
	ctx := context.Background()

	full := &entities.Camp{
		ID:          "camp-full",
		Title:       "Full Record Camp",
		Description: "Full description only the database has",
		IsActive:    true,
	}
	catalog := memory.NewCatalogWith(full)

	// Search hit is a partial document carrying just the ID and title
	searchRepo := &stubSearchRepo{hits: []*entities.Camp{{ID: "camp-full", Title: "Full Record Camp"}}}
	svc := services.NewCampService(catalog, searchRepo, nil)

	results, err := svc.Search(ctx, repositories.SearchParams{Query: "full"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Full description only the database has", results[0].Description)
}
