package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campventure/backend/internal/adapters/memory"
	"github.com/campventure/backend/internal/domain/entities"
	"github.com/campventure/backend/internal/domain/repositories"
	apperrors "github.com/campventure/backend/pkg/errors"
)

func newCamp(id, state string, featured bool, createdAt time.Time) *entities.Camp {
	return &entities.Camp{
		ID:        id,
		Title:     "Camp " + id,
		Location:  entities.Location{State: state},
		Featured:  featured,
		IsActive:  true,
		CreatedAt: createdAt,
	}
}

func TestCatalog_CreateAndGetByID(t *testing.T) {
	ctx := context.Background()
	catalog := memory.NewCatalog()

	camp := newCamp("c1", "Himachal Pradesh", false, time.Now())
	require.NoError(t, catalog.Create(ctx, camp))

	got, err := catalog.GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "c1", got.ID)

	// Stored copy must be isolated from caller mutations
	got.Title = "mutated"
	again, err := catalog.GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Camp c1", again.Title)
}

func TestCatalog_CreateDuplicateFails(t *testing.T) {
	ctx := context.Background()
	camp := newCamp("c1", "Kerala", false, time.Now())
	catalog := memory.NewCatalogWith(camp)

	err := catalog.Create(ctx, camp)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeConflict, apperrors.TypeOf(err))
}

func TestCatalog_GetByIDNotFound(t *testing.T) {
	catalog := memory.NewCatalog()

	_, err := catalog.GetByID(context.Background(), "missing")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestCatalog_GetByIDsSkipsMissing(t *testing.T) {
	ctx := context.Background()
	catalog := memory.NewCatalogWith(
		newCamp("c1", "Kerala", false, time.Now()),
		newCamp("c2", "Goa", false, time.Now()),
	)

	camps, err := catalog.GetByIDs(ctx, []string{"c2", "missing", "c1"})
	require.NoError(t, err)
	assert.Len(t, camps, 2)
}

func TestCatalog_DeleteIsSoft(t *testing.T) {
	ctx := context.Background()
	catalog := memory.NewCatalogWith(newCamp("c1", "Kerala", false, time.Now()))

	require.NoError(t, catalog.Delete(ctx, "c1"))

	_, err := catalog.GetByID(ctx, "c1")
	assert.True(t, apperrors.IsNotFound(err))

	// Inactive camps surface when explicitly requested
	inactive := false
	camps, err := catalog.List(ctx, repositories.CampFilter{IsActive: &inactive})
	require.NoError(t, err)
	assert.Len(t, camps, 1)
}

func TestCatalog_ListFiltersAndOrders(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	catalog := memory.NewCatalogWith(
		newCamp("old", "Kerala", false, base),
		newCamp("mid", "Goa", true, base.AddDate(0, 0, 1)),
		newCamp("new", "Kerala", false, base.AddDate(0, 0, 2)),
	)

	all, err := catalog.List(ctx, repositories.CampFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "new", all[0].ID)
	assert.Equal(t, "old", all[2].ID)

	kerala, err := catalog.List(ctx, repositories.CampFilter{State: "Kerala"})
	require.NoError(t, err)
	assert.Len(t, kerala, 2)

	featured, err := catalog.List(ctx, repositories.CampFilter{FeaturedOnly: true})
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.Equal(t, "mid", featured[0].ID)
}

func TestCatalog_ListPagination(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	catalog := memory.NewCatalogWith(
		newCamp("a", "Goa", false, base),
		newCamp("b", "Goa", false, base.AddDate(0, 0, 1)),
		newCamp("c", "Goa", false, base.AddDate(0, 0, 2)),
	)

	page, err := catalog.List(ctx, repositories.CampFilter{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "b", page[0].ID)
	assert.Equal(t, "a", page[1].ID)

	empty, err := catalog.List(ctx, repositories.CampFilter{Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestCatalog_UpdateMissingCampFails(t *testing.T) {
	catalog := memory.NewCatalog()

	err := catalog.Update(context.Background(), newCamp("ghost", "Goa", false, time.Now()))
	assert.True(t, apperrors.IsNotFound(err))
}
