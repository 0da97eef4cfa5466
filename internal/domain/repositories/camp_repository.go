package repositories

import (
	"context"
	"fmt"
	"strconv"

	"github.com/campventure/backend/internal/domain/entities"
)

// CampRepository defines the interface for camp catalog data operations
type CampRepository interface {
	// Create creates a new camp
	Create(ctx context.Context, camp *entities.Camp) error

	// GetByID retrieves a camp by ID
	GetByID(ctx context.Context, id string) (*entities.Camp, error)

	// GetByIDs retrieves multiple camps by their IDs
	GetByIDs(ctx context.Context, ids []string) ([]*entities.Camp, error)

	// Update updates a camp
	Update(ctx context.Context, camp *entities.Camp) error

	// Delete deletes a camp (soft delete)
	Delete(ctx context.Context, id string) error

	// List retrieves camps with filters
	List(ctx context.Context, filter CampFilter) ([]*entities.Camp, error)
}

// CampSearchRepository defines the interface for camp full-text search
// operations (e.g. Typesense)
type CampSearchRepository interface {
	// Search searches camps by text query
	Search(ctx context.Context, params SearchParams) ([]*entities.Camp, error)

	// Index indexes a camp
	Index(ctx context.Context, camp *entities.Camp) error

	// Delete removes a camp from the index
	Delete(ctx context.Context, id string) error
}

// CampFilter defines filters for listing camps
type CampFilter struct {
	State        string
	Difficulty   entities.Difficulty
	FeaturedOnly bool
	VerifiedOnly bool
	IsActive     *bool
	Limit        int
	Offset       int
}

// CacheKey identifies one filter combination for list caching. The cached
// repository adapter and the cache warmer must both derive keys from here so
// warmed entries are actually hit.
func (f CampFilter) CacheKey() string {
	active := "any"
	if f.IsActive != nil {
		active = strconv.FormatBool(*f.IsActive)
	}
	return fmt.Sprintf("camps:list:%s:%s:%s:%t:%t:%d:%d",
		f.State, f.Difficulty, active,
		f.FeaturedOnly, f.VerifiedOnly, f.Limit, f.Offset)
}

// SearchParams defines parameters for full-text camp search
type SearchParams struct {
	Query    string
	State    string
	MinPrice *float64
	MaxPrice *float64
	Limit    int
	Offset   int
}
