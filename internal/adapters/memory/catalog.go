package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/campventure/backend/internal/domain/entities"
	"github.com/campventure/backend/internal/domain/repositories"
	apperrors "github.com/campventure/backend/pkg/errors"
)

// Catalog is an in-memory CampRepository used for tests and local development.
// It hands out copies so callers can never mutate the stored records.
type Catalog struct {
	mu    sync.RWMutex
	camps map[string]*entities.Camp
}

// NewCatalog creates an empty in-memory catalog
func NewCatalog() *Catalog {
	return &Catalog{
		camps: make(map[string]*entities.Camp),
	}
}

// NewCatalogWith creates a catalog pre-populated with the given camps
func NewCatalogWith(camps ...*entities.Camp) *Catalog {
	c := NewCatalog()
	for _, camp := range camps {
		cp := *camp
		c.camps[camp.ID] = &cp
	}
	return c
}

var _ repositories.CampRepository = (*Catalog)(nil)

// Create creates a new camp
func (c *Catalog) Create(ctx context.Context, camp *entities.Camp) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.camps[camp.ID]; exists {
		return apperrors.NewConflictError(fmt.Sprintf("camp with id %s already exists", camp.ID))
	}

	cp := *camp
	c.camps[camp.ID] = &cp
	return nil
}

// GetByID retrieves a camp by ID
func (c *Catalog) GetByID(ctx context.Context, id string) (*entities.Camp, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	camp, ok := c.camps[id]
	if !ok || !camp.IsActive {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("camp with id %s not found", id))
	}

	cp := *camp
	return &cp, nil
}

// GetByIDs retrieves multiple camps by their IDs; missing ids are skipped
func (c *Catalog) GetByIDs(ctx context.Context, ids []string) ([]*entities.Camp, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	camps := make([]*entities.Camp, 0, len(ids))
	for _, id := range ids {
		if camp, ok := c.camps[id]; ok && camp.IsActive {
			cp := *camp
			camps = append(camps, &cp)
		}
	}
	return camps, nil
}

// Update updates a camp
func (c *Catalog) Update(ctx context.Context, camp *entities.Camp) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.camps[camp.ID]; !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("camp with id %s not found", camp.ID))
	}

	cp := *camp
	cp.UpdatedAt = time.Now()
	c.camps[camp.ID] = &cp
	return nil
}

// Delete deletes a camp (soft delete)
func (c *Catalog) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	camp, ok := c.camps[id]
	if !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("camp with id %s not found", id))
	}

	camp.IsActive = false
	camp.UpdatedAt = time.Now()
	return nil
}

// List retrieves camps with filters, newest first
func (c *Catalog) List(ctx context.Context, filter repositories.CampFilter) ([]*entities.Camp, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	camps := make([]*entities.Camp, 0, len(c.camps))
	for _, camp := range c.camps {
		if filter.State != "" && camp.Location.State != filter.State {
			continue
		}
		if filter.Difficulty != "" && camp.Difficulty != filter.Difficulty {
			continue
		}
		if filter.FeaturedOnly && !camp.Featured {
			continue
		}
		if filter.VerifiedOnly && !camp.Verified {
			continue
		}
		if filter.IsActive != nil {
			if camp.IsActive != *filter.IsActive {
				continue
			}
		} else if !camp.IsActive {
			continue
		}

		cp := *camp
		camps = append(camps, &cp)
	}

	sort.Slice(camps, func(i, j int) bool {
		return camps[i].CreatedAt.After(camps[j].CreatedAt)
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(camps) {
			return []*entities.Camp{}, nil
		}
		camps = camps[filter.Offset:]
	}
	if filter.Limit > 0 && len(camps) > filter.Limit {
		camps = camps[:filter.Limit]
	}

	return camps, nil
}
