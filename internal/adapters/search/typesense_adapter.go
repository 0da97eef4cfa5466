package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"

	"github.com/campventure/backend/internal/domain/entities"
	"github.com/campventure/backend/internal/domain/repositories"
	tsclient "github.com/campventure/backend/internal/infrastructure/clients/typesense"
)

const collectionName = tsclient.CampsCollection

// TypesenseAdapter implements camp full-text search using Typesense
type TypesenseAdapter struct {
	client *tsclient.Client
}

var _ repositories.CampSearchRepository = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// InitSchema ensures the camps collection exists
func (a *TypesenseAdapter) InitSchema(ctx context.Context) error {
	_, err := a.client.Client().Collection(collectionName).Retrieve(ctx)
	if err == nil {
		return nil // Collection exists
	}

	schema := &api.CollectionSchema{
		Name: collectionName,
		Fields: []api.Field{
			{Name: "id", Type: "string"},
			{Name: "title", Type: "string"},
			{Name: "description", Type: "string"},
			{Name: "location_name", Type: "string"},
			{Name: "state", Type: "string", Facet: pointer.True()},
			{Name: "difficulty", Type: "string", Facet: pointer.True()},
			{Name: "activities", Type: "string[]"},
			{Name: "tags", Type: "string[]"},
			{Name: "base_price", Type: "float", Facet: pointer.True()},
			{Name: "rating", Type: "float"},
			{Name: "review_count", Type: "int32"},
			{Name: "featured", Type: "bool"},
			{Name: "verified", Type: "bool"},
			{Name: "is_active", Type: "bool"},
			{Name: "image_url", Type: "string", Optional: pointer.True()},
			{Name: "created_at", Type: "int64"},
		},
		DefaultSortingField: pointer.String("created_at"),
	}

	if _, err := a.client.Client().Collections().Create(ctx, schema); err != nil {
		return fmt.Errorf("failed to create typesense collection: %w", err)
	}

	return nil
}

// Index indexes a camp
func (a *TypesenseAdapter) Index(ctx context.Context, camp *entities.Camp) error {
	document := map[string]interface{}{
		"id":            camp.ID,
		"title":         camp.Title,
		"description":   camp.Description,
		"location_name": camp.Location.Name,
		"state":         camp.Location.State,
		"difficulty":    string(camp.Difficulty),
		"activities":    camp.ActivityNames(),
		"tags":          camp.Tags,
		"base_price":    camp.Pricing.BasePrice,
		"rating":        camp.Rating.Average,
		"review_count":  camp.Rating.Count,
		"featured":      camp.Featured,
		"verified":      camp.Verified,
		"is_active":     camp.IsActive,
		"created_at":    camp.CreatedAt.Unix(),
	}

	if img := camp.PrimaryImage(); img != nil {
		document["image_url"] = img.URL
	}

	if _, err := a.client.Client().Collection(collectionName).Documents().Upsert(ctx, document); err != nil {
		return fmt.Errorf("failed to index camp: %w", err)
	}

	return nil
}

// Delete removes a camp from the index
func (a *TypesenseAdapter) Delete(ctx context.Context, id string) error {
	if _, err := a.client.Client().Collection(collectionName).Document(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete camp from index: %w", err)
	}
	return nil
}

// Search searches camps by text query. Results are partial documents; callers
// needing the full record should resolve IDs through the CampRepository.
func (a *TypesenseAdapter) Search(ctx context.Context, params repositories.SearchParams) ([]*entities.Camp, error) {
	query := params.Query
	if strings.TrimSpace(query) == "" {
		query = "*"
	}

	filters := []string{"is_active:=true"}
	if params.State != "" {
		filters = append(filters, fmt.Sprintf("state:=%s", params.State))
	}
	if params.MinPrice != nil {
		filters = append(filters, fmt.Sprintf("base_price:>=%f", *params.MinPrice))
	}
	if params.MaxPrice != nil {
		filters = append(filters, fmt.Sprintf("base_price:<=%f", *params.MaxPrice))
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 30
	}
	page := 1
	if params.Offset > 0 {
		page = params.Offset/limit + 1
	}

	searchParams := &api.SearchCollectionParams{
		Q:        pointer.String(query),
		QueryBy:  pointer.String("title,description,location_name,activities,tags"),
		FilterBy: pointer.String(strings.Join(filters, " && ")),
		Page:     pointer.Int(page),
		PerPage:  pointer.Int(limit),
	}

	result, err := a.client.Client().Collection(collectionName).Documents().Search(ctx, searchParams)
	if err != nil {
		return nil, fmt.Errorf("failed to search camps: %w", err)
	}

	camps := []*entities.Camp{}
	if result.Hits == nil {
		return camps, nil
	}

	for _, hit := range *result.Hits {
		doc := *hit.Document
		camp := &entities.Camp{}

		if v, ok := doc["id"].(string); ok {
			camp.ID = v
		}
		if v, ok := doc["title"].(string); ok {
			camp.Title = v
		}
		if v, ok := doc["description"].(string); ok {
			camp.Description = v
		}
		if v, ok := doc["location_name"].(string); ok {
			camp.Location.Name = v
		}
		if v, ok := doc["state"].(string); ok {
			camp.Location.State = v
		}
		if v, ok := doc["difficulty"].(string); ok {
			camp.Difficulty = entities.Difficulty(v)
		}
		if v, ok := doc["base_price"].(float64); ok {
			camp.Pricing.BasePrice = v
		}
		if v, ok := doc["rating"].(float64); ok {
			camp.Rating.Average = v
		}
		if v, ok := doc["review_count"].(float64); ok {
			camp.Rating.Count = int(v)
		}
		if v, ok := doc["featured"].(bool); ok {
			camp.Featured = v
		}
		if v, ok := doc["verified"].(bool); ok {
			camp.Verified = v
		}
		if v, ok := doc["is_active"].(bool); ok {
			camp.IsActive = v
		}
		if v, ok := doc["image_url"].(string); ok && v != "" {
			camp.Images = []entities.Image{{URL: v, IsPrimary: true}}
		}

		camps = append(camps, camp)
	}

	return camps, nil
}
