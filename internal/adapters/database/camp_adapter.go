package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/lib/pq"

	"github.com/campventure/backend/internal/domain/entities"
	"github.com/campventure/backend/internal/domain/repositories"
	"github.com/campventure/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/campventure/backend/pkg/errors"
)

// campColumns is the canonical column list for scans, keep in sync with scanCamp.
var campColumns = []interface{}{
	"id", "title", "description", "short_description",
	"location_name", "state", "latitude", "longitude", "organizer_id",
	"images", "activities", "amenities", "pricing", "availability",
	"difficulty", "group_min", "group_max", "duration_days", "duration_nights",
	"best_time_to_visit", "rating", "review_count",
	"featured", "verified", "tags", "is_active", "created_at", "updated_at",
}

// CampAdapter implements CampRepository backed by PostgreSQL
type CampAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewCampAdapter creates a new camp adapter
func NewCampAdapter(client *postgres.Client) repositories.CampRepository {
	return &CampAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new camp
func (a *CampAdapter) Create(ctx context.Context, camp *entities.Camp) error {
	record, err := campRecord(camp)
	if err != nil {
		return apperrors.NewInternalError("failed to encode camp", err)
	}

	query, args, err := a.db.Insert("camps").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create camp", err)
	}

	return nil
}

// GetByID retrieves a camp by ID
func (a *CampAdapter) GetByID(ctx context.Context, id string) (*entities.Camp, error) {
	query, args, err := a.db.Select(campColumns...).
		From("camps").
		Where(goqu.Ex{"id": id, "is_active": true}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	camp, err := scanCamp(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("camp with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get camp", err)
	}

	return camp, nil
}

// GetByIDs retrieves multiple camps by their IDs
func (a *CampAdapter) GetByIDs(ctx context.Context, ids []string) ([]*entities.Camp, error) {
	if len(ids) == 0 {
		return []*entities.Camp{}, nil
	}

	query, args, err := a.db.Select(campColumns...).
		From("camps").
		Where(goqu.Ex{"id": ids}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	return a.queryCamps(ctx, query, args...)
}

// Update updates a camp
func (a *CampAdapter) Update(ctx context.Context, camp *entities.Camp) error {
	camp.UpdatedAt = time.Now()

	record, err := campRecord(camp)
	if err != nil {
		return apperrors.NewInternalError("failed to encode camp", err)
	}
	delete(record, "id")
	delete(record, "created_at")

	query, args, err := a.db.Update("camps").
		Set(record).
		Where(goqu.Ex{"id": camp.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update camp", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("camp with id %s not found", camp.ID))
	}

	return nil
}

// Delete deletes a camp (soft delete)
func (a *CampAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Update("camps").
		Set(goqu.Record{"is_active": false, "updated_at": time.Now()}).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete camp", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("camp with id %s not found", id))
	}

	return nil
}

// List retrieves camps with filters
func (a *CampAdapter) List(ctx context.Context, filter repositories.CampFilter) ([]*entities.Camp, error) {
	ds := a.db.Select(campColumns...).From("camps")

	where := goqu.Ex{}
	if filter.State != "" {
		where["state"] = filter.State
	}
	if filter.Difficulty != "" {
		where["difficulty"] = string(filter.Difficulty)
	}
	if filter.FeaturedOnly {
		where["featured"] = true
	}
	if filter.VerifiedOnly {
		where["verified"] = true
	}
	if filter.IsActive != nil {
		where["is_active"] = *filter.IsActive
	}
	if len(where) > 0 {
		ds = ds.Where(where)
	}

	ds = ds.Order(goqu.C("created_at").Desc())
	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}
	if filter.Offset > 0 {
		ds = ds.Offset(uint(filter.Offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	return a.queryCamps(ctx, query, args...)
}

func (a *CampAdapter) queryCamps(ctx context.Context, query string, args ...interface{}) ([]*entities.Camp, error) {
	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query camps", err)
	}
	defer rows.Close()

	camps := []*entities.Camp{}
	for rows.Next() {
		camp, err := scanCamp(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan camp", err)
		}
		camps = append(camps, camp)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating camps", err)
	}

	return camps, nil
}

// campRecord converts a camp to a goqu record. Nested structures go to JSONB
// columns, flat string lists to Postgres arrays.
func campRecord(camp *entities.Camp) (goqu.Record, error) {
	images, err := json.Marshal(camp.Images)
	if err != nil {
		return nil, err
	}
	activities, err := json.Marshal(camp.Activities)
	if err != nil {
		return nil, err
	}
	pricing, err := json.Marshal(camp.Pricing)
	if err != nil {
		return nil, err
	}
	availability, err := json.Marshal(camp.Availability)
	if err != nil {
		return nil, err
	}

	seasons := make([]string, len(camp.BestTimeToVisit))
	for i, s := range camp.BestTimeToVisit {
		seasons[i] = string(s)
	}

	return goqu.Record{
		"id":                 camp.ID,
		"title":              camp.Title,
		"description":        camp.Description,
		"short_description":  sql.NullString{String: camp.ShortDescription, Valid: camp.ShortDescription != ""},
		"location_name":      camp.Location.Name,
		"state":              camp.Location.State,
		"latitude":           camp.Location.Latitude,
		"longitude":          camp.Location.Longitude,
		"organizer_id":       camp.OrganizerID,
		"images":             images,
		"activities":         activities,
		"amenities":          pq.Array(camp.Amenities),
		"pricing":            pricing,
		"availability":       availability,
		"difficulty":         string(camp.Difficulty),
		"group_min":          camp.GroupSize.Min,
		"group_max":          camp.GroupSize.Max,
		"duration_days":      camp.Duration.Days,
		"duration_nights":    camp.Duration.Nights,
		"best_time_to_visit": pq.Array(seasons),
		"rating":             camp.Rating.Average,
		"review_count":       camp.Rating.Count,
		"featured":           camp.Featured,
		"verified":           camp.Verified,
		"tags":               pq.Array(camp.Tags),
		"is_active":          camp.IsActive,
		"created_at":         camp.CreatedAt,
		"updated_at":         camp.UpdatedAt,
	}, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCamp(row rowScanner) (*entities.Camp, error) {
	camp := &entities.Camp{}
	var (
		shortDescription               sql.NullString
		images, activities             []byte
		pricing, availability          []byte
		difficulty                     string
		seasons                        []string
		amenities, tags                []string
	)

	err := row.Scan(
		&camp.ID,
		&camp.Title,
		&camp.Description,
		&shortDescription,
		&camp.Location.Name,
		&camp.Location.State,
		&camp.Location.Latitude,
		&camp.Location.Longitude,
		&camp.OrganizerID,
		&images,
		&activities,
		pq.Array(&amenities),
		&pricing,
		&availability,
		&difficulty,
		&camp.GroupSize.Min,
		&camp.GroupSize.Max,
		&camp.Duration.Days,
		&camp.Duration.Nights,
		pq.Array(&seasons),
		&camp.Rating.Average,
		&camp.Rating.Count,
		&camp.Featured,
		&camp.Verified,
		pq.Array(&tags),
		&camp.IsActive,
		&camp.CreatedAt,
		&camp.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	camp.ShortDescription = shortDescription.String
	camp.Difficulty = entities.Difficulty(difficulty)
	camp.Amenities = amenities
	camp.Tags = tags

	camp.BestTimeToVisit = make([]entities.Season, len(seasons))
	for i, s := range seasons {
		camp.BestTimeToVisit[i] = entities.Season(s)
	}

	if len(images) > 0 {
		if err := json.Unmarshal(images, &camp.Images); err != nil {
			return nil, fmt.Errorf("failed to decode images: %w", err)
		}
	}
	if len(activities) > 0 {
		if err := json.Unmarshal(activities, &camp.Activities); err != nil {
			return nil, fmt.Errorf("failed to decode activities: %w", err)
		}
	}
	if len(pricing) > 0 {
		if err := json.Unmarshal(pricing, &camp.Pricing); err != nil {
			return nil, fmt.Errorf("failed to decode pricing: %w", err)
		}
	}
	if len(availability) > 0 {
		if err := json.Unmarshal(availability, &camp.Availability); err != nil {
			return nil, fmt.Errorf("failed to decode availability: %w", err)
		}
	}

	return camp, nil
}
