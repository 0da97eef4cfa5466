package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/campventure/backend/internal/application/services"
	"github.com/campventure/backend/internal/domain/entities"
	"github.com/campventure/backend/internal/domain/repositories"
	apperrors "github.com/campventure/backend/pkg/errors"
)

// CampHandler handles camp-related HTTP requests
type CampHandler struct {
	campService      *services.CampService
	discoveryService *services.DiscoveryService
}

// NewCampHandler creates a new camp handler
func NewCampHandler(campService *services.CampService, discoveryService *services.DiscoveryService) *CampHandler {
	return &CampHandler{
		campService:      campService,
		discoveryService: discoveryService,
	}
}

// GetCamp handles GET /api/camps/{id}
func (h *CampHandler) GetCamp(w http.ResponseWriter, r *http.Request) {
	campID := r.PathValue("id")
	if campID == "" {
		respondWithError(w, http.StatusBadRequest, "camp ID is required")
		return
	}

	camp, err := h.campService.GetByID(r.Context(), campID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, camp)
}

// ListCamps handles GET /api/camps. Filtering and sorting run in-process on
// the listed candidates.
func (h *CampHandler) ListCamps(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	limit := parseIntParam(query.Get("limit"), 30)
	offset := parseIntParam(query.Get("offset"), 0)

	active := true
	filter := repositories.CampFilter{
		State:        query.Get("state"),
		FeaturedOnly: query.Get("featured") == "true",
		VerifiedOnly: query.Get("verified") == "true",
		IsActive:     &active,
	}

	camps, err := h.campService.List(r.Context(), filter)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to list camps")
		return
	}

	filters := parseSearchFilters(query)
	sortBy := entities.SortKey(query.Get("sortBy"))
	camps = h.discoveryService.SearchCamps(camps, query.Get("q"), filters, sortBy)

	total := len(camps)
	camps = paginate(camps, limit, offset)

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"camps": camps,
		"count": len(camps),
		"total": total,
	})
}

// SearchCamps handles GET /api/camps/search using the full-text index, with
// in-process filtering and sorting applied to the hits.
func (h *CampHandler) SearchCamps(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	params := repositories.SearchParams{
		Query:  query.Get("q"),
		State:  query.Get("state"),
		Limit:  parseIntParam(query.Get("limit"), 30),
		Offset: parseIntParam(query.Get("offset"), 0),
	}
	if v := query.Get("minPrice"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			params.MinPrice = &f
		}
	}
	if v := query.Get("maxPrice"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			params.MaxPrice = &f
		}
	}

	camps, err := h.campService.Search(r.Context(), params)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to search camps")
		return
	}

	filters := parseSearchFilters(query)
	if !filters.IsZero() {
		camps = h.discoveryService.FilterCamps(camps, filters)
	}
	if sortBy := entities.SortKey(query.Get("sortBy")); sortBy != "" {
		camps = h.discoveryService.SortCamps(camps, sortBy)
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"camps": camps,
		"count": len(camps),
	})
}

// CreateCamp handles POST /api/camps
func (h *CampHandler) CreateCamp(w http.ResponseWriter, r *http.Request) {
	var camp entities.Camp
	if err := json.NewDecoder(r.Body).Decode(&camp); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(camp.Title) == "" {
		respondWithError(w, http.StatusBadRequest, "camp title is required")
		return
	}

	if err := h.campService.Create(r.Context(), &camp); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, camp)
}

// UpdateCamp handles PATCH /api/camps/{id}
func (h *CampHandler) UpdateCamp(w http.ResponseWriter, r *http.Request) {
	campID := r.PathValue("id")
	if campID == "" {
		respondWithError(w, http.StatusBadRequest, "camp ID is required")
		return
	}

	var changedFields map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&changedFields); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	camp, err := h.campService.GetByID(r.Context(), campID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	if err := applyCampPatch(camp, changedFields); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.campService.Update(r.Context(), camp, changedFields); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, camp)
}

// DeleteCamp handles DELETE /api/camps/{id}
func (h *CampHandler) DeleteCamp(w http.ResponseWriter, r *http.Request) {
	campID := r.PathValue("id")
	if campID == "" {
		respondWithError(w, http.StatusBadRequest, "camp ID is required")
		return
	}

	if err := h.campService.Delete(r.Context(), campID); err != nil {
		respondWithAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// applyCampPatch merges a sparse JSON patch into the camp by round-tripping
// through JSON, which keeps field names aligned with the API schema.
func applyCampPatch(camp *entities.Camp, fields map[string]interface{}) error {
	// ID and timestamps are never client-writable
	delete(fields, "id")
	delete(fields, "created_at")
	delete(fields, "updated_at")

	data, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, camp)
}

// parseSearchFilters builds SearchFilters from common query parameters
func parseSearchFilters(query map[string][]string) entities.SearchFilters {
	get := func(key string) string {
		if v, ok := query[key]; ok && len(v) > 0 {
			return v[0]
		}
		return ""
	}
	getAll := func(key string) []string {
		var out []string
		for _, raw := range query[key] {
			for _, part := range strings.Split(raw, ",") {
				if part = strings.TrimSpace(part); part != "" {
					out = append(out, part)
				}
			}
		}
		return out
	}

	filters := entities.SearchFilters{
		Location:     get("location"),
		Activities:   getAll("activities"),
		Amenities:    getAll("amenities"),
		VerifiedOnly: get("verifiedOnly") == "true",
	}

	for _, d := range getAll("difficulty") {
		filters.Difficulty = append(filters.Difficulty, entities.Difficulty(d))
	}
	for _, s := range getAll("seasons") {
		filters.Seasons = append(filters.Seasons, entities.Season(s))
	}

	var priceRange entities.PriceRange
	if v := get("minPrice"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			priceRange.Min = &f
		}
	}
	if v := get("maxPrice"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			priceRange.Max = &f
		}
	}
	if priceRange.Min != nil || priceRange.Max != nil {
		filters.PriceRange = &priceRange
	}

	if v := get("groupSize"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filters.GroupSize = &n
		}
	}

	var duration entities.DurationRange
	if v := get("minDays"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			duration.Min = &n
		}
	}
	if v := get("maxDays"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			duration.Max = &n
		}
	}
	if duration.Min != nil || duration.Max != nil {
		filters.Duration = &duration
	}

	if v := get("minRating"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filters.MinRating = &f
		}
	}

	return filters
}

func paginate(camps []*entities.Camp, limit, offset int) []*entities.Camp {
	if offset >= len(camps) {
		return []*entities.Camp{}
	}
	camps = camps[offset:]
	if limit > 0 && len(camps) > limit {
		camps = camps[:limit]
	}
	return camps
}

func parseIntParam(value string, fallback int) int {
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

// Helper functions shared by all handlers

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

func respondWithAppError(w http.ResponseWriter, err error) {
	switch apperrors.TypeOf(err) {
	case apperrors.ErrorTypeNotFound:
		respondWithError(w, http.StatusNotFound, err.Error())
	case apperrors.ErrorTypeValidation:
		respondWithError(w, http.StatusBadRequest, err.Error())
	case apperrors.ErrorTypeConflict:
		respondWithError(w, http.StatusConflict, err.Error())
	default:
		respondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}
