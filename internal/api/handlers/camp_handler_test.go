package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campventure/backend/internal/adapters/memory"
	"github.com/campventure/backend/internal/api/handlers"
	"github.com/campventure/backend/internal/application/services"
	"github.com/campventure/backend/internal/domain/entities"
)

func testCamps() []*entities.Camp {
	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	return []*entities.Camp{
		{
			ID:       "camp-a",
			Title:    "Budget Lakeside Camp",
			Location: entities.Location{Name: "Pawna", State: "Maharashtra"},
			Activities: []entities.Activity{
				{Name: "Kayaking"},
			},
			Pricing:    entities.Pricing{BasePrice: 1200, Currency: "INR"},
			Difficulty: entities.DifficultyEasy,
			GroupSize:  entities.GroupSize{Min: 2, Max: 20},
			Duration:   entities.Duration{Days: 2, Nights: 1},
			Rating:     entities.Rating{Average: 4.1, Count: 120},
			IsActive:   true,
			CreatedAt:  base,
		},
		{
			ID:       "camp-b",
			Title:    "Himalayan Trekking Camp",
			Location: entities.Location{Name: "Triund", State: "Himachal Pradesh"},
			Activities: []entities.Activity{
				{Name: "Trekking"},
			},
			Pricing:    entities.Pricing{BasePrice: 3600, Currency: "INR"},
			Difficulty: entities.DifficultyModerate,
			GroupSize:  entities.GroupSize{Min: 4, Max: 12},
			Duration:   entities.Duration{Days: 3, Nights: 2},
			Rating:     entities.Rating{Average: 4.7, Count: 90},
			Featured:   true,
			Verified:   true,
			IsActive:   true,
			CreatedAt:  base.AddDate(0, 0, 5),
		},
	}
}

func newTestHandler(camps ...*entities.Camp) (*handlers.CampHandler, *memory.Catalog) {
	catalog := memory.NewCatalogWith(camps...)
	campService := services.NewCampService(catalog, nil, nil)
	return handlers.NewCampHandler(campService, services.NewDiscoveryService()), catalog
}

func newTestMux(h *handlers.CampHandler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/camps", h.ListCamps)
	mux.HandleFunc("GET /api/camps/search", h.SearchCamps)
	mux.HandleFunc("GET /api/camps/{id}", h.GetCamp)
	mux.HandleFunc("POST /api/camps", h.CreateCamp)
	mux.HandleFunc("PATCH /api/camps/{id}", h.UpdateCamp)
	mux.HandleFunc("DELETE /api/camps/{id}", h.DeleteCamp)
	return mux
}

func TestGetCamp_ReturnsCamp(t *testing.T) {
	h, _ := newTestHandler(testCamps()...)
	mux := newTestMux(h)

	req := httptest.NewRequest(http.MethodGet, "/api/camps/camp-a", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var camp entities.Camp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &camp))
	assert.Equal(t, "camp-a", camp.ID)
	assert.Equal(t, "Budget Lakeside Camp", camp.Title)
}

func TestGetCamp_NotFound(t *testing.T) {
	h, _ := newTestHandler(testCamps()...)
	mux := newTestMux(h)

	req := httptest.NewRequest(http.MethodGet, "/api/camps/nope", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListCamps_ReturnsAllActive(t *testing.T) {
	h, _ := newTestHandler(testCamps()...)
	mux := newTestMux(h)

	req := httptest.NewRequest(http.MethodGet, "/api/camps", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Camps []*entities.Camp `json:"camps"`
		Count int              `json:"count"`
		Total int              `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Count)
	assert.Equal(t, 2, body.Total)
}

func TestListCamps_FiltersAndSorts(t *testing.T) {
	h, _ := newTestHandler(testCamps()...)
	mux := newTestMux(h)

	req := httptest.NewRequest(http.MethodGet, "/api/camps?difficulty=moderate&sortBy=price-low", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Camps []*entities.Camp `json:"camps"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Camps, 1)
	assert.Equal(t, "camp-b", body.Camps[0].ID)
}

func TestListCamps_QueryParamFilters(t *testing.T) {
	h, _ := newTestHandler(testCamps()...)
	mux := newTestMux(h)

	req := httptest.NewRequest(http.MethodGet, "/api/camps?q=trekking", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Camps []*entities.Camp `json:"camps"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Camps, 1)
	assert.Equal(t, "camp-b", body.Camps[0].ID)
}

func TestListCamps_Pagination(t *testing.T) {
	h, _ := newTestHandler(testCamps()...)
	mux := newTestMux(h)

	req := httptest.NewRequest(http.MethodGet, "/api/camps?limit=1&offset=1", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Camps []*entities.Camp `json:"camps"`
		Count int              `json:"count"`
		Total int              `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Count)
	assert.Equal(t, 2, body.Total)
}

func TestCreateCamp_PersistsAndReturnsCreated(t *testing.T) {
	h, catalog := newTestHandler()
	mux := newTestMux(h)

	payload := map[string]interface{}{
		"title":       "New Forest Camp",
		"description": "Quiet forest camping",
		"location":    map[string]interface{}{"name": "Wayanad", "state": "Kerala"},
		"pricing":     map[string]interface{}{"base_price": 2500, "currency": "INR"},
		"difficulty":  "easy",
		"group_size":  map[string]interface{}{"min": 2, "max": 10},
	}
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/api/camps", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var created entities.Camp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.True(t, created.IsActive)

	stored, err := catalog.GetByID(req.Context(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Forest Camp", stored.Title)
}

func TestCreateCamp_RejectsMissingTitle(t *testing.T) {
	h, _ := newTestHandler()
	mux := newTestMux(h)

	req := httptest.NewRequest(http.MethodPost, "/api/camps", bytes.NewReader([]byte(`{"description":"no title"}`)))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateCamp_AppliesSparsePatch(t *testing.T) {
	h, catalog := newTestHandler(testCamps()...)
	mux := newTestMux(h)

	patch := []byte(`{"title":"Renamed Camp","featured":true}`)
	req := httptest.NewRequest(http.MethodPatch, "/api/camps/camp-a", bytes.NewReader(patch))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	stored, err := catalog.GetByID(req.Context(), "camp-a")
	require.NoError(t, err)
	assert.Equal(t, "Renamed Camp", stored.Title)
	assert.True(t, stored.Featured)
	// Untouched fields survive the patch
	assert.Equal(t, 1200.0, stored.Pricing.BasePrice)
}

func TestUpdateCamp_CannotOverrideID(t *testing.T) {
	h, catalog := newTestHandler(testCamps()...)
	mux := newTestMux(h)

	patch := []byte(`{"id":"hijacked","title":"Still Camp A"}`)
	req := httptest.NewRequest(http.MethodPatch, "/api/camps/camp-a", bytes.NewReader(patch))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	stored, err := catalog.GetByID(req.Context(), "camp-a")
	require.NoError(t, err)
	assert.Equal(t, "Still Camp A", stored.Title)
}

func TestDeleteCamp_RemovesFromListing(t *testing.T) {
	h, _ := newTestHandler(testCamps()...)
	mux := newTestMux(h)

	req := httptest.NewRequest(http.MethodDelete, "/api/camps/camp-a", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)

	listReq := httptest.NewRequest(http.MethodGet, "/api/camps", nil)
	listRec := httptest.NewRecorder()
	mux.ServeHTTP(listRec, listReq)

	var body struct {
		Camps []*entities.Camp `json:"camps"`
	}
	require.NoError(t, json.Unmarshal(listRec.Body.Bytes(), &body))
	require.Len(t, body.Camps, 1)
	assert.Equal(t, "camp-b", body.Camps[0].ID)
}

func TestSearchCamps_FallsBackToListWithoutSearchIndex(t *testing.T) {
	h, _ := newTestHandler(testCamps()...)
	mux := newTestMux(h)

	req := httptest.NewRequest(http.MethodGet, "/api/camps/search?state=Himachal+Pradesh", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Camps []*entities.Camp `json:"camps"`
		Count int              `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 1, body.Count)
	assert.Equal(t, "camp-b", body.Camps[0].ID)
}
