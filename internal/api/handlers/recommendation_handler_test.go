package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campventure/backend/internal/adapters/memory"
	"github.com/campventure/backend/internal/api/handlers"
	"github.com/campventure/backend/internal/application/services"
	"github.com/campventure/backend/internal/domain/entities"
	"github.com/campventure/backend/internal/infrastructure/observability"
)

func newRecommendationMux(t *testing.T, camps ...*entities.Camp) *http.ServeMux {
	t.Helper()

	metrics, err := observability.InitMetrics()
	require.NoError(t, err)

	svc := services.NewRecommendationService(memory.NewCatalogWith(camps...))
	h := handlers.NewRecommendationHandler(svc, metrics)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/recommendations", h.GetRecommendations)
	return mux
}

func TestGetRecommendations_EmptyBodyProducesAnonymousResults(t *testing.T) {
	mux := newRecommendationMux(t, testCamps()...)

	req := httptest.NewRequest(http.MethodPost, "/api/recommendations", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var recs entities.SmartRecommendations
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &recs))
	assert.NotEmpty(t, recs.TrendingCamps)
	assert.False(t, recs.GeneratedAt.IsZero())
}

func TestGetRecommendations_WithPreferences(t *testing.T) {
	mux := newRecommendationMux(t, testCamps()...)

	body, _ := json.Marshal(map[string]interface{}{
		"preferences": map[string]interface{}{
			"difficulty": []string{"moderate"},
			"activities": []string{"trekking"},
			"budget":     map[string]float64{"min": 1000, "max": 5000},
			"wishlist":   []string{"camp-a"},
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/recommendations", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var recs entities.SmartRecommendations
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &recs))

	for _, r := range recs.PersonalizedCamps {
		assert.NotEqual(t, "camp-a", r.CampID)
		assert.NotEmpty(t, r.Reasons)
	}
}

func TestGetRecommendations_MalformedBodyRejected(t *testing.T) {
	mux := newRecommendationMux(t, testCamps()...)

	req := httptest.NewRequest(http.MethodPost, "/api/recommendations", bytes.NewReader([]byte(`{not json`)))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
