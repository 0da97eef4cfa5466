package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/campventure/backend/internal/application/services"
	"github.com/campventure/backend/internal/domain/entities"
	"github.com/campventure/backend/internal/infrastructure/observability"
)

// RecommendationHandler handles recommendation HTTP requests
type RecommendationHandler struct {
	recommendationService *services.RecommendationService
	metrics               *observability.Metrics
}

// NewRecommendationHandler creates a new recommendation handler
func NewRecommendationHandler(recommendationService *services.RecommendationService, metrics *observability.Metrics) *RecommendationHandler {
	return &RecommendationHandler{
		recommendationService: recommendationService,
		metrics:               metrics,
	}
}

// recommendationRequest is the POST body. Both fields are optional; an empty
// body produces anonymous recommendations.
type recommendationRequest struct {
	Preferences *entities.UserPreferences      `json:"preferences,omitempty"`
	Context     *entities.RecommendationContext `json:"context,omitempty"`
}

// GetRecommendations handles POST /api/recommendations
func (h *RecommendationHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	var req recommendationRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	observability.RecordRecommendationRequest(r.Context(), h.metrics, req.Preferences == nil)

	recommendations, err := h.recommendationService.GetSmartRecommendations(r.Context(), req.Preferences, req.Context)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to generate recommendations")
		return
	}

	respondWithJSON(w, http.StatusOK, recommendations)
}
