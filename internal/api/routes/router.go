package routes

import (
	"net/http"

	"github.com/campventure/backend/internal/api/handlers"
	"github.com/campventure/backend/internal/api/middleware"
	"github.com/campventure/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	campHandler           *handlers.CampHandler
	recommendationHandler *handlers.RecommendationHandler
	sseHandler            *handlers.SSEHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
}

// NewRouter creates a new router. sseHandler and cacheMiddleware may be nil
// when Redis is unavailable.
func NewRouter(
	campHandler *handlers.CampHandler,
	recommendationHandler *handlers.RecommendationHandler,
	sseHandler *handlers.SSEHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:                   http.NewServeMux(),
		campHandler:           campHandler,
		recommendationHandler: recommendationHandler,
		sseHandler:            sseHandler,
		cacheMiddleware:       cacheMiddleware,
		metrics:               metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Camp endpoints
	r.mux.HandleFunc("GET /api/camps", r.campHandler.ListCamps)
	r.mux.HandleFunc("GET /api/camps/search", r.campHandler.SearchCamps)
	r.mux.HandleFunc("GET /api/camps/{id}", r.campHandler.GetCamp)
	r.mux.HandleFunc("POST /api/camps", r.campHandler.CreateCamp)
	r.mux.HandleFunc("PATCH /api/camps/{id}", r.campHandler.UpdateCamp)
	r.mux.HandleFunc("DELETE /api/camps/{id}", r.campHandler.DeleteCamp)

	// Recommendation endpoint
	r.mux.HandleFunc("POST /api/recommendations", r.recommendationHandler.GetRecommendations)

	// Real-time update streams
	if r.sseHandler != nil {
		r.mux.HandleFunc("GET /api/stream/camps", r.sseHandler.StreamAllUpdates)
		r.mux.HandleFunc("GET /api/stream/camps/{id}", r.sseHandler.StreamCampUpdates)
		r.mux.HandleFunc("GET /api/stream/states/{state}", r.sseHandler.StreamStateUpdates)
	}

	// Apply middleware in reverse order (last middleware wraps first).
	// CORS must be outermost so cached responses also get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.ResponseOptimization(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
