package routes

import (
	"net/http"

	"github.com/lynxshop/backend/internal/api/handlers"
	"github.com/lynxshop/backend/internal/api/middleware"
	"github.com/lynxshop/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	searchHandler  *handlers.SearchHandler
	synonymHandler *handlers.SynonymHandler

	metrics *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	searchHandler *handlers.SearchHandler,
	synonymHandler *handlers.SynonymHandler,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:            http.NewServeMux(),
		searchHandler:  searchHandler,
		synonymHandler: synonymHandler,
		metrics:        metrics,
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

	// Search endpoints
	r.mux.HandleFunc("GET /api/search", r.searchHandler.Search)
	r.mux.HandleFunc("GET /api/search/analyze", r.searchHandler.Analyze)
	r.mux.HandleFunc("GET /api/search/candidates", r.searchHandler.CandidateSynonyms)
	r.mux.HandleFunc("POST /api/search/metrics", r.searchHandler.RecordMetric)

	// Synonym administration endpoints
	r.mux.HandleFunc("GET /api/products/{id}/synonyms", r.synonymHandler.ListSynonyms)
	r.mux.HandleFunc("POST /api/products/{id}/synonyms", r.synonymHandler.CreateSynonym)
	r.mux.HandleFunc("DELETE /api/products/{id}/synonyms/{synonymId}", r.synonymHandler.DeleteSynonym)

	// Apply middleware in reverse order (last middleware wraps first)
	// CORS must be outermost so error responses also get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	if r.metrics != nil {
		handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	}
	handler = middleware.CORSMiddleware(handler)

	return handler
}
