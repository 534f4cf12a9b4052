package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/lynxshop/backend/internal/application/services"
)

// SearchHandler handles the search and query-analysis HTTP requests
type SearchHandler struct {
	searchService     *services.SearchService
	suggestionService *services.SuggestionService
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(searchService *services.SearchService, suggestionService *services.SuggestionService) *SearchHandler {
	return &SearchHandler{
		searchService:     searchService,
		suggestionService: suggestionService,
	}
}

// Search handles GET /api/search?q=...&limit=...&analysis=true
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if strings.TrimSpace(query) == "" {
		respondWithError(w, http.StatusBadRequest, "query parameter 'q' is required")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondWithError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	includeAnalysis := r.URL.Query().Get("analysis") == "true"

	result, err := h.searchService.Search(r.Context(), query, limit, includeAnalysis)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"results":  result.Results,
		"count":    len(result.Results),
		"took_ms":  result.TookMs,
		"analysis": result.Analysis,
	})
}

// Analyze handles GET /api/search/analyze?q=... It runs the interpretation
// pipeline without scoring, for autocomplete-style assistance.
func (h *SearchHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if strings.TrimSpace(query) == "" {
		respondWithError(w, http.StatusBadRequest, "query parameter 'q' is required")
		return
	}

	interp := h.searchService.Interpret(r.Context(), query)
	suggestions := h.suggestionService.ForInterpretation(interp)

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":           true,
		"normalized_query":  interp.NormalizedQuery,
		"detected_category": interp.DetectedCategory,
		"price_filter":      interp.PriceIntent,
		"suggestions":       suggestions,
	})
}

type recordClickRequest struct {
	Term      string `json:"term"`
	ProductID int    `json:"product_id"`
}

// RecordMetric handles POST /api/search/metrics. The write path of the
// offline suggestion generator.
func (h *SearchHandler) RecordMetric(w http.ResponseWriter, r *http.Request) {
	var req recordClickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.searchService.RecordClick(r.Context(), req.Term, req.ProductID); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
	})
}

// CandidateSynonyms handles GET /api/search/candidates?limit=... It surfaces
// frequently searched unmatched terms for admin review.
func (h *SearchHandler) CandidateSynonyms(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondWithError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	candidates, err := h.suggestionService.CandidateSynonyms(r.Context(), limit)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"candidates": candidates,
		"count":      len(candidates),
	})
}
