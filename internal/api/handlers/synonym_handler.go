package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/lynxshop/backend/internal/application/services"
	"github.com/lynxshop/backend/internal/domain/entities"
)

// SynonymHandler handles the admin synonym CRUD requests. Authentication is
// the responsibility of middleware in front of the router.
type SynonymHandler struct {
	synonymService *services.SynonymService
}

// NewSynonymHandler creates a new synonym handler
func NewSynonymHandler(synonymService *services.SynonymService) *SynonymHandler {
	return &SynonymHandler{
		synonymService: synonymService,
	}
}

// ListSynonyms handles GET /api/products/{id}/synonyms
func (h *SynonymHandler) ListSynonyms(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "product ID must be an integer")
		return
	}

	includeInactive := r.URL.Query().Get("include_inactive") == "true"

	synonyms, err := h.synonymService.ListSynonyms(r.Context(), productID, includeInactive)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"synonyms": synonyms,
		"count":    len(synonyms),
	})
}

type createSynonymRequest struct {
	Synonym string `json:"synonym"`
	Source  string `json:"source"`
}

// CreateSynonym handles POST /api/products/{id}/synonyms
func (h *SynonymHandler) CreateSynonym(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "product ID must be an integer")
		return
	}

	var req createSynonymRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	synonym, err := h.synonymService.CreateSynonym(r.Context(), productID, req.Synonym, entities.SynonymSource(req.Source))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"synonym": synonym,
	})
}

// DeleteSynonym handles DELETE /api/products/{id}/synonyms/{synonymId}
func (h *SynonymHandler) DeleteSynonym(w http.ResponseWriter, r *http.Request) {
	synonymID, err := strconv.Atoi(r.PathValue("synonymId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "synonym ID must be an integer")
		return
	}

	if err := h.synonymService.DeleteSynonym(r.Context(), synonymID); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}
