package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"converter-backend/internal/models"
	"converter-backend/internal/services"
)

type SuggestionsHandler struct {
	suggestions *services.SuggestionService
}

func NewSuggestionsHandler(suggestions *services.SuggestionService) *SuggestionsHandler {
	return &SuggestionsHandler{suggestions: suggestions}
}

// Suggest handles POST /api/suggestions.
func (h *SuggestionsHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	var req models.SuggestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.FromText) == "" {
		writeError(w, http.StatusBadRequest, "From text is required")
		return
	}

	suggestions, err := h.suggestions.Suggest(r.Context(), req.FromText)
	if err != nil {
		log.Printf("ERROR: failed to generate suggestions: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to generate suggestions")
		return
	}

	writeJSON(w, http.StatusOK, models.SuggestionResponse{Suggestions: suggestions})
}

// Surprise handles POST /api/surprise and returns two creative conversion
// pairs.
func (h *SuggestionsHandler) Surprise(w http.ResponseWriter, r *http.Request) {
	pairs, err := h.suggestions.SurprisePairs(r.Context())
	if err != nil {
		log.Printf("ERROR: failed to generate surprise pairs: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to generate surprise pairs")
		return
	}

	writeJSON(w, http.StatusOK, map[string][]models.ConversionPair{"pairs": pairs})
}
