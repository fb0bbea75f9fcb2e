package handlers

import (
	"context"
	"net/http"
	"strconv"

	"converter-backend/internal/models"
)

type conversionLister interface {
	ListRecent(ctx context.Context, limit int) ([]*models.ConversionLog, error)
}

type HistoryHandler struct {
	conversions conversionLister
}

func NewHistoryHandler(conversions conversionLister) *HistoryHandler {
	return &HistoryHandler{conversions: conversions}
}

// List handles GET /api/history?limit=N.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n <= 0 || n > 100 {
			writeError(w, http.StatusBadRequest, "Invalid limit: must be between 1 and 100")
			return
		}
		limit = n
	}

	entries, err := h.conversions.ListRecent(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load conversion history")
		return
	}
	if entries == nil {
		entries = []*models.ConversionLog{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"conversions": entries})
}
