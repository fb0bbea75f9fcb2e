package handlers

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"converter-backend/internal/models"
	"converter-backend/internal/services"
)

type ExchangeRatesHandler struct {
	rates *services.RateService
}

func NewExchangeRatesHandler(rates *services.RateService) *ExchangeRatesHandler {
	return &ExchangeRatesHandler{rates: rates}
}

type quoteResponse struct {
	models.ConversionQuote
	CacheAge string `json:"cacheAge,omitempty"`
}

type rateTableResponse struct {
	models.RateTable
	CacheAge string `json:"cacheAge,omitempty"`
}

// Convert handles GET /api/exchange-rates?from=CODE&to=CODE&amount=N.
func (h *ExchangeRatesHandler) Convert(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	if from == "" || to == "" {
		writeError(w, http.StatusBadRequest, "Missing required parameters: from and to")
		return
	}

	amount := 1.0
	if amountStr := r.URL.Query().Get("amount"); amountStr != "" {
		parsed, err := strconv.ParseFloat(amountStr, 64)
		if err != nil {
			parsed = math.NaN()
		}
		amount = parsed
	}
	if math.IsNaN(amount) || amount <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid amount: must be a positive number")
		return
	}

	quote, err := h.rates.Convert(r.Context(), amount, strings.ToUpper(from), strings.ToUpper(to))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, quoteResponse{
		ConversionQuote: *quote,
		CacheAge:        h.rates.CacheAge(),
	})
}

// All handles POST /api/exchange-rates and returns the full current table.
func (h *ExchangeRatesHandler) All(w http.ResponseWriter, r *http.Request) {
	table, err := h.rates.GetRates(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, rateTableResponse{
		RateTable: *table,
		CacheAge:  h.rates.CacheAge(),
	})
}
