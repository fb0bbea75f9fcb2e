package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"converter-backend/internal/handlers"
	"converter-backend/internal/middleware"
)

func New(
	chatHandler *handlers.ChatHandler,
	exchangeRatesHandler *handlers.ExchangeRatesHandler,
	suggestionsHandler *handlers.SuggestionsHandler,
	historyHandler *handlers.HistoryHandler,
	frontendURL string,
	chatRequestsPerMin int,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Chat rate limiter (per IP)
	chatLimiter := middleware.NewRateLimiter(chatRequestsPerMin, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(chatLimiter.Middleware)
			r.Post("/chat", chatHandler.Convert)
		})

		r.Get("/exchange-rates", exchangeRatesHandler.Convert)
		r.Post("/exchange-rates", exchangeRatesHandler.All)

		r.Post("/suggestions", suggestionsHandler.Suggest)
		r.Post("/surprise", suggestionsHandler.Surprise)

		if historyHandler != nil {
			r.Get("/history", historyHandler.List)
		}
	})

	return r
}
