package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"converter-backend/internal/currency"
	"converter-backend/internal/models"
	"converter-backend/internal/services"
)

// conversionRecorder is the optional persisted conversion log. nil when no
// database is configured.
type conversionRecorder interface {
	Record(ctx context.Context, entry *models.ConversionLog) error
}

type ChatHandler struct {
	openrouter *services.OpenRouterService
	rates      *services.RateService
	validator  *services.ValidatorService
	recorder   conversionRecorder
}

func NewChatHandler(
	openrouter *services.OpenRouterService,
	rates *services.RateService,
	validator *services.ValidatorService,
	recorder conversionRecorder,
) *ChatHandler {
	return &ChatHandler{
		openrouter: openrouter,
		rates:      rates,
		validator:  validator,
		recorder:   recorder,
	}
}

// Convert handles POST /api/chat: currency quote injection, the primary
// completion call (streaming or not), the best-effort validator pass, and
// stats derivation.
func (h *ChatHandler) Convert(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if len(req.Messages) == 0 {
		writeError(w, http.StatusBadRequest, "messages[] is required")
		return
	}

	// A request is a currency conversion only when both endpoints name a
	// currency. The quote is computed outside the model and injected as an
	// authoritative directive.
	var quote *models.ConversionQuote
	if req.From != "" && req.To != "" {
		if pair, ok := currency.DetectConversion(req.From, req.To); ok {
			amount := currency.ExtractAmount(req.From)
			q, err := h.rates.Convert(r.Context(), amount, pair.From, pair.To)
			if err != nil {
				writeError(w, http.StatusInternalServerError, err.Error())
				return
			}
			quote = q
		}
	}

	messages := services.InjectCurrencyDirective(req.Messages, quote)

	params := services.CompletionParams{
		Model:       req.Model,
		Messages:    messages,
		Temperature: req.Temperature,
		TopP:        req.TopP,
		MaxTokens:   req.MaxTokens,
	}

	if req.Stream {
		h.stream(w, r, params)
		return
	}

	start := time.Now()

	completion, err := h.openrouter.CreateChatCompletion(r.Context(), params)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	content := completion.Content()

	// Corrective second pass. A validator failure never fails the request.
	if !req.SkipValidation {
		content = h.validator.Validate(r.Context(), req.Model, req.From, req.To, content)
	}

	model := completion.Model
	if model == "" {
		model = h.openrouter.ResolveModel(req.Model)
	}

	stats := services.BuildStats(time.Since(start), time.Now(), model, completion.Usage, quote)

	h.record(r.Context(), &req, model, content, stats)

	writeJSON(w, http.StatusOK, models.ChatResponse{
		Content: content,
		Model:   model,
		Raw:     completion,
		Stats:   stats,
	})
}

// stream copies raw content deltas to the client as an unframed text/plain
// body. No validation or stats on the streaming path.
func (h *ChatHandler) stream(w http.ResponseWriter, r *http.Request, params services.CompletionParams) {
	stream, err := h.openrouter.StreamChatCompletion(r.Context(), params)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer stream.Close()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)

	flusher, _ := w.(http.Flusher)
	for {
		delta, err := stream.Recv()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				log.Printf("WARNING: completion stream ended early: %v", err)
			}
			return
		}
		if _, err := io.WriteString(w, delta); err != nil {
			// client went away; stop reading from upstream
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
}

// record persists the conversion best-effort when a database is configured.
func (h *ChatHandler) record(ctx context.Context, req *models.ChatRequest, model, content string, stats *models.Stats) {
	if h.recorder == nil {
		return
	}

	answer := services.NormalizeAnswer(content)
	entry := &models.ConversionLog{
		FromText:    req.From,
		ToText:      req.To,
		Model:       model,
		Result:      answer.Result,
		Explanation: answer.Explanation,
		LatencyMs:   int64(stats.ConversionTime * 1000),
	}
	if stats.Usage != nil {
		entry.PromptTokens = stats.Usage.PromptTokens
		entry.CompletionTokens = stats.Usage.CompletionTokens
	}
	if stats.EstimatedCost != nil {
		entry.EstimatedCost = *stats.EstimatedCost
	}

	if err := h.recorder.Record(ctx, entry); err != nil {
		log.Printf("WARNING: failed to record conversion: %v", err)
	}
}
