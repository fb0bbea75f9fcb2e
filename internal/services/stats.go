package services

import (
	"time"

	"converter-backend/internal/models"
)

// modelPricing is USD per million tokens.
type modelPricing struct {
	InputPerMillion  float64
	OutputPerMillion float64
}

// modelPrices is a static, best-effort price table for cost estimates.
// Unknown models fall back to a conservative flat estimate.
var modelPrices = map[string]modelPricing{
	"openai/gpt-5":                      {InputPerMillion: 1.25, OutputPerMillion: 10},
	"openai/gpt-5-mini":                 {InputPerMillion: 0.25, OutputPerMillion: 2},
	"openai/gpt-4o":                     {InputPerMillion: 2.5, OutputPerMillion: 10},
	"openai/gpt-4o-mini":                {InputPerMillion: 0.15, OutputPerMillion: 0.6},
	"anthropic/claude-sonnet-4":         {InputPerMillion: 3, OutputPerMillion: 15},
	"anthropic/claude-3.5-haiku":        {InputPerMillion: 0.8, OutputPerMillion: 4},
	"google/gemini-2.5-flash":           {InputPerMillion: 0.3, OutputPerMillion: 2.5},
	"google/gemini-2.5-pro":             {InputPerMillion: 1.25, OutputPerMillion: 10},
	"meta-llama/llama-3.1-70b-instruct": {InputPerMillion: 0.3, OutputPerMillion: 0.4},
	"deepseek/deepseek-chat":            {InputPerMillion: 0.27, OutputPerMillion: 1.1},
}

// fallback rates for models missing from the table.
const (
	fallbackInputPerMillion  = 1.0
	fallbackOutputPerMillion = 3.0
)

// litersPerThousandTokens is a deliberately rough illustrative figure, not a
// measurement.
const litersPerThousandTokens = 1.0

// EstimateCost computes the estimated USD cost of a completion from its
// token usage.
func EstimateCost(model string, usage *Usage) float64 {
	pricing, ok := modelPrices[model]
	if !ok {
		pricing = modelPricing{InputPerMillion: fallbackInputPerMillion, OutputPerMillion: fallbackOutputPerMillion}
	}
	return (float64(usage.PromptTokens)*pricing.InputPerMillion + float64(usage.CompletionTokens)*pricing.OutputPerMillion) / 1e6
}

// EstimateWaterUsage approximates data-center water use in liters for a
// token count.
func EstimateWaterUsage(totalTokens int) float64 {
	return float64(totalTokens) / 1000 * litersPerThousandTokens
}

// BuildStats derives the observability record for one conversion. Pure
// computation; currency info is echoed only when a quote was actually used.
func BuildStats(elapsed time.Duration, at time.Time, model string, usage *Usage, quote *models.ConversionQuote) *models.Stats {
	stats := &models.Stats{
		ConversionTime: elapsed.Seconds(),
		Model:          model,
		Timestamp:      at.UTC().Format(time.RFC3339),
	}

	if usage != nil {
		stats.Usage = &models.TokenUsage{
			PromptTokens:     usage.PromptTokens,
			CompletionTokens: usage.CompletionTokens,
			TotalTokens:      usage.TotalTokens,
		}
		cost := EstimateCost(model, usage)
		water := EstimateWaterUsage(usage.TotalTokens)
		stats.EstimatedCost = &cost
		stats.EstimatedWaterUsage = &water
	}

	if quote != nil {
		stats.CurrencyInfo = &models.CurrencyInfo{
			From:   quote.From,
			To:     quote.To,
			Rate:   quote.Rate,
			Amount: quote.Amount,
		}
	}

	return stats
}
