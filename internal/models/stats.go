package models

// TokenUsage echoes the upstream completion's token accounting.
type TokenUsage struct {
	PromptTokens     int `json:"promptTokens"`
	CompletionTokens int `json:"completionTokens"`
	TotalTokens      int `json:"totalTokens"`
}

// CurrencyInfo echoes the exchange-rate quote used for a request, present
// only when a currency conversion was actually detected.
type CurrencyInfo struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Rate   float64 `json:"rate"`
	Amount float64 `json:"amount"`
}

// Stats is the observability record attached to a non-streaming conversion
// response. Cost and water figures are rough illustrative estimates, not
// measurements.
type Stats struct {
	ConversionTime      float64       `json:"conversionTime"` // seconds
	Model               string        `json:"model"`
	Timestamp           string        `json:"timestamp"` // RFC 3339
	Usage               *TokenUsage   `json:"usage,omitempty"`
	EstimatedCost       *float64      `json:"estimatedCost,omitempty"`       // USD
	EstimatedWaterUsage *float64      `json:"estimatedWaterUsage,omitempty"` // liters
	CurrencyInfo        *CurrencyInfo `json:"currencyInfo,omitempty"`
}
