package models

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	Role    string `json:"role"` // "system", "user" or "assistant"
	Content string `json:"content"`
}

// ChatRequest is the payload sent to POST /api/chat.
type ChatRequest struct {
	Messages       []ChatMessage `json:"messages"`
	Model          string        `json:"model,omitempty"`
	Temperature    *float64      `json:"temperature,omitempty"`
	TopP           *float64      `json:"topP,omitempty"`
	MaxTokens      *int          `json:"maxTokens,omitempty"`
	Stream         bool          `json:"stream"`
	From           string        `json:"from,omitempty"`
	To             string        `json:"to,omitempty"`
	SkipValidation bool          `json:"skipValidation,omitempty"`
}

// ChatResponse is the non-streaming reply from POST /api/chat.
type ChatResponse struct {
	Content string      `json:"content"`
	Model   string      `json:"model"`
	Raw     interface{} `json:"raw"`
	Stats   *Stats      `json:"stats,omitempty"`
}

// ConversionAnswer is the two-field contract every model call must produce.
// Missing fields normalize to empty strings, never null.
type ConversionAnswer struct {
	Result      string `json:"result"`
	Explanation string `json:"explanation"`
}

// SuggestionRequest is the payload sent to POST /api/suggestions.
type SuggestionRequest struct {
	FromText string `json:"fromText"`
}

// SuggestionResponse always carries exactly three suggestions.
type SuggestionResponse struct {
	Suggestions []string `json:"suggestions"`
}

// ConversionPair is one creative from/to pair from the surprise flow.
type ConversionPair struct {
	From string `json:"from"`
	To   string `json:"to"`
}
