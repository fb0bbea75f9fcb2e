package services

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"converter-backend/internal/config"
	"converter-backend/internal/models"
)

// OpenRouterService is the only egress point to the LLM backend. It speaks
// the OpenAI-compatible chat completions protocol against OpenRouter.
type OpenRouterService struct {
	apiKey       string
	baseURL      string
	referrer     string
	siteName     string
	defaultModel string
	httpClient   *http.Client
}

func NewOpenRouterService(cfg *config.Config) *OpenRouterService {
	return &OpenRouterService{
		apiKey:       cfg.OpenRouterAPIKey,
		baseURL:      strings.TrimRight(cfg.OpenRouterBaseURL, "/"),
		referrer:     cfg.OpenRouterReferrer,
		siteName:     cfg.OpenRouterSiteName,
		defaultModel: cfg.OpenRouterModel,
		httpClient:   &http.Client{Timeout: 2 * time.Minute},
	}
}

// CompletionParams describes one chat completion call.
type CompletionParams struct {
	Model       string
	Messages    []models.ChatMessage
	Temperature *float64
	TopP        *float64
	MaxTokens   *int
}

// Usage is the upstream token accounting block.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Choice is one completion choice from the upstream response.
type Choice struct {
	Index        int                `json:"index"`
	Message      models.ChatMessage `json:"message"`
	FinishReason string             `json:"finish_reason"`
}

// ChatCompletion is a non-streaming completion response.
type ChatCompletion struct {
	ID      string   `json:"id"`
	Model   string   `json:"model"`
	Created int64    `json:"created"`
	Choices []Choice `json:"choices"`
	Usage   *Usage   `json:"usage,omitempty"`
}

// Content returns the first choice's message content, or "".
func (c *ChatCompletion) Content() string {
	if c == nil || len(c.Choices) == 0 {
		return ""
	}
	return c.Choices[0].Message.Content
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatCompletionRequest struct {
	Model          string               `json:"model"`
	Messages       []models.ChatMessage `json:"messages"`
	Temperature    *float64             `json:"temperature,omitempty"`
	TopP           *float64             `json:"top_p,omitempty"`
	MaxTokens      *int                 `json:"max_tokens,omitempty"`
	ResponseFormat responseFormat       `json:"response_format"`
	Stream         bool                 `json:"stream,omitempty"`
}

type chunkDelta struct {
	Content string `json:"content"`
}

type chunkChoice struct {
	Delta chunkDelta `json:"delta"`
}

type completionChunk struct {
	Choices []chunkChoice `json:"choices"`
}

// placeholderModels are caller-supplied identifiers that are "not a real
// choice" and resolve to the configured default.
var placeholderModels = map[string]struct{}{
	"model":           {},
	"model_id":        {},
	"choose-a-model":  {},
	"select-a-model":  {},
	"openrouter/auto": {},
}

// ResolveModel substitutes the configured default for blank or placeholder
// model names. A deliberately chosen model is never upgraded.
func (s *OpenRouterService) ResolveModel(requested string) string {
	v := strings.ToLower(strings.TrimSpace(requested))
	if v == "" || strings.Contains(v, "placeholder") {
		return s.defaultModel
	}
	if _, ok := placeholderModels[v]; ok {
		return s.defaultModel
	}
	return strings.TrimSpace(requested)
}

func (s *OpenRouterService) newRequest(ctx context.Context, params CompletionParams, stream bool) (*http.Request, string, error) {
	model := s.ResolveModel(params.Model)

	temperature := params.Temperature
	if temperature == nil {
		t := 0.7
		temperature = &t
	}

	// response_format is set on every call as a transport-level second line
	// of defense alongside the prompt-level JSON instruction.
	body := chatCompletionRequest{
		Model:          model,
		Messages:       params.Messages,
		Temperature:    temperature,
		TopP:           params.TopP,
		MaxTokens:      params.MaxTokens,
		ResponseFormat: responseFormat{Type: "json_object"},
		Stream:         stream,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to encode completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, "", fmt.Errorf("failed to create completion request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	if s.referrer != "" {
		req.Header.Set("HTTP-Referer", s.referrer)
	}
	if s.siteName != "" {
		req.Header.Set("X-Title", s.siteName)
	}

	return req, model, nil
}

// CreateChatCompletion performs a single-shot completion call. Transport and
// auth errors propagate unmodified; retries are the caller's decision.
func (s *OpenRouterService) CreateChatCompletion(ctx context.Context, params CompletionParams) (*ChatCompletion, error) {
	req, _, err := s.newRequest(ctx, params, false)
	if err != nil {
		return nil, err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("OpenRouter API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var completion ChatCompletion
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return nil, fmt.Errorf("failed to decode completion response: %w", err)
	}

	return &completion, nil
}

// CompletionStream yields content deltas from a streaming completion. The
// consumer can stop reading at any point; Close releases the connection.
type CompletionStream struct {
	body    io.ReadCloser
	scanner *bufio.Scanner
}

// Recv returns the next non-empty content delta, or io.EOF when the stream
// is finished.
func (cs *CompletionStream) Recv() (string, error) {
	for cs.scanner.Scan() {
		line := strings.TrimSpace(cs.scanner.Text())
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "" {
			continue
		}
		if data == "[DONE]" {
			return "", io.EOF
		}

		var chunk completionChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			// OpenRouter interleaves comment/keepalive payloads; skip them.
			continue
		}
		if len(chunk.Choices) == 0 {
			continue
		}
		if delta := chunk.Choices[0].Delta.Content; delta != "" {
			return delta, nil
		}
	}
	if err := cs.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func (cs *CompletionStream) Close() error {
	return cs.body.Close()
}

// StreamChatCompletion performs a streaming completion call and returns the
// delta stream for the caller to drain.
func (s *OpenRouterService) StreamChatCompletion(ctx context.Context, params CompletionParams) (*CompletionStream, error) {
	req, _, err := s.newRequest(ctx, params, true)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("completion request failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("OpenRouter API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	return &CompletionStream{body: resp.Body, scanner: scanner}, nil
}
