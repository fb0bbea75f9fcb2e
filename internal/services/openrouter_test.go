package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"converter-backend/internal/config"
	"converter-backend/internal/models"
)

func newTestOpenRouter(baseURL string) *OpenRouterService {
	return NewOpenRouterService(&config.Config{
		OpenRouterAPIKey:   "test-key",
		OpenRouterBaseURL:  baseURL,
		OpenRouterModel:    "openai/gpt-5",
		OpenRouterReferrer: "https://converter.example",
		OpenRouterSiteName: "Everything Converter",
	})
}

func TestResolveModel(t *testing.T) {
	s := newTestOpenRouter("https://openrouter.ai/api/v1")

	tests := []struct {
		requested string
		want      string
	}{
		{"", "openai/gpt-5"},
		{"   ", "openai/gpt-5"},
		{"model", "openai/gpt-5"},
		{"MODEL_ID", "openai/gpt-5"},
		{"Choose-A-Model", "openai/gpt-5"},
		{"select-a-model", "openai/gpt-5"},
		{"openrouter/auto", "openai/gpt-5"},
		{"some-placeholder-model", "openai/gpt-5"},
		{"anthropic/claude-sonnet-4.5", "anthropic/claude-sonnet-4.5"},
		{"  google/gemini-2.5-flash  ", "google/gemini-2.5-flash"},
	}

	for _, tc := range tests {
		if got := s.ResolveModel(tc.requested); got != tc.want {
			t.Errorf("ResolveModel(%q) = %q, want %q", tc.requested, got, tc.want)
		}
	}
}

func TestCreateChatCompletionWireFormat(t *testing.T) {
	var captured map[string]interface{}
	var headers http.Header

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers = r.Header.Clone()
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		w.Write([]byte(`{"id":"gen-1","model":"openai/gpt-5","choices":[{"index":0,"message":{"role":"assistant","content":"{\"result\":\"42\"}"},"finish_reason":"stop"}],"usage":{"prompt_tokens":10,"completion_tokens":5,"total_tokens":15}}`))
	}))
	defer srv.Close()

	s := newTestOpenRouter(srv.URL)
	completion, err := s.CreateChatCompletion(context.Background(), CompletionParams{
		Model:    "model",
		Messages: []models.ChatMessage{{Role: "user", Content: "convert"}},
	})
	if err != nil {
		t.Fatalf("CreateChatCompletion failed: %v", err)
	}

	if got := headers.Get("Authorization"); got != "Bearer test-key" {
		t.Errorf("Authorization = %q", got)
	}
	if got := headers.Get("HTTP-Referer"); got != "https://converter.example" {
		t.Errorf("HTTP-Referer = %q", got)
	}
	if got := headers.Get("X-Title"); got != "Everything Converter" {
		t.Errorf("X-Title = %q", got)
	}

	if captured["model"] != "openai/gpt-5" {
		t.Errorf("placeholder model was not resolved: %v", captured["model"])
	}
	rf, ok := captured["response_format"].(map[string]interface{})
	if !ok || rf["type"] != "json_object" {
		t.Errorf("response_format missing or wrong: %v", captured["response_format"])
	}
	if captured["temperature"] != 0.7 {
		t.Errorf("default temperature = %v, want 0.7", captured["temperature"])
	}
	if _, ok := captured["stream"]; ok {
		t.Error("stream flag should be omitted on non-streaming calls")
	}

	if completion.Content() != `{"result":"42"}` {
		t.Errorf("Content() = %q", completion.Content())
	}
	if completion.Usage == nil || completion.Usage.TotalTokens != 15 {
		t.Errorf("usage not decoded: %+v", completion.Usage)
	}
}

func TestCreateChatCompletionUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("model unavailable"))
	}))
	defer srv.Close()

	s := newTestOpenRouter(srv.URL)
	_, err := s.CreateChatCompletion(context.Background(), CompletionParams{
		Messages: []models.ChatMessage{{Role: "user", Content: "hi"}},
	})
	if err == nil {
		t.Fatal("expected an error for a non-200 upstream status")
	}
}

func TestStreamChatCompletionRecv(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		io.WriteString(w, "data: {\"choices\":[{\"delta\":{\"content\":\"Hel\"}}]}\n\n")
		io.WriteString(w, ": keepalive comment\n\n")
		io.WriteString(w, "data: not-json\n\n")
		io.WriteString(w, "data: {\"choices\":[{\"delta\":{\"content\":\"lo\"}}]}\n\n")
		io.WriteString(w, "data: [DONE]\n\n")
	}))
	defer srv.Close()

	s := newTestOpenRouter(srv.URL)
	stream, err := s.StreamChatCompletion(context.Background(), CompletionParams{
		Messages: []models.ChatMessage{{Role: "user", Content: "hi"}},
	})
	if err != nil {
		t.Fatalf("StreamChatCompletion failed: %v", err)
	}
	defer stream.Close()

	var got string
	for {
		delta, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("Recv failed: %v", err)
		}
		got += delta
	}

	if got != "Hello" {
		t.Errorf("streamed content = %q, want %q", got, "Hello")
	}
}

func TestChatCompletionContentEmpty(t *testing.T) {
	var nilCompletion *ChatCompletion
	if nilCompletion.Content() != "" {
		t.Error("nil completion should yield empty content")
	}
	if (&ChatCompletion{}).Content() != "" {
		t.Error("completion without choices should yield empty content")
	}
}
