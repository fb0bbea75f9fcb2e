package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"converter-backend/internal/models"
)

const suggestionSystemPrompt = `You are a conversion suggestion assistant. Given what the user wants to convert FROM, suggest 3 creative and useful things they might want to convert TO.

Rules:
1. Provide exactly 3 suggestions
2. Make suggestions relevant and creative
3. Consider different types of conversions: units, currencies, measurements, time zones, etc.
4. Keep suggestions concise (2-5 words each)
5. Return ONLY valid JSON with a "suggestions" array containing 3 strings
6. Example format: {"suggestions": ["meters", "football fields", "light years"]}

Do not include explanations, just the JSON object with suggestions array.`

const surpriseSystemPrompt = `Generate 2 fun, creative, and simple conversion pairs. Return ONLY strict JSON: [{"from": "string", "to": "string"}, {"from": "string", "to": "string"}]. No extra text.`

// suggestionModel is pinned: suggestions are a cheap auxiliary flow and do
// not follow the caller's model choice.
const suggestionModel = "google/gemini-2.5-flash"

const suggestionCacheTTL = time.Hour

// genericSuggestion pads short model output so callers always get three.
const genericSuggestion = "other units"

var ErrNoSuggestions = errors.New("no suggestions generated")

// SuggestionService generates conversion-target suggestions and surprise
// pairs. A redis client, when configured, caches suggestions per source
// text; cache outages are never allowed to fail a request.
type SuggestionService struct {
	client completionCaller
	redis  *redis.Client
}

func NewSuggestionService(client completionCaller, redisClient *redis.Client) *SuggestionService {
	return &SuggestionService{client: client, redis: redisClient}
}

// Suggest returns exactly three candidate conversion targets for fromText.
func (s *SuggestionService) Suggest(ctx context.Context, fromText string) ([]string, error) {
	cacheKey := "suggestions:" + strings.ToLower(strings.TrimSpace(fromText))

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var suggestions []string
			if json.Unmarshal([]byte(cached), &suggestions) == nil && len(suggestions) == 3 {
				return suggestions, nil
			}
		}
	}

	temperature := 0.7
	maxTokens := 100

	completion, err := s.client.CreateChatCompletion(ctx, CompletionParams{
		Model: suggestionModel,
		Messages: []models.ChatMessage{
			{Role: "system", Content: suggestionSystemPrompt},
			{Role: "user", Content: fmt.Sprintf("What are 3 good conversion targets for: %q", fromText)},
		},
		Temperature: &temperature,
		MaxTokens:   &maxTokens,
	})
	if err != nil {
		return nil, err
	}

	content := completion.Content()
	if content == "" {
		return nil, ErrNoSuggestions
	}

	suggestions := unwrapSuggestions(content)
	if len(suggestions) == 0 {
		return nil, ErrNoSuggestions
	}

	for len(suggestions) < 3 {
		suggestions = append(suggestions, genericSuggestion)
	}
	suggestions = suggestions[:3]

	if s.redis != nil {
		if data, err := json.Marshal(suggestions); err == nil {
			if err := s.redis.Set(ctx, cacheKey, data, suggestionCacheTTL).Err(); err != nil {
				log.Printf("WARNING: failed to cache suggestions: %v", err)
			}
		}
	}

	return suggestions, nil
}

// unwrapSuggestions tolerates the shapes models actually return: a bare
// array, {"suggestions": [...]}, or some other object whose first value
// holds the list.
func unwrapSuggestions(content string) []string {
	cleaned := stripCodeFences(content)

	var list []string
	if json.Unmarshal([]byte(cleaned), &list) == nil {
		return truncate(list, 3)
	}

	var wrapper struct {
		Suggestions []string `json:"suggestions"`
	}
	if json.Unmarshal([]byte(cleaned), &wrapper) == nil && len(wrapper.Suggestions) > 0 {
		return truncate(wrapper.Suggestions, 3)
	}

	var object map[string]json.RawMessage
	if json.Unmarshal([]byte(cleaned), &object) != nil {
		return nil
	}

	keys := make([]string, 0, len(object))
	for k := range object {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var values []string
	for _, k := range keys {
		var nested []string
		if json.Unmarshal(object[k], &nested) == nil {
			return truncate(nested, 3)
		}
		var value string
		if json.Unmarshal(object[k], &value) == nil {
			values = append(values, value)
		}
	}
	return truncate(values, 3)
}

func truncate(list []string, n int) []string {
	if len(list) > n {
		return list[:n]
	}
	return list
}

// SurprisePairs asks the model for two creative conversion pairs, parsed
// defensively the same way the suggestion output is.
func (s *SuggestionService) SurprisePairs(ctx context.Context) ([]models.ConversionPair, error) {
	temperature := 0.9
	maxTokens := 200

	completion, err := s.client.CreateChatCompletion(ctx, CompletionParams{
		Model: suggestionModel,
		Messages: []models.ChatMessage{
			{Role: "system", Content: surpriseSystemPrompt},
			{Role: "user", Content: "Give me 2 surprise conversion pairs."},
		},
		Temperature: &temperature,
		MaxTokens:   &maxTokens,
	})
	if err != nil {
		return nil, err
	}

	content := stripCodeFences(completion.Content())
	if start, end := strings.Index(content, "["), strings.LastIndex(content, "]"); start >= 0 && end > start {
		content = content[start : end+1]
	}

	var pairs []models.ConversionPair
	if err := json.Unmarshal([]byte(content), &pairs); err != nil {
		return nil, fmt.Errorf("failed to parse surprise pairs: %w", err)
	}
	if len(pairs) == 0 {
		return nil, errors.New("no surprise pairs generated")
	}
	if len(pairs) > 2 {
		pairs = pairs[:2]
	}
	return pairs, nil
}
