package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"converter-backend/internal/models"
)

const validatorSystemPrompt = `You are a strict conversion validator. Ensure the result is numerically and dimensionally consistent with the quantities. If contradictions exist, correct them. Return ONLY JSON {"result": string, "explanation": string}.`

// completionCaller is the slice of OpenRouterService the validator needs,
// kept small so tests can stub the backend.
type completionCaller interface {
	CreateChatCompletion(ctx context.Context, params CompletionParams) (*ChatCompletion, error)
}

// ValidatorService runs the best-effort corrective second pass over a
// proposed answer. It can never make a request fail that would otherwise
// have succeeded.
type ValidatorService struct {
	client completionCaller
}

func NewValidatorService(client completionCaller) *ValidatorService {
	return &ValidatorService{client: client}
}

// Validate re-derives or corrects the proposed answer. Non-empty validator
// output replaces the answer wholesale; any failure or empty output keeps
// the original unchanged.
func (v *ValidatorService) Validate(ctx context.Context, model, from, to, proposed string) string {
	temperature := 0.0
	topP := 0.1
	maxTokens := 300

	corrected, err := v.client.CreateChatCompletion(ctx, CompletionParams{
		Model: model,
		Messages: []models.ChatMessage{
			{Role: "system", Content: validatorSystemPrompt},
			{Role: "user", Content: fmt.Sprintf("From: %s\nTo: %s\nProposed: %s", from, to, proposed)},
		},
		Temperature: &temperature,
		TopP:        &topP,
		MaxTokens:   &maxTokens,
	})
	if err != nil {
		log.Printf("WARNING: validator pass failed, keeping original answer: %v", err)
		return proposed
	}

	if content := strings.TrimSpace(corrected.Content()); content != "" {
		return corrected.Content()
	}
	return proposed
}
