package models

import (
	"time"

	"github.com/google/uuid"
)

// ConversionLog is one persisted conversion request, written best-effort
// after a successful non-streaming chat completion.
type ConversionLog struct {
	ID               uuid.UUID `json:"id"`
	FromText         string    `json:"from_text"`
	ToText           string    `json:"to_text"`
	Model            string    `json:"model"`
	Result           string    `json:"result"`
	Explanation      string    `json:"explanation"`
	LatencyMs        int64     `json:"latency_ms"`
	PromptTokens     int       `json:"prompt_tokens"`
	CompletionTokens int       `json:"completion_tokens"`
	EstimatedCost    float64   `json:"estimated_cost"`
	CreatedAt        time.Time `json:"created_at"`
}
