package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"converter-backend/internal/models"
)

type ConversionRepo struct {
	pool *pgxpool.Pool
}

func NewConversionRepo(pool *pgxpool.Pool) *ConversionRepo {
	return &ConversionRepo{pool: pool}
}

// Record inserts one conversion log entry.
func (r *ConversionRepo) Record(ctx context.Context, entry *models.ConversionLog) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO conversions (
			id, from_text, to_text, model, result, explanation,
			latency_ms, prompt_tokens, completion_tokens, estimated_cost, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		entry.ID, entry.FromText, entry.ToText, entry.Model, entry.Result, entry.Explanation,
		entry.LatencyMs, entry.PromptTokens, entry.CompletionTokens, entry.EstimatedCost, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert conversion: %w", err)
	}
	return nil
}

// ListRecent returns the newest entries first.
func (r *ConversionRepo) ListRecent(ctx context.Context, limit int) ([]*models.ConversionLog, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, from_text, to_text, model, result, explanation,
			latency_ms, prompt_tokens, completion_tokens, estimated_cost, created_at
		FROM conversions
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query conversions: %w", err)
	}
	defer rows.Close()

	var entries []*models.ConversionLog
	for rows.Next() {
		entry := &models.ConversionLog{}
		if err := rows.Scan(
			&entry.ID, &entry.FromText, &entry.ToText, &entry.Model, &entry.Result, &entry.Explanation,
			&entry.LatencyMs, &entry.PromptTokens, &entry.CompletionTokens, &entry.EstimatedCost, &entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan conversion: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
