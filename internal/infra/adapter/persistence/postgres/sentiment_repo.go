package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"marketpulse/internal/domain/entity"
	"marketpulse/internal/repository"
)

type SentimentRepo struct {
	db *sql.DB
}

func NewSentimentRepo(db *sql.DB) repository.SentimentRepository {
	return &SentimentRepo{db: db}
}

func (repo *SentimentRepo) Get(ctx context.Context) (*entity.MarketSentiment, error) {
	const query = `
SELECT status, score, summary, factors, updated_at
FROM market_sentiment
WHERE id = $1`

	var verdict entity.MarketSentiment
	var rawFactors []byte
	err := repo.db.QueryRowContext(ctx, query, entity.SentimentDocID).
		Scan(&verdict.Status, &verdict.Score, &verdict.Summary, &rawFactors, &verdict.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}

	if err := json.Unmarshal(rawFactors, &verdict.Factors); err != nil {
		return nil, fmt.Errorf("Get: decode factors: %w", err)
	}

	// Stored values may predate validation; repair at read time.
	verdict.Normalize()
	return &verdict, nil
}

func (repo *SentimentRepo) Upsert(ctx context.Context, sentiment *entity.MarketSentiment) error {
	const query = `
INSERT INTO market_sentiment (id, status, score, summary, factors, updated_at)
VALUES ($1, $2, $3, $4, $5, NOW())
ON CONFLICT (id)
DO UPDATE SET status = EXCLUDED.status, score = EXCLUDED.score,
              summary = EXCLUDED.summary, factors = EXCLUDED.factors,
              updated_at = NOW()`

	factors := sentiment.Factors
	if factors == nil {
		factors = []string{}
	}
	rawFactors, err := json.Marshal(factors)
	if err != nil {
		return fmt.Errorf("Upsert: encode factors: %w", err)
	}

	_, err = repo.db.ExecContext(ctx, query,
		entity.SentimentDocID, string(sentiment.Status), sentiment.Score,
		sentiment.Summary, rawFactors)
	if err != nil {
		return fmt.Errorf("Upsert: %w", err)
	}
	return nil
}
