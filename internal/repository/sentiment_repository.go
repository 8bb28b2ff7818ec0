package repository

import (
	"context"

	"marketpulse/internal/domain/entity"
)

// SentimentRepository stores the singleton market sentiment verdict.
// Writes replace the record wholesale; reads return a normalized verdict
// (score clamped, status repaired) even if a malformed value was stored.
type SentimentRepository interface {
	// Get returns the current verdict, or entity.ErrNotFound if no verdict
	// has been computed yet.
	Get(ctx context.Context) (*entity.MarketSentiment, error)
	// Upsert creates or replaces the singleton verdict and refreshes its
	// updated-at timestamp.
	Upsert(ctx context.Context, sentiment *entity.MarketSentiment) error
}
