package repository

import (
	"context"
	"time"

	"marketpulse/internal/domain/entity"
)

// CompanyNewsSnapshot is the persisted per-symbol article list together with
// the write timestamp used for TTL checks.
type CompanyNewsSnapshot struct {
	Symbol    string
	Articles  []entity.Article
	UpdatedAt time.Time
}

// CompanyNewsRepository stores per-symbol news snapshots.
// At most one live record exists per symbol; Upsert replaces the article list
// wholesale, never merging with the prior snapshot.
type CompanyNewsRepository interface {
	// Get returns the snapshot for a symbol, or entity.ErrNotFound.
	Get(ctx context.Context, symbol string) (*CompanyNewsSnapshot, error)
	// Upsert creates or fully replaces the snapshot for a symbol and
	// refreshes its updated-at timestamp.
	Upsert(ctx context.Context, symbol string, articles []entity.Article) error
}
