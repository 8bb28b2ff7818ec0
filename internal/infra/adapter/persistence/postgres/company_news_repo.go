// Package postgres implements the cache store repositories on PostgreSQL.
// Article lists and factor lists are stored as JSONB snapshots; every write
// replaces the prior record wholesale.
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

type CompanyNewsRepo struct {
	db *sql.DB
}

func NewCompanyNewsRepo(db *sql.DB) repository.CompanyNewsRepository {
	return &CompanyNewsRepo{db: db}
}

func (repo *CompanyNewsRepo) Get(ctx context.Context, symbol string) (*repository.CompanyNewsSnapshot, error) {
	const query = `
SELECT symbol, articles, updated_at
FROM company_news
WHERE symbol = $1`

	var snapshot repository.CompanyNewsSnapshot
	var raw []byte
	err := repo.db.QueryRowContext(ctx, query, symbol).
		Scan(&snapshot.Symbol, &raw, &snapshot.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}

	if err := json.Unmarshal(raw, &snapshot.Articles); err != nil {
		return nil, fmt.Errorf("Get: decode articles: %w", err)
	}
	return &snapshot, nil
}

func (repo *CompanyNewsRepo) Upsert(ctx context.Context, symbol string, articles []entity.Article) error {
	const query = `
INSERT INTO company_news (symbol, articles, updated_at)
VALUES ($1, $2, NOW())
ON CONFLICT (symbol)
DO UPDATE SET articles = EXCLUDED.articles, updated_at = NOW()`

	// Encode nil as an empty list so reads never see JSON null.
	if articles == nil {
		articles = []entity.Article{}
	}
	raw, err := json.Marshal(articles)
	if err != nil {
		return fmt.Errorf("Upsert: encode articles: %w", err)
	}

	if _, err := repo.db.ExecContext(ctx, query, symbol, raw); err != nil {
		return fmt.Errorf("Upsert: %w", err)
	}
	return nil
}
