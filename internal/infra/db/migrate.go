package db

import (
	"database/sql"
)

// MigrateUp creates the cache tables if they do not exist. Both tables hold
// wholesale JSONB snapshots, so there is no row-level schema to evolve.
func MigrateUp(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS company_news (
    symbol     TEXT PRIMARY KEY,
    articles   JSONB NOT NULL DEFAULT '[]',
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return err
	}

	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS market_sentiment (
    id         TEXT PRIMARY KEY,
    status     TEXT NOT NULL,
    score      INTEGER NOT NULL,
    summary    TEXT NOT NULL,
    factors    JSONB NOT NULL DEFAULT '[]',
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return err
	}

	// updated_at drives TTL checks on every cached read.
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_company_news_updated_at ON company_news(updated_at)`,
	}
	for _, idx := range indexes {
		if _, err := db.Exec(idx); err != nil {
			return err
		}
	}

	return nil
}

// MigrateDown drops the cache tables. Both hold only rebuildable snapshots,
// so dropping them loses nothing the pipeline cannot recompute.
func MigrateDown(db *sql.DB) error {
	dropStatements := []string{
		`DROP INDEX IF EXISTS idx_company_news_updated_at`,
		`DROP TABLE IF EXISTS company_news`,
		`DROP TABLE IF EXISTS market_sentiment`,
	}
	for _, stmt := range dropStatements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
