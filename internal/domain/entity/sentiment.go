package entity

import "time"

// MarketStatus is the aggregate market-sentiment verdict label.
type MarketStatus string

// Market status values. Volatile is reserved for explicitly mixed signal sets
// regardless of score; the others follow fixed score bands.
const (
	StatusBullish  MarketStatus = "Bullish"
	StatusBearish  MarketStatus = "Bearish"
	StatusNeutral  MarketStatus = "Neutral"
	StatusVolatile MarketStatus = "Volatile"
)

// Valid reports whether s is one of the known market status values.
func (s MarketStatus) Valid() bool {
	switch s {
	case StatusBullish, StatusBearish, StatusNeutral, StatusVolatile:
		return true
	}
	return false
}

// SentimentDocID is the fixed identity of the singleton market sentiment
// record. Exactly one live record exists; each refresh replaces it wholesale.
const SentimentDocID = "current"

// MarketSentiment is the synthesized aggregate market verdict.
// Factors holds exactly five short strings by contract with the AI backend;
// the length is not structurally enforced.
type MarketSentiment struct {
	Status    MarketStatus `json:"status"`
	Score     int          `json:"score"`
	Summary   string       `json:"summary"`
	Factors   []string     `json:"factors"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// Normalize repairs a verdict read from storage or parsed from an AI
// response: the score is clamped to [0,100] and an unknown status falls back
// to Neutral. Malformed stored values never reach callers.
func (m *MarketSentiment) Normalize() {
	if m.Score < 0 {
		m.Score = 0
	}
	if m.Score > 100 {
		m.Score = 100
	}
	if !m.Status.Valid() {
		m.Status = StatusNeutral
	}
}
