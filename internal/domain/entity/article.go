// Package entity defines the core domain entities for the market news pipeline.
// It contains the Article and MarketSentiment business objects along with
// their validation rules and domain-specific errors.
package entity

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Sentiment classifies the tone of a single news article.
type Sentiment string

// Per-article sentiment values. An empty Sentiment means the article has not
// been enriched yet.
const (
	SentimentPositive Sentiment = "Positive"
	SentimentNegative Sentiment = "Negative"
	SentimentNeutral  Sentiment = "Neutral"
)

// Valid reports whether s is one of the known sentiment values.
func (s Sentiment) Valid() bool {
	switch s {
	case SentimentPositive, SentimentNegative, SentimentNeutral:
		return true
	}
	return false
}

// MinHeadlineRunes is the minimum normalized headline length for an article
// to be kept during aggregation. Shorter headlines are treated as noise and
// silently dropped, not surfaced as errors.
const MinHeadlineRunes = 10

// Article represents a single news item in the system.
// Articles are created by a source adapter, optionally enriched once with a
// sentiment label, and persisted only as part of a company news snapshot.
type Article struct {
	ID             string    `json:"id"`
	Headline       string    `json:"headline"`
	Summary        string    `json:"summary,omitempty"`
	Source         string    `json:"source"`
	URL            string    `json:"url"`
	PublishedAt    time.Time `json:"published_at"`
	Category       string    `json:"category,omitempty"`
	RelatedSymbols []string  `json:"related_symbols,omitempty"`
	Sentiment      Sentiment `json:"sentiment,omitempty"`
}

// NormalizeHeadline returns the canonical form of a headline used for
// deduplication: trimmed and lowercased.
func NormalizeHeadline(headline string) string {
	return strings.ToLower(strings.TrimSpace(headline))
}

// HeadlineTooShort reports whether the normalized headline is below the
// minimum length and should be discarded during aggregation.
func HeadlineTooShort(headline string) bool {
	return utf8.RuneCountInString(NormalizeHeadline(headline)) < MinHeadlineRunes
}
