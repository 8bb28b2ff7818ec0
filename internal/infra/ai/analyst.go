// Package ai provides generative-AI backed market analysis implementations.
// It includes adapters for Claude (Anthropic) and OpenAI APIs with reliability
// patterns, plus a no-op analyst for running without credentials.
package ai

import (
	"context"
	"errors"
)

// ErrUnavailable indicates that no AI backend can serve the request, either
// because no credential is configured or the backend is unreachable. Callers
// treat it like any other backend failure and degrade.
var ErrUnavailable = errors.New("ai backend unavailable")

// Headline is one item of a batched classification request. The ID is echoed
// back by the backend so responses survive reordering or dropped entries.
type Headline struct {
	ID   string `json:"id"`
	Text string `json:"headline"`
}

// Classification is one entry of the backend's classification response.
type Classification struct {
	ID        string `json:"id"`
	Sentiment string `json:"sentiment"`
}

// Verdict is the backend's aggregate market-sentiment response before domain
// validation.
type Verdict struct {
	Status  string   `json:"status"`
	Score   int      `json:"score"`
	Summary string   `json:"summary"`
	Factors []string `json:"factors"`
}

// Analyst is the generative-AI backend contract for market analysis.
type Analyst interface {
	// ClassifyHeadlines issues one batched sentiment classification
	// request and returns the backend's per-headline labels.
	ClassifyHeadlines(ctx context.Context, headlines []Headline) ([]Classification, error)

	// SynthesizeSentiment produces one aggregate market verdict from the
	// given headlines.
	SynthesizeSentiment(ctx context.Context, headlines []string) (*Verdict, error)
}
