package ai

import "context"

// NoOp is an analyst used when no API credential is configured. Every call
// reports ErrUnavailable, which callers treat as a degraded backend: articles
// stay unenriched and the synthesizer falls back to its default verdict.
type NoOp struct{}

// NewNoOp creates a no-op analyst.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// ClassifyHeadlines implements Analyst.
func (n *NoOp) ClassifyHeadlines(_ context.Context, _ []Headline) ([]Classification, error) {
	return nil, ErrUnavailable
}

// SynthesizeSentiment implements Analyst.
func (n *NoOp) SynthesizeSentiment(_ context.Context, _ []string) (*Verdict, error) {
	return nil, ErrUnavailable
}
