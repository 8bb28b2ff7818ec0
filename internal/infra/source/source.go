// Package source provides adapters that turn upstream news providers into
// the common Article shape. Each adapter carries its own circuit breaker and
// retry policy so one flaky upstream never affects the others.
package source

import (
	"context"

	"marketpulse/internal/domain/entity"
)

// Scope selects what an adapter should fetch. An empty Symbols list means a
// global (market-wide) query; a non-empty list restricts the fetch to those
// tickers where the upstream supports it.
type Scope struct {
	Symbols []string
}

// Global is the market-wide scope used by the aggregation pass.
var Global = Scope{}

// ForSymbol returns a scope restricted to a single ticker.
func ForSymbol(symbol string) Scope {
	return Scope{Symbols: []string{symbol}}
}

// Adapter fetches news from one upstream provider.
// Fetch returns the raw upstream articles mapped into entity.Article; it may
// return an error, which the caller isolates per adapter rather than failing
// the whole aggregation.
type Adapter interface {
	// Name identifies the adapter in logs and metrics.
	Name() string
	// Fetch retrieves articles within the given scope.
	Fetch(ctx context.Context, scope Scope) ([]entity.Article, error)
}
