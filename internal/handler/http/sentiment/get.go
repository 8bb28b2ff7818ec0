// Package sentiment provides HTTP handlers for the aggregate market
// sentiment verdict.
package sentiment

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"marketpulse/internal/domain/entity"
	"marketpulse/internal/handler/http/respond"
)

// Provider is the sentiment use case surface the handlers depend on. Both
// operations always return a structurally valid verdict.
type Provider interface {
	GetMarketSentiment(ctx context.Context) *entity.MarketSentiment
	UpdateAndSaveSentiment(ctx context.Context) *entity.MarketSentiment
}

// GetHandler serves the cached-or-fresh market sentiment verdict.
type GetHandler struct {
	Svc    Provider
	Logger *slog.Logger
}

func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	verdict := h.Svc.GetMarketSentiment(r.Context())

	h.Logger.Info("market sentiment request",
		slog.String("status", string(verdict.Status)),
		slog.Int("score", verdict.Score),
		slog.Duration("duration", time.Since(start)))

	respond.JSON(w, http.StatusOK, verdict)
}
