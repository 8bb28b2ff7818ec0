// Package news provides HTTP handlers for aggregated market news and
// per-symbol company news.
package news

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"marketpulse/internal/domain/entity"
	"marketpulse/internal/handler/http/respond"
)

// Reader is the news use case surface the handlers depend on.
type Reader interface {
	GetAggregatedNews(ctx context.Context) []entity.Article
	GetCompanyNewsWithCache(ctx context.Context, symbol string) []entity.Article
}

// ListHandler serves the aggregated, sentiment-enriched market news.
type ListHandler struct {
	Svc    Reader
	Logger *slog.Logger
}

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	articles := h.Svc.GetAggregatedNews(ctx)
	if articles == nil {
		articles = []entity.Article{}
	}

	h.Logger.Info("aggregated news request",
		slog.Int("count", len(articles)),
		slog.Duration("duration", time.Since(start)))

	respond.JSON(w, http.StatusOK, articles)
}
