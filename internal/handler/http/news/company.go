package news

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"marketpulse/internal/domain/entity"
	"marketpulse/internal/handler/http/respond"
)

// CompanyHandler serves cached-or-fresh company news for one ticker symbol.
type CompanyHandler struct {
	Svc    Reader
	Logger *slog.Logger
}

func (h CompanyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	symbol := r.PathValue("symbol")
	if _, err := entity.NormalizeSymbol(symbol); err != nil {
		respond.SafeError(w, http.StatusBadRequest,
			fmt.Errorf("invalid symbol %q", symbol))
		return
	}

	articles := h.Svc.GetCompanyNewsWithCache(ctx, symbol)
	if articles == nil {
		articles = []entity.Article{}
	}

	h.Logger.Info("company news request",
		slog.String("symbol", symbol),
		slog.Int("count", len(articles)),
		slog.Duration("duration", time.Since(start)))

	respond.JSON(w, http.StatusOK, articles)
}
