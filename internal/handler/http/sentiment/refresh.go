package sentiment

import (
	"log/slog"
	"net/http"
	"time"

	"marketpulse/internal/handler/http/respond"
)

// RefreshHandler forces a verdict recomputation. Concurrent refreshes share
// one computation, so hammering this endpoint triggers at most one AI call
// at a time.
type RefreshHandler struct {
	Svc    Provider
	Logger *slog.Logger
}

func (h RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	verdict := h.Svc.UpdateAndSaveSentiment(r.Context())

	h.Logger.Info("market sentiment refresh",
		slog.String("status", string(verdict.Status)),
		slog.Int("score", verdict.Score),
		slog.Duration("duration", time.Since(start)))

	respond.JSON(w, http.StatusOK, verdict)
}
