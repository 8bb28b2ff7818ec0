package sentiment

import (
	"log/slog"
	"net/http"
)

// Register registers the sentiment HTTP handlers with the given mux.
func Register(mux *http.ServeMux, svc Provider, logger *slog.Logger) {
	mux.Handle("GET /api/sentiment", GetHandler{Svc: svc, Logger: logger})
	mux.Handle("POST /api/sentiment/refresh", RefreshHandler{Svc: svc, Logger: logger})
}
