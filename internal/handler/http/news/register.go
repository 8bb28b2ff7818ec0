package news

import (
	"log/slog"
	"net/http"
)

// Register registers the news HTTP handlers with the given mux.
func Register(mux *http.ServeMux, svc Reader, logger *slog.Logger) {
	mux.Handle("GET /api/news", ListHandler{Svc: svc, Logger: logger})
	mux.Handle("GET /api/news/{symbol}", CompanyHandler{Svc: svc, Logger: logger})
}
