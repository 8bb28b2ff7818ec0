package http

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"marketpulse/internal/handler/http/respond"
)

// HealthResponse is the JSON body of the health check endpoint.
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

// HealthHandler reports process liveness and database connectivity.
type HealthHandler struct {
	DB *sql.DB
}

func (h HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	checks := map[string]string{}
	status := "healthy"
	code := http.StatusOK

	if h.DB != nil {
		if err := h.DB.PingContext(ctx); err != nil {
			checks["database"] = "unhealthy: " + err.Error()
			status = "unhealthy"
			code = http.StatusServiceUnavailable
		} else {
			checks["database"] = "healthy"
		}
	}

	respond.JSON(w, code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
	})
}
