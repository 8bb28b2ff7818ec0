package tracing_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"marketpulse/internal/observability/tracing"
)

func TestMiddlewarePassesThroughResponse(t *testing.T) {
	handler := tracing.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("body"))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/news", nil))

	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusTeapot)
	}
	if rec.Body.String() != "body" {
		t.Errorf("body = %q, want %q", rec.Body.String(), "body")
	}
}

func TestMiddlewareSetsTraceHeader(t *testing.T) {
	handler := tracing.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/sentiment", nil))

	if rec.Header().Get("X-Trace-Id") == "" {
		t.Error("X-Trace-Id header not set")
	}
}
