package respond_test

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"marketpulse/internal/handler/http/respond"
)

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	respond.JSON(rec, 200, map[string]int{"count": 3})

	if rec.Code != 200 {
		t.Fatalf("code = %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q", got)
	}

	var body map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["count"] != 3 {
		t.Errorf("body = %v", body)
	}
}

func TestSafeError_ValidationPassesThrough(t *testing.T) {
	rec := httptest.NewRecorder()
	respond.SafeError(rec, 400, errors.New("symbol is required"))

	var body map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["error"] != "symbol is required" {
		t.Errorf("error = %q, want validation message passed through", body["error"])
	}
}

func TestSafeError_InternalMasked(t *testing.T) {
	rec := httptest.NewRecorder()
	respond.SafeError(rec, 500, errors.New("pq: connection refused at 10.0.0.5:5432"))

	var body map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["error"] != "internal server error" {
		t.Errorf("error = %q, want masked message", body["error"])
	}
}

func TestSafeError_NilErrorWritesNothing(t *testing.T) {
	rec := httptest.NewRecorder()
	respond.SafeError(rec, 500, nil)

	if rec.Body.Len() != 0 {
		t.Errorf("body = %q, want empty", rec.Body.String())
	}
}
