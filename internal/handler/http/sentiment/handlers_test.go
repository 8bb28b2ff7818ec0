package sentiment_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"marketpulse/internal/domain/entity"
	sentimentHandler "marketpulse/internal/handler/http/sentiment"
)

type stubProvider struct {
	verdict      *entity.MarketSentiment
	getCalls     int
	refreshCalls int
}

func (s *stubProvider) GetMarketSentiment(_ context.Context) *entity.MarketSentiment {
	s.getCalls++
	return s.verdict
}

func (s *stubProvider) UpdateAndSaveSentiment(_ context.Context) *entity.MarketSentiment {
	s.refreshCalls++
	return s.verdict
}

func verdict() *entity.MarketSentiment {
	return &entity.MarketSentiment{
		Status:    entity.StatusBullish,
		Score:     72,
		Summary:   "Risk-on across sectors.",
		Factors:   []string{"a", "b", "c", "d", "e"},
		UpdatedAt: time.Date(2026, 8, 17, 9, 0, 0, 0, time.UTC),
	}
}

func newMux(svc sentimentHandler.Provider) *http.ServeMux {
	mux := http.NewServeMux()
	sentimentHandler.Register(mux, svc, slog.Default())
	return mux
}

func TestGetHandler(t *testing.T) {
	svc := &stubProvider{verdict: verdict()}

	rec := httptest.NewRecorder()
	newMux(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/sentiment", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d", rec.Code)
	}

	var got entity.MarketSentiment
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if got.Status != entity.StatusBullish || got.Score != 72 {
		t.Fatalf("got = %+v", got)
	}
	if svc.getCalls != 1 || svc.refreshCalls != 0 {
		t.Fatalf("calls = get %d refresh %d", svc.getCalls, svc.refreshCalls)
	}
}

func TestRefreshHandler(t *testing.T) {
	svc := &stubProvider{verdict: verdict()}

	rec := httptest.NewRecorder()
	newMux(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/sentiment/refresh", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d", rec.Code)
	}
	if svc.refreshCalls != 1 {
		t.Fatalf("refresh calls = %d, want 1", svc.refreshCalls)
	}
}

func TestRefreshHandler_MethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	newMux(&stubProvider{verdict: verdict()}).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/sentiment/refresh", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("code = %d, want 405", rec.Code)
	}
}
