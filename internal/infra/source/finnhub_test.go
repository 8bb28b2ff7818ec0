package source_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"marketpulse/internal/infra/source"
)

func TestFinnhubAdapter_Fetch_GeneralNews(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if got := r.URL.Query().Get("category"); got != "general" {
			t.Errorf("category = %q, want general", got)
		}
		body := `[
  {
    "id": 42,
    "headline": "Dollar weakens against major currencies",
    "summary": "FX desks turned cautious.",
    "url": "https://example.com/fx",
    "datetime": 1755421200,
    "category": "forex",
    "related": "EURUSD,GBPUSD"
  }
]`
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	defer server.Close()

	adapter := source.NewFinnhubAdapter(server.Client(), "test-key").WithBaseURL(server.URL)
	articles, err := adapter.Fetch(context.Background(), source.Global)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if gotPath != "/news" {
		t.Errorf("path = %q, want /news for global scope", gotPath)
	}
	if len(articles) != 1 {
		t.Fatalf("articles length = %d, want 1", len(articles))
	}

	a := articles[0]
	if a.ID != "42" {
		t.Errorf("ID = %q, want 42", a.ID)
	}
	if a.Source != "Finnhub" {
		t.Errorf("Source = %q, want Finnhub", a.Source)
	}
	if len(a.RelatedSymbols) != 2 || a.RelatedSymbols[0] != "EURUSD" {
		t.Errorf("RelatedSymbols = %v", a.RelatedSymbols)
	}
	if !a.PublishedAt.Equal(time.Unix(1755421200, 0)) {
		t.Errorf("PublishedAt = %v", a.PublishedAt)
	}
}

func TestFinnhubAdapter_Fetch_CompanyNews(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/company-news" {
			t.Errorf("path = %q, want /company-news for symbol scope", r.URL.Path)
		}
		if got := r.URL.Query().Get("symbol"); got != "AAPL" {
			t.Errorf("symbol = %q, want AAPL", got)
		}
		if r.URL.Query().Get("from") == "" || r.URL.Query().Get("to") == "" {
			t.Error("date window params missing")
		}
		body := `[{"id": 7, "headline": "Apple announces new product line", "url": "u", "datetime": 1755421200, "related": "AAPL"}]`
		_, _ = w.Write([]byte(body))
	}))
	defer server.Close()

	adapter := source.NewFinnhubAdapter(server.Client(), "test-key").WithBaseURL(server.URL)
	articles, err := adapter.Fetch(context.Background(), source.ForSymbol("AAPL"))
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("articles length = %d, want 1", len(articles))
	}
	if articles[0].RelatedSymbols[0] != "AAPL" {
		t.Errorf("RelatedSymbols = %v, want [AAPL]", articles[0].RelatedSymbols)
	}
}

func TestFinnhubAdapter_Fetch_NoAPIKey(t *testing.T) {
	adapter := source.NewFinnhubAdapter(http.DefaultClient, "").
		WithBaseURL("http://127.0.0.1:0")

	articles, err := adapter.Fetch(context.Background(), source.Global)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(articles) != 0 {
		t.Fatalf("articles length = %d, want 0", len(articles))
	}
}
