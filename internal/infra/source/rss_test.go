package source_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"marketpulse/internal/infra/source"
)

func TestRSSAdapter_Fetch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rss := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Market Feed</title>
    <link>https://example.com</link>
    <description>Market headlines</description>
    <item>
      <title>Fed raises rates by a quarter point</title>
      <link>https://example.com/fed</link>
      <description>The central bank moved again.</description>
      <category>economy</category>
      <pubDate>Mon, 17 Aug 2026 09:00:00 +0000</pubDate>
    </item>
    <item>
      <title>Tech stocks rally on earnings</title>
      <link>https://example.com/tech</link>
      <description>Large caps led the move.</description>
      <pubDate>Mon, 17 Aug 2026 08:00:00 +0000</pubDate>
    </item>
  </channel>
</rss>`
		w.Header().Set("Content-Type", "application/rss+xml")
		if _, err := w.Write([]byte(rss)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	client := &http.Client{Timeout: 10 * time.Second}
	adapter := source.NewRSSAdapter(client, []string{server.URL})

	articles, err := adapter.Fetch(context.Background(), source.Global)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if len(articles) != 2 {
		t.Fatalf("articles length = %d, want 2", len(articles))
	}

	first := articles[0]
	if first.Headline != "Fed raises rates by a quarter point" {
		t.Errorf("Headline = %q", first.Headline)
	}
	if first.URL != "https://example.com/fed" {
		t.Errorf("URL = %q", first.URL)
	}
	if first.Source != "RSS" {
		t.Errorf("Source = %q, want RSS", first.Source)
	}
	if first.Category != "economy" {
		t.Errorf("Category = %q, want economy", first.Category)
	}
	if first.ID == "" {
		t.Error("ID should be assigned a synthetic value")
	}
	if first.ID == articles[1].ID {
		t.Error("synthetic ids must be unique within a fetch")
	}

	want := time.Date(2026, 8, 17, 9, 0, 0, 0, time.UTC)
	if !first.PublishedAt.Equal(want) {
		t.Errorf("PublishedAt = %v, want %v", first.PublishedAt, want)
	}
}

// An entry without pubDate still produces an article; fetch time stands in
// for the missing timestamp.
func TestRSSAdapter_Fetch_MissingPubDate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rss := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Market Feed</title>
    <link>https://example.com</link>
    <description>d</description>
    <item>
      <title>Oil prices steady ahead of OPEC meeting</title>
      <link>https://example.com/oil</link>
    </item>
  </channel>
</rss>`
		_, _ = w.Write([]byte(rss))
	}))
	defer server.Close()

	before := time.Now()
	adapter := source.NewRSSAdapter(server.Client(), []string{server.URL})
	articles, err := adapter.Fetch(context.Background(), source.Global)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("articles length = %d, want 1", len(articles))
	}
	if articles[0].PublishedAt.Before(before) {
		t.Errorf("PublishedAt = %v, want fetch-time fallback", articles[0].PublishedAt)
	}
}

// One dead feed must not sink the others.
func TestRSSAdapter_Fetch_PartialFeedFailure(t *testing.T) {
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rss := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Feed</title>
    <link>https://example.com</link>
    <description>d</description>
    <item>
      <title>Markets open mixed on jobs data</title>
      <link>https://example.com/jobs</link>
      <pubDate>Mon, 17 Aug 2026 09:00:00 +0000</pubDate>
    </item>
  </channel>
</rss>`
		_, _ = w.Write([]byte(rss))
	}))
	defer good.Close()

	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer bad.Close()

	adapter := source.NewRSSAdapter(good.Client(), []string{bad.URL, good.URL})
	articles, err := adapter.Fetch(context.Background(), source.Global)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("articles length = %d, want 1", len(articles))
	}
}
