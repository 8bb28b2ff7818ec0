// Command diagnose_feeds checks every feed in sources.yaml and reports
// reachability, item counts and freshness. Run it when the RSS adapter
// starts logging fetch failures to see which upstream broke.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/mmcdole/gofeed"
	"gopkg.in/yaml.v3"
)

// FeedDiagnostic is the per-feed result printed as JSON.
type FeedDiagnostic struct {
	URL          string `json:"url"`
	Status       string `json:"status"` // "OK", "HTTP_ERROR", "PARSE_ERROR", "EMPTY", "TIMEOUT"
	ItemCount    int    `json:"item_count"`
	LatestDate   string `json:"latest_date,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
	ResponseTime int64  `json:"response_time_ms"`
}

type sourcesFile struct {
	Feeds []string `yaml:"feeds"`
}

func main() {
	path := os.Getenv("SOURCES_FILE")
	if path == "" {
		path = "sources.yaml"
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", path, err)
	}
	var sources sourcesFile
	if err := yaml.Unmarshal(raw, &sources); err != nil {
		log.Fatalf("Failed to parse %s: %v", path, err)
	}
	if len(sources.Feeds) == 0 {
		log.Fatalf("No feeds configured in %s", path)
	}

	parser := gofeed.NewParser()
	parser.UserAgent = "MarketPulseBot"
	parser.Client = &http.Client{Timeout: 15 * time.Second}

	results := make([]FeedDiagnostic, 0, len(sources.Feeds))
	okCount := 0

	for _, url := range sources.Feeds {
		diag := diagnose(parser, url)
		if diag.Status == "OK" {
			okCount++
		}
		results = append(results, diag)
		fmt.Printf("[%s] %s (%d items, %dms)\n",
			diag.Status, diag.URL, diag.ItemCount, diag.ResponseTime)
		if diag.ErrorMessage != "" {
			fmt.Printf("        %s\n", diag.ErrorMessage)
		}
	}

	fmt.Printf("\n%d/%d feeds healthy\n\n", okCount, len(sources.Feeds))

	out, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal results: %v", err)
	}
	fmt.Println(string(out))

	if okCount < len(sources.Feeds) {
		os.Exit(1)
	}
}

func diagnose(parser *gofeed.Parser, url string) FeedDiagnostic {
	diag := FeedDiagnostic{URL: url}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	start := time.Now()
	feed, err := parser.ParseURLWithContext(url, ctx)
	diag.ResponseTime = time.Since(start).Milliseconds()

	if err != nil {
		diag.ErrorMessage = err.Error()
		switch {
		case ctx.Err() != nil:
			diag.Status = "TIMEOUT"
		case isHTTPError(err):
			diag.Status = "HTTP_ERROR"
		default:
			diag.Status = "PARSE_ERROR"
		}
		return diag
	}

	diag.ItemCount = len(feed.Items)
	if diag.ItemCount == 0 {
		diag.Status = "EMPTY"
		return diag
	}

	var latest time.Time
	for _, item := range feed.Items {
		if item.PublishedParsed != nil && item.PublishedParsed.After(latest) {
			latest = *item.PublishedParsed
		}
	}
	if !latest.IsZero() {
		diag.LatestDate = latest.Format(time.RFC3339)
	}

	diag.Status = "OK"
	return diag
}

func isHTTPError(err error) bool {
	var httpErr gofeed.HTTPError
	return errors.As(err, &httpErr)
}
