package source

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/mmcdole/gofeed"
	"github.com/sony/gobreaker"

	"marketpulse/internal/domain/entity"
	"marketpulse/internal/resilience/circuitbreaker"
	"marketpulse/internal/resilience/retry"
)

const rssAdapterName = "RSS"

// RSSAdapter fetches articles from configured syndication feeds using the
// gofeed library. Feed entries rarely carry stable ids, so each article gets
// a synthetic UUID per fetch cycle.
type RSSAdapter struct {
	feedURLs       []string
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
}

// NewRSSAdapter creates an RSS adapter for the given feed URLs.
// It automatically configures circuit breaker and retry logic.
func NewRSSAdapter(client *http.Client, feedURLs []string) *RSSAdapter {
	return &RSSAdapter{
		feedURLs:       feedURLs,
		client:         client,
		circuitBreaker: circuitbreaker.New(circuitbreaker.NewsFetchConfig(rssAdapterName)),
		retryConfig:    retry.NewsFetchConfig(),
	}
}

// Name implements Adapter.
func (a *RSSAdapter) Name() string { return rssAdapterName }

// Fetch retrieves and parses every configured feed. A single failing feed
// contributes nothing but does not fail the adapter as long as at least one
// feed succeeds; the error of the last failing feed is returned only when
// every feed failed.
func (a *RSSAdapter) Fetch(ctx context.Context, _ Scope) ([]entity.Article, error) {
	var (
		articles []entity.Article
		lastErr  error
		failures int
	)

	for _, feedURL := range a.feedURLs {
		items, err := a.fetchFeed(ctx, feedURL)
		if err != nil {
			failures++
			lastErr = err
			slog.Warn("rss feed fetch failed",
				slog.String("source", rssAdapterName),
				slog.String("url", feedURL),
				slog.String("error", err.Error()))
			continue
		}
		articles = append(articles, items...)
	}

	if len(a.feedURLs) > 0 && failures == len(a.feedURLs) {
		return nil, lastErr
	}
	return articles, nil
}

func (a *RSSAdapter) fetchFeed(ctx context.Context, feedURL string) ([]entity.Article, error) {
	var items []entity.Article

	retryErr := retry.WithBackoff(ctx, a.retryConfig, func() error {
		cbResult, err := a.circuitBreaker.Execute(func() (interface{}, error) {
			return a.parseFeed(ctx, feedURL)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("rss circuit breaker open, request rejected",
					slog.String("source", rssAdapterName),
					slog.String("url", feedURL),
					slog.String("state", a.circuitBreaker.State().String()))
			}
			return err
		}

		items = cbResult.([]entity.Article)
		return nil
	})
	if retryErr != nil {
		return nil, retryErr
	}

	return items, nil
}

func (a *RSSAdapter) parseFeed(ctx context.Context, feedURL string) ([]entity.Article, error) {
	fp := gofeed.NewParser()
	fp.UserAgent = "MarketPulseBot"
	fp.Client = a.client

	feed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, err
	}

	articles := make([]entity.Article, 0, len(feed.Items))
	for _, it := range feed.Items {
		pubAt := time.Now()
		if it.PublishedParsed != nil {
			pubAt = *it.PublishedParsed
		}

		summary := it.Description
		if summary == "" {
			summary = it.Content
		}

		category := ""
		if len(it.Categories) > 0 {
			category = it.Categories[0]
		}

		articles = append(articles, entity.Article{
			ID:          uuid.NewString(),
			Headline:    it.Title,
			Summary:     summary,
			Source:      rssAdapterName,
			URL:         it.Link,
			PublishedAt: pubAt,
			Category:    category,
		})
	}

	return articles, nil
}
