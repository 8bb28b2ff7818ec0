package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"marketpulse/internal/domain/entity"
	"marketpulse/internal/resilience/circuitbreaker"
	"marketpulse/internal/resilience/retry"
)

const (
	marketauxAdapterName = "Marketaux"
	marketauxBaseURL     = "https://api.marketaux.com/v1/news/all"

	// marketauxPageSize bounds one fetch to a small page; the upstream
	// caches responses for a fixed window so larger pages buy nothing.
	marketauxPageSize = 10

	// previewRunes is the maximum body text carried into an article
	// summary before truncation.
	previewRunes = 200
)

// MarketauxAdapter fetches broad financial news from the Marketaux REST API.
type MarketauxAdapter struct {
	apiKey         string
	baseURL        string
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
}

// NewMarketauxAdapter creates a Marketaux adapter.
// It automatically configures circuit breaker and retry logic.
func NewMarketauxAdapter(client *http.Client, apiKey string) *MarketauxAdapter {
	return &MarketauxAdapter{
		apiKey:         apiKey,
		baseURL:        marketauxBaseURL,
		client:         client,
		circuitBreaker: circuitbreaker.New(circuitbreaker.NewsFetchConfig(marketauxAdapterName)),
		retryConfig:    retry.NewsFetchConfig(),
	}
}

// WithBaseURL overrides the upstream endpoint. Used by tests.
func (a *MarketauxAdapter) WithBaseURL(baseURL string) *MarketauxAdapter {
	a.baseURL = baseURL
	return a
}

// Name implements Adapter.
func (a *MarketauxAdapter) Name() string { return marketauxAdapterName }

// Fetch retrieves one page of broad financial news. Symbol scoping narrows
// the query when requested.
func (a *MarketauxAdapter) Fetch(ctx context.Context, scope Scope) ([]entity.Article, error) {
	if a.apiKey == "" {
		slog.Debug("marketaux api key not configured, skipping",
			slog.String("source", marketauxAdapterName))
		return nil, nil
	}

	var articles []entity.Article

	retryErr := retry.WithBackoff(ctx, a.retryConfig, func() error {
		cbResult, err := a.circuitBreaker.Execute(func() (interface{}, error) {
			return a.doFetch(ctx, scope)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("marketaux circuit breaker open, request rejected",
					slog.String("source", marketauxAdapterName),
					slog.String("state", a.circuitBreaker.State().String()))
			}
			return err
		}

		articles = cbResult.([]entity.Article)
		return nil
	})
	if retryErr != nil {
		return nil, retryErr
	}

	return articles, nil
}

func (a *MarketauxAdapter) doFetch(ctx context.Context, scope Scope) ([]entity.Article, error) {
	params := url.Values{}
	params.Set("api_token", a.apiKey)
	params.Set("limit", strconv.Itoa(marketauxPageSize))
	params.Set("language", "en")
	if len(scope.Symbols) > 0 {
		params.Set("symbols", strings.Join(scope.Symbols, ","))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("marketaux request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("marketaux fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &retry.HTTPError{StatusCode: resp.StatusCode, Message: "marketaux fetch"}
	}

	var raw marketauxResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("marketaux decode: %w", err)
	}

	articles := make([]entity.Article, 0, len(raw.Data))
	for _, item := range raw.Data {
		publishedAt, err := time.Parse(time.RFC3339, item.PublishedAt)
		if err != nil {
			publishedAt = time.Now()
		}

		symbols := make([]string, 0, len(item.Entities))
		for _, e := range item.Entities {
			if e.Symbol != "" {
				symbols = append(symbols, e.Symbol)
			}
		}

		articles = append(articles, entity.Article{
			ID:             item.UUID,
			Headline:       item.Title,
			Summary:        truncatePreview(item.Description),
			Source:         marketauxAdapterName,
			URL:            item.URL,
			PublishedAt:    publishedAt,
			RelatedSymbols: symbols,
		})
	}

	return articles, nil
}

type marketauxResponse struct {
	Data []marketauxItem `json:"data"`
}

type marketauxItem struct {
	UUID        string            `json:"uuid"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	URL         string            `json:"url"`
	PublishedAt string            `json:"published_at"`
	Entities    []marketauxEntity `json:"entities"`
}

type marketauxEntity struct {
	Symbol string `json:"symbol"`
}

// truncatePreview shortens long body text to a fixed rune limit with an
// ellipsis marker, leaving short text untouched.
func truncatePreview(text string) string {
	runes := []rune(text)
	if len(runes) <= previewRunes {
		return text
	}
	return string(runes[:previewRunes]) + "..."
}
