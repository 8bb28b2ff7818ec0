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
	finnhubAdapterName = "Finnhub"
	finnhubBaseURL     = "https://finnhub.io/api/v1"

	// finnhubLookback bounds the company-news date window.
	finnhubLookback = 7 * 24 * time.Hour
)

// FinnhubAdapter fetches market and company news from the Finnhub REST API.
// With no symbols in scope it issues one general market-news query; with
// symbols it queries company news per symbol.
type FinnhubAdapter struct {
	apiKey         string
	baseURL        string
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
}

// NewFinnhubAdapter creates a Finnhub adapter.
// It automatically configures circuit breaker and retry logic.
func NewFinnhubAdapter(client *http.Client, apiKey string) *FinnhubAdapter {
	return &FinnhubAdapter{
		apiKey:         apiKey,
		baseURL:        finnhubBaseURL,
		client:         client,
		circuitBreaker: circuitbreaker.New(circuitbreaker.NewsFetchConfig(finnhubAdapterName)),
		retryConfig:    retry.NewsFetchConfig(),
	}
}

// WithBaseURL overrides the upstream endpoint. Used by tests.
func (a *FinnhubAdapter) WithBaseURL(baseURL string) *FinnhubAdapter {
	a.baseURL = baseURL
	return a
}

// Name implements Adapter.
func (a *FinnhubAdapter) Name() string { return finnhubAdapterName }

// Fetch retrieves general market news or, when the scope names symbols,
// company news for each of them.
func (a *FinnhubAdapter) Fetch(ctx context.Context, scope Scope) ([]entity.Article, error) {
	if a.apiKey == "" {
		slog.Debug("finnhub api key not configured, skipping",
			slog.String("source", finnhubAdapterName))
		return nil, nil
	}

	if len(scope.Symbols) == 0 {
		return a.fetchWithResilience(ctx, a.generalNewsURL())
	}

	var articles []entity.Article
	for _, symbol := range scope.Symbols {
		items, err := a.fetchWithResilience(ctx, a.companyNewsURL(symbol))
		if err != nil {
			return nil, err
		}
		articles = append(articles, items...)
	}
	return articles, nil
}

func (a *FinnhubAdapter) fetchWithResilience(ctx context.Context, endpoint string) ([]entity.Article, error) {
	var articles []entity.Article

	retryErr := retry.WithBackoff(ctx, a.retryConfig, func() error {
		cbResult, err := a.circuitBreaker.Execute(func() (interface{}, error) {
			return a.doFetch(ctx, endpoint)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("finnhub circuit breaker open, request rejected",
					slog.String("source", finnhubAdapterName),
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

func (a *FinnhubAdapter) generalNewsURL() string {
	params := url.Values{}
	params.Set("category", "general")
	params.Set("token", a.apiKey)
	return a.baseURL + "/news?" + params.Encode()
}

func (a *FinnhubAdapter) companyNewsURL(symbol string) string {
	now := time.Now()
	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("from", now.Add(-finnhubLookback).Format("2006-01-02"))
	params.Set("to", now.Format("2006-01-02"))
	params.Set("token", a.apiKey)
	return a.baseURL + "/company-news?" + params.Encode()
}

func (a *FinnhubAdapter) doFetch(ctx context.Context, endpoint string) ([]entity.Article, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("finnhub request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("finnhub fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &retry.HTTPError{StatusCode: resp.StatusCode, Message: "finnhub fetch"}
	}

	var raw []finnhubItem
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("finnhub decode: %w", err)
	}

	articles := make([]entity.Article, 0, len(raw))
	for _, item := range raw {
		var symbols []string
		if item.Related != "" {
			symbols = strings.Split(item.Related, ",")
		}

		articles = append(articles, entity.Article{
			ID:             strconv.FormatInt(item.ID, 10),
			Headline:       item.Headline,
			Summary:        truncatePreview(item.Summary),
			Source:         finnhubAdapterName,
			URL:            item.URL,
			PublishedAt:    time.Unix(item.Datetime, 0),
			Category:       item.Category,
			RelatedSymbols: symbols,
		})
	}

	return articles, nil
}

type finnhubItem struct {
	ID       int64  `json:"id"`
	Headline string `json:"headline"`
	Summary  string `json:"summary"`
	URL      string `json:"url"`
	Datetime int64  `json:"datetime"`
	Category string `json:"category"`
	Related  string `json:"related"`
}
