// Package news implements the aggregation pipeline: concurrent source
// fan-out, headline deduplication, and the per-symbol company news cache.
package news

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"marketpulse/internal/domain/entity"
	"marketpulse/internal/infra/source"
	"marketpulse/internal/observability/metrics"
	"marketpulse/internal/observability/tracing"
	"marketpulse/internal/repository"
)

// maxAggregatedArticles bounds the working set handed to the AI pipeline.
const maxAggregatedArticles = 20

// Enricher attaches per-article sentiment labels to an aggregated batch.
// Implementations never fail; on backend trouble they return the articles
// unmodified.
type Enricher interface {
	Enrich(ctx context.Context, articles []entity.Article) []entity.Article
}

// Service provides the news aggregation use cases.
type Service struct {
	// GlobalAdapters are queried for market-wide news, in priority order.
	// The order is the dedup tie-break: when two sources report the same
	// headline, the earlier adapter's copy wins.
	GlobalAdapters []source.Adapter

	// SymbolAdapters are queried for company-scoped news.
	SymbolAdapters []source.Adapter

	Repo     repository.CompanyNewsRepository
	Enricher Enricher

	// FetchTimeout bounds each adapter call so one hung upstream cannot
	// stall the fan-in.
	FetchTimeout time.Duration

	// CompanyNewsTTL is the freshness window for cached snapshots.
	CompanyNewsTTL time.Duration

	now func() time.Time
}

// NewService creates a news service. The enricher may be nil, in which case
// aggregated articles are returned without sentiment labels.
func NewService(
	globalAdapters, symbolAdapters []source.Adapter,
	repo repository.CompanyNewsRepository,
	enricher Enricher,
	fetchTimeout, companyNewsTTL time.Duration,
) *Service {
	return &Service{
		GlobalAdapters: globalAdapters,
		SymbolAdapters: symbolAdapters,
		Repo:           repo,
		Enricher:       enricher,
		FetchTimeout:   fetchTimeout,
		CompanyNewsTTL: companyNewsTTL,
		now:            time.Now,
	}
}

// WithClock overrides the service's time source. Used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Aggregate fans out to every global adapter concurrently, merges the
// results in adapter priority order, drops duplicate and too-short
// headlines, sorts most-recent-first and caps the result.
//
// Aggregation never fails: a failing adapter contributes nothing, and the
// worst case is an empty list.
func (s *Service) Aggregate(ctx context.Context) []entity.Article {
	ctx, span := tracing.GetTracer().Start(ctx, "news.aggregate")
	defer span.End()

	results := s.fanOut(ctx, s.GlobalAdapters, source.Global)
	merged := mergeResults(results)
	span.SetAttributes(attribute.Int("news.article_count", len(merged)))
	return merged
}

// GetAggregatedNews returns the aggregated, deduplicated, sentiment-enriched
// market news, most-recent-first, capped at the working-set bound.
func (s *Service) GetAggregatedNews(ctx context.Context) []entity.Article {
	articles := s.Aggregate(ctx)
	if s.Enricher != nil {
		articles = s.Enricher.Enrich(ctx, articles)
	}
	return articles
}

// GetCompanyNewsWithCache returns cached company news when the snapshot is
// still fresh, refetching otherwise. A failed refetch falls back to the
// stale snapshot rather than discarding it; with neither cache nor fresh
// data the result is an empty list, never an error.
func (s *Service) GetCompanyNewsWithCache(ctx context.Context, symbol string) []entity.Article {
	normalized, err := entity.NormalizeSymbol(symbol)
	if err != nil {
		slog.WarnContext(ctx, "invalid symbol for company news",
			slog.String("symbol", symbol),
			slog.String("error", err.Error()))
		return []entity.Article{}
	}

	snapshot, getErr := s.Repo.Get(ctx, normalized)
	if getErr == nil && s.now().Sub(snapshot.UpdatedAt) < s.CompanyNewsTTL {
		metrics.RecordCacheLookup("hit")
		return snapshot.Articles
	}

	fresh := mergeResults(s.fanOut(ctx, s.SymbolAdapters, source.ForSymbol(normalized)))

	if len(fresh) == 0 && getErr == nil {
		// Refetch came back empty but an expired snapshot exists; stale
		// news beats none.
		metrics.RecordCacheLookup("stale")
		slog.WarnContext(ctx, "company news refetch empty, serving stale snapshot",
			slog.String("symbol", normalized),
			slog.Time("updated_at", snapshot.UpdatedAt))
		return snapshot.Articles
	}

	metrics.RecordCacheLookup("miss")

	if err := s.Repo.Upsert(ctx, normalized, fresh); err != nil {
		slog.ErrorContext(ctx, "company news upsert failed",
			slog.String("symbol", normalized),
			slog.String("error", err.Error()))
	}

	return fresh
}

// fanOut queries the given adapters concurrently and returns their results
// in adapter order. Each call is independently time-bounded and failures are
// isolated per adapter.
func (s *Service) fanOut(ctx context.Context, adapters []source.Adapter, scope source.Scope) [][]entity.Article {
	results := make([][]entity.Article, len(adapters))

	eg, egCtx := errgroup.WithContext(ctx)
	for i, adapter := range adapters {
		i, adapter := i, adapter
		eg.Go(func() error {
			fetchCtx, cancel := context.WithTimeout(egCtx, s.FetchTimeout)
			defer cancel()

			start := time.Now()
			articles, err := adapter.Fetch(fetchCtx, scope)
			metrics.RecordFetchDuration(adapter.Name(), time.Since(start))

			if err != nil {
				metrics.RecordFetchError(adapter.Name(), "fetch")
				slog.WarnContext(ctx, "source adapter fetch failed",
					slog.String("source", adapter.Name()),
					slog.String("error", err.Error()))
				return nil
			}

			metrics.RecordArticlesFetched(adapter.Name(), len(articles))
			results[i] = articles
			return nil
		})
	}
	_ = eg.Wait()

	return results
}

// mergeResults concatenates adapter results in priority order, deduplicates
// by normalized headline (first occurrence wins), drops headlines under the
// minimum length, sorts descending by publication time and truncates to the
// working-set bound.
func mergeResults(results [][]entity.Article) []entity.Article {
	seen := make(map[string]struct{})
	merged := make([]entity.Article, 0, maxAggregatedArticles)

	for _, batch := range results {
		for _, article := range batch {
			if entity.HeadlineTooShort(article.Headline) {
				continue
			}
			key := entity.NormalizeHeadline(article.Headline)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			merged = append(merged, article)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].PublishedAt.After(merged[j].PublishedAt)
	})

	if len(merged) > maxAggregatedArticles {
		merged = merged[:maxAggregatedArticles]
	}
	return merged
}
