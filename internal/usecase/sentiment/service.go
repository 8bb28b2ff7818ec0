// Package sentiment implements per-article sentiment enrichment and the
// aggregate market-sentiment verdict pipeline with its single-flight refresh
// coordination.
package sentiment

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"marketpulse/internal/domain/entity"
	"marketpulse/internal/infra/ai"
	"marketpulse/internal/observability/metrics"
	"marketpulse/internal/observability/tracing"
	"marketpulse/internal/repository"
)

// synthesisHeadlines caps how many aggregated headlines feed one synthesis
// call.
const synthesisHeadlines = 15

// refreshKey is the coordinator key for the singleton verdict refresh.
const refreshKey = "market-sentiment"

// NewsProvider supplies the aggregated market headlines for synthesis.
type NewsProvider interface {
	Aggregate(ctx context.Context) []entity.Article
}

// FallbackVerdict is the structurally valid verdict returned whenever the AI
// backend cannot produce one. Callers always receive a verdict, never an
// error.
func FallbackVerdict(now time.Time) *entity.MarketSentiment {
	return &entity.MarketSentiment{
		Status:    entity.StatusNeutral,
		Score:     50,
		Summary:   "Market analysis is initializing...",
		Factors:   []string{"System Start", "Waiting for Data", "Check back soon"},
		UpdatedAt: now,
	}
}

// noDataVerdict is the fallback variant used when no source articles exist
// at all; the AI call is skipped entirely.
func noDataVerdict(now time.Time) *entity.MarketSentiment {
	verdict := FallbackVerdict(now)
	verdict.Summary = "No news available."
	return verdict
}

// Service provides the sentiment use cases.
type Service struct {
	Analyst ai.Analyst
	Repo    repository.SentimentRepository
	News    NewsProvider

	// SentimentTTL is the freshness window for the cached verdict.
	SentimentTTL time.Duration

	coordinator *Coordinator
	now         func() time.Time
}

// NewService creates a sentiment service.
func NewService(
	analyst ai.Analyst,
	repo repository.SentimentRepository,
	news NewsProvider,
	sentimentTTL time.Duration,
) *Service {
	return &Service{
		Analyst:      analyst,
		Repo:         repo,
		News:         news,
		SentimentTTL: sentimentTTL,
		coordinator:  NewCoordinator(),
		now:          time.Now,
	}
}

// WithClock overrides the service's time source. Used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Enrich attaches per-article sentiment labels using one batched AI call.
// Responses are matched by article id, so reordered or dropped entries only
// affect their own article; an article without a usable label defaults to
// Neutral. If the backend fails entirely the articles come back unmodified.
func (s *Service) Enrich(ctx context.Context, articles []entity.Article) []entity.Article {
	if len(articles) == 0 {
		return articles
	}

	headlines := make([]ai.Headline, len(articles))
	for i, article := range articles {
		headlines[i] = ai.Headline{ID: article.ID, Text: article.Headline}
	}

	classifications, err := s.Analyst.ClassifyHeadlines(ctx, headlines)
	if err != nil {
		slog.WarnContext(ctx, "headline classification failed, returning unenriched articles",
			slog.Int("articles", len(articles)),
			slog.String("error", err.Error()))
		return articles
	}

	byID := make(map[string]entity.Sentiment, len(classifications))
	for _, c := range classifications {
		if label := entity.Sentiment(c.Sentiment); label.Valid() {
			byID[c.ID] = label
		}
	}

	enriched := make([]entity.Article, len(articles))
	for i, article := range articles {
		label, ok := byID[article.ID]
		if !ok {
			label = entity.SentimentNeutral
		}
		article.Sentiment = label
		enriched[i] = article
	}
	return enriched
}

// synthesisOutcome describes how a verdict was produced.
type synthesisOutcome int

const (
	// synthesisOK is a real backend verdict.
	synthesisOK synthesisOutcome = iota
	// synthesisNoData is the no-data variant; no AI call was made.
	synthesisNoData
	// synthesisFailed is the fallback after a backend failure.
	synthesisFailed
)

// Synthesize computes a transient aggregate verdict from the current
// aggregated headlines. It never fails: backend trouble yields the fixed
// fallback, and an empty news set skips the AI call for the no-data variant.
func (s *Service) Synthesize(ctx context.Context) *entity.MarketSentiment {
	verdict, _ := s.synthesize(ctx)
	return verdict
}

// synthesize additionally reports how the verdict was produced so the
// refresh path can decide whether it is worth persisting.
func (s *Service) synthesize(ctx context.Context) (*entity.MarketSentiment, synthesisOutcome) {
	ctx, span := tracing.GetTracer().Start(ctx, "sentiment.synthesize")
	defer span.End()

	articles := s.News.Aggregate(ctx)
	if len(articles) > synthesisHeadlines {
		articles = articles[:synthesisHeadlines]
	}

	if len(articles) == 0 {
		slog.InfoContext(ctx, "no articles available, skipping sentiment synthesis")
		return noDataVerdict(s.now()), synthesisNoData
	}

	headlines := make([]string, len(articles))
	for i, article := range articles {
		headlines[i] = article.Headline
	}

	raw, err := s.Analyst.SynthesizeSentiment(ctx, headlines)
	if err != nil {
		slog.WarnContext(ctx, "sentiment synthesis failed, using fallback verdict",
			slog.Int("headlines", len(headlines)),
			slog.String("error", err.Error()))
		return FallbackVerdict(s.now()), synthesisFailed
	}

	verdict := &entity.MarketSentiment{
		Status:    entity.MarketStatus(raw.Status),
		Score:     raw.Score,
		Summary:   raw.Summary,
		Factors:   raw.Factors,
		UpdatedAt: s.now(),
	}
	if verdict.Summary == "" {
		verdict.Summary = "N/A"
	}
	if verdict.Factors == nil {
		verdict.Factors = []string{}
	}
	verdict.Normalize()
	return verdict, synthesisOK
}

// GetMarketSentiment returns the cached verdict while fresh and recomputes
// it otherwise. The result is always structurally valid.
func (s *Service) GetMarketSentiment(ctx context.Context) *entity.MarketSentiment {
	cached, err := s.Repo.Get(ctx)
	if err == nil && s.now().Sub(cached.UpdatedAt) < s.SentimentTTL {
		metrics.RecordSentimentCacheLookup("hit")
		return cached
	}
	if err != nil && !errors.Is(err, entity.ErrNotFound) {
		slog.WarnContext(ctx, "sentiment cache read failed, recomputing",
			slog.String("error", err.Error()))
	}
	metrics.RecordSentimentCacheLookup("miss")

	return s.UpdateAndSaveSentiment(ctx)
}

// UpdateAndSaveSentiment forces a verdict recomputation under the
// single-flight guarantee: concurrent callers share one computation and all
// receive the same verdict.
func (s *Service) UpdateAndSaveSentiment(ctx context.Context) *entity.MarketSentiment {
	return s.coordinator.Do(ctx, refreshKey, func(ctx context.Context) *entity.MarketSentiment {
		verdict, outcome := s.synthesize(ctx)

		if outcome == synthesisFailed {
			// Persisting the backend-failure fallback would refresh the
			// TTL and keep serving it after the backend recovers. The
			// store stays untouched; the next read retries.
			metrics.RecordSentimentRefresh("fallback")
			return verdict
		}

		if err := s.Repo.Upsert(ctx, verdict); err != nil {
			// The verdict is still valid for callers even when the
			// store write fails; the next read recomputes.
			metrics.RecordSentimentRefresh("store_error")
			slog.ErrorContext(ctx, "sentiment upsert failed",
				slog.String("error", err.Error()))
			return verdict
		}

		metrics.RecordSentimentRefresh("success")
		return verdict
	})
}
