// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track request patterns and performance
var (
	// HTTPRequestsTotal counts total HTTP requests by method, path, and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures HTTP request duration in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

// News pipeline metrics
var (
	// NewsArticlesFetchedTotal counts articles fetched per source adapter
	NewsArticlesFetchedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "news_articles_fetched_total",
			Help: "Total number of articles fetched from news sources",
		},
		[]string{"source"},
	)

	// NewsFetchErrorsTotal counts fetch failures per source adapter
	NewsFetchErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "news_fetch_errors_total",
			Help: "Total number of news source fetch failures",
		},
		[]string{"source", "reason"},
	)

	// NewsFetchDuration measures per-source fetch duration in seconds
	NewsFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "news_fetch_duration_seconds",
			Help:    "News source fetch duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	// NewsCacheRequestsTotal counts company news cache lookups by result
	NewsCacheRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "news_cache_requests_total",
			Help: "Total number of company news cache lookups",
		},
		[]string{"result"},
	)
)

// AI and sentiment metrics
var (
	// AIRequestsTotal counts AI backend calls by operation and status
	AIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ai_requests_total",
			Help: "Total number of AI backend requests",
		},
		[]string{"operation", "status"},
	)

	// AIRequestDuration measures AI backend call duration in seconds
	AIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ai_request_duration_seconds",
			Help:    "AI backend request duration in seconds",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"operation"},
	)

	// SentimentRefreshTotal counts sentiment refresh computations by outcome
	SentimentRefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentiment_refresh_total",
			Help: "Total number of market sentiment refresh computations",
		},
		[]string{"status"},
	)

	// SentimentRefreshCallsTotal counts refresh callers by single-flight role
	SentimentRefreshCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentiment_refresh_calls_total",
			Help: "Total refresh callers, split by whether they led or joined an in-flight computation",
		},
		[]string{"mode"},
	)

	// SentimentCacheRequestsTotal counts sentiment verdict cache lookups by result
	SentimentCacheRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentiment_cache_requests_total",
			Help: "Total number of market sentiment cache lookups",
		},
		[]string{"result"},
	)
)
