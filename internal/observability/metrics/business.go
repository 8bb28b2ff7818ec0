package metrics

import "time"

// RecordArticlesFetched records the number of articles fetched from a source
// adapter. This tracks upstream activity and adapter health.
func RecordArticlesFetched(source string, count int) {
	NewsArticlesFetchedTotal.WithLabelValues(source).Add(float64(count))
}

// RecordFetchError records a fetch failure for a source adapter.
// Reason should be a short stable tag such as "fetch_failed" or "timeout".
func RecordFetchError(source, reason string) {
	NewsFetchErrorsTotal.WithLabelValues(source, reason).Inc()
}

// RecordFetchDuration records the time taken for one adapter fetch.
func RecordFetchDuration(source string, duration time.Duration) {
	NewsFetchDuration.WithLabelValues(source).Observe(duration.Seconds())
}

// RecordCacheLookup records a company news cache lookup result
// ("hit", "miss", or "stale").
func RecordCacheLookup(result string) {
	NewsCacheRequestsTotal.WithLabelValues(result).Inc()
}

// RecordSentimentCacheLookup records a sentiment verdict cache lookup result
// ("hit" or "miss").
func RecordSentimentCacheLookup(result string) {
	SentimentCacheRequestsTotal.WithLabelValues(result).Inc()
}

// RecordAIRequest records the result and duration of one AI backend call.
// Operation is "classify" or "synthesize".
func RecordAIRequest(operation string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	AIRequestsTotal.WithLabelValues(operation, status).Inc()
	AIRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordSentimentRefresh records the outcome of one sentiment refresh
// computation ("success", "fallback" or "store_error").
func RecordSentimentRefresh(status string) {
	SentimentRefreshTotal.WithLabelValues(status).Inc()
}

// RecordRefreshCall records a refresh caller by single-flight role:
// "leader" started the computation, "joined" awaited an in-flight one.
func RecordRefreshCall(shared bool) {
	mode := "leader"
	if shared {
		mode = "joined"
	}
	SentimentRefreshCallsTotal.WithLabelValues(mode).Inc()
}
