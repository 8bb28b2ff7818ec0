package sentiment

import (
	"context"

	"golang.org/x/sync/singleflight"

	"marketpulse/internal/domain/entity"
	"marketpulse/internal/observability/metrics"
)

// Coordinator guarantees at most one in-flight verdict computation per key
// within the process. Callers arriving while a computation runs join it and
// receive the same verdict; the flight is torn down when the computation
// settles, success or not, so a failed refresh never wedges future calls.
//
// The guarantee is process-local only. A duplicate computation in another
// process is wasteful but not incorrect.
type Coordinator struct {
	group singleflight.Group
}

// NewCoordinator creates a refresh coordinator.
func NewCoordinator() *Coordinator {
	return &Coordinator{}
}

// Do runs fn under the single-flight guarantee for key and returns its
// verdict. The computation runs detached from the leader's cancellation:
// its result is shared with joined callers, so one caller giving up must not
// abort the refresh for everyone else.
func (c *Coordinator) Do(ctx context.Context, key string, fn func(context.Context) *entity.MarketSentiment) *entity.MarketSentiment {
	leader := false
	result, _, _ := c.group.Do(key, func() (interface{}, error) {
		leader = true
		return fn(context.WithoutCancel(ctx)), nil
	})

	metrics.RecordRefreshCall(!leader)
	return result.(*entity.MarketSentiment)
}
