package sync

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/shopsync/backend/internal/domain/sync"
	"github.com/shopsync/backend/internal/infrastructure/shopify"
)

// OrderFetcher retrieves raw platform orders. Implemented by shopify.Client;
// tests substitute fakes.
type OrderFetcher interface {
	// FetchInterval pages through every order placed inside the interval.
	FetchInterval(ctx context.Context, interval sync.Interval) ([]shopify.Order, error)
	// ProbeDateRange derives the overall order date bounds of the store.
	ProbeDateRange(ctx context.Context) (oldest, newest time.Time, err error)
}

// DefaultWorkers bounds the number of in-flight interval fetches. Two keeps
// the combined request rate under the platform ceiling.
const DefaultWorkers = 2

// Orchestrator splits a date range into windows and fetches them with a
// bounded worker pool. A failed window is logged and dropped; the remaining
// windows still contribute to the aggregate.
type Orchestrator struct {
	fetcher OrderFetcher
	log     *zap.Logger
	workers int
	window  time.Duration
}

// NewOrchestrator creates a new Orchestrator
func NewOrchestrator(fetcher OrderFetcher, log *zap.Logger, workers int, window time.Duration) *Orchestrator {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if window <= 0 {
		window = sync.DefaultWindow
	}
	return &Orchestrator{
		fetcher: fetcher,
		log:     log,
		workers: workers,
		window:  window,
	}
}

type intervalResult struct {
	orders []shopify.Order
	err    error
}

// FetchRange fetches every order placed in [start, end]. When either bound is
// nil the missing bounds are probed from the store before windowing. Orders
// from different windows merge in completion order; no cross-window ordering
// is guaranteed.
func (o *Orchestrator) FetchRange(ctx context.Context, start, end *time.Time) ([]shopify.Order, error) {
	if start == nil || end == nil {
		oldest, newest, err := o.fetcher.ProbeDateRange(ctx)
		if err != nil {
			return nil, err
		}
		if start == nil {
			start = &oldest
		}
		if end == nil {
			end = &newest
		}
		o.log.Info("derived fetch range from store",
			zap.Time("start", *start),
			zap.Time("end", *end))
	}

	intervals, err := sync.SplitRange(*start, *end, o.window)
	if err != nil {
		return nil, err
	}
	if len(intervals) == 0 {
		return nil, nil
	}

	jobs := make(chan sync.Interval, len(intervals))
	results := make(chan intervalResult, len(intervals))
	for _, interval := range intervals {
		jobs <- interval
	}
	close(jobs)

	workers := o.workers
	if workers > len(intervals) {
		workers = len(intervals)
	}
	for i := 0; i < workers; i++ {
		go func() {
			for interval := range jobs {
				orders, err := o.fetcher.FetchInterval(ctx, interval)
				results <- intervalResult{orders: orders, err: err}
			}
		}()
	}

	var all []shopify.Order
	var failed int
	for i := 0; i < len(intervals); i++ {
		result := <-results
		if result.err != nil {
			failed++
			o.log.Error("interval fetch failed, dropping its records", zap.Error(result.err))
			continue
		}
		all = append(all, result.orders...)
	}

	o.log.Info("fetch range complete",
		zap.Int("intervals", len(intervals)),
		zap.Int("failed", failed),
		zap.Int("orders", len(all)))
	return all, nil
}
