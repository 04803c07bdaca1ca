package sync

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/shopsync/backend/internal/domain/sync"
	"github.com/shopsync/backend/internal/infrastructure/shopify"
)

// DefaultLookback is the trailing window re-checked for status changes.
// Refunds and fulfillment updates on orders older than this are not picked up.
const DefaultLookback = 100 * 24 * time.Hour

// RefreshResult reports what one re-sync pass changed.
type RefreshResult struct {
	Fetched int `json:"fetched"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

// Refresher re-fetches a trailing window of orders and patches the mutable
// status fields of those the platform modified since the last sync. This path
// only updates; orders not yet persisted are left for the import path.
type Refresher struct {
	repo     sync.OrderRepository
	log      *zap.Logger
	lookback time.Duration
}

// NewRefresher creates a new Refresher
func NewRefresher(repo sync.OrderRepository, log *zap.Logger, lookback time.Duration) *Refresher {
	if lookback <= 0 {
		lookback = DefaultLookback
	}
	return &Refresher{repo: repo, log: log, lookback: lookback}
}

// Window derives the re-sync window from the persisted order dates: the
// lookback before the newest order, clamped to not precede the oldest.
// ErrNoPersistedOrders when the store is empty.
func (r *Refresher) Window(ctx context.Context) (sync.Interval, error) {
	min, max, err := r.repo.CreatedRange(ctx)
	if err != nil {
		return sync.Interval{}, err
	}
	if max == nil {
		return sync.Interval{}, sync.ErrNoPersistedOrders
	}
	from := max.Add(-r.lookback)
	if min != nil && from.Before(*min) {
		from = *min
	}
	return sync.Interval{Start: from, End: *max}, nil
}

// Refresh compares the fetched orders against the persisted update stamps and
// bulk-patches the stale ones. An order with an unparseable last-modified
// timestamp is skipped with a warning.
func (r *Refresher) Refresh(ctx context.Context, window sync.Interval, orders []shopify.Order) (*RefreshResult, error) {
	result := &RefreshResult{Fetched: len(orders)}

	stamps, err := r.repo.FindStampsBetween(ctx, window.Start, window.End)
	if err != nil {
		return nil, err
	}

	var patches []sync.StatusPatch
	for i := range orders {
		order := &orders[i]
		stamp, ok := stamps[order.Name]
		if !ok {
			result.Skipped++
			continue
		}

		updatedAt, err := shopify.ParseTime(order.UpdatedAt)
		if err != nil {
			r.log.Warn("order has unparseable updated_at, skipping refresh",
				zap.String("order", order.Name),
				zap.String("updated_at", order.UpdatedAt))
			result.Skipped++
			continue
		}
		if stamp.PlatformUpdatedAt != nil && !updatedAt.After(*stamp.PlatformUpdatedAt) {
			result.Skipped++
			continue
		}

		patches = append(patches, sync.StatusPatch{
			ID:                stamp.ID,
			Number:            order.Name,
			RefundedAmount:    formatMoney(refundedAmount(order), order.Currency),
			TotalPaid:         formatMoney(order.TotalPrice, order.Currency),
			PaymentStatus:     order.FinancialStatus,
			FulfillmentStatus: fulfillmentStatus(order),
			Tags:              order.Tags,
			Status:            orderStatus(order),
			PlatformUpdatedAt: updatedAt,
		})
	}

	if len(patches) > 0 {
		err := r.repo.WithinTx(ctx, func(tx sync.OrderRepository) error {
			return tx.UpdateStatusBatch(ctx, patches)
		})
		if err != nil {
			return nil, err
		}
	}
	result.Updated = len(patches)

	r.log.Info("status refresh complete",
		zap.Time("from", window.Start),
		zap.Time("to", window.End),
		zap.Int("fetched", result.Fetched),
		zap.Int("updated", result.Updated),
		zap.Int("skipped", result.Skipped))
	return result, nil
}

func orderStatus(order *shopify.Order) string {
	if len(order.Fulfillments) > 0 {
		return order.Fulfillments[0].Status
	}
	return sync.SentinelNotAvailable
}
