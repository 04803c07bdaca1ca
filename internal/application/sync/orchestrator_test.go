package sync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shopsync/backend/internal/domain/sync"
	"github.com/shopsync/backend/internal/infrastructure/shopify"
)

func TestOrchestrator_FetchRange(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 3)

	t.Run("aggregates every window", func(t *testing.T) {
		fetcher := NewMockFetcher()
		fetcher.orders[start] = []shopify.Order{{Name: "#1"}, {Name: "#2"}}
		fetcher.orders[start.AddDate(0, 0, 1)] = []shopify.Order{{Name: "#3"}}
		fetcher.orders[start.AddDate(0, 0, 2)] = []shopify.Order{{Name: "#4"}}

		orchestrator := NewOrchestrator(fetcher, zap.NewNop(), 2, 24*time.Hour)
		orders, err := orchestrator.FetchRange(context.Background(), &start, &end)
		require.NoError(t, err)

		assert.Len(t, orders, 4)
		assert.Equal(t, 3, fetcher.FetchCount())
		assert.Equal(t, 0, fetcher.probes)
	})

	t.Run("failed window is dropped, the rest survive", func(t *testing.T) {
		fetcher := NewMockFetcher()
		fetcher.orders[start] = []shopify.Order{{Name: "#1"}}
		fetcher.failAt[start.AddDate(0, 0, 1)] = &sync.FetchError{
			Interval: sync.Interval{Start: start.AddDate(0, 0, 1), End: start.AddDate(0, 0, 2)},
			Err:      errors.New("http 429"),
		}
		fetcher.orders[start.AddDate(0, 0, 2)] = []shopify.Order{{Name: "#4"}}

		orchestrator := NewOrchestrator(fetcher, zap.NewNop(), 2, 24*time.Hour)
		orders, err := orchestrator.FetchRange(context.Background(), &start, &end)
		require.NoError(t, err)

		assert.Len(t, orders, 2)
		assert.Equal(t, 3, fetcher.FetchCount())
	})

	t.Run("missing bounds are probed first", func(t *testing.T) {
		fetcher := NewMockFetcher()
		fetcher.oldest = start
		fetcher.newest = start.AddDate(0, 0, 1)
		fetcher.orders[start] = []shopify.Order{{Name: "#1"}}

		orchestrator := NewOrchestrator(fetcher, zap.NewNop(), 2, 24*time.Hour)
		orders, err := orchestrator.FetchRange(context.Background(), nil, nil)
		require.NoError(t, err)

		assert.Len(t, orders, 1)
		assert.Equal(t, 1, fetcher.probes)
	})

	t.Run("probe failure aborts before windowing", func(t *testing.T) {
		fetcher := NewMockFetcher()
		fetcher.probeErr = sync.ErrNoOrders

		orchestrator := NewOrchestrator(fetcher, zap.NewNop(), 2, 24*time.Hour)
		_, err := orchestrator.FetchRange(context.Background(), nil, nil)
		assert.ErrorIs(t, err, sync.ErrNoOrders)
		assert.Equal(t, 0, fetcher.FetchCount())
	})

	t.Run("inverted range is rejected", func(t *testing.T) {
		fetcher := NewMockFetcher()
		orchestrator := NewOrchestrator(fetcher, zap.NewNop(), 2, 24*time.Hour)

		_, err := orchestrator.FetchRange(context.Background(), &end, &start)
		assert.ErrorIs(t, err, sync.ErrInvalidRange)
		assert.Equal(t, 0, fetcher.FetchCount())
	})

	t.Run("zero-length range fetches nothing", func(t *testing.T) {
		fetcher := NewMockFetcher()
		orchestrator := NewOrchestrator(fetcher, zap.NewNop(), 2, 24*time.Hour)

		orders, err := orchestrator.FetchRange(context.Background(), &start, &start)
		require.NoError(t, err)
		assert.Empty(t, orders)
		assert.Equal(t, 0, fetcher.FetchCount())
	})
}
