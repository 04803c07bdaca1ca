package sync

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shopsync/backend/internal/domain/sync"
)

func TestInventoryService_Snapshot(t *testing.T) {
	ctx := context.Background()

	t.Run("upserts every crawled record", func(t *testing.T) {
		repo := &MockInventoryRepository{}
		crawler := &MockCrawler{records: []*sync.InventoryRecord{
			{ProductID: "P1", VariantID: "V1", Quantities: sync.Quantities{Available: 40}},
			{ProductID: "P1", VariantID: "V2", Quantities: sync.Quantities{Available: 5}},
		}}

		service := NewInventoryService(repo, zap.NewNop())
		result, err := service.Snapshot(ctx, crawler)
		require.NoError(t, err)

		assert.Equal(t, 2, result.RecordsUpserted)
		require.Len(t, repo.upserted, 2)
		for _, record := range repo.upserted {
			assert.NotEqual(t, uuid.Nil, record.ID)
		}
	})

	t.Run("variant stocked at two locations collapses to one row", func(t *testing.T) {
		repo := &MockInventoryRepository{}
		crawler := &MockCrawler{records: []*sync.InventoryRecord{
			{ProductID: "P1", VariantID: "V1", LocationID: "L1", LocationName: "Bradford", Quantities: sync.Quantities{Available: 40}},
			{ProductID: "P2", VariantID: "V9", LocationID: "L1", LocationName: "Bradford", Quantities: sync.Quantities{Available: 7}},
			{ProductID: "P1", VariantID: "V1", LocationID: "L2", LocationName: "Leeds", Quantities: sync.Quantities{Available: 3}},
		}}

		service := NewInventoryService(repo, zap.NewNop())
		result, err := service.Snapshot(ctx, crawler)
		require.NoError(t, err)

		// A batch must never carry two rows for one (product, variant) key:
		// Postgres rejects an upsert that conflicts twice on the same row.
		assert.Equal(t, 2, result.RecordsUpserted)
		require.Len(t, repo.upserted, 2)

		assert.Equal(t, "P1", repo.upserted[0].ProductID)
		assert.Equal(t, "V1", repo.upserted[0].VariantID)
		// The later location wins, same as two sequential upserts would.
		assert.Equal(t, "L2", repo.upserted[0].LocationID)
		assert.Equal(t, "Leeds", repo.upserted[0].LocationName)
		assert.Equal(t, 3, repo.upserted[0].Quantities.Available)

		assert.Equal(t, "P2", repo.upserted[1].ProductID)
		assert.Equal(t, 7, repo.upserted[1].Quantities.Available)
	})

	t.Run("partial crawl still persists the fetched rows", func(t *testing.T) {
		repo := &MockInventoryRepository{}
		crawler := &MockCrawler{
			records: []*sync.InventoryRecord{{ProductID: "P1", VariantID: "V1"}},
			err:     &sync.GraphQLError{Messages: []string{"Throttled"}},
		}

		service := NewInventoryService(repo, zap.NewNop())
		result, err := service.Snapshot(ctx, crawler)

		var gqlErr *sync.GraphQLError
		require.ErrorAs(t, err, &gqlErr)
		require.NotNil(t, result)
		assert.Equal(t, 1, result.RecordsUpserted)
		assert.Len(t, repo.upserted, 1)
	})

	t.Run("failed crawl with no rows writes nothing", func(t *testing.T) {
		repo := &MockInventoryRepository{}
		crawler := &MockCrawler{err: &sync.GraphQLError{Messages: []string{"Internal error"}}}

		service := NewInventoryService(repo, zap.NewNop())
		result, err := service.Snapshot(ctx, crawler)

		require.Error(t, err)
		require.NotNil(t, result)
		assert.Equal(t, 0, result.RecordsUpserted)
		assert.Equal(t, 0, repo.batches)
	})
}
