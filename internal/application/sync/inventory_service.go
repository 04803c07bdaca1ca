package sync

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopsync/backend/internal/domain/sync"
)

// InventoryCrawler walks the platform's inventory graph. Implemented by
// shopify.InventoryWalker; tests substitute fakes.
type InventoryCrawler interface {
	// Walk returns one record per (product, variant, location). On a
	// server-side error the rows accumulated before the failure are returned
	// alongside the error.
	Walk(ctx context.Context) ([]*sync.InventoryRecord, error)
}

// InventoryResult reports what one inventory snapshot changed.
type InventoryResult struct {
	RecordsUpserted int `json:"records_upserted"`
}

// InventoryService takes full point-in-time inventory snapshots. Every fetched
// row replaces the persisted counters for its (product, variant) key.
type InventoryService struct {
	repo sync.InventoryRepository
	log  *zap.Logger
}

// NewInventoryService creates a new InventoryService
func NewInventoryService(repo sync.InventoryRepository, log *zap.Logger) *InventoryService {
	return &InventoryService{repo: repo, log: log}
}

// Snapshot crawls the store and upserts the returned records. The walker
// emits one row per stocked location, while the snapshot stores one row per
// (product, variant), so same-key rows are collapsed to the last location
// before the write; a multi-row upsert conflicting twice on one key is an
// error on Postgres. When the crawl aborts midway the rows fetched before the
// failure are still persisted, and the crawl error is returned with the
// partial count.
func (s *InventoryService) Snapshot(ctx context.Context, crawler InventoryCrawler) (*InventoryResult, error) {
	crawled, walkErr := crawler.Walk(ctx)
	records := collapseByVariant(crawled)

	for _, record := range records {
		if record.ID == uuid.Nil {
			record.ID = uuid.New()
		}
	}
	if len(records) > 0 {
		if err := s.repo.UpsertBatch(ctx, records); err != nil {
			return nil, err
		}
	}

	result := &InventoryResult{RecordsUpserted: len(records)}
	if walkErr != nil {
		s.log.Error("inventory crawl aborted, persisted partial snapshot",
			zap.Int("records", len(records)),
			zap.Error(walkErr))
		return result, walkErr
	}

	s.log.Info("inventory snapshot complete",
		zap.Int("records", len(records)),
		zap.Int("crawled", len(crawled)))
	return result, nil
}

// collapseByVariant keeps one record per (product, variant) key, in first-seen
// order. The last occurrence wins, matching the upsert's last-write semantics.
func collapseByVariant(records []*sync.InventoryRecord) []*sync.InventoryRecord {
	type variantKey struct {
		productID string
		variantID string
	}
	index := make(map[variantKey]int, len(records))
	collapsed := make([]*sync.InventoryRecord, 0, len(records))
	for _, record := range records {
		key := variantKey{productID: record.ProductID, variantID: record.VariantID}
		if at, seen := index[key]; seen {
			collapsed[at] = record
			continue
		}
		index[key] = len(collapsed)
		collapsed = append(collapsed, record)
	}
	return collapsed
}
