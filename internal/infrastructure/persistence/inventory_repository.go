package persistence

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shopsync/backend/internal/domain/sync"
	"github.com/shopsync/backend/internal/infrastructure/persistence/models"
)

// GormInventoryRepository implements sync.InventoryRepository using GORM
type GormInventoryRepository struct {
	db *gorm.DB
}

// NewGormInventoryRepository creates a new GormInventoryRepository
func NewGormInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

// UpsertBatch inserts or fully refreshes records keyed by (product_id, variant_id).
// Counters and descriptive fields are replaced on conflict; created_at is kept.
func (r *GormInventoryRepository) UpsertBatch(ctx context.Context, records []*sync.InventoryRecord) error {
	if len(records) == 0 {
		return nil
	}

	now := time.Now()
	rows := make([]*models.InventoryModel, len(records))
	for i, rec := range records {
		row := models.InventoryModelFromDomain(rec)
		if row.CreatedAt.IsZero() {
			row.CreatedAt = now
		}
		row.UpdatedAt = now
		rows[i] = row
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "product_id"}, {Name: "variant_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"product_title", "vendor", "tags", "product_type",
			"category", "category_name", "collections",
			"variant_title", "variant_sku", "location_id", "location_name",
			"available", "reserved", "incoming", "committed",
			"damaged", "on_hand", "quality_control", "safety_check",
			"updated_at",
		}),
	}).CreateInBatches(rows, insertBatchSize).Error
}

// FindByKey loads one record by its natural key.
func (r *GormInventoryRepository) FindByKey(ctx context.Context, productID, variantID string) (*sync.InventoryRecord, error) {
	var row models.InventoryModel
	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND variant_id = ?", productID, variantID).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, sync.ErrRecordNotFound
		}
		return nil, err
	}
	return row.ToDomain(), nil
}

// Ensure GormInventoryRepository implements sync.InventoryRepository
var _ sync.InventoryRepository = (*GormInventoryRepository)(nil)
