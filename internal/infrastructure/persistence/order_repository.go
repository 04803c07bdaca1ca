package persistence

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopsync/backend/internal/domain/sync"
	"github.com/shopsync/backend/internal/infrastructure/persistence/models"
)

// insertBatchSize bounds the row count per bulk INSERT statement.
const insertBatchSize = 500

// GormOrderRepository implements sync.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByNumbers bulk-loads persisted orders by their order numbers.
func (r *GormOrderRepository) FindByNumbers(ctx context.Context, numbers []string) (map[string]*sync.Order, error) {
	result := make(map[string]*sync.Order, len(numbers))
	if len(numbers) == 0 {
		return result, nil
	}

	var rows []models.OrderModel
	if err := r.db.WithContext(ctx).
		Where("number IN ?", numbers).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		result[rows[i].Number] = rows[i].ToDomain()
	}
	return result, nil
}

// CreateBatch bulk-inserts new orders
func (r *GormOrderRepository) CreateBatch(ctx context.Context, orders []*sync.Order) error {
	if len(orders) == 0 {
		return nil
	}
	rows := make([]*models.OrderModel, len(orders))
	for i, o := range orders {
		rows[i] = models.OrderModelFromDomain(o)
	}
	return r.db.WithContext(ctx).CreateInBatches(rows, insertBatchSize).Error
}

// ExistingItemKeys bulk-loads the line item natural keys owned by the given orders.
func (r *GormOrderRepository) ExistingItemKeys(ctx context.Context, orderIDs []uuid.UUID) (map[sync.ItemKey]struct{}, error) {
	keys := make(map[sync.ItemKey]struct{})
	if len(orderIDs) == 0 {
		return keys, nil
	}

	var rows []models.OrderItemModel
	if err := r.db.WithContext(ctx).
		Select("order_id", "title", "sku", "variant").
		Where("order_id IN ?", orderIDs).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		keys[sync.ItemKey{
			OrderID: rows[i].OrderID,
			Title:   rows[i].Title,
			SKU:     rows[i].SKU,
			Variant: rows[i].Variant,
		}] = struct{}{}
	}
	return keys, nil
}

// CreateItems bulk-inserts new line items
func (r *GormOrderRepository) CreateItems(ctx context.Context, items []*sync.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	rows := make([]*models.OrderItemModel, len(items))
	for i, item := range items {
		rows[i] = models.OrderItemModelFromDomain(item)
	}
	return r.db.WithContext(ctx).CreateInBatches(rows, insertBatchSize).Error
}

// ExistingCampaignKeys bulk-loads the campaign natural keys owned by the given orders.
func (r *GormOrderRepository) ExistingCampaignKeys(ctx context.Context, orderIDs []uuid.UUID) (map[sync.CampaignKey]struct{}, error) {
	keys := make(map[sync.CampaignKey]struct{})
	if len(orderIDs) == 0 {
		return keys, nil
	}

	var rows []models.CampaignModel
	if err := r.db.WithContext(ctx).
		Select("order_id", "landing_site", "referring_site").
		Where("order_id IN ?", orderIDs).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		keys[sync.CampaignKey{
			OrderID:       rows[i].OrderID,
			LandingSite:   rows[i].LandingSite,
			ReferringSite: rows[i].ReferringSite,
		}] = struct{}{}
	}
	return keys, nil
}

// CreateCampaigns bulk-inserts new campaigns
func (r *GormOrderRepository) CreateCampaigns(ctx context.Context, campaigns []*sync.Campaign) error {
	if len(campaigns) == 0 {
		return nil
	}
	rows := make([]*models.CampaignModel, len(campaigns))
	for i, c := range campaigns {
		rows[i] = models.CampaignModelFromDomain(c)
	}
	return r.db.WithContext(ctx).CreateInBatches(rows, insertBatchSize).Error
}

// CreatedRange returns the oldest and newest platform order dates, or nils
// when no orders are persisted.
func (r *GormOrderRepository) CreatedRange(ctx context.Context) (*time.Time, *time.Time, error) {
	var bounds struct {
		Min *time.Time
		Max *time.Time
	}
	if err := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Select("MIN(placed_at) AS min, MAX(placed_at) AS max").
		Scan(&bounds).Error; err != nil {
		return nil, nil, err
	}
	return bounds.Min, bounds.Max, nil
}

// FindStampsBetween loads the update stamps of orders placed in [from, to].
func (r *GormOrderRepository) FindStampsBetween(ctx context.Context, from, to time.Time) (map[string]sync.OrderStamp, error) {
	var rows []models.OrderModel
	if err := r.db.WithContext(ctx).
		Select("id", "number", "platform_updated_at").
		Where("placed_at >= ? AND placed_at <= ?", from, to).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	stamps := make(map[string]sync.OrderStamp, len(rows))
	for i := range rows {
		stamps[rows[i].Number] = sync.OrderStamp{
			ID:                rows[i].ID,
			Number:            rows[i].Number,
			PlatformUpdatedAt: rows[i].PlatformUpdatedAt,
		}
	}
	return stamps, nil
}

// patchColumns are the mutable order columns written by the re-sync path,
// paired with their StatusPatch accessors.
var patchColumns = []struct {
	name  string
	value func(p *sync.StatusPatch) any
}{
	{"refunded_amount", func(p *sync.StatusPatch) any { return p.RefundedAmount }},
	{"total_paid", func(p *sync.StatusPatch) any { return p.TotalPaid }},
	{"payment_status", func(p *sync.StatusPatch) any { return p.PaymentStatus }},
	{"fulfillment_status", func(p *sync.StatusPatch) any { return p.FulfillmentStatus }},
	{"tags", func(p *sync.StatusPatch) any { return p.Tags }},
	{"status", func(p *sync.StatusPatch) any { return p.Status }},
	{"platform_updated_at", func(p *sync.StatusPatch) any { return p.PlatformUpdatedAt }},
}

// UpdateStatusBatch bulk-applies the fixed mutable-field subset, one UPDATE
// statement per chunk of patches.
func (r *GormOrderRepository) UpdateStatusBatch(ctx context.Context, patches []sync.StatusPatch) error {
	for start := 0; start < len(patches); start += insertBatchSize {
		end := start + insertBatchSize
		if end > len(patches) {
			end = len(patches)
		}
		if err := r.updateStatusChunk(ctx, patches[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func (r *GormOrderRepository) updateStatusChunk(ctx context.Context, patches []sync.StatusPatch) error {
	var (
		stmt strings.Builder
		args = make([]any, 0, len(patches)*(2*len(patchColumns)+1)+1)
	)
	stmt.WriteString("UPDATE orders SET ")
	for ci, col := range patchColumns {
		if ci > 0 {
			stmt.WriteString(", ")
		}
		stmt.WriteString(col.name)
		stmt.WriteString(" = CASE id")
		for pi := range patches {
			stmt.WriteString(" WHEN ? THEN ?")
			args = append(args, patches[pi].ID, col.value(&patches[pi]))
		}
		stmt.WriteString(" END")
	}
	stmt.WriteString(", updated_at = ? WHERE id IN (")
	args = append(args, time.Now())
	for pi := range patches {
		if pi > 0 {
			stmt.WriteString(", ")
		}
		stmt.WriteString("?")
		args = append(args, patches[pi].ID)
	}
	stmt.WriteString(")")

	return r.db.WithContext(ctx).Exec(stmt.String(), args...).Error
}

// WithinTx runs fn against a repository bound to one transaction.
func (r *GormOrderRepository) WithinTx(ctx context.Context, fn func(sync.OrderRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormOrderRepository{db: tx})
	})
}

// Ensure GormOrderRepository implements sync.OrderRepository
var _ sync.OrderRepository = (*GormOrderRepository)(nil)
