package sync

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// OrderRepository is the storage collaborator for orders, line items and
// campaigns. Lookups are bulk by natural key; writes are bulk inserts or
// bulk updates. WithinTx scopes a reconciliation batch to one transaction.
type OrderRepository interface {
	// FindByNumbers bulk-loads persisted orders whose natural key appears in
	// numbers, mapped by order number.
	FindByNumbers(ctx context.Context, numbers []string) (map[string]*Order, error)

	// CreateBatch bulk-inserts new orders. IDs must be assigned by the caller.
	CreateBatch(ctx context.Context, orders []*Order) error

	// ExistingItemKeys bulk-loads the natural keys of all line items owned by
	// the given orders.
	ExistingItemKeys(ctx context.Context, orderIDs []uuid.UUID) (map[ItemKey]struct{}, error)

	// CreateItems bulk-inserts new line items.
	CreateItems(ctx context.Context, items []*OrderItem) error

	// ExistingCampaignKeys bulk-loads the natural keys of all campaigns owned
	// by the given orders.
	ExistingCampaignKeys(ctx context.Context, orderIDs []uuid.UUID) (map[CampaignKey]struct{}, error)

	// CreateCampaigns bulk-inserts new campaigns.
	CreateCampaigns(ctx context.Context, campaigns []*Campaign) error

	// CreatedRange returns the oldest and newest platform order dates in the
	// store, or nils when no orders are persisted.
	CreatedRange(ctx context.Context) (min, max *time.Time, err error)

	// FindStampsBetween loads the update stamps of orders placed in
	// [from, to], mapped by order number.
	FindStampsBetween(ctx context.Context, from, to time.Time) (map[string]OrderStamp, error)

	// UpdateStatusBatch bulk-applies the fixed mutable-field subset.
	UpdateStatusBatch(ctx context.Context, patches []StatusPatch) error

	// WithinTx runs fn against a repository bound to one transaction. A
	// returned error rolls back everything written inside fn.
	WithinTx(ctx context.Context, fn func(OrderRepository) error) error
}

// InventoryRepository is the storage collaborator for inventory snapshots.
type InventoryRepository interface {
	// UpsertBatch inserts or fully refreshes records keyed by
	// (product_id, variant_id).
	UpsertBatch(ctx context.Context, records []*InventoryRecord) error

	// FindByKey loads one record by its natural key.
	FindByKey(ctx context.Context, productID, variantID string) (*InventoryRecord, error)
}

// ConnectorRepository persists store credentials and sync bounds.
type ConnectorRepository interface {
	FindAll(ctx context.Context) ([]Connector, error)
	FindByStoreURL(ctx context.Context, storeURL string) (*Connector, error)
	Save(ctx context.Context, connector *Connector) error
}
