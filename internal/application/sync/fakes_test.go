package sync

import (
	"context"
	"fmt"
	stdsync "sync"
	"time"

	"github.com/google/uuid"

	"github.com/shopsync/backend/internal/domain/sync"
	"github.com/shopsync/backend/internal/infrastructure/shopify"
)

// MockOrderRepository is an in-memory implementation of sync.OrderRepository.
// WithinTx snapshots the maps and restores them when fn fails, mimicking a
// rollback.
type MockOrderRepository struct {
	orders    map[string]*sync.Order
	items     map[sync.ItemKey]*sync.OrderItem
	campaigns map[sync.CampaignKey]*sync.Campaign

	appliedPatches []sync.StatusPatch
	txCalls        int

	failCreateItems error
}

func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders:    make(map[string]*sync.Order),
		items:     make(map[sync.ItemKey]*sync.OrderItem),
		campaigns: make(map[sync.CampaignKey]*sync.Campaign),
	}
}

func (m *MockOrderRepository) FindByNumbers(_ context.Context, numbers []string) (map[string]*sync.Order, error) {
	found := make(map[string]*sync.Order)
	for _, number := range numbers {
		if order, ok := m.orders[number]; ok {
			found[number] = order
		}
	}
	return found, nil
}

func (m *MockOrderRepository) CreateBatch(_ context.Context, orders []*sync.Order) error {
	for _, order := range orders {
		if _, exists := m.orders[order.Number]; exists {
			return fmt.Errorf("duplicate order number %s", order.Number)
		}
		m.orders[order.Number] = order
	}
	return nil
}

func (m *MockOrderRepository) ExistingItemKeys(_ context.Context, orderIDs []uuid.UUID) (map[sync.ItemKey]struct{}, error) {
	wanted := make(map[uuid.UUID]struct{}, len(orderIDs))
	for _, id := range orderIDs {
		wanted[id] = struct{}{}
	}
	keys := make(map[sync.ItemKey]struct{})
	for key := range m.items {
		if _, ok := wanted[key.OrderID]; ok {
			keys[key] = struct{}{}
		}
	}
	return keys, nil
}

func (m *MockOrderRepository) CreateItems(_ context.Context, items []*sync.OrderItem) error {
	if m.failCreateItems != nil && len(items) > 0 {
		return m.failCreateItems
	}
	for _, item := range items {
		key := sync.ItemKey{OrderID: item.OrderID, Title: item.Title, SKU: item.SKU, Variant: item.Variant}
		m.items[key] = item
	}
	return nil
}

func (m *MockOrderRepository) ExistingCampaignKeys(_ context.Context, orderIDs []uuid.UUID) (map[sync.CampaignKey]struct{}, error) {
	wanted := make(map[uuid.UUID]struct{}, len(orderIDs))
	for _, id := range orderIDs {
		wanted[id] = struct{}{}
	}
	keys := make(map[sync.CampaignKey]struct{})
	for key := range m.campaigns {
		if _, ok := wanted[key.OrderID]; ok {
			keys[key] = struct{}{}
		}
	}
	return keys, nil
}

func (m *MockOrderRepository) CreateCampaigns(_ context.Context, campaigns []*sync.Campaign) error {
	for _, campaign := range campaigns {
		key := sync.CampaignKey{OrderID: campaign.OrderID, LandingSite: campaign.LandingSite, ReferringSite: campaign.ReferringSite}
		m.campaigns[key] = campaign
	}
	return nil
}

func (m *MockOrderRepository) CreatedRange(_ context.Context) (*time.Time, *time.Time, error) {
	var min, max *time.Time
	for _, order := range m.orders {
		if order.PlacedAt == nil {
			continue
		}
		if min == nil || order.PlacedAt.Before(*min) {
			min = order.PlacedAt
		}
		if max == nil || order.PlacedAt.After(*max) {
			max = order.PlacedAt
		}
	}
	return min, max, nil
}

func (m *MockOrderRepository) FindStampsBetween(_ context.Context, from, to time.Time) (map[string]sync.OrderStamp, error) {
	stamps := make(map[string]sync.OrderStamp)
	for number, order := range m.orders {
		if order.PlacedAt == nil || order.PlacedAt.Before(from) || order.PlacedAt.After(to) {
			continue
		}
		stamps[number] = sync.OrderStamp{ID: order.ID, Number: number, PlatformUpdatedAt: order.PlatformUpdatedAt}
	}
	return stamps, nil
}

func (m *MockOrderRepository) UpdateStatusBatch(_ context.Context, patches []sync.StatusPatch) error {
	for _, patch := range patches {
		for _, order := range m.orders {
			if order.ID != patch.ID {
				continue
			}
			order.RefundedAmount = patch.RefundedAmount
			order.TotalPaid = patch.TotalPaid
			order.PaymentStatus = patch.PaymentStatus
			order.FulfillmentStatus = patch.FulfillmentStatus
			order.Tags = patch.Tags
			order.Status = patch.Status
			updated := patch.PlatformUpdatedAt
			order.PlatformUpdatedAt = &updated
		}
	}
	m.appliedPatches = append(m.appliedPatches, patches...)
	return nil
}

func (m *MockOrderRepository) WithinTx(_ context.Context, fn func(sync.OrderRepository) error) error {
	m.txCalls++
	orders := copyMap(m.orders)
	items := copyMap(m.items)
	campaigns := copyMap(m.campaigns)
	if err := fn(m); err != nil {
		m.orders = orders
		m.items = items
		m.campaigns = campaigns
		return err
	}
	return nil
}

func copyMap[K comparable, V any](src map[K]V) map[K]V {
	dst := make(map[K]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

var _ sync.OrderRepository = (*MockOrderRepository)(nil)

// MockFetcher serves canned orders per interval start and records the
// intervals fetched. Safe for concurrent workers.
type MockFetcher struct {
	mu       stdsync.Mutex
	orders   map[time.Time][]shopify.Order
	failAt   map[time.Time]error
	fetched  []sync.Interval
	oldest   time.Time
	newest   time.Time
	probeErr error
	probes   int
}

func NewMockFetcher() *MockFetcher {
	return &MockFetcher{
		orders: make(map[time.Time][]shopify.Order),
		failAt: make(map[time.Time]error),
	}
}

func (m *MockFetcher) FetchInterval(_ context.Context, interval sync.Interval) ([]shopify.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetched = append(m.fetched, interval)
	if err, ok := m.failAt[interval.Start]; ok {
		return nil, err
	}
	return m.orders[interval.Start], nil
}

func (m *MockFetcher) ProbeDateRange(_ context.Context) (time.Time, time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.probes++
	if m.probeErr != nil {
		return time.Time{}, time.Time{}, m.probeErr
	}
	return m.oldest, m.newest, nil
}

func (m *MockFetcher) FetchCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.fetched)
}

var _ OrderFetcher = (*MockFetcher)(nil)

// MockCrawler returns canned inventory records.
type MockCrawler struct {
	records []*sync.InventoryRecord
	err     error
	walks   int
}

func (m *MockCrawler) Walk(_ context.Context) ([]*sync.InventoryRecord, error) {
	m.walks++
	return m.records, m.err
}

var _ InventoryCrawler = (*MockCrawler)(nil)

// MockInventoryRepository records upserted batches.
type MockInventoryRepository struct {
	upserted  []*sync.InventoryRecord
	batches   int
	upsertErr error
}

func (m *MockInventoryRepository) UpsertBatch(_ context.Context, records []*sync.InventoryRecord) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.batches++
	m.upserted = append(m.upserted, records...)
	return nil
}

func (m *MockInventoryRepository) FindByKey(_ context.Context, productID, variantID string) (*sync.InventoryRecord, error) {
	for _, record := range m.upserted {
		if record.ProductID == productID && record.VariantID == variantID {
			return record, nil
		}
	}
	return nil, sync.ErrRecordNotFound
}

var _ sync.InventoryRepository = (*MockInventoryRepository)(nil)

// MockConnectorRepository is an in-memory connector store.
type MockConnectorRepository struct {
	connectors map[string]*sync.Connector
}

func NewMockConnectorRepository() *MockConnectorRepository {
	return &MockConnectorRepository{connectors: make(map[string]*sync.Connector)}
}

func (m *MockConnectorRepository) FindAll(_ context.Context) ([]sync.Connector, error) {
	all := make([]sync.Connector, 0, len(m.connectors))
	for _, connector := range m.connectors {
		all = append(all, *connector)
	}
	return all, nil
}

func (m *MockConnectorRepository) FindByStoreURL(_ context.Context, storeURL string) (*sync.Connector, error) {
	if connector, ok := m.connectors[storeURL]; ok {
		return connector, nil
	}
	return nil, sync.ErrConnectorNotFound
}

func (m *MockConnectorRepository) Save(_ context.Context, connector *sync.Connector) error {
	m.connectors[connector.StoreURL] = connector
	return nil
}

var _ sync.ConnectorRepository = (*MockConnectorRepository)(nil)
