package sync

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopsync/backend/internal/domain/sync"
	"github.com/shopsync/backend/internal/infrastructure/config"
	"github.com/shopsync/backend/internal/infrastructure/shopify"
)

// Credentials identify one store for a single sync invocation. They arrive
// with the request or come from a stored connector.
type Credentials struct {
	StoreURL   string
	APIKey     string
	Password   string
	APIVersion string
}

// FetcherFactory builds an order fetcher for one store.
type FetcherFactory func(cfg *shopify.Config) (OrderFetcher, error)

// CrawlerFactory builds an inventory crawler for one store.
type CrawlerFactory func(cfg *shopify.Config) (InventoryCrawler, error)

// SyncService is the entry point for the three sync paths: order import,
// status refresh and inventory snapshot. Clients are built per invocation
// from the request credentials; nothing is shared between stores.
type SyncService struct {
	orderRepo     sync.OrderRepository
	inventoryRepo sync.InventoryRepository
	connectorRepo sync.ConnectorRepository
	syncCfg       config.SyncConfig
	shopCfg       config.ShopifyConfig
	log           *zap.Logger
	newFetcher    FetcherFactory
	newCrawler    CrawlerFactory
}

// NewSyncService creates a new SyncService
func NewSyncService(
	orderRepo sync.OrderRepository,
	inventoryRepo sync.InventoryRepository,
	connectorRepo sync.ConnectorRepository,
	syncCfg config.SyncConfig,
	shopCfg config.ShopifyConfig,
	log *zap.Logger,
) *SyncService {
	s := &SyncService{
		orderRepo:     orderRepo,
		inventoryRepo: inventoryRepo,
		connectorRepo: connectorRepo,
		syncCfg:       syncCfg,
		shopCfg:       shopCfg,
		log:           log,
	}
	s.newFetcher = func(cfg *shopify.Config) (OrderFetcher, error) {
		return shopify.NewClient(cfg, log,
			shopify.WithPageSize(syncCfg.PageSize),
			shopify.WithRateLimit(syncCfg.RequestsPerSecond))
	}
	s.newCrawler = func(cfg *shopify.Config) (InventoryCrawler, error) {
		return shopify.NewInventoryWalker(cfg, log)
	}
	return s
}

// SetFetcherFactory overrides how order fetchers are built.
func (s *SyncService) SetFetcherFactory(factory FetcherFactory) {
	s.newFetcher = factory
}

// SetCrawlerFactory overrides how inventory crawlers are built.
func (s *SyncService) SetCrawlerFactory(factory CrawlerFactory) {
	s.newCrawler = factory
}

// SyncOrders fetches the orders placed in [dateMin, dateMax], normalizes them
// and reconciles the batch into storage. Nil bounds are derived from the
// store's oldest and newest orders. An inverted range fails before any
// network call.
func (s *SyncService) SyncOrders(ctx context.Context, creds Credentials, dateMin, dateMax *time.Time) (*ImportResult, error) {
	if dateMin != nil && dateMax != nil && dateMin.After(*dateMax) {
		return nil, sync.ErrInvalidRange
	}

	fetcher, err := s.newFetcher(s.shopifyConfig(creds))
	if err != nil {
		return nil, err
	}

	orchestrator := NewOrchestrator(fetcher, s.log, s.syncCfg.Workers, s.syncCfg.Window)
	orders, err := orchestrator.FetchRange(ctx, dateMin, dateMax)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, sync.ErrNoOrders
	}

	rows := NewNormalizer(s.log).NormalizeBatch(orders, sync.StoreName(creds.StoreURL))
	result, err := NewImporter(s.orderRepo, s.log).Import(ctx, rows)
	if err != nil {
		return nil, err
	}

	s.recordSyncBounds(ctx, creds, rows)
	return result, nil
}

// RefreshStatuses re-fetches the trailing lookback window and patches the
// mutable fields of every persisted order the platform changed since the
// last sync.
func (s *SyncService) RefreshStatuses(ctx context.Context, creds Credentials) (*RefreshResult, error) {
	refresher := NewRefresher(s.orderRepo, s.log, s.syncCfg.Lookback())
	window, err := refresher.Window(ctx)
	if err != nil {
		return nil, err
	}

	fetcher, err := s.newFetcher(s.shopifyConfig(creds))
	if err != nil {
		return nil, err
	}
	orchestrator := NewOrchestrator(fetcher, s.log, s.syncCfg.Workers, s.syncCfg.Window)
	orders, err := orchestrator.FetchRange(ctx, &window.Start, &window.End)
	if err != nil {
		return nil, err
	}

	return refresher.Refresh(ctx, window, orders)
}

// SyncInventory takes a full inventory snapshot of the store.
func (s *SyncService) SyncInventory(ctx context.Context, creds Credentials) (*InventoryResult, error) {
	crawler, err := s.newCrawler(s.shopifyConfig(creds))
	if err != nil {
		return nil, err
	}
	return NewInventoryService(s.inventoryRepo, s.log).Snapshot(ctx, crawler)
}

func (s *SyncService) shopifyConfig(creds Credentials) *shopify.Config {
	version := creds.APIVersion
	if version == "" {
		version = s.shopCfg.APIVersion
	}
	cfg := shopify.NewConfig(creds.StoreURL, creds.APIKey, creds.Password, version)
	cfg.TimeoutSeconds = s.shopCfg.TimeoutSeconds
	return cfg
}

// recordSyncBounds widens the stored connector's synced date range to cover
// the batch. Best effort: a storage failure here does not fail the sync.
func (s *SyncService) recordSyncBounds(ctx context.Context, creds Credentials, rows []sync.OrderRow) {
	min, max := placedBounds(rows)
	if min == nil || max == nil {
		return
	}

	connector, err := s.connectorRepo.FindByStoreURL(ctx, creds.StoreURL)
	if errors.Is(err, sync.ErrConnectorNotFound) {
		connector = &sync.Connector{
			ID:         uuid.New(),
			StoreName:  sync.StoreName(creds.StoreURL),
			StoreURL:   creds.StoreURL,
			APIKey:     creds.APIKey,
			Password:   creds.Password,
			APIVersion: creds.APIVersion,
			CreatedAt:  time.Now(),
		}
	} else if err != nil {
		s.log.Warn("connector lookup failed, sync bounds not recorded", zap.Error(err))
		return
	}

	if connector.MinDate == nil || min.Before(*connector.MinDate) {
		connector.MinDate = min
	}
	if connector.MaxDate == nil || max.After(*connector.MaxDate) {
		connector.MaxDate = max
	}
	connector.UpdatedAt = time.Now()

	if err := s.connectorRepo.Save(ctx, connector); err != nil {
		s.log.Warn("connector save failed, sync bounds not recorded", zap.Error(err))
	}
}

func placedBounds(rows []sync.OrderRow) (min, max *time.Time) {
	for i := range rows {
		placed := rows[i].PlacedAt
		if placed == nil {
			continue
		}
		if min == nil || placed.Before(*min) {
			min = placed
		}
		if max == nil || placed.After(*max) {
			max = placed
		}
	}
	return min, max
}
