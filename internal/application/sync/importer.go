package sync

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopsync/backend/internal/domain/sync"
)

// ImportResult reports what one reconciliation batch changed.
type ImportResult struct {
	OrdersCreated     int `json:"orders_created"`
	OrdersExisting    int `json:"orders_existing"`
	ItemsCreated      int `json:"items_created"`
	CampaignsCreated  int `json:"campaigns_created"`
	DuplicatesSkipped int `json:"duplicates_skipped"`
}

// Importer reconciles a batch of normalized rows against persisted storage.
// Orders are create-or-ignore keyed by number; line items and campaigns are
// create-or-ignore keyed by their composite natural keys. One batch commits
// atomically or not at all.
type Importer struct {
	repo sync.OrderRepository
	log  *zap.Logger
}

// NewImporter creates a new Importer
func NewImporter(repo sync.OrderRepository, log *zap.Logger) *Importer {
	return &Importer{repo: repo, log: log}
}

// Import merges the batch into storage. The whole batch runs inside one
// transaction: either every new order, item and campaign commits, or none do.
func (im *Importer) Import(ctx context.Context, rows []sync.OrderRow) (*ImportResult, error) {
	result := &ImportResult{}
	if len(rows) == 0 {
		return result, nil
	}

	err := im.repo.WithinTx(ctx, func(tx sync.OrderRepository) error {
		return im.importBatch(ctx, tx, rows, result)
	})
	if err != nil {
		return nil, err
	}

	im.log.Info("import batch reconciled",
		zap.Int("rows", len(rows)),
		zap.Int("orders_created", result.OrdersCreated),
		zap.Int("orders_existing", result.OrdersExisting),
		zap.Int("items_created", result.ItemsCreated),
		zap.Int("campaigns_created", result.CampaignsCreated))
	return result, nil
}

func (im *Importer) importBatch(ctx context.Context, tx sync.OrderRepository, rows []sync.OrderRow, result *ImportResult) error {
	// One order row per number, first occurrence wins. Later rows of the same
	// order still contribute line items and campaigns below; only a repeat of
	// the same line item counts as a duplicate.
	type rowKey struct {
		number  string
		title   string
		sku     string
		variant string
	}
	seenRows := make(map[rowKey]struct{}, len(rows))
	firstByNumber := make(map[string]*sync.OrderRow, len(rows))
	numbers := make([]string, 0, len(rows))
	for i := range rows {
		row := &rows[i]
		key := rowKey{number: row.Number, title: row.ItemTitle, sku: row.ItemSKU, variant: row.ItemVariant}
		if _, dup := seenRows[key]; dup {
			result.DuplicatesSkipped++
		} else {
			seenRows[key] = struct{}{}
		}
		if _, seen := firstByNumber[row.Number]; seen {
			continue
		}
		firstByNumber[row.Number] = row
		numbers = append(numbers, row.Number)
	}

	existing, err := tx.FindByNumbers(ctx, numbers)
	if err != nil {
		return err
	}

	idByNumber := make(map[string]uuid.UUID, len(numbers))
	for number, order := range existing {
		idByNumber[number] = order.ID
	}
	result.OrdersExisting = len(existing)

	now := time.Now()
	var newOrders []*sync.Order
	for _, number := range numbers {
		if _, ok := existing[number]; ok {
			im.log.Debug("order already persisted, skipping insert", zap.String("order", number))
			continue
		}
		order := firstByNumber[number].Order()
		order.ID = uuid.New()
		order.CreatedAt = now
		order.UpdatedAt = now
		idByNumber[number] = order.ID
		newOrders = append(newOrders, order)
	}
	if err := tx.CreateBatch(ctx, newOrders); err != nil {
		return err
	}
	result.OrdersCreated = len(newOrders)

	orderIDs := make([]uuid.UUID, 0, len(idByNumber))
	for _, id := range idByNumber {
		orderIDs = append(orderIDs, id)
	}

	itemKeys, err := tx.ExistingItemKeys(ctx, orderIDs)
	if err != nil {
		return err
	}
	// Items come from the original rows, not the deduplicated set: one order
	// legitimately carries several distinct line items.
	var newItems []*sync.OrderItem
	for i := range rows {
		row := &rows[i]
		orderID, ok := idByNumber[row.Number]
		if !ok {
			continue
		}
		key := sync.ItemKey{OrderID: orderID, Title: row.ItemTitle, SKU: row.ItemSKU, Variant: row.ItemVariant}
		if _, exists := itemKeys[key]; exists {
			continue
		}
		itemKeys[key] = struct{}{}
		item := row.Item(orderID)
		item.ID = uuid.New()
		item.CreatedAt = now
		item.UpdatedAt = now
		newItems = append(newItems, item)
	}
	if err := tx.CreateItems(ctx, newItems); err != nil {
		return err
	}
	result.ItemsCreated = len(newItems)

	campaignKeys, err := tx.ExistingCampaignKeys(ctx, orderIDs)
	if err != nil {
		return err
	}
	var newCampaigns []*sync.Campaign
	for i := range rows {
		row := &rows[i]
		orderID, ok := idByNumber[row.Number]
		if !ok {
			continue
		}
		key := sync.CampaignKey{OrderID: orderID, LandingSite: row.LandingSite, ReferringSite: row.ReferringSite}
		if _, exists := campaignKeys[key]; exists {
			continue
		}
		campaignKeys[key] = struct{}{}
		campaign := row.Campaign(orderID)
		campaign.ID = uuid.New()
		campaign.CreatedAt = now
		campaign.UpdatedAt = now
		newCampaigns = append(newCampaigns, campaign)
	}
	if err := tx.CreateCampaigns(ctx, newCampaigns); err != nil {
		return err
	}
	result.CampaignsCreated = len(newCampaigns)

	return nil
}
