package sync

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/shopsync/backend/internal/domain/sync"
	"github.com/shopsync/backend/internal/infrastructure/shopify"
)

// Normalizer flattens raw platform orders into one row per line item.
// A malformed order is logged and skipped; the batch continues.
type Normalizer struct {
	log *zap.Logger
}

// NewNormalizer creates a new Normalizer
func NewNormalizer(log *zap.Logger) *Normalizer {
	return &Normalizer{log: log}
}

// NormalizeBatch flattens every order in the batch. The returned slice keeps
// the input order; rows of the same order are adjacent. storeName is stamped
// on every row.
func (n *Normalizer) NormalizeBatch(orders []shopify.Order, storeName string) []sync.OrderRow {
	rows := make([]sync.OrderRow, 0, len(orders))
	for i := range orders {
		orderRows, err := n.normalizeOrder(&orders[i], storeName)
		if err != nil {
			n.log.Error("skipping malformed order",
				zap.String("order", orders[i].Name),
				zap.Error(&sync.NormalizationError{OrderNumber: orders[i].Name, Err: err}))
			continue
		}
		rows = append(rows, orderRows...)
	}
	return rows
}

func (n *Normalizer) normalizeOrder(order *shopify.Order, storeName string) ([]sync.OrderRow, error) {
	if order.Name == "" {
		return nil, fmt.Errorf("order %d has no name", order.ID)
	}

	placedAt, err := shopify.ParseTime(order.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid created_at %q: %w", order.CreatedAt, err)
	}

	base := sync.OrderRow{
		Number:          order.Name,
		StoreName:       storeName,
		PlacedAt:        &placedAt,
		ItemCount:       len(order.LineItems),
		ShippingAddress: normalizeAddress(order.ShippingAddress),
		BillingAddress:  normalizeAddress(order.BillingAddress),
		ShippingPrice:   formatMoney(shippingPrice(order), order.Currency),
		TotalDiscount:   formatMoney(order.TotalDiscounts, order.Currency),
		RefundedAmount:  formatMoney(refundedAmount(order), order.Currency),
		TotalPaid:       formatMoney(order.TotalPrice, order.Currency),
		PaymentStatus:   order.FinancialStatus,
		Channel:         order.SourceName,
		Tags:            order.Tags,
		StatusURL:       order.OrderStatusURL,
		LandingSite:     order.LandingSite,
		ReferringSite:   order.ReferringSite,
		PaymentGateways: strings.Join(order.PaymentGatewayNames, ", "),
	}

	if order.ProcessedAt != "" {
		processedAt, err := shopify.ParseTime(order.ProcessedAt)
		if err != nil {
			return nil, fmt.Errorf("invalid processed_at %q: %w", order.ProcessedAt, err)
		}
		base.ProcessedAt = &processedAt
	}

	// An unreadable last-modified stamp only disables the status refresh for
	// this order; the import itself still goes through.
	if order.UpdatedAt != "" {
		if updatedAt, err := shopify.ParseTime(order.UpdatedAt); err != nil {
			n.log.Warn("order has unparseable updated_at",
				zap.String("order", order.Name),
				zap.String("updated_at", order.UpdatedAt))
		} else {
			base.PlatformUpdatedAt = &updatedAt
		}
	}

	if order.Customer != nil {
		base.CustomerName = order.Customer.FirstName + " " + order.Customer.LastName
	} else {
		base.CustomerName = sync.SentinelNA
	}

	if order.ShippingAddress != nil {
		base.Destination = order.ShippingAddress.City
	} else {
		base.Destination = sync.SentinelNA
	}

	if len(order.ShippingLines) > 0 {
		base.DeliveryMethod = order.ShippingLines[0].Title
	} else {
		base.DeliveryMethod = sync.SentinelNotSpecified
	}

	base.DeliveryStatus, base.Status, base.TrackingNumber = firstFulfillment(order)
	base.FulfillmentStatus = fulfillmentStatus(order)
	base.DiscountCodes, base.DiscountTypes, base.DiscountAmounts = joinDiscounts(order)

	campaign := parseCampaignParams(order.LandingSite)
	base.CampaignID = campaign["campaign_id"]
	base.UTMID = campaign["utm_id"]
	base.UTMSource = campaign["utm_source"]
	base.UTMMedium = campaign["utm_medium"]
	base.UTMCampaign = campaign["utm_campaign"]
	base.CmpID = campaign["cmp_id"]

	rows := make([]sync.OrderRow, 0, len(order.LineItems))
	for i := range order.LineItems {
		item := &order.LineItems[i]
		row := base
		row.ItemTitle = item.Title
		row.ItemSKU = item.SKU
		row.ItemVariant = sync.SentinelNA
		if item.VariantTitle != nil {
			row.ItemVariant = *item.VariantTitle
		}
		row.ItemQuantity = item.Quantity
		row.ItemPrice = formatMoney(item.Price, order.Currency)
		rows = append(rows, row)
	}
	return rows, nil
}

// campaignParamNames are the landing-site query parameters lifted into the
// campaign attribution record.
var campaignParamNames = []string{
	"campaign_id",
	"utm_id",
	"utm_source",
	"utm_medium",
	"utm_campaign",
	"cmp_id",
}

// parseCampaignParams extracts the attribution parameters from a landing-site
// URL. Missing parameters stay nil; an unparseable URL yields no parameters.
func parseCampaignParams(landingSite string) map[string]*string {
	params := make(map[string]*string, len(campaignParamNames))
	if landingSite == "" {
		return params
	}
	parsed, err := url.Parse(landingSite)
	if err != nil {
		return params
	}
	query := parsed.Query()
	for _, name := range campaignParamNames {
		if values, ok := query[name]; ok && len(values) > 0 {
			value := values[0]
			params[name] = &value
		}
	}
	return params
}

// formatMoney renders an amount as "12.34 GBP", the format every monetary
// column is stored in.
func formatMoney(amount decimal.Decimal, currency string) string {
	return amount.StringFixed(2) + " " + currency
}

// refundedAmount sums the first transaction of every refund. A refund with no
// transactions contributes nothing.
func refundedAmount(order *shopify.Order) decimal.Decimal {
	total := decimal.Zero
	for _, refund := range order.Refunds {
		if len(refund.Transactions) > 0 {
			total = total.Add(refund.Transactions[0].Amount)
		}
	}
	return total
}

func shippingPrice(order *shopify.Order) decimal.Decimal {
	if len(order.ShippingLines) > 0 {
		return order.ShippingLines[0].Price
	}
	return decimal.Zero
}

// fulfillmentStatus maps the platform's null fulfillment status to
// "unfulfilled".
func fulfillmentStatus(order *shopify.Order) string {
	if order.FulfillmentStatus != nil && *order.FulfillmentStatus != "" {
		return *order.FulfillmentStatus
	}
	return "unfulfilled"
}

// firstFulfillment derives delivery status, fulfillment record status and
// tracking number from the first fulfillment attempt.
func firstFulfillment(order *shopify.Order) (deliveryStatus, status, trackingNumber string) {
	if len(order.Fulfillments) == 0 {
		return sync.SentinelNotAvailable, sync.SentinelNotAvailable, sync.SentinelNA
	}
	first := order.Fulfillments[0]
	deliveryStatus = sync.SentinelNotAvailable
	if first.ShipmentStatus != nil {
		deliveryStatus = *first.ShipmentStatus
	}
	status = first.Status
	trackingNumber = sync.SentinelNA
	if first.TrackingNumber != nil {
		trackingNumber = *first.TrackingNumber
	}
	return deliveryStatus, status, trackingNumber
}

// joinDiscounts renders the order's discount codes as three parallel
// comma-joined columns. The amount column falls back to "0.00" while the
// code and type columns fall back to "N/A", matching the historical exports
// downstream consumers already rely on.
func joinDiscounts(order *shopify.Order) (codes, types, amounts string) {
	if len(order.DiscountCodes) == 0 {
		return sync.SentinelNA, sync.SentinelNA, sync.SentinelZeroAmount
	}
	codeList := make([]string, len(order.DiscountCodes))
	typeList := make([]string, len(order.DiscountCodes))
	amountList := make([]string, len(order.DiscountCodes))
	for i, d := range order.DiscountCodes {
		codeList[i] = d.Code
		typeList[i] = d.Type
		amountList[i] = d.Amount.StringFixed(2)
	}
	return strings.Join(codeList, ", "), strings.Join(typeList, ", "), strings.Join(amountList, ", ")
}

func normalizeAddress(addr *shopify.Address) sync.Address {
	if addr == nil {
		return sync.Address{
			Name:         sync.SentinelNA,
			Line1:        sync.SentinelNA,
			City:         sync.SentinelNA,
			ProvinceCode: sync.SentinelNA,
			CountryCode:  sync.SentinelNA,
			Zip:          sync.SentinelNA,
			Latitude:     sync.SentinelNA,
			Longitude:    sync.SentinelNA,
		}
	}
	return sync.Address{
		Name:         addr.Name,
		Line1:        addr.Address1,
		City:         addr.City,
		ProvinceCode: addr.ProvinceCode,
		CountryCode:  addr.CountryCode,
		Zip:          addr.Zip,
		Latitude:     addr.Latitude.String(),
		Longitude:    addr.Longitude.String(),
	}
}
