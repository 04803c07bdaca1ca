package sync

import (
	"time"

	"github.com/google/uuid"
)

// Sentinel values written for absent nested platform objects. The original
// connector used two different fallbacks; both are kept.
const (
	SentinelNA           = "N/A"
	SentinelNotAvailable = "Not available"
	SentinelNotSpecified = "Not specified"
	SentinelZeroAmount   = "0.00"
)

// Address holds the flattened component fields of a platform address.
// Latitude and longitude are kept as text, matching the upstream payload.
type Address struct {
	Name         string
	Line1        string
	City         string
	ProvinceCode string
	CountryCode  string
	Zip          string
	Latitude     string
	Longitude    string
}

// Order is a synchronized platform order. Number is the natural key and is
// globally unique; orders are created when first seen and never deleted.
type Order struct {
	ID                uuid.UUID
	Number            string
	StoreName         string
	CustomerName      string
	ShippingAddress   Address
	BillingAddress    Address
	PlacedAt          *time.Time
	ProcessedAt       *time.Time
	ItemCount         int
	ShippingPrice     string
	DeliveryMethod    string
	DeliveryStatus    string
	DiscountCodes     string
	DiscountTypes     string
	DiscountAmounts   string
	TotalDiscount     string
	RefundedAmount    string
	TotalPaid         string
	PaymentStatus     string
	FulfillmentStatus string
	Channel           string
	Destination       string
	Tags              string
	TrackingNumber    string
	Status            string
	StatusURL         string
	LandingSite       string
	ReferringSite     string
	PaymentGateways   string
	PlatformUpdatedAt *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// OrderItem is one line item of an Order. Items are immutable once created;
// the natural key is (order, title, sku, variant) within the parent order.
type OrderItem struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	Title     string
	SKU       string
	Variant   string
	Quantity  int
	Price     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Campaign is the attribution record extracted from an order's landing site.
// Created once per (order, landing site, referring site); never updated.
type Campaign struct {
	ID            uuid.UUID
	OrderID       uuid.UUID
	OrderNumber   string
	LandingSite   string
	ReferringSite string
	CampaignID    *string
	UTMID         *string
	UTMSource     *string
	UTMMedium     *string
	UTMCampaign   *string
	CmpID         *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ItemKey is the natural key of an OrderItem within a persisted store.
type ItemKey struct {
	OrderID uuid.UUID
	Title   string
	SKU     string
	Variant string
}

// CampaignKey is the natural key of a Campaign within a persisted store.
type CampaignKey struct {
	OrderID       uuid.UUID
	LandingSite   string
	ReferringSite string
}

// OrderRow is one flattened (order, line item) pair produced by the
// normalizer. Order-level fields repeat on every row of the same order.
type OrderRow struct {
	Number            string
	StoreName         string
	CustomerName      string
	ShippingAddress   Address
	BillingAddress    Address
	PlacedAt          *time.Time
	ProcessedAt       *time.Time
	ItemCount         int
	ItemTitle         string
	ItemSKU           string
	ItemVariant       string
	ItemQuantity      int
	ItemPrice         string
	ShippingPrice     string
	DeliveryMethod    string
	DeliveryStatus    string
	DiscountCodes     string
	DiscountTypes     string
	DiscountAmounts   string
	TotalDiscount     string
	RefundedAmount    string
	TotalPaid         string
	PaymentStatus     string
	FulfillmentStatus string
	Channel           string
	Destination       string
	Tags              string
	TrackingNumber    string
	Status            string
	StatusURL         string
	LandingSite       string
	ReferringSite     string
	PaymentGateways   string
	PlatformUpdatedAt *time.Time
	CampaignID        *string
	UTMID             *string
	UTMSource         *string
	UTMMedium         *string
	UTMCampaign       *string
	CmpID             *string
}

// Order builds the Order entity for this row. Item-level fields are dropped;
// the caller assigns the ID.
func (r *OrderRow) Order() *Order {
	return &Order{
		Number:            r.Number,
		StoreName:         r.StoreName,
		CustomerName:      r.CustomerName,
		ShippingAddress:   r.ShippingAddress,
		BillingAddress:    r.BillingAddress,
		PlacedAt:          r.PlacedAt,
		ProcessedAt:       r.ProcessedAt,
		ItemCount:         r.ItemCount,
		ShippingPrice:     r.ShippingPrice,
		DeliveryMethod:    r.DeliveryMethod,
		DeliveryStatus:    r.DeliveryStatus,
		DiscountCodes:     r.DiscountCodes,
		DiscountTypes:     r.DiscountTypes,
		DiscountAmounts:   r.DiscountAmounts,
		TotalDiscount:     r.TotalDiscount,
		RefundedAmount:    r.RefundedAmount,
		TotalPaid:         r.TotalPaid,
		PaymentStatus:     r.PaymentStatus,
		FulfillmentStatus: r.FulfillmentStatus,
		Channel:           r.Channel,
		Destination:       r.Destination,
		Tags:              r.Tags,
		TrackingNumber:    r.TrackingNumber,
		Status:            r.Status,
		StatusURL:         r.StatusURL,
		LandingSite:       r.LandingSite,
		ReferringSite:     r.ReferringSite,
		PaymentGateways:   r.PaymentGateways,
		PlatformUpdatedAt: r.PlatformUpdatedAt,
	}
}

// Item builds the OrderItem entity for this row, owned by orderID.
func (r *OrderRow) Item(orderID uuid.UUID) *OrderItem {
	return &OrderItem{
		OrderID:  orderID,
		Title:    r.ItemTitle,
		SKU:      r.ItemSKU,
		Variant:  r.ItemVariant,
		Quantity: r.ItemQuantity,
		Price:    r.ItemPrice,
	}
}

// Campaign builds the Campaign entity for this row, owned by orderID.
func (r *OrderRow) Campaign(orderID uuid.UUID) *Campaign {
	return &Campaign{
		OrderID:       orderID,
		OrderNumber:   r.Number,
		LandingSite:   r.LandingSite,
		ReferringSite: r.ReferringSite,
		CampaignID:    r.CampaignID,
		UTMID:         r.UTMID,
		UTMSource:     r.UTMSource,
		UTMMedium:     r.UTMMedium,
		UTMCampaign:   r.UTMCampaign,
		CmpID:         r.CmpID,
	}
}

// OrderStamp is the minimal projection used by the re-sync path to decide
// whether an order needs a status refresh.
type OrderStamp struct {
	ID                uuid.UUID
	Number            string
	PlatformUpdatedAt *time.Time
}

// StatusPatch is the fixed mutable-field subset written by the re-sync path.
// All other order fields are immutable after first import.
type StatusPatch struct {
	ID                uuid.UUID
	Number            string
	RefundedAmount    string
	TotalPaid         string
	PaymentStatus     string
	FulfillmentStatus string
	Tags              string
	Status            string
	PlatformUpdatedAt time.Time
}
