package shopify

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Raw Admin API payload types. Optional nested objects are pointers or
// slices so that absence stays visible to the normalizer; timestamps stay
// raw strings and are parsed during normalization.

// OrdersResponse is the envelope of the orders.json endpoint.
type OrdersResponse struct {
	Orders []Order `json:"orders"`
}

// Order is one order as returned by the REST Admin API.
type Order struct {
	ID                  int64           `json:"id"`
	Name                string          `json:"name"`
	CreatedAt           string          `json:"created_at"`
	UpdatedAt           string          `json:"updated_at"`
	ProcessedAt         string          `json:"processed_at"`
	Currency            string          `json:"currency"`
	TotalPrice          decimal.Decimal `json:"total_price"`
	TotalDiscounts      decimal.Decimal `json:"total_discounts"`
	FinancialStatus     string          `json:"financial_status"`
	FulfillmentStatus   *string         `json:"fulfillment_status"`
	SourceName          string          `json:"source_name"`
	Tags                string          `json:"tags"`
	LandingSite         string          `json:"landing_site"`
	ReferringSite       string          `json:"referring_site"`
	OrderStatusURL      string          `json:"order_status_url"`
	PaymentGatewayNames []string        `json:"payment_gateway_names"`
	Customer            *Customer       `json:"customer"`
	ShippingAddress     *Address        `json:"shipping_address"`
	BillingAddress      *Address        `json:"billing_address"`
	ShippingLines       []ShippingLine  `json:"shipping_lines"`
	DiscountCodes       []DiscountCode  `json:"discount_codes"`
	Fulfillments        []Fulfillment   `json:"fulfillments"`
	Refunds             []Refund        `json:"refunds"`
	LineItems           []LineItem      `json:"line_items"`
}

// Customer is the order's customer reference.
type Customer struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Address is a shipping or billing address. Latitude/longitude arrive as
// numbers but are carried as text downstream.
type Address struct {
	Name         string      `json:"name"`
	Address1     string      `json:"address1"`
	City         string      `json:"city"`
	ProvinceCode string      `json:"province_code"`
	CountryCode  string      `json:"country_code"`
	Zip          string      `json:"zip"`
	Latitude     json.Number `json:"latitude"`
	Longitude    json.Number `json:"longitude"`
}

// ShippingLine is one shipping charge on an order.
type ShippingLine struct {
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
}

// DiscountCode is one applied discount.
type DiscountCode struct {
	Code   string          `json:"code"`
	Type   string          `json:"type"`
	Amount decimal.Decimal `json:"amount"`
}

// Fulfillment is one fulfillment attempt on an order.
type Fulfillment struct {
	Status         string  `json:"status"`
	ShipmentStatus *string `json:"shipment_status"`
	TrackingNumber *string `json:"tracking_number"`
}

// Refund is one refund on an order; its amount is read from the first
// transaction only.
type Refund struct {
	Transactions []Transaction `json:"transactions"`
}

// Transaction is one money movement inside a refund.
type Transaction struct {
	Amount decimal.Decimal `json:"amount"`
}

// LineItem is one purchasable line of an order.
type LineItem struct {
	Title        string          `json:"title"`
	SKU          string          `json:"sku"`
	VariantTitle *string         `json:"variant_title"`
	Quantity     int             `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
}
