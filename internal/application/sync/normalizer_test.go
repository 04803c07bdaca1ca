package sync

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shopsync/backend/internal/infrastructure/shopify"
)

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func strPtr(s string) *string {
	return &s
}

func fullOrder() shopify.Order {
	return shopify.Order{
		ID:                1001,
		Name:              "#1001",
		CreatedAt:         "2024-03-01T12:00:00+00:00",
		UpdatedAt:         "2024-03-05T09:30:00+00:00",
		ProcessedAt:       "2024-03-01T12:00:05+00:00",
		Currency:          "GBP",
		TotalPrice:        money("120.50"),
		TotalDiscounts:    money("10"),
		FinancialStatus:   "paid",
		FulfillmentStatus: strPtr("fulfilled"),
		SourceName:        "web",
		Tags:              "wholesale",
		LandingSite:       "/collections/gloves?utm_source=google&utm_medium=cpc&utm_campaign=spring&campaign_id=c-9&utm_id=u-1&cmp_id=m-2",
		ReferringSite:     "https://google.com",
		OrderStatusURL:    "https://shop.example/status/1001",
		PaymentGatewayNames: []string{
			"shopify_payments",
			"gift_card",
		},
		Customer: &shopify.Customer{FirstName: "Jane", LastName: "Smith"},
		ShippingAddress: &shopify.Address{
			Name:         "Jane Smith",
			Address1:     "1 High St",
			City:         "London",
			ProvinceCode: "LND",
			CountryCode:  "GB",
			Zip:          "E1 6AN",
		},
		BillingAddress: &shopify.Address{
			Name:         "Jane Smith",
			Address1:     "1 High St",
			City:         "London",
			ProvinceCode: "LND",
			CountryCode:  "GB",
			Zip:          "E1 6AN",
		},
		ShippingLines: []shopify.ShippingLine{
			{Title: "Express", Price: money("4.99")},
			{Title: "Ignored", Price: money("9.99")},
		},
		DiscountCodes: []shopify.DiscountCode{
			{Code: "SPRING10", Type: "percentage", Amount: money("10")},
			{Code: "VIP", Type: "fixed_amount", Amount: money("5")},
		},
		Fulfillments: []shopify.Fulfillment{
			{Status: "success", ShipmentStatus: strPtr("delivered"), TrackingNumber: strPtr("TRK-1")},
			{Status: "cancelled"},
		},
		Refunds: []shopify.Refund{
			{Transactions: []shopify.Transaction{{Amount: money("5.00")}, {Amount: money("99.00")}}},
			{Transactions: []shopify.Transaction{{Amount: money("3.50")}}},
			{},
		},
		LineItems: []shopify.LineItem{
			{Title: "Boxing Gloves", SKU: "GLV-12", VariantTitle: strPtr("12oz"), Quantity: 1, Price: money("49.99")},
			{Title: "Hand Wraps", SKU: "WRP-01", Quantity: 2, Price: money("9.99")},
		},
	}
}

func TestNormalizer_NormalizeBatch(t *testing.T) {
	normalizer := NewNormalizer(zap.NewNop())

	t.Run("one row per line item with shared order fields", func(t *testing.T) {
		rows := normalizer.NormalizeBatch([]shopify.Order{fullOrder()}, "UK")
		require.Len(t, rows, 2)

		first := rows[0]
		assert.Equal(t, "#1001", first.Number)
		assert.Equal(t, "UK", first.StoreName)
		assert.Equal(t, "Jane Smith", first.CustomerName)
		assert.Equal(t, 2, first.ItemCount)
		assert.Equal(t, "London", first.Destination)
		assert.Equal(t, "London", first.ShippingAddress.City)
		assert.Equal(t, "4.99 GBP", first.ShippingPrice)
		assert.Equal(t, "Express", first.DeliveryMethod)
		assert.Equal(t, "delivered", first.DeliveryStatus)
		assert.Equal(t, "success", first.Status)
		assert.Equal(t, "TRK-1", first.TrackingNumber)
		assert.Equal(t, "SPRING10, VIP", first.DiscountCodes)
		assert.Equal(t, "percentage, fixed_amount", first.DiscountTypes)
		assert.Equal(t, "10.00, 5.00", first.DiscountAmounts)
		assert.Equal(t, "10.00 GBP", first.TotalDiscount)
		// 5.00 + 3.50: only the first transaction of each refund counts.
		assert.Equal(t, "8.50 GBP", first.RefundedAmount)
		assert.Equal(t, "120.50 GBP", first.TotalPaid)
		assert.Equal(t, "paid", first.PaymentStatus)
		assert.Equal(t, "fulfilled", first.FulfillmentStatus)
		assert.Equal(t, "web", first.Channel)
		assert.Equal(t, "wholesale", first.Tags)
		assert.Equal(t, "shopify_payments, gift_card", first.PaymentGateways)
		require.NotNil(t, first.PlacedAt)
		require.NotNil(t, first.PlatformUpdatedAt)

		assert.Equal(t, "Boxing Gloves", first.ItemTitle)
		assert.Equal(t, "12oz", first.ItemVariant)
		assert.Equal(t, "49.99 GBP", first.ItemPrice)

		second := rows[1]
		assert.Equal(t, "#1001", second.Number)
		assert.Equal(t, 2, second.ItemCount)
		assert.Equal(t, "Hand Wraps", second.ItemTitle)
		// A line item without a variant title gets the string sentinel.
		assert.Equal(t, "N/A", second.ItemVariant)
		assert.Equal(t, "9.99 GBP", second.ItemPrice)
		assert.Equal(t, 2, second.ItemQuantity)
	})

	t.Run("campaign parameters from the landing site", func(t *testing.T) {
		rows := normalizer.NormalizeBatch([]shopify.Order{fullOrder()}, "UK")
		require.Len(t, rows, 2)

		row := rows[0]
		require.NotNil(t, row.UTMSource)
		assert.Equal(t, "google", *row.UTMSource)
		require.NotNil(t, row.UTMMedium)
		assert.Equal(t, "cpc", *row.UTMMedium)
		require.NotNil(t, row.UTMCampaign)
		assert.Equal(t, "spring", *row.UTMCampaign)
		require.NotNil(t, row.CampaignID)
		assert.Equal(t, "c-9", *row.CampaignID)
		require.NotNil(t, row.UTMID)
		assert.Equal(t, "u-1", *row.UTMID)
		require.NotNil(t, row.CmpID)
		assert.Equal(t, "m-2", *row.CmpID)
	})

	t.Run("absent nested objects fall back to sentinels", func(t *testing.T) {
		order := shopify.Order{
			ID:        2002,
			Name:      "#2002",
			CreatedAt: "2024-03-02T08:00:00+00:00",
			Currency:  "USD",
			LineItems: []shopify.LineItem{
				{Title: "Skipping Rope", SKU: "RPE-01", Quantity: 1, Price: money("12.00")},
			},
		}

		rows := normalizer.NormalizeBatch([]shopify.Order{order}, "USA")
		require.Len(t, rows, 1)

		row := rows[0]
		assert.Equal(t, "N/A", row.CustomerName)
		assert.Equal(t, "N/A", row.ShippingAddress.Name)
		assert.Equal(t, "N/A", row.ShippingAddress.City)
		assert.Equal(t, "N/A", row.BillingAddress.Zip)
		assert.Equal(t, "N/A", row.Destination)
		assert.Equal(t, "Not specified", row.DeliveryMethod)
		assert.Equal(t, "Not available", row.DeliveryStatus)
		assert.Equal(t, "Not available", row.Status)
		assert.Equal(t, "N/A", row.TrackingNumber)
		assert.Equal(t, "N/A", row.DiscountCodes)
		assert.Equal(t, "N/A", row.DiscountTypes)
		assert.Equal(t, "0.00", row.DiscountAmounts)
		assert.Equal(t, "0.00 USD", row.ShippingPrice)
		assert.Equal(t, "0.00 USD", row.RefundedAmount)
		assert.Equal(t, "0.00 USD", row.TotalDiscount)
		assert.Equal(t, "0.00 USD", row.TotalPaid)
		assert.Equal(t, "unfulfilled", row.FulfillmentStatus)
		assert.Nil(t, row.UTMSource)
		assert.Nil(t, row.CampaignID)
		assert.Nil(t, row.ProcessedAt)
		assert.Nil(t, row.PlatformUpdatedAt)
	})

	t.Run("malformed order is skipped, batch continues", func(t *testing.T) {
		bad := fullOrder()
		bad.Name = "#bad"
		bad.CreatedAt = "not-a-date"

		rows := normalizer.NormalizeBatch([]shopify.Order{bad, fullOrder()}, "UK")
		require.Len(t, rows, 2)
		assert.Equal(t, "#1001", rows[0].Number)
	})

	t.Run("unparseable updated_at keeps the order but drops the stamp", func(t *testing.T) {
		order := fullOrder()
		order.UpdatedAt = "garbage"

		rows := normalizer.NormalizeBatch([]shopify.Order{order}, "UK")
		require.Len(t, rows, 2)
		assert.Nil(t, rows[0].PlatformUpdatedAt)
	})

	t.Run("order without line items yields no rows", func(t *testing.T) {
		order := fullOrder()
		order.LineItems = nil

		rows := normalizer.NormalizeBatch([]shopify.Order{order}, "UK")
		assert.Empty(t, rows)
	})
}

func TestParseCampaignParams(t *testing.T) {
	t.Run("missing parameters stay nil", func(t *testing.T) {
		params := parseCampaignParams("/collections/gloves?utm_source=meta")
		require.NotNil(t, params["utm_source"])
		assert.Equal(t, "meta", *params["utm_source"])
		assert.Nil(t, params["utm_medium"])
		assert.Nil(t, params["cmp_id"])
	})

	t.Run("empty landing site", func(t *testing.T) {
		params := parseCampaignParams("")
		assert.Nil(t, params["utm_source"])
	})

	t.Run("unparseable landing site", func(t *testing.T) {
		params := parseCampaignParams("://bad")
		assert.Nil(t, params["utm_source"])
	})
}
