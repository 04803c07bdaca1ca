package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/shopsync/backend/internal/domain/sync"
)

// OrderModel is the persistence model for the Order domain entity.
type OrderModel struct {
	ID                   uuid.UUID  `gorm:"type:uuid;primary_key"`
	Number               string     `gorm:"type:varchar(50);not null;uniqueIndex:idx_orders_number"`
	StoreName            string     `gorm:"type:varchar(50)"`
	CustomerName         string     `gorm:"type:varchar(255)"`
	ShippingName         string     `gorm:"type:varchar(255)"`
	ShippingLine1        string     `gorm:"type:varchar(255)"`
	ShippingCity         string     `gorm:"type:varchar(100)"`
	ShippingProvinceCode string     `gorm:"type:varchar(20)"`
	ShippingCountryCode  string     `gorm:"type:varchar(20)"`
	ShippingZip          string     `gorm:"type:varchar(30)"`
	ShippingLatitude     string     `gorm:"type:varchar(50)"`
	ShippingLongitude    string     `gorm:"type:varchar(50)"`
	BillingName          string     `gorm:"type:varchar(255)"`
	BillingLine1         string     `gorm:"type:varchar(255)"`
	BillingCity          string     `gorm:"type:varchar(100)"`
	BillingProvinceCode  string     `gorm:"type:varchar(20)"`
	BillingCountryCode   string     `gorm:"type:varchar(20)"`
	BillingZip           string     `gorm:"type:varchar(30)"`
	BillingLatitude      string     `gorm:"type:varchar(50)"`
	BillingLongitude     string     `gorm:"type:varchar(50)"`
	PlacedAt             *time.Time `gorm:"index"`
	ProcessedAt          *time.Time
	ItemCount            int    `gorm:"not null;default:0"`
	ShippingPrice        string `gorm:"type:varchar(50)"`
	DeliveryMethod       string `gorm:"type:varchar(255)"`
	DeliveryStatus       string `gorm:"type:varchar(100)"`
	DiscountCodes        string `gorm:"type:text"`
	DiscountTypes        string `gorm:"type:text"`
	DiscountAmounts      string `gorm:"type:text"`
	TotalDiscount        string `gorm:"type:varchar(50)"`
	RefundedAmount       string `gorm:"type:varchar(50)"`
	TotalPaid            string `gorm:"type:varchar(50)"`
	PaymentStatus        string `gorm:"type:varchar(50)"`
	FulfillmentStatus    string `gorm:"type:varchar(50)"`
	Channel              string `gorm:"type:varchar(100)"`
	Destination          string `gorm:"type:varchar(100)"`
	Tags                 string `gorm:"type:text"`
	TrackingNumber       string `gorm:"type:varchar(255)"`
	Status               string `gorm:"type:varchar(50)"`
	StatusURL            string `gorm:"type:text"`
	LandingSite          string `gorm:"type:text"`
	ReferringSite        string `gorm:"type:text"`
	PaymentGateways      string `gorm:"type:text"`
	PlatformUpdatedAt    *time.Time
	CreatedAt            time.Time `gorm:"not null"`
	UpdatedAt            time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order entity.
func (m *OrderModel) ToDomain() *sync.Order {
	return &sync.Order{
		ID:           m.ID,
		Number:       m.Number,
		StoreName:    m.StoreName,
		CustomerName: m.CustomerName,
		ShippingAddress: sync.Address{
			Name:         m.ShippingName,
			Line1:        m.ShippingLine1,
			City:         m.ShippingCity,
			ProvinceCode: m.ShippingProvinceCode,
			CountryCode:  m.ShippingCountryCode,
			Zip:          m.ShippingZip,
			Latitude:     m.ShippingLatitude,
			Longitude:    m.ShippingLongitude,
		},
		BillingAddress: sync.Address{
			Name:         m.BillingName,
			Line1:        m.BillingLine1,
			City:         m.BillingCity,
			ProvinceCode: m.BillingProvinceCode,
			CountryCode:  m.BillingCountryCode,
			Zip:          m.BillingZip,
			Latitude:     m.BillingLatitude,
			Longitude:    m.BillingLongitude,
		},
		PlacedAt:          m.PlacedAt,
		ProcessedAt:       m.ProcessedAt,
		ItemCount:         m.ItemCount,
		ShippingPrice:     m.ShippingPrice,
		DeliveryMethod:    m.DeliveryMethod,
		DeliveryStatus:    m.DeliveryStatus,
		DiscountCodes:     m.DiscountCodes,
		DiscountTypes:     m.DiscountTypes,
		DiscountAmounts:   m.DiscountAmounts,
		TotalDiscount:     m.TotalDiscount,
		RefundedAmount:    m.RefundedAmount,
		TotalPaid:         m.TotalPaid,
		PaymentStatus:     m.PaymentStatus,
		FulfillmentStatus: m.FulfillmentStatus,
		Channel:           m.Channel,
		Destination:       m.Destination,
		Tags:              m.Tags,
		TrackingNumber:    m.TrackingNumber,
		Status:            m.Status,
		StatusURL:         m.StatusURL,
		LandingSite:       m.LandingSite,
		ReferringSite:     m.ReferringSite,
		PaymentGateways:   m.PaymentGateways,
		PlatformUpdatedAt: m.PlatformUpdatedAt,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain Order entity.
func (m *OrderModel) FromDomain(o *sync.Order) {
	m.ID = o.ID
	m.Number = o.Number
	m.StoreName = o.StoreName
	m.CustomerName = o.CustomerName
	m.ShippingName = o.ShippingAddress.Name
	m.ShippingLine1 = o.ShippingAddress.Line1
	m.ShippingCity = o.ShippingAddress.City
	m.ShippingProvinceCode = o.ShippingAddress.ProvinceCode
	m.ShippingCountryCode = o.ShippingAddress.CountryCode
	m.ShippingZip = o.ShippingAddress.Zip
	m.ShippingLatitude = o.ShippingAddress.Latitude
	m.ShippingLongitude = o.ShippingAddress.Longitude
	m.BillingName = o.BillingAddress.Name
	m.BillingLine1 = o.BillingAddress.Line1
	m.BillingCity = o.BillingAddress.City
	m.BillingProvinceCode = o.BillingAddress.ProvinceCode
	m.BillingCountryCode = o.BillingAddress.CountryCode
	m.BillingZip = o.BillingAddress.Zip
	m.BillingLatitude = o.BillingAddress.Latitude
	m.BillingLongitude = o.BillingAddress.Longitude
	m.PlacedAt = o.PlacedAt
	m.ProcessedAt = o.ProcessedAt
	m.ItemCount = o.ItemCount
	m.ShippingPrice = o.ShippingPrice
	m.DeliveryMethod = o.DeliveryMethod
	m.DeliveryStatus = o.DeliveryStatus
	m.DiscountCodes = o.DiscountCodes
	m.DiscountTypes = o.DiscountTypes
	m.DiscountAmounts = o.DiscountAmounts
	m.TotalDiscount = o.TotalDiscount
	m.RefundedAmount = o.RefundedAmount
	m.TotalPaid = o.TotalPaid
	m.PaymentStatus = o.PaymentStatus
	m.FulfillmentStatus = o.FulfillmentStatus
	m.Channel = o.Channel
	m.Destination = o.Destination
	m.Tags = o.Tags
	m.TrackingNumber = o.TrackingNumber
	m.Status = o.Status
	m.StatusURL = o.StatusURL
	m.LandingSite = o.LandingSite
	m.ReferringSite = o.ReferringSite
	m.PaymentGateways = o.PaymentGateways
	m.PlatformUpdatedAt = o.PlatformUpdatedAt
	m.CreatedAt = o.CreatedAt
	m.UpdatedAt = o.UpdatedAt
}

// OrderModelFromDomain creates a new persistence model from a domain Order entity.
func OrderModelFromDomain(o *sync.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}

// OrderItemModel is the persistence model for the OrderItem domain entity.
type OrderItemModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_order_items_key,priority:1"`
	Title     string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_order_items_key,priority:2"`
	SKU       string    `gorm:"type:varchar(100);uniqueIndex:idx_order_items_key,priority:3"`
	Variant   string    `gorm:"type:varchar(255);uniqueIndex:idx_order_items_key,priority:4"`
	Quantity  int       `gorm:"not null;default:0"`
	Price     string    `gorm:"type:varchar(50)"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the persistence model to a domain OrderItem entity.
func (m *OrderItemModel) ToDomain() *sync.OrderItem {
	return &sync.OrderItem{
		ID:        m.ID,
		OrderID:   m.OrderID,
		Title:     m.Title,
		SKU:       m.SKU,
		Variant:   m.Variant,
		Quantity:  m.Quantity,
		Price:     m.Price,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// OrderItemModelFromDomain creates a new persistence model from a domain OrderItem entity.
func OrderItemModelFromDomain(i *sync.OrderItem) *OrderItemModel {
	return &OrderItemModel{
		ID:        i.ID,
		OrderID:   i.OrderID,
		Title:     i.Title,
		SKU:       i.SKU,
		Variant:   i.Variant,
		Quantity:  i.Quantity,
		Price:     i.Price,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

// CampaignModel is the persistence model for the Campaign domain entity.
type CampaignModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key"`
	OrderID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_campaigns_key,priority:1"`
	OrderNumber   string    `gorm:"type:varchar(50);not null;index"`
	LandingSite   string    `gorm:"type:text;uniqueIndex:idx_campaigns_key,priority:2"`
	ReferringSite string    `gorm:"type:text;uniqueIndex:idx_campaigns_key,priority:3"`
	CampaignID    *string   `gorm:"type:varchar(255)"`
	UTMID         *string   `gorm:"type:varchar(255);column:utm_id"`
	UTMSource     *string   `gorm:"type:varchar(255);column:utm_source"`
	UTMMedium     *string   `gorm:"type:varchar(255);column:utm_medium"`
	UTMCampaign   *string   `gorm:"type:varchar(255);column:utm_campaign"`
	CmpID         *string   `gorm:"type:varchar(255);column:cmp_id"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CampaignModel) TableName() string {
	return "campaigns"
}

// ToDomain converts the persistence model to a domain Campaign entity.
func (m *CampaignModel) ToDomain() *sync.Campaign {
	return &sync.Campaign{
		ID:            m.ID,
		OrderID:       m.OrderID,
		OrderNumber:   m.OrderNumber,
		LandingSite:   m.LandingSite,
		ReferringSite: m.ReferringSite,
		CampaignID:    m.CampaignID,
		UTMID:         m.UTMID,
		UTMSource:     m.UTMSource,
		UTMMedium:     m.UTMMedium,
		UTMCampaign:   m.UTMCampaign,
		CmpID:         m.CmpID,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// CampaignModelFromDomain creates a new persistence model from a domain Campaign entity.
func CampaignModelFromDomain(c *sync.Campaign) *CampaignModel {
	return &CampaignModel{
		ID:            c.ID,
		OrderID:       c.OrderID,
		OrderNumber:   c.OrderNumber,
		LandingSite:   c.LandingSite,
		ReferringSite: c.ReferringSite,
		CampaignID:    c.CampaignID,
		UTMID:         c.UTMID,
		UTMSource:     c.UTMSource,
		UTMMedium:     c.UTMMedium,
		UTMCampaign:   c.UTMCampaign,
		CmpID:         c.CmpID,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

// InventoryModel is the persistence model for the InventoryRecord domain entity.
type InventoryModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key"`
	ProductID      string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_inventory_key,priority:1"`
	ProductTitle   string    `gorm:"type:varchar(255)"`
	Vendor         string    `gorm:"type:varchar(255)"`
	Tags           string    `gorm:"type:text"`
	ProductType    string    `gorm:"type:varchar(255)"`
	Category       string    `gorm:"type:varchar(255)"`
	CategoryName   string    `gorm:"type:varchar(255)"`
	Collections    string    `gorm:"type:text"`
	VariantID      string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_inventory_key,priority:2"`
	VariantTitle   string    `gorm:"type:varchar(255)"`
	VariantSKU     string    `gorm:"type:varchar(100);index"`
	LocationID     string    `gorm:"type:varchar(100)"`
	LocationName   string    `gorm:"type:varchar(255)"`
	Available      int       `gorm:"not null;default:0"`
	Reserved       int       `gorm:"not null;default:0"`
	Incoming       int       `gorm:"not null;default:0"`
	Committed      int       `gorm:"not null;default:0"`
	Damaged        int       `gorm:"not null;default:0"`
	OnHand         int       `gorm:"not null;default:0"`
	QualityControl int       `gorm:"not null;default:0"`
	SafetyCheck    int       `gorm:"not null;default:0"`
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InventoryModel) TableName() string {
	return "inventory_records"
}

// ToDomain converts the persistence model to a domain InventoryRecord entity.
func (m *InventoryModel) ToDomain() *sync.InventoryRecord {
	return &sync.InventoryRecord{
		ID:           m.ID,
		ProductID:    m.ProductID,
		ProductTitle: m.ProductTitle,
		Vendor:       m.Vendor,
		Tags:         m.Tags,
		ProductType:  m.ProductType,
		Category:     m.Category,
		CategoryName: m.CategoryName,
		Collections:  m.Collections,
		VariantID:    m.VariantID,
		VariantTitle: m.VariantTitle,
		VariantSKU:   m.VariantSKU,
		LocationID:   m.LocationID,
		LocationName: m.LocationName,
		Quantities: sync.Quantities{
			Available:      m.Available,
			Reserved:       m.Reserved,
			Incoming:       m.Incoming,
			Committed:      m.Committed,
			Damaged:        m.Damaged,
			OnHand:         m.OnHand,
			QualityControl: m.QualityControl,
			SafetyCheck:    m.SafetyCheck,
		},
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// InventoryModelFromDomain creates a new persistence model from a domain InventoryRecord entity.
func InventoryModelFromDomain(r *sync.InventoryRecord) *InventoryModel {
	return &InventoryModel{
		ID:             r.ID,
		ProductID:      r.ProductID,
		ProductTitle:   r.ProductTitle,
		Vendor:         r.Vendor,
		Tags:           r.Tags,
		ProductType:    r.ProductType,
		Category:       r.Category,
		CategoryName:   r.CategoryName,
		Collections:    r.Collections,
		VariantID:      r.VariantID,
		VariantTitle:   r.VariantTitle,
		VariantSKU:     r.VariantSKU,
		LocationID:     r.LocationID,
		LocationName:   r.LocationName,
		Available:      r.Quantities.Available,
		Reserved:       r.Quantities.Reserved,
		Incoming:       r.Quantities.Incoming,
		Committed:      r.Quantities.Committed,
		Damaged:        r.Quantities.Damaged,
		OnHand:         r.Quantities.OnHand,
		QualityControl: r.Quantities.QualityControl,
		SafetyCheck:    r.Quantities.SafetyCheck,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

// ConnectorModel is the persistence model for the Connector domain entity.
type ConnectorModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	StoreName  string    `gorm:"type:varchar(100)"`
	StoreURL   string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_connectors_store_url"`
	APIKey     string    `gorm:"type:varchar(255);not null;column:api_key"`
	Password   string    `gorm:"type:varchar(255);not null"`
	APIVersion string    `gorm:"type:varchar(20);not null;column:api_version"`
	MinDate    *time.Time
	MaxDate    *time.Time
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ConnectorModel) TableName() string {
	return "connectors"
}

// ToDomain converts the persistence model to a domain Connector entity.
func (m *ConnectorModel) ToDomain() *sync.Connector {
	return &sync.Connector{
		ID:         m.ID,
		StoreName:  m.StoreName,
		StoreURL:   m.StoreURL,
		APIKey:     m.APIKey,
		Password:   m.Password,
		APIVersion: m.APIVersion,
		MinDate:    m.MinDate,
		MaxDate:    m.MaxDate,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// ConnectorModelFromDomain creates a new persistence model from a domain Connector entity.
func ConnectorModelFromDomain(c *sync.Connector) *ConnectorModel {
	return &ConnectorModel{
		ID:         c.ID,
		StoreName:  c.StoreName,
		StoreURL:   c.StoreURL,
		APIKey:     c.APIKey,
		Password:   c.Password,
		APIVersion: c.APIVersion,
		MinDate:    c.MinDate,
		MaxDate:    c.MaxDate,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}
