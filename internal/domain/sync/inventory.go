package sync

import (
	"time"

	"github.com/google/uuid"
)

// QuantityNames are the inventory counters requested from the platform.
// Counters absent from a response default to zero.
var QuantityNames = []string{
	"available",
	"reserved",
	"incoming",
	"committed",
	"damaged",
	"on_hand",
	"quality_control",
	"safety_check",
}

// Quantities holds the per-location inventory counters of one variant.
type Quantities struct {
	Available      int
	Reserved       int
	Incoming       int
	Committed      int
	Damaged        int
	OnHand         int
	QualityControl int
	SafetyCheck    int
}

// InventoryRecord is a point-in-time inventory snapshot for one
// (product, variant, location). The (ProductID, VariantID) pair is the
// natural key: every fetch fully replaces the persisted counters, unlike
// the append-mostly order model.
type InventoryRecord struct {
	ID           uuid.UUID
	ProductID    string
	ProductTitle string
	Vendor       string
	Tags         string
	ProductType  string
	Category     string
	CategoryName string
	Collections  string
	VariantID    string
	VariantTitle string
	VariantSKU   string
	LocationID   string
	LocationName string
	Quantities   Quantities
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
