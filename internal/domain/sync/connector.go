package sync

import (
	"time"

	"github.com/google/uuid"
)

// Connector holds the stored credentials and sync bounds for one store.
// The fetch components read it; the dates are advanced after each sync.
type Connector struct {
	ID         uuid.UUID
	StoreName  string
	StoreURL   string
	APIKey     string
	Password   string
	APIVersion string
	MinDate    *time.Time
	MaxDate    *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// storeRegions maps known store hostnames to their region label.
var storeRegions = map[string]string{
	"rdx-sports-store.myshopify.com":        "UK",
	"rdx-sports-store-usa.myshopify.com":    "USA",
	"rdx-sports-store-canada.myshopify.com": "CA",
	"rdx-sports-store-europe.myshopify.com": "EU",
	"rdx-sports-middle-east.myshopify.com":  "Middle East",
	"rdx-sports-store-global.myshopify.com": "Global",
}

// StoreName resolves the region label for a store URL. Unknown stores
// return an empty string.
func StoreName(storeURL string) string {
	return storeRegions[storeURL]
}
