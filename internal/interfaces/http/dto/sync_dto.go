package dto

import "time"

// SyncOrdersRequest triggers an order import for one store. The dates accept
// an ISO-8601 subset, including a trailing Z; both omitted means the whole
// order history is derived from the store itself.
type SyncOrdersRequest struct {
	StoreURL   string `json:"store_url" binding:"required"`
	APIKey     string `json:"api_key" binding:"required"`
	Password   string `json:"password" binding:"required"`
	APIVersion string `json:"api_version"`
	DateMin    string `json:"date_min"`
	DateMax    string `json:"date_max"`
}

// SyncCredentialsRequest triggers a credentials-only sync path: the status
// refresh derives its own window, the inventory snapshot has none.
type SyncCredentialsRequest struct {
	StoreURL   string `json:"store_url" binding:"required"`
	APIKey     string `json:"api_key" binding:"required"`
	Password   string `json:"password" binding:"required"`
	APIVersion string `json:"api_version"`
}

// CreateConnectorRequest registers stored credentials for a store.
type CreateConnectorRequest struct {
	StoreURL   string `json:"store_url" binding:"required"`
	APIKey     string `json:"api_key" binding:"required"`
	Password   string `json:"password" binding:"required"`
	APIVersion string `json:"api_version" binding:"required"`
}

// UpdateConnectorRequest replaces the credentials of a stored connector.
type UpdateConnectorRequest struct {
	APIKey     string `json:"api_key"`
	Password   string `json:"password"`
	APIVersion string `json:"api_version"`
}

// ConnectorResponse is a stored connector with the credentials redacted.
type ConnectorResponse struct {
	ID         string     `json:"id"`
	StoreName  string     `json:"store_name"`
	StoreURL   string     `json:"store_url"`
	APIVersion string     `json:"api_version"`
	MinDate    *time.Time `json:"min_date"`
	MaxDate    *time.Time `json:"max_date"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
