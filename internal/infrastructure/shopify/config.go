package shopify

import (
	"errors"
	"fmt"
	"strings"
)

// Config holds the per-store credentials for the Shopify Admin API. A Config
// is built per invocation and passed into every client; there is no shared
// session state between stores or requests.
type Config struct {
	// StoreURL is the myshopify hostname, without scheme.
	StoreURL string
	// APIKey is the Admin API key used for Basic auth on REST calls.
	APIKey string
	// Password is the Admin API password. It doubles as the access token
	// for GraphQL calls.
	Password string
	// APIVersion is the Admin API version segment, e.g. "2024-01".
	APIVersion string
	// TimeoutSeconds is the HTTP request timeout.
	TimeoutSeconds int
	// BaseURL overrides the https://{store} endpoint prefix. Empty in
	// production; tests point it at a local server.
	BaseURL string
}

// Errors for Shopify configuration
var (
	ErrConfigMissingStoreURL   = errors.New("shopify: store URL is required")
	ErrConfigMissingAPIKey     = errors.New("shopify: api key is required")
	ErrConfigMissingPassword   = errors.New("shopify: password is required")
	ErrConfigMissingAPIVersion = errors.New("shopify: api version is required")
)

// NewConfig creates a new Shopify configuration with defaults.
func NewConfig(storeURL, apiKey, password, apiVersion string) *Config {
	return &Config{
		StoreURL:       storeURL,
		APIKey:         apiKey,
		Password:       password,
		APIVersion:     apiVersion,
		TimeoutSeconds: 30,
	}
}

// Validate validates the configuration and fills defaults.
func (c *Config) Validate() error {
	if c.StoreURL == "" {
		return ErrConfigMissingStoreURL
	}
	if c.APIKey == "" {
		return ErrConfigMissingAPIKey
	}
	if c.Password == "" {
		return ErrConfigMissingPassword
	}
	if c.APIVersion == "" {
		return ErrConfigMissingAPIVersion
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	c.StoreURL = strings.TrimSuffix(strings.TrimPrefix(strings.TrimPrefix(c.StoreURL, "https://"), "http://"), "/")
	return nil
}

// OrdersURL returns the REST orders endpoint for this store.
func (c *Config) OrdersURL() string {
	return fmt.Sprintf("%s/admin/api/%s/orders.json", c.baseURL(), c.APIVersion)
}

// GraphQLURL returns the GraphQL endpoint for this store.
func (c *Config) GraphQLURL() string {
	return fmt.Sprintf("%s/admin/api/%s/graphql.json", c.baseURL(), c.APIVersion)
}

func (c *Config) baseURL() string {
	if c.BaseURL != "" {
		return strings.TrimSuffix(c.BaseURL, "/")
	}
	return "https://" + c.StoreURL
}
