package shopify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr error
	}{
		{
			name: "valid config",
			config: &Config{
				StoreURL:   "test-store.myshopify.com",
				APIKey:     "key",
				Password:   "secret",
				APIVersion: "2024-01",
			},
			wantErr: nil,
		},
		{
			name: "missing store URL",
			config: &Config{
				APIKey:     "key",
				Password:   "secret",
				APIVersion: "2024-01",
			},
			wantErr: ErrConfigMissingStoreURL,
		},
		{
			name: "missing api key",
			config: &Config{
				StoreURL:   "test-store.myshopify.com",
				Password:   "secret",
				APIVersion: "2024-01",
			},
			wantErr: ErrConfigMissingAPIKey,
		},
		{
			name: "missing password",
			config: &Config{
				StoreURL:   "test-store.myshopify.com",
				APIKey:     "key",
				APIVersion: "2024-01",
			},
			wantErr: ErrConfigMissingPassword,
		},
		{
			name: "missing api version",
			config: &Config{
				StoreURL: "test-store.myshopify.com",
				APIKey:   "key",
				Password: "secret",
			},
			wantErr: ErrConfigMissingAPIVersion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.True(t, tt.config.TimeoutSeconds > 0)
			}
		})
	}
}

func TestConfig_Validate_StripsScheme(t *testing.T) {
	config := NewConfig("https://test-store.myshopify.com/", "key", "secret", "2024-01")
	assert.NoError(t, config.Validate())
	assert.Equal(t, "test-store.myshopify.com", config.StoreURL)
}

func TestConfig_URLs(t *testing.T) {
	config := NewConfig("test-store.myshopify.com", "key", "secret", "2024-01")
	assert.Equal(t, "https://test-store.myshopify.com/admin/api/2024-01/orders.json", config.OrdersURL())
	assert.Equal(t, "https://test-store.myshopify.com/admin/api/2024-01/graphql.json", config.GraphQLURL())

	config.BaseURL = "http://127.0.0.1:9999/"
	assert.Equal(t, "http://127.0.0.1:9999/admin/api/2024-01/orders.json", config.OrdersURL())
}

func TestNewConfig(t *testing.T) {
	config := NewConfig("store", "key", "secret", "2024-01")
	assert.Equal(t, "store", config.StoreURL)
	assert.Equal(t, "key", config.APIKey)
	assert.Equal(t, "secret", config.Password)
	assert.Equal(t, "2024-01", config.APIVersion)
	assert.Equal(t, 30, config.TimeoutSeconds)
}
