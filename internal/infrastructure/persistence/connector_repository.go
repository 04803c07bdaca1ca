package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/shopsync/backend/internal/domain/sync"
	"github.com/shopsync/backend/internal/infrastructure/persistence/models"
)

// GormConnectorRepository implements sync.ConnectorRepository using GORM
type GormConnectorRepository struct {
	db *gorm.DB
}

// NewGormConnectorRepository creates a new GormConnectorRepository
func NewGormConnectorRepository(db *gorm.DB) *GormConnectorRepository {
	return &GormConnectorRepository{db: db}
}

// FindAll returns every stored connector, oldest first.
func (r *GormConnectorRepository) FindAll(ctx context.Context) ([]sync.Connector, error) {
	var rows []models.ConnectorModel
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	connectors := make([]sync.Connector, len(rows))
	for i := range rows {
		connectors[i] = *rows[i].ToDomain()
	}
	return connectors, nil
}

// FindByStoreURL loads the connector for one store.
func (r *GormConnectorRepository) FindByStoreURL(ctx context.Context, storeURL string) (*sync.Connector, error) {
	var row models.ConnectorModel
	if err := r.db.WithContext(ctx).
		Where("store_url = ?", storeURL).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, sync.ErrConnectorNotFound
		}
		return nil, err
	}
	return row.ToDomain(), nil
}

// Save creates or updates a connector
func (r *GormConnectorRepository) Save(ctx context.Context, connector *sync.Connector) error {
	return r.db.WithContext(ctx).Save(models.ConnectorModelFromDomain(connector)).Error
}

// Ensure GormConnectorRepository implements sync.ConnectorRepository
var _ sync.ConnectorRepository = (*GormConnectorRepository)(nil)
