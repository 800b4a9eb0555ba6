package repositories

import (
	"context"

	"github.com/CryptoLab-service/nysc-smart-bot/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// resourceRepository implements ResourceRepository interface
type resourceRepository struct {
	db *gorm.DB
}

// NewResourceRepository creates a new resource repository
func NewResourceRepository(db *gorm.DB) ResourceRepository {
	return &resourceRepository{db: db}
}

// Create creates a resource
func (r *resourceRepository) Create(ctx context.Context, res *models.Resource) error {
	return r.db.WithContext(ctx).Create(res).Error
}

// List lists all resources
func (r *resourceRepository) List(ctx context.Context) ([]*models.Resource, error) {
	var resources []*models.Resource
	err := r.db.WithContext(ctx).Order("id").Find(&resources).Error
	return resources, err
}
