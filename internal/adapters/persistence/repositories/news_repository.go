package repositories

import (
	"context"

	"github.com/CryptoLab-service/nysc-smart-bot/internal/adapters/persistence/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// newsRepository implements NewsRepository interface
type newsRepository struct {
	db *gorm.DB
}

// NewNewsRepository creates a new news repository
func NewNewsRepository(db *gorm.DB) NewsRepository {
	return &newsRepository{db: db}
}

// Create creates a news item
func (r *newsRepository) Create(ctx context.Context, item *models.News) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// CreateIgnoreDuplicate inserts the item, skipping titles already present.
// The unique index on title does the duplicate detection, so two ingestion
// runs racing on the same story cannot both insert.
func (r *newsRepository) CreateIgnoreDuplicate(ctx context.Context, item *models.News) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "title"}},
			DoNothing: true,
		}).
		Create(item)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// List lists news items, newest first
func (r *newsRepository) List(ctx context.Context, limit int) ([]*models.News, error) {
	var items []*models.News
	q := r.db.WithContext(ctx).Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&items).Error
	return items, err
}
