package repositories

import (
	"context"

	"github.com/CryptoLab-service/nysc-smart-bot/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// clearanceRepository implements ClearanceRepository interface
type clearanceRepository struct {
	db *gorm.DB
}

// NewClearanceRepository creates a new clearance repository
func NewClearanceRepository(db *gorm.DB) ClearanceRepository {
	return &clearanceRepository{db: db}
}

// Create creates a clearance request. A duplicate (user, month) pair
// surfaces as gorm.ErrDuplicatedKey via the translated driver error.
func (r *clearanceRepository) Create(ctx context.Context, req *models.Clearance) error {
	return r.db.WithContext(ctx).Create(req).Error
}

// GetByID gets a clearance request by ID
func (r *clearanceRepository) GetByID(ctx context.Context, id uint) (*models.Clearance, error) {
	var req models.Clearance
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// ListByUser lists clearance requests owned by a user
func (r *clearanceRepository) ListByUser(ctx context.Context, userID uint) ([]*models.Clearance, error) {
	var reqs []*models.Clearance
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id DESC").Find(&reqs).Error
	return reqs, err
}

// ListByStatus lists clearance requests with the given status
func (r *clearanceRepository) ListByStatus(ctx context.Context, status string) ([]*models.Clearance, error) {
	var reqs []*models.Clearance
	err := r.db.WithContext(ctx).Where("status = ?", status).Order("id").Find(&reqs).Error
	return reqs, err
}

// CountByStatus counts clearance requests with the given status
func (r *clearanceRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Clearance{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

// ApplyReview records a decision with the Pending check inside the
// UPDATE itself, so two concurrent reviews cannot both win: the second
// one matches zero rows.
func (r *clearanceRepository) ApplyReview(ctx context.Context, id uint, status string, comment *string) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.Clearance{}).
		Where("id = ? AND status = ?", id, models.ClearancePending).
		Updates(map[string]interface{}{
			"status":           status,
			"official_comment": comment,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
