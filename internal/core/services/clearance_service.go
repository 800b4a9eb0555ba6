package services

import (
	"context"
	"errors"
	"time"

	"github.com/CryptoLab-service/nysc-smart-bot/internal/adapters/persistence/models"
	"github.com/CryptoLab-service/nysc-smart-bot/internal/adapters/persistence/repositories"
	"github.com/CryptoLab-service/nysc-smart-bot/internal/core/domain"
	"github.com/CryptoLab-service/nysc-smart-bot/internal/pkg/logging"

	"gorm.io/gorm"
)

// ClearanceService handles the monthly clearance workflow:
// Pending -> Approved | Rejected, exactly once.
type ClearanceService struct {
	clearanceRepo repositories.ClearanceRepository
}

// NewClearanceService creates a new clearance service
func NewClearanceService(clearanceRepo repositories.ClearanceRepository) *ClearanceService {
	return &ClearanceService{clearanceRepo: clearanceRepo}
}

// Submit creates a Pending request for the given month. The store's
// (user, month) unique index rejects a second submission for the same
// month, including under concurrent submits.
func (s *ClearanceService) Submit(ctx context.Context, user *models.User, month string, fileURL *string) (*models.Clearance, error) {
	req := &models.Clearance{
		UserID:        user.ID,
		UserName:      user.Name,
		StateCode:     user.StateCode,
		Month:         month,
		DateSubmitted: time.Now().Format("2006-01-02 15:04"),
		Status:        models.ClearancePending,
		FileURL:       fileURL,
	}

	if err := s.clearanceRepo.Create(ctx, req); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrDuplicateClearance
		}
		return nil, err
	}

	logging.L().Infow("clearance submitted", "user_id", user.ID, "month", month)
	return req, nil
}

// History lists the caller's own requests
func (s *ClearanceService) History(ctx context.Context, userID uint) ([]*models.Clearance, error) {
	return s.clearanceRepo.ListByUser(ctx, userID)
}

// Pending lists all requests awaiting review
func (s *ClearanceService) Pending(ctx context.Context) ([]*models.Clearance, error) {
	return s.clearanceRepo.ListByStatus(ctx, models.ClearancePending)
}

// Review transitions a Pending request to Approved or Rejected with an
// optional comment. Terminal records cannot be re-reviewed: the lifecycle
// is one transition per request, enforced by the store's conditional
// update rather than a read-then-write.
func (s *ClearanceService) Review(ctx context.Context, id uint, status string, comment *string) (*models.Clearance, error) {
	if status != models.ClearanceApproved && status != models.ClearanceRejected {
		return nil, domain.ErrInvalidStatus
	}

	changed, err := s.clearanceRepo.ApplyReview(ctx, id, status, comment)
	if err != nil {
		return nil, err
	}

	if !changed {
		// Either the request does not exist or a decision already landed
		if _, err := s.clearanceRepo.GetByID(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrClearanceNotFound
			}
			return nil, err
		}
		return nil, domain.ErrClearanceReviewed
	}

	req, err := s.clearanceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	logging.L().Infow("clearance reviewed", "id", id, "status", status)
	return req, nil
}
