package repositories

import (
	"context"

	"github.com/CryptoLab-service/nysc-smart-bot/internal/adapters/persistence/models"
)

// UserRepository defines user data access operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *models.User) error
	List(ctx context.Context) ([]*models.User, error)
	CountByRole(ctx context.Context, role string) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// NewsRepository defines news data access operations
type NewsRepository interface {
	Create(ctx context.Context, item *models.News) error
	// CreateIgnoreDuplicate inserts the item and reports whether a row was
	// actually written; an existing title is skipped, not an error.
	CreateIgnoreDuplicate(ctx context.Context, item *models.News) (bool, error)
	List(ctx context.Context, limit int) ([]*models.News, error)
}

// ResourceRepository defines resource data access operations
type ResourceRepository interface {
	Create(ctx context.Context, res *models.Resource) error
	List(ctx context.Context) ([]*models.Resource, error)
}

// ClearanceRepository defines clearance data access operations
type ClearanceRepository interface {
	Create(ctx context.Context, req *models.Clearance) error
	GetByID(ctx context.Context, id uint) (*models.Clearance, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.Clearance, error)
	ListByStatus(ctx context.Context, status string) ([]*models.Clearance, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	// ApplyReview transitions a Pending request to the given terminal
	// status and reports whether a row changed. A request that is no
	// longer Pending is left untouched.
	ApplyReview(ctx context.Context, id uint, status string, comment *string) (bool, error)
}
