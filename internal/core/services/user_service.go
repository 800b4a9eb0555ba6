package services

import (
	"context"
	"time"

	"github.com/CryptoLab-service/nysc-smart-bot/internal/adapters/persistence/models"
	"github.com/CryptoLab-service/nysc-smart-bot/internal/adapters/persistence/repositories"

	gocache "github.com/patrickmn/go-cache"
)

const (
	statsCacheKey = "admin:stats"
	statsCacheTTL = 30 * time.Second
)

// UserService handles admin-facing account queries
type UserService struct {
	userRepo      repositories.UserRepository
	clearanceRepo repositories.ClearanceRepository
	cache         *gocache.Cache
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository, clearanceRepo repositories.ClearanceRepository) *UserService {
	return &UserService{
		userRepo:      userRepo,
		clearanceRepo: clearanceRepo,
		cache:         gocache.New(statsCacheTTL, time.Minute),
	}
}

// ListUsers lists all accounts
func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.userRepo.List(ctx)
}

// Stats summarizes the user base and the review backlog
type Stats struct {
	TotalUsers        int64 `json:"total_users"`
	CorpsMembers      int64 `json:"corps_members"`
	PCMs              int64 `json:"pcms"`
	PendingClearances int64 `json:"pending_clearances"`
}

// GetStats returns aggregate counts, cached briefly
func (s *UserService) GetStats(ctx context.Context) (*Stats, error) {
	if cached, found := s.cache.Get(statsCacheKey); found {
		return cached.(*Stats), nil
	}

	total, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	cms, err := s.userRepo.CountByRole(ctx, models.RoleCorpsMember)
	if err != nil {
		return nil, err
	}
	pcms, err := s.userRepo.CountByRole(ctx, models.RolePCM)
	if err != nil {
		return nil, err
	}
	pending, err := s.clearanceRepo.CountByStatus(ctx, models.ClearancePending)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		TotalUsers:        total,
		CorpsMembers:      cms,
		PCMs:              pcms,
		PendingClearances: pending,
	}

	s.cache.Set(statsCacheKey, stats, statsCacheTTL)
	return stats, nil
}
