package services

import (
	"context"
	"errors"

	"github.com/CryptoLab-service/nysc-smart-bot/internal/adapters/persistence/models"
	"github.com/CryptoLab-service/nysc-smart-bot/internal/adapters/persistence/repositories"
	"github.com/CryptoLab-service/nysc-smart-bot/internal/config"
	"github.com/CryptoLab-service/nysc-smart-bot/internal/core/domain"
	"github.com/CryptoLab-service/nysc-smart-bot/internal/pkg/jwt"
	"github.com/CryptoLab-service/nysc-smart-bot/internal/pkg/logging"
	"github.com/CryptoLab-service/nysc-smart-bot/internal/pkg/password"

	"gorm.io/gorm"
)

// AuthService handles authentication business logic
type AuthService struct {
	userRepo repositories.UserRepository
	cfg      *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repositories.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

// SignupInput represents signup input
type SignupInput struct {
	Email            string `json:"email"`
	Password         string `json:"password"`
	Name             string `json:"name"`
	Role             string `json:"role"`
	State            string `json:"state"`
	Gender           string `json:"gender"`
	Phone            string `json:"phone"`
	StateCode        string `json:"state_code"`
	MobilizationDate string `json:"mobilization_date"`
	PopDate          string `json:"pop_date"`
}

// SocialLoginInput represents social login input
type SocialLoginInput struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Provider string `json:"provider"`
	PhotoURL string `json:"photo_url"`
}

// UpdateProfileInput represents profile update input. Only present,
// non-empty fields overwrite stored values (partial-update semantics).
type UpdateProfileInput struct {
	Name             string `json:"name"`
	State            string `json:"state"`
	Gender           string `json:"gender"`
	Phone            string `json:"phone"`
	StateCode        string `json:"state_code"`
	MobilizationDate string `json:"mobilization_date"`
	PopDate          string `json:"pop_date"`
	CDSGroup         string `json:"cds_group"`
	LGA              string `json:"lga"`
	Address          string `json:"address"`
	ResidenceState   string `json:"residence_state"`
	ResidenceLGA     string `json:"residence_lga"`
}

// Signup registers a new account and issues a token
func (s *AuthService) Signup(ctx context.Context, input *SignupInput) (*models.UserResponse, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrEmailAlreadyExists
	}

	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = models.RoleCorpsMember
	}

	user := &models.User{
		Email:            input.Email,
		Password:         hashed,
		Name:             input.Name,
		Role:             role,
		State:            input.State,
		Gender:           input.Gender,
		Phone:            input.Phone,
		StateCode:        input.StateCode,
		MobilizationDate: input.MobilizationDate,
		PopDate:          input.PopDate,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Concurrent signup for the same email loses to the unique index
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrEmailAlreadyExists
		}
		return nil, err
	}

	logging.L().Infow("user registered", "email", user.Email, "role", user.Role)

	return s.respondWithToken(user)
}

// Login verifies credentials and issues a token. A missing account and a
// wrong password produce the same error so callers cannot enumerate emails.
func (s *AuthService) Login(ctx context.Context, email, plain string) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Verify(plain, user.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	logging.L().Infow("user logged in", "email", user.Email)

	return s.respondWithToken(user)
}

// SocialLogin looks up the account by email, provisioning one when absent.
// The endpoint never rejects: any caller asserting an email gets a token.
// There is no provider-side proof of ownership here, which is why every
// provisioning is logged loudly.
func (s *AuthService) SocialLogin(ctx context.Context, input *SocialLoginInput) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		hashed, hashErr := password.Hash(password.Random())
		if hashErr != nil {
			return nil, hashErr
		}

		name := input.Name
		if name == "" {
			name = "Social User"
		}

		user = &models.User{
			Email:    input.Email,
			Password: hashed,
			Name:     name,
			Role:     models.RoleCorpsMember,
			State:    "Pending",
		}

		if createErr := s.userRepo.Create(ctx, user); createErr != nil {
			if errors.Is(createErr, gorm.ErrDuplicatedKey) {
				// Lost a provisioning race; the account now exists
				user, err = s.userRepo.GetByEmail(ctx, input.Email)
				if err != nil {
					return nil, err
				}
			} else {
				return nil, createErr
			}
		}

		logging.L().Warnw("provisioned account via social login without ownership proof",
			"email", input.Email, "provider", input.Provider)
	}

	return s.respondWithToken(user)
}

// GetUserByID gets a user by ID
func (s *AuthService) GetUserByID(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies partial-update semantics: absent or empty fields
// leave the stored value untouched.
func (s *AuthService) UpdateProfile(ctx context.Context, userID uint, input *UpdateProfileInput) (*models.User, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	setIfPresent(&user.Name, input.Name)
	setIfPresent(&user.State, input.State)
	setIfPresent(&user.Gender, input.Gender)
	setIfPresent(&user.Phone, input.Phone)
	setIfPresent(&user.StateCode, input.StateCode)
	setIfPresent(&user.MobilizationDate, input.MobilizationDate)
	setIfPresent(&user.PopDate, input.PopDate)
	setIfPresent(&user.CDSGroup, input.CDSGroup)
	setIfPresent(&user.LGA, input.LGA)
	setIfPresent(&user.Address, input.Address)
	setIfPresent(&user.ResidenceState, input.ResidenceState)
	setIfPresent(&user.ResidenceLGA, input.ResidenceLGA)

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func setIfPresent(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

func (s *AuthService) respondWithToken(user *models.User) (*models.UserResponse, error) {
	token, err := jwt.GenerateToken(user.ID, user.Email, user.Role, s.cfg.JWT.Secret, s.cfg.JWT.ExpiryMinutes)
	if err != nil {
		return nil, err
	}

	resp := user.ToResponse()
	resp.Token = token
	return resp, nil
}
