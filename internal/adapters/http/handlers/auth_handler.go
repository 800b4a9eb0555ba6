package handlers

import (
	"errors"
	"strings"

	"github.com/CryptoLab-service/nysc-smart-bot/internal/core/domain"
	"github.com/CryptoLab-service/nysc-smart-bot/internal/core/services"
	"github.com/CryptoLab-service/nysc-smart-bot/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest represents login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup handles account creation
// @Summary Register a new account
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req services.SignupInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		return response.BadRequest(c, "Email is required")
	}
	if req.Password == "" {
		return response.BadRequest(c, "Password is required")
	}
	if req.Name == "" {
		return response.BadRequest(c, "Name is required")
	}

	result, err := h.authService.Signup(c.Context(), &req)
	if err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return response.BadRequest(c, "Email already registered")
		}
		return response.InternalServerError(c, err.Error())
	}

	return response.Created(c, "Signup successful", result)
}

// Login handles credential login
// @Summary Authenticate and issue a token
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result, err := h.authService.Login(c.Context(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return response.BadRequest(c, "Invalid credentials")
		}
		return response.InternalServerError(c, err.Error())
	}

	return response.Success(c, "Login successful", result)
}

// SocialLogin handles social provider login, provisioning on first sight
// @Summary Login via social provider
// @Router /auth/social-login [post]
func (h *AuthHandler) SocialLogin(c *fiber.Ctx) error {
	var req services.SocialLoginInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		return response.BadRequest(c, "Email is required")
	}

	result, err := h.authService.SocialLogin(c.Context(), &req)
	if err != nil {
		return response.InternalServerError(c, err.Error())
	}

	return response.Success(c, "Login successful", result)
}

// Me returns the authenticated account
// @Summary Current account
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	user, err := h.authService.GetUserByID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, err.Error())
	}

	return response.Success(c, "", user)
}

// UpdateProfile applies a partial profile update
// @Summary Update profile fields
// @Router /auth/profile [put]
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req services.UpdateProfileInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	user, err := h.authService.UpdateProfile(c.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, err.Error())
	}

	return response.Success(c, "Profile updated", user)
}
