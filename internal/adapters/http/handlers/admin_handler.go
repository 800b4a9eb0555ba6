package handlers

import (
	"errors"
	"time"

	"github.com/CryptoLab-service/nysc-smart-bot/internal/adapters/persistence/models"
	"github.com/CryptoLab-service/nysc-smart-bot/internal/adapters/persistence/repositories"
	"github.com/CryptoLab-service/nysc-smart-bot/internal/core/domain"
	"github.com/CryptoLab-service/nysc-smart-bot/internal/core/services"
	"github.com/CryptoLab-service/nysc-smart-bot/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AdminHandler handles Official/Admin endpoints
type AdminHandler struct {
	userService  *services.UserService
	newsService  *services.NewsService
	resourceRepo repositories.ResourceRepository
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(userService *services.UserService, newsService *services.NewsService, resourceRepo repositories.ResourceRepository) *AdminHandler {
	return &AdminHandler{
		userService:  userService,
		newsService:  newsService,
		resourceRepo: resourceRepo,
	}
}

// NewsRequest represents an admin-authored news item
type NewsRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Date    string `json:"date"`
	Type    string `json:"type"`
	URL     string `json:"url"`
}

// ResourceRequest represents a new reference resource
type ResourceRequest struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	URL      string `json:"url"`
}

// ListUsers returns all accounts
// @Summary List all accounts
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.userService.ListUsers(c.Context())
	if err != nil {
		return response.InternalServerError(c, err.Error())
	}
	return c.JSON(users)
}

// GetStats returns aggregate counts
// @Summary User-base statistics
// @Router /admin/stats [get]
func (h *AdminHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.userService.GetStats(c.Context())
	if err != nil {
		return response.InternalServerError(c, err.Error())
	}
	return c.JSON(stats)
}

// CreateNews publishes an admin-authored news item
// @Summary Publish a news item
// @Router /admin/news [post]
func (h *AdminHandler) CreateNews(c *fiber.Ctx) error {
	var req NewsRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Title == "" {
		return response.BadRequest(c, "Title is required")
	}

	item := &models.News{
		Title:   req.Title,
		Content: req.Content,
		Date:    req.Date,
		Type:    req.Type,
		URL:     req.URL,
	}

	if err := h.newsService.Publish(c.Context(), item); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return response.BadRequest(c, "A news item with this title already exists")
		}
		return response.InternalServerError(c, err.Error())
	}

	return response.Created(c, "News published", item)
}

// RefreshNews triggers the ingestion job manually
// @Summary Fetch and store the latest news
// @Router /admin/news/refresh [post]
func (h *AdminHandler) RefreshNews(c *fiber.Ctx) error {
	added, err := h.newsService.FetchAndStore(c.Context())
	if err != nil {
		if errors.Is(err, domain.ErrSearchDisabled) {
			return response.BadRequest(c, "Web search is not configured")
		}
		return response.InternalServerError(c, err.Error())
	}

	return response.Success(c, "News refreshed", fiber.Map{"added": added})
}

// CreateResource adds a reference resource
// @Summary Add a resource
// @Router /admin/resources [post]
func (h *AdminHandler) CreateResource(c *fiber.Ctx) error {
	var req ResourceRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Title == "" || req.URL == "" {
		return response.BadRequest(c, "Title and URL are required")
	}

	res := &models.Resource{
		Title:     req.Title,
		Category:  req.Category,
		URL:       req.URL,
		DateAdded: time.Now().Format("2006-01-02"),
	}

	if err := h.resourceRepo.Create(c.Context(), res); err != nil {
		return response.InternalServerError(c, err.Error())
	}

	return response.Created(c, "Resource added", res)
}
