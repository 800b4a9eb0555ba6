package handlers

import (
	"github.com/CryptoLab-service/nysc-smart-bot/internal/adapters/persistence/repositories"
	"github.com/CryptoLab-service/nysc-smart-bot/internal/core/services"
	"github.com/CryptoLab-service/nysc-smart-bot/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DataHandler serves the public news/resources feeds and the
// authenticated timeline.
type DataHandler struct {
	newsService  *services.NewsService
	resourceRepo repositories.ResourceRepository
	authService  *services.AuthService
}

// NewDataHandler creates a new data handler
func NewDataHandler(newsService *services.NewsService, resourceRepo repositories.ResourceRepository, authService *services.AuthService) *DataHandler {
	return &DataHandler{
		newsService:  newsService,
		resourceRepo: resourceRepo,
		authService:  authService,
	}
}

// GetNews returns the public news feed
// @Summary List news
// @Router /api/news [get]
func (h *DataHandler) GetNews(c *fiber.Ctx) error {
	items, err := h.newsService.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, err.Error())
	}
	return c.JSON(items)
}

// GetResources returns the public resource list
// @Summary List resources
// @Router /api/resources [get]
func (h *DataHandler) GetResources(c *fiber.Ctx) error {
	resources, err := h.resourceRepo.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, err.Error())
	}
	return c.JSON(resources)
}

// GetTimeline returns the caller's service timeline
// @Summary Service timeline for the authenticated account
// @Router /api/timeline [get]
func (h *DataHandler) GetTimeline(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	user, err := h.authService.GetUserByID(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, err.Error())
	}

	state := user.State
	if state == "" {
		state = "Pending"
	}

	return c.JSON(fiber.Map{
		"days_to_camp":        5,
		"registration_status": "Open",
		"deployment_state":    state,
	})
}
