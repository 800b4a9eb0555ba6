package handlers

import (
	"github.com/CryptoLab-service/nysc-smart-bot/internal/core/services"
	"github.com/CryptoLab-service/nysc-smart-bot/internal/pkg/logging"

	"github.com/gofiber/fiber/v2"
)

// TelegramHandler receives webhook updates from the Telegram Bot API
type TelegramHandler struct {
	telegram  *services.TelegramService
	assistant services.Answerer
}

// NewTelegramHandler creates a new telegram webhook handler
func NewTelegramHandler(telegram *services.TelegramService, assistant services.Answerer) *TelegramHandler {
	return &TelegramHandler{telegram: telegram, assistant: assistant}
}

// Webhook handles an incoming Telegram update.
// Always acknowledges with 200 so Telegram does not retry the update.
// @Summary Telegram webhook
// @Router /telegram [post]
func (h *TelegramHandler) Webhook(c *fiber.Ctx) error {
	var update services.TelegramUpdate
	if err := c.BodyParser(&update); err != nil {
		logging.L().Warnw("unparseable telegram update", "error", err)
		return c.JSON(fiber.Map{"status": "ok"})
	}

	h.telegram.HandleUpdate(c.Context(), &update, h.assistant)

	return c.JSON(fiber.Map{"status": "ok"})
}
