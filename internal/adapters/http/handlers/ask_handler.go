package handlers

import (
	"strings"

	"github.com/CryptoLab-service/nysc-smart-bot/internal/core/services"
	"github.com/CryptoLab-service/nysc-smart-bot/internal/pkg/logging"
	"github.com/CryptoLab-service/nysc-smart-bot/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AskHandler exposes the hybrid question-answering endpoint
type AskHandler struct {
	assistant *services.AssistantService
}

// NewAskHandler creates a new ask handler
func NewAskHandler(assistant *services.AssistantService) *AskHandler {
	return &AskHandler{assistant: assistant}
}

// AskRequest represents a question from a client
type AskRequest struct {
	Question string `json:"question"`
}

// Ask answers a free-form question about NYSC
// @Summary Ask the assistant a question
// @Router /ask [post]
func (h *AskHandler) Ask(c *fiber.Ctx) error {
	var req AskRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	question := strings.TrimSpace(req.Question)
	if question == "" {
		return response.BadRequest(c, "Question is required")
	}

	answer, err := h.assistant.Answer(c.Context(), question)
	if err != nil {
		logging.L().Errorw("assistant failed to answer", "error", err)
		answer = services.FallbackMessage(err)
	}

	return c.JSON(fiber.Map{"answer": answer})
}
