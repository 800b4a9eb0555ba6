package handlers

import (
	"errors"
	"strconv"

	"github.com/CryptoLab-service/nysc-smart-bot/internal/adapters/persistence/models"
	"github.com/CryptoLab-service/nysc-smart-bot/internal/core/domain"
	"github.com/CryptoLab-service/nysc-smart-bot/internal/core/services"
	"github.com/CryptoLab-service/nysc-smart-bot/internal/pkg/logging"
	"github.com/CryptoLab-service/nysc-smart-bot/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ClearanceHandler handles the monthly clearance workflow endpoints
type ClearanceHandler struct {
	clearanceService *services.ClearanceService
	authService      *services.AuthService
	uploader         services.Uploader
}

// NewClearanceHandler creates a new clearance handler
func NewClearanceHandler(clearanceService *services.ClearanceService, authService *services.AuthService, uploader services.Uploader) *ClearanceHandler {
	return &ClearanceHandler{
		clearanceService: clearanceService,
		authService:      authService,
		uploader:         uploader,
	}
}

// ActionRequest represents a review decision
type ActionRequest struct {
	Status  string  `json:"status"`
	Comment *string `json:"comment"`
}

// Submit creates a Pending clearance request (multipart: month + optional file)
// @Summary Submit a monthly clearance request
// @Router /clearance/request [post]
func (h *ClearanceHandler) Submit(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)
	role, _ := c.Locals("role").(string)

	if role != models.RoleCorpsMember {
		return response.Forbidden(c, "Only Corps Members can request clearance")
	}

	month := c.FormValue("month")
	if month == "" {
		return response.BadRequest(c, "Month is required")
	}

	user, err := h.authService.GetUserByID(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, err.Error())
	}

	// Optional supporting document. Upload problems downgrade to no file
	// rather than blocking the submission.
	var fileURL *string
	if fileHeader, err := c.FormFile("file"); err == nil && fileHeader != nil {
		file, openErr := fileHeader.Open()
		if openErr != nil {
			return response.BadRequest(c, "Could not read uploaded file")
		}
		defer file.Close()

		url, upErr := h.uploader.Upload(c.Context(), fileHeader.Filename, fileHeader.Header.Get("Content-Type"), file)
		if upErr != nil {
			logging.L().Warnw("clearance document upload failed", "error", upErr)
		} else {
			fileURL = &url
		}
	}

	req, err := h.clearanceService.Submit(c.Context(), user, month, fileURL)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateClearance) {
			return response.BadRequest(c, "Clearance request already submitted for this month")
		}
		return response.InternalServerError(c, err.Error())
	}

	return response.Created(c, "Clearance submitted successfully", fiber.Map{"id": req.ID})
}

// MyHistory lists the caller's clearance requests
// @Summary Own clearance history
// @Router /clearance/my-history [get]
func (h *ClearanceHandler) MyHistory(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)

	reqs, err := h.clearanceService.History(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, err.Error())
	}
	return c.JSON(reqs)
}

// Pending lists requests awaiting review
// @Summary Pending clearance requests
// @Router /clearance/pending [get]
func (h *ClearanceHandler) Pending(c *fiber.Ctx) error {
	reqs, err := h.clearanceService.Pending(c.Context())
	if err != nil {
		return response.InternalServerError(c, err.Error())
	}
	return c.JSON(reqs)
}

// Action approves or rejects a pending request
// @Summary Review a clearance request
// @Router /clearance/{id}/action [put]
func (h *ClearanceHandler) Action(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid request ID")
	}

	var req ActionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result, err := h.clearanceService.Review(c.Context(), uint(id), req.Status, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidStatus):
			return response.BadRequest(c, "Status must be Approved or Rejected")
		case errors.Is(err, domain.ErrClearanceNotFound):
			return response.NotFound(c, "Clearance request not found")
		case errors.Is(err, domain.ErrClearanceReviewed):
			return response.BadRequest(c, "Clearance request already reviewed")
		default:
			return response.InternalServerError(c, err.Error())
		}
	}

	return response.Success(c, "Clearance "+result.Status, result)
}
