package handlers

import (
	"errors"

	"salarysync/internal/services/dashboard"
	"salarysync/internal/services/demorequest"
	"salarysync/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	dashboardService dashboard.Service
	demoService      demorequest.Service
}

func NewAdminHandler(dashboardService dashboard.Service, demoService demorequest.Service) *AdminHandler {
	return &AdminHandler{
		dashboardService: dashboardService,
		demoService:      demoService,
	}
}

// GetOverview returns the platform KPIs.
func (h *AdminHandler) GetOverview(c *fiber.Ctx) error {
	overview, err := h.dashboardService.GetOverview()
	if err != nil {
		return utils.InternalError(c, "Failed to load overview")
	}
	return utils.Success(c, overview)
}

// ListDemoRequests returns every demo request, newest first.
func (h *AdminHandler) ListDemoRequests(c *fiber.Ctx) error {
	requests, err := h.demoService.List()
	if err != nil {
		return utils.InternalError(c, "Failed to load demo requests")
	}
	return utils.Success(c, fiber.Map{"demo_requests": requests})
}

// ReviewDemoRequest accepts or rejects a pending demo request.
// Accepting provisions the employer and returns one-time credentials.
func (h *AdminHandler) ReviewDemoRequest(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "Invalid demo request id")
	}

	var input struct {
		Action string `json:"action"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	switch input.Action {
	case "accept":
		result, err := h.demoService.Accept(uint(id))
		if err != nil {
			return demoReviewError(c, err)
		}
		return utils.Success(c, fiber.Map{
			"employer":      result.Employer,
			"login_email":   result.LoginEmail,
			"temp_password": result.TempPassword,
		})
	case "reject":
		dr, err := h.demoService.Reject(uint(id))
		if err != nil {
			return demoReviewError(c, err)
		}
		return utils.Success(c, fiber.Map{"demo_request": dr})
	default:
		return utils.BadRequest(c, "Action must be accept or reject")
	}
}

// ListEmployers returns employers with pagination.
func (h *AdminHandler) ListEmployers(c *fiber.Ctx) error {
	p := utils.GetPagination(c, 1, 20)

	employers, total, err := h.dashboardService.ListEmployers(p.Offset, p.Limit)
	if err != nil {
		return utils.InternalError(c, "Failed to load employers")
	}
	p.SetTotal(total)

	return utils.Success(c, utils.NewPaginatedResponse(employers, p))
}

func demoReviewError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, demorequest.ErrNotFound):
		return utils.NotFound(c, err.Error())
	case errors.Is(err, demorequest.ErrAlreadyReviewed):
		return utils.Conflict(c, err.Error())
	default:
		return utils.InternalError(c, "Failed to review demo request")
	}
}
