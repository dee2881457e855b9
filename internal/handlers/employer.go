package handlers

import (
	"errors"

	"salarysync/internal/services/employer"
	"salarysync/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type EmployerHandler struct {
	employerService employer.Service
}

func NewEmployerHandler(employerService employer.Service) *EmployerHandler {
	return &EmployerHandler{employerService: employerService}
}

// GetDashboard returns the employer console summary.
func (h *EmployerHandler) GetDashboard(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "Invalid claims")
	}

	dashboard, err := h.employerService.GetDashboard(claims.UserID)
	if err != nil {
		if errors.Is(err, employer.ErrNotAnEmployer) {
			return utils.Forbidden(c, err.Error())
		}
		return utils.InternalError(c, "Failed to load dashboard")
	}

	return utils.Success(c, dashboard)
}

// ListEmployees returns every employee linked to the employer.
func (h *EmployerHandler) ListEmployees(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "Invalid claims")
	}

	employees, err := h.employerService.ListEmployees(claims.UserID)
	if err != nil {
		if errors.Is(err, employer.ErrNotAnEmployer) {
			return utils.Forbidden(c, err.Error())
		}
		return utils.InternalError(c, "Failed to load employees")
	}

	return utils.Success(c, fiber.Map{"employees": employees})
}

// MarkAttendance records a present or absent day for one employee.
func (h *EmployerHandler) MarkAttendance(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "Invalid claims")
	}

	var input struct {
		EmployeeID uint `json:"employee_id"`
		Present    bool `json:"present"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	updated, err := h.employerService.MarkAttendance(claims.UserID, input.EmployeeID, input.Present)
	if err != nil {
		switch {
		case errors.Is(err, employer.ErrNotAnEmployer):
			return utils.Forbidden(c, err.Error())
		case errors.Is(err, employer.ErrEmployeeNotFound):
			return utils.NotFound(c, err.Error())
		case errors.Is(err, employer.ErrAttendanceCapped):
			return utils.Conflict(c, err.Error())
		default:
			return utils.InternalError(c, "Failed to mark attendance")
		}
	}

	return utils.Success(c, fiber.Map{
		"employee_id": updated.ID,
		"days_worked": updated.DaysWorked,
	})
}

// ListVerifications returns employees awaiting document review.
func (h *EmployerHandler) ListVerifications(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "Invalid claims")
	}

	pending, err := h.employerService.ListPendingVerifications(claims.UserID)
	if err != nil {
		if errors.Is(err, employer.ErrNotAnEmployer) {
			return utils.Forbidden(c, err.Error())
		}
		return utils.InternalError(c, "Failed to load verifications")
	}

	return utils.Success(c, fiber.Map{"pending": pending})
}

// ReviewVerification approves or rejects a pending employee.
func (h *EmployerHandler) ReviewVerification(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "Invalid claims")
	}

	employeeID, err := c.ParamsInt("id")
	if err != nil || employeeID <= 0 {
		return utils.BadRequest(c, "Invalid employee id")
	}

	var input struct {
		Action string `json:"action"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	updated, err := h.employerService.ReviewVerification(claims.UserID, uint(employeeID), input.Action)
	if err != nil {
		switch {
		case errors.Is(err, employer.ErrNotAnEmployer):
			return utils.Forbidden(c, err.Error())
		case errors.Is(err, employer.ErrEmployeeNotFound):
			return utils.NotFound(c, err.Error())
		case errors.Is(err, employer.ErrNotPending), errors.Is(err, employer.ErrInvalidAction):
			return utils.BadRequest(c, err.Error())
		default:
			return utils.InternalError(c, "Failed to review verification")
		}
	}

	return utils.Success(c, fiber.Map{
		"employee_id":         updated.ID,
		"verification_status": updated.VerificationStatus,
		"document_verified":   updated.DocumentVerified,
	})
}
