package handlers

import (
	"errors"

	"salarysync/internal/services/employee"
	"salarysync/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type EmployeeHandler struct {
	employeeService employee.Service
}

func NewEmployeeHandler(employeeService employee.Service) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

// GetDashboard returns the employee home screen payload.
func (h *EmployeeHandler) GetDashboard(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "Invalid claims")
	}

	dashboard, err := h.employeeService.GetDashboard(claims.UserID)
	if err != nil {
		return utils.InternalError(c, "Failed to load dashboard")
	}

	return utils.Success(c, dashboard)
}

// Onboard links the employee to an employer via invite code and
// submits the verification document metadata.
func (h *EmployeeHandler) Onboard(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "Invalid claims")
	}

	var input employee.OnboardingRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	user, err := h.employeeService.Onboard(claims.UserID, input)
	if err != nil {
		switch {
		case errors.Is(err, employee.ErrInvalidInviteCode),
			errors.Is(err, employee.ErrInvalidDocument):
			return utils.BadRequest(c, err.Error())
		case errors.Is(err, employee.ErrAlreadyOnboarded):
			return utils.Conflict(c, err.Error())
		default:
			return utils.InternalError(c, "Failed to submit onboarding")
		}
	}

	return utils.Success(c, fiber.Map{
		"verification_status": user.VerificationStatus,
		"monthly_salary":      user.MonthlySalary,
		"message":             "Onboarding submitted, awaiting employer verification",
	})
}
