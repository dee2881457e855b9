package handlers

import (
	"errors"

	"salarysync/internal/services/withdrawal"
	"salarysync/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type WithdrawalHandler struct {
	withdrawalService withdrawal.Service
}

func NewWithdrawalHandler(withdrawalService withdrawal.Service) *WithdrawalHandler {
	return &WithdrawalHandler{withdrawalService: withdrawalService}
}

// RequestWithdrawal validates and records a salary advance.
func (h *WithdrawalHandler) RequestWithdrawal(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "Invalid claims")
	}

	var input struct {
		Amount float64 `json:"amount"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	result, err := h.withdrawalService.RequestWithdrawal(c.Context(), claims.UserID, input.Amount)
	if err != nil {
		switch {
		case errors.Is(err, withdrawal.ErrInvalidAmount),
			errors.Is(err, withdrawal.ErrExceedsLimit):
			return utils.BadRequest(c, err.Error())
		case errors.Is(err, withdrawal.ErrEmployerLinkMissing),
			errors.Is(err, withdrawal.ErrVerificationNotApproved),
			errors.Is(err, withdrawal.ErrNotAnEmployee):
			return utils.Forbidden(c, err.Error())
		default:
			return utils.InternalError(c, "Failed to process withdrawal")
		}
	}

	return utils.Created(c, fiber.Map{
		"reference":       result.Reference,
		"amount":          result.Amount,
		"fee":             result.Fee,
		"total":           result.Total,
		"remaining_limit": result.RemainingLimit,
		"repayment_date":  result.RepaymentDate,
		"payout":          result.Payout,
		"message":         "Amount will be adjusted from your next salary",
	})
}

// GetWithdrawals returns the caller's withdrawal history plus the
// current availability figures.
func (h *WithdrawalHandler) GetWithdrawals(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "Invalid claims")
	}

	limit := c.QueryInt("limit", 20)
	history, err := h.withdrawalService.GetHistory(claims.UserID, limit)
	if err != nil {
		return utils.InternalError(c, "Failed to load withdrawals")
	}

	availability, err := h.withdrawalService.GetAvailability(claims.UserID)
	if err != nil {
		// Availability requires an approved profile; history does not.
		return utils.Success(c, fiber.Map{"withdrawals": history})
	}

	return utils.Success(c, fiber.Map{
		"withdrawals":  history,
		"availability": availability,
	})
}
