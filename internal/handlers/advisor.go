package handlers

import (
	"errors"

	"salarysync/internal/services/advisor"
	"salarysync/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type AdvisorHandler struct {
	advisorService advisor.Service
}

func NewAdvisorHandler(advisorService advisor.Service) *AdvisorHandler {
	return &AdvisorHandler{advisorService: advisorService}
}

// Chat answers a money question with the employee's live figures as
// context.
func (h *AdvisorHandler) Chat(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "Invalid claims")
	}

	var input struct {
		Message string `json:"message"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	reply, err := h.advisorService.Chat(c.Context(), claims.UserID, input.Message)
	if err != nil {
		if errors.Is(err, advisor.ErrEmptyMessage) {
			return utils.BadRequest(c, err.Error())
		}
		return utils.InternalError(c, "Advisor is unavailable")
	}

	return utils.Success(c, reply)
}
