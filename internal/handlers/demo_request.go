package handlers

import (
	"errors"

	"salarysync/internal/services/demorequest"
	"salarysync/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type DemoRequestHandler struct {
	demoService demorequest.Service
}

func NewDemoRequestHandler(demoService demorequest.Service) *DemoRequestHandler {
	return &DemoRequestHandler{demoService: demoService}
}

// Submit accepts the public demo request form.
func (h *DemoRequestHandler) Submit(c *fiber.Ctx) error {
	var input demorequest.SubmitRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	dr, err := h.demoService.Submit(input)
	if err != nil {
		if errors.Is(err, demorequest.ErrInvalidRequest) {
			return utils.BadRequest(c, err.Error())
		}
		return utils.InternalError(c, "Failed to submit demo request")
	}

	return utils.Created(c, fiber.Map{
		"id":      dr.ID,
		"status":  dr.Status,
		"message": "Thanks, our team will reach out shortly",
	})
}
