package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/ashleighd/voice-coaching-backend/internal/controller"
	"github.com/ashleighd/voice-coaching-backend/internal/models"
	"github.com/ashleighd/voice-coaching-backend/internal/service"
	"github.com/ashleighd/voice-coaching-backend/pkg/utils"
)

type ContactHandler struct {
	contactController *controller.ContactController
	validator         *utils.Validator
	logger            *zap.Logger
}

func NewContactHandler(contactController *controller.ContactController, validator *utils.Validator, logger *zap.Logger) *ContactHandler {
	return &ContactHandler{
		contactController: contactController,
		validator:         validator,
		logger:            logger.Named("contact_handler"),
	}
}

func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	var req models.ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	req.Trim()
	if err := h.validator.Struct(req); err != nil {
		field, msg := utils.FirstError(err)
		return c.Status(fiber.StatusBadRequest).JSON(models.ValidationErrorResponse(field, msg))
	}

	if err := h.contactController.Submit(c.UserContext(), req, c.IP()); err != nil {
		if errors.Is(err, service.ErrCaptchaFailed) {
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Captcha verification failed"))
		}

		h.logger.Error("contact submission failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(models.ErrorResponse(
			"Your message could not be sent. Please try again or email us directly."))
	}

	return c.JSON(models.SuccessResponse(nil, "Message sent"))
}
