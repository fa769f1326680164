package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/ashleighd/voice-coaching-backend/internal/controller"
	"github.com/ashleighd/voice-coaching-backend/internal/models"
	"github.com/ashleighd/voice-coaching-backend/internal/service"
	"github.com/ashleighd/voice-coaching-backend/pkg/payment"
)

type PaymentHandler struct {
	paymentController *controller.PaymentController
	logger            *zap.Logger
}

func NewPaymentHandler(paymentController *controller.PaymentController, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		paymentController: paymentController,
		logger:            logger.Named("payment_handler"),
	}
}

func (h *PaymentHandler) CreateCheckoutSession(c *fiber.Ctx) error {
	var req models.CreateCheckoutSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Price ID is required",
		})
	}

	// Redirects go back to whichever deployment the visitor came from.
	origin := c.Get(fiber.HeaderOrigin)
	if origin == "" {
		origin = c.BaseURL()
	}

	session, err := h.paymentController.CreateCheckoutSession(c.UserContext(), req.PriceID, origin)
	if err != nil {
		if errors.Is(err, service.ErrPriceIDRequired) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Price ID is required",
			})
		}
		if pe, ok := payment.AsProviderError(err); ok {
			return c.Status(pe.Status).JSON(fiber.Map{
				"error": pe.Message,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error creating checkout session",
		})
	}

	return c.JSON(fiber.Map{
		"url": session.URL,
	})
}

func (h *PaymentHandler) HandleStripeWebhook(c *fiber.Ctx) error {
	payload := c.Body()
	signature := c.Get(payment.SignatureHeader)

	event, err := h.paymentController.ConstructWebhookEvent(payload, signature)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if err := h.paymentController.HandleStripeWebhook(c.UserContext(), &event); err != nil {
		h.logger.Error("webhook processing failed",
			zap.String("event_id", event.ID),
			zap.Error(err))

		if pe, ok := payment.AsProviderError(err); ok {
			return c.Status(pe.Status).JSON(fiber.Map{
				"error": pe.Message,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error processing webhook",
		})
	}

	return c.JSON(fiber.Map{
		"received": true,
	})
}
