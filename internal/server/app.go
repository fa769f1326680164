package server

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ashleighd/voice-coaching-backend/internal/config"
	"github.com/ashleighd/voice-coaching-backend/internal/handler"
	"github.com/ashleighd/voice-coaching-backend/internal/middleware"
	"github.com/ashleighd/voice-coaching-backend/internal/models"
)

const WebhookPath = "/api/webhooks"

type Handlers struct {
	Payment *handler.PaymentHandler
	Contact *handler.ContactHandler
	Tier    *handler.TierHandler
}

func NewFiberApp(cfg *config.Config, h Handlers, logger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.Business.Name,
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(middleware.RequestLogger(logger))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.App.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST",
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.App.RateLimitMax,
		Expiration: cfg.App.RateLimitWindow,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		// Stripe retries must never be throttled.
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), WebhookPath)
		},
	}))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	api.Post("/create-checkout-session", h.Payment.CreateCheckoutSession)
	api.Post("/webhooks", h.Payment.HandleStripeWebhook)
	api.Post("/contact", h.Contact.Submit)

	payments := api.Group("/payments")
	payments.Get("/tiers", h.Tier.GetAllTiers)
	payments.Get("/tiers/:key", h.Tier.GetTierByKey)
	payments.Get("/config", h.Tier.GetPaymentConfig)

	return app
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	}

	return c.Status(code).JSON(models.ErrorResponse(msg))
}
