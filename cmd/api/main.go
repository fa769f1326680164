package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/ashleighd/voice-coaching-backend/internal/config"
	"github.com/ashleighd/voice-coaching-backend/internal/controller"
	"github.com/ashleighd/voice-coaching-backend/internal/handler"
	"github.com/ashleighd/voice-coaching-backend/internal/server"
	"github.com/ashleighd/voice-coaching-backend/internal/service"
	"github.com/ashleighd/voice-coaching-backend/pkg/captcha"
	"github.com/ashleighd/voice-coaching-backend/pkg/email"
	"github.com/ashleighd/voice-coaching-backend/pkg/logger"
	"github.com/ashleighd/voice-coaching-backend/pkg/payment"
	"github.com/ashleighd/voice-coaching-backend/pkg/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.Logger.Level, cfg.Logger.AsJSON)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zl.Sync() //nolint:errcheck

	if cfg.Stripe.WebhookSecret == "" {
		zl.Warn("STRIPE_WEBHOOK_SECRET is not set, every webhook will be rejected")
	}

	// Mail relay
	mailer, err := newMailer(cfg.Mail)
	if err != nil {
		zl.Fatal("Failed to initialize mailer", zap.Error(err))
	}

	emailService, err := email.NewEmailService(mailer, email.Options{
		FromAddress:   cfg.Mail.FromAddress,
		FromName:      cfg.Mail.FromName,
		BusinessName:  cfg.Business.Name,
		ConfirmCC:     cfg.Business.ConfirmCC,
		ContactInbox:  cfg.Business.ContactInbox,
		SchedulingURL: cfg.Business.SchedulingURL,
	}, zl)
	if err != nil {
		zl.Fatal("Failed to initialize email service", zap.Error(err))
	}

	// Stripe
	stripeService := payment.NewStripeService(cfg.Stripe.SecretKey)
	verifier := payment.NewWebhookVerifier(cfg.Stripe.WebhookSecret)

	// Services
	paymentService := service.NewPaymentService(stripeService, verifier, emailService, cfg.App.BookingPath, zl)
	contactService := service.NewContactService(emailService, captcha.NewTurnstile(cfg.Captcha.TurnstileSecret), zl)
	tierService := service.NewTierService(cfg.Stripe)

	validator := utils.NewValidator()

	// Handlers
	handlers := server.Handlers{
		Payment: handler.NewPaymentHandler(controller.NewPaymentController(paymentService), zl),
		Contact: handler.NewContactHandler(controller.NewContactController(contactService), validator, zl),
		Tier:    handler.NewTierHandler(tierService),
	}

	app := server.NewFiberApp(cfg, handlers, zl)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		zl.Info("Shutting down")
		if err := app.Shutdown(); err != nil {
			zl.Error("Shutdown failed", zap.Error(err))
		}
	}()

	zl.Info("Starting server", zap.String("port", cfg.App.Port))
	if err := app.Listen(":" + cfg.App.Port); err != nil {
		zl.Fatal("Server stopped", zap.Error(err))
	}
}

func newMailer(cfg config.MailConfig) (email.Mailer, error) {
	switch cfg.Driver {
	case "resend":
		return email.NewResendMailer(cfg.ResendAPIKey), nil
	default:
		m, err := email.NewSMTPMailer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
		if err != nil {
			return nil, err
		}
		return m, nil
	}
}
