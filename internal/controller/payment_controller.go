package controller

import (
	"context"

	"github.com/stripe/stripe-go/v74"

	"github.com/ashleighd/voice-coaching-backend/internal/models"
	"github.com/ashleighd/voice-coaching-backend/internal/service"
)

type PaymentController struct {
	paymentService *service.PaymentService
}

func NewPaymentController(paymentService *service.PaymentService) *PaymentController {
	return &PaymentController{
		paymentService: paymentService,
	}
}

func (c *PaymentController) CreateCheckoutSession(ctx context.Context, priceID, origin string) (*models.CheckoutSession, error) {
	return c.paymentService.CreateCheckoutSession(ctx, priceID, origin)
}

func (c *PaymentController) ConstructWebhookEvent(payload []byte, signature string) (stripe.Event, error) {
	return c.paymentService.ConstructWebhookEvent(payload, signature)
}

func (c *PaymentController) HandleStripeWebhook(ctx context.Context, event *stripe.Event) error {
	return c.paymentService.HandleStripeWebhook(ctx, event)
}
