package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v74"
	"go.uber.org/zap"

	"github.com/ashleighd/voice-coaching-backend/internal/models"
	"github.com/ashleighd/voice-coaching-backend/pkg/email"
	"github.com/ashleighd/voice-coaching-backend/pkg/payment"
)

const eventCheckoutSessionCompleted = "checkout.session.completed"

const defaultCustomerName = "Customer"

var (
	ErrPriceIDRequired    = errors.New("price ID is required")
	ErrMissingCheckoutURL = errors.New("checkout session has no redirect URL")
)

// CheckoutProvider is the part of Stripe the payment flow talks to.
type CheckoutProvider interface {
	CreateCheckoutSession(ctx context.Context, in payment.CheckoutParams) (*stripe.CheckoutSession, error)
	ListLineItems(ctx context.Context, sessionID string) ([]*stripe.LineItem, error)
}

type EventVerifier interface {
	ConstructEvent(payload []byte, signature string) (stripe.Event, error)
}

type PaymentService struct {
	provider     CheckoutProvider
	verifier     EventVerifier
	emailService *email.EmailService
	bookingPath  string
	logger       *zap.Logger
}

func NewPaymentService(
	provider CheckoutProvider,
	verifier EventVerifier,
	emailService *email.EmailService,
	bookingPath string,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		provider:     provider,
		verifier:     verifier,
		emailService: emailService,
		bookingPath:  bookingPath,
		logger:       logger.Named("payment"),
	}
}

// CreateCheckoutSession starts a hosted checkout for one unit of priceID. The
// redirect URLs point back at the booking page of origin.
func (s *PaymentService) CreateCheckoutSession(ctx context.Context, priceID, origin string) (*models.CheckoutSession, error) {
	priceID = strings.TrimSpace(priceID)
	if priceID == "" {
		return nil, ErrPriceIDRequired
	}

	bookingURL := strings.TrimRight(origin, "/") + s.bookingPath

	session, err := s.provider.CreateCheckoutSession(ctx, payment.CheckoutParams{
		PriceID:    priceID,
		SuccessURL: bookingURL + "?success=true",
		CancelURL:  bookingURL + "?canceled=true",
	})
	if err != nil {
		s.logger.Error("failed to create checkout session",
			zap.String("price_id", priceID),
			zap.Error(err))
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	if session.URL == "" {
		return nil, ErrMissingCheckoutURL
	}

	s.logger.Info("checkout session created",
		zap.String("session_id", session.ID),
		zap.String("price_id", priceID))

	return &models.CheckoutSession{
		ID:  session.ID,
		URL: session.URL,
	}, nil
}

// ConstructWebhookEvent authenticates a webhook delivery. Nothing in the
// payload may be trusted before this returns without error.
func (s *PaymentService) ConstructWebhookEvent(payload []byte, signature string) (stripe.Event, error) {
	event, err := s.verifier.ConstructEvent(payload, signature)
	if err != nil {
		s.logger.Warn("webhook signature verification failed", zap.Error(err))
		return stripe.Event{}, err
	}
	return event, nil
}

// HandleStripeWebhook acts on a verified event. Deliveries are not
// deduplicated, so a redelivered completion sends another email.
func (s *PaymentService) HandleStripeWebhook(ctx context.Context, event *stripe.Event) error {
	switch event.Type {
	case eventCheckoutSessionCompleted:
		return s.handleCheckoutSessionCompleted(ctx, event)
	default:
		s.logger.Debug("ignoring webhook event",
			zap.String("event_id", event.ID),
			zap.String("type", string(event.Type)))
		return nil
	}
}

func (s *PaymentService) handleCheckoutSessionCompleted(ctx context.Context, event *stripe.Event) error {
	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return fmt.Errorf("decode checkout session: %w", err)
	}

	log := s.logger.With(
		zap.String("event_id", event.ID),
		zap.String("session_id", session.ID))

	var customerEmail, customerName string
	if session.CustomerDetails != nil {
		customerEmail = session.CustomerDetails.Email
		customerName = session.CustomerDetails.Name
	}
	if customerName == "" {
		customerName = defaultCustomerName
	}

	if customerEmail == "" {
		log.Warn("checkout completed without customer email, skipping confirmation")
		return nil
	}

	items, err := s.provider.ListLineItems(ctx, session.ID)
	if err != nil {
		log.Error("failed to list line items", zap.Error(err))
		return fmt.Errorf("list line items: %w", err)
	}
	if len(items) == 0 {
		log.Warn("checkout completed without line items, skipping confirmation")
		return nil
	}
	item := items[0]

	err = s.emailService.SendPurchaseConfirmation(ctx, email.PurchaseConfirmation{
		CustomerEmail: customerEmail,
		CustomerName:  customerName,
		Item:          item.Description,
		AmountTotal:   item.AmountTotal,
		Currency:      string(item.Currency),
	})
	if err != nil {
		// Acknowledged anyway: a redelivery would not fix the relay.
		log.Error("error sending confirmation email", zap.Error(err))
		return nil
	}

	log.Info("purchase confirmation sent", zap.String("item", item.Description))
	return nil
}
