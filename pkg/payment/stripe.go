package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/client"
)

// CheckoutParams describes a single-item hosted checkout.
type CheckoutParams struct {
	PriceID    string
	SuccessURL string
	CancelURL  string
}

// StripeService wraps one Stripe API client for the lifetime of the process.
// It never touches the package-level stripe.Key.
type StripeService struct {
	api *client.API
}

func NewStripeService(secretKey string) *StripeService {
	return NewStripeServiceWithBackends(secretKey, nil)
}

// NewStripeServiceWithBackends allows pointing the client at stripe-mock or a test server.
func NewStripeServiceWithBackends(secretKey string, backends *stripe.Backends) *StripeService {
	return &StripeService{
		api: client.New(secretKey, backends),
	}
}

func (s *StripeService) CreateCheckoutSession(ctx context.Context, in CheckoutParams) (*stripe.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(in.PriceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(in.SuccessURL),
		CancelURL:  stripe.String(in.CancelURL),
		AutomaticTax: &stripe.CheckoutSessionAutomaticTaxParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx

	session, err := s.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, err
	}

	return session, nil
}

// ListLineItems returns every line item of a checkout session.
func (s *StripeService) ListLineItems(ctx context.Context, sessionID string) ([]*stripe.LineItem, error) {
	params := &stripe.CheckoutSessionListLineItemsParams{
		Session: stripe.String(sessionID),
	}
	params.Context = ctx

	var items []*stripe.LineItem
	iter := s.api.CheckoutSessions.ListLineItems(params)
	for iter.Next() {
		items = append(items, iter.LineItem())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("list line items for %s: %w", sessionID, err)
	}

	return items, nil
}
