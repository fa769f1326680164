// Package mocks holds testify mocks shared by service and handler tests.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/stripe/stripe-go/v74"

	"github.com/ashleighd/voice-coaching-backend/pkg/payment"
)

type CheckoutProvider struct {
	mock.Mock
}

func (m *CheckoutProvider) CreateCheckoutSession(ctx context.Context, in payment.CheckoutParams) (*stripe.CheckoutSession, error) {
	args := m.Called(ctx, in)
	session, _ := args.Get(0).(*stripe.CheckoutSession)
	return session, args.Error(1)
}

func (m *CheckoutProvider) ListLineItems(ctx context.Context, sessionID string) ([]*stripe.LineItem, error) {
	args := m.Called(ctx, sessionID)
	items, _ := args.Get(0).([]*stripe.LineItem)
	return items, args.Error(1)
}
