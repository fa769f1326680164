package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/webhook"
	"go.uber.org/zap"

	"github.com/ashleighd/voice-coaching-backend/internal/fixtures/mocks"
	"github.com/ashleighd/voice-coaching-backend/internal/service"
	"github.com/ashleighd/voice-coaching-backend/pkg/email"
	"github.com/ashleighd/voice-coaching-backend/pkg/email/emailtest"
	"github.com/ashleighd/voice-coaching-backend/pkg/payment"
)

const webhookSecret = "whsec_service_test"

type paymentFixture struct {
	provider *mocks.CheckoutProvider
	mailer   *emailtest.Recorder
	svc      *service.PaymentService
}

func newPaymentFixture(t *testing.T) *paymentFixture {
	t.Helper()

	provider := &mocks.CheckoutProvider{}
	mailer := &emailtest.Recorder{}
	emailService, err := email.NewEmailService(mailer, email.Options{
		FromAddress:   "bookings@example.com",
		ConfirmCC:     "coach@example.com",
		ContactInbox:  "coach@example.com",
		SchedulingURL: "https://calendly.com/example",
	}, zap.NewNop())
	require.NoError(t, err)

	svc := service.NewPaymentService(
		provider,
		payment.NewWebhookVerifier(webhookSecret),
		emailService,
		"/book-now",
		zap.NewNop(),
	)

	t.Cleanup(func() { provider.AssertExpectations(t) })
	return &paymentFixture{provider: provider, mailer: mailer, svc: svc}
}

func completedEvent(sessionJSON string) *stripe.Event {
	return &stripe.Event{
		ID:   "evt_test_1",
		Type: "checkout.session.completed",
		Data: &stripe.EventData{Raw: json.RawMessage(sessionJSON)},
	}
}

const paidSession = `{
	"id": "cs_test_1",
	"object": "checkout.session",
	"customer_details": {"email": "jo@example.com", "name": "Jo Bloggs"}
}`

func singleSessionItem() []*stripe.LineItem {
	return []*stripe.LineItem{{
		ID:          "li_1",
		Description: "Single Session",
		AmountTotal: 4500,
		Currency:    stripe.CurrencyGBP,
	}}
}

func TestCreateCheckoutSession(t *testing.T) {
	f := newPaymentFixture(t)

	f.provider.On("CreateCheckoutSession", mock.Anything, payment.CheckoutParams{
		PriceID:    "price_single",
		SuccessURL: "https://voice.example/book-now?success=true",
		CancelURL:  "https://voice.example/book-now?canceled=true",
	}).Return(&stripe.CheckoutSession{
		ID:  "cs_test_1",
		URL: "https://checkout.stripe.com/c/pay/cs_test_1",
	}, nil).Once()

	session, err := f.svc.CreateCheckoutSession(context.Background(), "price_single", "https://voice.example")
	require.NoError(t, err)
	assert.Equal(t, "cs_test_1", session.ID)
	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_test_1", session.URL)
}

func TestCreateCheckoutSession_TrailingSlashOrigin(t *testing.T) {
	f := newPaymentFixture(t)

	f.provider.On("CreateCheckoutSession", mock.Anything, mock.MatchedBy(func(p payment.CheckoutParams) bool {
		return p.SuccessURL == "http://localhost:3000/book-now?success=true"
	})).Return(&stripe.CheckoutSession{ID: "cs_1", URL: "https://checkout.stripe.com/x"}, nil).Once()

	_, err := f.svc.CreateCheckoutSession(context.Background(), "price_single", "http://localhost:3000/")
	require.NoError(t, err)
}

func TestCreateCheckoutSession_EmptyPriceID(t *testing.T) {
	f := newPaymentFixture(t)

	for _, id := range []string{"", "   "} {
		_, err := f.svc.CreateCheckoutSession(context.Background(), id, "https://voice.example")
		assert.ErrorIs(t, err, service.ErrPriceIDRequired)
	}

	f.provider.AssertNotCalled(t, "CreateCheckoutSession", mock.Anything, mock.Anything)
}

func TestCreateCheckoutSession_ProviderError(t *testing.T) {
	f := newPaymentFixture(t)

	stripeErr := &stripe.Error{HTTPStatusCode: http.StatusBadRequest, Msg: "No such price: 'price_nope'"}
	f.provider.On("CreateCheckoutSession", mock.Anything, mock.Anything).Return(nil, stripeErr).Once()

	_, err := f.svc.CreateCheckoutSession(context.Background(), "price_nope", "https://voice.example")
	require.Error(t, err)

	pe, ok := payment.AsProviderError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, pe.Status)
	assert.Equal(t, "No such price: 'price_nope'", pe.Message)
}

func TestCreateCheckoutSession_MissingURL(t *testing.T) {
	f := newPaymentFixture(t)

	f.provider.On("CreateCheckoutSession", mock.Anything, mock.Anything).
		Return(&stripe.CheckoutSession{ID: "cs_1"}, nil).Once()

	_, err := f.svc.CreateCheckoutSession(context.Background(), "price_single", "https://voice.example")
	assert.ErrorIs(t, err, service.ErrMissingCheckoutURL)
}

func TestConstructWebhookEvent(t *testing.T) {
	f := newPaymentFixture(t)
	payload := []byte(`{"id":"evt_1","object":"event","type":"customer.created","data":{"object":{}}}`)

	good := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload: payload, Secret: webhookSecret, Timestamp: time.Now(),
	})
	event, err := f.svc.ConstructWebhookEvent(payload, good.Header)
	require.NoError(t, err)
	assert.Equal(t, "evt_1", event.ID)

	bad := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload: payload, Secret: "whsec_wrong", Timestamp: time.Now(),
	})
	_, err = f.svc.ConstructWebhookEvent(payload, bad.Header)
	assert.Error(t, err)
}

func TestHandleStripeWebhook_CheckoutCompleted(t *testing.T) {
	f := newPaymentFixture(t)
	f.provider.On("ListLineItems", mock.Anything, "cs_test_1").Return(singleSessionItem(), nil).Once()

	require.NoError(t, f.svc.HandleStripeWebhook(context.Background(), completedEvent(paidSession)))

	msgs := f.mailer.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, []string{"jo@example.com"}, msgs[0].To)
	assert.Equal(t, []string{"coach@example.com"}, msgs[0].Cc)
	assert.Contains(t, msgs[0].HTML, "Dear Jo Bloggs,")
	assert.Contains(t, msgs[0].HTML, "Item: Single Session")
	assert.Contains(t, msgs[0].HTML, "Amount: £45.00")
}

func TestHandleStripeWebhook_DefaultCustomerName(t *testing.T) {
	f := newPaymentFixture(t)
	f.provider.On("ListLineItems", mock.Anything, "cs_test_2").Return(singleSessionItem(), nil).Once()

	event := completedEvent(`{"id":"cs_test_2","customer_details":{"email":"jo@example.com"}}`)
	require.NoError(t, f.svc.HandleStripeWebhook(context.Background(), event))

	require.Len(t, f.mailer.Messages(), 1)
	assert.Contains(t, f.mailer.Messages()[0].HTML, "Dear Customer,")
}

func TestHandleStripeWebhook_OtherEventIgnored(t *testing.T) {
	f := newPaymentFixture(t)

	event := &stripe.Event{
		ID:   "evt_2",
		Type: "payment_intent.succeeded",
		Data: &stripe.EventData{Raw: json.RawMessage(`{"id":"pi_1"}`)},
	}
	require.NoError(t, f.svc.HandleStripeWebhook(context.Background(), event))

	assert.Empty(t, f.mailer.Messages())
	f.provider.AssertNotCalled(t, "ListLineItems", mock.Anything, mock.Anything)
}

func TestHandleStripeWebhook_RedeliverySendsTwice(t *testing.T) {
	f := newPaymentFixture(t)
	f.provider.On("ListLineItems", mock.Anything, "cs_test_1").Return(singleSessionItem(), nil).Twice()

	event := completedEvent(paidSession)
	require.NoError(t, f.svc.HandleStripeWebhook(context.Background(), event))
	require.NoError(t, f.svc.HandleStripeWebhook(context.Background(), event))

	assert.Len(t, f.mailer.Messages(), 2)
}

func TestHandleStripeWebhook_EmailFailureSwallowed(t *testing.T) {
	f := newPaymentFixture(t)
	f.mailer.Err = errors.New("smtp: 535 authentication failed")
	f.provider.On("ListLineItems", mock.Anything, "cs_test_1").Return(singleSessionItem(), nil).Once()

	assert.NoError(t, f.svc.HandleStripeWebhook(context.Background(), completedEvent(paidSession)))
	assert.Len(t, f.mailer.Messages(), 1)
}

func TestHandleStripeWebhook_LineItemFailure(t *testing.T) {
	f := newPaymentFixture(t)
	stripeErr := &stripe.Error{HTTPStatusCode: http.StatusTooManyRequests, Msg: "Rate limited"}
	f.provider.On("ListLineItems", mock.Anything, "cs_test_1").Return(nil, stripeErr).Once()

	err := f.svc.HandleStripeWebhook(context.Background(), completedEvent(paidSession))
	require.Error(t, err)

	pe, ok := payment.AsProviderError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusTooManyRequests, pe.Status)
	assert.Empty(t, f.mailer.Messages())
}

func TestHandleStripeWebhook_NoCustomerEmail(t *testing.T) {
	f := newPaymentFixture(t)

	event := completedEvent(`{"id":"cs_test_3","customer_details":{"name":"Jo"}}`)
	require.NoError(t, f.svc.HandleStripeWebhook(context.Background(), event))

	assert.Empty(t, f.mailer.Messages())
	f.provider.AssertNotCalled(t, "ListLineItems", mock.Anything, mock.Anything)
}

func TestHandleStripeWebhook_NoLineItems(t *testing.T) {
	f := newPaymentFixture(t)
	f.provider.On("ListLineItems", mock.Anything, "cs_test_1").Return([]*stripe.LineItem{}, nil).Once()

	require.NoError(t, f.svc.HandleStripeWebhook(context.Background(), completedEvent(paidSession)))
	assert.Empty(t, f.mailer.Messages())
}

func TestHandleStripeWebhook_MalformedSession(t *testing.T) {
	f := newPaymentFixture(t)

	err := f.svc.HandleStripeWebhook(context.Background(), completedEvent(`[1,2,3]`))
	assert.Error(t, err)
	assert.Empty(t, f.mailer.Messages())
}
