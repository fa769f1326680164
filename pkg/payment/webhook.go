package payment

import (
	"errors"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/webhook"
)

// SignatureHeader is the header Stripe signs webhook deliveries with.
const SignatureHeader = "Stripe-Signature"

var ErrMissingWebhookSecret = errors.New("missing webhook signing secret")

// WebhookVerifier checks Stripe webhook signatures against the endpoint secret.
type WebhookVerifier struct {
	secret string
}

func NewWebhookVerifier(secret string) *WebhookVerifier {
	return &WebhookVerifier{secret: secret}
}

// ConstructEvent verifies the signature of payload and decodes it. An empty
// secret rejects every payload.
func (v *WebhookVerifier) ConstructEvent(payload []byte, signature string) (stripe.Event, error) {
	if v.secret == "" {
		return stripe.Event{}, ErrMissingWebhookSecret
	}

	return webhook.ConstructEventWithOptions(payload, signature, v.secret,
		webhook.ConstructEventOptions{
			IgnoreAPIVersionMismatch: true,
		})
}
