package payment

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/stripe/stripe-go/v74"
)

// ProviderError is a Stripe failure reduced to what an HTTP caller can use.
type ProviderError struct {
	Status  int
	Message string
	Err     error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("stripe: %d %s", e.Status, e.Message)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// AsProviderError extracts status and message from a *stripe.Error anywhere in
// the chain. ok is false for network failures and other non-Stripe errors.
func AsProviderError(err error) (*ProviderError, bool) {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe, true
	}

	var se *stripe.Error
	if !errors.As(err, &se) {
		return nil, false
	}

	status := se.HTTPStatusCode
	if status < http.StatusBadRequest {
		status = http.StatusInternalServerError
	}

	msg := se.Msg
	if msg == "" {
		msg = http.StatusText(status)
	}

	return &ProviderError{Status: status, Message: msg, Err: se}, true
}
