package email

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/resendlabs/resend-go"
)

const resendTimeout = 15 * time.Second

// ResendMailer delivers through the Resend HTTP API.
type ResendMailer struct {
	client *resend.Client
}

func NewResendMailer(apiKey string) *ResendMailer {
	return &ResendMailer{
		client: resend.NewCustomClient(&http.Client{Timeout: resendTimeout}, strings.TrimSpace(apiKey)),
	}
}

// WithBaseURL points the mailer at another API root, e.g. a test server.
func (m *ResendMailer) WithBaseURL(raw string) (*ResendMailer, error) {
	u, err := url.Parse(strings.TrimRight(raw, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("resend base url: %w", err)
	}
	m.client.BaseURL = u
	return m, nil
}

// Send honours ctx only up to the request. resend-go takes no context, so an
// in-flight call is bounded by the client timeout instead.
func (m *ResendMailer) Send(ctx context.Context, msg Message) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	params := &resend.SendEmailRequest{
		From:    msg.From,
		To:      msg.To,
		Cc:      msg.Cc,
		ReplyTo: msg.ReplyTo,
		Subject: msg.Subject,
		Html:    msg.HTML,
	}

	resp, err := m.client.Emails.Send(params)
	if err != nil {
		return "", fmt.Errorf("resend: %w", err)
	}

	return resp.Id, nil
}
