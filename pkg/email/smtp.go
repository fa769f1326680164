package email

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
)

// SMTPMailer delivers through an authenticated SMTP relay using STARTTLS.
// A go-mail Client holds a single connection, so every Send dials its own.
type SMTPMailer struct {
	host string
	opts []mail.Option
}

// NewSMTPMailer checks the relay settings up front. Extra options are applied
// after the defaults and override them.
func NewSMTPMailer(host string, port int, user, password string, extra ...mail.Option) (*SMTPMailer, error) {
	opts := []mail.Option{
		mail.WithPort(port),
		mail.WithTLSPolicy(mail.TLSMandatory),
	}
	if user != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(user),
			mail.WithPassword(password),
		)
	}
	opts = append(opts, extra...)

	if _, err := mail.NewClient(host, opts...); err != nil {
		return nil, fmt.Errorf("smtp client for %s:%d: %w", host, port, err)
	}

	return &SMTPMailer{host: host, opts: opts}, nil
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) (string, error) {
	out := mail.NewMsg()
	if err := out.From(msg.From); err != nil {
		return "", fmt.Errorf("smtp from: %w", err)
	}
	if err := out.To(msg.To...); err != nil {
		return "", fmt.Errorf("smtp to: %w", err)
	}
	if len(msg.Cc) > 0 {
		if err := out.Cc(msg.Cc...); err != nil {
			return "", fmt.Errorf("smtp cc: %w", err)
		}
	}
	if msg.ReplyTo != "" {
		if err := out.ReplyTo(msg.ReplyTo); err != nil {
			return "", fmt.Errorf("smtp reply-to: %w", err)
		}
	}
	out.Subject(msg.Subject)
	out.SetBodyString(mail.TypeTextHTML, msg.HTML)

	client, err := mail.NewClient(m.host, m.opts...)
	if err != nil {
		return "", fmt.Errorf("smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, out); err != nil {
		return "", fmt.Errorf("smtp send: %w", err)
	}

	// SMTP relays do not hand back a message id.
	return "", nil
}
