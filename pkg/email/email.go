package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"time"

	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

// Mailer hands a composed message to a mail relay and returns the relay's
// message id when it has one.
type Mailer interface {
	Send(ctx context.Context, msg Message) (string, error)
}

type Message struct {
	From    string
	To      []string
	Cc      []string
	ReplyTo string
	Subject string
	HTML    string
}

type Options struct {
	FromAddress   string
	FromName      string
	BusinessName  string
	ConfirmCC     string
	ContactInbox  string
	SchedulingURL string
}

type EmailService struct {
	mailer    Mailer
	opts      Options
	templates *template.Template
	logger    *zap.Logger
}

func NewEmailService(mailer Mailer, opts Options, logger *zap.Logger) (*EmailService, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse email templates: %w", err)
	}

	return &EmailService{
		mailer:    mailer,
		opts:      opts,
		templates: tmpl,
		logger:    logger.Named("email"),
	}, nil
}

type PurchaseConfirmation struct {
	CustomerEmail string
	CustomerName  string
	Item          string
	AmountTotal   int64 // minor units
	Currency      string
}

func (s *EmailService) SendPurchaseConfirmation(ctx context.Context, p PurchaseConfirmation) error {
	html, err := s.render("purchase-confirmation.html", map[string]interface{}{
		"CustomerName":  p.CustomerName,
		"Item":          p.Item,
		"Amount":        FormatAmount(p.AmountTotal, p.Currency),
		"SchedulingURL": s.opts.SchedulingURL,
		"ContactEmail":  s.opts.ContactInbox,
		"BusinessName":  s.opts.BusinessName,
	})
	if err != nil {
		return err
	}

	msg := Message{
		From:    s.from(),
		To:      []string{p.CustomerEmail},
		Subject: "Thank you for your purchase!",
		HTML:    html,
	}
	if s.opts.ConfirmCC != "" {
		msg.Cc = []string{s.opts.ConfirmCC}
	}

	return s.send(ctx, "purchase_confirmation", msg)
}

type ContactMessage struct {
	Name       string
	Email      string
	Phone      string
	Subject    string
	Message    string
	ReceivedAt time.Time
}

func (s *EmailService) SendContactMessage(ctx context.Context, m ContactMessage) error {
	html, err := s.render("contact-message.html", map[string]interface{}{
		"Name":         m.Name,
		"Email":        m.Email,
		"Phone":        m.Phone,
		"Subject":      m.Subject,
		"Message":      m.Message,
		"BusinessName": s.opts.BusinessName,
		"ReceivedAt":   m.ReceivedAt.Format("2 Jan 2006 15:04 MST"),
	})
	if err != nil {
		return err
	}

	return s.send(ctx, "contact_message", Message{
		From:    s.from(),
		To:      []string{s.opts.ContactInbox},
		ReplyTo: m.Email,
		Subject: "Website enquiry: " + m.Subject,
		HTML:    html,
	})
}

func (s *EmailService) send(ctx context.Context, kind string, msg Message) error {
	s.logger.Info("sending email",
		zap.String("kind", kind),
		zap.Strings("to", msg.To),
		zap.Strings("cc", msg.Cc))

	id, err := s.mailer.Send(ctx, msg)
	if err != nil {
		s.logger.Error("failed to send email", zap.String("kind", kind), zap.Error(err))
		return fmt.Errorf("send %s email: %w", kind, err)
	}

	s.logger.Info("email sent", zap.String("kind", kind), zap.String("message_id", id))
	return nil
}

func (s *EmailService) from() string {
	if s.opts.FromName == "" {
		return s.opts.FromAddress
	}
	return s.opts.FromName + " <" + s.opts.FromAddress + ">"
}

func (s *EmailService) render(name string, data interface{}) (string, error) {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return body.String(), nil
}
