package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ashleighd/voice-coaching-backend/internal/models"
	"github.com/ashleighd/voice-coaching-backend/pkg/captcha"
	"github.com/ashleighd/voice-coaching-backend/pkg/email"
)

var (
	ErrCaptchaFailed = errors.New("captcha verification failed")
	ErrRelayFailed   = errors.New("message could not be delivered")
)

type CaptchaVerifier interface {
	Verify(ctx context.Context, token, remoteIP string) error
}

type ContactService struct {
	emailService *email.EmailService
	captcha      CaptchaVerifier
	logger       *zap.Logger
	now          func() time.Time
}

func NewContactService(emailService *email.EmailService, captcha CaptchaVerifier, logger *zap.Logger) *ContactService {
	return &ContactService{
		emailService: emailService,
		captcha:      captcha,
		logger:       logger.Named("contact"),
		now:          time.Now,
	}
}

// Submit forwards an already validated and trimmed contact form to the
// business inbox.
func (s *ContactService) Submit(ctx context.Context, req models.ContactRequest, remoteIP string) error {
	if err := s.captcha.Verify(ctx, req.CaptchaToken, remoteIP); err != nil {
		s.logger.Warn("captcha verification failed", zap.String("ip", remoteIP), zap.Error(err))
		if errors.Is(err, captcha.ErrMissingToken) || errors.Is(err, captcha.ErrRejected) {
			return fmt.Errorf("%w: %v", ErrCaptchaFailed, err)
		}
		return fmt.Errorf("verify captcha: %w", err)
	}

	err := s.emailService.SendContactMessage(ctx, email.ContactMessage{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Subject:    req.Subject,
		Message:    req.Message,
		ReceivedAt: s.now(),
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRelayFailed, err)
	}

	s.logger.Info("contact message forwarded", zap.String("subject", req.Subject))
	return nil
}
