package controller

import (
	"context"

	"github.com/ashleighd/voice-coaching-backend/internal/models"
	"github.com/ashleighd/voice-coaching-backend/internal/service"
)

type ContactController struct {
	contactService *service.ContactService
}

func NewContactController(contactService *service.ContactService) *ContactController {
	return &ContactController{
		contactService: contactService,
	}
}

func (c *ContactController) Submit(ctx context.Context, req models.ContactRequest, remoteIP string) error {
	return c.contactService.Submit(ctx, req, remoteIP)
}
