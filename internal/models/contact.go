package models

import "strings"

type ContactRequest struct {
	Name         string `json:"name" validate:"required,max=100"`
	Email        string `json:"email" validate:"required,email,max=254"`
	Phone        string `json:"phone" validate:"omitempty,phone"`
	Subject      string `json:"subject" validate:"required,max=200"`
	Message      string `json:"message" validate:"required,max=5000"`
	CaptchaToken string `json:"captchaToken"`
}

// Trim strips surrounding whitespace so that blank fields fail "required".
func (r *ContactRequest) Trim() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Subject = strings.TrimSpace(r.Subject)
	r.Message = strings.TrimSpace(r.Message)
}
