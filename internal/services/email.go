package services

import (
	"context"
	"fmt"

	"experano/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService creates an EmailService from a mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{
		mailer:   mailer,
		renderer: renderer,
	}
}

func (s *emailService) SendPreferencesSaved(ctx context.Context, data *domain.PreferencesSavedEmailData) error {
	subject, html, text, err := s.renderer.Render("preferences_saved", data)
	if err != nil {
		return fmt.Errorf("render preferences_saved email: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, html, text); err != nil {
		return fmt.Errorf("send preferences_saved email: %w", err)
	}
	return nil
}
