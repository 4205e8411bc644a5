package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// PreferencesSavedEmailData holds data for the email sent once onboarding
// completes and the preference profile has been stored.
type PreferencesSavedEmailData struct {
	Email       string
	Name        string
	Preferences string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendPreferencesSaved(ctx context.Context, data *PreferencesSavedEmailData) error
}
