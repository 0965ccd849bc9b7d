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

// IssuanceFailureAlertData holds data for the operator alert sent when a
// webhook-path issuance fails. The provider will not retry forever and a
// failed issuance leaves the payment without an invite until the healing path
// runs, so someone has to know.
type IssuanceFailureAlertData struct {
	PaymentID string
	EventType string
	Reason    string
}

// AlertService defines the contract for operator notifications.
type AlertService interface {
	SendIssuanceFailure(ctx context.Context, data *IssuanceFailureAlertData) error
}
