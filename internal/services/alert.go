package services

import (
	"context"
	"fmt"
	"log/slog"

	"grouppass/internal/domain"
)

type alertService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	to       string
	logger   *slog.Logger
}

// NewAlertService returns an AlertService that emails the operator address.
// An empty address disables alerts.
func NewAlertService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, to string, logger *slog.Logger) domain.AlertService {
	return &alertService{mailer: mailer, renderer: renderer, to: to, logger: logger}
}

// SendIssuanceFailure sends the issuance-failure alert using the
// "issuance_failure" template and the given data.
func (s *alertService) SendIssuanceFailure(ctx context.Context, data *domain.IssuanceFailureAlertData) error {
	if data == nil {
		return fmt.Errorf("issuance failure alert data is nil")
	}
	if s.to == "" {
		return nil
	}
	subject, htmlBody, textBody, err := s.renderer.Render("issuance_failure", data)
	if err != nil {
		return fmt.Errorf("failed to render issuance_failure template: %w", err)
	}
	if err := s.mailer.Send(s.to, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send issuance failure alert: %w", err)
	}
	s.logger.InfoContext(ctx, "issuance failure alert sent", "payment_id", data.PaymentID, "to", s.to)
	return nil
}
