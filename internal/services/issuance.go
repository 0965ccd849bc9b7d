package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"grouppass/internal/domain"
)

type issuanceService struct {
	ledger   domain.InviteLedger
	group    domain.GroupManager
	provider domain.PaymentProvider
	alerts   domain.AlertService
	ttl      time.Duration
	logger   *slog.Logger
}

// NewIssuanceService wires the payment-to-access protocol: ledger for
// at-most-once issuance, group manager for link creation, provider for the
// healing path, alerts for webhook-path failures. alerts may be nil.
func NewIssuanceService(
	ledger domain.InviteLedger,
	group domain.GroupManager,
	provider domain.PaymentProvider,
	alerts domain.AlertService,
	ttl time.Duration,
	logger *slog.Logger,
) domain.IssuanceService {
	return &issuanceService{
		ledger:   ledger,
		group:    group,
		provider: provider,
		alerts:   alerts,
		ttl:      ttl,
		logger:   logger,
	}
}

func (s *issuanceService) HandleEvent(ctx context.Context, event *domain.PaymentEvent) (bool, error) {
	if event == nil {
		return false, domain.ErrInvalidInput
	}

	switch event.Type {
	case domain.EventPaymentSucceeded, domain.EventCheckoutCompleted:
	default:
		return false, nil
	}
	if event.PaymentID == "" {
		// Verified but nothing to key issuance on, as with a
		// subscription-mode checkout session. Acknowledge and move on.
		s.logger.InfoContext(ctx, "event carries no payment id, skipping", "event_id", event.ID, "event_type", event.Type)
		return false, nil
	}

	if _, err := s.issue(ctx, event.PaymentID); err != nil {
		if errors.Is(err, domain.ErrAlreadyReserved) {
			// A concurrent delivery for the same payment is already issuing;
			// its result serves this delivery too.
			s.logger.InfoContext(ctx, "duplicate delivery, issuance in flight", "payment_id", event.PaymentID, "event_id", event.ID)
			return true, nil
		}
		s.alertIssuanceFailure(ctx, event, err)
		return true, err
	}

	s.logger.InfoContext(ctx, "invite issued", "payment_id", event.PaymentID, "event_id", event.ID)
	return true, nil
}

func (s *issuanceService) Status(ctx context.Context, paymentID string) (*domain.InviteRecord, error) {
	if paymentID == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.ledger.Get(ctx, paymentID)
}

func (s *issuanceService) EnsureInvite(ctx context.Context, paymentID string) (*domain.InviteRecord, error) {
	if paymentID == "" {
		return nil, domain.ErrInvalidInput
	}

	if rec, err := s.ledger.Get(ctx, paymentID); err == nil {
		return rec, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("ledger lookup: %w", err)
	}

	// No entry: the webhook was missed or has not arrived. Ask the provider
	// for the payment's current state before issuing anything.
	status, err := s.provider.IntentStatus(ctx, paymentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("verify payment %s: %w", paymentID, err)
	}
	if status != domain.PaymentStatusSucceeded {
		return nil, &domain.PaymentPendingError{Status: status}
	}

	s.logger.InfoContext(ctx, "payment verified via healing path, issuing invite", "payment_id", paymentID)
	rec, err := s.issue(ctx, paymentID)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyReserved) {
			return nil, &domain.PaymentPendingError{Status: domain.PaymentStatusSucceeded}
		}
		return nil, err
	}
	return rec, nil
}

func (s *issuanceService) CreatePayment(ctx context.Context, amount int64, currency string) (*domain.PaymentIntentRef, error) {
	if amount <= 0 || currency == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.provider.CreateIntent(ctx, amount, currency)
}

// issue performs one at-most-once issuance round: claim the ledger key,
// create the link, commit. An existing record short-circuits, which is what
// makes provider retries idempotent.
func (s *issuanceService) issue(ctx context.Context, paymentID string) (*domain.InviteRecord, error) {
	existing, err := s.ledger.Reserve(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	link, err := s.group.CreateInviteLink(ctx, s.ttl)
	if err != nil {
		s.ledger.Release(ctx, paymentID)
		return nil, fmt.Errorf("issue invite for payment %s: %w", paymentID, err)
	}

	rec, err := s.ledger.Commit(ctx, paymentID, link)
	if err != nil {
		return nil, fmt.Errorf("store invite for payment %s: %w", paymentID, err)
	}
	return rec, nil
}

func (s *issuanceService) alertIssuanceFailure(ctx context.Context, event *domain.PaymentEvent, cause error) {
	s.logger.ErrorContext(ctx, "invite issuance failed", "payment_id", event.PaymentID, "event_id", event.ID, "err", cause)
	if s.alerts == nil {
		return
	}
	data := &domain.IssuanceFailureAlertData{
		PaymentID: event.PaymentID,
		EventType: event.Type,
		Reason:    cause.Error(),
	}
	if err := s.alerts.SendIssuanceFailure(ctx, data); err != nil {
		s.logger.ErrorContext(ctx, "issuance failure alert not sent", "payment_id", event.PaymentID, "err", err)
	}
}
