package domain

import "context"

// IssuanceService is the hosting-agnostic core of the payment-to-access
// protocol. Both the long-running server and the serverless adapter call into
// the same entry points.
type IssuanceService interface {
	// HandleEvent dispatches a verified webhook event. For the issuance
	// event types it creates and stores an invite link keyed by the payment
	// identifier; for anything else it is a no-op. handled reports whether
	// the event type was an issuance trigger, independent of the outcome.
	HandleEvent(ctx context.Context, event *PaymentEvent) (handled bool, err error)

	// Status is the pure polling read: the committed record, or ErrNotFound
	// when no link has been issued for the payment yet.
	Status(ctx context.Context, paymentID string) (*InviteRecord, error)

	// EnsureInvite is the healing entry point. It returns the cached record
	// when present; otherwise it re-checks the payment with the provider and,
	// if the payment succeeded, issues and stores a link. Returns ErrNotFound
	// for identifiers the provider does not know, and *PaymentPendingError
	// while the payment has not succeeded or issuance is in flight elsewhere.
	EnsureInvite(ctx context.Context, paymentID string) (*InviteRecord, error)

	// CreatePayment delegates intent creation to the provider.
	CreatePayment(ctx context.Context, amount int64, currency string) (*PaymentIntentRef, error)
}

// UnbanResult is the outcome of a membership recovery call. Platform-side
// rejections are reported here with the platform's own description, not as
// transport errors, so operators can diagnose them.
// swagger:model UnbanResult
type UnbanResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// RecoveryService lifts bans independently of the payment flow.
type RecoveryService interface {
	Unban(ctx context.Context, memberID int64) (*UnbanResult, error)
}
