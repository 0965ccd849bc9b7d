package domain

import (
	"context"
	"fmt"
)

// Webhook event types that trigger invite issuance. Any other type is
// acknowledged and ignored.
const (
	EventPaymentSucceeded  = "payment_intent.succeeded"
	EventCheckoutCompleted = "checkout.session.completed"
)

// PaymentStatusSucceeded is the provider status under which an invite may be
// issued.
const PaymentStatusSucceeded = "succeeded"

// PaymentEvent is a verified webhook event reduced to the attributes this
// system consumes. PaymentID is populated for the issuance-triggering event
// types (the intent id, or the session's payment_intent for checkout flows)
// and empty otherwise.
type PaymentEvent struct {
	ID        string
	Type      string
	PaymentID string
}

// PaymentIntentRef identifies a freshly created payment on the provider side.
// swagger:model PaymentIntentRef
type PaymentIntentRef struct {
	PaymentID    string `json:"payment_id"`
	ClientSecret string `json:"client_secret"`
}

// WebhookVerifier authenticates raw webhook bodies against the provider's
// signing scheme. Verification must run exactly once per inbound request,
// before any side effect; the returned event is the only trusted view of the
// body.
type WebhookVerifier interface {
	Verify(payload []byte, signatureHeader string) (*PaymentEvent, error)
}

// PaymentProvider defines the payment-provider operations used outside of
// webhook delivery (infrastructure port).
type PaymentProvider interface {
	// CreateIntent creates a payment intent for the given amount in the
	// smallest currency unit.
	CreateIntent(ctx context.Context, amount int64, currency string) (*PaymentIntentRef, error)

	// IntentStatus returns the provider's current status for the payment, or
	// ErrNotFound when the provider has no record of the identifier.
	IntentStatus(ctx context.Context, paymentID string) (string, error)
}

// PaymentPendingError reports that a payment exists but has not reached the
// succeeded status yet. It is a wait state, not a failure.
type PaymentPendingError struct {
	Status string
}

func (e *PaymentPendingError) Error() string {
	return fmt.Sprintf("payment not yet succeeded (status %s)", e.Status)
}
