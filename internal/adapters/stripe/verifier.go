package stripe

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v82/webhook"

	"grouppass/internal/domain"
)

// Verifier authenticates inbound webhook bodies with the endpoint's signing
// secret and reduces them to domain events.
type Verifier struct {
	signingSecret string
}

// NewVerifier returns a Verifier for the given webhook signing secret.
func NewVerifier(signingSecret string) *Verifier {
	return &Verifier{signingSecret: signingSecret}
}

// Verify checks the Stripe-Signature header against the payload (HMAC-SHA256
// with timestamp tolerance, via stripe-go) and parses the event. Signature
// mismatches wrap domain.ErrInvalidSignature; an unparsable body wraps
// domain.ErrInvalidPayload. A verified event that carries no payment intent
// id (a subscription-mode checkout session, say) is returned with an empty
// PaymentID; rejection is reserved for signature and parse failures.
func (v *Verifier) Verify(payload []byte, signatureHeader string) (*domain.PaymentEvent, error) {
	// Stripe sends whatever api_version the account is pinned to; that must
	// not fail events whose signature checks out.
	event, err := webhook.ConstructEventWithOptions(payload, signatureHeader, v.signingSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		if errors.Is(err, webhook.ErrNoValidSignature) ||
			errors.Is(err, webhook.ErrNotSigned) ||
			errors.Is(err, webhook.ErrTooOld) ||
			errors.Is(err, webhook.ErrInvalidHeader) {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSignature, err)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
	}

	evt := &domain.PaymentEvent{
		ID:   event.ID,
		Type: string(event.Type),
	}

	switch evt.Type {
	case domain.EventPaymentSucceeded:
		var obj struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(event.Data.Raw, &obj); err == nil {
			evt.PaymentID = obj.ID
		}
	case domain.EventCheckoutCompleted:
		evt.PaymentID = sessionPaymentIntentID(event.Data.Raw)
	}

	return evt, nil
}

// sessionPaymentIntentID extracts the payment intent id from a checkout
// session object. The field is a plain id string in webhook deliveries, an
// expanded object when the sender expanded it, and null for sessions with no
// payment intent at all (subscription and setup modes).
func sessionPaymentIntentID(raw json.RawMessage) string {
	var obj struct {
		PaymentIntent json.RawMessage `json:"payment_intent"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return ""
	}

	var id string
	if err := json.Unmarshal(obj.PaymentIntent, &id); err == nil {
		return id
	}
	var expanded struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(obj.PaymentIntent, &expanded); err == nil {
		return expanded.ID
	}
	return ""
}
