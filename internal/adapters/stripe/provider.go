package stripe

import (
	"context"
	"errors"
	"fmt"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"

	"grouppass/internal/domain"
)

// Provider implements domain.PaymentProvider against the Stripe API.
type Provider struct {
	sc *client.API
}

// NewProvider creates a Provider for the given secret API key. backends may be
// nil; tests pass custom backends to point the client at a fake server.
func NewProvider(apiKey string, backends *stripe.Backends) *Provider {
	sc := &client.API{}
	sc.Init(apiKey, backends)
	return &Provider{sc: sc}
}

func (p *Provider) CreateIntent(ctx context.Context, amount int64, currency string) (*domain.PaymentIntentRef, error) {
	params := &stripe.PaymentIntentParams{
		Params:   stripe.Params{Context: ctx},
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
	}
	intent, err := p.sc.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("create payment intent: %w", err)
	}
	return &domain.PaymentIntentRef{
		PaymentID:    intent.ID,
		ClientSecret: intent.ClientSecret,
	}, nil
}

func (p *Provider) IntentStatus(ctx context.Context, paymentID string) (string, error) {
	params := &stripe.PaymentIntentParams{Params: stripe.Params{Context: ctx}}
	intent, err := p.sc.PaymentIntents.Get(paymentID, params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Type == stripe.ErrorTypeInvalidRequest {
			return "", fmt.Errorf("%w: payment %s", domain.ErrNotFound, paymentID)
		}
		return "", fmt.Errorf("retrieve payment intent: %w", err)
	}
	return string(intent.Status), nil
}
