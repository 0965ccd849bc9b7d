package controllers

import (
	"io"
	"log/slog"
	"net/http"

	"grouppass/internal/delivery/http/helpers"
	"grouppass/internal/domain"
)

// maxWebhookBody bounds webhook payload reads. Stripe events are a few KB;
// anything near this limit is not a real event.
const maxWebhookBody = 1 << 20

type WebhookController struct {
	Logger   *slog.Logger
	Verifier domain.WebhookVerifier
	Service  domain.IssuanceService
}

func NewWebhookController(logger *slog.Logger, verifier domain.WebhookVerifier, svc domain.IssuanceService) *WebhookController {
	return &WebhookController{
		Logger:   logger,
		Verifier: verifier,
		Service:  svc,
	}
}

// WebhookAckResponse is the acknowledgment body for POST /webhook/stripe.
// Status is "success" for issuance-triggering events and "received" otherwise.
// swagger:model WebhookAckResponse
type WebhookAckResponse struct {
	Status string `json:"status"`
}

// HandleStripeWebhook godoc
// @Summary Receive Stripe webhook events
// @Description Verifies the Stripe-Signature header and, for successful-payment events, issues a single-use group invite link keyed by the payment id. The event is acknowledged as soon as it verifies; issuance failures are logged and alerted, not surfaced to Stripe.
// @Tags webhook
// @Accept json
// @Produce json
// @Param Stripe-Signature header string true "Stripe webhook signature"
// @Success 200 {object} controllers.WebhookAckResponse
// @Failure 400 {object} helpers.ErrorResponse "invalid payload or signature"
// @Router /webhook/stripe [post]
func (c *WebhookController) HandleStripeWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		helpers.WriteError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	// Verification is the trust boundary: nothing below runs on an
	// unverified body.
	event, err := c.Verifier.Verify(payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		c.Logger.WarnContext(r.Context(), "webhook rejected", "err", err)
		helpers.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	handled, err := c.Service.HandleEvent(r.Context(), event)
	if err != nil {
		// Stripe retries on non-2xx; a failed issuance must not trigger a
		// retry storm. The service has already logged and alerted.
		c.Logger.ErrorContext(r.Context(), "event handling failed", "event_id", event.ID, "payment_id", event.PaymentID, "err", err)
	}

	status := "received"
	if handled {
		status = "success"
	}
	helpers.WriteJSON(w, http.StatusOK, WebhookAckResponse{Status: status})
}
