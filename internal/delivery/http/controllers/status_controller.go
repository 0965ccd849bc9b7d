package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"

	"grouppass/internal/delivery/http/helpers"
	"grouppass/internal/delivery/http/views"
	"grouppass/internal/domain"
)

// paymentIDRegex bounds payment identifiers to a single token of
// alphanumerics and underscores. Anything else gets the not-found treatment
// before we talk to the provider.
var paymentIDRegex = regexp.MustCompile(`^[A-Za-z0-9_]{1,255}$`)

type StatusController struct {
	Logger   *slog.Logger
	Service  domain.IssuanceService
	Renderer *views.Renderer
}

func NewStatusController(logger *slog.Logger, svc domain.IssuanceService, renderer *views.Renderer) *StatusController {
	return &StatusController{
		Logger:   logger,
		Service:  svc,
		Renderer: renderer,
	}
}

// PaymentStatusResponse is the polling body for GET /check-payment-status/{paymentID}.
// swagger:model PaymentStatusResponse
type PaymentStatusResponse struct {
	Status     string `json:"status"`
	InviteLink string `json:"invite_link,omitempty"`
}

// CheckPaymentStatus godoc
// @Summary Poll for the invite link
// @Description Pure ledger read: 200 with the invite link once the webhook has issued it, 202 while it has not. This endpoint never re-checks the payment with Stripe.
// @Tags payment
// @Produce json
// @Param paymentID path string true "Payment intent ID"
// @Success 200 {object} controllers.PaymentStatusResponse "status: ready"
// @Success 202 {object} controllers.PaymentStatusResponse "status: processing"
// @Router /check-payment-status/{paymentID} [get]
func (c *StatusController) CheckPaymentStatus(w http.ResponseWriter, r *http.Request) {
	paymentID := r.PathValue("paymentID")

	rec, err := c.Service.Status(r.Context(), paymentID)
	if err != nil {
		helpers.WriteJSON(w, http.StatusAccepted, PaymentStatusResponse{Status: "processing"})
		return
	}
	helpers.WriteJSON(w, http.StatusOK, PaymentStatusResponse{Status: "ready", InviteLink: rec.Link})
}

// PaymentSuccess godoc
// @Summary Payment success page
// @Description Renders the page with the group invite link. When no link is cached yet it re-verifies the payment with Stripe and issues one (healing path): 404 for unknown payments, 202 while the payment has not succeeded, 500 when issuance fails.
// @Tags payment
// @Produce html
// @Param paymentID path string true "Payment intent ID"
// @Success 200 {string} string "success page"
// @Success 202 {string} string "processing page"
// @Failure 404 {string} string "not-found page"
// @Failure 500 {string} string "error page"
// @Router /payment-success/{paymentID} [get]
func (c *StatusController) PaymentSuccess(w http.ResponseWriter, r *http.Request) {
	paymentID := r.PathValue("paymentID")
	if !paymentIDRegex.MatchString(paymentID) {
		c.Renderer.Render(w, http.StatusNotFound, views.PageNotFound, views.PageData{PaymentID: paymentID})
		return
	}

	rec, err := c.Service.EnsureInvite(r.Context(), paymentID)
	if err != nil {
		var pending *domain.PaymentPendingError
		switch {
		case errors.Is(err, domain.ErrNotFound):
			c.Logger.WarnContext(r.Context(), "unknown payment id", "payment_id", paymentID)
			c.Renderer.Render(w, http.StatusNotFound, views.PageNotFound, views.PageData{PaymentID: paymentID})
		case errors.As(err, &pending):
			c.Renderer.Render(w, http.StatusAccepted, views.PageProcessing, views.PageData{
				PaymentID: paymentID,
				Status:    pending.Status,
			})
		default:
			c.Logger.ErrorContext(r.Context(), "healing path failed", "payment_id", paymentID, "err", err)
			c.Renderer.Render(w, http.StatusInternalServerError, views.PageError, views.PageData{
				PaymentID: paymentID,
				Error:     err.Error(),
			})
		}
		return
	}

	c.Renderer.Render(w, http.StatusOK, views.PageSuccess, views.PageData{
		PaymentID:  paymentID,
		InviteLink: rec.Link,
	})
}
