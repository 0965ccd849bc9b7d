package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"grouppass/internal/delivery/http/helpers"
	"grouppass/internal/domain"
)

type PaymentController struct {
	Logger  *slog.Logger
	Service domain.IssuanceService
}

func NewPaymentController(logger *slog.Logger, svc domain.IssuanceService) *PaymentController {
	return &PaymentController{
		Logger:  logger,
		Service: svc,
	}
}

// CreatePaymentIntentRequest is the request body for POST /create-payment-intent.
type CreatePaymentIntentRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// Validate implements helpers.Validator.
func (r *CreatePaymentIntentRequest) Validate() []string {
	var errs []string
	if r.Amount <= 0 {
		errs = append(errs, "amount must be a positive integer in the smallest currency unit")
	}
	if r.Currency == "" {
		errs = append(errs, "currency is required")
	}
	return errs
}

// CreatePaymentIntent godoc
// @Summary Create a payment intent
// @Description Creates a Stripe payment intent for the given amount and currency and returns the client secret the frontend confirms the payment with.
// @Tags payment
// @Accept json
// @Produce json
// @Param body body controllers.CreatePaymentIntentRequest true "Amount (smallest currency unit) and currency"
// @Success 200 {object} domain.PaymentIntentRef
// @Failure 400 {object} helpers.ErrorResponse
// @Router /create-payment-intent [post]
func (c *PaymentController) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	var req CreatePaymentIntentRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	ref, err := c.Service.CreatePayment(r.Context(), req.Amount, req.Currency)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "create payment intent failed", "err", err)
		helpers.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	helpers.WriteJSON(w, http.StatusOK, ref)
}
