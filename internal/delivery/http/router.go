package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "grouppass/docs"
	"grouppass/internal/delivery/http/controllers"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(
	webhookController *controllers.WebhookController,
	paymentController *controllers.PaymentController,
	statusController *controllers.StatusController,
	recoveryController *controllers.RecoveryController,
) *http.ServeMux {
	mux := http.NewServeMux()

	// Provider-facing
	mux.HandleFunc("POST /webhook/stripe", webhookController.HandleStripeWebhook)

	// Client-facing
	mux.HandleFunc("POST /create-payment-intent", paymentController.CreatePaymentIntent)
	mux.HandleFunc("GET /payment-success/{paymentID}", statusController.PaymentSuccess)
	mux.HandleFunc("GET /check-payment-status/{paymentID}", statusController.CheckPaymentStatus)

	// Operator-facing
	mux.HandleFunc("POST /recover", recoveryController.Unban)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
