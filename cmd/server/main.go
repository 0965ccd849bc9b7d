package main

import (
	"log"
	"net/http"

	"grouppass/config"
	"grouppass/internal/adapters/email"
	stripeadapter "grouppass/internal/adapters/stripe"
	"grouppass/internal/adapters/telegram"
	deliveryhttp "grouppass/internal/delivery/http"
	"grouppass/internal/delivery/http/controllers"
	"grouppass/internal/delivery/http/middleware"
	"grouppass/internal/delivery/http/views"
	"grouppass/internal/repository/memory"
	"grouppass/internal/services"
)

// @title grouppass API
// @version 1.0
// @description Bridges Stripe payment webhooks to single-use Telegram group invite links.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := config.NewLogger()

	// Adapters
	verifier := stripeadapter.NewVerifier(cfg.StripeWebhookSecret)
	provider := stripeadapter.NewProvider(cfg.StripeAPIKey, nil)
	group := telegram.NewClient(nil, cfg.TelegramBotToken, cfg.TelegramGroupID)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.Email.SES.Region,
			AccessKeyID:        cfg.Email.SES.AccessKeyID,
			SecretAccessKey:    cfg.Email.SES.SecretAccessKey,
			InsecureSkipVerify: cfg.Email.SES.InsecureSkipVerify,
		},
	})
	if err != nil {
		log.Fatalf("init mailer: %v", err)
	}

	// Services
	ledger := memory.NewInviteLedger(cfg.InviteTTL)
	alerts := services.NewAlertService(mailer, email.NewTemplateRenderer(), cfg.Email.AlertTo, logger)
	issuance := services.NewIssuanceService(ledger, group, provider, alerts, cfg.InviteTTL, logger)
	recovery := services.NewRecoveryService(group, logger)

	// Controllers
	renderer := views.NewRenderer(logger)
	webhookController := controllers.NewWebhookController(logger, verifier, issuance)
	paymentController := controllers.NewPaymentController(logger, issuance)
	statusController := controllers.NewStatusController(logger, issuance, renderer)
	recoveryController := controllers.NewRecoveryController(logger, recovery)

	mux := deliveryhttp.NewRouter(webhookController, paymentController, statusController, recoveryController)

	handler := middleware.CORS(cfg.CORSAllowedOrigins,
		middleware.LoggingMiddleware(logger, mux))

	addr := ":" + cfg.Port
	logger.Info("server listening", "addr", addr, "env", cfg.Environment)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("server: %v", err)
	}
}
