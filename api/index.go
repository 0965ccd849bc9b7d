// Package handler is the serverless (function-per-invocation) entry point.
// It exposes the same issuance core as cmd/server behind a single catch-all
// function: the hosting platform routes every method and path here.
package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"grouppass/config"
	stripeadapter "grouppass/internal/adapters/stripe"
	"grouppass/internal/adapters/telegram"
	"grouppass/internal/delivery/http/controllers"
	"grouppass/internal/delivery/http/helpers"
	"grouppass/internal/repository/memory"
	"grouppass/internal/services"
)

// app wires the core once per cold start. The ledger lives as long as the
// instance stays warm; separate instances do not share it. Polling against an
// instance that never saw the webhook reports processing forever, which is
// the accepted trade-off of this deployment shape.
type app struct {
	router  chi.Router
	initErr error
}

var (
	appOnce   sync.Once
	cachedApp *app
)

func getApp() *app {
	appOnce.Do(func() {
		cachedApp = newApp()
	})
	return cachedApp
}

func newApp() *app {
	cfg, err := config.Load()
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		return &app{initErr: err}
	}

	logger := config.NewLogger()

	verifier := stripeadapter.NewVerifier(cfg.StripeWebhookSecret)
	provider := stripeadapter.NewProvider(cfg.StripeAPIKey, nil)
	group := telegram.NewClient(nil, cfg.TelegramBotToken, cfg.TelegramGroupID)

	ledger := memory.NewInviteLedger(cfg.InviteTTL)
	issuance := services.NewIssuanceService(ledger, group, provider, nil, cfg.InviteTTL, logger)
	recovery := services.NewRecoveryService(group, logger)

	webhookController := controllers.NewWebhookController(logger, verifier, issuance)
	statusController := controllers.NewStatusController(logger, issuance, nil)
	recoveryController := controllers.NewRecoveryController(logger, recovery)

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Stripe-Signature"},
		MaxAge:         300,
	}))

	r.Post("/*", dispatchPost(webhookController, recoveryController))
	r.Get("/*", statusFromPath(statusController))

	return &app{router: r}
}

// Handler is the function entry point.
func Handler(w http.ResponseWriter, r *http.Request) {
	a := getApp()
	if a.initErr != nil {
		helpers.WriteError(w, http.StatusInternalServerError, "configuration error: "+a.initErr.Error())
		return
	}
	a.router.ServeHTTP(w, r)
}

// dispatchPost routes POSTs by shape: signed bodies are webhook deliveries,
// unban requests carry an action field or an unban path segment.
func dispatchPost(webhook *controllers.WebhookController, recovery *controllers.RecoveryController) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Stripe-Signature") != "" {
			webhook.HandleStripeWebhook(w, r)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			helpers.WriteError(w, http.StatusBadRequest, "failed to read request body")
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))

		var probe struct {
			Action string `json:"action"`
		}
		_ = json.Unmarshal(body, &probe)
		if probe.Action == "unban" || strings.Contains(r.URL.Path, "unban") {
			recovery.Unban(w, r)
			return
		}

		helpers.WriteError(w, http.StatusBadRequest, "unrecognized request")
	}
}

// statusFromPath treats the trailing path segment as the payment id and
// performs the pure ledger read, except for the health-check segment. No
// healing happens in this deployment shape.
func statusFromPath(status *controllers.StatusController) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimSuffix(r.URL.Path, "/")
		paymentID := path[strings.LastIndex(path, "/")+1:]
		if paymentID == "" {
			helpers.WriteError(w, http.StatusBadRequest, "payment id is required")
			return
		}
		if paymentID == "health" {
			helpers.WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
			return
		}
		r.SetPathValue("paymentID", paymentID)
		status.CheckPaymentStatus(w, r)
	}
}
