package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"grouppass/internal/delivery/http/controllers"
	"grouppass/internal/domain"
	"grouppass/internal/repository/memory"
)

type stubIssuance struct {
	ledger *memory.InviteLedger
}

func (s *stubIssuance) HandleEvent(ctx context.Context, event *domain.PaymentEvent) (bool, error) {
	return false, nil
}

func (s *stubIssuance) Status(ctx context.Context, paymentID string) (*domain.InviteRecord, error) {
	return s.ledger.Get(ctx, paymentID)
}

func (s *stubIssuance) EnsureInvite(ctx context.Context, paymentID string) (*domain.InviteRecord, error) {
	return nil, domain.ErrNotFound
}

func (s *stubIssuance) CreatePayment(ctx context.Context, amount int64, currency string) (*domain.PaymentIntentRef, error) {
	return nil, domain.ErrInvalidInput
}

type stubRecovery struct {
	calls int
}

func (s *stubRecovery) Unban(ctx context.Context, memberID int64) (*domain.UnbanResult, error) {
	s.calls++
	return &domain.UnbanResult{Success: true, Message: "user unbanned successfully"}, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testRouter(t *testing.T, ledger *memory.InviteLedger, recovery *stubRecovery) chi.Router {
	t.Helper()
	logger := discardLogger()
	issuance := &stubIssuance{ledger: ledger}

	statusController := controllers.NewStatusController(logger, issuance, nil)
	recoveryController := controllers.NewRecoveryController(logger, recovery)
	webhookController := controllers.NewWebhookController(logger, failVerifier{}, issuance)

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Stripe-Signature"},
	}))
	r.Post("/*", dispatchPost(webhookController, recoveryController))
	r.Get("/*", statusFromPath(statusController))
	return r
}

type failVerifier struct{}

func (failVerifier) Verify(payload []byte, sigHeader string) (*domain.PaymentEvent, error) {
	return nil, domain.ErrInvalidSignature
}

func TestHandler_PreflightSkipsBusinessLogic(t *testing.T) {
	recovery := &stubRecovery{}
	router := testRouter(t, memory.NewInviteLedger(time.Hour), recovery)

	req := httptest.NewRequest(http.MethodOptions, "/api/index", nil)
	req.Header.Set("Origin", "https://shop.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if recovery.calls != 0 {
		t.Fatal("preflight must not invoke business logic")
	}
	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Fatal("preflight must carry CORS headers")
	}
}

func TestHandler_UnbanAction(t *testing.T) {
	recovery := &stubRecovery{}
	router := testRouter(t, memory.NewInviteLedger(time.Hour), recovery)

	req := httptest.NewRequest(http.MethodPost, "/api/index", strings.NewReader(`{"action": "unban", "user_id": 42}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	if recovery.calls != 1 {
		t.Fatalf("expected one unban call, got %d", recovery.calls)
	}
}

func TestHandler_UnbanMissingUserID(t *testing.T) {
	recovery := &stubRecovery{}
	router := testRouter(t, memory.NewInviteLedger(time.Hour), recovery)

	req := httptest.NewRequest(http.MethodPost, "/api/unban", strings.NewReader(`{"action": "unban"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
	if recovery.calls != 0 {
		t.Fatal("no platform call may be made without user_id")
	}
}

func TestHandler_SignedBodyGoesToWebhook(t *testing.T) {
	router := testRouter(t, memory.NewInviteLedger(time.Hour), &stubRecovery{})

	req := httptest.NewRequest(http.MethodPost, "/api/index", strings.NewReader(`{}`))
	req.Header.Set("Stripe-Signature", "t=1,v1=bad")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected signature rejection 400, got %d", w.Code)
	}
}

func TestHandler_HealthCheck(t *testing.T) {
	router := testRouter(t, memory.NewInviteLedger(time.Hour), &stubRecovery{})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if !strings.Contains(w.Body.String(), "healthy") {
		t.Fatalf("unexpected health body: %s", w.Body.String())
	}
}

func TestHandler_StatusByTrailingSegment(t *testing.T) {
	ledger := memory.NewInviteLedger(time.Hour)
	router := testRouter(t, ledger, &stubRecovery{})

	// Not issued yet: processing, forever if no webhook arrives.
	req := httptest.NewRequest(http.MethodGet, "/api/payment-status/pi_1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusAccepted {
		t.Fatalf("expected status %d, got %d", http.StatusAccepted, w.Code)
	}

	ctx := context.Background()
	if _, err := ledger.Reserve(ctx, "pi_1"); err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if _, err := ledger.Commit(ctx, "pi_1", "https://t.me/+abc"); err != nil {
		t.Fatalf("commit: %v", err)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/payment-status/pi_1", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var resp controllers.PaymentStatusResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Status != "ready" || resp.InviteLink != "https://t.me/+abc" {
		t.Fatalf("unexpected response %+v", resp)
	}
}
