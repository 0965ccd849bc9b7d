package controllers

import (
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"grouppass/internal/delivery/http/views"
	"grouppass/internal/domain"
)

func newStatusController(svc *mockIssuanceService) *StatusController {
	logger := testLogger()
	return NewStatusController(logger, svc, views.NewRenderer(logger))
}

func getWithPathValue(t *testing.T, target, key, value string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.SetPathValue(key, value)
	return req
}

func TestCheckPaymentStatus_Processing(t *testing.T) {
	ctrl := newStatusController(&mockIssuanceService{})

	req := getWithPathValue(t, "/check-payment-status/pi_1", "paymentID", "pi_1")
	w := httptest.NewRecorder()
	ctrl.CheckPaymentStatus(w, req)

	if w.Code != http.StatusAccepted {
		t.Fatalf("expected status %d, got %d", http.StatusAccepted, w.Code)
	}
	var resp PaymentStatusResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Status != "processing" || resp.InviteLink != "" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestCheckPaymentStatus_Ready(t *testing.T) {
	rec := &domain.InviteRecord{PaymentID: "pi_1", Link: "https://t.me/+abc", CreatedAt: time.Now()}
	ctrl := newStatusController(&mockIssuanceService{record: rec})

	req := getWithPathValue(t, "/check-payment-status/pi_1", "paymentID", "pi_1")
	w := httptest.NewRecorder()
	ctrl.CheckPaymentStatus(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var resp PaymentStatusResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Status != "ready" || resp.InviteLink != "https://t.me/+abc" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestPaymentSuccess_RendersLink(t *testing.T) {
	rec := &domain.InviteRecord{PaymentID: "pi_1", Link: "https://t.me/+abc", CreatedAt: time.Now()}
	ctrl := newStatusController(&mockIssuanceService{ensureRec: rec})

	req := getWithPathValue(t, "/payment-success/pi_1", "paymentID", "pi_1")
	w := httptest.NewRecorder()
	ctrl.PaymentSuccess(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	// html/template escapes the + in the invite URL to &#43;.
	body := html.UnescapeString(w.Body.String())
	if !strings.Contains(body, "https://t.me/+abc") {
		t.Fatalf("success page must contain the invite link, got: %s", body)
	}
	if !strings.Contains(body, "pi_1") {
		t.Fatal("success page must show the payment id")
	}
}

func TestPaymentSuccess_UnknownPayment(t *testing.T) {
	ctrl := newStatusController(&mockIssuanceService{ensureErr: domain.ErrNotFound})

	req := getWithPathValue(t, "/payment-success/pi_missing", "paymentID", "pi_missing")
	w := httptest.NewRecorder()
	ctrl.PaymentSuccess(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}
	if !strings.Contains(w.Body.String(), "Payment Not Found") {
		t.Fatal("expected the not-found page")
	}
}

func TestPaymentSuccess_PendingEchoesStatus(t *testing.T) {
	ctrl := newStatusController(&mockIssuanceService{
		ensureErr: &domain.PaymentPendingError{Status: "requires_payment_method"},
	})

	req := getWithPathValue(t, "/payment-success/pi_1", "paymentID", "pi_1")
	w := httptest.NewRecorder()
	ctrl.PaymentSuccess(w, req)

	if w.Code != http.StatusAccepted {
		t.Fatalf("expected status %d, got %d", http.StatusAccepted, w.Code)
	}
	if !strings.Contains(w.Body.String(), "requires_payment_method") {
		t.Fatal("processing page must echo the provider status")
	}
}

func TestPaymentSuccess_IssuanceFailure(t *testing.T) {
	ctrl := newStatusController(&mockIssuanceService{
		ensureErr: fmt.Errorf("%w: Too Many Requests", domain.ErrInviteCreation),
	})

	req := getWithPathValue(t, "/payment-success/pi_1", "paymentID", "pi_1")
	w := httptest.NewRecorder()
	ctrl.PaymentSuccess(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}
	if !strings.Contains(w.Body.String(), "Too Many Requests") {
		t.Fatal("error page must include the error text")
	}
}

func TestPaymentSuccess_MalformedID(t *testing.T) {
	svc := &mockIssuanceService{ensureRec: &domain.InviteRecord{Link: "https://t.me/+abc"}}
	ctrl := newStatusController(svc)

	req := getWithPathValue(t, "/payment-success/bad%20id", "paymentID", "bad id")
	w := httptest.NewRecorder()
	ctrl.PaymentSuccess(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}
