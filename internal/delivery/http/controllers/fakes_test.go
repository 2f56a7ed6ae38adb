package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"eventregistration/internal/delivery/http/helpers"
	"eventregistration/internal/delivery/http/middleware"
	"eventregistration/internal/domain"
)

const testEventID = "6f1c2a3b-4d5e-4f60-8a9b-0c1d2e3f4a5b"

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// newRequest builds a request with chi URL params and, when principal has a
// user id, an authenticated context.
func newRequest(method, target, body string, principal domain.Principal, params map[string]string) *http.Request {
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rdr)
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	if principal.UserID != "" {
		ctx = middleware.SetPrincipal(ctx, principal)
	}
	return req.WithContext(ctx)
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, dest any) {
	t.Helper()
	var env struct {
		Data  json.RawMessage   `json:"data"`
		Error *helpers.APIError `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.Nil(t, env.Error)
	require.NoError(t, json.Unmarshal(env.Data, dest))
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) *helpers.APIError {
	t.Helper()
	var env helpers.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.NotNil(t, env.Error)
	return env.Error
}

type fakeRegistrationService struct {
	outcome *domain.RegistrationOutcome
	view    *domain.RegistrationStatusView
	receipt *domain.PaymentClaimReceipt
	err     error

	gotEventID string
	gotUserID  string
	gotMethod  domain.PaymentMethod
}

func (f *fakeRegistrationService) Register(_ context.Context, eventID, userID string, method domain.PaymentMethod) (*domain.RegistrationOutcome, error) {
	f.gotEventID, f.gotUserID, f.gotMethod = eventID, userID, method
	return f.outcome, f.err
}

func (f *fakeRegistrationService) GetRegistrationStatus(_ context.Context, eventID, userID string) (*domain.RegistrationStatusView, error) {
	f.gotEventID, f.gotUserID = eventID, userID
	return f.view, f.err
}

func (f *fakeRegistrationService) ClaimScanPayment(_ context.Context, registrationID, userID string) (*domain.PaymentClaimReceipt, error) {
	f.gotEventID, f.gotUserID = registrationID, userID
	return f.receipt, f.err
}

type fakeReconciliationService struct {
	reg *domain.Registration
	err error

	gotSessionID string
	gotUserID    string
	gotActor     domain.Principal
}

func (f *fakeReconciliationService) Reconcile(_ context.Context, sessionID, userID string) (*domain.Registration, error) {
	f.gotSessionID, f.gotUserID = sessionID, userID
	return f.reg, f.err
}

func (f *fakeReconciliationService) ConfirmManualPayment(_ context.Context, registrationID string, actor domain.Principal) (*domain.Registration, error) {
	f.gotSessionID, f.gotActor = registrationID, actor
	return f.reg, f.err
}

type fakeApprovalService struct {
	result *domain.TransitionResult
	err    error

	gotID     string
	gotStatus domain.RegistrationStatus
	gotActor  domain.Principal
}

func (f *fakeApprovalService) SetStatus(_ context.Context, registrationID string, status domain.RegistrationStatus, actor domain.Principal) (*domain.TransitionResult, error) {
	f.gotID, f.gotStatus, f.gotActor = registrationID, status, actor
	return f.result, f.err
}

type fakeCapacityService struct {
	capacity *domain.EventCapacity
	regs     []*domain.Registration
	total    int
	err      error

	gotOpen   bool
	gotFilter domain.RegistrationFilter
	gotPage   domain.PaginationParams
}

func (f *fakeCapacityService) GetCapacity(context.Context, string) (*domain.EventCapacity, error) {
	return f.capacity, f.err
}

func (f *fakeCapacityService) SetRegistrationOpen(_ context.Context, _ string, open bool, _ domain.Principal) (*domain.EventCapacity, error) {
	f.gotOpen = open
	return f.capacity, f.err
}

func (f *fakeCapacityService) ListRegistrations(_ context.Context, _ string, filter domain.RegistrationFilter, p domain.PaginationParams, _ domain.Principal) ([]*domain.Registration, int, error) {
	f.gotFilter, f.gotPage = filter, p
	return f.regs, f.total, f.err
}
