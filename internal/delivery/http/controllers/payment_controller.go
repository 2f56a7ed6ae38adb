package controllers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"eventregistration/internal/delivery/http/helpers"
	"eventregistration/internal/delivery/http/middleware"
	"eventregistration/internal/domain"
)

// VerifyPaymentRequest is the request body for POST /payments/verify.
type VerifyPaymentRequest struct {
	SessionID string `json:"session_id" validate:"required"`
}

type PaymentController struct {
	Logger  *slog.Logger
	Service domain.ReconciliationService
}

func NewPaymentController(logger *slog.Logger, svc domain.ReconciliationService) *PaymentController {
	return &PaymentController{
		Logger:  logger,
		Service: svc,
	}
}

// VerifyPayment godoc
// @Summary Verify a hosted checkout payment
// @Description Looks the session up with the payment provider and, when settled, creates or updates the caller's registration as paid. The registration status is not changed. Safe to repeat.
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body VerifyPaymentRequest true "Checkout session"
// @Success 200 {object} controllers.RegistrationSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request, payment_not_settled, payment_metadata_missing"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 503 {object} helpers.APIResponse "error.code: payment_gateway_provider_unavailable"
// @Failure 504 {object} helpers.APIResponse "error.code: payment_gateway_timeout"
// @Router /payments/verify [post]
func (c *PaymentController) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req VerifyPaymentRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	reg, err := c.Service.Reconcile(r.Context(), req.SessionID, principal.UserID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, reg)
}

// ConfirmManualPayment godoc
// @Summary Confirm a scan-to-pay payment
// @Description Event owner or admin marks the registration as paid after checking the transfer. Approved registrations become confirmed and the approval notice is sent.
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param registrationID path string true "Registration ID"
// @Success 200 {object} controllers.RegistrationSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /registrations/{registrationID}/payment-confirmations [post]
func (c *PaymentController) ConfirmManualPayment(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	reg, err := c.Service.ConfirmManualPayment(r.Context(), chi.URLParam(r, "registrationID"), principal)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, reg)
}
