package controllers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"eventregistration/internal/delivery/http/helpers"
	"eventregistration/internal/delivery/http/middleware"
	"eventregistration/internal/domain"
)

// RegisterRequest is the optional request body for POST /events/{eventID}/register.
// Omitting payment_method on a priced event selects hosted checkout.
type RegisterRequest struct {
	PaymentMethod string `json:"payment_method" validate:"omitempty,oneof=scan_to_pay hosted_checkout"`
}

// RegisterPaymentResponse is returned when the registration needs a payment step.
// Registration is set for scan-to-pay; hosted checkout creates it on settlement.
// swagger:model RegisterPaymentResponse
type RegisterPaymentResponse struct {
	PaymentMethod domain.PaymentMethod `json:"payment_method"`
	SessionID     string               `json:"session_id,omitempty"`
	SessionURL    string               `json:"session_url,omitempty"`
	DisplayAsset  *domain.DisplayAsset `json:"display_asset,omitempty"`
	Amount        int64                `json:"amount"`
	Currency      string               `json:"currency"`
	Registration  *domain.Registration `json:"registration,omitempty"`
}

// RegistrationSuccessResponse is the envelope for endpoints returning one registration.
type RegistrationSuccessResponse struct {
	Data  *domain.Registration `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// RegisterPaymentSuccessResponse is the envelope for a registration that needs payment (200).
type RegisterPaymentSuccessResponse struct {
	Data  RegisterPaymentResponse `json:"data"`
	Error *helpers.APIError       `json:"error"`
}

// RegistrationStatusSuccessResponse is the envelope for GET /events/{eventID}/registration-status.
type RegistrationStatusSuccessResponse struct {
	Data  *domain.RegistrationStatusView `json:"data"`
	Error *helpers.APIError              `json:"error"`
}

// PaymentClaimSuccessResponse is the envelope for POST /registrations/{registrationID}/payment-claims.
type PaymentClaimSuccessResponse struct {
	Data  *domain.PaymentClaimReceipt `json:"data"`
	Error *helpers.APIError           `json:"error"`
}

type RegistrationController struct {
	Logger  *slog.Logger
	Service domain.RegistrationService
}

func NewRegistrationController(logger *slog.Logger, svc domain.RegistrationService) *RegistrationController {
	return &RegistrationController{
		Logger:  logger,
		Service: svc,
	}
}

// Register godoc
// @Summary Register for an event
// @Description Registers the caller for the event. Free events return the pending registration (201). Priced events return payment instructions (200): a scannable asset with the pending registration for scan_to_pay, or a hosted checkout URL for hosted_checkout (the registration is created once the payment is verified).
// @Tags registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body RegisterRequest false "Requested payment method"
// @Success 201 {object} controllers.RegistrationSuccessResponse "Free event, registration created"
// @Success 200 {object} controllers.RegisterPaymentSuccessResponse "Payment step required"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request, event_full, registration_closed"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (details holds the existing registration)"
// @Failure 502 {object} helpers.APIResponse "error.code: payment_gateway_invalid_request, payment_gateway_auth_failure"
// @Failure 503 {object} helpers.APIResponse "error.code: payment_gateway_provider_unavailable"
// @Failure 504 {object} helpers.APIResponse "error.code: payment_gateway_timeout"
// @Router /events/{eventID}/register [post]
func (c *RegistrationController) Register(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req RegisterRequest
	if !helpers.DecodeOptional(w, r, &req) {
		return
	}
	method, err := domain.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}

	outcome, err := c.Service.Register(r.Context(), chi.URLParam(r, "eventID"), principal.UserID, method)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	if outcome.Payment == nil {
		helpers.WriteJSONSuccess(w, http.StatusCreated, outcome.Registration)
		return
	}
	p := outcome.Payment
	helpers.WriteJSONSuccess(w, http.StatusOK, RegisterPaymentResponse{
		PaymentMethod: p.Method,
		SessionID:     p.SessionID,
		SessionURL:    p.SessionURL,
		DisplayAsset:  p.DisplayAsset,
		Amount:        p.Amount,
		Currency:      p.Currency,
		Registration:  outcome.Registration,
	})
}

// GetRegistrationStatus godoc
// @Summary Get the caller's registration status for an event
// @Description Returns not_registered when no registration exists, otherwise the approval status, payment status and confirmation state.
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.RegistrationStatusSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/registration-status [get]
func (c *RegistrationController) GetRegistrationStatus(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	view, err := c.Service.GetRegistrationStatus(r.Context(), chi.URLParam(r, "eventID"), principal.UserID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, view)
}

// ClaimScanPayment godoc
// @Summary Report a completed scan-to-pay payment
// @Description Records the registrant's claim that the scan-to-pay transfer was made. The claim is advisory: payment status stays unpaid until an organizer confirms it.
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param registrationID path string true "Registration ID"
// @Success 200 {object} controllers.PaymentClaimSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /registrations/{registrationID}/payment-claims [post]
func (c *RegistrationController) ClaimScanPayment(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	receipt, err := c.Service.ClaimScanPayment(r.Context(), chi.URLParam(r, "registrationID"), principal.UserID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, receipt)
}
