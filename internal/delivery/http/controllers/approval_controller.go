package controllers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"eventregistration/internal/delivery/http/helpers"
	"eventregistration/internal/delivery/http/middleware"
	"eventregistration/internal/domain"
)

// UpdateRegistrationStatusRequest is the request body for PATCH /registrations/{registrationID}.
type UpdateRegistrationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved rejected"`
}

// TransitionSuccessResponse is the envelope for PATCH /registrations/{registrationID}.
type TransitionSuccessResponse struct {
	Data  *domain.TransitionResult `json:"data"`
	Error *helpers.APIError        `json:"error"`
}

type ApprovalController struct {
	Logger  *slog.Logger
	Service domain.ApprovalService
}

func NewApprovalController(logger *slog.Logger, svc domain.ApprovalService) *ApprovalController {
	return &ApprovalController{
		Logger:  logger,
		Service: svc,
	}
}

// UpdateRegistrationStatus godoc
// @Summary Change a registration's approval status
// @Description Event owner or admin moves a registration between pending, approved and rejected. Approving consumes one seat, leaving approved frees it. Approving a priced registration that is not paid yet returns payment_required=true and confirmation=awaiting_payment.
// @Tags registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param registrationID path string true "Registration ID"
// @Param body body UpdateRegistrationStatusRequest true "New status"
// @Success 200 {object} controllers.TransitionSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request, event_full"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /registrations/{registrationID} [patch]
func (c *ApprovalController) UpdateRegistrationStatus(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req UpdateRegistrationStatusRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	result, err := c.Service.SetStatus(r.Context(), chi.URLParam(r, "registrationID"), domain.RegistrationStatus(req.Status), principal)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}
