package controllers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"eventregistration/internal/delivery/http/helpers"
	"eventregistration/internal/delivery/http/middleware"
	"eventregistration/internal/domain"
)

// RegistrationWindowRequest is the request body for PATCH /events/{eventID}/registration-window.
type RegistrationWindowRequest struct {
	Open *bool `json:"open" validate:"required"`
}

// CapacitySuccessResponse is the envelope for capacity endpoints.
type CapacitySuccessResponse struct {
	Data  *domain.EventCapacity `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

// ListRegistrationsResponse is the data for GET /events/{eventID}/registrations.
type ListRegistrationsResponse struct {
	Registrations []*domain.Registration `json:"registrations"`
	Meta          helpers.PaginationMeta `json:"meta"`
}

// ListRegistrationsSuccessResponse is the envelope for GET /events/{eventID}/registrations.
type ListRegistrationsSuccessResponse struct {
	Data  ListRegistrationsResponse `json:"data"`
	Error *helpers.APIError         `json:"error"`
}

type CapacityController struct {
	Logger  *slog.Logger
	Service domain.CapacityService
}

func NewCapacityController(logger *slog.Logger, svc domain.CapacityService) *CapacityController {
	return &CapacityController{
		Logger:  logger,
		Service: svc,
	}
}

// GetCapacity godoc
// @Summary Get event capacity
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.CapacitySuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/capacity [get]
func (c *CapacityController) GetCapacity(w http.ResponseWriter, r *http.Request) {
	capacity, err := c.Service.GetCapacity(r.Context(), chi.URLParam(r, "eventID"))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, capacity)
}

// SetRegistrationWindow godoc
// @Summary Open or close registration
// @Description Event owner or admin closes or reopens registration. Closing does not change the number of approved registrations.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body RegistrationWindowRequest true "Window state"
// @Success 200 {object} controllers.CapacitySuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/registration-window [patch]
func (c *CapacityController) SetRegistrationWindow(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req RegistrationWindowRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	capacity, err := c.Service.SetRegistrationOpen(r.Context(), chi.URLParam(r, "eventID"), *req.Open, principal)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, capacity)
}

// ListRegistrations godoc
// @Summary List an event's registrations
// @Description Paginated, oldest first. Only the event owner or an admin may list.
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param status query string false "Filter by status (pending, approved, rejected)"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListRegistrationsSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/registrations [get]
func (c *CapacityController) ListRegistrations(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var filter domain.RegistrationFilter
	if s := r.URL.Query().Get("status"); s != "" {
		status := domain.RegistrationStatus(s)
		filter.Status = &status
	}
	params := helpers.ParsePagination(r)

	regs, total, err := c.Service.ListRegistrations(r.Context(), chi.URLParam(r, "eventID"), filter, params, principal)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListRegistrationsResponse{
		Registrations: regs,
		Meta:          helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}
