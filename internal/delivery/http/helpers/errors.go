package helpers

import (
	"errors"
	"log/slog"
	"net/http"

	"eventregistration/internal/domain"
)

// gatewayStatus maps a payment gateway failure kind to the HTTP status returned to clients.
var gatewayStatus = map[domain.GatewayErrorKind]int{
	domain.GatewayInvalidRequest:      http.StatusBadGateway,
	domain.GatewayAuthFailure:         http.StatusBadGateway,
	domain.GatewayProviderUnavailable: http.StatusServiceUnavailable,
	domain.GatewayRateLimited:         http.StatusTooManyRequests,
	domain.GatewayTimeout:             http.StatusGatewayTimeout,
}

// WriteServiceError translates a service error into the API envelope. Errors
// outside the domain taxonomy are logged and reported as a generic 500.
func WriteServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var conflict *domain.ConflictError
	var gerr *domain.GatewayError

	switch {
	case errors.As(err, &conflict):
		WriteJSONErrorDetails(w, http.StatusConflict, ErrCodeConflict, conflict.Error(), conflict.Existing)
	case errors.As(err, &gerr):
		status, ok := gatewayStatus[gerr.Kind]
		if !ok {
			status = http.StatusBadGateway
		}
		logger.WarnContext(r.Context(), "payment gateway error", "path", r.URL.Path, "method", r.Method, "kind", gerr.Kind, "err", err)
		WriteJSONError(w, status, ErrCodeGatewayPrefix+string(gerr.Kind), gerr.Message())
	case errors.Is(err, domain.ErrInvalidInput):
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrSessionNotFound):
		WriteJSONError(w, http.StatusNotFound, ErrCodeNotFound, "payment session not found")
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		WriteJSONError(w, http.StatusNotFound, ErrCodeNotFound, "not found")
	case errors.Is(err, domain.ErrForbidden):
		WriteJSONError(w, http.StatusForbidden, ErrCodeForbidden, "you are not allowed to perform this action")
	case errors.Is(err, domain.ErrEventFull):
		WriteJSONError(w, http.StatusBadRequest, ErrCodeEventFull, "event is full")
	case errors.Is(err, domain.ErrRegistrationClosed):
		WriteJSONError(w, http.StatusBadRequest, ErrCodeRegistrationClosed, "registration is closed")
	case errors.Is(err, domain.ErrConflict):
		WriteJSONError(w, http.StatusConflict, ErrCodeConflict, "the registration was changed by another request, please retry")
	case errors.Is(err, domain.ErrPaymentNotSettled):
		WriteJSONError(w, http.StatusBadRequest, ErrCodePaymentNotSettled, "payment has not been completed")
	case errors.Is(err, domain.ErrMetadataMissing):
		WriteJSONError(w, http.StatusBadRequest, ErrCodeMetadataMissing, "payment session does not reference an event")
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		WriteJSONError(w, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
	}
}
