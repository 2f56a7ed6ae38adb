package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by repositories and services. Controllers translate
// them into HTTP status codes with errors.Is / errors.As.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrClosed       = errors.New("registration not accepted")

	// ErrSessionNotFound is returned when the payment provider has no record of a session.
	ErrSessionNotFound = fmt.Errorf("payment session %w", ErrNotFound)

	// ErrEventFull is returned when current registrations have reached the limit.
	ErrEventFull = fmt.Errorf("event is full: %w", ErrClosed)
	// ErrRegistrationClosed is returned when the event owner closed registration manually.
	ErrRegistrationClosed = fmt.Errorf("registration is closed: %w", ErrClosed)

	// ErrDuplicateRegistration is returned by RegistrationRepository.Create when the
	// (event_id, user_id) uniqueness constraint rejects the insert.
	ErrDuplicateRegistration = fmt.Errorf("registration already exists: %w", ErrConflict)

	// ErrStaleTransition is returned by RegistrationRepository.ApplyTransition when the
	// registration status no longer matches the expected "from" status.
	ErrStaleTransition = fmt.Errorf("registration status changed concurrently: %w", ErrConflict)

	ErrPaymentNotSettled = errors.New("payment not settled")
	ErrMetadataMissing   = errors.New("payment session metadata missing event reference")
)

// InvalidInputf returns an ErrInvalidInput carrying a caller-facing detail message.
func InvalidInputf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// ConflictError reports that a registration already exists for the (event, user) pair.
// Existing is set whenever the service could load the stored record.
type ConflictError struct {
	Existing *Registration
}

func (e *ConflictError) Error() string {
	if e.Existing == nil {
		return "already registered for this event"
	}
	return fmt.Sprintf("already registered for this event (status: %s)", e.Existing.Status)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// GatewayErrorKind classifies payment provider failures.
type GatewayErrorKind string

const (
	GatewayInvalidRequest      GatewayErrorKind = "invalid_request"
	GatewayProviderUnavailable GatewayErrorKind = "provider_unavailable"
	GatewayAuthFailure         GatewayErrorKind = "auth_failure"
	GatewayRateLimited         GatewayErrorKind = "rate_limited"
	GatewayTimeout             GatewayErrorKind = "timeout"
)

var gatewayMessages = map[GatewayErrorKind]string{
	GatewayInvalidRequest:      "the payment request was rejected by the payment provider",
	GatewayProviderUnavailable: "the payment provider is currently unavailable, please try again later",
	GatewayAuthFailure:         "payment is temporarily unavailable for this event",
	GatewayRateLimited:         "too many payment attempts, please wait a moment and retry",
	GatewayTimeout:             "the payment provider did not respond in time, please try again",
}

// GatewayError wraps a payment provider failure. Err holds the raw provider error
// for logs; Message is the only text that may reach a client.
type GatewayError struct {
	Kind GatewayErrorKind
	Err  error
}

func NewGatewayError(kind GatewayErrorKind, err error) *GatewayError {
	return &GatewayError{Kind: kind, Err: err}
}

func (e *GatewayError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("payment gateway %s", e.Kind)
	}
	return fmt.Sprintf("payment gateway %s: %v", e.Kind, e.Err)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// Message returns the user-facing description for the error kind.
func (e *GatewayError) Message() string {
	if msg, ok := gatewayMessages[e.Kind]; ok {
		return msg
	}
	return gatewayMessages[GatewayProviderUnavailable]
}
