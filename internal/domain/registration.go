package domain

import (
	"context"
	"time"
)

// RegistrationStatus is the administrator-driven approval status.
type RegistrationStatus string

const (
	StatusPending  RegistrationStatus = "pending"
	StatusApproved RegistrationStatus = "approved"
	StatusRejected RegistrationStatus = "rejected"
)

// Valid reports whether s is one of the known statuses.
func (s RegistrationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// PaymentMethod is the payment path chosen at registration time.
type PaymentMethod string

const (
	PaymentMethodNone           PaymentMethod = "none"
	PaymentMethodScanToPay      PaymentMethod = "scan_to_pay"
	PaymentMethodHostedCheckout PaymentMethod = "hosted_checkout"
)

// ParsePaymentMethod maps a requested method to a PaymentMethod. The empty string
// means "let the service decide" and is returned unchanged.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch m := PaymentMethod(s); m {
	case "", PaymentMethodScanToPay, PaymentMethodHostedCheckout:
		return m, nil
	}
	return "", InvalidInputf("unsupported payment_method %q", s)
}

// PaymentStatus tracks whether the registration has been paid for.
type PaymentStatus string

const (
	PaymentNotRequired PaymentStatus = "not_required"
	PaymentUnpaid      PaymentStatus = "unpaid"
	PaymentPaid        PaymentStatus = "paid"
)

// ConfirmationState is derived from (status, payment status) and tells callers
// whether an approval is final.
type ConfirmationState string

const (
	ConfirmationNotStarted      ConfirmationState = "not_started"
	ConfirmationAwaitingPayment ConfirmationState = "awaiting_payment"
	ConfirmationConfirmed       ConfirmationState = "confirmed"
)

// Registration is one user's registration for one event.
// swagger:model Registration
type Registration struct {
	ID                string             `json:"id"`
	EventID           string             `json:"event_id"`
	UserID            string             `json:"user_id"`
	Status            RegistrationStatus `json:"status"`
	PaymentMethod     PaymentMethod      `json:"payment_method"`
	PaymentStatus     PaymentStatus      `json:"payment_status"`
	PaymentSessionRef *string            `json:"payment_session_ref,omitempty"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

// NewRegistration returns a pending Registration. ID is set by the repository on create.
func NewRegistration(eventID, userID string, method PaymentMethod, paymentStatus PaymentStatus, now time.Time) *Registration {
	return &Registration{
		EventID:       eventID,
		UserID:        userID,
		Status:        StatusPending,
		PaymentMethod: method,
		PaymentStatus: paymentStatus,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// PaymentSatisfied reports whether no further payment is expected.
func (r *Registration) PaymentSatisfied() bool {
	return r.PaymentStatus == PaymentPaid || r.PaymentStatus == PaymentNotRequired
}

// Confirmation derives the two-phase approval state.
func (r *Registration) Confirmation() ConfirmationState {
	if r.Status != StatusApproved {
		return ConfirmationNotStarted
	}
	if !r.PaymentSatisfied() {
		return ConfirmationAwaitingPayment
	}
	return ConfirmationConfirmed
}

// Transition describes one committed status change for RegistrationRepository.ApplyTransition.
type Transition struct {
	RegistrationID string
	EventID        string
	From           RegistrationStatus
	To             RegistrationStatus
	CapacityDelta  int
}

// RegistrationFilter narrows ListByEvent.
type RegistrationFilter struct {
	Status *RegistrationStatus
}

// RegistrationRepository defines storage operations for registrations.
type RegistrationRepository interface {
	// Create inserts reg. It returns ErrDuplicateRegistration when the pair already exists.
	Create(ctx context.Context, reg *Registration) error
	GetByID(ctx context.Context, id string) (*Registration, error)
	GetByEventAndUser(ctx context.Context, eventID, userID string) (*Registration, error)
	// UpsertPaid creates a paid hosted-checkout registration or marks the existing one paid,
	// leaving its status untouched. reg is overwritten with the stored row. The returned
	// PaymentStatus is the value before the write, empty when the row was inserted.
	UpsertPaid(ctx context.Context, reg *Registration) (PaymentStatus, error)
	// MarkPaid sets payment_status=paid on an existing registration and returns the
	// stored row with the previous payment status.
	MarkPaid(ctx context.Context, id string) (*Registration, PaymentStatus, error)
	// ApplyTransition writes the status change and the capacity delta atomically.
	// Returns ErrStaleTransition when the stored status is no longer t.From and
	// ErrEventFull when a positive delta would exceed the registration limit.
	ApplyTransition(ctx context.Context, t Transition) (*Registration, error)
	ListByEvent(ctx context.Context, eventID string, filter RegistrationFilter, p PaginationParams) ([]*Registration, int, error)
}
