package domain

import "context"

// PaymentInstruction tells the client how to pay for a registration.
// swagger:model PaymentInstruction
type PaymentInstruction struct {
	Method       PaymentMethod `json:"payment_method"`
	SessionID    string        `json:"session_id,omitempty"`
	SessionURL   string        `json:"session_url,omitempty"`
	DisplayAsset *DisplayAsset `json:"display_asset,omitempty"`
	Amount       int64         `json:"amount"`
	Currency     string        `json:"currency"`
}

// RegistrationOutcome is the result of a registration attempt. Registration is nil
// for hosted checkout, where the record is created on settlement.
type RegistrationOutcome struct {
	Registration *Registration
	Payment      *PaymentInstruction
}

// NotRegistered is the status reported when no registration exists.
const NotRegistered = "not_registered"

// RegistrationStatusView is the caller's view of their registration for one event.
// swagger:model RegistrationStatusView
type RegistrationStatusView struct {
	Status        string            `json:"status"`
	PaymentStatus PaymentStatus     `json:"payment_status,omitempty"`
	Confirmation  ConfirmationState `json:"confirmation,omitempty"`
	Registration  *Registration     `json:"registration,omitempty"`
}

// PaymentClaimReceipt acknowledges a client-reported scan-to-pay completion.
// swagger:model PaymentClaimReceipt
type PaymentClaimReceipt struct {
	Registration *Registration `json:"registration"`
	Message      string        `json:"message"`
}

// RegistrationService admits registration attempts.
type RegistrationService interface {
	Register(ctx context.Context, eventID, userID string, method PaymentMethod) (*RegistrationOutcome, error)
	GetRegistrationStatus(ctx context.Context, eventID, userID string) (*RegistrationStatusView, error)
	ClaimScanPayment(ctx context.Context, registrationID, userID string) (*PaymentClaimReceipt, error)
}

// ReconciliationService matches settled payments back to registrations.
type ReconciliationService interface {
	Reconcile(ctx context.Context, sessionID, userID string) (*Registration, error)
	ConfirmManualPayment(ctx context.Context, registrationID string, actor Principal) (*Registration, error)
}

// ApprovalService drives the administrator approval state machine.
type ApprovalService interface {
	SetStatus(ctx context.Context, registrationID string, status RegistrationStatus, actor Principal) (*TransitionResult, error)
}

// CapacityService exposes and administers event capacity.
type CapacityService interface {
	GetCapacity(ctx context.Context, eventID string) (*EventCapacity, error)
	SetRegistrationOpen(ctx context.Context, eventID string, open bool, actor Principal) (*EventCapacity, error)
	ListRegistrations(ctx context.Context, eventID string, filter RegistrationFilter, p PaginationParams, actor Principal) ([]*Registration, int, error)
}
