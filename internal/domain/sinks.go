package domain

import (
	"context"
	"time"
)

// NotificationKind is the user-visible notification category.
type NotificationKind string

const (
	NotificationRegistrationApproved NotificationKind = "registration_approved"
	NotificationRegistrationRejected NotificationKind = "registration_rejected"
)

// Notification is an in-app message for a registrant.
// swagger:model Notification
type Notification struct {
	ID             string           `json:"id"`
	UserID         string           `json:"user_id"`
	EventID        string           `json:"event_id"`
	RegistrationID string           `json:"registration_id"`
	Kind           NotificationKind `json:"kind"`
	Message        string           `json:"message"`
	CreatedAt      time.Time        `json:"created_at"`
}

// NotificationSink delivers registrant notifications.
type NotificationSink interface {
	Notify(ctx context.Context, n *Notification) error
}

// EmailSink sends registration decision emails for a status change.
type EmailSink interface {
	SendDecision(ctx context.Context, change StatusChange) error
}

// AuditAction names the recorded domain event.
type AuditAction string

const (
	AuditStatusChanged  AuditAction = "registration_status_changed"
	AuditPaymentClaimed AuditAction = "scan_payment_claimed"
	AuditPaymentSettled AuditAction = "registration_payment_settled"
)

// AuditRecord is the domain event emitted for every committed change.
type AuditRecord struct {
	Action AuditAction  `json:"action"`
	Change StatusChange `json:"change"`
}

// AuditSink records audit events.
type AuditSink interface {
	Record(ctx context.Context, rec AuditRecord) error
}
