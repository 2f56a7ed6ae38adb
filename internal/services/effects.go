package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"eventregistration/internal/domain"
	"eventregistration/internal/platform/metrics"
)

// Dispatcher runs the side effects of a committed change. Every effect gets its own
// timeout on a context detached from the request; failures are logged and counted only.
type Dispatcher struct {
	notifier domain.NotificationSink
	emails   domain.EmailSink
	audit    domain.AuditSink
	timeout  time.Duration
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// NewDispatcher returns a Dispatcher. Any sink may be nil, in which case its effects are skipped.
func NewDispatcher(
	notifier domain.NotificationSink,
	emails domain.EmailSink,
	audit domain.AuditSink,
	timeout time.Duration,
	logger *slog.Logger,
	m *metrics.Metrics,
) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		notifier: notifier,
		emails:   emails,
		audit:    audit,
		timeout:  timeout,
		logger:   logger,
		metrics:  m,
	}
}

// Dispatch attempts each effect in order. It never returns an error.
func (d *Dispatcher) Dispatch(ctx context.Context, effects []domain.Effect) {
	if d == nil {
		return
	}
	base := context.WithoutCancel(ctx)
	for _, effect := range effects {
		if err := d.run(base, effect); err != nil {
			d.metrics.IncEffectFailure(string(effect.Kind))
			d.logger.Error("side effect failed",
				"effect", effect.Kind,
				"registration_id", effect.Change.RegistrationID,
				"event_id", effect.Change.EventID,
				"error", err,
			)
		}
	}
}

func (d *Dispatcher) run(base context.Context, effect domain.Effect) (err error) {
	ctx, cancel := context.WithTimeout(base, d.timeout)
	defer cancel()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", effect.Kind, r)
		}
	}()

	switch effect.Kind {
	case domain.EffectAudit:
		return d.record(ctx, domain.AuditStatusChanged, effect.Change)
	case domain.EffectAuditPaymentClaim:
		return d.record(ctx, domain.AuditPaymentClaimed, effect.Change)
	case domain.EffectAuditPaymentSettle:
		return d.record(ctx, domain.AuditPaymentSettled, effect.Change)
	case domain.EffectNotifyApproved:
		return d.notify(ctx, domain.NotificationRegistrationApproved, effect.Change)
	case domain.EffectNotifyRejected:
		return d.notify(ctx, domain.NotificationRegistrationRejected, effect.Change)
	case domain.EffectEmailApproved, domain.EffectEmailRejected:
		if d.emails == nil {
			return nil
		}
		return d.emails.SendDecision(ctx, effect.Change)
	default:
		return fmt.Errorf("unknown effect %q", effect.Kind)
	}
}

func (d *Dispatcher) record(ctx context.Context, action domain.AuditAction, change domain.StatusChange) error {
	if d.audit == nil {
		return nil
	}
	return d.audit.Record(ctx, domain.AuditRecord{Action: action, Change: change})
}

var notificationMessages = map[domain.NotificationKind]string{
	domain.NotificationRegistrationApproved: "Your registration has been approved. See you at the event!",
	domain.NotificationRegistrationRejected: "Your registration was not approved.",
}

func (d *Dispatcher) notify(ctx context.Context, kind domain.NotificationKind, change domain.StatusChange) error {
	if d.notifier == nil {
		return nil
	}
	return d.notifier.Notify(ctx, &domain.Notification{
		UserID:         change.UserID,
		EventID:        change.EventID,
		RegistrationID: change.RegistrationID,
		Kind:           kind,
		Message:        notificationMessages[kind],
		CreatedAt:      change.OccurredAt,
	})
}
