package domain

import "time"

// StatusChange is the payload carried by every side effect of a transition.
type StatusChange struct {
	RegistrationID string             `json:"registration_id"`
	EventID        string             `json:"event_id"`
	UserID         string             `json:"user_id"`
	OldStatus      RegistrationStatus `json:"old_status"`
	NewStatus      RegistrationStatus `json:"new_status"`
	ActorID        string             `json:"actor_id,omitempty"`
	OccurredAt     time.Time          `json:"occurred_at"`
}

// EffectKind names a side effect the dispatcher knows how to run.
type EffectKind string

const (
	EffectAudit              EffectKind = "audit"
	EffectNotifyApproved     EffectKind = "notify_approved"
	EffectNotifyRejected     EffectKind = "notify_rejected"
	EffectEmailApproved      EffectKind = "email_approved"
	EffectEmailRejected      EffectKind = "email_rejected"
	EffectAuditPaymentClaim  EffectKind = "audit_payment_claim"
	EffectAuditPaymentSettle EffectKind = "audit_payment_settled"
)

// Effect is one best-effort action to attempt after a committed change.
type Effect struct {
	Kind   EffectKind
	Change StatusChange
}

// TransitionPlan is the pure outcome of evaluating a status change request.
type TransitionPlan struct {
	NoOp            bool
	Transition      Transition
	PaymentRequired bool
}

// CapacityDelta returns the counter change implied by moving from one status to another.
func CapacityDelta(from, to RegistrationStatus) int {
	delta := 0
	if to == StatusApproved {
		delta++
	}
	if from == StatusApproved {
		delta--
	}
	return delta
}

// PlanTransition evaluates moving reg to status "to" on event. It performs no I/O.
func PlanTransition(reg *Registration, event *Event, to RegistrationStatus) (TransitionPlan, error) {
	if !to.Valid() {
		return TransitionPlan{}, InvalidInputf("unknown status %q", to)
	}
	paymentRequired := to == StatusApproved && event.IsPriced() && reg.PaymentStatus != PaymentPaid
	if reg.Status == to {
		return TransitionPlan{NoOp: true, PaymentRequired: paymentRequired}, nil
	}
	return TransitionPlan{
		Transition: Transition{
			RegistrationID: reg.ID,
			EventID:        reg.EventID,
			From:           reg.Status,
			To:             to,
			CapacityDelta:  CapacityDelta(reg.Status, to),
		},
		PaymentRequired: paymentRequired,
	}, nil
}

// Effects lists the side effects for a committed plan, in dispatch order.
// The audit effect comes first; approval notices are held back while payment is pending.
func (p TransitionPlan) Effects(reg *Registration, actorID string, at time.Time) []Effect {
	if p.NoOp {
		return nil
	}
	change := StatusChange{
		RegistrationID: reg.ID,
		EventID:        reg.EventID,
		UserID:         reg.UserID,
		OldStatus:      p.Transition.From,
		NewStatus:      p.Transition.To,
		ActorID:        actorID,
		OccurredAt:     at,
	}
	effects := []Effect{{Kind: EffectAudit, Change: change}}
	switch p.Transition.To {
	case StatusApproved:
		if !p.PaymentRequired {
			effects = append(effects,
				Effect{Kind: EffectNotifyApproved, Change: change},
				Effect{Kind: EffectEmailApproved, Change: change},
			)
		}
	case StatusRejected:
		effects = append(effects,
			Effect{Kind: EffectNotifyRejected, Change: change},
			Effect{Kind: EffectEmailRejected, Change: change},
		)
	}
	return effects
}

// SettlementEffects lists the effects for a payment that moved a registration from
// before to after. Approval notices skipped while awaiting payment are sent once here.
func SettlementEffects(before ConfirmationState, after *Registration, actorID string, at time.Time) []Effect {
	change := StatusChange{
		RegistrationID: after.ID,
		EventID:        after.EventID,
		UserID:         after.UserID,
		OldStatus:      after.Status,
		NewStatus:      after.Status,
		ActorID:        actorID,
		OccurredAt:     at,
	}
	effects := []Effect{{Kind: EffectAuditPaymentSettle, Change: change}}
	if before == ConfirmationAwaitingPayment && after.Confirmation() == ConfirmationConfirmed {
		effects = append(effects,
			Effect{Kind: EffectNotifyApproved, Change: change},
			Effect{Kind: EffectEmailApproved, Change: change},
		)
	}
	return effects
}

// TransitionResult is returned by the approval state machine.
// swagger:model TransitionResult
type TransitionResult struct {
	Registration    *Registration     `json:"registration"`
	PaymentRequired bool              `json:"payment_required"`
	Confirmation    ConfirmationState `json:"confirmation"`
	Changed         bool              `json:"changed"`
}
