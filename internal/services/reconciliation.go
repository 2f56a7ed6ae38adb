package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"eventregistration/internal/domain"
	"eventregistration/internal/platform/metrics"
)

type reconciliationService struct {
	eventRepo        domain.EventRepository
	registrationRepo domain.RegistrationRepository
	checkout         domain.HostedCheckoutGateway
	dispatcher       *Dispatcher
	logger           *slog.Logger
	metrics          *metrics.Metrics
	contextTimeout   time.Duration
	gatewayTimeout   time.Duration
	inflight         singleflight.Group
}

func NewReconciliationService(
	eventRepo domain.EventRepository,
	registrationRepo domain.RegistrationRepository,
	checkout domain.HostedCheckoutGateway,
	dispatcher *Dispatcher,
	logger *slog.Logger,
	m *metrics.Metrics,
	timeout, gatewayTimeout time.Duration,
) domain.ReconciliationService {
	return &reconciliationService{
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		checkout:         checkout,
		dispatcher:       dispatcher,
		logger:           logger,
		metrics:          m,
		contextTimeout:   timeout,
		gatewayTimeout:   gatewayTimeout,
	}
}

// Reconcile collapses concurrent calls for the same session and caller into one.
// The shared call is detached from any single caller's cancellation; each caller
// stops waiting when its own ctx ends.
func (s *reconciliationService) Reconcile(ctx context.Context, sessionID, userID string) (*domain.Registration, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, domain.InvalidInputf("session_id is required")
	}
	ch := s.inflight.DoChan(sessionID+"\x00"+userID, func() (any, error) {
		return s.reconcile(context.WithoutCancel(ctx), sessionID, userID)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		reg := *res.Val.(*domain.Registration)
		return &reg, nil
	}
}

func (s *reconciliationService) reconcile(ctx context.Context, sessionID, userID string) (*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	session, err := s.lookupSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.Paid {
		s.metrics.IncReconciliation("not_settled")
		return nil, domain.ErrPaymentNotSettled
	}
	md := session.Metadata
	if md.EventID == "" || md.UserID == "" {
		s.metrics.IncReconciliation("metadata_missing")
		s.logger.Error("settled payment session has no event reference", "session_id", sessionID)
		return nil, domain.ErrMetadataMissing
	}
	if md.UserID != userID {
		s.metrics.IncReconciliation("forbidden")
		return nil, domain.ErrForbidden
	}

	event, err := s.eventRepo.GetByID(ctx, md.EventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	now := time.Now().UTC()
	reg := domain.NewRegistration(event.ID, userID, domain.PaymentMethodHostedCheckout, domain.PaymentPaid, now)
	ref := session.ID
	reg.PaymentSessionRef = &ref
	prev, err := s.registrationRepo.UpsertPaid(ctx, reg)
	if err != nil {
		return nil, fmt.Errorf("upsert paid registration: %w", err)
	}

	if prev == domain.PaymentPaid {
		s.metrics.IncReconciliation("already_settled")
		return reg, nil
	}
	s.metrics.IncReconciliation("settled")
	s.dispatcher.Dispatch(ctx, domain.SettlementEffects(confirmationBefore(reg.Status, prev), reg, userID, now))
	return reg, nil
}

func (s *reconciliationService) lookupSession(ctx context.Context, sessionID string) (*domain.PaymentSession, error) {
	gctx, cancel := context.WithTimeout(ctx, s.gatewayTimeout)
	defer cancel()

	session, err := s.checkout.GetSession(gctx, sessionID)
	if err == nil {
		return session, nil
	}
	if errors.Is(err, domain.ErrNotFound) {
		s.metrics.IncReconciliation("session_not_found")
		return nil, domain.ErrSessionNotFound
	}
	gerr := asGatewayError(gctx, err)
	s.metrics.IncReconciliation("gateway_error")
	s.logger.Warn("get payment session failed", "session_id", sessionID, "kind", gerr.Kind, "error", err)
	return nil, gerr
}

// confirmationBefore derives the confirmation state a registration had before its
// payment status changed. Status is never touched by a payment write.
func confirmationBefore(status domain.RegistrationStatus, prev domain.PaymentStatus) domain.ConfirmationState {
	if prev == "" {
		return domain.ConfirmationNotStarted
	}
	return (&domain.Registration{Status: status, PaymentStatus: prev}).Confirmation()
}

// ConfirmManualPayment is the administrator's corroboration of a payment made
// outside hosted checkout, typically scan-to-pay.
func (s *reconciliationService) ConfirmManualPayment(ctx context.Context, registrationID string, actor domain.Principal) (*domain.Registration, error) {
	if err := validateRegistrationID(registrationID); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	reg, err := s.registrationRepo.GetByID(ctx, registrationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get registration: %w", err)
	}
	event, err := s.eventRepo.GetByID(ctx, reg.EventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if !actor.CanManage(event) {
		return nil, domain.ErrForbidden
	}
	if reg.PaymentStatus == domain.PaymentNotRequired {
		return nil, domain.InvalidInputf("registration does not require payment")
	}
	if reg.PaymentStatus == domain.PaymentPaid {
		return reg, nil
	}

	updated, prev, err := s.registrationRepo.MarkPaid(ctx, reg.ID)
	if err != nil {
		return nil, fmt.Errorf("mark registration paid: %w", err)
	}
	if prev != domain.PaymentPaid {
		s.metrics.IncReconciliation("manual_confirmed")
		s.dispatcher.Dispatch(ctx, domain.SettlementEffects(confirmationBefore(updated.Status, prev), updated, actor.UserID, time.Now().UTC()))
	}
	return updated, nil
}
