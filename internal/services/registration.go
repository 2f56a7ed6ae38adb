package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"eventregistration/internal/domain"
	"eventregistration/internal/platform/metrics"
)

type registrationService struct {
	eventRepo        domain.EventRepository
	registrationRepo domain.RegistrationRepository
	checkout         domain.HostedCheckoutGateway
	scanToPay        domain.ScanToPayProvider
	dispatcher       *Dispatcher
	logger           *slog.Logger
	metrics          *metrics.Metrics
	contextTimeout   time.Duration
	gatewayTimeout   time.Duration
}

func NewRegistrationService(
	eventRepo domain.EventRepository,
	registrationRepo domain.RegistrationRepository,
	checkout domain.HostedCheckoutGateway,
	scanToPay domain.ScanToPayProvider,
	dispatcher *Dispatcher,
	logger *slog.Logger,
	m *metrics.Metrics,
	timeout, gatewayTimeout time.Duration,
) domain.RegistrationService {
	return &registrationService{
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		checkout:         checkout,
		scanToPay:        scanToPay,
		dispatcher:       dispatcher,
		logger:           logger,
		metrics:          m,
		contextTimeout:   timeout,
		gatewayTimeout:   gatewayTimeout,
	}
}

func validateEventID(eventID string) error {
	if _, err := uuid.Parse(eventID); err != nil {
		return domain.InvalidInputf("invalid event id %q", eventID)
	}
	return nil
}

func validateRegistrationID(registrationID string) error {
	if _, err := uuid.Parse(registrationID); err != nil {
		return domain.InvalidInputf("invalid registration id %q", registrationID)
	}
	return nil
}

// validateUserID rejects caller ids that cannot reference a stored user.
func validateUserID(userID string) error {
	if _, err := uuid.Parse(userID); err != nil {
		return domain.InvalidInputf("invalid user id %q", userID)
	}
	return nil
}

func (s *registrationService) getEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *registrationService) Register(ctx context.Context, eventID, userID string, method domain.PaymentMethod) (*domain.RegistrationOutcome, error) {
	if err := validateEventID(eventID); err != nil {
		return nil, err
	}
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	if _, err := domain.ParsePaymentMethod(string(method)); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.getEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	// Fast path only; the unique index decides under concurrency.
	if existing, err := s.registrationRepo.GetByEventAndUser(ctx, eventID, userID); err == nil {
		s.metrics.IncRegistration("conflict")
		return nil, &domain.ConflictError{Existing: existing}
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get registration: %w", err)
	}

	if err := event.AdmissionError(); err != nil {
		s.metrics.IncRegistration("closed")
		return nil, err
	}

	if !event.IsPriced() {
		reg := domain.NewRegistration(event.ID, userID, domain.PaymentMethodNone, domain.PaymentNotRequired, time.Now().UTC())
		if err := s.create(ctx, reg); err != nil {
			return nil, err
		}
		return &domain.RegistrationOutcome{Registration: reg}, nil
	}

	if method == domain.PaymentMethodScanToPay {
		return s.registerScanToPay(ctx, event, userID)
	}
	return s.openCheckout(ctx, event, userID)
}

func (s *registrationService) create(ctx context.Context, reg *domain.Registration) error {
	err := s.registrationRepo.Create(ctx, reg)
	if err == nil {
		s.metrics.IncRegistration("created")
		return nil
	}
	if errors.Is(err, domain.ErrDuplicateRegistration) {
		s.metrics.IncRegistration("conflict")
		existing, getErr := s.registrationRepo.GetByEventAndUser(ctx, reg.EventID, reg.UserID)
		if getErr != nil {
			existing = nil
		}
		return &domain.ConflictError{Existing: existing}
	}
	return fmt.Errorf("create registration: %w", err)
}

func (s *registrationService) registerScanToPay(ctx context.Context, event *domain.Event, userID string) (*domain.RegistrationOutcome, error) {
	if s.scanToPay == nil {
		return nil, domain.InvalidInputf("scan_to_pay is not available for this event")
	}
	asset, err := s.scanToPay.DisplayAsset(ctx, domain.ScanToPayRequest{
		EventID:  event.ID,
		UserID:   userID,
		Amount:   event.Price,
		Currency: event.Currency,
	})
	if err != nil {
		return nil, fmt.Errorf("generate display asset: %w", err)
	}

	reg := domain.NewRegistration(event.ID, userID, domain.PaymentMethodScanToPay, domain.PaymentUnpaid, time.Now().UTC())
	if err := s.create(ctx, reg); err != nil {
		return nil, err
	}
	return &domain.RegistrationOutcome{
		Registration: reg,
		Payment: &domain.PaymentInstruction{
			Method:       domain.PaymentMethodScanToPay,
			DisplayAsset: asset,
			Amount:       event.Price,
			Currency:     event.Currency,
		},
	}, nil
}

// openCheckout creates no registration; reconciliation does once the session settles.
func (s *registrationService) openCheckout(ctx context.Context, event *domain.Event, userID string) (*domain.RegistrationOutcome, error) {
	gctx, cancel := context.WithTimeout(ctx, s.gatewayTimeout)
	defer cancel()

	session, err := s.checkout.CreateSession(gctx, domain.CheckoutSessionRequest{
		EventID:   event.ID,
		UserID:    userID,
		EventName: event.Name,
		Amount:    event.Price,
		Currency:  event.Currency,
	})
	if err != nil {
		gerr := asGatewayError(gctx, err)
		s.metrics.IncRegistration("gateway_error")
		s.logger.Warn("create checkout session failed", "event_id", event.ID, "kind", gerr.Kind, "error", err)
		return nil, gerr
	}

	s.metrics.IncRegistration("checkout_opened")
	return &domain.RegistrationOutcome{
		Payment: &domain.PaymentInstruction{
			Method:     domain.PaymentMethodHostedCheckout,
			SessionID:  session.ID,
			SessionURL: session.RedirectURL,
			Amount:     event.Price,
			Currency:   event.Currency,
		},
	}, nil
}

// asGatewayError keeps an adapter's classification and maps anything else, a
// deadline in particular, onto a GatewayError.
func asGatewayError(ctx context.Context, err error) *domain.GatewayError {
	var gerr *domain.GatewayError
	if errors.As(err, &gerr) {
		return gerr
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return domain.NewGatewayError(domain.GatewayTimeout, err)
	}
	return domain.NewGatewayError(domain.GatewayProviderUnavailable, err)
}

func (s *registrationService) GetRegistrationStatus(ctx context.Context, eventID, userID string) (*domain.RegistrationStatusView, error) {
	if err := validateEventID(eventID); err != nil {
		return nil, err
	}
	if err := validateUserID(userID); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.getEvent(ctx, eventID); err != nil {
		return nil, err
	}
	reg, err := s.registrationRepo.GetByEventAndUser(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.RegistrationStatusView{Status: domain.NotRegistered}, nil
		}
		return nil, fmt.Errorf("get registration: %w", err)
	}
	return &domain.RegistrationStatusView{
		Status:        string(reg.Status),
		PaymentStatus: reg.PaymentStatus,
		Confirmation:  reg.Confirmation(),
		Registration:  reg,
	}, nil
}

const (
	claimRecordedMessage    = "Payment reported. The organizer will verify it before your registration is confirmed."
	claimAlreadyPaidMessage = "Payment for this registration is already confirmed."
)

// ClaimScanPayment records a registrant's own report of a scan-to-pay payment.
// It never changes payment status.
func (s *registrationService) ClaimScanPayment(ctx context.Context, registrationID, userID string) (*domain.PaymentClaimReceipt, error) {
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
	if reg.UserID != userID {
		return nil, domain.ErrForbidden
	}
	if reg.PaymentMethod != domain.PaymentMethodScanToPay {
		return nil, domain.InvalidInputf("registration does not use scan-to-pay")
	}
	if reg.PaymentStatus == domain.PaymentPaid {
		return &domain.PaymentClaimReceipt{Registration: reg, Message: claimAlreadyPaidMessage}, nil
	}

	s.dispatcher.Dispatch(ctx, []domain.Effect{{
		Kind: domain.EffectAuditPaymentClaim,
		Change: domain.StatusChange{
			RegistrationID: reg.ID,
			EventID:        reg.EventID,
			UserID:         reg.UserID,
			OldStatus:      reg.Status,
			NewStatus:      reg.Status,
			ActorID:        userID,
			OccurredAt:     time.Now().UTC(),
		},
	}})
	return &domain.PaymentClaimReceipt{Registration: reg, Message: claimRecordedMessage}, nil
}
