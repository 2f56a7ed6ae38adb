package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventregistration/internal/domain"
	"eventregistration/internal/platform/metrics"
)

// maxTransitionAttempts bounds re-reads after a concurrent status change.
const maxTransitionAttempts = 3

type approvalService struct {
	eventRepo        domain.EventRepository
	registrationRepo domain.RegistrationRepository
	dispatcher       *Dispatcher
	metrics          *metrics.Metrics
	contextTimeout   time.Duration
}

func NewApprovalService(
	eventRepo domain.EventRepository,
	registrationRepo domain.RegistrationRepository,
	dispatcher *Dispatcher,
	m *metrics.Metrics,
	timeout time.Duration,
) domain.ApprovalService {
	return &approvalService{
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		dispatcher:       dispatcher,
		metrics:          m,
		contextTimeout:   timeout,
	}
}

func (s *approvalService) SetStatus(ctx context.Context, registrationID string, status domain.RegistrationStatus, actor domain.Principal) (*domain.TransitionResult, error) {
	if err := validateRegistrationID(registrationID); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, domain.InvalidInputf("unknown status %q", status)
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	for range maxTransitionAttempts {
		reg, event, err := s.load(ctx, registrationID)
		if err != nil {
			return nil, err
		}
		if !actor.CanManage(event) {
			return nil, domain.ErrForbidden
		}

		plan, err := domain.PlanTransition(reg, event, status)
		if err != nil {
			return nil, err
		}
		if plan.NoOp {
			return &domain.TransitionResult{
				Registration:    reg,
				PaymentRequired: plan.PaymentRequired,
				Confirmation:    reg.Confirmation(),
			}, nil
		}

		updated, err := s.registrationRepo.ApplyTransition(ctx, plan.Transition)
		if errors.Is(err, domain.ErrStaleTransition) {
			continue
		}
		if err != nil {
			if errors.Is(err, domain.ErrEventFull) {
				return nil, domain.ErrEventFull
			}
			return nil, fmt.Errorf("apply transition: %w", err)
		}

		s.metrics.IncTransition(string(plan.Transition.From), string(plan.Transition.To))
		s.dispatcher.Dispatch(ctx, plan.Effects(updated, actor.UserID, time.Now().UTC()))
		return &domain.TransitionResult{
			Registration:    updated,
			PaymentRequired: plan.PaymentRequired,
			Confirmation:    updated.Confirmation(),
			Changed:         true,
		}, nil
	}
	return nil, domain.ErrStaleTransition
}

func (s *approvalService) load(ctx context.Context, registrationID string) (*domain.Registration, *domain.Event, error) {
	reg, err := s.registrationRepo.GetByID(ctx, registrationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("get registration: %w", err)
	}
	event, err := s.eventRepo.GetByID(ctx, reg.EventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("get event: %w", err)
	}
	return reg, event, nil
}
