package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventregistration/internal/domain"
)

type capacityService struct {
	eventRepo        domain.EventRepository
	registrationRepo domain.RegistrationRepository
	contextTimeout   time.Duration
}

func NewCapacityService(eventRepo domain.EventRepository, registrationRepo domain.RegistrationRepository, timeout time.Duration) domain.CapacityService {
	return &capacityService{
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		contextTimeout:   timeout,
	}
}

func (s *capacityService) getEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	if err := validateEventID(eventID); err != nil {
		return nil, err
	}
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *capacityService) GetCapacity(ctx context.Context, eventID string) (*domain.EventCapacity, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.getEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return event.Capacity(), nil
}

// SetRegistrationOpen toggles the manual window. A full event stays closed after reopening.
func (s *capacityService) SetRegistrationOpen(ctx context.Context, eventID string, open bool, actor domain.Principal) (*domain.EventCapacity, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.getEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(event) {
		return nil, domain.ErrForbidden
	}
	updated, err := s.eventRepo.SetRegistrationClosed(ctx, eventID, !open)
	if err != nil {
		return nil, fmt.Errorf("set registration window: %w", err)
	}
	return updated.Capacity(), nil
}

func (s *capacityService) ListRegistrations(ctx context.Context, eventID string, filter domain.RegistrationFilter, p domain.PaginationParams, actor domain.Principal) ([]*domain.Registration, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.getEvent(ctx, eventID)
	if err != nil {
		return nil, 0, err
	}
	if !actor.CanManage(event) {
		return nil, 0, domain.ErrForbidden
	}
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, 0, domain.InvalidInputf("unknown status %q", *filter.Status)
	}
	regs, total, err := s.registrationRepo.ListByEvent(ctx, eventID, filter, p)
	if err != nil {
		return nil, 0, fmt.Errorf("list registrations: %w", err)
	}
	return regs, total, nil
}
