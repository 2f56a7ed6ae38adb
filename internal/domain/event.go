package domain

import (
	"context"
	"time"
)

// DefaultCurrency is used when an event does not carry its own currency code.
const DefaultCurrency = "IDR"

// Event is the capacity-bearing part of an event. Other event fields are owned
// elsewhere; this service only reads price and mutates the counter and window flag.
// swagger:model Event
type Event struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	OwnerID              string    `json:"owner_id"`
	Price                int64     `json:"price"`
	Currency             string    `json:"currency"`
	RegistrationLimit    int       `json:"registration_limit"`
	CurrentRegistrations int       `json:"current_registrations"`
	RegistrationClosed   bool      `json:"registration_closed"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// NewEvent returns a new Event with the given fields. ID is typically set by the repository on create.
func NewEvent(name, ownerID string, price int64, currency string, limit int, createdAt, updatedAt time.Time) *Event {
	if currency == "" {
		currency = DefaultCurrency
	}
	return &Event{
		Name:              name,
		OwnerID:           ownerID,
		Price:             price,
		Currency:          currency,
		RegistrationLimit: limit,
		CreatedAt:         createdAt,
		UpdatedAt:         updatedAt,
	}
}

// IsPriced reports whether registering requires a payment.
func (e *Event) IsPriced() bool {
	return e.Price > 0
}

// IsFull reports whether approved registrations have reached the limit.
func (e *Event) IsFull() bool {
	return e.CurrentRegistrations >= e.RegistrationLimit
}

// IsRegistrationOpen reports whether new registrations are admitted.
func (e *Event) IsRegistrationOpen() bool {
	return !e.IsFull() && !e.RegistrationClosed
}

// AdmissionError returns nil when the event admits new registrations, otherwise
// ErrEventFull or ErrRegistrationClosed.
func (e *Event) AdmissionError() error {
	if e.IsFull() {
		return ErrEventFull
	}
	if e.RegistrationClosed {
		return ErrRegistrationClosed
	}
	return nil
}

// EventCapacity is the public view of an event's occupancy.
// swagger:model EventCapacity
type EventCapacity struct {
	EventID  string `json:"event_id"`
	Limit    int    `json:"limit"`
	Current  int    `json:"current"`
	Open     bool   `json:"open"`
	Full     bool   `json:"full"`
	Price    int64  `json:"price"`
	Currency string `json:"currency"`
}

// Capacity returns the occupancy view of the event.
func (e *Event) Capacity() *EventCapacity {
	return &EventCapacity{
		EventID:  e.ID,
		Limit:    e.RegistrationLimit,
		Current:  e.CurrentRegistrations,
		Open:     e.IsRegistrationOpen(),
		Full:     e.IsFull(),
		Price:    e.Price,
		Currency: e.Currency,
	}
}

// EventRepository defines storage for the capacity fields of events.
// The counter is only moved inside RegistrationRepository.ApplyTransition.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	SetRegistrationClosed(ctx context.Context, id string, closed bool) (*Event, error)
}
