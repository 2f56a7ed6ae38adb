package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"eventregistration/internal/domain"
)

const (
	freeEventID   = "6f1c2b9e-4a61-4a8e-9d3a-1b2c3d4e5f60"
	pricedEventID = "0b7e5d4c-3a2f-4e1d-8c9b-a1b2c3d4e5f6"
	ownerID       = "owner-1"

	user1 = "9d5c0b8e-1f2a-4c3b-8d4e-000000000001"
	user2 = "9d5c0b8e-1f2a-4c3b-8d4e-000000000002"
	user3 = "9d5c0b8e-1f2a-4c3b-8d4e-000000000003"
	user9 = "9d5c0b8e-1f2a-4c3b-8d4e-000000000009"
	userA = "9d5c0b8e-1f2a-4c3b-8d4e-00000000000a"
	userB = "9d5c0b8e-1f2a-4c3b-8d4e-00000000000b"
	userC = "9d5c0b8e-1f2a-4c3b-8d4e-00000000000c"

	missingRegistrationID = "e3b0c442-98fc-4c14-9afb-f4c8996fb924"
)

// fakeRegistrationID returns a well-formed id that sorts in creation order.
func fakeRegistrationID(n int) string {
	return fmt.Sprintf("5a3f2e1d-0c9b-4a87-b654-%012d", n)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeStore is an in-memory EventRepository and RegistrationRepository pair that
// mirrors the SQL semantics: unique (event, user), guarded status update, bounded counter.
type fakeStore struct {
	mu       sync.Mutex
	events   map[string]*domain.Event
	regs     map[string]*domain.Registration
	nextID   int
	getErr   error
	staleFor int // ApplyTransition reports a stale status this many times first
}

func newFakeStore(events ...*domain.Event) *fakeStore {
	s := &fakeStore{events: map[string]*domain.Event{}, regs: map[string]*domain.Registration{}}
	for _, e := range events {
		s.events[e.ID] = e
	}
	return s
}

func newTestEvent(id string, price int64, limit int) *domain.Event {
	now := time.Now()
	e := domain.NewEvent("GopherCon", ownerID, price, "IDR", limit, now, now)
	e.ID = id
	return e
}

func copyReg(r *domain.Registration) *domain.Registration {
	c := *r
	return &c
}

func (s *fakeStore) Create(ctx context.Context, event *domain.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	event.ID = fmt.Sprintf("ev-%d", s.nextID)
	s.events[event.ID] = event
	return nil
}

func (s *fakeStore) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	e, ok := s.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *e
	return &c, nil
}

func (s *fakeStore) SetRegistrationClosed(ctx context.Context, id string, closed bool) (*domain.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	e.RegistrationClosed = closed
	c := *e
	return &c, nil
}

func (s *fakeStore) counter(eventID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.events[eventID].CurrentRegistrations
}

func (s *fakeStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.regs)
}

// registrations exposes the RegistrationRepository half of the store.
func (s *fakeStore) registrations() *fakeRegistrationRepo {
	return &fakeRegistrationRepo{s}
}

type fakeRegistrationRepo struct {
	s *fakeStore
}

func (r *fakeRegistrationRepo) findLocked(eventID, userID string) *domain.Registration {
	for _, reg := range r.s.regs {
		if reg.EventID == eventID && reg.UserID == userID {
			return reg
		}
	}
	return nil
}

func (r *fakeRegistrationRepo) Create(ctx context.Context, reg *domain.Registration) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.findLocked(reg.EventID, reg.UserID) != nil {
		return domain.ErrDuplicateRegistration
	}
	r.s.nextID++
	reg.ID = fakeRegistrationID(r.s.nextID)
	r.s.regs[reg.ID] = copyReg(reg)
	return nil
}

func (r *fakeRegistrationRepo) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	reg, ok := r.s.regs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return copyReg(reg), nil
}

func (r *fakeRegistrationRepo) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.Registration, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if reg := r.findLocked(eventID, userID); reg != nil {
		return copyReg(reg), nil
	}
	return nil, domain.ErrNotFound
}

func (r *fakeRegistrationRepo) UpsertPaid(ctx context.Context, reg *domain.Registration) (domain.PaymentStatus, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing := r.findLocked(reg.EventID, reg.UserID)
	if existing == nil {
		r.s.nextID++
		reg.ID = fakeRegistrationID(r.s.nextID)
		reg.PaymentStatus = domain.PaymentPaid
		r.s.regs[reg.ID] = copyReg(reg)
		return "", nil
	}
	prev := existing.PaymentStatus
	existing.PaymentStatus = domain.PaymentPaid
	existing.PaymentSessionRef = reg.PaymentSessionRef
	*reg = *copyReg(existing)
	return prev, nil
}

func (r *fakeRegistrationRepo) MarkPaid(ctx context.Context, id string) (*domain.Registration, domain.PaymentStatus, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	reg, ok := r.s.regs[id]
	if !ok {
		return nil, "", domain.ErrNotFound
	}
	prev := reg.PaymentStatus
	reg.PaymentStatus = domain.PaymentPaid
	return copyReg(reg), prev, nil
}

func (r *fakeRegistrationRepo) ApplyTransition(ctx context.Context, t domain.Transition) (*domain.Registration, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.staleFor > 0 {
		r.s.staleFor--
		return nil, domain.ErrStaleTransition
	}
	reg, ok := r.s.regs[t.RegistrationID]
	if !ok || reg.Status != t.From {
		return nil, domain.ErrStaleTransition
	}
	ev := r.s.events[reg.EventID]
	next := ev.CurrentRegistrations + t.CapacityDelta
	if t.CapacityDelta > 0 && next > ev.RegistrationLimit {
		return nil, domain.ErrEventFull
	}
	ev.CurrentRegistrations = max(next, 0)
	reg.Status = t.To
	return copyReg(reg), nil
}

func (r *fakeRegistrationRepo) ListByEvent(ctx context.Context, eventID string, filter domain.RegistrationFilter, p domain.PaginationParams) ([]*domain.Registration, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*domain.Registration{}
	for _, reg := range r.s.regs {
		if reg.EventID != eventID {
			continue
		}
		if filter.Status != nil && reg.Status != *filter.Status {
			continue
		}
		out = append(out, copyReg(reg))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	total := len(out)
	offset := min(p.Offset(), total)
	end := min(offset+p.PageSize, total)
	return out[offset:end], total, nil
}

// recordingSinks captures every side effect the dispatcher delivers.
type recordingSinks struct {
	mu            sync.Mutex
	notifications []*domain.Notification
	emails        []domain.StatusChange
	audits        []domain.AuditRecord
	failEmail     error
}

func (r *recordingSinks) Notify(ctx context.Context, n *domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, n)
	return nil
}

func (r *recordingSinks) SendDecision(ctx context.Context, change domain.StatusChange) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failEmail != nil {
		return r.failEmail
	}
	r.emails = append(r.emails, change)
	return nil
}

func (r *recordingSinks) Record(ctx context.Context, rec domain.AuditRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.audits = append(r.audits, rec)
	return nil
}

func (r *recordingSinks) notificationKinds() []domain.NotificationKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	kinds := make([]domain.NotificationKind, 0, len(r.notifications))
	for _, n := range r.notifications {
		kinds = append(kinds, n.Kind)
	}
	return kinds
}

func (r *recordingSinks) auditActions() []domain.AuditAction {
	r.mu.Lock()
	defer r.mu.Unlock()
	actions := make([]domain.AuditAction, 0, len(r.audits))
	for _, a := range r.audits {
		actions = append(actions, a.Action)
	}
	return actions
}

func newRecordingDispatcher(sinks *recordingSinks) *Dispatcher {
	return NewDispatcher(sinks, sinks, sinks, time.Second, discardLogger(), nil)
}
