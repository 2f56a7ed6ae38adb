//go:build integration

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"eventregistration/internal/domain"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/suite"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

type PostgresSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	db        *sql.DB
	events    domain.EventRepository
	regs      domain.RegistrationRepository
}

func TestPostgresSuite(t *testing.T) {
	suite.Run(t, new(PostgresSuite))
}

func (s *PostgresSuite) SetupSuite() {
	ctx := context.Background()
	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("registrations"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		tcpostgres.WithInitScripts(filepath.Join("..", "..", "..", "migrations", "001_init.sql")),
		tcpostgres.BasicWaitStrategies(),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)
	s.db, err = sql.Open("postgres", dsn)
	s.Require().NoError(err)
	s.db.SetMaxOpenConns(20)
	s.Require().NoError(s.db.PingContext(ctx))

	s.events = NewEventRepository(s.db)
	s.regs = NewRegistrationRepository(s.db)
}

func (s *PostgresSuite) TearDownSuite() {
	if s.db != nil {
		_ = s.db.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(context.Background())
	}
}

func (s *PostgresSuite) SetupTest() {
	_, err := s.db.Exec(`TRUNCATE notifications, registrations, events CASCADE`)
	s.Require().NoError(err)
}

func (s *PostgresSuite) newEvent(limit int, price int64) *domain.Event {
	now := time.Now().UTC()
	ev := domain.NewEvent("Conf", uuid.NewString(), price, "", limit, now, now)
	s.Require().NoError(s.events.Create(context.Background(), ev))
	return ev
}

func (s *PostgresSuite) newRegistration(eventID string) *domain.Registration {
	reg := domain.NewRegistration(eventID, uuid.NewString(), domain.PaymentMethodNone, domain.PaymentNotRequired, time.Now().UTC())
	s.Require().NoError(s.regs.Create(context.Background(), reg))
	return reg
}

func (s *PostgresSuite) approve(reg *domain.Registration, from domain.RegistrationStatus) error {
	_, err := s.regs.ApplyTransition(context.Background(), domain.Transition{
		RegistrationID: reg.ID,
		EventID:        reg.EventID,
		From:           from,
		To:             domain.StatusApproved,
		CapacityDelta:  domain.CapacityDelta(from, domain.StatusApproved),
	})
	return err
}

func (s *PostgresSuite) TestConcurrentCreateSamePairAdmitsOne() {
	ev := s.newEvent(10, 0)
	userID := uuid.NewString()

	const workers = 16
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			reg := domain.NewRegistration(ev.ID, userID, domain.PaymentMethodNone, domain.PaymentNotRequired, time.Now().UTC())
			errs[i] = s.regs.Create(context.Background(), reg)
		}()
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		s.Require().ErrorIs(err, domain.ErrDuplicateRegistration)
	}
	s.Equal(1, succeeded)
}

func (s *PostgresSuite) TestConcurrentApprovalsNeverExceedLimit() {
	ev := s.newEvent(1, 0)
	regs := []*domain.Registration{s.newRegistration(ev.ID), s.newRegistration(ev.ID), s.newRegistration(ev.ID)}

	var wg sync.WaitGroup
	errs := make([]error, len(regs))
	for i, reg := range regs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = s.approve(reg, domain.StatusPending)
		}()
	}
	wg.Wait()

	approved := 0
	for _, err := range errs {
		if err == nil {
			approved++
			continue
		}
		s.Require().True(errors.Is(err, domain.ErrEventFull), "unexpected error %v", err)
	}
	s.Equal(1, approved)

	got, err := s.events.GetByID(context.Background(), ev.ID)
	s.Require().NoError(err)
	s.Equal(1, got.CurrentRegistrations)
	s.False(got.IsRegistrationOpen())

	var approvedRows int
	s.Require().NoError(s.db.QueryRow(`SELECT COUNT(*) FROM registrations WHERE event_id = $1 AND status = 'approved'`, ev.ID).Scan(&approvedRows))
	s.Equal(got.CurrentRegistrations, approvedRows)
}

func (s *PostgresSuite) TestCyclingOneRegistrationKeepsNetCount() {
	ev := s.newEvent(5, 0)
	reg := s.newRegistration(ev.ID)
	ctx := context.Background()

	steps := []domain.RegistrationStatus{domain.StatusApproved, domain.StatusRejected, domain.StatusApproved, domain.StatusPending, domain.StatusApproved}
	from := domain.StatusPending
	for _, to := range steps {
		_, err := s.regs.ApplyTransition(ctx, domain.Transition{
			RegistrationID: reg.ID, EventID: ev.ID, From: from, To: to, CapacityDelta: domain.CapacityDelta(from, to),
		})
		s.Require().NoError(err)
		from = to
	}

	got, err := s.events.GetByID(ctx, ev.ID)
	s.Require().NoError(err)
	s.Equal(1, got.CurrentRegistrations)
}

func (s *PostgresSuite) TestStaleTransitionIsRejected() {
	ev := s.newEvent(5, 0)
	reg := s.newRegistration(ev.ID)
	s.Require().NoError(s.approve(reg, domain.StatusPending))

	err := s.approve(reg, domain.StatusPending)
	s.Require().ErrorIs(err, domain.ErrStaleTransition)

	got, err := s.events.GetByID(context.Background(), ev.ID)
	s.Require().NoError(err)
	s.Equal(1, got.CurrentRegistrations)
}

func (s *PostgresSuite) TestUpsertPaidIsIdempotent() {
	ev := s.newEvent(5, 100000)
	userID := uuid.NewString()
	ref := "order-abc"
	ctx := context.Background()

	first := domain.NewRegistration(ev.ID, userID, domain.PaymentMethodHostedCheckout, domain.PaymentPaid, time.Now().UTC())
	first.PaymentSessionRef = &ref
	prev, err := s.regs.UpsertPaid(ctx, first)
	s.Require().NoError(err)
	s.Empty(prev)

	second := domain.NewRegistration(ev.ID, userID, domain.PaymentMethodHostedCheckout, domain.PaymentPaid, time.Now().UTC())
	second.PaymentSessionRef = &ref
	prev, err = s.regs.UpsertPaid(ctx, second)
	s.Require().NoError(err)
	s.Equal(domain.PaymentPaid, prev)

	s.Equal(first.ID, second.ID)
	s.Equal(first.Status, second.Status)
	s.Equal(first.PaymentStatus, second.PaymentStatus)
	s.True(first.UpdatedAt.Equal(second.UpdatedAt))
}

func (s *PostgresSuite) TestUpsertPaidKeepsApprovalStatus() {
	ev := s.newEvent(5, 100000)
	ctx := context.Background()
	reg := domain.NewRegistration(ev.ID, uuid.NewString(), domain.PaymentMethodScanToPay, domain.PaymentUnpaid, time.Now().UTC())
	s.Require().NoError(s.regs.Create(ctx, reg))
	s.Require().NoError(s.approve(reg, domain.StatusPending))

	ref := "order-xyz"
	paid := domain.NewRegistration(ev.ID, reg.UserID, domain.PaymentMethodHostedCheckout, domain.PaymentPaid, time.Now().UTC())
	paid.PaymentSessionRef = &ref
	prev, err := s.regs.UpsertPaid(ctx, paid)
	s.Require().NoError(err)
	s.Equal(domain.PaymentUnpaid, prev)
	s.Equal(reg.ID, paid.ID)
	s.Equal(domain.StatusApproved, paid.Status)
	s.Equal(domain.ConfirmationConfirmed, paid.Confirmation())
}

// concurrentUpsertPaid settles one pair from several goroutines with distinct
// session refs and returns every previous status observed.
func (s *PostgresSuite) concurrentUpsertPaid(eventID, userID string, workers int) []domain.PaymentStatus {
	var wg sync.WaitGroup
	prevs := make([]domain.PaymentStatus, workers)
	errs := make([]error, workers)
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ref := uuid.NewString()
			reg := domain.NewRegistration(eventID, userID, domain.PaymentMethodHostedCheckout, domain.PaymentPaid, time.Now().UTC())
			reg.PaymentSessionRef = &ref
			prevs[i], errs[i] = s.regs.UpsertPaid(context.Background(), reg)
		}()
	}
	wg.Wait()
	for _, err := range errs {
		s.Require().NoError(err)
	}
	return prevs
}

func (s *PostgresSuite) TestConcurrentSettlementOfUnpaidRegistrationSeenOnce() {
	ev := s.newEvent(5, 100000)
	ctx := context.Background()
	reg := domain.NewRegistration(ev.ID, uuid.NewString(), domain.PaymentMethodScanToPay, domain.PaymentUnpaid, time.Now().UTC())
	s.Require().NoError(s.regs.Create(ctx, reg))
	s.Require().NoError(s.approve(reg, domain.StatusPending))

	prevs := s.concurrentUpsertPaid(ev.ID, reg.UserID, 8)

	unpaid := 0
	for _, prev := range prevs {
		if prev == domain.PaymentUnpaid {
			unpaid++
			continue
		}
		s.Equal(domain.PaymentPaid, prev)
	}
	s.Equal(1, unpaid)

	stored, err := s.regs.GetByID(ctx, reg.ID)
	s.Require().NoError(err)
	s.Equal(domain.ConfirmationConfirmed, stored.Confirmation())
}

func (s *PostgresSuite) TestConcurrentSettlementWithoutRegistrationInsertsOnce() {
	ev := s.newEvent(5, 100000)
	userID := uuid.NewString()

	prevs := s.concurrentUpsertPaid(ev.ID, userID, 8)

	inserted := 0
	for _, prev := range prevs {
		if prev == "" {
			inserted++
			continue
		}
		s.Equal(domain.PaymentPaid, prev)
	}
	s.Equal(1, inserted)

	regs, total, err := s.regs.ListByEvent(context.Background(), ev.ID, domain.RegistrationFilter{}, domain.PaginationParams{Page: 1, PageSize: 10})
	s.Require().NoError(err)
	s.Equal(1, total)
	s.Equal(domain.PaymentPaid, regs[0].PaymentStatus)
}
