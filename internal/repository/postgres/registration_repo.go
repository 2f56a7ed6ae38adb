package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"eventregistration/internal/domain"

	"github.com/lib/pq"
)

const registrationColumns = `id, event_id, user_id, status, payment_method, payment_status, payment_session_ref, created_at, updated_at`

type registrationRepository struct {
	DB *sql.DB
}

func NewRegistrationRepository(db *sql.DB) domain.RegistrationRepository {
	return &registrationRepository{
		DB: db,
	}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func scanRegistration(row rowScanner, extra ...any) (*domain.Registration, error) {
	reg := &domain.Registration{}
	var ref sql.NullString
	dest := []any{
		&reg.ID, &reg.EventID, &reg.UserID, &reg.Status, &reg.PaymentMethod,
		&reg.PaymentStatus, &ref, &reg.CreatedAt, &reg.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if ref.Valid {
		reg.PaymentSessionRef = &ref.String
	}
	return reg, nil
}

// Create relies on the (event_id, user_id) unique index; the existence check in
// the service is only a fast path.
func (r *registrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	query := `
		INSERT INTO registrations (event_id, user_id, status, payment_method, payment_status, payment_session_ref, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (event_id, user_id) DO NOTHING
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		reg.EventID, reg.UserID, reg.Status, reg.PaymentMethod, reg.PaymentStatus,
		reg.PaymentSessionRef, reg.CreatedAt, reg.UpdatedAt,
	).Scan(&reg.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isUniqueViolation(err) {
			return domain.ErrDuplicateRegistration
		}
		return err
	}
	return nil
}

func (r *registrationRepository) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE id = $1`
	return scanRegistration(r.DB.QueryRowContext(ctx, query, id))
}

func (r *registrationRepository) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE event_id = $1 AND user_id = $2`
	return scanRegistration(r.DB.QueryRowContext(ctx, query, eventID, userID))
}

// UpsertPaid reads the previous payment status under a row lock, so of two
// settlements racing on one pair only the first sees the row unpaid.
func (r *registrationRepository) UpsertPaid(ctx context.Context, reg *domain.Registration) (domain.PaymentStatus, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	lockQuery := `SELECT payment_status FROM registrations WHERE event_id = $1 AND user_id = $2 FOR UPDATE`
	insertQuery := `
		INSERT INTO registrations (event_id, user_id, status, payment_method, payment_status, payment_session_ref, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		ON CONFLICT (event_id, user_id) DO NOTHING
		RETURNING ` + registrationColumns

	var prev domain.PaymentStatus
	for attempt := 0; ; attempt++ {
		err := tx.QueryRowContext(ctx, lockQuery, reg.EventID, reg.UserID).Scan(&prev)
		if err == nil {
			break
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("lock registration: %w", err)
		}
		if attempt > 0 {
			return "", fmt.Errorf("registration for event %s user %s disappeared during upsert", reg.EventID, reg.UserID)
		}

		inserted, err := scanRegistration(tx.QueryRowContext(ctx, insertQuery,
			reg.EventID, reg.UserID, reg.Status, reg.PaymentMethod, domain.PaymentPaid,
			reg.PaymentSessionRef, reg.CreatedAt,
		))
		if err == nil {
			if err := tx.Commit(); err != nil {
				return "", err
			}
			*reg = *inserted
			return "", nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return "", fmt.Errorf("insert paid registration: %w", err)
		}
		// a concurrent insert committed first; lock that row instead
	}

	updateQuery := `
		UPDATE registrations SET
			payment_status = $3,
			payment_session_ref = $4,
			updated_at = CASE
				WHEN payment_status = $3 AND payment_session_ref IS NOT DISTINCT FROM $4 THEN updated_at
				ELSE $5
			END
		WHERE event_id = $1 AND user_id = $2
		RETURNING ` + registrationColumns
	stored, err := scanRegistration(tx.QueryRowContext(ctx, updateQuery,
		reg.EventID, reg.UserID, domain.PaymentPaid, reg.PaymentSessionRef, reg.UpdatedAt,
	))
	if err != nil {
		return "", fmt.Errorf("mark registration paid: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}
	*reg = *stored
	return prev, nil
}

func (r *registrationRepository) MarkPaid(ctx context.Context, id string) (*domain.Registration, domain.PaymentStatus, error) {
	query := `
		WITH prev AS (
			SELECT id, payment_status FROM registrations WHERE id = $1 FOR UPDATE
		)
		UPDATE registrations r SET payment_status = $2, updated_at = NOW()
		FROM prev
		WHERE r.id = prev.id
		RETURNING r.id, r.event_id, r.user_id, r.status, r.payment_method, r.payment_status,
			r.payment_session_ref, r.created_at, r.updated_at, prev.payment_status
	`
	var prev domain.PaymentStatus
	reg, err := scanRegistration(r.DB.QueryRowContext(ctx, query, id, domain.PaymentPaid), &prev)
	if err != nil {
		return nil, "", err
	}
	return reg, prev, nil
}

// ApplyTransition moves the status only if it still equals t.From and moves the
// event counter in the same transaction. A positive delta is a bounded increment.
func (r *registrationRepository) ApplyTransition(ctx context.Context, t domain.Transition) (*domain.Registration, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `
		UPDATE registrations SET status = $3, updated_at = NOW()
		WHERE id = $1 AND status = $2
		RETURNING ` + registrationColumns
	reg, err := scanRegistration(tx.QueryRowContext(ctx, query, t.RegistrationID, t.From, t.To))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrStaleTransition
		}
		return nil, err
	}

	switch {
	case t.CapacityDelta > 0:
		res, err := tx.ExecContext(ctx, `
			UPDATE events SET current_registrations = current_registrations + $2, updated_at = NOW()
			WHERE id = $1 AND current_registrations + $2 <= registration_limit
		`, reg.EventID, t.CapacityDelta)
		if err != nil {
			return nil, fmt.Errorf("increment capacity: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return nil, domain.ErrEventFull
		}
	case t.CapacityDelta < 0:
		if _, err := tx.ExecContext(ctx, `
			UPDATE events SET current_registrations = GREATEST(current_registrations + $2, 0), updated_at = NOW()
			WHERE id = $1
		`, reg.EventID, t.CapacityDelta); err != nil {
			return nil, fmt.Errorf("decrement capacity: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return reg, nil
}

func (r *registrationRepository) ListByEvent(ctx context.Context, eventID string, filter domain.RegistrationFilter, p domain.PaginationParams) ([]*domain.Registration, int, error) {
	where := `WHERE event_id = $1`
	args := []any{eventID}
	if filter.Status != nil {
		where += ` AND status = $2`
		args = append(args, *filter.Status)
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM registrations `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	n := len(args)
	query := fmt.Sprintf(`SELECT %s FROM registrations %s ORDER BY created_at ASC, id ASC LIMIT $%d OFFSET $%d`,
		registrationColumns, where, n+1, n+2)
	rows, err := r.DB.QueryContext(ctx, query, append(args, p.PageSize, p.Offset())...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	regs := make([]*domain.Registration, 0)
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, 0, err
		}
		regs = append(regs, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return regs, total, nil
}
