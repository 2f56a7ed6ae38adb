package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"eventregistration/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

var eventRowColumns = []string{"id", "name", "owner_id", "price", "currency", "registration_limit", "current_registrations", "registration_closed", "created_at", "updated_at"}

func TestEventRepository_Create(t *testing.T) {
	ctx := context.Background()
	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		event   *domain.Event
		mock    func(mock sqlmock.Sqlmock)
		wantID  string
		wantErr bool
	}{
		{
			name:  "success",
			event: domain.NewEvent("Conf 2025", "user-uuid-1", 150000, "IDR", 100, ts, ts),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events \(name, owner_id, price, currency, registration_limit, created_at, updated_at\)`).
					WithArgs("Conf 2025", "user-uuid-1", int64(150000), "IDR", 100, ts, ts).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("ev-uuid-1"))
			},
			wantID: "ev-uuid-1",
		},
		{
			name:  "db error",
			event: domain.NewEvent("Conf", "user-1", 0, "", 10, ts, ts),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(db)
			err = repo.Create(ctx, tt.event)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, tt.event.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		id      string
		mock    func(mock sqlmock.Sqlmock)
		want    *domain.Event
		wantErr error
	}{
		{
			name: "success",
			id:   "ev-1",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, name, owner_id, price, currency, registration_limit, current_registrations, registration_closed`).
					WithArgs("ev-1").
					WillReturnRows(sqlmock.NewRows(eventRowColumns).
						AddRow("ev-1", "Conf", "user-1", int64(50000), "IDR", 2, 1, false, ts, ts))
			},
			want: &domain.Event{
				ID:                   "ev-1",
				Name:                 "Conf",
				OwnerID:              "user-1",
				Price:                50000,
				Currency:             "IDR",
				RegistrationLimit:    2,
				CurrentRegistrations: 1,
				CreatedAt:            ts,
				UpdatedAt:            ts,
			},
		},
		{
			name: "not found",
			id:   "ev-missing",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, name, owner_id`).
					WithArgs("ev-missing").
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(db)
			got, err := repo.GetByID(ctx, tt.id)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Nil(t, got)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_SetRegistrationClosed(t *testing.T) {
	ctx := context.Background()
	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("closes registration", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`UPDATE events SET registration_closed = \$2`).
			WithArgs("ev-1", true).
			WillReturnRows(sqlmock.NewRows(eventRowColumns).
				AddRow("ev-1", "Conf", "user-1", int64(0), "IDR", 10, 3, true, ts, ts))

		got, err := NewEventRepository(db).SetRegistrationClosed(ctx, "ev-1", true)
		require.NoError(t, err)
		require.True(t, got.RegistrationClosed)
		require.False(t, got.IsRegistrationOpen())
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown event", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`UPDATE events SET registration_closed`).
			WithArgs("ev-missing", false).
			WillReturnError(sql.ErrNoRows)

		_, err = NewEventRepository(db).SetRegistrationClosed(ctx, "ev-missing", false)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}
