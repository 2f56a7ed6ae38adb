package postgres

import (
	"context"
	"database/sql"

	"eventregistration/internal/domain"
)

type notificationRepository struct {
	DB *sql.DB
}

// NewNotificationRepository returns a NotificationSink that stores in-app notifications.
func NewNotificationRepository(db *sql.DB) domain.NotificationSink {
	return &notificationRepository{DB: db}
}

func (r *notificationRepository) Notify(ctx context.Context, n *domain.Notification) error {
	query := `
		INSERT INTO notifications (user_id, event_id, registration_id, kind, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, n.UserID, n.EventID, n.RegistrationID, n.Kind, n.Message, n.CreatedAt).Scan(&n.ID)
}
