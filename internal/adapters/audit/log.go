package audit

import (
	"context"
	"log/slog"

	"eventregistration/internal/domain"
)

// LogSink writes audit records to a structured logger. It is the fallback when
// no broker is configured.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger.With("component", "audit")}
}

func (s *LogSink) Record(ctx context.Context, rec domain.AuditRecord) error {
	s.logger.InfoContext(ctx, string(rec.Action),
		"registration_id", rec.Change.RegistrationID,
		"event_id", rec.Change.EventID,
		"user_id", rec.Change.UserID,
		"old_status", rec.Change.OldStatus,
		"new_status", rec.Change.NewStatus,
		"actor_id", rec.Change.ActorID,
		"occurred_at", rec.Change.OccurredAt,
	)
	return nil
}
