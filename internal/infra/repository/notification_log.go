package repository

import (
	"context"

	"talazo-api/internal/infra"
	"talazo-api/internal/infra/db"
	"talazo-api/internal/pkg/pgconv"
	"talazo-api/internal/usecase/commands"

	"github.com/google/uuid"
)

const createNotificationLogSQL = `
INSERT INTO notification_logs (
	id, booking_id, notification_type, recipient_email,
	subject, status, error_message, email_service_id, sent_at, created_at
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
)`

type NotificationLogRepository struct {
	db db.DBTX
}

func NewNotificationLogRepository(conn db.DBTX) *NotificationLogRepository {
	return &NotificationLogRepository{db: conn}
}

func (r *NotificationLogRepository) Record(ctx context.Context, entry commands.NotificationLogEntry) error {
	_, err := r.db.Exec(ctx, createNotificationLogSQL,
		uuid.New(),
		entry.BookingID,
		entry.Type,
		entry.Recipient,
		entry.Subject,
		entry.Status,
		pgconv.StringPtrToPgtype(entry.ErrorMessage),
		pgconv.StringPtrToPgtype(entry.ServiceID),
		pgconv.TimePtrToPgtype(entry.SentAt),
		pgconv.TimeToPgtype(entry.CreatedAt),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to record notification log", err)
	}

	return nil
}
