package commands

import (
	"context"
	"time"

	"talazo-api/internal/domain/booking"
	"talazo-api/internal/infra/db"

	"github.com/google/uuid"
)

// Write-side ports. Implementations live under internal/infra and are bound
// through fx in cmd/bootstrap.

type BookingRepository interface {
	Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (uuid.UUID, error)
	Patch(ctx context.Context, tx db.DBTX, id uuid.UUID, status *booking.Status, adminNotes *string, updatedAt time.Time) error
}

type IdempotencyRepository interface {
	// TryInsert reports whether this request claimed the key.
	TryInsert(ctx context.Context, key uuid.UUID, requestHash string, expiresAt, now time.Time) (bool, error)
	Get(ctx context.Context, key uuid.UUID) (*IdempotencyRecord, error)
	Complete(ctx context.Context, tx db.DBTX, key uuid.UUID, bookingID uuid.UUID, now time.Time) error
	// Delete releases a claimed key so the client can retry after a failure.
	Delete(ctx context.Context, key uuid.UUID) error
}

type NotificationLogRepository interface {
	Record(ctx context.Context, entry NotificationLogEntry) error
}

// BookingNotifier delivers the post-submission emails. Implementations are
// best-effort: they log and record failures but never return them.
type BookingNotifier interface {
	NotifyBookingCreated(ctx context.Context, b *booking.Booking)
}

type IdempotencyRecord struct {
	Key         uuid.UUID
	RequestHash string
	Status      string
	BookingID   *uuid.UUID
	ExpiresAt   time.Time
}

const (
	NotificationTypeUserConfirmation  = "user_confirmation"
	NotificationTypeAdminNotification = "admin_notification"

	NotificationStatusSent   = "sent"
	NotificationStatusFailed = "failed"
)

type NotificationLogEntry struct {
	BookingID    uuid.UUID
	Type         string
	Recipient    string
	Subject      string
	Status       string
	ErrorMessage *string
	ServiceID    *string
	SentAt       *time.Time
	CreatedAt    time.Time
}
