//go:build unit || e2e

package dbtest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// InsertBooking writes a booking row directly, bypassing the API, for tests
// that need pre-existing data.
func InsertBooking(t *testing.T, db DBLike, status string, createdAt time.Time) uuid.UUID {
	t.Helper()

	id := uuid.New()
	ctx := context.Background()
	_, err := db.Exec(ctx, `
		INSERT INTO bookings (
			id, first_name, last_name, email, phone,
			farm_location, farm_size, crop_types, farming_experience,
			current_challenges, preferred_date, status, created_at, updated_at
		) VALUES ($1, 'Tendai', 'Moyo', 'tendai.moyo@example.com', '+263771234567',
			'Mazowe', '15 hectares', 'Maize', '10 years',
			'Fall armyworm pressure', '2026-09-15', $2, $3, $3)`,
		id, status, createdAt)
	require.NoError(t, err)

	return id
}

func CountBookings(t *testing.T, db DBLike) int64 {
	t.Helper()

	var count int64
	err := db.QueryRow(context.Background(), "SELECT count(*) FROM bookings").Scan(&count)
	require.NoError(t, err)
	return count
}

func CountNotificationLogs(t *testing.T, db DBLike, bookingID uuid.UUID) int64 {
	t.Helper()

	var count int64
	err := db.QueryRow(context.Background(),
		"SELECT count(*) FROM notification_logs WHERE booking_id = $1", bookingID).Scan(&count)
	require.NoError(t, err)
	return count
}

// ResetDB wipes every mutable table so each subtest starts from scratch.
func ResetDB(db DBLike) error {
	_, err := db.Exec(context.Background(),
		"TRUNCATE bookings, notification_logs, idempotency_keys CASCADE")
	return err
}
