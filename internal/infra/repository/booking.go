package repository

import (
	"context"
	"time"

	"talazo-api/internal/domain/booking"
	"talazo-api/internal/infra"
	"talazo-api/internal/infra/db"
	"talazo-api/internal/pkg/pgconv"

	"github.com/google/uuid"
)

const createBookingSQL = `
INSERT INTO bookings (
	id, first_name, last_name, email, phone,
	farm_location, farm_size, crop_types, farming_experience,
	current_challenges, preferred_date, additional_notes,
	status, ip_address, user_agent, created_at, updated_at
) VALUES (
	$1, $2, $3, $4, $5,
	$6, $7, $8, $9,
	$10, $11, $12,
	$13, $14, $15, $16, $17
)
RETURNING id`

// COALESCE keeps absent patch fields untouched; updated_at always moves.
const patchBookingSQL = `
UPDATE bookings
SET status      = COALESCE($2, status),
    admin_notes = COALESCE($3, admin_notes),
    updated_at  = $4
WHERE id = $1
RETURNING id`

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(conn db.DBTX) *BookingRepository {
	return &BookingRepository{db: conn}
}

func (r *BookingRepository) Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (uuid.UUID, error) {
	var additionalNotes *string
	if b.AdditionalNotes() != "" {
		notes := b.AdditionalNotes()
		additionalNotes = &notes
	}

	var id uuid.UUID
	err := tx.QueryRow(ctx, createBookingSQL,
		b.ID(),
		b.FirstName(),
		b.LastName(),
		b.Email(),
		b.Phone(),
		b.FarmLocation(),
		b.FarmSize(),
		b.CropTypes(),
		b.FarmingExperience(),
		b.CurrentChallenges(),
		b.PreferredDate(),
		pgconv.StringPtrToPgtype(additionalNotes),
		b.Status().String(),
		pgconv.StringPtrToPgtype(b.IPAddress()),
		pgconv.StringPtrToPgtype(b.UserAgent()),
		pgconv.TimeToPgtype(b.CreatedAt()),
		pgconv.TimeToPgtype(b.UpdatedAt()),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create booking", err)
	}

	return id, nil
}

func (r *BookingRepository) Patch(ctx context.Context, tx db.DBTX, id uuid.UUID, status *booking.Status, adminNotes *string, updatedAt time.Time) error {
	var statusPtr *string
	if status != nil {
		s := status.String()
		statusPtr = &s
	}

	var updatedID uuid.UUID
	err := tx.QueryRow(ctx, patchBookingSQL,
		id,
		pgconv.StringPtrToPgtype(statusPtr),
		pgconv.StringPtrToPgtype(adminNotes),
		pgconv.TimeToPgtype(updatedAt),
	).Scan(&updatedID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return infra.WrapRepoErr("failed to patch booking", err)
	}

	return nil
}
