package readstore

import (
	"context"

	"talazo-api/internal/domain/booking"
	"talazo-api/internal/infra"
	"talazo-api/internal/infra/db"
	"talazo-api/internal/pkg/pgconv"
	"talazo-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const bookingViewColumns = `
	id, first_name, last_name, email, phone,
	farm_location, farm_size, crop_types, farming_experience,
	current_challenges, preferred_date, additional_notes,
	status, admin_notes, created_at, updated_at`

const findBookingByIDSQL = `
SELECT` + bookingViewColumns + `
FROM bookings
WHERE id = $1`

const findBookingPageSQL = `
SELECT` + bookingViewColumns + `
FROM bookings
WHERE ($1::text IS NULL OR status = $1)
ORDER BY created_at DESC, id DESC
LIMIT $2 OFFSET $3`

const countBookingsSQL = `
SELECT count(*)
FROM bookings
WHERE ($1::text IS NULL OR status = $1)`

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(conn db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: conn}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	row := r.db.QueryRow(ctx, findBookingByIDSQL, id)

	view, err := scanBookingView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	return view, nil
}

func (r *BookingReadStore) FindPage(ctx context.Context, status *booking.Status, limit, offset int32) ([]*queries.BookingView, error) {
	rows, err := r.db.Query(ctx, findBookingPageSQL, statusArg(status), limit, offset)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	result := make([]*queries.BookingView, 0, limit)
	for rows.Next() {
		view, scanErr := scanBookingView(rows)
		if scanErr != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", scanErr)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking rows", err)
	}

	return result, nil
}

func (r *BookingReadStore) Count(ctx context.Context, status *booking.Status) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, countBookingsSQL, statusArg(status)).Scan(&count); err != nil {
		return 0, infra.WrapRepoErr("failed to count bookings", err)
	}
	return count, nil
}

func statusArg(status *booking.Status) pgtype.Text {
	if status == nil {
		return pgtype.Text{Valid: false}
	}
	return pgconv.StringToPgtype(status.String())
}

func scanBookingView(row pgx.Row) (*queries.BookingView, error) {
	var (
		view            queries.BookingView
		additionalNotes pgtype.Text
		adminNotes      pgtype.Text
		createdAt       pgtype.Timestamptz
		updatedAt       pgtype.Timestamptz
	)

	err := row.Scan(
		&view.ID,
		&view.FirstName,
		&view.LastName,
		&view.Email,
		&view.Phone,
		&view.FarmLocation,
		&view.FarmSize,
		&view.CropTypes,
		&view.FarmingExperience,
		&view.CurrentChallenges,
		&view.PreferredDate,
		&additionalNotes,
		&view.Status,
		&adminNotes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	view.AdditionalNotes = pgconv.StringPtrFromPgtype(additionalNotes)
	view.AdminNotes = pgconv.StringPtrFromPgtype(adminNotes)
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	view.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)

	return &view, nil
}
