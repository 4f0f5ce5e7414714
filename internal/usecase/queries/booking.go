package queries

import (
	"context"
	"time"

	"talazo-api/internal/domain/booking"
	"talazo-api/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

// BookingView is the read model for a booking row. JSON spelling matches the
// persisted column names, which is what the admin dashboard consumes.
type BookingView struct {
	ID                uuid.UUID `json:"id"`
	FirstName         string    `json:"first_name"`
	LastName          string    `json:"last_name"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone"`
	FarmLocation      string    `json:"farm_location"`
	FarmSize          string    `json:"farm_size"`
	CropTypes         string    `json:"crop_types"`
	FarmingExperience string    `json:"farming_experience"`
	CurrentChallenges string    `json:"current_challenges"`
	PreferredDate     string    `json:"preferred_date"`
	AdditionalNotes   *string   `json:"additional_notes"`
	Status            string    `json:"status"`
	AdminNotes        *string   `json:"admin_notes"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// BookingPage is one page of bookings plus the pagination math the admin
// dashboard renders.
type BookingPage struct {
	Bookings    []*BookingView
	TotalCount  int64
	CurrentPage int
	TotalPages  int
}

type BookingQueries interface {
	// List returns bookings ordered by creation time, most recent first.
	// statusFilter is one of the enum values, or "all"/"" for no filter.
	List(ctx context.Context, statusFilter string, limit, offset int) (*BookingPage, error)
	GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
}

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindPage(ctx context.Context, status *booking.Status, limit, offset int32) ([]*BookingView, error)
	Count(ctx context.Context, status *booking.Status) (int64, error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
}

func NewBookingQueries(store BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{store: store}
}

func (q *bookingQueriesImpl) List(ctx context.Context, statusFilter string, limit, offset int) (*BookingPage, error) {
	var status *booking.Status
	if statusFilter != "" && statusFilter != "all" {
		parsed, err := booking.ParseStatus(statusFilter)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrInvalidBookingStatus)
		}
		status = &parsed
	}

	limit = ValidateLimit(limit)
	if offset < 0 {
		offset = 0
	}

	rows, err := q.store.FindPage(ctx, status, int32(limit), int32(offset))
	if err != nil {
		return nil, err
	}

	total, err := q.store.Count(ctx, status)
	if err != nil {
		return nil, err
	}

	totalPages := int(total) / limit
	if int(total)%limit != 0 {
		totalPages++
	}

	return &BookingPage{
		Bookings:    rows,
		TotalCount:  total,
		CurrentPage: offset/limit + 1,
		TotalPages:  totalPages,
	}, nil
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	return q.store.FindByID(ctx, id)
}

func ValidateLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
