package response

import (
	"github.com/google/uuid"

	"talazo-api/internal/usecase/queries"
)

type SubmitBookingResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	BookingID uuid.UUID `json:"bookingId"`
}

type BookingListResponse struct {
	Success     bool                  `json:"success"`
	Bookings    []*queries.BookingView `json:"bookings"`
	TotalCount  int64                 `json:"totalCount"`
	CurrentPage int                   `json:"currentPage"`
	TotalPages  int                   `json:"totalPages"`
}

type UpdateBookingResponse struct {
	Success bool               `json:"success"`
	Booking *queries.BookingView `json:"booking"`
}

func FromBookingPage(page *queries.BookingPage) *BookingListResponse {
	bookings := page.Bookings
	if bookings == nil {
		bookings = []*queries.BookingView{}
	}
	return &BookingListResponse{
		Success:     true,
		Bookings:    bookings,
		TotalCount:  page.TotalCount,
		CurrentPage: page.CurrentPage,
		TotalPages:  page.TotalPages,
	}
}
