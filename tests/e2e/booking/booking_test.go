//go:build e2e

package booking_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"talazo-api/internal/handler/dto/response"
	"talazo-api/tests/common/builder"
	"talazo-api/tests/common/dbtest"
	"talazo-api/tests/common/httptest"
	"talazo-api/tests/common/testutil"
	"talazo-api/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	bookingsURL      = "/bookings"
	adminBookingsURL = "/admin/bookings"
)

type BookingSuite struct {
	e2e.SharedSuite
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(BookingSuite))
}

func (s *BookingSuite) TestSubmitBooking() {
	s.Run("persists the booking and sends both notification emails", func() {
		req := builder.NewBookingBuilder().BuildCreateRequestDTO()

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, bookingsURL, req, nil)
		require.Equal(s.T(), http.StatusCreated, w.Code, w.Body.String())

		var resp response.SubmitBookingResponse
		httptest.DecodeResponseBody(s.T(), w.Body, &resp)
		require.True(s.T(), resp.Success)
		require.NotEqual(s.T(), uuid.Nil, resp.BookingID)

		require.EqualValues(s.T(), 1, dbtest.CountBookings(s.T(), s.DB))

		var (
			email     string
			status    string
			createdAt time.Time
			updatedAt time.Time
		)
		err := s.DB.QueryRow(context.Background(),
			"SELECT email, status, created_at, updated_at FROM bookings WHERE id = $1",
			resp.BookingID).Scan(&email, &status, &createdAt, &updatedAt)
		require.NoError(s.T(), err)
		require.Equal(s.T(), "tendai.moyo@example.com", email)
		require.Equal(s.T(), "pending", status)
		require.True(s.T(), createdAt.Equal(updatedAt))

		sent := s.Mailer.Sent()
		require.Len(s.T(), sent, 2)
		recipients := []string{sent[0].To, sent[1].To}
		require.Contains(s.T(), recipients, "tendai.moyo@example.com")
		require.Contains(s.T(), recipients, s.Config.Mail.AdminEmail)

		require.EqualValues(s.T(), 2, dbtest.CountNotificationLogs(s.T(), s.DB, resp.BookingID))
	})

	s.Run("ignores a caller-supplied status and forces pending", func() {
		req := builder.NewBookingBuilder().BuildCreateRequestDTO()
		body := testutil.DtoMap(s.T(), req, testutil.Field("status", "confirmed"))

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, bookingsURL, body, nil)
		require.Equal(s.T(), http.StatusCreated, w.Code, w.Body.String())

		var resp response.SubmitBookingResponse
		httptest.DecodeResponseBody(s.T(), w.Body, &resp)

		var status string
		err := s.DB.QueryRow(context.Background(),
			"SELECT status FROM bookings WHERE id = $1", resp.BookingID).Scan(&status)
		require.NoError(s.T(), err)
		require.Equal(s.T(), "pending", status)
	})

	s.Run("rejects a submission missing a required field", func() {
		req := builder.NewBookingBuilder().BuildCreateRequestDTO()
		body := testutil.DtoMap(s.T(), req, testutil.Field("email", nil))

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, bookingsURL, body, nil)
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Missing required field: email")

		require.EqualValues(s.T(), 0, dbtest.CountBookings(s.T(), s.DB))
		require.Empty(s.T(), s.Mailer.Sent())
	})

	s.Run("replays an identical submission under the same idempotency key", func() {
		req := builder.NewBookingBuilder().BuildCreateRequestDTO()
		headers := map[string]string{"Idempotency-Key": uuid.NewString()}

		first := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, bookingsURL, req, headers)
		require.Equal(s.T(), http.StatusCreated, first.Code, first.Body.String())
		var firstResp response.SubmitBookingResponse
		httptest.DecodeResponseBody(s.T(), first.Body, &firstResp)

		second := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, bookingsURL, req, headers)
		require.Equal(s.T(), http.StatusOK, second.Code, second.Body.String())
		var secondResp response.SubmitBookingResponse
		httptest.DecodeResponseBody(s.T(), second.Body, &secondResp)

		require.Equal(s.T(), firstResp.BookingID, secondResp.BookingID)
		require.EqualValues(s.T(), 1, dbtest.CountBookings(s.T(), s.DB))
		// Replay must not resend the emails
		require.Len(s.T(), s.Mailer.Sent(), 2)
	})

	s.Run("rejects the same idempotency key with a different payload", func() {
		headers := map[string]string{"Idempotency-Key": uuid.NewString()}

		first := builder.NewBookingBuilder().BuildCreateRequestDTO()
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, bookingsURL, first, headers)
		require.Equal(s.T(), http.StatusCreated, w.Code, w.Body.String())

		changed := builder.NewBookingBuilder().WithEmail("rudo.ncube@example.com").BuildCreateRequestDTO()
		w = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, bookingsURL, changed, headers)
		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "Duplicate booking request")

		require.EqualValues(s.T(), 1, dbtest.CountBookings(s.T(), s.DB))
	})

	s.Run("rejects a malformed idempotency key", func() {
		req := builder.NewBookingBuilder().BuildCreateRequestDTO()
		headers := map[string]string{"Idempotency-Key": "not-a-uuid"}

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, bookingsURL, req, headers)
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid idempotency key format")
	})
}

func (s *BookingSuite) TestListBookings() {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	s.Run("lists bookings newest first", func() {
		oldest := dbtest.InsertBooking(s.T(), s.DB, "pending", base)
		middle := dbtest.InsertBooking(s.T(), s.DB, "confirmed", base.Add(time.Hour))
		newest := dbtest.InsertBooking(s.T(), s.DB, "completed", base.Add(2*time.Hour))

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, adminBookingsURL, nil, nil)
		require.Equal(s.T(), http.StatusOK, w.Code, w.Body.String())

		var resp response.BookingListResponse
		httptest.DecodeResponseBody(s.T(), w.Body, &resp)
		require.True(s.T(), resp.Success)
		require.EqualValues(s.T(), 3, resp.TotalCount)
		require.Equal(s.T(), 1, resp.CurrentPage)
		require.Equal(s.T(), 1, resp.TotalPages)

		got := make([]uuid.UUID, 0, len(resp.Bookings))
		for _, b := range resp.Bookings {
			got = append(got, b.ID)
		}
		want := []uuid.UUID{newest, middle, oldest}
		if diff := cmp.Diff(want, got); diff != "" {
			s.T().Errorf("booking order mismatch (-want +got):\n%s", diff)
		}
	})

	s.Run("filters by status", func() {
		dbtest.InsertBooking(s.T(), s.DB, "pending", base)
		confirmed := dbtest.InsertBooking(s.T(), s.DB, "confirmed", base.Add(time.Hour))
		dbtest.InsertBooking(s.T(), s.DB, "cancelled", base.Add(2*time.Hour))

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, adminBookingsURL+"?status=confirmed", nil, nil)
		require.Equal(s.T(), http.StatusOK, w.Code, w.Body.String())

		var resp response.BookingListResponse
		httptest.DecodeResponseBody(s.T(), w.Body, &resp)
		require.EqualValues(s.T(), 1, resp.TotalCount)
		require.Len(s.T(), resp.Bookings, 1)
		require.Equal(s.T(), confirmed, resp.Bookings[0].ID)
		require.Equal(s.T(), "confirmed", resp.Bookings[0].Status)
	})

	s.Run("treats status=all the same as no filter", func() {
		dbtest.InsertBooking(s.T(), s.DB, "pending", base)
		dbtest.InsertBooking(s.T(), s.DB, "confirmed", base.Add(time.Hour))

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, adminBookingsURL+"?status=all", nil, nil)
		require.Equal(s.T(), http.StatusOK, w.Code, w.Body.String())

		var resp response.BookingListResponse
		httptest.DecodeResponseBody(s.T(), w.Body, &resp)
		require.EqualValues(s.T(), 2, resp.TotalCount)
	})

	s.Run("applies limit and offset", func() {
		dbtest.InsertBooking(s.T(), s.DB, "pending", base)
		middle := dbtest.InsertBooking(s.T(), s.DB, "pending", base.Add(time.Hour))
		dbtest.InsertBooking(s.T(), s.DB, "pending", base.Add(2*time.Hour))

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, adminBookingsURL+"?limit=1&offset=1", nil, nil)
		require.Equal(s.T(), http.StatusOK, w.Code, w.Body.String())

		var resp response.BookingListResponse
		httptest.DecodeResponseBody(s.T(), w.Body, &resp)
		require.EqualValues(s.T(), 3, resp.TotalCount)
		require.Equal(s.T(), 2, resp.CurrentPage)
		require.Equal(s.T(), 3, resp.TotalPages)
		require.Len(s.T(), resp.Bookings, 1)
		require.Equal(s.T(), middle, resp.Bookings[0].ID)
	})

	s.Run("returns an empty page when no bookings exist", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, adminBookingsURL, nil, nil)
		require.Equal(s.T(), http.StatusOK, w.Code, w.Body.String())

		var resp response.BookingListResponse
		httptest.DecodeResponseBody(s.T(), w.Body, &resp)
		require.True(s.T(), resp.Success)
		require.NotNil(s.T(), resp.Bookings)
		require.Empty(s.T(), resp.Bookings)
		require.EqualValues(s.T(), 0, resp.TotalCount)
	})

	s.Run("rejects an unknown status filter", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, adminBookingsURL+"?status=archived", nil, nil)
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid status filter")
	})
}

func (s *BookingSuite) TestUpdateBooking() {
	createdAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	s.Run("updates status and admin notes", func() {
		id := dbtest.InsertBooking(s.T(), s.DB, "pending", createdAt)

		body := builder.NewBookingBuilder().
			WithStatus("confirmed").
			WithAdminNotes("Assessor assigned for next week").
			BuildUpdateRequestDTO(id)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPatch, adminBookingsURL, body, nil)
		require.Equal(s.T(), http.StatusOK, w.Code, w.Body.String())

		var resp response.UpdateBookingResponse
		httptest.DecodeResponseBody(s.T(), w.Body, &resp)
		require.True(s.T(), resp.Success)
		require.Equal(s.T(), id, resp.Booking.ID)
		require.Equal(s.T(), "confirmed", resp.Booking.Status)
		require.NotNil(s.T(), resp.Booking.AdminNotes)
		require.Equal(s.T(), "Assessor assigned for next week", *resp.Booking.AdminNotes)
		require.True(s.T(), resp.Booking.CreatedAt.Equal(createdAt))
		require.True(s.T(), resp.Booking.UpdatedAt.After(createdAt))
	})

	s.Run("cycles through every status value", func() {
		id := dbtest.InsertBooking(s.T(), s.DB, "pending", createdAt)

		for _, status := range []string{"confirmed", "completed", "cancelled", "pending"} {
			body := map[string]any{"id": id.String(), "status": status}
			w := httptest.PerformRequest(s.T(), s.Router, http.MethodPatch, adminBookingsURL, body, nil)
			require.Equal(s.T(), http.StatusOK, w.Code, fmt.Sprintf("status %q: %s", status, w.Body.String()))

			var dbStatus string
			err := s.DB.QueryRow(context.Background(),
				"SELECT status FROM bookings WHERE id = $1", id).Scan(&dbStatus)
			require.NoError(s.T(), err)
			require.Equal(s.T(), status, dbStatus)
		}
	})

	s.Run("leaves status untouched when only notes are patched", func() {
		id := dbtest.InsertBooking(s.T(), s.DB, "confirmed", createdAt)

		body := map[string]any{"id": id.String(), "admin_notes": "Follow up by phone"}
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPatch, adminBookingsURL, body, nil)
		require.Equal(s.T(), http.StatusOK, w.Code, w.Body.String())

		var resp response.UpdateBookingResponse
		httptest.DecodeResponseBody(s.T(), w.Body, &resp)
		require.Equal(s.T(), "confirmed", resp.Booking.Status)
		require.NotNil(s.T(), resp.Booking.AdminNotes)
		require.Equal(s.T(), "Follow up by phone", *resp.Booking.AdminNotes)
	})

	s.Run("returns 404 for an unknown booking", func() {
		body := map[string]any{"id": uuid.NewString(), "status": "confirmed"}
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPatch, adminBookingsURL, body, nil)
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Booking not found")
	})

	s.Run("rejects an invalid status value", func() {
		id := dbtest.InsertBooking(s.T(), s.DB, "pending", createdAt)

		body := map[string]any{"id": id.String(), "status": "archived"}
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPatch, adminBookingsURL, body, nil)
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid status value")

		var dbStatus string
		err := s.DB.QueryRow(context.Background(),
			"SELECT status FROM bookings WHERE id = $1", id).Scan(&dbStatus)
		require.NoError(s.T(), err)
		require.Equal(s.T(), "pending", dbStatus)
	})

	s.Run("rejects a malformed booking id", func() {
		body := map[string]any{"id": "not-a-uuid", "status": "confirmed"}
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPatch, adminBookingsURL, body, nil)
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid booking ID format")
	})

	s.Run("rejects a request without an id", func() {
		body := map[string]any{"status": "confirmed"}
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPatch, adminBookingsURL, body, nil)
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Booking ID is required")
	})
}

func (s *BookingSuite) TestSubmitBookingNormalization() {
	s.Run("trims whitespace and lowercases the email", func() {
		req := builder.NewBookingBuilder().
			WithFirstName("  Tendai  ").
			WithEmail("  Tendai.Moyo@Example.COM ").
			BuildCreateRequestDTO()

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, bookingsURL, req, nil)
		require.Equal(s.T(), http.StatusCreated, w.Code, w.Body.String())

		var resp response.SubmitBookingResponse
		httptest.DecodeResponseBody(s.T(), w.Body, &resp)

		var firstName, email string
		err := s.DB.QueryRow(context.Background(),
			"SELECT first_name, email FROM bookings WHERE id = $1", resp.BookingID).
			Scan(&firstName, &email)
		require.NoError(s.T(), err)
		require.Equal(s.T(), "Tendai", firstName)
		require.Equal(s.T(), "tendai.moyo@example.com", email)
	})
}
