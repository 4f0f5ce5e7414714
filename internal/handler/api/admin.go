package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	reqdto "talazo-api/internal/handler/dto/request"
	resdto "talazo-api/internal/handler/dto/response"
	"talazo-api/internal/handler/httperr"
	"talazo-api/internal/pkg/errs"
	"talazo-api/internal/usecase/commands"
	"talazo-api/internal/usecase/queries"
)

type AdminBookingHandler struct {
	bookingQueries  queries.BookingQueries
	bookingCommands commands.BookingCommands
}

func NewAdminBookingHandler(
	bookingQueries queries.BookingQueries,
	bookingCommands commands.BookingCommands,
) *AdminBookingHandler {
	return &AdminBookingHandler{
		bookingQueries:  bookingQueries,
		bookingCommands: bookingCommands,
	}
}

// @Summary List bookings
// @Description List bookings for the admin dashboard, newest first
// @Tags admin
// @Produce json
// @Param status query string false "Filter by status (pending, confirmed, completed, cancelled, or all)"
// @Param limit query int false "Page size (default 50, max 200)"
// @Param offset query int false "Rows to skip"
// @Success 200 {object} resdto.BookingListResponse
// @Failure 400 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /admin/bookings [get]
func (h *AdminBookingHandler) ListBookings(c *gin.Context) {
	statusFilter := c.Query("status")

	limit, err := parseQueryInt(c, "limit", queries.DefaultListLimit)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid limit parameter")
		return
	}

	offset, err := parseQueryInt(c, "offset", 0)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid offset parameter")
		return
	}

	page, err := h.bookingQueries.List(c.Request.Context(), statusFilter, limit, offset)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrInvalidBookingStatus):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid status filter")
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to fetch bookings")
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingPage(page))
}

// @Summary Update booking
// @Description Update a booking's status and/or admin notes
// @Tags admin
// @Accept json
// @Produce json
// @Param request body reqdto.UpdateBookingRequest true "Update request"
// @Success 200 {object} resdto.UpdateBookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /admin/bookings [patch]
func (h *AdminBookingHandler) UpdateBooking(c *gin.Context) {
	var req reqdto.UpdateBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Booking ID is required")
		return
	}

	id, err := uuid.Parse(req.ID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format")
		return
	}

	patch := commands.BookingPatch{
		Status:     req.Status,
		AdminNotes: req.AdminNotes,
	}

	view, err := h.bookingCommands.UpdateBooking(c.Request.Context(), id, patch)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrInvalidBookingStatus):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid status value")
		case errors.Is(err, commands.ErrBookingNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found")
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to update booking")
		}
		return
	}

	c.JSON(http.StatusOK, resdto.UpdateBookingResponse{
		Success: true,
		Booking: view,
	})
}

func parseQueryInt(c *gin.Context, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, errors.New("invalid integer parameter")
	}
	return v, nil
}
