package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"talazo-api/internal/domain/booking"
	reqdto "talazo-api/internal/handler/dto/request"
	resdto "talazo-api/internal/handler/dto/response"
	"talazo-api/internal/handler/httperr"
	"talazo-api/internal/usecase/commands"
)

type BookingHandler struct {
	bookingCommands commands.BookingCommands
}

func NewBookingHandler(bookingCommands commands.BookingCommands) *BookingHandler {
	return &BookingHandler{
		bookingCommands: bookingCommands,
	}
}

// @Summary Submit booking
// @Description Submit a farm assessment booking request
// @Tags bookings
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Idempotency key for duplicate prevention"
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.SubmitBookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /bookings [post]
func (h *BookingHandler) SubmitBooking(c *gin.Context) {
	idempotencyKey, err := h.getIdempotencyKey(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid idempotency key format")
		return
	}

	var req reqdto.CreateBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format")
		return
	}

	meta := booking.SubmitMeta{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}

	result, err := h.bookingCommands.SubmitBooking(c.Request.Context(), req.ToSubmission(), meta, idempotencyKey)
	if err != nil {
		var missing *booking.MissingFieldError
		switch {
		case errors.As(err, &missing):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Missing required field: "+missing.Field)
		case errors.Is(err, commands.ErrIdempotencyConflict):
			httperr.AbortWithError(c, http.StatusConflict, err, "Duplicate booking request with different parameters")
		case errors.Is(err, commands.ErrDatabaseOperationFailed):
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to save booking to database")
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error")
		}
		return
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}
	c.JSON(status, resdto.SubmitBookingResponse{
		Success:   true,
		Message:   "Booking submitted successfully",
		BookingID: result.BookingID,
	})
}

// The key is optional on this endpoint; clients that retry submissions send
// one, the plain web form does not.
func (h *BookingHandler) getIdempotencyKey(c *gin.Context) (*uuid.UUID, error) {
	keyStr := c.GetHeader("Idempotency-Key")
	if keyStr == "" {
		return nil, nil
	}

	key, err := uuid.Parse(keyStr)
	if err != nil {
		return nil, errors.New("invalid idempotency key format")
	}

	return &key, nil
}
