package errs

import "errors"

// Sentinel errors shared across usecase layers
var (
	ErrInvalidBookingStatus = errors.New("invalid booking status")
)
