package booking

import "errors"

var ErrInvalidStatus = errors.New("invalid booking status")

// Status tracks a booking's lifecycle stage. Any enum value may replace any
// other; the admin workflow (pending -> confirmed -> completed, cancel from
// anywhere) is a UI convention, not a persistence rule.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

func Statuses() []Status {
	return []Status{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled}
}
