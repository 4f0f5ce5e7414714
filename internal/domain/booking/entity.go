package booking

import (
	"errors"
	"strings"
	"time"

	"talazo-api/internal/pkg/clock"

	"github.com/google/uuid"
)

var ErrMissingField = errors.New("missing required field")

// MissingFieldError names the offending field using its API (camelCase)
// spelling so callers can surface it verbatim.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return "missing required field: " + e.Field
}

func (e *MissingFieldError) Unwrap() error {
	return ErrMissingField
}

// Submission carries the raw form payload for a new booking. All fields except
// AdditionalNotes are required.
type Submission struct {
	FirstName         string
	LastName          string
	Email             string
	Phone             string
	FarmSize          string
	FarmLocation      string
	CropTypes         string
	FarmingExperience string
	CurrentChallenges string
	PreferredDate     string
	AdditionalNotes   string
}

// SubmitMeta is request context recorded alongside the booking row.
type SubmitMeta struct {
	IPAddress string
	UserAgent string
}

type Booking struct {
	id                uuid.UUID
	firstName         string
	lastName          string
	email             string
	phone             string
	farmSize          string
	farmLocation      string
	cropTypes         string
	farmingExperience string
	currentChallenges string
	preferredDate     string
	additionalNotes   string
	status            Status
	adminNotes        *string
	ipAddress         *string
	userAgent         *string
	createdAt         time.Time
	updatedAt         time.Time
}

// NewBooking validates the submission and produces the aggregate for a fresh
// booking row: status forced to pending, createdAt == updatedAt, caller input
// trimmed and the email lowercased. The caller-supplied status, if any, never
// reaches this constructor.
func NewBooking(clk clock.Clock, sub Submission, meta SubmitMeta) (*Booking, error) {
	required := []struct {
		field string
		value *string
	}{
		{"firstName", &sub.FirstName},
		{"lastName", &sub.LastName},
		{"email", &sub.Email},
		{"phone", &sub.Phone},
		{"farmSize", &sub.FarmSize},
		{"farmLocation", &sub.FarmLocation},
		{"cropTypes", &sub.CropTypes},
		{"farmingExperience", &sub.FarmingExperience},
		{"currentChallenges", &sub.CurrentChallenges},
		{"preferredDate", &sub.PreferredDate},
	}
	for _, r := range required {
		*r.value = strings.TrimSpace(*r.value)
		if *r.value == "" {
			return nil, &MissingFieldError{Field: r.field}
		}
	}

	now := clk.Now()

	var ip, ua *string
	if meta.IPAddress != "" {
		ip = &meta.IPAddress
	}
	if meta.UserAgent != "" {
		ua = &meta.UserAgent
	}

	return &Booking{
		id:                uuid.New(),
		firstName:         sub.FirstName,
		lastName:          sub.LastName,
		email:             strings.ToLower(sub.Email),
		phone:             sub.Phone,
		farmSize:          sub.FarmSize,
		farmLocation:      sub.FarmLocation,
		cropTypes:         sub.CropTypes,
		farmingExperience: sub.FarmingExperience,
		currentChallenges: sub.CurrentChallenges,
		preferredDate:     sub.PreferredDate,
		additionalNotes:   strings.TrimSpace(sub.AdditionalNotes),
		status:            StatusPending,
		ipAddress:         ip,
		userAgent:         ua,
		createdAt:         now,
		updatedAt:         now,
	}, nil
}

func (b *Booking) FullName() string {
	return b.firstName + " " + b.lastName
}

func (b *Booking) ID() uuid.UUID             { return b.id }
func (b *Booking) FirstName() string         { return b.firstName }
func (b *Booking) LastName() string          { return b.lastName }
func (b *Booking) Email() string             { return b.email }
func (b *Booking) Phone() string             { return b.phone }
func (b *Booking) FarmSize() string          { return b.farmSize }
func (b *Booking) FarmLocation() string      { return b.farmLocation }
func (b *Booking) CropTypes() string         { return b.cropTypes }
func (b *Booking) FarmingExperience() string { return b.farmingExperience }
func (b *Booking) CurrentChallenges() string { return b.currentChallenges }
func (b *Booking) PreferredDate() string     { return b.preferredDate }
func (b *Booking) AdditionalNotes() string   { return b.additionalNotes }
func (b *Booking) Status() Status            { return b.status }
func (b *Booking) AdminNotes() *string       { return b.adminNotes }
func (b *Booking) IPAddress() *string        { return b.ipAddress }
func (b *Booking) UserAgent() *string        { return b.userAgent }
func (b *Booking) CreatedAt() time.Time      { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time      { return b.updatedAt }
