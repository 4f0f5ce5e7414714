//go:build unit || e2e

package builder

import (
	"time"

	dombooking "talazo-api/internal/domain/booking"
	reqdto "talazo-api/internal/handler/dto/request"
	"talazo-api/internal/pkg/clock"
	"talazo-api/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
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
	Status            string
	AdminNotes        *string
	IPAddress         string
	UserAgent         string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func NewBookingBuilder() *BookingBuilder {
	now := time.Now()
	return &BookingBuilder{
		FirstName:         "Tendai",
		LastName:          "Moyo",
		Email:             "tendai.moyo@example.com",
		Phone:             "+263771234567",
		FarmSize:          "15 hectares",
		FarmLocation:      "Mazowe, Mashonaland Central",
		CropTypes:         "Maize, tobacco",
		FarmingExperience: "10 years",
		CurrentChallenges: "Fall armyworm pressure and irregular rainfall",
		PreferredDate:     "2026-09-15",
		AdditionalNotes:   "",
		Status:            "pending",
		IPAddress:         "196.220.1.10",
		UserAgent:         "Mozilla/5.0 (test)",
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

// Build methods

func (b *BookingBuilder) BuildSubmission() dombooking.Submission {
	return dombooking.Submission{
		FirstName:         b.FirstName,
		LastName:          b.LastName,
		Email:             b.Email,
		Phone:             b.Phone,
		FarmSize:          b.FarmSize,
		FarmLocation:      b.FarmLocation,
		CropTypes:         b.CropTypes,
		FarmingExperience: b.FarmingExperience,
		CurrentChallenges: b.CurrentChallenges,
		PreferredDate:     b.PreferredDate,
		AdditionalNotes:   b.AdditionalNotes,
	}
}

func (b *BookingBuilder) BuildDomain() (*dombooking.Booking, error) {
	return dombooking.NewBooking(
		clock.NewMockClock(b.CreatedAt),
		b.BuildSubmission(),
		dombooking.SubmitMeta{IPAddress: b.IPAddress, UserAgent: b.UserAgent},
	)
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		FirstName:         b.FirstName,
		LastName:          b.LastName,
		Email:             b.Email,
		Phone:             b.Phone,
		FarmSize:          b.FarmSize,
		FarmLocation:      b.FarmLocation,
		CropTypes:         b.CropTypes,
		FarmingExperience: b.FarmingExperience,
		CurrentChallenges: b.CurrentChallenges,
		PreferredDate:     b.PreferredDate,
		AdditionalNotes:   b.AdditionalNotes,
	}
}

func (b *BookingBuilder) BuildUpdateRequestDTO(id uuid.UUID) reqdto.UpdateBookingRequest {
	status := b.Status
	return reqdto.UpdateBookingRequest{
		ID:         id.String(),
		Status:     &status,
		AdminNotes: b.AdminNotes,
	}
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	var additionalNotes *string
	if b.AdditionalNotes != "" {
		notes := b.AdditionalNotes
		additionalNotes = &notes
	}
	return &queries.BookingView{
		ID:                uuid.New(),
		FirstName:         b.FirstName,
		LastName:          b.LastName,
		Email:             b.Email,
		Phone:             b.Phone,
		FarmLocation:      b.FarmLocation,
		FarmSize:          b.FarmSize,
		CropTypes:         b.CropTypes,
		FarmingExperience: b.FarmingExperience,
		CurrentChallenges: b.CurrentChallenges,
		PreferredDate:     b.PreferredDate,
		AdditionalNotes:   additionalNotes,
		Status:            b.Status,
		AdminNotes:        b.AdminNotes,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}

// Fluent builder methods

func (b *BookingBuilder) WithFirstName(v string) *BookingBuilder {
	b.FirstName = v
	return b
}

func (b *BookingBuilder) WithEmail(v string) *BookingBuilder {
	b.Email = v
	return b
}

func (b *BookingBuilder) WithStatus(v string) *BookingBuilder {
	b.Status = v
	return b
}

func (b *BookingBuilder) WithAdminNotes(v string) *BookingBuilder {
	b.AdminNotes = &v
	return b
}

func (b *BookingBuilder) WithAdditionalNotes(v string) *BookingBuilder {
	b.AdditionalNotes = v
	return b
}

func (b *BookingBuilder) WithCreatedAt(t time.Time) *BookingBuilder {
	b.CreatedAt = t
	b.UpdatedAt = t
	return b
}
