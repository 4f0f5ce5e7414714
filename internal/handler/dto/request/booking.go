package request

import (
	"talazo-api/internal/domain/booking"
)

// CreateBookingRequest mirrors the public booking form. Field presence is
// validated in the domain layer so the error message can name the missing
// field, so nothing here carries binding:"required".
type CreateBookingRequest struct {
	FirstName         string `json:"firstName"`
	LastName          string `json:"lastName"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	FarmSize          string `json:"farmSize"`
	FarmLocation      string `json:"farmLocation"`
	CropTypes         string `json:"cropTypes"`
	FarmingExperience string `json:"farmingExperience"`
	CurrentChallenges string `json:"currentChallenges"`
	PreferredDate     string `json:"preferredDate"`
	AdditionalNotes   string `json:"additionalNotes"`
}

func (r CreateBookingRequest) ToSubmission() booking.Submission {
	return booking.Submission{
		FirstName:         r.FirstName,
		LastName:          r.LastName,
		Email:             r.Email,
		Phone:             r.Phone,
		FarmSize:          r.FarmSize,
		FarmLocation:      r.FarmLocation,
		CropTypes:         r.CropTypes,
		FarmingExperience: r.FarmingExperience,
		CurrentChallenges: r.CurrentChallenges,
		PreferredDate:     r.PreferredDate,
		AdditionalNotes:   r.AdditionalNotes,
	}
}

type UpdateBookingRequest struct {
	ID         string  `json:"id" binding:"required"`
	Status     *string `json:"status,omitempty"`
	AdminNotes *string `json:"admin_notes,omitempty"`
}
