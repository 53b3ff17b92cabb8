package create_booking

import (
	"github.com/m04kA/appointy-booking/internal/domain"
	createBooking "github.com/m04kA/appointy-booking/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ProviderID int64  `json:"providerId"`
	Service    string `json:"service,omitempty"`
	Date       string `json:"date"` // "2025-10-20"
	Time       string `json:"time"` // "10:00 AM"
	Notes      string `json:"notes"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(identity *domain.Identity) *createBooking.Request {
	return &createBooking.Request{
		Identity:   *identity,
		ProviderID: r.ProviderID,
		Service:    r.Service,
		Date:       r.Date,
		Time:       r.Time,
		Notes:      r.Notes,
	}
}
