package transition_booking

import (
	"github.com/m04kA/appointy-booking/internal/domain"
	"github.com/m04kA/appointy-booking/internal/service/bookings/models"
	transitionBooking "github.com/m04kA/appointy-booking/internal/usecase/transition_booking"
)

// TransitionRequest тело запроса; дата и слот нужны только для reschedule
type TransitionRequest struct {
	Date string `json:"date,omitempty"`
	Time string `json:"time,omitempty"`
}

// TransitionResponse HTTP response model
type TransitionResponse struct {
	PreviousStatus string                  `json:"previousStatus"`
	Booking        *models.BookingResponse `json:"booking"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *TransitionRequest) ToUseCaseRequest(identity *domain.Identity, bookingID, action string) *transitionBooking.Request {
	return &transitionBooking.Request{
		Identity:  *identity,
		BookingID: bookingID,
		Action:    action,
		Date:      r.Date,
		Time:      r.Time,
	}
}
