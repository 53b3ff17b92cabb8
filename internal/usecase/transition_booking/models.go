package transition_booking

import (
	"github.com/m04kA/appointy-booking/internal/domain"
)

// Request модель запроса на смену статуса заявки
type Request struct {
	Identity  domain.Identity // Кто применяет действие
	BookingID string
	Action    string // accept, decline, confirm, reject, reschedule, cancel, complete
	Date      string // Новая дата (только для reschedule)
	Time      string // Новый слот (только для reschedule)
}

// Response модель ответа с обновленной заявкой
type Response struct {
	Booking *domain.BookingRecord
	From    domain.BookingStatus // статус до перехода
}
