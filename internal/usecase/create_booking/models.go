package create_booking

import (
	"github.com/m04kA/appointy-booking/internal/domain"
)

// Request модель запроса на создание заявки
type Request struct {
	Identity   domain.Identity // Автор заявки
	ProviderID int64           // ID провайдера
	Service    string          // Услуга (пусто - основная услуга провайдера)
	Date       string          // Дата в формате YYYY-MM-DD
	Time       string          // Слот, например "10:00 AM"
	Notes      string          // Описание причины визита
}

// Response модель ответа с созданной заявкой
type Response struct {
	Booking *domain.BookingRecord
}
