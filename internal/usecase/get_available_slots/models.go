package get_available_slots

import (
	"github.com/m04kA/appointy-booking/internal/domain"
)

// Request модель запроса на получение свободных слотов
type Request struct {
	ProviderID int64  // ID провайдера
	Date       string // Дата в формате YYYY-MM-DD
}

// Response модель ответа со списком свободных слотов
type Response struct {
	ProviderID int64
	Date       string
	Bookable   bool                   // дата проходит календарь и окно записи
	Slots      []domain.AvailableSlot // только слоты, которые можно запросить
}
