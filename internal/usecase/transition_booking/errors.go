package transition_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда заявка не найдена
	ErrBookingNotFound = errors.New("booking not found")

	// ErrSlotNotAvailable возвращается, когда новый слот закрыт в шаблоне или занят активной заявкой
	ErrSlotNotAvailable = errors.New("slot is not available")

	// ErrConflict возвращается, когда заявку изменили параллельно
	ErrConflict = errors.New("booking was modified concurrently")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
