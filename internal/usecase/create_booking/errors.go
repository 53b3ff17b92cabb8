package create_booking

import "errors"

var (
	// ErrProviderNotFound возвращается, когда провайдер не найден
	ErrProviderNotFound = errors.New("provider not found")

	// ErrProviderUnavailable возвращается, когда провайдер не принимает записи
	ErrProviderUnavailable = errors.New("provider is not accepting bookings")

	// ErrServiceNotOffered возвращается, когда провайдер не оказывает услугу
	ErrServiceNotOffered = errors.New("service is not offered by provider")

	// ErrSlotNotAvailable возвращается, когда слот закрыт в шаблоне провайдера или занят активной заявкой
	ErrSlotNotAvailable = errors.New("slot is not available")

	// ErrConflict возвращается, когда проекции изменились параллельно, запрос можно повторить
	ErrConflict = errors.New("bookings were modified concurrently")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
