package directory

import "errors"

var (
	// ErrProviderNotFound возвращается, когда провайдер не найден
	ErrProviderNotFound = errors.New("directory.service: provider not found")

	// ErrAccessDenied профиль меняет не его владелец
	ErrAccessDenied = errors.New("directory.service: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("directory.service: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("directory.service: internal error")
)
