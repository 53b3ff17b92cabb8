package identity

import "errors"

var (
	// ErrUnknownUser токен валиден, но пользователя уже нет
	ErrUnknownUser = errors.New("identity.service: unknown user")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("identity.service: internal error")
)
