package accounts

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("accounts.service: invalid input data")

	// ErrEmailTaken email уже зарегистрирован
	ErrEmailTaken = errors.New("accounts.service: email already exists")

	// ErrUserNotFound пользователь с таким email не найден
	ErrUserNotFound = errors.New("accounts.service: user not found")

	// ErrIncorrectPassword пароль не совпадает
	ErrIncorrectPassword = errors.New("accounts.service: incorrect password")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("accounts.service: internal error")
)
