package accounts

import (
	"context"
	"time"

	"github.com/m04kA/appointy-booking/internal/domain"
)

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// ProviderRepository интерфейс репозитория провайдеров
type ProviderRepository interface {
	Create(ctx context.Context, p *domain.Provider) (*domain.Provider, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Provider, error)
}

// TransactionManager интерфейс для управления транзакциями БД
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// SessionIssuer выдает токен сессии после успешного входа
type SessionIssuer interface {
	Issue(userID int64, role, email string) (string, time.Time, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
