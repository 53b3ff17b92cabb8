package availability

import (
	"context"

	"github.com/m04kA/appointy-booking/internal/domain"
)

// ScheduleRepository интерфейс хранилища недельных шаблонов
type ScheduleRepository interface {
	Get(ctx context.Context, providerID int64) (domain.Schedule, error)
	Save(ctx context.Context, providerID int64, s domain.Schedule) error
	Reset(ctx context.Context, providerID int64) error
	GetBlackouts(ctx context.Context, providerID int64) ([]string, error)
	SaveBlackouts(ctx context.Context, providerID int64, dates []string) error
}

// ProviderRepository интерфейс каталога провайдеров
type ProviderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Provider, error)
}

// TransactionManager атомарный read-modify-write документа расписания
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
