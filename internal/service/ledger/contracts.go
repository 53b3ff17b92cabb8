package ledger

import (
	"context"

	"github.com/m04kA/appointy-booking/internal/domain"
)

// UserBookingRepository авторитетная проекция (список бронирований пользователя)
type UserBookingRepository interface {
	Get(ctx context.Context, id string) (*domain.BookingRecord, error)
	Upsert(ctx context.Context, record *domain.BookingRecord) error
	All(ctx context.Context) ([]*domain.BookingRecord, error)
}

// ProviderRequestRepository очередь заявок провайдера
type ProviderRequestRepository interface {
	Get(ctx context.Context, id string) (*domain.ProviderRequest, error)
	Upsert(ctx context.Context, request *domain.ProviderRequest) error
	All(ctx context.Context) ([]*domain.ProviderRequest, error)
}

// CalendarRepository календарь записей пользователя
type CalendarRepository interface {
	Get(ctx context.Context, id string) (*domain.CalendarEntry, error)
	Upsert(ctx context.Context, entry *domain.CalendarEntry) error
	All(ctx context.Context) ([]*domain.CalendarEntry, error)
}

// TransactionManager атомарное выполнение нескольких записей в проекции
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счетчики ledger. Допускает nil-реализацию (*metrics.Metrics(nil)).
type Metrics interface {
	IncTransition(trigger string, err error)
	IncConsistencyViolation(projection string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
