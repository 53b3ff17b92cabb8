package bookings

import (
	"context"

	"github.com/m04kA/appointy-booking/internal/domain"
	"github.com/m04kA/appointy-booking/internal/service/ledger"
)

// UserBookingRepository авторитетная проекция бронирований
type UserBookingRepository interface {
	All(ctx context.Context) ([]*domain.BookingRecord, error)
}

// ProviderRequestRepository очередь заявок провайдеров
type ProviderRequestRepository interface {
	All(ctx context.Context) ([]*domain.ProviderRequest, error)
}

// CalendarRepository календарь записей пользователей
type CalendarRepository interface {
	All(ctx context.Context) ([]*domain.CalendarEntry, error)
}

// Ledger чтение одной записи во всех проекциях
type Ledger interface {
	Lookup(ctx context.Context, id string) (*ledger.Views, error)
}

// ProviderRepository интерфейс каталога провайдеров
type ProviderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Provider, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
