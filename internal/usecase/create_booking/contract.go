package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/appointy-booking/internal/domain"
)

// BookingRepository авторитетная проекция бронирований (для проверки занятости слота)
type BookingRepository interface {
	All(ctx context.Context) ([]*domain.BookingRecord, error)
}

// Ledger запись новой заявки во все проекции
type Ledger interface {
	RecordCreated(ctx context.Context, record *domain.BookingRecord) error
}

// ProviderRepository каталог провайдеров
type ProviderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Provider, error)
}

// AvailabilityService недельный шаблон и календарь провайдера с учетом его недоступных дат
type AvailabilityService interface {
	Schedule(ctx context.Context, providerID int64) (domain.Schedule, error)
	CalendarFor(ctx context.Context, providerID int64) (*domain.Calendar, error)
}

// TransactionManager интерфейс для управления транзакциями хранилища
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
