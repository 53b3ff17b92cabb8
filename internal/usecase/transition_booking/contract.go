package transition_booking

import (
	"context"
	"time"

	"github.com/m04kA/appointy-booking/internal/domain"
)

// BookingRepository авторитетная проекция бронирований (для проверки занятости слота)
type BookingRepository interface {
	All(ctx context.Context) ([]*domain.BookingRecord, error)
}

// Ledger чтение записи и применение перехода ко всем проекциям
type Ledger interface {
	Get(ctx context.Context, id string) (*domain.BookingRecord, error)
	RecordTransitioned(ctx context.Context, id string, change domain.Change) (*domain.BookingRecord, error)
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
