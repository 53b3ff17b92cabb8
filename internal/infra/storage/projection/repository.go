package projection

import (
	"context"

	"github.com/m04kA/appointy-booking/internal/domain"
)

// UserBookingRepository пользовательская (авторитетная) проекция бронирований
type UserBookingRepository struct {
	items collection[domain.BookingRecord]
}

func NewUserBookingRepository(store Executor) *UserBookingRepository {
	return &UserBookingRepository{items: collection[domain.BookingRecord]{
		store: store,
		key:   UserBookingsKey,
		idOf:  func(b *domain.BookingRecord) string { return b.ID },
	}}
}

// Get возвращает запись по id или ErrNotFound
func (r *UserBookingRepository) Get(ctx context.Context, id string) (*domain.BookingRecord, error) {
	return r.items.get(ctx, id)
}

// Upsert вставляет или заменяет запись целиком
func (r *UserBookingRepository) Upsert(ctx context.Context, record *domain.BookingRecord) error {
	return r.items.upsert(ctx, record)
}

// All все записи в порядке создания
func (r *UserBookingRepository) All(ctx context.Context) ([]*domain.BookingRecord, error) {
	return r.items.all(ctx)
}

// ProviderRequestRepository очередь заявок провайдеров
type ProviderRequestRepository struct {
	items collection[domain.ProviderRequest]
}

func NewProviderRequestRepository(store Executor) *ProviderRequestRepository {
	return &ProviderRequestRepository{items: collection[domain.ProviderRequest]{
		store: store,
		key:   ProviderRequestsKey,
		idOf:  func(r *domain.ProviderRequest) string { return r.ID },
	}}
}

func (r *ProviderRequestRepository) Get(ctx context.Context, id string) (*domain.ProviderRequest, error) {
	return r.items.get(ctx, id)
}

func (r *ProviderRequestRepository) Upsert(ctx context.Context, request *domain.ProviderRequest) error {
	return r.items.upsert(ctx, request)
}

func (r *ProviderRequestRepository) All(ctx context.Context) ([]*domain.ProviderRequest, error) {
	return r.items.all(ctx)
}

// CalendarRepository календарь записей пользователя
type CalendarRepository struct {
	items collection[domain.CalendarEntry]
}

func NewCalendarRepository(store Executor) *CalendarRepository {
	return &CalendarRepository{items: collection[domain.CalendarEntry]{
		store: store,
		key:   UserAppointmentsKey,
		idOf:  func(e *domain.CalendarEntry) string { return e.ID },
	}}
}

func (r *CalendarRepository) Get(ctx context.Context, id string) (*domain.CalendarEntry, error) {
	return r.items.get(ctx, id)
}

func (r *CalendarRepository) Upsert(ctx context.Context, entry *domain.CalendarEntry) error {
	return r.items.upsert(ctx, entry)
}

func (r *CalendarRepository) All(ctx context.Context) ([]*domain.CalendarEntry, error) {
	return r.items.all(ctx)
}
