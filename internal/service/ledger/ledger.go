package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/appointy-booking/internal/domain"
	"github.com/m04kA/appointy-booking/internal/infra/storage/projection"
	"github.com/m04kA/appointy-booking/pkg/kvstore"
)

// Имена проекций для логов и метрик
const (
	ProjectionUserBookings     = "user_bookings"
	ProjectionProviderRequests = "provider_requests"
	ProjectionCalendar         = "user_calendar"
)

// Views одна запись во всех трех проекциях
type Views struct {
	Record   *domain.BookingRecord
	Request  *domain.ProviderRequest
	Calendar *domain.CalendarEntry
}

// Ledger единственный путь записи в проекции бронирований.
// id записи является общим ключом всех проекций.
type Ledger struct {
	bookings  UserBookingRepository
	requests  ProviderRequestRepository
	calendar  CalendarRepository
	txManager TransactionManager
	metrics   Metrics
	now       func() time.Time
	logger    Logger
}

func NewLedger(
	bookings UserBookingRepository,
	requests ProviderRequestRepository,
	calendar CalendarRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *Ledger {
	return &Ledger{
		bookings:  bookings,
		requests:  requests,
		calendar:  calendar,
		txManager: txManager,
		metrics:   metrics,
		now:       time.Now,
		logger:    logger,
	}
}

// WithClock подменяет источник времени (для тестов)
func (l *Ledger) WithClock(now func() time.Time) *Ledger {
	l.now = now
	return l
}

// RecordCreated записывает новую запись во все три проекции одной транзакцией
func (l *Ledger) RecordCreated(ctx context.Context, record *domain.BookingRecord) error {
	l.logger.Info("RecordCreated: booking id=%s user=%d provider=%d date=%s time=%s",
		record.ID, record.UserID, record.ProviderID, record.Date, record.Time)

	err := l.txManager.Do(ctx, func(ctx context.Context) error {
		// 1. id должен быть новым
		_, err := l.bookings.Get(ctx, record.ID)
		if err == nil {
			return fmt.Errorf("%w: id=%s", ErrAlreadyExists, record.ID)
		}
		if !errors.Is(err, projection.ErrNotFound) {
			return unavailable("RecordCreated - check existing", err)
		}

		// 2. Авторитетная запись
		if err := l.bookings.Upsert(ctx, record.Clone()); err != nil {
			return unavailable("RecordCreated - insert user booking", err)
		}

		// 3. Копия для провайдера
		if err := l.requests.Upsert(ctx, domain.NewProviderRequest(record)); err != nil {
			return unavailable("RecordCreated - insert provider request", err)
		}

		// 4. Копия в календарь пользователя
		if err := l.calendar.Upsert(ctx, domain.NewCalendarEntry(record)); err != nil {
			return unavailable("RecordCreated - insert calendar entry", err)
		}

		return nil
	})
	if err != nil {
		err = classify("RecordCreated", err)
		l.logger.Error("RecordCreated: booking id=%s not recorded: %v", record.ID, err)
		return err
	}

	l.logger.Info("RecordCreated: booking id=%s fanned out to %s, %s, %s",
		record.ID, ProjectionUserBookings, ProjectionProviderRequests, ProjectionCalendar)
	return nil
}

// RecordTransitioned применяет change к записи id во всех проекциях.
//
// Compare-and-set: запись перечитывается внутри транзакции, и её статус
// должен совпадать с change.From, иначе ErrStaleRecord.
// Если после обновления авторитетной записи в другой проекции нет такого id,
// изменения сохраняются, а вызывающему возвращается ErrConsistencyViolation
// вместе с обновленной записью.
func (l *Ledger) RecordTransitioned(ctx context.Context, id string, change domain.Change) (*domain.BookingRecord, error) {
	l.logger.Info("RecordTransitioned: booking id=%s %s -> %s (%s)", id, change.From, change.Status, change.Trigger)

	var (
		updated *domain.BookingRecord
		missing []string
	)

	err := l.txManager.Do(ctx, func(ctx context.Context) error {
		missing = nil

		// 1. Читаем текущую авторитетную запись
		current, err := l.bookings.Get(ctx, id)
		if errors.Is(err, projection.ErrNotFound) {
			return fmt.Errorf("%w: id=%s", ErrBookingNotFound, id)
		}
		if err != nil {
			return unavailable("RecordTransitioned - get user booking", err)
		}

		// 2. Compare-and-set по статусу
		if current.Status != change.From {
			return fmt.Errorf("%w: id=%s expected=%s actual=%s", ErrStaleRecord, id, change.From, current.Status)
		}

		// 3. Авторитетная запись
		updated = change.ApplyTo(current, l.now())
		if err := l.bookings.Upsert(ctx, updated); err != nil {
			return unavailable("RecordTransitioned - update user booking", err)
		}

		// 4. Очередь провайдера
		request, err := l.requests.Get(ctx, id)
		switch {
		case errors.Is(err, projection.ErrNotFound):
			missing = append(missing, ProjectionProviderRequests)
		case err != nil:
			return unavailable("RecordTransitioned - get provider request", err)
		default:
			request.Status = updated.Status
			request.Date = updated.Date
			request.Time = updated.Time
			request.UpdatedAt = updated.UpdatedAt
			if err := l.requests.Upsert(ctx, request); err != nil {
				return unavailable("RecordTransitioned - update provider request", err)
			}
		}

		// 5. Календарь пользователя
		entry, err := l.calendar.Get(ctx, id)
		switch {
		case errors.Is(err, projection.ErrNotFound):
			missing = append(missing, ProjectionCalendar)
		case err != nil:
			return unavailable("RecordTransitioned - get calendar entry", err)
		default:
			entry.Status = updated.Status
			entry.Date = updated.Date
			entry.Time = updated.Time
			entry.UpdatedAt = updated.UpdatedAt
			if err := l.calendar.Upsert(ctx, entry); err != nil {
				return unavailable("RecordTransitioned - update calendar entry", err)
			}
		}

		return nil
	})

	if err != nil {
		err = classify("RecordTransitioned", err)
		l.metrics.IncTransition(string(change.Trigger), err)
		l.logger.Warn("RecordTransitioned: booking id=%s not updated: %v", id, err)
		return nil, err
	}
	l.metrics.IncTransition(string(change.Trigger), nil)

	if len(missing) > 0 {
		for _, p := range missing {
			l.metrics.IncConsistencyViolation(p)
		}
		l.logger.Error("RecordTransitioned: booking id=%s updated to %s but missing in %s",
			id, updated.Status, strings.Join(missing, ", "))
		return updated, fmt.Errorf("%w: id=%s missing in %s", ErrConsistencyViolation, id, strings.Join(missing, ", "))
	}

	l.logger.Info("RecordTransitioned: booking id=%s is %s in all projections", id, updated.Status)
	return updated, nil
}

// Get авторитетная запись
func (l *Ledger) Get(ctx context.Context, id string) (*domain.BookingRecord, error) {
	record, err := l.bookings.Get(ctx, id)
	if errors.Is(err, projection.ErrNotFound) {
		return nil, fmt.Errorf("%w: id=%s", ErrBookingNotFound, id)
	}
	if err != nil {
		return nil, unavailable("Get", err)
	}
	return record, nil
}

// Lookup все три представления записи из одного снимка.
// Если зеркала нет, возвращает найденные представления и ErrConsistencyViolation.
func (l *Ledger) Lookup(ctx context.Context, id string) (*Views, error) {
	var views Views

	err := l.txManager.Do(ctx, func(ctx context.Context) error {
		views = Views{}

		record, err := l.bookings.Get(ctx, id)
		if errors.Is(err, projection.ErrNotFound) {
			return fmt.Errorf("%w: id=%s", ErrBookingNotFound, id)
		}
		if err != nil {
			return unavailable("Lookup - get user booking", err)
		}
		views.Record = record

		request, err := l.requests.Get(ctx, id)
		if err != nil && !errors.Is(err, projection.ErrNotFound) {
			return unavailable("Lookup - get provider request", err)
		}
		views.Request = request

		entry, err := l.calendar.Get(ctx, id)
		if err != nil && !errors.Is(err, projection.ErrNotFound) {
			return unavailable("Lookup - get calendar entry", err)
		}
		views.Calendar = entry

		return nil
	})
	if err != nil {
		return nil, classify("Lookup", err)
	}

	if views.Request == nil || views.Calendar == nil {
		l.logger.Error("Lookup: booking id=%s has incomplete fan-out (request=%t calendar=%t)",
			id, views.Request != nil, views.Calendar != nil)
		return &views, fmt.Errorf("%w: id=%s", ErrConsistencyViolation, id)
	}

	return &views, nil
}

func unavailable(step string, err error) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrCollaboratorUnavailable, step, err)
}

// classify приводит ошибки хранилища к таксономии ledger
func classify(op string, err error) error {
	switch {
	case errors.Is(err, kvstore.ErrConflict):
		return fmt.Errorf("%w: %s: %v", ErrStaleRecord, op, err)
	case errors.Is(err, domain.ErrCollaboratorUnavailable),
		errors.Is(err, ErrStaleRecord),
		errors.Is(err, ErrBookingNotFound),
		errors.Is(err, ErrAlreadyExists):
		return err
	default:
		return unavailable(op, err)
	}
}
