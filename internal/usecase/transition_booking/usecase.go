package transition_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/appointy-booking/internal/domain"
	"github.com/m04kA/appointy-booking/internal/service/ledger"
	"github.com/m04kA/appointy-booking/pkg/kvstore"
)

// UseCase use case для смены статуса заявки
type UseCase struct {
	bookingRepo  BookingRepository
	ledger       Ledger
	availability AvailabilityService
	txManager    TransactionManager
	window       domain.BookingWindow
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	ledger Ledger,
	availability AvailabilityService,
	txManager TransactionManager,
	window domain.BookingWindow,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		ledger:       ledger,
		availability: availability,
		txManager:    txManager,
		window:       window,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case смены статуса.
// Переход проверяется на прочитанной записи, а ledger применяет его
// только если статус не изменился с момента чтения.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("TransitionBooking: user=%d, booking=%s, action=%s", req.Identity.UserID, req.BookingID, req.Action)

	// 1. Валидация входных данных
	trigger, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("TransitionBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Читаем запись
	record, err := uc.ledger.Get(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, ledger.ErrBookingNotFound) {
			uc.logger.Warn("TransitionBooking: booking id=%s not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("TransitionBooking: failed to get booking id=%s: %v", req.BookingID, err)
		return nil, err
	}

	// 4. Проверяем переход
	change, err := domain.Transition(record, trigger, req.Identity.Actor(), slotFor(trigger, req), now)
	if err != nil {
		uc.logger.Warn("TransitionBooking: %s rejected for booking id=%s: %v", trigger, record.ID, err)
		return nil, err
	}

	// 5. Новый слот должен пройти те же проверки, что и при создании
	if trigger == domain.TriggerReschedule {
		if err := uc.checkNewSlot(ctx, record, change, now); err != nil {
			return nil, err
		}
	}

	// 6. Применяем переход
	var (
		updated  *domain.BookingRecord
		mirrored error
	)
	err = uc.txManager.Do(ctx, func(ctx context.Context) error {
		if trigger == domain.TriggerReschedule {
			records, err := uc.bookingRepo.All(ctx)
			if err != nil {
				return fmt.Errorf("%w: failed to list bookings: %v", domain.ErrCollaboratorUnavailable, err)
			}
			if isSlotTaken(records, record, change.Date, change.Time, now) {
				return ErrSlotNotAvailable
			}
		}

		var err error
		updated, err = uc.ledger.RecordTransitioned(ctx, record.ID, change)
		if errors.Is(err, ledger.ErrConsistencyViolation) {
			// авторитетная запись обновлена, транзакцию не откатываем
			mirrored = err
			return nil
		}
		return err
	})
	if err == nil {
		err = mirrored
	}
	if err != nil {
		return uc.mapLedgerError(record, change, updated, err)
	}

	uc.logger.Info("TransitionBooking: booking id=%s %s -> %s", record.ID, change.From, change.Status)

	return &Response{Booking: updated, From: change.From}, nil
}

// checkNewSlot окно записи, календарь и недельный шаблон провайдера для нового слота
func (uc *UseCase) checkNewSlot(ctx context.Context, record *domain.BookingRecord, change domain.Change, now time.Time) error {
	day, err := time.Parse(domain.DateFormat, change.Date)
	if err != nil {
		return domain.NewFieldError("date", "expected YYYY-MM-DD")
	}
	if !domain.IsBookingSlot(change.Time) {
		return domain.NewFieldError("time", fmt.Sprintf("%s is not an offered slot", change.Time))
	}

	if err := uc.window.Check(day, now); err != nil {
		uc.logger.Warn("TransitionBooking: date %s outside booking window: %v", change.Date, err)
		return err
	}

	calendar, err := uc.availability.CalendarFor(ctx, record.ProviderID)
	if err != nil {
		uc.logger.Error("TransitionBooking: failed to get calendar for provider id=%d: %v", record.ProviderID, err)
		return fmt.Errorf("%w: failed to get calendar: %v", ErrInternal, err)
	}
	if !calendar.IsDateBookable(day) {
		uc.logger.Warn("TransitionBooking: date %s is not bookable for provider id=%d", change.Date, record.ProviderID)
		return domain.NewFieldError("date", "date is not bookable")
	}

	schedule, err := uc.availability.Schedule(ctx, record.ProviderID)
	if err != nil {
		uc.logger.Error("TransitionBooking: failed to get schedule for provider id=%d: %v", record.ProviderID, err)
		return fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}
	if !domain.IsSlotOpen(schedule, domain.WeekdayOf(day), change.Time) {
		uc.logger.Warn("TransitionBooking: slot %s on %s is closed for provider id=%d", change.Time, domain.WeekdayOf(day), record.ProviderID)
		return fmt.Errorf("%w: %s %s is closed in the provider schedule", ErrSlotNotAvailable, change.Date, change.Time)
	}
	return nil
}

func (uc *UseCase) mapLedgerError(record *domain.BookingRecord, change domain.Change, updated *domain.BookingRecord, err error) (*Response, error) {
	switch {
	case errors.Is(err, ErrSlotNotAvailable):
		uc.logger.Warn("TransitionBooking: slot %s %s is taken", change.Date, change.Time)
		return nil, err
	case errors.Is(err, ledger.ErrStaleRecord), errors.Is(err, kvstore.ErrConflict):
		uc.logger.Warn("TransitionBooking: booking id=%s changed concurrently: %v", record.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrConflict, err)
	case errors.Is(err, ledger.ErrBookingNotFound):
		return nil, ErrBookingNotFound
	case errors.Is(err, ledger.ErrConsistencyViolation):
		// переход сохранен в авторитетной записи, но одной из копий нет
		uc.logger.Error("TransitionBooking: booking id=%s: %v", record.ID, err)
		return &Response{Booking: updated, From: change.From}, err
	case errors.Is(err, domain.ErrCollaboratorUnavailable):
		uc.logger.Error("TransitionBooking: storage unavailable for booking id=%s: %v", record.ID, err)
		return nil, err
	default:
		uc.logger.Error("TransitionBooking: failed to apply %s to booking id=%s: %v", change.Trigger, record.ID, err)
		return nil, fmt.Errorf("%w: failed to apply transition: %v", ErrInternal, err)
	}
}
