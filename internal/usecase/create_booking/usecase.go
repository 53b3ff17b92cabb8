package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/appointy-booking/internal/domain"
	providerRepo "github.com/m04kA/appointy-booking/internal/infra/storage/provider"
	"github.com/m04kA/appointy-booking/pkg/kvstore"
)

// UseCase use case для создания заявки на запись
type UseCase struct {
	bookingRepo  BookingRepository
	ledger       Ledger
	providerRepo ProviderRepository
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
	providerRepo ProviderRepository,
	availability AvailabilityService,
	txManager TransactionManager,
	window domain.BookingWindow,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		ledger:       ledger,
		providerRepo: providerRepo,
		availability: availability,
		txManager:    txManager,
		window:       window,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания заявки.
// Проверка занятости слота и запись в проекции идут в одной транзакции хранилища.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, provider=%d, service=%q, date=%s, time=%s",
		req.Identity.UserID, req.ProviderID, req.Service, req.Date, req.Time)

	// 1. Валидация входных данных
	day, slot, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем провайдера
	provider, err := uc.providerRepo.GetByID(ctx, req.ProviderID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			uc.logger.Warn("CreateBooking: provider id=%d not found", req.ProviderID)
			return nil, ErrProviderNotFound
		}
		uc.logger.Error("CreateBooking: failed to get provider id=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
	}

	if !provider.Available {
		uc.logger.Warn("CreateBooking: provider id=%d is not accepting bookings", req.ProviderID)
		return nil, ErrProviderUnavailable
	}

	// 4. Проверяем услугу
	service := strings.TrimSpace(req.Service)
	if service == "" {
		service = provider.DefaultServiceLabel()
	}
	if !provider.Offers(service) {
		uc.logger.Warn("CreateBooking: provider id=%d does not offer %q", req.ProviderID, service)
		return nil, ErrServiceNotOffered
	}

	// 5. Проверяем окно записи и календарь провайдера
	if err := uc.window.Check(day, now); err != nil {
		uc.logger.Warn("CreateBooking: date %s outside booking window: %v", req.Date, err)
		return nil, err
	}

	calendar, err := uc.availability.CalendarFor(ctx, req.ProviderID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get calendar for provider id=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get calendar: %v", ErrInternal, err)
	}
	if !calendar.IsDateBookable(day) {
		uc.logger.Warn("CreateBooking: date %s is not bookable for provider id=%d", req.Date, req.ProviderID)
		return nil, domain.NewFieldError("date", "date is not bookable")
	}

	// 6. Слот должен быть открыт в недельном шаблоне провайдера
	schedule, err := uc.availability.Schedule(ctx, req.ProviderID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get schedule for provider id=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}
	if !domain.IsSlotOpen(schedule, domain.WeekdayOf(day), slot) {
		uc.logger.Warn("CreateBooking: slot %s on %s is closed for provider id=%d", slot, domain.WeekdayOf(day), req.ProviderID)
		return nil, fmt.Errorf("%w: %s %s is closed in the provider schedule", ErrSlotNotAvailable, req.Date, slot)
	}

	// 7. Собираем запись
	id, err := uuid.NewV7()
	if err != nil {
		uc.logger.Error("CreateBooking: failed to generate id: %v", err)
		return nil, fmt.Errorf("%w: failed to generate id: %v", ErrInternal, err)
	}

	record := &domain.BookingRecord{
		ID:           id.String(),
		UserID:       req.Identity.UserID,
		UserName:     req.Identity.DisplayName,
		UserEmail:    req.Identity.Email,
		UserPhone:    req.Identity.Phone,
		ProviderID:   provider.ID,
		ProviderName: provider.Name,
		ServiceLabel: service,
		Date:         day.Format(domain.DateFormat),
		Time:         slot,
		Notes:        strings.TrimSpace(req.Notes),
		Status:       domain.StatusPending,
		Details: &domain.ServiceDetails{
			DurationMinutes: domain.DefaultDurationMinutes,
			Fee:             provider.HourlyRate,
			Location:        provider.Location,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	// 8. Проверяем занятость слота и записываем в транзакции
	err = uc.txManager.Do(ctx, func(ctx context.Context) error {
		records, err := uc.bookingRepo.All(ctx)
		if err != nil {
			return fmt.Errorf("%w: failed to list bookings: %v", domain.ErrCollaboratorUnavailable, err)
		}

		if isSlotTaken(records, record.ProviderID, record.Date, record.Time, now) {
			return ErrSlotNotAvailable
		}

		return uc.ledger.RecordCreated(ctx, record)
	})
	if err != nil {
		if errors.Is(err, ErrSlotNotAvailable) {
			uc.logger.Warn("CreateBooking: slot %s %s of provider id=%d is taken", record.Date, record.Time, record.ProviderID)
			return nil, err
		}
		if errors.Is(err, kvstore.ErrConflict) {
			uc.logger.Warn("CreateBooking: bookings changed concurrently: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrConflict, err)
		}
		if errors.Is(err, domain.ErrCollaboratorUnavailable) {
			uc.logger.Error("CreateBooking: storage unavailable: %v", err)
			return nil, err
		}
		uc.logger.Error("CreateBooking: failed to record booking: %v", err)
		return nil, fmt.Errorf("%w: failed to record booking: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: booking id=%s created for user=%d", record.ID, record.UserID)

	return &Response{Booking: record}, nil
}
