package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/appointy-booking/internal/domain"
	providerRepo "github.com/m04kA/appointy-booking/internal/infra/storage/provider"
)

// UseCase use case для получения свободных слотов провайдера на дату
type UseCase struct {
	bookingRepo  BookingRepository
	providerRepo ProviderRepository
	availability AvailabilityService
	window       domain.BookingWindow
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	providerRepo ProviderRepository,
	availability AvailabilityService,
	window domain.BookingWindow,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		providerRepo: providerRepo,
		availability: availability,
		window:       window,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения свободных слотов.
// Если дата не проходит календарь или окно записи, список пуст.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: provider=%d, date=%s", req.ProviderID, req.Date)

	// 1. Валидация входных данных
	day, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}
	date := day.Format(domain.DateFormat)

	resp := &Response{
		ProviderID: req.ProviderID,
		Date:       date,
		Slots:      []domain.AvailableSlot{},
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем провайдера
	if _, err := uc.providerRepo.GetByID(ctx, req.ProviderID); err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			uc.logger.Warn("GetAvailableSlots: provider id=%d not found", req.ProviderID)
			return nil, ErrProviderNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get provider id=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
	}

	// 4. Календарь и окно записи
	if err := uc.window.Check(day, now); err != nil {
		uc.logger.Info("GetAvailableSlots: date %s outside booking window", date)
		return resp, nil
	}

	calendar, err := uc.availability.CalendarFor(ctx, req.ProviderID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get calendar: %v", err)
		return nil, fmt.Errorf("%w: failed to get calendar: %v", ErrInternal, err)
	}
	if !calendar.IsDateBookable(day) {
		uc.logger.Info("GetAvailableSlots: date %s is not bookable for provider id=%d", date, req.ProviderID)
		return resp, nil
	}
	resp.Bookable = true

	// 5. Открытые слоты недельного шаблона
	schedule, err := uc.availability.Schedule(ctx, req.ProviderID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get schedule: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}
	open := domain.OpenSlots(schedule, domain.WeekdayOf(day), domain.BookingSlots)

	// 6. Исключаем занятые слоты
	records, err := uc.bookingRepo.All(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", domain.ErrCollaboratorUnavailable, err)
	}
	taken := takenSlots(records, req.ProviderID, date, now)

	for _, label := range open {
		slot := domain.AvailableSlot{Time: label, Open: true, Taken: taken[label]}
		if slot.IsBookable() {
			resp.Slots = append(resp.Slots, slot)
		}
	}

	uc.logger.Info("GetAvailableSlots: %d free slots for provider=%d on %s", len(resp.Slots), req.ProviderID, date)

	return resp, nil
}
