package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/appointy-booking/internal/domain"
	providerRepo "github.com/m04kA/appointy-booking/internal/infra/storage/provider"
	"github.com/m04kA/appointy-booking/internal/service/availability/models"
	"github.com/m04kA/appointy-booking/pkg/types"
)

// Service недельные шаблоны провайдеров и календарный фильтр дат
type Service struct {
	scheduleRepo ScheduleRepository
	providerRepo ProviderRepository
	txManager    TransactionManager
	calendar     *domain.Calendar
	logger       Logger
}

// NewService создает новый экземпляр сервиса доступности.
// calendar задает общий выходной день и праздники.
func NewService(
	scheduleRepo ScheduleRepository,
	providerRepo ProviderRepository,
	txManager TransactionManager,
	calendar *domain.Calendar,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		providerRepo: providerRepo,
		txManager:    txManager,
		calendar:     calendar,
		logger:       logger,
	}
}

// GetSchedule шаблон провайдера со статистикой и датами недоступности
func (s *Service) GetSchedule(ctx context.Context, providerID int64) (*models.ScheduleResponse, error) {
	s.logger.Info("GetSchedule: fetching schedule for provider=%d", providerID)

	if _, err := s.getProvider(ctx, "GetSchedule", providerID); err != nil {
		return nil, err
	}

	schedule, err := s.scheduleRepo.Get(ctx, providerID)
	if err != nil {
		s.logger.Error("GetSchedule: repository error for provider=%d: %v", providerID, err)
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}

	calendar, err := s.CalendarFor(ctx, providerID)
	if err != nil {
		return nil, err
	}

	return models.FromDomainSchedule(providerID, schedule, calendar), nil
}

// SaveSchedule заменяет шаблон целиком
// Доступно только владельцу профиля провайдера
func (s *Service) SaveSchedule(ctx context.Context, req *models.SaveScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("SaveSchedule: saving schedule for provider=%d by user=%d", req.ProviderID, req.UserID)

	// 1. Проверяем права доступа
	if err := s.checkOwner(ctx, "SaveSchedule", req.ProviderID, req.UserID); err != nil {
		return nil, err
	}

	// 2. Валидируем документ
	schedule, err := domain.NormalizeSchedule(req.Schedule)
	if err != nil {
		s.logger.Warn("SaveSchedule: invalid schedule for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 3. Сохраняем
	if err := s.scheduleRepo.Save(ctx, req.ProviderID, schedule); err != nil {
		s.logger.Error("SaveSchedule: repository error for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: SaveSchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SaveSchedule: schedule saved for provider=%d", req.ProviderID)
	return s.GetSchedule(ctx, req.ProviderID)
}

// ResetSchedule очищает шаблон: все слоты закрыты
func (s *Service) ResetSchedule(ctx context.Context, providerID, userID int64) error {
	s.logger.Info("ResetSchedule: resetting schedule for provider=%d by user=%d", providerID, userID)

	if err := s.checkOwner(ctx, "ResetSchedule", providerID, userID); err != nil {
		return err
	}

	if err := s.scheduleRepo.Reset(ctx, providerID); err != nil {
		s.logger.Error("ResetSchedule: repository error for provider=%d: %v", providerID, err)
		return fmt.Errorf("%w: ResetSchedule - repository error: %v", ErrInternal, err)
	}
	return nil
}

// ToggleSlot переключает один слот дня
func (s *Service) ToggleSlot(ctx context.Context, req *models.ToggleSlotRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("ToggleSlot: provider=%d day=%s time=%s by user=%d", req.ProviderID, req.Day, req.Time, req.UserID)

	// 1. Валидируем входные данные
	day, err := domain.ParseWeekday(req.Day)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	label, err := types.ParseSlotLabel(req.Time)
	if err != nil {
		return nil, fmt.Errorf("%w: time: %v", ErrInvalidInput, err)
	}
	if !domain.IsScheduleSlot(label) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, domain.NewFieldError("time", fmt.Sprintf("slot %q is outside the schedule grid", req.Time)))
	}

	// 2. Проверяем права доступа
	if err := s.checkOwner(ctx, "ToggleSlot", req.ProviderID, req.UserID); err != nil {
		return nil, err
	}

	// 3. Read-modify-write в одной транзакции хранилища
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		current, err := s.scheduleRepo.Get(ctx, req.ProviderID)
		if err != nil {
			return err
		}
		return s.scheduleRepo.Save(ctx, req.ProviderID, domain.ToggleSlot(current, day, label))
	})
	if err != nil {
		s.logger.Error("ToggleSlot: failed for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: ToggleSlot - repository error: %v", ErrInternal, err)
	}

	return s.GetSchedule(ctx, req.ProviderID)
}

// ToggleDay открывает или закрывает все слоты дня
func (s *Service) ToggleDay(ctx context.Context, req *models.ToggleDayRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("ToggleDay: provider=%d day=%s available=%t by user=%d", req.ProviderID, req.Day, req.IsAvailable, req.UserID)

	day, err := domain.ParseWeekday(req.Day)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.checkOwner(ctx, "ToggleDay", req.ProviderID, req.UserID); err != nil {
		return nil, err
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		current, err := s.scheduleRepo.Get(ctx, req.ProviderID)
		if err != nil {
			return err
		}
		updated := domain.ToggleWholeDay(current, day, domain.ScheduleSlots, req.IsAvailable)
		return s.scheduleRepo.Save(ctx, req.ProviderID, updated)
	})
	if err != nil {
		s.logger.Error("ToggleDay: failed for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: ToggleDay - repository error: %v", ErrInternal, err)
	}

	return s.GetSchedule(ctx, req.ProviderID)
}

// SetBlackoutDates заменяет даты, в которые провайдер не принимает
func (s *Service) SetBlackoutDates(ctx context.Context, req *models.SetBlackoutDatesRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("SetBlackoutDates: provider=%d dates=%d by user=%d", req.ProviderID, len(req.Dates), req.UserID)

	dates, err := models.SortedDates(req.Dates)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.checkOwner(ctx, "SetBlackoutDates", req.ProviderID, req.UserID); err != nil {
		return nil, err
	}

	if err := s.scheduleRepo.SaveBlackouts(ctx, req.ProviderID, dates); err != nil {
		s.logger.Error("SetBlackoutDates: repository error for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: SetBlackoutDates - repository error: %v", ErrInternal, err)
	}

	return s.GetSchedule(ctx, req.ProviderID)
}

// CalendarFor общий календарь с датами недоступности провайдера
func (s *Service) CalendarFor(ctx context.Context, providerID int64) (*domain.Calendar, error) {
	dates, err := s.scheduleRepo.GetBlackouts(ctx, providerID)
	if err != nil {
		s.logger.Error("CalendarFor: repository error for provider=%d: %v", providerID, err)
		return nil, fmt.Errorf("%w: CalendarFor - repository error: %v", ErrInternal, err)
	}
	return s.calendar.WithBlackouts(dates), nil
}

// IsDateBookable календарный фильтр для конкретного провайдера.
// Недельный шаблон не учитывается.
func (s *Service) IsDateBookable(ctx context.Context, providerID int64, date time.Time) (bool, error) {
	calendar, err := s.CalendarFor(ctx, providerID)
	if err != nil {
		return false, err
	}
	return calendar.IsDateBookable(date), nil
}

// Schedule шаблон провайдера без проверки существования (для usecase-ов)
func (s *Service) Schedule(ctx context.Context, providerID int64) (domain.Schedule, error) {
	schedule, err := s.scheduleRepo.Get(ctx, providerID)
	if err != nil {
		s.logger.Error("Schedule: repository error for provider=%d: %v", providerID, err)
		return nil, fmt.Errorf("%w: Schedule - repository error: %v", ErrInternal, err)
	}
	return schedule, nil
}

// Вспомогательные методы

func (s *Service) getProvider(ctx context.Context, op string, providerID int64) (*domain.Provider, error) {
	provider, err := s.providerRepo.GetByID(ctx, providerID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			s.logger.Warn("%s: provider id=%d not found", op, providerID)
			return nil, ErrProviderNotFound
		}
		s.logger.Error("%s: failed to get provider id=%d: %v", op, providerID, err)
		return nil, fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
	}
	return provider, nil
}

// checkOwner шаблон меняет только пользователь, которому принадлежит профиль
func (s *Service) checkOwner(ctx context.Context, op string, providerID, userID int64) error {
	provider, err := s.getProvider(ctx, op, providerID)
	if err != nil {
		return err
	}
	if provider.UserID != userID {
		s.logger.Warn("%s: user=%d does not own provider=%d", op, userID, providerID)
		return ErrAccessDenied
	}
	return nil
}
