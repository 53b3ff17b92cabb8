package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/appointy-booking/internal/domain"
	providerRepo "github.com/m04kA/appointy-booking/internal/infra/storage/provider"
	"github.com/m04kA/appointy-booking/internal/service/appointments/models"
	"github.com/m04kA/appointy-booking/pkg/types"
)

const clockLayout = "15:04"

// Service записи на прием в реляционной БД
type Service struct {
	appointmentRepo AppointmentRepository
	providerRepo    ProviderRepository
	logger          Logger
}

func NewService(appointmentRepo AppointmentRepository, providerRepo ProviderRepository, logger Logger) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		providerRepo:    providerRepo,
		logger:          logger,
	}
}

// Create создает запись на прием. Длительность по умолчанию 60 минут.
func (s *Service) Create(ctx context.Context, req *models.CreateAppointmentRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Create: user=%d provider=%d date=%s time=%s", req.UserID, req.ProviderID, req.AppointmentDate, req.AppointmentTime)

	// 1. Валидируем входные данные
	appointment, err := toDomain(req)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}
	if req.RequesterID != req.UserID {
		s.logger.Warn("Create: user=%d cannot create appointment for user=%d", req.RequesterID, req.UserID)
		return nil, ErrAccessDenied
	}

	// 2. Проверяем провайдера
	if _, err := s.providerRepo.GetByID(ctx, req.ProviderID); err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			return nil, ErrProviderNotFound
		}
		s.logger.Error("Create: failed to get provider id=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: Create - get provider: %v", ErrInternal, err)
	}

	// 3. Сохраняем
	created, err := s.appointmentRepo.Create(ctx, appointment)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: appointment id=%d created", created.ID)
	return models.FromDomainAppointment(created), nil
}

// ListByUser записи пользователя, сначала самые поздние
func (s *Service) ListByUser(ctx context.Context, userID, requesterID int64) (*models.AppointmentListResponse, error) {
	if userID != requesterID {
		s.logger.Warn("ListByUser: user=%d cannot read appointments of user=%d", requesterID, userID)
		return nil, ErrAccessDenied
	}

	items, err := s.appointmentRepo.ListByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("ListByUser: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: ListByUser - repository error: %v", ErrInternal, err)
	}

	resp := &models.AppointmentListResponse{Appointments: make([]models.AppointmentResponse, 0, len(items))}
	for _, item := range items {
		resp.Appointments = append(resp.Appointments, models.FromDomainAppointmentDetails(item))
	}
	return resp, nil
}

func toDomain(req *models.CreateAppointmentRequest) (*domain.Appointment, error) {
	if req.UserID == 0 || req.ProviderID == 0 || strings.TrimSpace(req.ServiceType) == "" ||
		strings.TrimSpace(req.AppointmentDate) == "" || strings.TrimSpace(req.AppointmentTime) == "" {
		return nil, fmt.Errorf("%w: missing required fields", ErrInvalidInput)
	}

	date, err := time.Parse(domain.DateFormat, strings.TrimSpace(req.AppointmentDate))
	if err != nil {
		return nil, fmt.Errorf("%w: appointment_date must be YYYY-MM-DD", ErrInvalidInput)
	}

	clock, err := normalizeClock(req.AppointmentTime)
	if err != nil {
		return nil, fmt.Errorf("%w: appointment_time must be HH:MM or like 10:00 AM", ErrInvalidInput)
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = domain.DefaultDurationMinutes
	}
	if duration < 0 {
		return nil, fmt.Errorf("%w: duration_minutes must be positive", ErrInvalidInput)
	}

	return &domain.Appointment{
		UserID:          req.UserID,
		ProviderID:      req.ProviderID,
		ServiceType:     strings.TrimSpace(req.ServiceType),
		AppointmentDate: date,
		AppointmentTime: clock,
		DurationMinutes: duration,
		Notes:           req.Notes,
	}, nil
}

// normalizeClock принимает 24-часовой формат или метку слота
func normalizeClock(raw string) (string, error) {
	v := strings.TrimSpace(raw)
	if t, err := time.Parse(clockLayout, v); err == nil {
		return t.Format(clockLayout), nil
	}
	label, err := types.ParseSlotLabel(v)
	if err != nil {
		return "", err
	}
	m, err := label.Minutes()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60), nil
}
