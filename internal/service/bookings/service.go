package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/appointy-booking/internal/domain"
	providerRepo "github.com/m04kA/appointy-booking/internal/infra/storage/provider"
	"github.com/m04kA/appointy-booking/internal/service/bookings/models"
	"github.com/m04kA/appointy-booking/internal/service/ledger"
)

// Service чтение проекций бронирований
type Service struct {
	bookingRepo  UserBookingRepository
	requestRepo  ProviderRequestRepository
	calendarRepo CalendarRepository
	ledger       Ledger
	providerRepo ProviderRepository
	now          func() time.Time
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo UserBookingRepository,
	requestRepo ProviderRequestRepository,
	calendarRepo CalendarRepository,
	ledger Ledger,
	providerRepo ProviderRepository,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		requestRepo:  requestRepo,
		calendarRepo: calendarRepo,
		ledger:       ledger,
		providerRepo: providerRepo,
		now:          time.Now,
		logger:       logger,
	}
}

// WithClock подменяет источник времени (для тестов)
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// GetByID получает запись во всех представлениях
// Видна автору бронирования и провайдеру, к которому она адресована
func (s *Service) GetByID(ctx context.Context, id string, userID int64) (*models.BookingViewsResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for user=%d", id, userID)

	views, err := s.ledger.Lookup(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrBookingNotFound):
			s.logger.Warn("GetByID: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		case errors.Is(err, ledger.ErrConsistencyViolation) && views != nil:
			// отдаем то, что есть; нарушение уже залогировано ledger-ом
		default:
			s.logger.Error("GetByID: ledger error for booking id=%s: %v", id, err)
			return nil, fmt.Errorf("%w: GetByID - ledger error: %v", ErrInternal, err)
		}
	}

	// Проверяем права доступа
	if err := s.checkUserAccess(ctx, views.Record, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%s", userID, id)
		return nil, err
	}

	now := s.now()
	resp := &models.BookingViewsResponse{
		Booking:  models.FromDomainBooking(views.Record, now),
		Request:  models.FromDomainProviderRequest(views.Request, now),
		Calendar: models.FromDomainCalendarEntry(views.Calendar, now),
	}
	resp.CheckConsistency()
	if !resp.Consistent {
		s.logger.Warn("GetByID: booking id=%s drifted in %v", id, resp.Drift)
	}
	return resp, nil
}

// GetUserBookings история бронирований пользователя
// Опционально фильтрует по статусу (с учетом завершенных) и по типу upcoming/past
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v, kind=%v", req.UserID, req.Status, req.Kind)

	if req.RequesterID != req.UserID {
		s.logger.Warn("GetUserBookings: user=%d cannot read bookings of user=%d", req.RequesterID, req.UserID)
		return nil, ErrAccessDenied
	}

	status, kind, err := parseFilters(req.Status, req.Kind)
	if err != nil {
		s.logger.Warn("GetUserBookings: invalid filter for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	records, err := s.bookingRepo.All(ctx)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	now := s.now()
	resp := &models.BookingListResponse{Bookings: []models.BookingResponse{}}
	for _, r := range records {
		if r.UserID != req.UserID {
			continue
		}
		if status != "" && r.EffectiveStatus(now) != status {
			continue
		}
		if kind != "" && r.Kind(now) != kind {
			continue
		}
		resp.Bookings = append(resp.Bookings, *models.FromDomainBooking(r, now))
	}

	s.logger.Info("GetUserBookings: fetched %d bookings for user=%d", len(resp.Bookings), req.UserID)
	return resp, nil
}

// GetProviderRequests очередь заявок провайдера
// Доступно только владельцу профиля провайдера
func (s *Service) GetProviderRequests(ctx context.Context, req *models.GetProviderRequestsRequest) (*models.ProviderRequestListResponse, error) {
	s.logger.Info("GetProviderRequests: fetching requests for provider=%d by user=%d, status=%v", req.ProviderID, req.UserID, req.Status)

	if err := s.checkProviderOwner(ctx, req.ProviderID, req.UserID); err != nil {
		return nil, err
	}

	status, _, err := parseFilters(req.Status, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	requests, err := s.requestRepo.All(ctx)
	if err != nil {
		s.logger.Error("GetProviderRequests: repository error for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: GetProviderRequests - repository error: %v", ErrInternal, err)
	}

	now := s.now()
	resp := &models.ProviderRequestListResponse{Requests: []models.ProviderRequestResponse{}}
	for _, r := range requests {
		if r.ProviderID != req.ProviderID {
			continue
		}
		item := models.FromDomainProviderRequest(r, now)
		if status != "" && item.Status != string(status) {
			continue
		}
		resp.Requests = append(resp.Requests, *item)
	}

	s.logger.Info("GetProviderRequests: fetched %d requests for provider=%d", len(resp.Requests), req.ProviderID)
	return resp, nil
}

// GetUserCalendar календарь записей пользователя
func (s *Service) GetUserCalendar(ctx context.Context, req *models.GetUserCalendarRequest) (*models.CalendarResponse, error) {
	s.logger.Info("GetUserCalendar: fetching calendar for user=%d, kind=%v", req.UserID, req.Kind)

	if req.RequesterID != req.UserID {
		s.logger.Warn("GetUserCalendar: user=%d cannot read calendar of user=%d", req.RequesterID, req.UserID)
		return nil, ErrAccessDenied
	}

	_, kind, err := parseFilters(nil, req.Kind)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	entries, err := s.calendarRepo.All(ctx)
	if err != nil {
		s.logger.Error("GetUserCalendar: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserCalendar - repository error: %v", ErrInternal, err)
	}

	now := s.now()
	resp := &models.CalendarResponse{Appointments: []models.CalendarEntryResponse{}}
	for _, e := range entries {
		if e.UserID != req.UserID {
			continue
		}
		if kind != "" && e.Kind(now) != kind {
			continue
		}
		resp.Appointments = append(resp.Appointments, *models.FromDomainCalendarEntry(e, now))
	}

	return resp, nil
}

// Вспомогательные методы

func parseFilters(status, kind *string) (domain.BookingStatus, domain.BookingKind, error) {
	var (
		st  domain.BookingStatus
		kd  domain.BookingKind
		err error
	)
	if status != nil && *status != "" {
		if st, err = domain.ParseStatus(*status); err != nil {
			return "", "", err
		}
	}
	if kind != nil && *kind != "" {
		if kd, err = models.ParseKind(*kind); err != nil {
			return "", "", err
		}
	}
	return st, kd, nil
}

// checkUserAccess автор записи или провайдер, к которому она адресована
func (s *Service) checkUserAccess(ctx context.Context, record *domain.BookingRecord, userID int64) error {
	if record.UserID == userID {
		return nil
	}
	if err := s.checkProviderOwner(ctx, record.ProviderID, userID); err != nil {
		if errors.Is(err, ErrProviderNotFound) {
			return ErrAccessDenied
		}
		return err
	}
	return nil
}

// checkProviderOwner проверяет, что профиль провайдера принадлежит пользователю
func (s *Service) checkProviderOwner(ctx context.Context, providerID, userID int64) error {
	provider, err := s.providerRepo.GetByID(ctx, providerID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			s.logger.Warn("checkProviderOwner: provider id=%d not found", providerID)
			return ErrProviderNotFound
		}
		s.logger.Error("checkProviderOwner: failed to get provider id=%d: %v", providerID, err)
		return fmt.Errorf("%w: checkProviderOwner - failed to get provider: %v", ErrInternal, err)
	}

	if provider.UserID != userID {
		s.logger.Warn("checkProviderOwner: user=%d does not own provider=%d", userID, providerID)
		return ErrAccessDenied
	}
	return nil
}
