package directory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/appointy-booking/internal/domain"
	providerRepo "github.com/m04kA/appointy-booking/internal/infra/storage/provider"
	"github.com/m04kA/appointy-booking/internal/service/directory/models"
)

// Service каталог услуг и провайдеров, только чтение
type Service struct {
	serviceRepo  ServiceRepository
	providerRepo ProviderRepository
	logger       Logger
}

func NewService(serviceRepo ServiceRepository, providerRepo ProviderRepository, logger Logger) *Service {
	return &Service{
		serviceRepo:  serviceRepo,
		providerRepo: providerRepo,
		logger:       logger,
	}
}

// ListServices все категории услуг
func (s *Service) ListServices(ctx context.Context) ([]models.ServiceResponse, error) {
	services, err := s.serviceRepo.List(ctx)
	if err != nil {
		s.logger.Error("ListServices: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListServices - repository error: %v", ErrInternal, err)
	}

	resp := make([]models.ServiceResponse, 0, len(services))
	for _, svc := range services {
		resp = append(resp, models.FromDomainService(svc))
	}
	return resp, nil
}

// ListProviders провайдеры категории с рейтингом
func (s *Service) ListProviders(ctx context.Context, serviceType string) ([]*models.ProviderResponse, error) {
	serviceType = strings.TrimSpace(serviceType)
	if serviceType == "" {
		return nil, fmt.Errorf("%w: serviceType is required", ErrInvalidInput)
	}

	providers, err := s.providerRepo.ListByServiceType(ctx, serviceType)
	if err != nil {
		s.logger.Error("ListProviders: repository error for serviceType=%s: %v", serviceType, err)
		return nil, fmt.Errorf("%w: ListProviders - repository error: %v", ErrInternal, err)
	}

	resp := make([]*models.ProviderResponse, 0, len(providers))
	for _, p := range providers {
		resp = append(resp, models.FromDomainProvider(p))
	}
	s.logger.Info("ListProviders: found %d providers for serviceType=%s", len(resp), serviceType)
	return resp, nil
}

// GetProvider провайдер по id
func (s *Service) GetProvider(ctx context.Context, id int64) (*domain.Provider, error) {
	provider, err := s.providerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			return nil, ErrProviderNotFound
		}
		s.logger.Error("GetProvider: repository error for provider=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetProvider - repository error: %v", ErrInternal, err)
	}
	return provider, nil
}

// SetAvailability включает или выключает прием новых заявок.
// Недельное расписание при этом не меняется.
func (s *Service) SetAvailability(ctx context.Context, providerID, userID int64, available bool) (*models.ProviderResponse, error) {
	provider, err := s.GetProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}
	if provider.UserID != userID {
		s.logger.Warn("SetAvailability: user=%d does not own provider=%d", userID, providerID)
		return nil, ErrAccessDenied
	}

	if err := s.providerRepo.SetAvailable(ctx, providerID, available); err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			return nil, ErrProviderNotFound
		}
		s.logger.Error("SetAvailability: repository error for provider=%d: %v", providerID, err)
		return nil, fmt.Errorf("%w: SetAvailability - repository error: %v", ErrInternal, err)
	}

	provider.Available = available
	s.logger.Info("SetAvailability: provider=%d available=%t", providerID, available)
	return models.FromDomainProvider(provider), nil
}
