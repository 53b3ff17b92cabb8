package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/appointy-booking/internal/domain"
	providerRepo "github.com/m04kA/appointy-booking/internal/infra/storage/provider"
	userRepo "github.com/m04kA/appointy-booking/internal/infra/storage/user"
)

// Service текущий актор по id из сессии.
// Результат только читается ядром бронирований и никогда не изменяется им.
type Service struct {
	userRepo     UserRepository
	providerRepo ProviderRepository
	logger       Logger
}

func NewService(userRepo UserRepository, providerRepo ProviderRepository, logger Logger) *Service {
	return &Service{
		userRepo:     userRepo,
		providerRepo: providerRepo,
		logger:       logger,
	}
}

// Resolve собирает Identity: данные пользователя и, если есть, id его профиля провайдера
func (s *Service) Resolve(ctx context.Context, userID int64) (*domain.Identity, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("Resolve: user id=%d not found", userID)
			return nil, ErrUnknownUser
		}
		s.logger.Error("Resolve: failed to get user id=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: Resolve - get user: %v", ErrInternal, err)
	}

	identity := &domain.Identity{
		UserID:      user.ID,
		DisplayName: user.Name,
		Email:       user.Email,
		Phone:       user.Phone,
		Role:        user.Role,
	}

	if user.Role != domain.RoleProvider {
		return identity, nil
	}

	provider, err := s.providerRepo.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		identity.ProviderID = provider.ID
	case errors.Is(err, providerRepo.ErrProviderNotFound):
		// роль provider без профиля: действует как обычный пользователь
		s.logger.Warn("Resolve: user id=%d has provider role but no profile", userID)
	default:
		s.logger.Error("Resolve: failed to get provider profile of user id=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: Resolve - get provider: %v", ErrInternal, err)
	}

	return identity, nil
}
