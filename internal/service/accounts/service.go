package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/appointy-booking/internal/domain"
	providerRepo "github.com/m04kA/appointy-booking/internal/infra/storage/provider"
	userRepo "github.com/m04kA/appointy-booking/internal/infra/storage/user"
	"github.com/m04kA/appointy-booking/internal/service/accounts/models"
	directory "github.com/m04kA/appointy-booking/internal/service/directory/models"
)

// PasswordCost стоимость bcrypt
const PasswordCost = 10

// Service регистрация и вход
type Service struct {
	userRepo     UserRepository
	providerRepo ProviderRepository
	txManager    TransactionManager
	sessions     SessionIssuer
	logger       Logger
}

func NewService(
	userRepo UserRepository,
	providerRepo ProviderRepository,
	txManager TransactionManager,
	sessions SessionIssuer,
	logger Logger,
) *Service {
	return &Service{
		userRepo:     userRepo,
		providerRepo: providerRepo,
		txManager:    txManager,
		sessions:     sessions,
		logger:       logger,
	}
}

// Register создает пользователя
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest) (*models.RegisterResponse, error) {
	s.logger.Info("Register: registering email=%s role=%s", req.Email, req.Role)

	// 1. Валидируем входные данные
	role := domain.UserRole(strings.ToLower(strings.TrimSpace(req.Role)))
	if isBlank(req.Name, req.Email, req.Password) || req.Role == "" {
		return nil, fmt.Errorf("%w: all fields are required", ErrInvalidInput)
	}
	if role != domain.RoleUser && role != domain.RoleProvider {
		return nil, fmt.Errorf("%w: role must be user or provider", ErrInvalidInput)
	}

	// 2. Хешируем пароль
	hash, err := hashPassword(req.Password)
	if err != nil {
		s.logger.Error("Register: failed to hash password: %v", err)
		return nil, err
	}

	// 3. Сохраняем
	user, err := s.userRepo.Create(ctx, &domain.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        normalizeEmail(req.Email),
		PasswordHash: hash,
		Role:         role,
		Phone:        strings.TrimSpace(req.Phone),
	})
	if err != nil {
		return nil, s.mapCreateError("Register", err)
	}

	s.logger.Info("Register: user id=%d registered", user.ID)
	return &models.RegisterResponse{User: models.FromDomainUser(user)}, nil
}

// RegisterProvider создает пользователя с ролью provider и его профиль в одной транзакции
func (s *Service) RegisterProvider(ctx context.Context, req *models.RegisterProviderRequest) (*models.RegisterResponse, error) {
	s.logger.Info("RegisterProvider: registering email=%s serviceType=%s", req.Email, req.ServiceType)

	if isBlank(req.Name, req.Email, req.Password, req.ServiceType, req.Location) {
		return nil, fmt.Errorf("%w: all required fields must be filled", ErrInvalidInput)
	}
	if req.ExperienceYears < 0 || req.HourlyRate < 0 {
		return nil, fmt.Errorf("%w: experience and hourly rate must not be negative", ErrInvalidInput)
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		s.logger.Error("RegisterProvider: failed to hash password: %v", err)
		return nil, err
	}

	var (
		user     *domain.User
		provider *domain.Provider
	)
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		user, err = s.userRepo.Create(ctx, &domain.User{
			Name:         strings.TrimSpace(req.Name),
			Email:        normalizeEmail(req.Email),
			PasswordHash: hash,
			Role:         domain.RoleProvider,
			Phone:        strings.TrimSpace(req.Phone),
		})
		if err != nil {
			return err
		}

		provider, err = s.providerRepo.Create(ctx, &domain.Provider{
			UserID:          user.ID,
			Name:            user.Name,
			Email:           user.Email,
			Phone:           user.Phone,
			ServiceType:     strings.TrimSpace(req.ServiceType),
			Designation:     strings.TrimSpace(req.Designation),
			Location:        strings.TrimSpace(req.Location),
			Bio:             req.Bio,
			ExperienceYears: req.ExperienceYears,
			HourlyRate:      req.HourlyRate,
			Available:       true,
			ServicesOffered: req.ServicesOffered,
		})
		return err
	})
	if err != nil {
		return nil, s.mapCreateError("RegisterProvider", err)
	}

	s.logger.Info("RegisterProvider: user id=%d provider id=%d registered", user.ID, provider.ID)
	return &models.RegisterResponse{
		User:     models.FromDomainUser(user),
		Provider: directory.FromDomainProvider(provider),
	}, nil
}

// Login проверяет пароль и выдает токен сессии
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	if isBlank(req.Email, req.Password) {
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}
	email := normalizeEmail(req.Email)

	// 1. Ищем пользователя
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("Login: user email=%s not found", email)
			return nil, ErrUserNotFound
		}
		s.logger.Error("Login: repository error for email=%s: %v", email, err)
		return nil, fmt.Errorf("%w: Login - repository error: %v", ErrInternal, err)
	}

	// 2. Сверяем пароль
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("Login: incorrect password for user id=%d", user.ID)
		return nil, ErrIncorrectPassword
	}

	// 3. Профиль провайдера, если есть
	resp := &models.LoginResponse{User: models.FromDomainUser(user)}
	if user.Role == domain.RoleProvider {
		provider, err := s.providerRepo.GetByUserID(ctx, user.ID)
		switch {
		case err == nil:
			resp.Provider = directory.FromDomainProvider(provider)
		case errors.Is(err, providerRepo.ErrProviderNotFound):
			s.logger.Warn("Login: provider user id=%d has no profile", user.ID)
		default:
			// вход не блокируем, профиль просто не отдаем
			s.logger.Error("Login: failed to load provider profile of user id=%d: %v", user.ID, err)
		}
	}

	// 4. Токен сессии
	token, expiresAt, err := s.sessions.Issue(user.ID, string(user.Role), user.Email)
	if err != nil {
		s.logger.Error("Login: failed to issue session for user id=%d: %v", user.ID, err)
		return nil, fmt.Errorf("%w: Login - issue session: %v", ErrInternal, err)
	}
	resp.Token = token
	resp.ExpiresAt = expiresAt

	s.logger.Info("Login: user id=%d logged in", user.ID)
	return resp, nil
}

// Вспомогательные методы

func (s *Service) mapCreateError(op string, err error) error {
	if errors.Is(err, userRepo.ErrEmailTaken) {
		s.logger.Warn("%s: email already exists", op)
		return ErrEmailTaken
	}
	s.logger.Error("%s: repository error: %v", op, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", fmt.Errorf("%w: password is too long", ErrInvalidInput)
		}
		return "", fmt.Errorf("%w: hash password: %v", ErrInternal, err)
	}
	return string(hash), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isBlank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}
