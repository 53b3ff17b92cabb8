package models

import (
	"time"

	"github.com/m04kA/appointy-booking/internal/domain"
	directory "github.com/m04kA/appointy-booking/internal/service/directory/models"
)

// Request модели

// RegisterRequest регистрация пользователя
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Phone    string `json:"phone,omitempty"`
}

// RegisterProviderRequest регистрация пользователя вместе с профилем провайдера
type RegisterProviderRequest struct {
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Password        string   `json:"password"`
	Phone           string   `json:"phone,omitempty"`
	ServiceType     string   `json:"service_type"`
	Designation     string   `json:"designation,omitempty"`
	Location        string   `json:"location"`
	Bio             string   `json:"bio,omitempty"`
	ExperienceYears int      `json:"experience_years,omitempty"`
	HourlyRate      float64  `json:"hourly_rate,omitempty"`
	ServicesOffered []string `json:"services_offered,omitempty"`
}

// LoginRequest вход по email и паролю
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Response модели

// UserResponse пользователь без хеша пароля
type UserResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// RegisterResponse результат регистрации
type RegisterResponse struct {
	User     *UserResponse               `json:"user"`
	Provider *directory.ProviderResponse `json:"provider,omitempty"`
}

// LoginResponse пользователь, профиль провайдера и токен сессии
type LoginResponse struct {
	User      *UserResponse               `json:"user"`
	Provider  *directory.ProviderResponse `json:"provider"`
	Token     string                      `json:"token"`
	ExpiresAt time.Time                   `json:"expiresAt"`
}

// FromDomainUser конвертирует пользователя в DTO
func FromDomainUser(u *domain.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt,
	}
}
