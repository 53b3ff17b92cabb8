package models

import (
	"time"

	"github.com/m04kA/appointy-booking/internal/domain"
)

// ServiceResponse категория услуг
type ServiceResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// ProviderResponse карточка провайдера в каталоге
type ProviderResponse struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"userId"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	ServiceType     string    `json:"serviceType"`
	Designation     string    `json:"designation"`
	Location        string    `json:"location"`
	Bio             string    `json:"bio"`
	ExperienceYears int       `json:"experienceYears"`
	HourlyRate      float64   `json:"hourlyRate"`
	IsVerified      bool      `json:"isVerified"`
	Available       bool      `json:"available"`
	ServicesOffered []string  `json:"servicesOffered"`
	AverageRating   float64   `json:"averageRating"`
	ReviewCount     int       `json:"reviewCount"`
	CreatedAt       time.Time `json:"createdAt"`
}

// FromDomainService конвертирует категорию в DTO
func FromDomainService(s *domain.Service) ServiceResponse {
	return ServiceResponse{ID: s.ID, Name: s.Name, Description: s.Description, Category: s.Category}
}

// FromDomainProvider конвертирует провайдера в DTO
func FromDomainProvider(p *domain.Provider) *ProviderResponse {
	if p == nil {
		return nil
	}
	services := p.ServicesOffered
	if services == nil {
		services = []string{}
	}
	return &ProviderResponse{
		ID:              p.ID,
		UserID:          p.UserID,
		Name:            p.Name,
		Email:           p.Email,
		ServiceType:     p.ServiceType,
		Designation:     p.Designation,
		Location:        p.Location,
		Bio:             p.Bio,
		ExperienceYears: p.ExperienceYears,
		HourlyRate:      p.HourlyRate,
		IsVerified:      p.IsVerified,
		Available:       p.Available,
		ServicesOffered: services,
		AverageRating:   p.AverageRating,
		ReviewCount:     p.ReviewCount,
		CreatedAt:       p.CreatedAt,
	}
}
