package domain

import (
	"strings"
	"time"
)

// Provider catalog entry of a service provider
type Provider struct {
	ID              int64
	UserID          int64
	Name            string
	Email           string
	Phone           string
	ServiceType     string // doctors, lawyers, salons, therapists ...
	Designation     string
	Location        string
	Bio             string
	ExperienceYears int
	HourlyRate      float64
	IsVerified      bool
	Available       bool // global on/off switch, independent of the weekly schedule
	ServicesOffered []string

	// Aggregates from reviews, filled by catalog queries
	AverageRating float64
	ReviewCount   int

	CreatedAt time.Time
}

// Offers returns true if the provider offers the service.
// An empty ServicesOffered list means only the provider's ServiceType or Designation.
func (p *Provider) Offers(service string) bool {
	s := strings.TrimSpace(service)
	if s == "" {
		return true
	}
	if len(p.ServicesOffered) == 0 {
		return strings.EqualFold(s, p.ServiceType) || strings.EqualFold(s, p.Designation)
	}
	for _, offered := range p.ServicesOffered {
		if strings.EqualFold(offered, s) {
			return true
		}
	}
	return false
}

// DefaultServiceLabel label used when the requester did not pick a service
func (p *Provider) DefaultServiceLabel() string {
	if p.Designation != "" {
		return p.Designation
	}
	return p.ServiceType
}

// Service catalog service category
type Service struct {
	ID          int64
	Name        string
	Description string
	Category    string
}
