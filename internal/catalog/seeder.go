package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/appointy-booking/internal/domain"
	"github.com/m04kA/appointy-booking/internal/service/accounts"
	accountModels "github.com/m04kA/appointy-booking/internal/service/accounts/models"
	availabilityModels "github.com/m04kA/appointy-booking/internal/service/availability/models"
)

// Report итог загрузки фикстур
type Report struct {
	Services         int
	Providers        int
	SkippedProviders int // уже зарегистрированы
}

// Seeder загружает фикстуры через те же сервисы, что и HTTP API
type Seeder struct {
	services  ServiceRepository
	accounts  AccountService
	schedules ScheduleService
	logger    Logger
}

func NewSeeder(services ServiceRepository, accounts AccountService, schedules ScheduleService, logger Logger) *Seeder {
	return &Seeder{
		services:  services,
		accounts:  accounts,
		schedules: schedules,
		logger:    logger,
	}
}

// Seed идемпотентна: категории обновляются по имени,
// провайдеры с уже занятым email пропускаются
func (s *Seeder) Seed(ctx context.Context, f *Fixtures) (*Report, error) {
	report := &Report{}

	for _, svc := range f.Services {
		if _, err := s.services.Upsert(ctx, &domain.Service{
			Name:        svc.Name,
			Description: svc.Description,
			Category:    svc.Category,
		}); err != nil {
			return report, fmt.Errorf("catalog: upsert service %q: %w", svc.Name, err)
		}
		report.Services++
	}

	for _, p := range f.Providers {
		resp, err := s.accounts.RegisterProvider(ctx, &accountModels.RegisterProviderRequest{
			Name:            p.Name,
			Email:           p.Email,
			Password:        p.Password,
			Phone:           p.Phone,
			ServiceType:     p.ServiceType,
			Designation:     p.Designation,
			Location:        p.Location,
			Bio:             p.Bio,
			ExperienceYears: p.ExperienceYears,
			HourlyRate:      p.HourlyRate,
			ServicesOffered: p.ServicesOffered,
		})
		if err != nil {
			if errors.Is(err, accounts.ErrEmailTaken) {
				s.logger.Warn("Seed: provider email=%s already registered, skipping", p.Email)
				report.SkippedProviders++
				continue
			}
			return report, fmt.Errorf("catalog: register provider %q: %w", p.Email, err)
		}

		if err := s.applySchedule(ctx, resp.User.ID, resp.Provider.ID, p); err != nil {
			return report, err
		}
		report.Providers++
	}

	s.logger.Info("Seed: services=%d providers=%d skipped=%d", report.Services, report.Providers, report.SkippedProviders)
	return report, nil
}

func (s *Seeder) applySchedule(ctx context.Context, userID, providerID int64, p ProviderFixture) error {
	if len(p.Schedule) > 0 {
		doc := make(map[string]map[string]bool, len(p.Schedule))
		for day, slots := range p.Schedule {
			open := make(map[string]bool, len(slots))
			for _, slot := range slots {
				open[slot] = true
			}
			doc[day] = open
		}
		if _, err := s.schedules.SaveSchedule(ctx, &availabilityModels.SaveScheduleRequest{
			UserID:     userID,
			ProviderID: providerID,
			Schedule:   doc,
		}); err != nil {
			return fmt.Errorf("catalog: schedule for %q: %w", p.Email, err)
		}
	}

	if len(p.BlackoutDates) > 0 {
		if _, err := s.schedules.SetBlackoutDates(ctx, &availabilityModels.SetBlackoutDatesRequest{
			UserID:     userID,
			ProviderID: providerID,
			Dates:      p.BlackoutDates,
		}); err != nil {
			return fmt.Errorf("catalog: blackout dates for %q: %w", p.Email, err)
		}
	}
	return nil
}
