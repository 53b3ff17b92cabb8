package catalog

import (
	"context"

	"github.com/m04kA/appointy-booking/internal/domain"
	accountModels "github.com/m04kA/appointy-booking/internal/service/accounts/models"
	availabilityModels "github.com/m04kA/appointy-booking/internal/service/availability/models"
)

type ServiceRepository interface {
	Upsert(ctx context.Context, s *domain.Service) (*domain.Service, error)
}

type AccountService interface {
	RegisterProvider(ctx context.Context, req *accountModels.RegisterProviderRequest) (*accountModels.RegisterResponse, error)
}

type ScheduleService interface {
	SaveSchedule(ctx context.Context, req *availabilityModels.SaveScheduleRequest) (*availabilityModels.ScheduleResponse, error)
	SetBlackoutDates(ctx context.Context, req *availabilityModels.SetBlackoutDatesRequest) (*availabilityModels.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
