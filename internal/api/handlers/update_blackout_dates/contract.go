package update_blackout_dates

import (
	"context"

	"github.com/m04kA/appointy-booking/internal/service/availability/models"
)

type ScheduleService interface {
	SetBlackoutDates(ctx context.Context, req *models.SetBlackoutDatesRequest) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
