package update_schedule

import (
	"context"

	"github.com/m04kA/appointy-booking/internal/service/availability/models"
)

type ScheduleService interface {
	SaveSchedule(ctx context.Context, req *models.SaveScheduleRequest) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
