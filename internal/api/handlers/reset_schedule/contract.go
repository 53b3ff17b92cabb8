package reset_schedule

import (
	"context"
)

type ScheduleService interface {
	ResetSchedule(ctx context.Context, providerID, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
