package toggle_slot

import (
	"context"

	"github.com/m04kA/appointy-booking/internal/service/availability/models"
)

type ScheduleService interface {
	ToggleSlot(ctx context.Context, req *models.ToggleSlotRequest) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
