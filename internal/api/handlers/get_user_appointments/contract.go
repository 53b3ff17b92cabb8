package get_user_appointments

import (
	"context"

	"github.com/m04kA/appointy-booking/internal/service/appointments/models"
)

type AppointmentService interface {
	ListByUser(ctx context.Context, userID, requesterID int64) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
