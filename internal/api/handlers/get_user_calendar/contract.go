package get_user_calendar

import (
	"context"

	"github.com/m04kA/appointy-booking/internal/service/bookings/models"
)

type BookingService interface {
	GetUserCalendar(ctx context.Context, req *models.GetUserCalendarRequest) (*models.CalendarResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
