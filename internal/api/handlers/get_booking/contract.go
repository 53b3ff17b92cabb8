package get_booking

import (
	"context"

	"github.com/m04kA/appointy-booking/internal/service/bookings/models"
)

type BookingService interface {
	GetByID(ctx context.Context, id string, userID int64) (*models.BookingViewsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
