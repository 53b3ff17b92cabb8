package get_provider_requests

import (
	"context"

	"github.com/m04kA/appointy-booking/internal/service/bookings/models"
)

type BookingService interface {
	GetProviderRequests(ctx context.Context, req *models.GetProviderRequestsRequest) (*models.ProviderRequestListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
