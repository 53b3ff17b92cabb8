package set_provider_availability

import (
	"context"

	"github.com/m04kA/appointy-booking/internal/service/directory/models"
)

type DirectoryService interface {
	SetAvailability(ctx context.Context, providerID, userID int64, available bool) (*models.ProviderResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
