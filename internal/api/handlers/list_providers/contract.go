package list_providers

import (
	"context"

	"github.com/m04kA/appointy-booking/internal/service/directory/models"
)

type DirectoryService interface {
	ListProviders(ctx context.Context, serviceType string) ([]*models.ProviderResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
