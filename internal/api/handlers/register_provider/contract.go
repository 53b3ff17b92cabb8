package register_provider

import (
	"context"

	"github.com/m04kA/appointy-booking/internal/service/accounts/models"
)

type AccountService interface {
	RegisterProvider(ctx context.Context, req *models.RegisterProviderRequest) (*models.RegisterResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
