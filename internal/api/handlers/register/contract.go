package register

import (
	"context"

	"github.com/m04kA/appointy-booking/internal/service/accounts/models"
)

type AccountService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.RegisterResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
