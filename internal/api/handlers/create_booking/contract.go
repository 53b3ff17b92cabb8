package create_booking

import (
	"context"

	"github.com/m04kA/appointy-booking/internal/domain"
	createBooking "github.com/m04kA/appointy-booking/internal/usecase/create_booking"
)

type CreateBookingUseCase interface {
	Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error)
}

type IdentityResolver interface {
	Resolve(ctx context.Context, userID int64) (*domain.Identity, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
