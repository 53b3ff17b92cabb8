package transition_booking

import (
	"context"

	"github.com/m04kA/appointy-booking/internal/domain"
	transitionBooking "github.com/m04kA/appointy-booking/internal/usecase/transition_booking"
)

type TransitionBookingUseCase interface {
	Execute(ctx context.Context, req *transitionBooking.Request) (*transitionBooking.Response, error)
}

type IdentityResolver interface {
	Resolve(ctx context.Context, userID int64) (*domain.Identity, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
