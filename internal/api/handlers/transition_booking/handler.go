package transition_booking

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/appointy-booking/internal/api/handlers"
	"github.com/m04kA/appointy-booking/internal/api/middleware"
	"github.com/m04kA/appointy-booking/internal/domain"
	"github.com/m04kA/appointy-booking/internal/service/bookings/models"
	"github.com/m04kA/appointy-booking/internal/service/identity"
	"github.com/m04kA/appointy-booking/internal/service/ledger"
	transitionBooking "github.com/m04kA/appointy-booking/internal/usecase/transition_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgUnknownUser        = "пользователь не найден"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "действие недоступно для этого пользователя"
	msgIllegalTransition  = "действие недопустимо в текущем статусе"
	msgSlotNotAvailable   = "выбранный слот занят или закрыт в расписании"
	msgConflict           = "бронирование изменилось, повторите запрос"
)

type Handler struct {
	useCase  TransitionBookingUseCase
	identity IdentityResolver
	logger   Logger
}

func NewHandler(useCase TransitionBookingUseCase, identity IdentityResolver, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		identity: identity,
		logger:   logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/{action}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID := vars["bookingId"]
	action := vars["action"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/%s - Missing user ID", action)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Тело опционально: accept/cancel и прочие обходятся без него
	var req TransitionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /bookings/{id}/%s - Invalid request body: %v", action, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	actor, err := h.identity.Resolve(r.Context(), userID)
	if err != nil {
		if errors.Is(err, identity.ErrUnknownUser) {
			handlers.RespondUnauthorized(w, msgUnknownUser)
			return
		}
		h.logger.Error("POST /bookings/{id}/%s - Failed to resolve identity: user_id=%d, error=%v", action, userID, err)
		handlers.RespondInternalError(w)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(actor, bookingID, action))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("POST /bookings/{id}/%s - Validation failed: booking_id=%s, error=%v", action, bookingID, err)
			handlers.RespondValidation(w, err)

		case errors.Is(err, transitionBooking.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/%s - Booking not found: booking_id=%s", action, bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/%s - Access denied: booking_id=%s, user_id=%d", action, bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, domain.ErrIllegalTransition):
			h.logger.Warn("POST /bookings/{id}/%s - Illegal transition: booking_id=%s, error=%v", action, bookingID, err)
			handlers.RespondConflict(w, msgIllegalTransition)

		case errors.Is(err, transitionBooking.ErrSlotNotAvailable):
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, transitionBooking.ErrConflict):
			h.logger.Warn("POST /bookings/{id}/%s - Concurrent modification: booking_id=%s", action, bookingID)
			handlers.RespondConflict(w, msgConflict)

		case errors.Is(err, ledger.ErrConsistencyViolation):
			// Переход сохранен, но одна из проекций расходится с записью
			h.logger.Error("POST /bookings/{id}/%s - Projection out of sync after transition: booking_id=%s, error=%v",
				action, bookingID, err)
			handlers.RespondInternalError(w)

		case errors.Is(err, domain.ErrCollaboratorUnavailable):
			h.logger.Error("POST /bookings/{id}/%s - Storage unavailable: booking_id=%s, error=%v", action, bookingID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("POST /bookings/{id}/%s - Failed to apply transition: booking_id=%s, error=%v", action, bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/%s - Transition applied: booking_id=%s, %s -> %s, user_id=%d",
		action, bookingID, result.From, result.Booking.Status, userID)
	handlers.RespondJSON(w, http.StatusOK, &TransitionResponse{
		PreviousStatus: string(result.From),
		Booking:        models.FromDomainBooking(result.Booking, time.Now()),
	})
}
