package create_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/appointy-booking/internal/api/handlers"
	"github.com/m04kA/appointy-booking/internal/api/middleware"
	"github.com/m04kA/appointy-booking/internal/domain"
	"github.com/m04kA/appointy-booking/internal/service/bookings/models"
	"github.com/m04kA/appointy-booking/internal/service/identity"
	createBooking "github.com/m04kA/appointy-booking/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgUnknownUser         = "пользователь не найден"
	msgSlotNotAvailable    = "выбранный слот занят или закрыт в расписании"
	msgProviderNotFound    = "провайдер не найден"
	msgProviderUnavailable = "провайдер сейчас не принимает записи"
	msgServiceNotOffered   = "провайдер не оказывает эту услугу"
	msgConflict            = "данные изменились, повторите запрос"
)

type Handler struct {
	useCase  CreateBookingUseCase
	identity IdentityResolver
	logger   Logger
}

func NewHandler(useCase CreateBookingUseCase, identity IdentityResolver, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		identity: identity,
		logger:   logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Автор заявки
	actor, err := h.identity.Resolve(r.Context(), userID)
	if err != nil {
		if errors.Is(err, identity.ErrUnknownUser) {
			handlers.RespondUnauthorized(w, msgUnknownUser)
			return
		}
		h.logger.Error("POST /bookings - Failed to resolve identity: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(actor))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("POST /bookings - Validation failed: user_id=%d, error=%v", userID, err)
			handlers.RespondValidation(w, err)

		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: user_id=%d, provider_id=%d", userID, req.ProviderID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrConflict):
			handlers.RespondConflict(w, msgConflict)

		case errors.Is(err, createBooking.ErrProviderNotFound):
			h.logger.Warn("POST /bookings - Provider not found: provider_id=%d", req.ProviderID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, createBooking.ErrProviderUnavailable):
			handlers.RespondBadRequest(w, msgProviderUnavailable)

		case errors.Is(err, createBooking.ErrServiceNotOffered):
			handlers.RespondBadRequest(w, msgServiceNotOffered)

		case errors.Is(err, domain.ErrCollaboratorUnavailable):
			h.logger.Error("POST /bookings - Storage unavailable: user_id=%d, error=%v", userID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, provider_id=%d, error=%v",
				userID, req.ProviderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, user_id=%d, provider_id=%d",
		result.Booking.ID, userID, req.ProviderID)
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainBooking(result.Booking, time.Now()))
}
