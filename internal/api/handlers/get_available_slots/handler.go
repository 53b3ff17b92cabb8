package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/appointy-booking/internal/api/handlers"
	"github.com/m04kA/appointy-booking/internal/domain"
	getAvailableSlots "github.com/m04kA/appointy-booking/internal/usecase/get_available_slots"
)

const (
	msgInvalidProviderID = "некорректный ID провайдера"
	msgMissingDate       = "дата обязательна"
	msgProviderNotFound  = "провайдер не найден"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/providers/{providerId}/available-slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем providerId из URL
	providerID, err := handlers.PathInt64(r, "providerId")
	if err != nil {
		h.logger.Warn("GET /providers/{id}/available-slots - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	// Извлекаем date из query параметров
	date := r.URL.Query().Get("date")
	if date == "" {
		h.logger.Warn("GET /providers/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{ProviderID: providerID, Date: date})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("GET /providers/{id}/available-slots - Invalid request: provider_id=%d, error=%v", providerID, err)
			handlers.RespondValidation(w, err)

		case errors.Is(err, getAvailableSlots.ErrProviderNotFound):
			h.logger.Warn("GET /providers/{id}/available-slots - Provider not found: provider_id=%d", providerID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, domain.ErrCollaboratorUnavailable):
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /providers/{id}/available-slots - Failed to get slots: provider_id=%d, date=%s, error=%v",
				providerID, date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /providers/{id}/available-slots - Slots retrieved successfully: provider_id=%d, date=%s, slots_count=%d",
		providerID, date, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
