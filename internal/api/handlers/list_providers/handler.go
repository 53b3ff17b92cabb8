package list_providers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/appointy-booking/internal/api/handlers"
	"github.com/m04kA/appointy-booking/internal/service/directory"
)

const (
	msgMissingServiceType = "тип услуги обязателен"
)

type Handler struct {
	service DirectoryService
	logger  Logger
}

func NewHandler(service DirectoryService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/providers/{serviceType}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceType := mux.Vars(r)["serviceType"]

	providers, err := h.service.ListProviders(r.Context(), serviceType)
	if err != nil {
		if errors.Is(err, directory.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgMissingServiceType)
			return
		}
		h.logger.Error("GET /providers/{serviceType} - Failed to list providers: service_type=%s, error=%v", serviceType, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /providers/{serviceType} - Providers listed: service_type=%s, count=%d", serviceType, len(providers))
	handlers.RespondJSON(w, http.StatusOK, providers)
}
