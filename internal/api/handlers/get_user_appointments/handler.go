package get_user_appointments

import (
	"errors"
	"net/http"

	"github.com/m04kA/appointy-booking/internal/api/handlers"
	"github.com/m04kA/appointy-booking/internal/api/middleware"
	"github.com/m04kA/appointy-booking/internal/service/appointments"
)

const (
	msgInvalidUserID = "некорректный ID пользователя"
	msgMissingUserID = "отсутствует ID пользователя"
	msgForbidden     = "доступ запрещен"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments/user/{userId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, err := handlers.PathInt64(r, "userId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	requesterID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	resp, err := h.service.ListByUser(r.Context(), userID, requesterID)
	if err != nil {
		if errors.Is(err, appointments.ErrAccessDenied) {
			h.logger.Warn("GET /appointments/user/{userId} - Access denied: user_id=%d, requester_id=%d", userID, requesterID)
			handlers.RespondForbidden(w, msgForbidden)
			return
		}
		h.logger.Error("GET /appointments/user/{userId} - Failed to list appointments: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /appointments/user/{userId} - Appointments listed: user_id=%d, count=%d", userID, len(resp.Appointments))
	handlers.RespondJSON(w, http.StatusOK, resp)
}
