package register

import (
	"errors"
	"net/http"

	"github.com/m04kA/appointy-booking/internal/api/handlers"
	"github.com/m04kA/appointy-booking/internal/service/accounts"
	"github.com/m04kA/appointy-booking/internal/service/accounts/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "не заполнены обязательные поля или указана неизвестная роль"
	msgEmailTaken         = "пользователь с таким email уже существует"
)

type Handler struct {
	service AccountService
	logger  Logger
}

func NewHandler(service AccountService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/register
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /register - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.Register(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, accounts.ErrInvalidInput):
			h.logger.Warn("POST /register - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, accounts.ErrEmailTaken):
			handlers.RespondBadRequest(w, msgEmailTaken)

		default:
			h.logger.Error("POST /register - Failed to register user: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /register - User registered: user_id=%d, role=%s", resp.User.ID, resp.User.Role)
	handlers.RespondJSON(w, http.StatusCreated, resp)
}
