package register_provider

import (
	"errors"
	"net/http"

	"github.com/m04kA/appointy-booking/internal/api/handlers"
	"github.com/m04kA/appointy-booking/internal/service/accounts"
	"github.com/m04kA/appointy-booking/internal/service/accounts/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "не заполнены обязательные поля провайдера"
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

// Handle POST /api/v1/register-provider
// Пользователь и профиль провайдера создаются в одной транзакции
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterProviderRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /register-provider - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.RegisterProvider(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, accounts.ErrInvalidInput):
			h.logger.Warn("POST /register-provider - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, accounts.ErrEmailTaken):
			handlers.RespondBadRequest(w, msgEmailTaken)

		default:
			h.logger.Error("POST /register-provider - Failed to register provider: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /register-provider - Provider registered: user_id=%d, provider_id=%d", resp.User.ID, resp.Provider.ID)
	handlers.RespondJSON(w, http.StatusCreated, resp)
}
