package toggle_day

import (
	"github.com/m04kA/appointy-booking/internal/service/availability/models"
)

// ToggleDayRequest HTTP request model
type ToggleDayRequest struct {
	Day         string `json:"day"`
	IsAvailable bool   `json:"isAvailable"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *ToggleDayRequest) ToServiceRequest(userID, providerID int64) *models.ToggleDayRequest {
	return &models.ToggleDayRequest{
		UserID:      userID,
		ProviderID:  providerID,
		Day:         r.Day,
		IsAvailable: r.IsAvailable,
	}
}
