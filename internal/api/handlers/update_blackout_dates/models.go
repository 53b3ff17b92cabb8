package update_blackout_dates

import (
	"github.com/m04kA/appointy-booking/internal/service/availability/models"
)

// UpdateBlackoutDatesRequest HTTP request model; список заменяет текущий
type UpdateBlackoutDatesRequest struct {
	Dates []string `json:"dates"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateBlackoutDatesRequest) ToServiceRequest(userID, providerID int64) *models.SetBlackoutDatesRequest {
	return &models.SetBlackoutDatesRequest{
		UserID:     userID,
		ProviderID: providerID,
		Dates:      r.Dates,
	}
}
