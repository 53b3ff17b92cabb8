package toggle_slot

import (
	"github.com/m04kA/appointy-booking/internal/service/availability/models"
)

// ToggleSlotRequest HTTP request model
type ToggleSlotRequest struct {
	Day  string `json:"day"`  // monday ... sunday
	Time string `json:"time"` // "10:00 AM"
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *ToggleSlotRequest) ToServiceRequest(userID, providerID int64) *models.ToggleSlotRequest {
	return &models.ToggleSlotRequest{
		UserID:     userID,
		ProviderID: providerID,
		Day:        r.Day,
		Time:       r.Time,
	}
}
