package update_schedule

import (
	"github.com/m04kA/appointy-booking/internal/service/availability/models"
)

// UpdateScheduleRequest HTTP request model: день -> слот -> открыт
type UpdateScheduleRequest struct {
	Schedule map[string]map[string]bool `json:"schedule"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateScheduleRequest) ToServiceRequest(userID, providerID int64) *models.SaveScheduleRequest {
	return &models.SaveScheduleRequest{
		UserID:     userID,
		ProviderID: providerID,
		Schedule:   r.Schedule,
	}
}
