package get_available_slots

import (
	getAvailableSlots "github.com/m04kA/appointy-booking/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	ProviderID int64    `json:"providerId"`
	Date       string   `json:"date"`
	Bookable   bool     `json:"bookable"`
	Slots      []string `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]string, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = slot.Time.String()
	}

	return &AvailableSlotsResponse{
		ProviderID: resp.ProviderID,
		Date:       resp.Date,
		Bookable:   resp.Bookable,
		Slots:      slots,
	}
}
