package transition_booking

import (
	"strings"
	"time"

	"github.com/m04kA/appointy-booking/internal/domain"
	"github.com/m04kA/appointy-booking/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) (domain.Trigger, error) {
	if req.Identity.UserID <= 0 {
		return "", domain.NewFieldError("userId", "must be positive")
	}
	if strings.TrimSpace(req.BookingID) == "" {
		return "", domain.NewFieldError("bookingId", "required")
	}
	return domain.ParseTrigger(req.Action)
}

// slotFor слот из запроса, nil если действие не переносит запись
func slotFor(trigger domain.Trigger, req *Request) *domain.Slot {
	if trigger != domain.TriggerReschedule {
		return nil
	}
	return &domain.Slot{Date: req.Date, Time: req.Time}
}

// isSlotTaken проверяет слот провайдера без учета самой переносимой записи
func isSlotTaken(records []*domain.BookingRecord, self *domain.BookingRecord, date string, slot types.SlotLabel, now time.Time) bool {
	for _, r := range records {
		if r.ID == self.ID || r.ProviderID != self.ProviderID {
			continue
		}
		if r.Date == date && r.Time == slot && r.EffectiveStatus(now).IsActive() {
			return true
		}
	}
	return false
}
