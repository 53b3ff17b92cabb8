package get_available_slots

import (
	"time"

	"github.com/m04kA/appointy-booking/internal/domain"
	"github.com/m04kA/appointy-booking/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) (time.Time, error) {
	if req.ProviderID <= 0 {
		return time.Time{}, domain.NewFieldError("providerId", "must be positive")
	}

	date, err := domain.NormalizeDate(req.Date)
	if err != nil {
		return time.Time{}, err
	}

	day, err := time.Parse(domain.DateFormat, date)
	if err != nil {
		return time.Time{}, domain.NewFieldError("date", "expected YYYY-MM-DD")
	}
	return day, nil
}

// takenSlots слоты провайдера на дату, удерживаемые активными заявками
func takenSlots(records []*domain.BookingRecord, providerID int64, date string, now time.Time) map[types.SlotLabel]bool {
	taken := make(map[types.SlotLabel]bool)
	for _, r := range records {
		if r.ProviderID != providerID || r.Date != date {
			continue
		}
		if r.EffectiveStatus(now).IsActive() {
			taken[r.Time] = true
		}
	}
	return taken
}
