package create_booking

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/appointy-booking/internal/domain"
	"github.com/m04kA/appointy-booking/pkg/types"
)

// validateRequest валидирует входные данные запроса.
// Возвращает нормализованные дату и слот.
func validateRequest(req *Request) (time.Time, types.SlotLabel, error) {
	if req.Identity.UserID <= 0 {
		return time.Time{}, "", domain.NewFieldError("userId", "must be positive")
	}

	if req.ProviderID <= 0 {
		return time.Time{}, "", domain.NewFieldError("providerId", "must be positive")
	}

	date, label, err := domain.ValidateSlot(domain.Slot{Date: req.Date, Time: req.Time})
	if err != nil {
		return time.Time{}, "", err
	}
	if !domain.IsBookingSlot(label) {
		return time.Time{}, "", domain.NewFieldError("time", fmt.Sprintf("%s is not an offered slot", label))
	}

	// Причина визита обязательна
	if strings.TrimSpace(req.Notes) == "" {
		return time.Time{}, "", domain.NewFieldError("notes", "required")
	}
	if utf8.RuneCountInString(req.Notes) > domain.MaxNotesLength {
		return time.Time{}, "", domain.NewFieldError("notes", fmt.Sprintf("must be at most %d characters", domain.MaxNotesLength))
	}

	day, err := time.Parse(domain.DateFormat, date)
	if err != nil {
		return time.Time{}, "", domain.NewFieldError("date", "expected YYYY-MM-DD")
	}

	return day, label, nil
}

// isSlotTaken проверяет, что на слот провайдера уже есть активная заявка
func isSlotTaken(records []*domain.BookingRecord, providerID int64, date string, slot types.SlotLabel, now time.Time) bool {
	for _, r := range records {
		if r.ProviderID != providerID || r.Date != date || r.Time != slot {
			continue
		}
		if r.EffectiveStatus(now).IsActive() {
			return true
		}
	}
	return false
}
