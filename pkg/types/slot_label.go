package types

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// slotLayout 12-часовой формат меток слотов: "9:00 AM", "2:00 PM"
const slotLayout = "3:04 PM"

var ErrInvalidSlotLabel = errors.New("types: invalid slot label")

// SlotLabel метка временного слота в каноничной форме "9:00 AM".
// "09:00 AM", "9:00am" и "9:00AM" приводятся к одной и той же метке.
type SlotLabel string

// ParseSlotLabel разбирает и нормализует метку слота
func ParseSlotLabel(s string) (SlotLabel, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	if v == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidSlotLabel)
	}
	if strings.HasSuffix(v, "AM") || strings.HasSuffix(v, "PM") {
		v = strings.TrimSpace(v[:len(v)-2]) + " " + v[len(v)-2:]
	}

	t, err := time.Parse(slotLayout, v)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidSlotLabel, s)
	}

	return SlotLabel(t.Format(slotLayout)), nil
}

// MustSlotLabel как ParseSlotLabel, но паникует на некорректной метке.
// Только для констант.
func MustSlotLabel(s string) SlotLabel {
	l, err := ParseSlotLabel(s)
	if err != nil {
		panic(err)
	}
	return l
}

// NewSlotLabelFromMinutes метка по количеству минут от полуночи
func NewSlotLabelFromMinutes(minutes int) SlotLabel {
	t := time.Date(0, 1, 1, minutes/60, minutes%60, 0, 0, time.UTC)
	return SlotLabel(t.Format(slotLayout))
}

// Minutes количество минут от полуночи
func (s SlotLabel) Minutes() (int, error) {
	t, err := time.Parse(slotLayout, string(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSlotLabel, string(s))
	}
	return t.Hour()*60 + t.Minute(), nil
}

// On возвращает момент начала слота в дату day (в локации day)
func (s SlotLabel) On(day time.Time) (time.Time, error) {
	m, err := s.Minutes()
	if err != nil {
		return time.Time{}, err
	}
	y, mo, d := day.Date()
	return time.Date(y, mo, d, m/60, m%60, 0, 0, day.Location()), nil
}

func (s SlotLabel) String() string {
	return string(s)
}
