package models

import (
	"sort"
	"strings"

	"github.com/m04kA/appointy-booking/internal/domain"
	"github.com/m04kA/appointy-booking/pkg/types"
)

// Request модели

// SaveScheduleRequest полная замена недельного шаблона
type SaveScheduleRequest struct {
	UserID     int64                      `json:"-"`
	ProviderID int64                      `json:"-"`
	Schedule   map[string]map[string]bool `json:"schedule"`
}

// ToggleSlotRequest переключение одного слота
type ToggleSlotRequest struct {
	UserID     int64  `json:"-"`
	ProviderID int64  `json:"-"`
	Day        string `json:"day"`
	Time       string `json:"time"`
}

// ToggleDayRequest открыть или закрыть весь день
type ToggleDayRequest struct {
	UserID      int64  `json:"-"`
	ProviderID  int64  `json:"-"`
	Day         string `json:"day"`
	IsAvailable bool   `json:"isAvailable"`
}

// SetBlackoutDatesRequest замена списка дат недоступности
type SetBlackoutDatesRequest struct {
	UserID     int64    `json:"-"`
	ProviderID int64    `json:"-"`
	Dates      []string `json:"dates"`
}

// Response модели

// ScheduleResponse шаблон провайдера со статистикой
type ScheduleResponse struct {
	ProviderID    int64                      `json:"providerId"`
	Schedule      map[string]map[string]bool `json:"schedule"`
	Summary       domain.ScheduleSummary     `json:"summary"`
	Slots         []string                   `json:"slots"`
	BlackoutDates []string                   `json:"blackoutDates"`
	ClosedDay     string                     `json:"closedDay"`
}

// Методы конвертации

// FromDomainSchedule конвертирует шаблон в DTO
func FromDomainSchedule(providerID int64, s domain.Schedule, calendar *domain.Calendar) *ScheduleResponse {
	doc := make(map[string]map[string]bool, len(s))
	for day, slots := range s {
		daySlots := make(map[string]bool, len(slots))
		for label, open := range slots {
			daySlots[label.String()] = open
		}
		doc[string(day)] = daySlots
	}

	return &ScheduleResponse{
		ProviderID:    providerID,
		Schedule:      doc,
		Summary:       domain.ComputeSummary(s),
		Slots:         labelsToStrings(domain.ScheduleSlots),
		BlackoutDates: calendar.Blackouts(),
		ClosedDay:     strings.ToLower(calendar.ClosedDay().String()),
	}
}

// SortedDates нормализованный отсортированный список без повторов
func SortedDates(dates []string) ([]string, error) {
	seen := make(map[string]struct{}, len(dates))
	out := make([]string, 0, len(dates))
	for _, raw := range dates {
		d, err := domain.NormalizeDate(raw)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	sort.Strings(out)
	return out, nil
}

func labelsToStrings(labels []types.SlotLabel) []string {
	out := make([]string, len(labels))
	for i, l := range labels {
		out[i] = l.String()
	}
	return out
}
