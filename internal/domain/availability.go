package domain

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/m04kA/appointy-booking/pkg/types"
)

// Weekday lower-case day id used as schedule key
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// Weekdays all days in display order
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// WeekdayOf schedule key for a calendar date
func WeekdayOf(t time.Time) Weekday {
	return Weekday(strings.ToLower(t.Weekday().String()))
}

// ParseWeekday validates a day id
func ParseWeekday(s string) (Weekday, error) {
	d := Weekday(strings.ToLower(strings.TrimSpace(s)))
	for _, w := range Weekdays {
		if w == d {
			return d, nil
		}
	}
	return "", NewFieldError("day", fmt.Sprintf("unknown weekday %q", s))
}

// Schedule weekly availability template of one provider.
// A missing day or slot means closed.
type Schedule map[Weekday]map[types.SlotLabel]bool

// Clone deep copy
func (s Schedule) Clone() Schedule {
	out := make(Schedule, len(s))
	for day, slots := range s {
		copied := make(map[types.SlotLabel]bool, len(slots))
		for label, open := range slots {
			copied[label] = open
		}
		out[day] = copied
	}
	return out
}

// IsSlotOpen stored value, false when absent
func IsSlotOpen(s Schedule, day Weekday, slot types.SlotLabel) bool {
	return s[day][slot]
}

// ToggleSlot flips one slot and returns a new schedule
func ToggleSlot(s Schedule, day Weekday, slot types.SlotLabel) Schedule {
	out := s.Clone()
	if out[day] == nil {
		out[day] = make(map[types.SlotLabel]bool)
	}
	out[day][slot] = !out[day][slot]
	return out
}

// ToggleWholeDay sets every slot of the grid for day to isAvailable and returns a new schedule
func ToggleWholeDay(s Schedule, day Weekday, slots []types.SlotLabel, isAvailable bool) Schedule {
	out := s.Clone()
	daySlots := make(map[types.SlotLabel]bool, len(slots))
	for _, label := range slots {
		daySlots[label] = isAvailable
	}
	out[day] = daySlots
	return out
}

// ScheduleSummary aggregate statistics of a schedule
type ScheduleSummary struct {
	TotalSlots          int `json:"totalSlots"`
	AvailableSlots      int `json:"availableSlots"`
	AvailablePercentage int `json:"availablePercentage"`
	WorkingDaysCount    int `json:"workingDaysCount"`
}

// ComputeSummary statistics over the provider template grid: 7 days times
// ScheduleSlots. Labels outside the grid are not counted. A schedule with no
// entries at all has no grid and reports zeros.
func ComputeSummary(s Schedule) ScheduleSummary {
	var summary ScheduleSummary
	if s.isEmpty() {
		return summary
	}

	for _, day := range Weekdays {
		working := false
		for _, label := range ScheduleSlots {
			if s[day][label] {
				summary.AvailableSlots++
				working = true
			}
		}
		if working {
			summary.WorkingDaysCount++
		}
	}

	summary.TotalSlots = len(Weekdays) * len(ScheduleSlots)
	summary.AvailablePercentage = int(math.Round(100 * float64(summary.AvailableSlots) / float64(summary.TotalSlots)))

	return summary
}

func (s Schedule) isEmpty() bool {
	for _, slots := range s {
		if len(slots) > 0 {
			return false
		}
	}
	return true
}

// IsScheduleSlot reports whether label belongs to the provider template grid
func IsScheduleSlot(label types.SlotLabel) bool {
	return containsSlot(ScheduleSlots, label)
}

// IsBookingSlot reports whether label is offered to requesters
func IsBookingSlot(label types.SlotLabel) bool {
	return containsSlot(BookingSlots, label)
}

func containsSlot(grid []types.SlotLabel, label types.SlotLabel) bool {
	for _, l := range grid {
		if l == label {
			return true
		}
	}
	return false
}

// OpenSlots open labels of day, ordered by time
func OpenSlots(s Schedule, day Weekday, grid []types.SlotLabel) []types.SlotLabel {
	var out []types.SlotLabel
	for _, label := range grid {
		if IsSlotOpen(s, day, label) {
			out = append(out, label)
		}
	}
	return out
}

// NormalizeSchedule validates day ids and slot labels of an incoming document
func NormalizeSchedule(raw map[string]map[string]bool) (Schedule, error) {
	out := make(Schedule, len(raw))
	for dayRaw, slots := range raw {
		day, err := ParseWeekday(dayRaw)
		if err != nil {
			return nil, err
		}
		daySlots := make(map[types.SlotLabel]bool, len(slots))
		for labelRaw, open := range slots {
			label, err := types.ParseSlotLabel(labelRaw)
			if err != nil {
				return nil, NewFieldError("schedule", fmt.Sprintf("invalid slot %q on %s", labelRaw, day))
			}
			if !IsScheduleSlot(label) {
				return nil, NewFieldError("schedule", fmt.Sprintf("slot %q on %s is outside the schedule grid", labelRaw, day))
			}
			daySlots[label] = open
		}
		out[day] = daySlots
	}
	return out, nil
}
