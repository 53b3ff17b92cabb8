package domain

import (
	"time"

	"github.com/m04kA/appointy-booking/pkg/types"
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Booking defaults
const (
	DefaultClosedWeekday     = time.Sunday
	DefaultMinDaysAhead      = 1  // earliest bookable date is tomorrow
	DefaultMaxDaysAhead      = 30 // about one month ahead
	DefaultDurationMinutes   = 60
	MaxNotesLength           = 1000
	NotProvided              = "Not provided"
	DefaultAppointmentStatus = "scheduled"
)

// DefaultHolidays global closed dates used when the config sets none
var DefaultHolidays = []string{"2024-12-25", "2024-12-31"}

// ScheduleSlots the provider weekly template grid: nine hourly slots
var ScheduleSlots = []types.SlotLabel{
	"9:00 AM", "10:00 AM", "11:00 AM", "12:00 PM",
	"1:00 PM", "2:00 PM", "3:00 PM", "4:00 PM", "5:00 PM",
}

// BookingSlots slots offered to requesters, without the lunch hour
var BookingSlots = []types.SlotLabel{
	"9:00 AM", "10:00 AM", "11:00 AM", "12:00 PM",
	"2:00 PM", "3:00 PM", "4:00 PM", "5:00 PM",
}
