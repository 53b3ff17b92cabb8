package domain

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

// Calendar date-level booking gate: one closed weekday plus blackout dates.
// Independent of the weekly slot grid.
type Calendar struct {
	closedDay time.Weekday
	blackouts map[string]struct{}
}

// NewCalendar validates holiday dates (YYYY-MM-DD)
func NewCalendar(closedDay time.Weekday, holidays []string) (*Calendar, error) {
	c := &Calendar{closedDay: closedDay, blackouts: make(map[string]struct{}, len(holidays))}
	for _, h := range holidays {
		d, err := NormalizeDate(h)
		if err != nil {
			return nil, err
		}
		c.blackouts[d] = struct{}{}
	}
	return c, nil
}

// WithBlackouts copy of the calendar with provider-specific unavailable dates added.
// Invalid dates are skipped: they can never match a parsed date anyway.
func (c *Calendar) WithBlackouts(dates []string) *Calendar {
	out := &Calendar{closedDay: c.closedDay, blackouts: make(map[string]struct{}, len(c.blackouts)+len(dates))}
	for d := range c.blackouts {
		out.blackouts[d] = struct{}{}
	}
	for _, raw := range dates {
		if d, err := NormalizeDate(raw); err == nil {
			out.blackouts[d] = struct{}{}
		}
	}
	return out
}

// IsDateBookable false on the closed weekday or a blackout date
func (c *Calendar) IsDateBookable(date time.Time) bool {
	if date.Weekday() == c.closedDay {
		return false
	}
	return !c.IsBlackout(date)
}

// IsBlackout true if the date is a holiday or provider-specific unavailable date
func (c *Calendar) IsBlackout(date time.Time) bool {
	_, ok := c.blackouts[date.Format(DateFormat)]
	return ok
}

// Blackouts sorted blackout dates
func (c *Calendar) Blackouts() []string {
	out := make([]string, 0, len(c.blackouts))
	for d := range c.blackouts {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// ClosedDay fixed closed weekday
func (c *Calendar) ClosedDay() time.Weekday {
	return c.closedDay
}

// NormalizeDate validates a YYYY-MM-DD string
func NormalizeDate(raw string) (string, error) {
	v := strings.TrimSpace(raw)
	if _, err := time.Parse(DateFormat, v); err != nil {
		return "", NewFieldError("date", fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", raw))
	}
	return v, nil
}

// BookingWindow how far ahead a booking may be placed, in whole days from today
type BookingWindow struct {
	MinDaysAhead int
	MaxDaysAhead int
}

// DefaultBookingWindow tomorrow to one month ahead
var DefaultBookingWindow = BookingWindow{MinDaysAhead: DefaultMinDaysAhead, MaxDaysAhead: DefaultMaxDaysAhead}

// Check returns a field error if date is outside the window relative to now.
// MaxDaysAhead <= 0 disables the upper bound.
func (w BookingWindow) Check(date, now time.Time) error {
	today := truncateDay(now)
	y, m, d := date.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	days := int(math.Round(day.Sub(today).Hours() / 24))

	if days < w.MinDaysAhead {
		return NewFieldError("date", "date is too early")
	}
	if w.MaxDaysAhead > 0 && days > w.MaxDaysAhead {
		return NewFieldError("date", "date is too far in the future")
	}
	return nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
