package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(DateFormat, s)
	require.NoError(t, err)
	return d
}

func TestCalendar_IsDateBookable(t *testing.T) {
	cal, err := NewCalendar(time.Sunday, DefaultHolidays)
	require.NoError(t, err)
	provider := cal.WithBlackouts([]string{"2024-12-20", "2024-12-21", "not-a-date"})

	tests := []struct {
		date string
		cal  *Calendar
		want bool
	}{
		{date: "2025-10-20", cal: cal, want: true},  // Monday
		{date: "2025-10-19", cal: cal, want: false}, // Sunday
		{date: "2024-12-25", cal: cal, want: false}, // holiday
		{date: "2024-12-31", cal: cal, want: false}, // holiday
		{date: "2024-12-20", cal: cal, want: true},  // provider blackout, not in base calendar
		{date: "2024-12-20", cal: provider, want: false},
		{date: "2024-12-21", cal: provider, want: false},
		{date: "2024-12-23", cal: provider, want: true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.cal.IsDateBookable(mustDate(t, tt.date)), tt.date)
	}
}

func TestCalendar_EverySundayAndBlackoutIsClosed(t *testing.T) {
	cal, err := NewCalendar(time.Sunday, []string{"2025-03-04"})
	require.NoError(t, err)

	start := mustDate(t, "2025-01-01")
	for i := 0; i < 365; i++ {
		day := start.AddDate(0, 0, i)
		want := day.Weekday() != time.Sunday && day.Format(DateFormat) != "2025-03-04"
		assert.Equal(t, want, cal.IsDateBookable(day), day.Format(DateFormat))
	}
}

func TestNewCalendar_RejectsBadHoliday(t *testing.T) {
	_, err := NewCalendar(time.Sunday, []string{"25-12-2024"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCalendar_WithBlackoutsDoesNotMutateBase(t *testing.T) {
	cal, err := NewCalendar(time.Sunday, nil)
	require.NoError(t, err)

	_ = cal.WithBlackouts([]string{"2025-10-20"})
	assert.Empty(t, cal.Blackouts())
}

func TestBookingWindow_Check(t *testing.T) {
	now := time.Date(2025, 10, 15, 18, 30, 0, 0, time.UTC)
	w := DefaultBookingWindow

	assert.ErrorIs(t, w.Check(mustDate(t, "2025-10-15"), now), ErrValidation, "today is too early")
	assert.NoError(t, w.Check(mustDate(t, "2025-10-16"), now))
	assert.NoError(t, w.Check(mustDate(t, "2025-11-14"), now))
	assert.ErrorIs(t, w.Check(mustDate(t, "2025-11-15"), now), ErrValidation)

	unbounded := BookingWindow{MinDaysAhead: 0}
	assert.NoError(t, unbounded.Check(mustDate(t, "2030-01-01"), now))
}

func TestStatus(t *testing.T) {
	for in, want := range map[string]BookingStatus{
		"accepted": StatusConfirmed,
		"Declined": StatusCancelled,
		"pending":  StatusPending,
		"canceled": StatusCancelled,
	} {
		got, err := ParseStatus(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseStatus("archived")
	assert.ErrorIs(t, err, ErrValidation)

	assert.Equal(t, "Pending", DisplayLabel(StatusPending))
	assert.Equal(t, "Cancelled", DisplayLabel(StatusCancelled))
	assert.Equal(t, "Unknown", DisplayLabel("accepted"))
	assert.True(t, StatusCompleted.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
}
