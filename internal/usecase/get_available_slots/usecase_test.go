package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/appointy-booking/internal/domain"
	providerRepo "github.com/m04kA/appointy-booking/internal/infra/storage/provider"
	"github.com/m04kA/appointy-booking/internal/infra/storage/projection"
	"github.com/m04kA/appointy-booking/internal/infra/storage/schedule"
	"github.com/m04kA/appointy-booking/internal/service/availability"
	"github.com/m04kA/appointy-booking/pkg/kvstore"
	"github.com/m04kA/appointy-booking/pkg/logger"
)

var testNow = time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type stubProviders map[int64]*domain.Provider

func (s stubProviders) GetByID(_ context.Context, id int64) (*domain.Provider, error) {
	p, ok := s[id]
	if !ok {
		return nil, providerRepo.ErrProviderNotFound
	}
	return p, nil
}

func newTestUseCase(t *testing.T) (*UseCase, *projection.UserBookingRepository, *schedule.Repository) {
	t.Helper()
	store := kvstore.NewMemoryStore()
	bookings := projection.NewUserBookingRepository(store)
	schedules := schedule.NewRepository(store)
	providers := stubProviders{1: {ID: 1, UserID: 10, Available: true}}

	cal, err := domain.NewCalendar(time.Sunday, nil)
	require.NoError(t, err)
	avail := availability.NewService(schedules, providers, kvstore.NewTransactionManager(store), cal, logger.NewNop())

	uc := NewUseCase(bookings, providers, avail, domain.DefaultBookingWindow, logger.NewNop())
	uc.timeProvider = fixedTime{t: testNow}
	return uc, bookings, schedules
}

func labels(slots []domain.AvailableSlot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Time.String())
	}
	return out
}

func TestUseCase_OpenSlotsMinusTaken(t *testing.T) {
	ctx := context.Background()
	uc, bookings, schedules := newTestUseCase(t)

	monday := domain.ToggleWholeDay(domain.Schedule{}, domain.Monday, domain.ScheduleSlots, true)
	monday = domain.ToggleSlot(monday, domain.Monday, "4:00 PM")
	require.NoError(t, schedules.Save(ctx, 1, monday))

	for _, r := range []*domain.BookingRecord{
		{ID: "b-1", ProviderID: 1, Date: "2025-10-20", Time: "10:00 AM", Status: domain.StatusPending},
		{ID: "b-2", ProviderID: 1, Date: "2025-10-20", Time: "11:00 AM", Status: domain.StatusCancelled},
		{ID: "b-3", ProviderID: 1, Date: "2025-10-20", Time: "2:00 PM", Status: domain.StatusConfirmed},
		{ID: "b-4", ProviderID: 2, Date: "2025-10-20", Time: "9:00 AM", Status: domain.StatusConfirmed},
	} {
		require.NoError(t, bookings.Upsert(ctx, r))
	}

	resp, err := uc.Execute(ctx, &Request{ProviderID: 1, Date: "2025-10-20"})
	require.NoError(t, err)
	assert.True(t, resp.Bookable)
	assert.Equal(t, []string{"9:00 AM", "11:00 AM", "12:00 PM", "3:00 PM", "5:00 PM"}, labels(resp.Slots))
	for _, s := range resp.Slots {
		assert.True(t, s.IsBookable())
	}
}

func TestUseCase_EmptyWhenDateNotBookable(t *testing.T) {
	ctx := context.Background()
	uc, _, schedules := newTestUseCase(t)

	week := domain.Schedule{}
	for _, d := range domain.Weekdays {
		week = domain.ToggleWholeDay(week, d, domain.ScheduleSlots, true)
	}
	require.NoError(t, schedules.Save(ctx, 1, week))
	require.NoError(t, schedules.SaveBlackouts(ctx, 1, []string{"2025-10-22"}))

	for _, date := range []string{"2025-10-19", "2025-10-22", "2025-10-15", "2025-12-01"} {
		resp, err := uc.Execute(ctx, &Request{ProviderID: 1, Date: date})
		require.NoError(t, err, date)
		assert.False(t, resp.Bookable, date)
		assert.Empty(t, resp.Slots, date)
	}

	// вторник открыт целиком
	resp, err := uc.Execute(ctx, &Request{ProviderID: 1, Date: "2025-10-21"})
	require.NoError(t, err)
	assert.True(t, resp.Bookable)
	assert.Len(t, resp.Slots, len(domain.BookingSlots))
}

func TestUseCase_Errors(t *testing.T) {
	ctx := context.Background()
	uc, _, _ := newTestUseCase(t)

	_, err := uc.Execute(ctx, &Request{ProviderID: 1, Date: "tomorrow"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.Execute(ctx, &Request{ProviderID: 5, Date: "2025-10-20"})
	assert.ErrorIs(t, err, ErrProviderNotFound)
}
