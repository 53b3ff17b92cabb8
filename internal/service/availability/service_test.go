package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/appointy-booking/internal/domain"
	providerRepo "github.com/m04kA/appointy-booking/internal/infra/storage/provider"
	"github.com/m04kA/appointy-booking/internal/infra/storage/schedule"
	"github.com/m04kA/appointy-booking/internal/service/availability/models"
	"github.com/m04kA/appointy-booking/pkg/kvstore"
	"github.com/m04kA/appointy-booking/pkg/logger"
)

type stubProviders map[int64]*domain.Provider

func (s stubProviders) GetByID(_ context.Context, id int64) (*domain.Provider, error) {
	p, ok := s[id]
	if !ok {
		return nil, providerRepo.ErrProviderNotFound
	}
	return p, nil
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	store := kvstore.NewMemoryStore()
	calendar, err := domain.NewCalendar(time.Sunday, []string{"2025-12-25"})
	require.NoError(t, err)

	return NewService(
		schedule.NewRepository(store),
		stubProviders{3: {ID: 3, UserID: 30, Name: "Dr. Lee"}},
		kvstore.NewTransactionManager(store),
		calendar,
		logger.NewNop(),
	)
}

func TestService_ToggleSlotAndDay(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	resp, err := svc.GetSchedule(ctx, 3)
	require.NoError(t, err)
	assert.Empty(t, resp.Schedule)
	assert.Equal(t, 0, resp.Summary.TotalSlots)

	resp, err = svc.ToggleDay(ctx, &models.ToggleDayRequest{UserID: 30, ProviderID: 3, Day: "Monday", IsAvailable: true})
	require.NoError(t, err)
	assert.Equal(t, 9, resp.Summary.AvailableSlots)
	assert.Equal(t, 1, resp.Summary.WorkingDaysCount)

	resp, err = svc.ToggleSlot(ctx, &models.ToggleSlotRequest{UserID: 30, ProviderID: 3, Day: "monday", Time: "10:00 am"})
	require.NoError(t, err)
	assert.False(t, resp.Schedule["monday"]["10:00 AM"])
	assert.Equal(t, 8, resp.Summary.AvailableSlots)
	assert.Equal(t, 63, resp.Summary.TotalSlots)

	require.NoError(t, svc.ResetSchedule(ctx, 3, 30))
	resp, err = svc.GetSchedule(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Summary.AvailableSlots)
}

func TestService_OwnerOnly(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.ToggleDay(ctx, &models.ToggleDayRequest{UserID: 99, ProviderID: 3, Day: "monday", IsAvailable: true})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.ToggleDay(ctx, &models.ToggleDayRequest{UserID: 30, ProviderID: 404, Day: "monday", IsAvailable: true})
	assert.ErrorIs(t, err, ErrProviderNotFound)

	_, err = svc.ToggleSlot(ctx, &models.ToggleSlotRequest{UserID: 30, ProviderID: 3, Day: "funday", Time: "9:00 AM"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_SaveScheduleValidates(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.SaveSchedule(ctx, &models.SaveScheduleRequest{
		UserID: 30, ProviderID: 3,
		Schedule: map[string]map[string]bool{"monday": {"25:00": true}},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	resp, err := svc.SaveSchedule(ctx, &models.SaveScheduleRequest{
		UserID: 30, ProviderID: 3,
		Schedule: map[string]map[string]bool{
			"monday":  {"9:00 AM": true, "10:00 AM": false},
			"tuesday": {"9:00 AM": false, "10:00 AM": false},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 63, resp.Summary.TotalSlots)
	assert.Equal(t, 1, resp.Summary.AvailableSlots)
	assert.Equal(t, 2, resp.Summary.AvailablePercentage)

	_, err = svc.SaveSchedule(ctx, &models.SaveScheduleRequest{
		UserID: 30, ProviderID: 3,
		Schedule: map[string]map[string]bool{"monday": {"7:00 AM": true}},
	})
	assert.ErrorIs(t, err, ErrInvalidInput, "slot outside the template grid")
}

func TestService_ToggleSlotRejectsOffGridLabel(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.ToggleSlot(ctx, &models.ToggleSlotRequest{UserID: 30, ProviderID: 3, Day: "monday", Time: "7:00 AM"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	resp, err := svc.GetSchedule(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Summary.TotalSlots)
}

func TestService_BlackoutDatesJoinCalendar(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	resp, err := svc.SetBlackoutDates(ctx, &models.SetBlackoutDatesRequest{
		UserID: 30, ProviderID: 3,
		Dates: []string{"2025-10-22", "2025-10-21", "2025-10-22"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-10-21", "2025-10-22", "2025-12-25"}, resp.BlackoutDates)
	assert.Equal(t, "sunday", resp.ClosedDay)

	ok, err := svc.IsDateBookable(ctx, 3, time.Date(2025, 10, 21, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, ok)

	// другой провайдер не затронут
	ok, err = svc.IsDateBookable(ctx, 4, time.Date(2025, 10, 21, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = svc.SetBlackoutDates(ctx, &models.SetBlackoutDatesRequest{UserID: 30, ProviderID: 3, Dates: []string{"21/10/2025"}})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
