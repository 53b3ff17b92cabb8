package transition_booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/appointy-booking/internal/domain"
	providerRepo "github.com/m04kA/appointy-booking/internal/infra/storage/provider"
	"github.com/m04kA/appointy-booking/internal/infra/storage/projection"
	"github.com/m04kA/appointy-booking/internal/infra/storage/schedule"
	"github.com/m04kA/appointy-booking/internal/service/availability"
	"github.com/m04kA/appointy-booking/internal/service/ledger"
	"github.com/m04kA/appointy-booking/pkg/kvstore"
	"github.com/m04kA/appointy-booking/pkg/logger"
	"github.com/m04kA/appointy-booking/pkg/metrics"
	"github.com/m04kA/appointy-booking/pkg/types"
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

type fixture struct {
	uc        *UseCase
	ledger    *ledger.Ledger
	store     *kvstore.MemoryStore
	bookings  *projection.UserBookingRepository
	requests  *projection.ProviderRequestRepository
	calendar  *projection.CalendarRepository
	schedules *schedule.Repository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := kvstore.NewMemoryStore()
	tm := kvstore.NewTransactionManager(store)

	f := &fixture{
		store:     store,
		bookings:  projection.NewUserBookingRepository(store),
		requests:  projection.NewProviderRequestRepository(store),
		calendar:  projection.NewCalendarRepository(store),
		schedules: schedule.NewRepository(store),
	}
	require.NoError(t, f.schedules.Save(context.Background(), 1, workingWeek()))

	cal, err := domain.NewCalendar(time.Sunday, []string{"2025-12-25"})
	require.NoError(t, err)

	var m *metrics.Metrics
	f.ledger = ledger.NewLedger(f.bookings, f.requests, f.calendar, tm, m, logger.NewNop()).
		WithClock(func() time.Time { return testNow })
	avail := availability.NewService(f.schedules, stubProviders{1: {ID: 1, UserID: 10}}, tm, cal, logger.NewNop())

	f.uc = NewUseCase(f.bookings, f.ledger, avail, tm, domain.DefaultBookingWindow, logger.NewNop())
	f.uc.timeProvider = fixedTime{t: testNow}
	return f
}

// workingWeek все слоты шаблона открыты с понедельника по субботу
func workingWeek() domain.Schedule {
	week := domain.Schedule{}
	for _, day := range domain.Weekdays[:6] {
		week = domain.ToggleWholeDay(week, day, domain.ScheduleSlots, true)
	}
	return week
}

// seed заявка пользователя 7 к провайдеру 1 (его аккаунт - пользователь 10)
func (f *fixture) seed(t *testing.T, id, date, slot string, status domain.BookingStatus) *domain.BookingRecord {
	t.Helper()
	r := &domain.BookingRecord{
		ID:           id,
		UserID:       7,
		UserName:     "Dana",
		UserEmail:    "dana@example.com",
		ProviderID:   1,
		ProviderName: "Dr. Lee",
		ServiceLabel: "Dentist",
		Date:         date,
		Time:         types.MustSlotLabel(slot),
		Notes:        "checkup",
		Status:       status,
		CreatedAt:    testNow,
		UpdatedAt:    testNow,
	}
	require.NoError(t, f.ledger.RecordCreated(context.Background(), r))
	return r
}

func (f *fixture) assertEverywhere(t *testing.T, id, date, slot string, status domain.BookingStatus) {
	t.Helper()
	ctx := context.Background()

	b, err := f.bookings.Get(ctx, id)
	require.NoError(t, err)
	r, err := f.requests.Get(ctx, id)
	require.NoError(t, err)
	c, err := f.calendar.Get(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, []string{date, date, date}, []string{b.Date, r.Date, c.Date})
	assert.Equal(t, []string{slot, slot, slot}, []string{b.Time.String(), r.Time.String(), c.Time.String()})
	assert.Equal(t, []domain.BookingStatus{status, status, status}, []domain.BookingStatus{b.Status, r.Status, c.Status})
}

var (
	user     = domain.Identity{UserID: 7, Role: domain.RoleUser}
	provider = domain.Identity{UserID: 10, Role: domain.RoleProvider, ProviderID: 1}
	stranger = domain.Identity{UserID: 99, Role: domain.RoleUser}
)

func TestUseCase_AcceptThenDeclineThenReschedule(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seed(t, "b-1", "2025-10-20", "10:00 AM", domain.StatusPending)

	resp, err := f.uc.Execute(ctx, &Request{Identity: provider, BookingID: "b-1", Action: "accept"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, resp.From)
	assert.Equal(t, domain.StatusConfirmed, resp.Booking.Status)
	f.assertEverywhere(t, "b-1", "2025-10-20", "10:00 AM", domain.StatusConfirmed)

	_, err = f.uc.Execute(ctx, &Request{Identity: provider, BookingID: "b-1", Action: "decline"})
	require.ErrorIs(t, err, domain.ErrIllegalTransition)
	f.assertEverywhere(t, "b-1", "2025-10-20", "10:00 AM", domain.StatusConfirmed)

	resp, err = f.uc.Execute(ctx, &Request{Identity: user, BookingID: "b-1", Action: "reschedule", Date: "2025-11-01", Time: "2:00 PM"})
	require.NoError(t, err)
	assert.Equal(t, "2025-11-01", resp.Booking.Date)
	f.assertEverywhere(t, "b-1", "2025-11-01", "2:00 PM", domain.StatusConfirmed)
}

func TestUseCase_ActorRules(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seed(t, "b-1", "2025-10-20", "10:00 AM", domain.StatusPending)

	_, err := f.uc.Execute(ctx, &Request{Identity: user, BookingID: "b-1", Action: "accept"})
	assert.ErrorIs(t, err, domain.ErrAccessDenied)

	_, err = f.uc.Execute(ctx, &Request{Identity: stranger, BookingID: "b-1", Action: "cancel"})
	assert.ErrorIs(t, err, domain.ErrIllegalTransition, "source status is checked before the actor")

	_, err = f.uc.Execute(ctx, &Request{Identity: stranger, BookingID: "b-1", Action: "reject"})
	assert.ErrorIs(t, err, domain.ErrAccessDenied)

	// запрашивающий может подтвердить сам
	resp, err := f.uc.Execute(ctx, &Request{Identity: user, BookingID: "b-1", Action: "confirm"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, resp.Booking.Status)

	_, err = f.uc.Execute(ctx, &Request{Identity: user, BookingID: "b-1", Action: "complete"})
	assert.ErrorIs(t, err, domain.ErrIllegalTransition, "upcoming booking cannot be completed")
}

func TestUseCase_TerminalRecordsStayPut(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seed(t, "b-1", "2025-10-20", "10:00 AM", domain.StatusCancelled)

	for _, action := range []string{"accept", "decline", "confirm", "reject", "cancel", "complete"} {
		_, err := f.uc.Execute(ctx, &Request{Identity: provider, BookingID: "b-1", Action: action})
		assert.ErrorIs(t, err, domain.ErrIllegalTransition, action)
	}
	_, err := f.uc.Execute(ctx, &Request{Identity: user, BookingID: "b-1", Action: "reschedule", Date: "2025-10-21", Time: "9:00 AM"})
	assert.ErrorIs(t, err, domain.ErrIllegalTransition)

	f.assertEverywhere(t, "b-1", "2025-10-20", "10:00 AM", domain.StatusCancelled)
}

func TestUseCase_CompletePastBooking(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seed(t, "b-1", "2025-10-10", "9:00 AM", domain.StatusConfirmed)

	_, err := f.uc.Execute(ctx, &Request{Identity: user, BookingID: "b-1", Action: "cancel"})
	assert.ErrorIs(t, err, domain.ErrIllegalTransition, "past confirmed booking is observed as completed")

	resp, err := f.uc.Execute(ctx, &Request{Identity: provider, BookingID: "b-1", Action: "complete"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, resp.Booking.Status)
	f.assertEverywhere(t, "b-1", "2025-10-10", "9:00 AM", domain.StatusCompleted)
}

func TestUseCase_RescheduleChecks(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seed(t, "b-1", "2025-10-20", "10:00 AM", domain.StatusConfirmed)
	f.seed(t, "b-2", "2025-10-21", "9:00 AM", domain.StatusPending)
	require.NoError(t, f.schedules.Save(ctx, 1, domain.ToggleSlot(workingWeek(), domain.Wednesday, "11:00 AM")))

	tests := []struct {
		name    string
		date    string
		time    string
		wantErr error
	}{
		{name: "missing time", date: "2025-10-22", time: "", wantErr: domain.ErrValidation},
		{name: "sunday", date: "2025-10-26", time: "9:00 AM", wantErr: domain.ErrValidation},
		{name: "past", date: "2025-10-01", time: "9:00 AM", wantErr: domain.ErrValidation},
		{name: "taken", date: "2025-10-21", time: "9:00 AM", wantErr: ErrSlotNotAvailable},
		{name: "closed in schedule", date: "2025-10-22", time: "11:00 AM", wantErr: ErrSlotNotAvailable},
		{name: "off-grid label", date: "2025-10-22", time: "3:17 AM", wantErr: domain.ErrValidation},
		{name: "lunch hour", date: "2025-10-22", time: "1:00 PM", wantErr: domain.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Execute(ctx, &Request{Identity: provider, BookingID: "b-1", Action: "reschedule", Date: tt.date, Time: tt.time})
			assert.ErrorIs(t, err, tt.wantErr)
			f.assertEverywhere(t, "b-1", "2025-10-20", "10:00 AM", domain.StatusConfirmed)
		})
	}

	// перенос на тот же слот разрешен
	_, err := f.uc.Execute(ctx, &Request{Identity: provider, BookingID: "b-1", Action: "reschedule", Date: "2025-10-20", Time: "10:00 am"})
	require.NoError(t, err)
}

func TestUseCase_UnknownBookingAndAction(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.uc.Execute(ctx, &Request{Identity: user, BookingID: "missing", Action: "cancel"})
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = f.uc.Execute(ctx, &Request{Identity: user, BookingID: "missing", Action: "approve"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUseCase_MissingMirrorIsReported(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seed(t, "b-1", "2025-10-20", "10:00 AM", domain.StatusPending)

	// заявка пропала из очереди провайдера
	require.NoError(t, f.store.Save(ctx, projection.ProviderRequestsKey, []byte("[]")))

	resp, err := f.uc.Execute(ctx, &Request{Identity: provider, BookingID: "b-1", Action: "accept"})
	require.ErrorIs(t, err, ledger.ErrConsistencyViolation)
	require.NotNil(t, resp)
	assert.Equal(t, domain.StatusConfirmed, resp.Booking.Status)

	stored, err := f.bookings.Get(ctx, "b-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, stored.Status, "authoritative record keeps the transition")
	entry, err := f.calendar.Get(ctx, "b-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, entry.Status)
}

func TestUseCase_ConcurrentTransitionsSingleWinner(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seed(t, "b-1", "2025-10-20", "10:00 AM", domain.StatusPending)

	actions := []Request{
		{Identity: provider, BookingID: "b-1", Action: "accept"},
		{Identity: provider, BookingID: "b-1", Action: "decline"},
		{Identity: user, BookingID: "b-1", Action: "reject"},
		{Identity: user, BookingID: "b-1", Action: "confirm"},
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := range actions {
		wg.Add(1)
		go func(req Request) {
			defer wg.Done()
			if _, err := f.uc.Execute(ctx, &req); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}(actions[i])
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
}
