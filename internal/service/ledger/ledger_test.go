package ledger

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/appointy-booking/internal/domain"
	"github.com/m04kA/appointy-booking/internal/infra/storage/projection"
	"github.com/m04kA/appointy-booking/pkg/kvstore"
	"github.com/m04kA/appointy-booking/pkg/logger"
	"github.com/m04kA/appointy-booking/pkg/types"
)

var testNow = time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)

type fakeMetrics struct {
	mu          sync.Mutex
	transitions map[string]int
	failures    map[string]int
	violations  map[string]int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{
		transitions: map[string]int{},
		failures:    map[string]int{},
		violations:  map[string]int{},
	}
}

func (m *fakeMetrics) IncTransition(trigger string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.failures[trigger]++
		return
	}
	m.transitions[trigger]++
}

func (m *fakeMetrics) IncConsistencyViolation(p string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.violations[p]++
}

// failingStore отказывает в записи ключа failKey внутри транзакции
type failingStore struct {
	*kvstore.MemoryStore
	failKey string
}

func (s *failingStore) Atomically(ctx context.Context, fn func(ctx context.Context, tx kvstore.Executor) error) error {
	return s.MemoryStore.Atomically(ctx, func(ctx context.Context, tx kvstore.Executor) error {
		return fn(ctx, &failingTx{Executor: tx, failKey: s.failKey})
	})
}

type failingTx struct {
	kvstore.Executor
	failKey string
}

func (t *failingTx) Save(ctx context.Context, key string, value []byte) error {
	if key == t.failKey {
		return errors.New("connection reset")
	}
	return t.Executor.Save(ctx, key, value)
}

type fixture struct {
	store    kvstore.Store
	bookings *projection.UserBookingRepository
	requests *projection.ProviderRequestRepository
	calendar *projection.CalendarRepository
	metrics  *fakeMetrics
	ledger   *Ledger
}

func newFixture(store kvstore.Store) *fixture {
	f := &fixture{
		store:    store,
		bookings: projection.NewUserBookingRepository(store),
		requests: projection.NewProviderRequestRepository(store),
		calendar: projection.NewCalendarRepository(store),
		metrics:  newFakeMetrics(),
	}
	f.ledger = NewLedger(
		f.bookings,
		f.requests,
		f.calendar,
		kvstore.NewTransactionManager(store),
		f.metrics,
		logger.NewNop(),
	).WithClock(func() time.Time { return testNow })
	return f
}

func pendingRecord(id string) *domain.BookingRecord {
	return &domain.BookingRecord{
		ID:           id,
		UserID:       7,
		UserName:     "Dana",
		UserEmail:    "dana@example.com",
		ProviderID:   3,
		ProviderName: "Dr. Lee",
		ServiceLabel: "Dentist",
		Date:         "2025-10-20",
		Time:         types.MustSlotLabel("10:00 AM"),
		Notes:        "checkup",
		Status:       domain.StatusPending,
		Details:      &domain.ServiceDetails{DurationMinutes: 60, Location: "Main St"},
		CreatedAt:    testNow,
		UpdatedAt:    testNow,
	}
}

func TestLedger_RecordCreated_FansOutToAllProjections(t *testing.T) {
	ctx := context.Background()
	f := newFixture(kvstore.NewMemoryStore())

	require.NoError(t, f.ledger.RecordCreated(ctx, pendingRecord("b-1")))

	views, err := f.ledger.Lookup(ctx, "b-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, views.Record.Status)
	assert.Equal(t, domain.StatusPending, views.Request.Status)
	assert.Equal(t, domain.StatusPending, views.Calendar.Status)
	assert.Equal(t, domain.NotProvided, views.Request.ClientPhone)
	assert.Equal(t, "Main St", views.Calendar.Location)
	assert.Equal(t, "2025-10-20", views.Calendar.Date)
}

func TestLedger_RecordCreated_DuplicateID(t *testing.T) {
	ctx := context.Background()
	f := newFixture(kvstore.NewMemoryStore())

	require.NoError(t, f.ledger.RecordCreated(ctx, pendingRecord("b-1")))
	err := f.ledger.RecordCreated(ctx, pendingRecord("b-1"))
	assert.ErrorIs(t, err, ErrAlreadyExists)

	all, err := f.bookings.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestLedger_RecordCreated_StoreFailureLeavesNothing(t *testing.T) {
	ctx := context.Background()
	store := &failingStore{MemoryStore: kvstore.NewMemoryStore(), failKey: projection.UserAppointmentsKey}
	f := newFixture(store)

	err := f.ledger.RecordCreated(ctx, pendingRecord("b-1"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCollaboratorUnavailable)

	for _, key := range []string{projection.UserBookingsKey, projection.ProviderRequestsKey, projection.UserAppointmentsKey} {
		raw, err := store.MemoryStore.Load(ctx, key)
		require.NoError(t, err)
		assert.Nil(t, raw, "key %s must stay empty", key)
	}
}

func TestLedger_RecordTransitioned_ProviderAccepts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(kvstore.NewMemoryStore())
	require.NoError(t, f.ledger.RecordCreated(ctx, pendingRecord("b-1")))

	updated, err := f.ledger.RecordTransitioned(ctx, "b-1", domain.Change{
		Trigger: domain.TriggerAccept,
		From:    domain.StatusPending,
		Status:  domain.StatusConfirmed,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, updated.Status)
	assert.Equal(t, testNow, updated.UpdatedAt)

	views, err := f.ledger.Lookup(ctx, "b-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, views.Record.Status)
	assert.Equal(t, domain.StatusConfirmed, views.Request.Status)
	assert.Equal(t, domain.StatusConfirmed, views.Calendar.Status)
	assert.Equal(t, 1, f.metrics.transitions[string(domain.TriggerAccept)])
}

func TestLedger_RecordTransitioned_RescheduleMovesEveryCopy(t *testing.T) {
	ctx := context.Background()
	f := newFixture(kvstore.NewMemoryStore())
	record := pendingRecord("b-1")
	record.Status = domain.StatusConfirmed
	require.NoError(t, f.ledger.RecordCreated(ctx, record))

	_, err := f.ledger.RecordTransitioned(ctx, "b-1", domain.Change{
		Trigger: domain.TriggerReschedule,
		From:    domain.StatusConfirmed,
		Status:  domain.StatusConfirmed,
		Date:    "2025-10-22",
		Time:    types.MustSlotLabel("2:00 PM"),
	})
	require.NoError(t, err)

	views, err := f.ledger.Lookup(ctx, "b-1")
	require.NoError(t, err)
	for _, got := range []struct {
		date string
		time types.SlotLabel
	}{
		{views.Record.Date, views.Record.Time},
		{views.Request.Date, views.Request.Time},
		{views.Calendar.Date, views.Calendar.Time},
	} {
		assert.Equal(t, "2025-10-22", got.date)
		assert.Equal(t, types.MustSlotLabel("2:00 PM"), got.time)
	}
	assert.Equal(t, domain.StatusConfirmed, views.Calendar.Status)
}

func TestLedger_RecordTransitioned_StaleStatus(t *testing.T) {
	ctx := context.Background()
	f := newFixture(kvstore.NewMemoryStore())
	require.NoError(t, f.ledger.RecordCreated(ctx, pendingRecord("b-1")))

	accept := domain.Change{Trigger: domain.TriggerAccept, From: domain.StatusPending, Status: domain.StatusConfirmed}
	decline := domain.Change{Trigger: domain.TriggerDecline, From: domain.StatusPending, Status: domain.StatusCancelled}

	_, err := f.ledger.RecordTransitioned(ctx, "b-1", accept)
	require.NoError(t, err)

	// decline вычислен по устаревшему чтению
	_, err = f.ledger.RecordTransitioned(ctx, "b-1", decline)
	assert.ErrorIs(t, err, ErrStaleRecord)

	views, err := f.ledger.Lookup(ctx, "b-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, views.Record.Status)
	assert.Equal(t, domain.StatusConfirmed, views.Request.Status)
	assert.Equal(t, 1, f.metrics.failures[string(domain.TriggerDecline)])
}

func TestLedger_RecordTransitioned_UnknownID(t *testing.T) {
	f := newFixture(kvstore.NewMemoryStore())

	_, err := f.ledger.RecordTransitioned(context.Background(), "nope", domain.Change{
		Trigger: domain.TriggerCancel,
		From:    domain.StatusConfirmed,
		Status:  domain.StatusCancelled,
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestLedger_RecordTransitioned_MissingMirrorIsReported(t *testing.T) {
	ctx := context.Background()
	f := newFixture(kvstore.NewMemoryStore())

	// Запись есть только в авторитетной проекции
	record := pendingRecord("b-1")
	require.NoError(t, f.bookings.Upsert(ctx, record))
	require.NoError(t, f.requests.Upsert(ctx, domain.NewProviderRequest(record)))

	updated, err := f.ledger.RecordTransitioned(ctx, "b-1", domain.Change{
		Trigger: domain.TriggerConfirm,
		From:    domain.StatusPending,
		Status:  domain.StatusConfirmed,
	})
	require.ErrorIs(t, err, ErrConsistencyViolation)
	require.NotNil(t, updated)
	assert.Equal(t, domain.StatusConfirmed, updated.Status)
	assert.Equal(t, 1, f.metrics.violations[ProjectionCalendar])

	stored, err := f.ledger.Get(ctx, "b-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, stored.Status)

	request, err := f.requests.Get(ctx, "b-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, request.Status)

	views, err := f.ledger.Lookup(ctx, "b-1")
	assert.ErrorIs(t, err, ErrConsistencyViolation)
	require.NotNil(t, views)
	assert.Nil(t, views.Calendar)
}

func TestLedger_RecordTransitioned_StoreFailureKeepsPreviousState(t *testing.T) {
	ctx := context.Background()
	store := &failingStore{MemoryStore: kvstore.NewMemoryStore()}
	f := newFixture(store)
	require.NoError(t, f.ledger.RecordCreated(ctx, pendingRecord("b-1")))

	store.failKey = projection.ProviderRequestsKey
	_, err := f.ledger.RecordTransitioned(ctx, "b-1", domain.Change{
		Trigger: domain.TriggerAccept,
		From:    domain.StatusPending,
		Status:  domain.StatusConfirmed,
	})
	assert.ErrorIs(t, err, domain.ErrCollaboratorUnavailable)

	store.failKey = ""
	views, err := f.ledger.Lookup(ctx, "b-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, views.Record.Status)
	assert.Equal(t, domain.StatusPending, views.Request.Status)
	assert.Equal(t, domain.StatusPending, views.Calendar.Status)
}

func TestLedger_ConcurrentTransitions_OneWins(t *testing.T) {
	ctx := context.Background()
	f := newFixture(kvstore.NewMemoryStore())
	require.NoError(t, f.ledger.RecordCreated(ctx, pendingRecord("b-1")))

	changes := []domain.Change{
		{Trigger: domain.TriggerAccept, From: domain.StatusPending, Status: domain.StatusConfirmed},
		{Trigger: domain.TriggerDecline, From: domain.StatusPending, Status: domain.StatusCancelled},
		{Trigger: domain.TriggerReject, From: domain.StatusPending, Status: domain.StatusCancelled},
	}

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		won []domain.BookingStatus
	)
	for _, c := range changes {
		wg.Add(1)
		go func(c domain.Change) {
			defer wg.Done()
			updated, err := f.ledger.RecordTransitioned(ctx, "b-1", c)
			if err != nil {
				assert.ErrorIs(t, err, ErrStaleRecord)
				return
			}
			mu.Lock()
			won = append(won, updated.Status)
			mu.Unlock()
		}(c)
	}
	wg.Wait()

	require.Len(t, won, 1)
	views, err := f.ledger.Lookup(ctx, "b-1")
	require.NoError(t, err)
	assert.Equal(t, won[0], views.Record.Status)
	assert.Equal(t, won[0], views.Request.Status)
	assert.Equal(t, won[0], views.Calendar.Status)
}

var errAborted = errors.New("exec aborted")

// conflictingStore отбрасывает первые conflicts транзакций так же,
// как Redis EXEC после изменения наблюдаемого ключа
type conflictingStore struct {
	*kvstore.MemoryStore
	conflicts int
}

func (s *conflictingStore) Atomically(ctx context.Context, fn func(ctx context.Context, tx kvstore.Executor) error) error {
	if s.conflicts == 0 {
		return s.MemoryStore.Atomically(ctx, fn)
	}
	s.conflicts--

	err := s.MemoryStore.Atomically(ctx, func(ctx context.Context, tx kvstore.Executor) error {
		if err := fn(ctx, tx); err != nil {
			return err
		}
		return errAborted
	})
	if errors.Is(err, errAborted) {
		return kvstore.ErrConflict
	}
	return err
}

func TestLedger_RecordTransitioned_OptimisticLockConflict(t *testing.T) {
	ctx := context.Background()
	store := &conflictingStore{MemoryStore: kvstore.NewMemoryStore()}
	f := newFixture(store)
	require.NoError(t, f.ledger.RecordCreated(ctx, pendingRecord("b-1")))

	store.conflicts = 1
	accept := domain.Change{Trigger: domain.TriggerAccept, From: domain.StatusPending, Status: domain.StatusConfirmed}

	_, err := f.ledger.RecordTransitioned(ctx, "b-1", accept)
	require.ErrorIs(t, err, ErrStaleRecord)
	assert.Equal(t, 1, f.metrics.failures[string(domain.TriggerAccept)])

	views, err := f.ledger.Lookup(ctx, "b-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, views.Record.Status)
	assert.Equal(t, domain.StatusPending, views.Request.Status)
	assert.Equal(t, domain.StatusPending, views.Calendar.Status)

	// повтор после конфликта проходит
	updated, err := f.ledger.RecordTransitioned(ctx, "b-1", accept)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, updated.Status)
}

func TestLedger_RecordCreated_OptimisticLockConflict(t *testing.T) {
	ctx := context.Background()
	store := &conflictingStore{MemoryStore: kvstore.NewMemoryStore(), conflicts: 1}
	f := newFixture(store)

	err := f.ledger.RecordCreated(ctx, pendingRecord("b-1"))
	require.ErrorIs(t, err, ErrStaleRecord)

	_, err = f.ledger.Lookup(ctx, "b-1")
	assert.ErrorIs(t, err, ErrBookingNotFound)
	for _, n := range []func() int{
		func() int { r, _ := f.bookings.All(ctx); return len(r) },
		func() int { r, _ := f.requests.All(ctx); return len(r) },
		func() int { r, _ := f.calendar.All(ctx); return len(r) },
	} {
		assert.Zero(t, n())
	}
}
