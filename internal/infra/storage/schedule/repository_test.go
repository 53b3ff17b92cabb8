package schedule

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/appointy-booking/internal/domain"
	"github.com/m04kA/appointy-booking/pkg/kvstore"
)

func TestRepository_ScheduleLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(kvstore.NewMemoryStore())

	s, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, s)

	s = domain.ToggleWholeDay(s, domain.Monday, domain.ScheduleSlots, true)
	require.NoError(t, repo.Save(ctx, 1, s))

	loaded, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, s, loaded)

	other, err := repo.Get(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, other, "schedules are per provider")

	require.NoError(t, repo.Reset(ctx, 1))
	loaded, err = repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, loaded)
	assert.NotNil(t, loaded)
}

func TestRepository_Blackouts(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(kvstore.NewMemoryStore())

	dates, err := repo.GetBlackouts(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, dates)

	require.NoError(t, repo.SaveBlackouts(ctx, 1, []string{"2024-12-20", "2024-12-21"}))
	dates, err = repo.GetBlackouts(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-12-20", "2024-12-21"}, dates)
}

func TestRepository_DecodeError(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	require.NoError(t, store.Save(ctx, "providerSchedule:3", []byte("[1,2")))

	_, err := NewRepository(store).Get(ctx, 3)
	assert.ErrorIs(t, err, ErrDecode)
}
