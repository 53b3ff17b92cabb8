package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/appointy-booking/internal/domain"
	"github.com/m04kA/appointy-booking/internal/infra/storage/schedule"
	"github.com/m04kA/appointy-booking/pkg/kvstore"
	"github.com/m04kA/appointy-booking/pkg/types"
)

func TestRootCommand_Subcommands(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"migrate", "seed", "summary"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}

	configFlag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "config.toml", configFlag.DefValue)
}

func TestMigrate_DryRunPrintsSchema(t *testing.T) {
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"migrate", "--dry-run"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "CREATE TABLE")
}

func TestSummary_RequiresProvider(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"summary"})
	assert.Error(t, cmd.Execute())
}

func TestScheduleReport(t *testing.T) {
	ctx := context.Background()
	repo := schedule.NewRepository(kvstore.NewMemoryStore())

	s := domain.ToggleWholeDay(domain.Schedule{}, domain.Monday, domain.ScheduleSlots, true)
	s = domain.ToggleSlot(s, domain.Monday, types.MustSlotLabel("12:00 PM"))
	require.NoError(t, repo.Save(ctx, 3, s))
	require.NoError(t, repo.SaveBlackouts(ctx, 3, []string{"2025-11-27"}))

	report, err := buildScheduleReport(ctx, repo, 3)
	require.NoError(t, err)
	assert.Equal(t, 8, report.Summary.AvailableSlots)
	assert.Len(t, report.OpenSlots["monday"], 8)
	assert.NotContains(t, report.OpenSlots["monday"], "12:00 PM")

	var out bytes.Buffer
	require.NoError(t, writeScheduleReport(&out, report, false))
	assert.Contains(t, out.String(), "provider 3: 8/63 slots open")
	assert.Contains(t, out.String(), "blackout: 2025-11-27")

	empty, err := buildScheduleReport(ctx, repo, 4)
	require.NoError(t, err)
	assert.Empty(t, empty.OpenSlots)
	assert.Equal(t, []string{}, empty.BlackoutDates)
}
