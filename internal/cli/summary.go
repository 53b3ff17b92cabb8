package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/m04kA/appointy-booking/internal/config"
	"github.com/m04kA/appointy-booking/internal/domain"
	"github.com/m04kA/appointy-booking/internal/infra/storage/schedule"
)

// ScheduleReport сводка расписания провайдера
type ScheduleReport struct {
	ProviderID    int64                  `json:"providerId"`
	Summary       domain.ScheduleSummary `json:"summary"`
	OpenSlots     map[string][]string    `json:"openSlots"`
	BlackoutDates []string               `json:"blackoutDates"`
}

// NewSummaryCommand выводит сводку расписания из kv хранилища
func NewSummaryCommand(rootOpts *RootOptions) *cobra.Command {
	var providerID int64

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the availability summary of a provider",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if providerID <= 0 {
				return fmt.Errorf("--provider must be a positive id")
			}

			cfg, err := config.Load(rootOpts.ConfigPath)
			if err != nil {
				return err
			}

			store, closeStore, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			report, err := buildScheduleReport(cmd.Context(), schedule.NewRepository(store), providerID)
			if err != nil {
				return err
			}
			return writeScheduleReport(cmd.OutOrStdout(), report, rootOpts.JSON)
		},
	}

	cmd.Flags().Int64VarP(&providerID, "provider", "p", 0, "provider id")
	return cmd
}

type scheduleReader interface {
	Get(ctx context.Context, providerID int64) (domain.Schedule, error)
	GetBlackouts(ctx context.Context, providerID int64) ([]string, error)
}

func buildScheduleReport(ctx context.Context, repo scheduleReader, providerID int64) (*ScheduleReport, error) {
	s, err := repo.Get(ctx, providerID)
	if err != nil {
		return nil, err
	}
	blackouts, err := repo.GetBlackouts(ctx, providerID)
	if err != nil {
		return nil, err
	}
	if blackouts == nil {
		blackouts = []string{}
	}

	open := make(map[string][]string, len(domain.Weekdays))
	for _, day := range domain.Weekdays {
		labels := domain.OpenSlots(s, day, domain.ScheduleSlots)
		if len(labels) == 0 {
			continue
		}
		out := make([]string, len(labels))
		for i, l := range labels {
			out[i] = l.String()
		}
		open[string(day)] = out
	}

	return &ScheduleReport{
		ProviderID:    providerID,
		Summary:       domain.ComputeSummary(s),
		OpenSlots:     open,
		BlackoutDates: blackouts,
	}, nil
}

func writeScheduleReport(w io.Writer, r *ScheduleReport, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}

	fmt.Fprintf(w, "provider %d: %d/%d slots open (%d%%), %d working days\n",
		r.ProviderID, r.Summary.AvailableSlots, r.Summary.TotalSlots,
		r.Summary.AvailablePercentage, r.Summary.WorkingDaysCount)
	for _, day := range domain.Weekdays {
		if slots, ok := r.OpenSlots[string(day)]; ok {
			fmt.Fprintf(w, "  %-9s %s\n", day, strings.Join(slots, ", "))
		}
	}
	if len(r.BlackoutDates) > 0 {
		fmt.Fprintf(w, "  blackout: %s\n", strings.Join(r.BlackoutDates, ", "))
	}
	return nil
}
