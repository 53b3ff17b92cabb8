package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/m04kA/appointy-booking/internal/catalog"
	"github.com/m04kA/appointy-booking/internal/config"
	"github.com/m04kA/appointy-booking/internal/domain"
	providerRepo "github.com/m04kA/appointy-booking/internal/infra/storage/provider"
	"github.com/m04kA/appointy-booking/internal/infra/storage/schedule"
	"github.com/m04kA/appointy-booking/internal/infra/storage/servicecatalog"
	userRepo "github.com/m04kA/appointy-booking/internal/infra/storage/user"
	"github.com/m04kA/appointy-booking/internal/service/accounts"
	"github.com/m04kA/appointy-booking/internal/service/availability"
	"github.com/m04kA/appointy-booking/pkg/kvstore"
	"github.com/m04kA/appointy-booking/pkg/logger"
	"github.com/m04kA/appointy-booking/pkg/session"
	"github.com/m04kA/appointy-booking/pkg/txmanager"
)

// NewSeedCommand загружает YAML фикстуры каталога
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load service categories and providers from a YAML fixture file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fixtures, err := catalog.Load(file)
			if err != nil {
				return err
			}

			cfg, err := config.Load(rootOpts.ConfigPath)
			if err != nil {
				return err
			}

			log, err := logger.New("", cfg.Logs.Level)
			if err != nil {
				return err
			}
			defer log.Close()

			ctx := cmd.Context()
			db, wrapped, err := openDB(ctx, cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			store, closeStore, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			closedDay, err := cfg.Booking.Weekday()
			if err != nil {
				return err
			}
			calendar, err := domain.NewCalendar(closedDay, cfg.Booking.Holidays)
			if err != nil {
				return err
			}

			providers := providerRepo.NewRepository(wrapped)
			accountSvc := accounts.NewService(
				userRepo.NewRepository(wrapped),
				providers,
				txmanager.NewTransactionManager(wrapped),
				session.NewManager(cfg.Session.Secret, cfg.Session.Issuer, time.Hour),
				log,
			)
			availabilitySvc := availability.NewService(
				schedule.NewRepository(store),
				providers,
				kvstore.NewTransactionManager(store),
				calendar,
				log,
			)

			seeder := catalog.NewSeeder(servicecatalog.NewRepository(wrapped), accountSvc, availabilitySvc, log)
			report, err := seeder.Seed(ctx, fixtures)
			if err != nil {
				return err
			}

			if rootOpts.JSON {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(report)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "services: %d, providers: %d, skipped: %d\n",
				report.Services, report.Providers, report.SkippedProviders)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "fixtures/catalog.yaml", "fixture file")
	return cmd
}
