package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/m04kA/appointy-booking/internal/config"
	"github.com/m04kA/appointy-booking/internal/infra/storage/migrations"
)

// NewMigrateCommand применяет встроенную схему postgres
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dryRun {
				fmt.Fprintln(cmd.OutOrStdout(), migrations.Schema())
				return nil
			}

			cfg, err := config.Load(rootOpts.ConfigPath)
			if err != nil {
				return err
			}

			db, wrapped, err := openDB(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := migrations.Apply(cmd.Context(), wrapped); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema applied to %s\n", cfg.Database.DBName)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the schema instead of applying it")
	return cmd
}
