package cli

import (
	"github.com/spf13/cobra"
)

// RootOptions общие флаги всех команд
type RootOptions struct {
	ConfigPath string
	JSON       bool
}

// NewRootCommand корневая команда appointyctl
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "appointyctl",
		Short:         "Appointy booking ops tool",
		Long:          "Operational commands for the appointy booking service: schema migrations, catalog seeding and schedule inspection.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "config.toml", "path to config.toml")
	cmd.PersistentFlags().BoolVar(&opts.JSON, "json", false, "print results as JSON")

	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewSummaryCommand(opts))

	return cmd
}
