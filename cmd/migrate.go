package cmd

import (
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the schema and seed the built-in statuses",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer app.close()

		app.logger.Info("database migrated", "driver", app.cfg.DatabaseDriver)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
