package cmd

import (
	"github.com/spf13/cobra"
)

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Permanently remove every soft-deleted activity",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer app.close()

		activityService, err := app.activityService()
		if err != nil {
			return err
		}

		count, err := activityService.PurgeDeleted(cmd.Context())
		if err != nil {
			return err
		}

		cmd.Printf("%d activities deleted successfully.\n", count)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(purgeCmd)
}
