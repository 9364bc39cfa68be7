package commands

import (
	"fmt"

	"archblog/database"
	"archblog/services"

	"github.com/spf13/cobra"
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete expired and consumed verification codes",
	Long: `Delete verification records that have expired or were already used.

Intended for cron; the same purge is available at POST /api/posts/cleanup.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, db, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close(db)

		submissions := services.NewSubmissionService(db, services.NewPostService(db), nil, cfg.VerificationTTL)
		n, err := submissions.Cleanup(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d verification records\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cleanupCmd)
}
