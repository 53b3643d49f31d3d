package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/formbuilder/internal/ports/primary"
	"github.com/example/formbuilder/internal/wire"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show recent question submissions",
	Long:  "Show the local log of question submissions, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()
		limit, _ := cmd.Flags().GetInt("limit")
		actorID, _ := cmd.Flags().GetString("actor")
		slug, _ := cmd.Flags().GetString("question")
		outcome, _ := cmd.Flags().GetString("outcome")

		filters := primary.SubmissionFilters{
			ActorID: actorID,
			Slug:    slug,
			Outcome: outcome,
			Limit:   limit,
		}

		if _, err := wire.LogAdapter().List(ctx, filters); err != nil {
			return fmt.Errorf("failed to fetch submissions: %w", err)
		}
		return nil
	},
}

// LogCmd returns the log command.
func LogCmd() *cobra.Command {
	logCmd.Flags().IntP("limit", "n", 50, "Number of submissions to show")
	logCmd.Flags().String("actor", "", "Filter by actor ID")
	logCmd.Flags().String("question", "", "Filter by question slug")
	logCmd.Flags().String("outcome", "", "Filter by outcome (succeeded, failed)")

	return logCmd
}
