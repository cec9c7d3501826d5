package goal

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/pytron/adapter/cli"
	goalsQueries "github.com/felixgeelhaar/pytron/internal/goals/application/queries"
)

var listStatus string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List goals",
	Long: `List goals with their progress.

Examples:
  pytron goal list
  pytron goal list --status active`,
	Aliases: []string{"ls"},
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		status := goalsQueries.GoalStatus(listStatus)
		switch status {
		case goalsQueries.StatusAll, goalsQueries.StatusActive, goalsQueries.StatusCompleted:
		default:
			return fmt.Errorf("invalid status %q (use active or completed)", listStatus)
		}

		views, err := app.Goals.List(cmd.Context(), goalsQueries.ListGoalsQuery{Status: status})
		if err != nil {
			return err
		}
		if cli.JSONOutput() {
			return cli.PrintJSON(cmd, views)
		}

		out := cmd.OutOrStdout()
		if len(views) == 0 {
			fmt.Fprintln(out, "No goals.")
			return nil
		}
		for _, v := range views {
			fmt.Fprintln(out, formatGoal(v))
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listStatus, "status", "", "filter by status (active, completed)")
}
