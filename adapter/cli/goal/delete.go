package goal

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/pytron/adapter/cli"
)

var deleteCmd = &cobra.Command{
	Use:     "delete [goal-id]",
	Short:   "Delete a goal",
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		if err := app.Goals.Delete(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("failed to delete goal: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Goal deleted: %s\n", args[0])
		return nil
	},
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Recompute goal progress",
	Long: `Measure every open goal against the current log and report the
milestones (25, 50, 75, 100 percent) reached for the first time.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		hits, err := app.Goals.Evaluate(cmd.Context())
		if err != nil {
			return err
		}
		if cli.JSONOutput() {
			if hits == nil {
				return cli.PrintJSON(cmd, []any{})
			}
			return cli.PrintJSON(cmd, hits)
		}

		out := cmd.OutOrStdout()
		if len(hits) == 0 {
			fmt.Fprintln(out, "No new milestones.")
			return nil
		}
		for _, h := range hits {
			fmt.Fprintf(out, "%s reached %d%%\n", h.Title, h.Milestone)
		}
		return nil
	},
}
