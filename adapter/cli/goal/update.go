package goal

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/pytron/adapter/cli"
	goalsCommands "github.com/felixgeelhaar/pytron/internal/goals/application/commands"
	goals "github.com/felixgeelhaar/pytron/internal/goals/domain"
)

var (
	updateTitle    string
	updateTarget   float64
	updateCurrent  float64
	updateDeadline string
)

var updateCmd = &cobra.Command{
	Use:   "update [goal-id]",
	Short: "Update a goal",
	Long: `Change a goal's title, target or deadline. Custom goals also take a
manual current value.

Examples:
  pytron goal update <id> --target 150
  pytron goal update <id> --current 7`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		var u goals.Update
		flags := cmd.Flags()
		if flags.Changed("title") {
			u.Title = &updateTitle
		}
		if flags.Changed("target") {
			u.Target = &updateTarget
		}
		if flags.Changed("current") {
			u.Current = &updateCurrent
		}
		if flags.Changed("deadline") {
			if u.Deadline, err = parseOptionalDate(updateDeadline); err != nil {
				return err
			}
		}
		if u == (goals.Update{}) {
			return errors.New("nothing to change; pass at least one flag")
		}

		g, err := app.Goals.Update(cmd.Context(), goalsCommands.UpdateGoalCommand{GoalID: args[0], Update: u})
		if err != nil {
			return fmt.Errorf("failed to update goal: %w", err)
		}
		if cli.JSONOutput() {
			return cli.PrintJSON(cmd, g)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Goal updated: %s (%d%%)\n", g.Title, g.ProgressPercent())
		return nil
	},
}

func init() {
	updateCmd.Flags().StringVar(&updateTitle, "title", "", "new title")
	updateCmd.Flags().Float64Var(&updateTarget, "target", 0, "new target")
	updateCmd.Flags().Float64Var(&updateCurrent, "current", 0, "current value (custom goals)")
	updateCmd.Flags().StringVar(&updateDeadline, "deadline", "", "deadline (YYYY-MM-DD)")
}
