package task

import (
	"fmt"

	"github.com/felixgeelhaar/pytron/adapter/cli"
	"github.com/spf13/cobra"
)

var toggleCmd = &cobra.Command{
	Use:   "toggle [task-id]",
	Short: "Complete or reopen a task",
	Long: `Flip a task between open and done.

Examples:
  pytron task toggle 01JABCDEF...`,
	Aliases: []string{"done"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		t, err := app.Tracking.ToggleTask(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to toggle task: %w", err)
		}
		if cli.JSONOutput() {
			return cli.PrintJSON(cmd, t)
		}
		if t.Completed {
			fmt.Fprintf(cmd.OutOrStdout(), "Task completed: %s\n", t.Text)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Task reopened: %s\n", t.Text)
		}
		return nil
	},
}
