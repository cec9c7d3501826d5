package task

import (
	"fmt"

	"github.com/felixgeelhaar/pytron/adapter/cli"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [task-id]",
	Short: "Delete a task",
	Long: `Delete a task. Hours already logged against it keep their link.

Examples:
  pytron task delete 01JABCDEF...`,
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		if err := app.Tracking.DeleteTask(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("failed to delete task: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Task deleted: %s\n", args[0])
		return nil
	},
}
