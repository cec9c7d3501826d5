package task

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/pytron/adapter/cli"
	tracking "github.com/felixgeelhaar/pytron/internal/tracking/domain"
	"github.com/spf13/cobra"
)

var listPending bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Long: `List tasks, open ones first.

Examples:
  pytron task list
  pytron task list --pending`,
	Aliases: []string{"ls"},
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		tasks := app.Tracking.Tasks()
		if listPending {
			open := tasks[:0:0]
			for _, t := range tasks {
				if !t.Completed {
					open = append(open, t)
				}
			}
			tasks = open
		}
		if cli.JSONOutput() {
			return cli.PrintJSON(cmd, tasks)
		}

		out := cmd.OutOrStdout()
		if len(tasks) == 0 {
			fmt.Fprintln(out, "No tasks.")
			return nil
		}
		for _, t := range tasks {
			fmt.Fprintln(out, formatTask(t))
		}
		return nil
	},
}

func formatTask(t tracking.Task) string {
	box := "[ ]"
	if t.Completed {
		box = "[x]"
	}
	parts := []string{box, t.ID, t.Text}
	var extra []string
	if t.Priority != tracking.PriorityNone {
		extra = append(extra, strings.ToLower(string(t.Priority)))
	}
	if t.DueTime != "" {
		extra = append(extra, "due "+t.DueTime)
	}
	if t.Duration != "" {
		extra = append(extra, t.Duration+"m")
	}
	if t.Tag != "" {
		extra = append(extra, "#"+t.Tag)
	}
	if len(extra) > 0 {
		parts = append(parts, "("+strings.Join(extra, ", ")+")")
	}
	return strings.Join(parts, " ")
}

func init() {
	listCmd.Flags().BoolVar(&listPending, "pending", false, "only open tasks")
}
