// Package goal holds the goal commands.
package goal

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	goalsQueries "github.com/felixgeelhaar/pytron/internal/goals/application/queries"
	tracking "github.com/felixgeelhaar/pytron/internal/tracking/domain"
)

// Cmd is the goal command group.
var Cmd = &cobra.Command{
	Use:   "goal",
	Short: "Manage goals",
	Long: `Create numeric goals and follow their progress.

Goal types:
  hours   deep work (or --category) hours logged
  streak  current streak in days
  tasks   completed tasks
  custom  a value you set with 'goal update --current'`,
}

func init() {
	Cmd.AddCommand(createCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(updateCmd)
	Cmd.AddCommand(deleteCmd)
	Cmd.AddCommand(evaluateCmd)
}

func formatGoal(v goalsQueries.GoalView) string {
	status := fmt.Sprintf("%3d%%", v.Progress)
	if v.IsCompleted() {
		status = "done"
	}
	line := fmt.Sprintf("  %s  %-24s %s/%s %s", status, v.Title,
		formatNumber(v.Current), formatNumber(v.Target), v.Type)
	if v.Category != nil {
		line += " (" + v.Category.Label() + ")"
	}
	if v.Deadline != nil {
		line += " due " + v.Deadline.Label()
	}
	return line + "  " + v.ID
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func parseOptionalDate(s string) (*tracking.DateKey, error) {
	if s == "" {
		return nil, nil
	}
	d, err := tracking.ParseDateKey(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
