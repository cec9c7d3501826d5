package cli

import (
	"fmt"
	"io"
	"strings"

	tracking "github.com/felixgeelhaar/pytron/internal/tracking/domain"
	"github.com/spf13/cobra"
)

var weekdayShort = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show today's dashboard",
	Long: `Display today's logged hours per category, efficiency, streak,
target progress, this week's deep work and task counts.

Examples:
  pytron dashboard
  pytron dashboard --json`,
	Aliases: []string{"today", "dash"},
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := RequireApp()
		if err != nil {
			return err
		}

		d, err := app.Analytics.Dashboard(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to build dashboard: %w", err)
		}
		if jsonOutput {
			return PrintJSON(cmd, d)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "\n  %s\n", d.Today.Date.Label())
		fmt.Fprintln(out, strings.Repeat("=", 44))
		fmt.Fprintf(out, "  Logged:      %d/24 hours\n", d.Today.Logged)
		fmt.Fprintf(out, "  Efficiency:  %d%%\n", d.Today.Efficiency)
		fmt.Fprintf(out, "  Deep work:   %d/%d hours (%d%%)\n", d.Today.DeepWork, d.TargetHours, d.TargetProgress)
		fmt.Fprintf(out, "  Streak:      %d days\n", d.Streak)
		fmt.Fprintf(out, "  Score:       %d\n", d.ProductivityScore)
		fmt.Fprintf(out, "  Tasks:       %d done today, %d open\n", d.TasksCompletedToday, d.TasksOpen)

		fmt.Fprintln(out, "\n  CATEGORIES")
		fmt.Fprintln(out, strings.Repeat("-", 44))
		for _, c := range tracking.Categories() {
			fmt.Fprintf(out, "    %-12s %2d\n", c.Label(), d.Today.Counts[c])
		}

		fmt.Fprintln(out, "\n  THIS WEEK (deep work)")
		fmt.Fprintln(out, strings.Repeat("-", 44))
		printWeek(out, d.Week)
		fmt.Fprintln(out)
		return nil
	},
}

func printWeek(out io.Writer, week [7]int) {
	for i, hours := range week {
		fmt.Fprintf(out, "    %s %2d %s\n", weekdayShort[i], hours, strings.Repeat("#", hours))
	}
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
