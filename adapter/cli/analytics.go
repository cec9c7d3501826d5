package cli

import (
	"fmt"
	"strings"

	tracking "github.com/felixgeelhaar/pytron/internal/tracking/domain"
	"github.com/spf13/cobra"
)

var analyticsDays int

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Show statistics for a range of days",
	Long: `Aggregate the window of days ending today: deep work, efficiency,
category totals, task completion, a productivity score and insights.

Examples:
  pytron analytics            # Last 7 days
  pytron analytics --days 30  # Last 30 days`,
	Aliases: []string{"stats", "insights"},
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := RequireApp()
		if err != nil {
			return err
		}

		r, err := app.Analytics.Range(cmd.Context(), analyticsDays)
		if err != nil {
			return err
		}
		if jsonOutput {
			return PrintJSON(cmd, r)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "\n  Last %d days", len(r.Days))
		if len(r.Days) > 0 {
			fmt.Fprintf(out, " (%s - %s)", r.Days[0].Label(), r.Days[len(r.Days)-1].Label())
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, strings.Repeat("=", 44))
		fmt.Fprintf(out, "  Deep work:       %d hours\n", r.TotalDeepWork)
		fmt.Fprintf(out, "  Avg efficiency:  %d%%\n", r.AvgEfficiency)
		fmt.Fprintf(out, "  Hours logged:    %d\n", r.TotalLogs)
		fmt.Fprintf(out, "  Tasks worked:    %d\n", len(r.Tasks.Sessions))
		fmt.Fprintf(out, "  Score:           %d\n", r.ProductivityScore)

		fmt.Fprintln(out, "\n  CATEGORIES")
		fmt.Fprintln(out, strings.Repeat("-", 44))
		for _, c := range tracking.Categories() {
			fmt.Fprintf(out, "    %-12s %3d\n", c.Label(), r.CategoryTotals[c])
		}

		if len(r.Insights) > 0 {
			fmt.Fprintln(out, "\n  INSIGHTS")
			fmt.Fprintln(out, strings.Repeat("-", 44))
			for _, in := range r.Insights {
				fmt.Fprintf(out, "    - %s\n", in.Message)
			}
		}
		fmt.Fprintln(out)
		return nil
	},
}

func init() {
	analyticsCmd.Flags().IntVarP(&analyticsDays, "days", "d", 7, "number of days ending today (1-365)")
	rootCmd.AddCommand(analyticsCmd)
}
