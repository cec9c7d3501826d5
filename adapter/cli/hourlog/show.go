package hourlog

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/pytron/adapter/cli"
	"github.com/spf13/cobra"
)

var (
	showDate string
	showAll  bool
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show a day's log",
	Long: `Show the entries and summary of a day.

Examples:
  pytron log show
  pytron log show --date 2026-10-12 --all`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		date, err := parseDate(showDate)
		if err != nil {
			return err
		}
		day, err := app.Analytics.Day(cmd.Context(), date)
		if err != nil {
			return err
		}
		if cli.JSONOutput() {
			return cli.PrintJSON(cmd, day)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "\n  %s (%s)\n", day.Stats.Date, day.Stats.Date.Label())
		fmt.Fprintln(out, strings.Repeat("-", 44))
		for h := 0; h < 24; h++ {
			entry, ok := day.Entries[h]
			if !ok {
				if showAll {
					fmt.Fprintf(out, "    %02d:00  -\n", h)
				}
				continue
			}
			line := fmt.Sprintf("    %02d:00  %-12s", h, entry.Category.Label())
			if entry.Note != "" {
				line += "  " + entry.Note
			}
			if entry.TaskID != "" {
				line += fmt.Sprintf("  [task %s]", entry.TaskID)
			}
			fmt.Fprintln(out, strings.TrimRight(line, " "))
		}
		if day.Stats.Logged == 0 && !showAll {
			fmt.Fprintln(out, "    Nothing logged.")
		}
		fmt.Fprintf(out, "\n  %d logged, %d deep work, efficiency %d%%\n\n",
			day.Stats.Logged, day.Stats.DeepWork, day.Stats.Efficiency)
		return nil
	},
}

func init() {
	showCmd.Flags().StringVar(&showDate, "date", "", "date (YYYY-MM-DD, default today)")
	showCmd.Flags().BoolVarP(&showAll, "all", "a", false, "list empty hours too")
}
