package hourlog

import (
	"fmt"

	"github.com/felixgeelhaar/pytron/adapter/cli"
	trackingApp "github.com/felixgeelhaar/pytron/internal/tracking/application"
	tracking "github.com/felixgeelhaar/pytron/internal/tracking/domain"
	"github.com/spf13/cobra"
)

var (
	setDate   string
	setNote   string
	setTaskID string
)

var setCmd = &cobra.Command{
	Use:   "set [hour] [category]",
	Short: "Log an hour",
	Long: `Record what an hour (0-23) was spent on. An existing entry is replaced.

Examples:
  pytron log set 9 deep_work
  pytron log set 14 shallow --note "email triage"
  pytron log set 10 deep-work --task 01JABC... --date 2026-10-12`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		hour, err := parseHour(args[0])
		if err != nil {
			return err
		}
		category, err := tracking.ParseCategory(args[1])
		if err != nil {
			return fmt.Errorf("%w: %q", err, args[1])
		}
		date, err := parseDate(setDate)
		if err != nil {
			return err
		}

		entry, err := app.Tracking.LogHour(cmd.Context(), trackingApp.LogHourCommand{
			Date:     date,
			Hour:     hour,
			Category: category,
			Note:     setNote,
			TaskID:   setTaskID,
		})
		if err != nil {
			return fmt.Errorf("failed to log hour: %w", err)
		}
		if cli.JSONOutput() {
			return cli.PrintJSON(cmd, entry)
		}

		if date == "" {
			date = app.Tracking.Today()
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Logged %s %02d:00 as %s\n", date, hour, entry.Category.Label())
		return nil
	},
}

func init() {
	setCmd.Flags().StringVar(&setDate, "date", "", "date (YYYY-MM-DD, default today)")
	setCmd.Flags().StringVarP(&setNote, "note", "n", "", "note for the hour")
	setCmd.Flags().StringVarP(&setTaskID, "task", "t", "", "link the hour to a task")
}
