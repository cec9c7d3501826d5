package hourlog

import (
	"fmt"

	"github.com/felixgeelhaar/pytron/adapter/cli"
	"github.com/spf13/cobra"
)

var clearDate string

var clearCmd = &cobra.Command{
	Use:   "clear [hour]",
	Short: "Clear an hour's entry",
	Long: `Remove the entry for an hour. Clearing an empty hour is not an error.

Examples:
  pytron log clear 9
  pytron log clear 22 --date 2026-10-12`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		hour, err := parseHour(args[0])
		if err != nil {
			return err
		}
		date, err := parseDate(clearDate)
		if err != nil {
			return err
		}

		if err := app.Tracking.ClearHour(cmd.Context(), date, hour); err != nil {
			return fmt.Errorf("failed to clear hour: %w", err)
		}
		if date == "" {
			date = app.Tracking.Today()
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s %02d:00\n", date, hour)
		return nil
	},
}

func init() {
	clearCmd.Flags().StringVar(&clearDate, "date", "", "date (YYYY-MM-DD, default today)")
}
