// Package badge holds the badge commands.
package badge

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/pytron/adapter/cli"
	badges "github.com/felixgeelhaar/pytron/internal/badges/domain"
	"github.com/spf13/cobra"
)

// Cmd is the badge command group.
var Cmd = &cobra.Command{
	Use:   "badge",
	Short: "Show achievement badges",
}

var listUnlocked bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List badges with progress",
	Long: `List every badge, whether it is unlocked, and progress toward it.

Examples:
  pytron badge list
  pytron badge list --unlocked`,
	Aliases: []string{"ls"},
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		views, err := app.Badges.List(cmd.Context())
		if err != nil {
			return err
		}
		if listUnlocked {
			unlocked := views[:0:0]
			for _, v := range views {
				if v.Unlocked {
					unlocked = append(unlocked, v)
				}
			}
			views = unlocked
		}
		if cli.JSONOutput() {
			return cli.PrintJSON(cmd, views)
		}

		summary, err := app.Badges.Summary(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "\n  Badges: %d/%d unlocked\n", summary.Unlocked, summary.Total)
		fmt.Fprintln(out, strings.Repeat("-", 60))
		for _, v := range views {
			fmt.Fprintln(out, formatView(v))
		}
		fmt.Fprintln(out)
		return nil
	},
}

func formatView(v badges.View) string {
	mark := "  "
	if v.Unlocked {
		mark = "* "
	}
	return fmt.Sprintf("  %s%s %-16s %-10s %3d%%  %s", mark, v.Icon, v.Name, v.Rarity, v.Progress, v.Description)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Evaluate badges now",
	Long: `Check every badge condition against the current log and unlock the
badges that are earned. Badges never lock again.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		unlocked, err := app.Badges.Check(cmd.Context())
		if err != nil {
			return err
		}
		if unlocked == nil {
			unlocked = []badges.Badge{}
		}
		if cli.JSONOutput() {
			return cli.PrintJSON(cmd, unlocked)
		}

		out := cmd.OutOrStdout()
		if len(unlocked) == 0 {
			fmt.Fprintln(out, "No new badges.")
			return nil
		}
		for _, b := range unlocked {
			fmt.Fprintf(out, "Unlocked %s %s: %s\n", b.Icon, b.Name, b.Description)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVar(&listUnlocked, "unlocked", false, "only unlocked badges")
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(checkCmd)
}
