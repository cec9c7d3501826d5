// Package pomodoro holds the pomodoro timer commands.
package pomodoro

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/pytron/adapter/cli"
	pomodoro "github.com/felixgeelhaar/pytron/internal/pomodoro/domain"
)

// Cmd is the pomodoro command group.
var Cmd = &cobra.Command{
	Use:     "pomodoro",
	Short:   "Run the pomodoro timer",
	Aliases: []string{"pomo"},
	Long: `A work/break timer. Each finished work session is logged as deep work
for the hour it ends in, unless that hour already has an entry.`,
}

func init() {
	Cmd.AddCommand(startCmd)
	Cmd.AddCommand(statusCmd)
	Cmd.AddCommand(pauseCmd)
	Cmd.AddCommand(resetCmd)
	Cmd.AddCommand(skipCmd)
	Cmd.AddCommand(configCmd)
}

func phaseName(s pomodoro.State) string {
	if !s.IsBreak {
		return "work"
	}
	if s.SessionsUntilLongBreak > 0 && s.CurrentSession%s.SessionsUntilLongBreak == 0 {
		return "long break"
	}
	return "break"
}

func clock(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func printState(out io.Writer, s pomodoro.State, stats pomodoro.Stats) {
	fmt.Fprintf(out, "  status:    %s\n", s.Status())
	fmt.Fprintf(out, "  phase:     %s, %s remaining\n", phaseName(s), clock(s.TimeRemaining))
	fmt.Fprintf(out, "  session:   %d (long break every %d)\n", s.CurrentSession, s.SessionsUntilLongBreak)
	fmt.Fprintf(out, "  durations: %d min work, %d min break, %d min long break\n",
		s.WorkDuration, s.BreakDuration, s.LongBreakDuration)
	fmt.Fprintf(out, "  today:     %d sessions, %d minutes\n", stats.SessionsCompleted, stats.TotalMinutes)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the timer",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		state := app.Pomodoro.State()
		stats := app.Pomodoro.TodayStats()
		if cli.JSONOutput() {
			return cli.PrintJSON(cmd, map[string]any{
				"state":  state,
				"status": state.Status(),
				"today":  stats,
			})
		}
		printState(cmd.OutOrStdout(), state, stats)
		return nil
	},
}

var pauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Pause the timer",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		if err := app.Pomodoro.Pause(cmd.Context()); err != nil {
			return fmt.Errorf("failed to pause timer: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Paused with %s remaining.\n", clock(app.Pomodoro.State().TimeRemaining))
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset to an idle work session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		if err := app.Pomodoro.Reset(cmd.Context()); err != nil {
			return fmt.Errorf("failed to reset timer: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Timer reset.")
		return nil
	},
}

var skipCmd = &cobra.Command{
	Use:   "skip",
	Short: "Finish the current phase now",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		if _, err := app.Pomodoro.CompleteNow(cmd.Context()); err != nil {
			return fmt.Errorf("failed to skip phase: %w", err)
		}
		s := app.Pomodoro.State()
		fmt.Fprintf(cmd.OutOrStdout(), "Skipped to %s (%s).\n", phaseName(s), clock(s.TimeRemaining))
		return nil
	},
}
