package pomodoro

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/pytron/adapter/cli"
	pomodoro "github.com/felixgeelhaar/pytron/internal/pomodoro/domain"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start or resume the timer",
	Long: `Start the current phase and wait in the foreground until it ends.
Interrupting the command pauses the timer.

Examples:
  pytron pomodoro start`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		app.Pomodoro.OnComplete(func(_ context.Context, c pomodoro.Completion, s pomodoro.State) {
			switch {
			case c.WorkDone && c.LongBreak:
				fmt.Fprintf(out, "Session %d done. Time for a long break (%s).\n", s.CurrentSession, clock(s.TimeRemaining))
			case c.WorkDone:
				fmt.Fprintf(out, "Session %d done. Time for a short break (%s).\n", s.CurrentSession, clock(s.TimeRemaining))
			default:
				fmt.Fprintln(out, "Break over. Ready for the next session.")
			}
		})

		if err := app.Pomodoro.Start(ctx); err != nil {
			return fmt.Errorf("failed to start timer: %w", err)
		}
		s := app.Pomodoro.State()
		fmt.Fprintf(out, "Started %s: %s remaining. Press Ctrl+C to pause.\n", phaseName(s), clock(s.TimeRemaining))

		if err := app.Pomodoro.Wait(ctx); err != nil {
			if !errors.Is(err, context.Canceled) {
				return err
			}
			// Interrupted: keep the remaining time for the next start.
			if err := app.Pomodoro.Pause(context.WithoutCancel(ctx)); err != nil {
				return fmt.Errorf("failed to pause timer: %w", err)
			}
			fmt.Fprintf(out, "\nPaused with %s remaining.\n", clock(app.Pomodoro.State().TimeRemaining))
		}
		return nil
	},
}
