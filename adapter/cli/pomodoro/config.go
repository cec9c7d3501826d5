package pomodoro

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/pytron/adapter/cli"
	pomodoro "github.com/felixgeelhaar/pytron/internal/pomodoro/domain"
)

var (
	workMinutes      int
	breakMinutes     int
	longBreakMinutes int
	sessionsPerCycle int
	sound            bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Change timer durations",
	Long: `Change the work and break lengths. Changing the configuration resets
the timer.

Examples:
  pytron pomodoro config --work 50 --break 10
  pytron pomodoro config --long-break 20 --sessions 3`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		var cfg pomodoro.Config
		flags := cmd.Flags()
		if flags.Changed("work") {
			cfg.WorkDuration = &workMinutes
		}
		if flags.Changed("break") {
			cfg.BreakDuration = &breakMinutes
		}
		if flags.Changed("long-break") {
			cfg.LongBreakDuration = &longBreakMinutes
		}
		if flags.Changed("sessions") {
			cfg.SessionsPerCycle = &sessionsPerCycle
		}
		if flags.Changed("sound") {
			cfg.SoundEnabled = &sound
		}
		if cfg == (pomodoro.Config{}) {
			return errors.New("nothing to change; pass at least one flag")
		}

		state, err := app.Pomodoro.Configure(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("failed to configure timer: %w", err)
		}
		if cli.JSONOutput() {
			return cli.PrintJSON(cmd, state)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Timer configured.")
		printState(cmd.OutOrStdout(), state, app.Pomodoro.TodayStats())
		return nil
	},
}

func init() {
	configCmd.Flags().IntVar(&workMinutes, "work", 25, "work minutes (1-60)")
	configCmd.Flags().IntVar(&breakMinutes, "break", 5, "short break minutes (1-30)")
	configCmd.Flags().IntVar(&longBreakMinutes, "long-break", 15, "long break minutes (1-60)")
	configCmd.Flags().IntVar(&sessionsPerCycle, "sessions", 4, "work sessions before a long break")
	configCmd.Flags().BoolVar(&sound, "sound", true, "play a sound when a phase ends")
}
