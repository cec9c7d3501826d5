// Package notify holds the notification commands.
package notify

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/pytron/adapter/cli"
	notificationsApp "github.com/felixgeelhaar/pytron/internal/notifications/application"
	notifications "github.com/felixgeelhaar/pytron/internal/notifications/domain"
)

// Cmd is the notify command group.
var Cmd = &cobra.Command{
	Use:   "notify",
	Short: "Manage reminders and alerts",
	Long: `Configure the daily reminder, task deadline alerts, streak alerts and
the weekly summary. Scheduled delivery runs while 'pytron serve' is up.`,
}

func init() {
	Cmd.AddCommand(settingsCmd)
	Cmd.AddCommand(runCmd)
	Cmd.AddCommand(testCmd)
}

var (
	enabled       bool
	dailyReminder bool
	reminderTime  string
	taskDeadlines bool
	streakAlerts  bool
	weeklySummary bool
	quietHours    bool
	quietStart    string
	quietEnd      string
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change notification settings",
	Long: `Without flags, show the settings. With flags, change them.

Examples:
  pytron notify settings
  pytron notify settings --enabled --reminder-time 17:30
  pytron notify settings --quiet-hours --quiet-start 21:00 --quiet-end 07:00`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		u := updateFromFlags(cmd)
		s := app.Notifications.Settings()
		if u != (notifications.Update{}) {
			if s, err = app.Notifications.UpdateSettings(cmd.Context(), u); err != nil {
				return fmt.Errorf("failed to update notification settings: %w", err)
			}
		}
		if cli.JSONOutput() {
			return cli.PrintJSON(cmd, s)
		}
		printSettings(cmd.OutOrStdout(), s)
		return nil
	},
}

func updateFromFlags(cmd *cobra.Command) notifications.Update {
	var u notifications.Update
	flags := cmd.Flags()
	if flags.Changed("enabled") {
		u.Enabled = &enabled
	}
	if flags.Changed("daily-reminder") {
		u.DailyReminder = &dailyReminder
	}
	if flags.Changed("reminder-time") {
		u.DailyReminderTime = &reminderTime
	}
	if flags.Changed("task-deadlines") {
		u.TaskDeadlines = &taskDeadlines
	}
	if flags.Changed("streak-alerts") {
		u.StreakAlerts = &streakAlerts
	}
	if flags.Changed("weekly-summary") {
		u.WeeklySummary = &weeklySummary
	}
	if flags.Changed("quiet-hours") {
		u.QuietHoursEnabled = &quietHours
	}
	if flags.Changed("quiet-start") {
		u.QuietHoursStart = &quietStart
	}
	if flags.Changed("quiet-end") {
		u.QuietHoursEnd = &quietEnd
	}
	return u
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func printSettings(out io.Writer, s notifications.Settings) {
	fmt.Fprintf(out, "  notifications:   %s\n", onOff(s.Enabled))
	fmt.Fprintf(out, "  daily reminder:  %s at %s\n", onOff(s.DailyReminder), s.DailyReminderTime)
	fmt.Fprintf(out, "  task deadlines:  %s\n", onOff(s.TaskDeadlines))
	fmt.Fprintf(out, "  streak alerts:   %s\n", onOff(s.StreakAlerts))
	fmt.Fprintf(out, "  weekly summary:  %s\n", onOff(s.WeeklySummary))
	fmt.Fprintf(out, "  quiet hours:     %s (%s-%s)\n", onOff(s.QuietHoursEnabled), s.QuietHoursStart, s.QuietHoursEnd)
}

var runCmd = &cobra.Command{
	Use:   "run [check...]",
	Short: "Run notification checks now",
	Long: `Run checks immediately instead of waiting for their schedule.
Checks: daily, deadlines, streak, weekly. Without arguments all run.

Examples:
  pytron notify run
  pytron notify run deadlines streak`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		checks := notificationsApp.Checks()
		if len(args) > 0 {
			checks = checks[:0:0]
			for _, a := range args {
				checks = append(checks, notificationsApp.Check(strings.ToLower(a)))
			}
		}

		out := cmd.OutOrStdout()
		var produced []notifications.Notification
		for _, c := range checks {
			notes, err := app.Notifications.Run(cmd.Context(), c)
			switch {
			case errors.Is(err, notifications.ErrDisabled):
				fmt.Fprintf(out, "%s: notifications are disabled\n", c)
			case errors.Is(err, notifications.ErrQuietHours):
				fmt.Fprintf(out, "%s: quiet hours\n", c)
			case err != nil:
				return fmt.Errorf("check %s failed: %w", c, err)
			}
			produced = append(produced, notes...)
			if !cli.JSONOutput() {
				for _, n := range notes {
					fmt.Fprintf(out, "%s: %s - %s\n", c, n.Title, n.Body)
				}
			}
		}
		if cli.JSONOutput() {
			if produced == nil {
				produced = []notifications.Notification{}
			}
			return cli.PrintJSON(cmd, produced)
		}
		if len(produced) == 0 {
			fmt.Fprintln(out, "Nothing to notify.")
		}
		return nil
	},
}

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Send a test notification",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		if err := app.Notifications.SendTest(cmd.Context()); err != nil {
			if errors.Is(err, notifications.ErrDisabled) {
				return fmt.Errorf("%w; enable them with 'pytron notify settings --enabled'", err)
			}
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Test notification sent.")
		return nil
	},
}

func init() {
	f := settingsCmd.Flags()
	f.BoolVar(&enabled, "enabled", false, "deliver notifications")
	f.BoolVar(&dailyReminder, "daily-reminder", true, "daily logging reminder")
	f.StringVar(&reminderTime, "reminder-time", "18:00", "daily reminder time (HH:MM)")
	f.BoolVar(&taskDeadlines, "task-deadlines", true, "task due and overdue alerts")
	f.BoolVar(&streakAlerts, "streak-alerts", true, "evening alert when the streak is at risk")
	f.BoolVar(&weeklySummary, "weekly-summary", true, "Sunday evening summary")
	f.BoolVar(&quietHours, "quiet-hours", false, "hold notifications during quiet hours")
	f.StringVar(&quietStart, "quiet-start", "22:00", "quiet hours start (HH:MM)")
	f.StringVar(&quietEnd, "quiet-end", "08:00", "quiet hours end (HH:MM)")
}
