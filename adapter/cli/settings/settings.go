package settings

import (
	"errors"
	"fmt"

	"github.com/felixgeelhaar/pytron/adapter/cli"
	trackingApp "github.com/felixgeelhaar/pytron/internal/tracking/application"
	tracking "github.com/felixgeelhaar/pytron/internal/tracking/domain"
	"github.com/spf13/cobra"
)

// Cmd is the settings command group.
var Cmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage user settings",
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		s := app.Tracking.Settings()
		if cli.JSONOutput() {
			return cli.PrintJSON(cmd, s)
		}
		printSettings(cmd, s)
		return nil
	},
}

var (
	targetHours     int
	streakThreshold int
	userName        string
	avatarStyle     string
)

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Change settings",
	Long: `Change one or more settings. Omitted flags keep their value.

Examples:
  pytron settings set --target-hours 6
  pytron settings set --streak-threshold 75 --name Ada`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		var update trackingApp.UpdateSettingsCommand
		flags := cmd.Flags()
		if flags.Changed("target-hours") {
			update.TargetHours = &targetHours
		}
		if flags.Changed("streak-threshold") {
			update.StreakThreshold = &streakThreshold
		}
		if flags.Changed("name") {
			update.UserName = &userName
		}
		if flags.Changed("avatar") {
			update.AvatarStyle = &avatarStyle
		}
		if update == (trackingApp.UpdateSettingsCommand{}) {
			return errors.New("nothing to change; pass at least one flag")
		}

		s, err := app.Tracking.UpdateSettings(cmd.Context(), update)
		if err != nil {
			return fmt.Errorf("failed to update settings: %w", err)
		}
		if cli.JSONOutput() {
			return cli.PrintJSON(cmd, s)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Settings saved.")
		printSettings(cmd, s)
		return nil
	},
}

func printSettings(cmd *cobra.Command, s tracking.Settings) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "  target hours:     %d\n", s.TargetHours)
	fmt.Fprintf(out, "  streak threshold: %d%% (%.1f deep work hours)\n", s.StreakThreshold, s.RequiredHours())
	if s.UserName != "" {
		fmt.Fprintf(out, "  name:             %s\n", s.UserName)
	}
	if s.AvatarStyle != "" {
		fmt.Fprintf(out, "  avatar:           %s\n", s.AvatarStyle)
	}
}

func init() {
	setCmd.Flags().IntVar(&targetHours, "target-hours", 0, "daily deep work target (1-24)")
	setCmd.Flags().IntVar(&streakThreshold, "streak-threshold", 0, "percent of the target a day needs to count toward the streak (0-100)")
	setCmd.Flags().StringVar(&userName, "name", "", "display name")
	setCmd.Flags().StringVar(&avatarStyle, "avatar", "", "avatar style")

	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(setCmd)
}
