package goal

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/pytron/adapter/cli"
	goalsCommands "github.com/felixgeelhaar/pytron/internal/goals/application/commands"
	goals "github.com/felixgeelhaar/pytron/internal/goals/domain"
	tracking "github.com/felixgeelhaar/pytron/internal/tracking/domain"
)

var (
	createType     string
	createTarget   float64
	createCategory string
	createDeadline string
)

var createCmd = &cobra.Command{
	Use:   "create [title]",
	Short: "Create a goal",
	Long: `Create a goal with a type and a positive target.

Examples:
  pytron goal create "100 deep hours" --type hours --target 100
  pytron goal create "Exercise" --type hours --target 20 --category exercise
  pytron goal create "Two week streak" --type streak --target 14 --deadline 2026-12-31`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		goalType, err := goals.ParseGoalType(createType)
		if err != nil {
			return fmt.Errorf("%w: %q", err, createType)
		}
		command := goalsCommands.CreateGoalCommand{
			Title:  strings.Join(args, " "),
			Type:   goalType,
			Target: createTarget,
		}
		if createCategory != "" {
			c, err := tracking.ParseCategory(createCategory)
			if err != nil {
				return fmt.Errorf("%w: %q", err, createCategory)
			}
			command.Category = &c
		}
		if command.Deadline, err = parseOptionalDate(createDeadline); err != nil {
			return err
		}

		g, err := app.Goals.Create(cmd.Context(), command)
		if err != nil {
			return fmt.Errorf("failed to create goal: %w", err)
		}
		if cli.JSONOutput() {
			return cli.PrintJSON(cmd, g)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Goal created: %s\n", g.ID)
		fmt.Fprintf(cmd.OutOrStdout(), "  %s: %s/%s %s\n", g.Title, formatNumber(g.Current), formatNumber(g.Target), g.Type)
		return nil
	},
}

func init() {
	createCmd.Flags().StringVarP(&createType, "type", "t", string(goals.GoalTypeHours), "goal type (hours, streak, tasks, custom)")
	createCmd.Flags().Float64Var(&createTarget, "target", 0, "target value")
	createCmd.Flags().StringVar(&createCategory, "category", "", "category counted by an hours goal (default deep work)")
	createCmd.Flags().StringVar(&createDeadline, "deadline", "", "deadline (YYYY-MM-DD)")
	_ = createCmd.MarkFlagRequired("target")
}
