package task

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/felixgeelhaar/pytron/adapter/cli"
	trackingApp "github.com/felixgeelhaar/pytron/internal/tracking/application"
	tracking "github.com/felixgeelhaar/pytron/internal/tracking/domain"
	"github.com/spf13/cobra"
)

var (
	priority string
	duration int
	dueTime  string
	tag      string
)

var addCmd = &cobra.Command{
	Use:   "add [text]",
	Short: "Add a task",
	Long: `Add a task with optional due time, priority, duration and tag.

Examples:
  pytron task add "Write report"
  pytron task add "Review PR" -p high --due 15:30 -d 45
  pytron task add "Plan sprint" --tag work`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		p, err := tracking.ParsePriority(priority)
		if err != nil {
			return fmt.Errorf("%w: %q (use high, medium or low)", err, priority)
		}
		meta := tracking.TaskMeta{
			DueTime:  dueTime,
			Priority: p,
			Tag:      tag,
		}
		if duration > 0 {
			meta.Duration = strconv.Itoa(duration)
		}

		t, err := app.Tracking.AddTask(cmd.Context(), trackingApp.AddTaskCommand{
			Text: strings.Join(args, " "),
			Meta: meta,
		})
		if err != nil {
			return fmt.Errorf("failed to add task: %w", err)
		}
		if cli.JSONOutput() {
			return cli.PrintJSON(cmd, t)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Task added: %s\n", t.ID)
		fmt.Fprintf(out, "  text: %s\n", t.Text)
		if t.Priority != tracking.PriorityNone {
			fmt.Fprintf(out, "  priority: %s\n", t.Priority)
		}
		if t.DueTime != "" {
			fmt.Fprintf(out, "  due: %s\n", t.DueTime)
		}
		if t.Duration != "" {
			fmt.Fprintf(out, "  duration: %s minutes\n", t.Duration)
		}
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&priority, "priority", "p", "", "task priority (high, medium, low)")
	addCmd.Flags().IntVarP(&duration, "duration", "d", 0, "estimated duration in minutes")
	addCmd.Flags().StringVar(&dueTime, "due", "", "due time today (HH:MM)")
	addCmd.Flags().StringVar(&tag, "tag", "", "tag")
}
