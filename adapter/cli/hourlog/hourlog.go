// Package hourlog holds the commands that write and read the hour log.
package hourlog

import (
	"fmt"
	"strconv"

	tracking "github.com/felixgeelhaar/pytron/internal/tracking/domain"
	"github.com/spf13/cobra"
)

// Cmd is the log command group.
var Cmd = &cobra.Command{
	Use:   "log",
	Short: "Log how your hours were spent",
	Long: `Record a category for an hour of the day, clear it, or show a day.

Categories: DEEP_WORK, SHALLOW, DISTRACTION, REST, SLEEP, EXERCISE.`,
}

func init() {
	Cmd.AddCommand(setCmd)
	Cmd.AddCommand(clearCmd)
	Cmd.AddCommand(showCmd)
}

// parseDate accepts YYYY-MM-DD; empty means today.
func parseDate(s string) (tracking.DateKey, error) {
	if s == "" {
		return "", nil
	}
	return tracking.ParseDateKey(s)
}

func parseHour(s string) (int, error) {
	h, err := strconv.Atoi(s)
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour %q: %w", s, tracking.ErrInvalidHour)
	}
	return h, nil
}
