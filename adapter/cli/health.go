package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that storage is reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := RequireApp()
		if err != nil {
			return err
		}
		if app.Container == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		}
		if err := app.Container.Store.Ping(cmd.Context()); err != nil {
			return fmt.Errorf("store unreachable: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "ok (%s)\n", app.Container.Store.Driver())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
