package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	backup "github.com/felixgeelhaar/pytron/internal/backup/domain"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOutput string
	importFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export hours, tasks and settings",
	Long: `Write a backup of the hour log, the task list and the settings.

The format defaults to the output file's extension, or JSON on stdout.

Examples:
  pytron export > backup.json
  pytron export --output backup.yaml
  pytron export --format yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := RequireApp()
		if err != nil {
			return err
		}

		name := exportFormat
		if name == "" && exportOutput != "" {
			name = filepath.Ext(exportOutput)
		}
		format, err := backup.ParseFormat(name)
		if err != nil {
			return err
		}

		var w io.Writer = cmd.OutOrStdout()
		if exportOutput != "" && exportOutput != "-" {
			f, err := os.Create(exportOutput)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", exportOutput, err)
			}
			defer f.Close()
			w = f
		}

		if err := app.Backup.Export(cmd.Context(), w, format); err != nil {
			return err
		}
		if exportOutput != "" && exportOutput != "-" {
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported to %s\n", exportOutput)
		}
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import a backup",
	Long: `Replace the hour log, the task list and the settings with the
contents of a backup. Only the sections present in the file are replaced.
A malformed file changes nothing.

Examples:
  pytron import backup.json
  pytron import backup.yaml
  cat backup.json | pytron import -`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := RequireApp()
		if err != nil {
			return err
		}

		path := args[0]
		name := importFormat
		if name == "" && path != "-" {
			name = filepath.Ext(path)
		}
		format, err := backup.ParseFormat(name)
		if err != nil {
			return err
		}

		var r io.Reader = cmd.InOrStdin()
		if path != "-" {
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", path, err)
			}
			defer f.Close()
			r = f
		}

		result, err := app.Backup.Import(cmd.Context(), r, format)
		if err != nil {
			return err
		}
		if jsonOutput {
			return PrintJSON(cmd, result)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Imported backup (version %s)\n", result.Version)
		if result.Log {
			fmt.Fprintf(out, "  days:     %d\n", result.Days)
		}
		if result.TaskList {
			fmt.Fprintf(out, "  tasks:    %d\n", result.Tasks)
		}
		if result.Settings {
			fmt.Fprintln(out, "  settings: replaced")
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "output format (json, yaml)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default stdout)")
	importCmd.Flags().StringVarP(&importFormat, "format", "f", "", "input format (json, yaml); defaults to the file extension")
	rootCmd.AddCommand(exportCmd, importCmd)
}
