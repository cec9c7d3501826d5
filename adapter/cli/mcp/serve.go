package mcp

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/pytron/adapter/cli"
	mcpinternal "github.com/felixgeelhaar/pytron/internal/mcp"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Serve the tracker's tools, resources and prompts to MCP clients over
HTTP. Set MCP_AUTH_TOKEN to require a bearer token.

Examples:
  pytron mcp serve
  pytron mcp serve --addr 127.0.0.1:9000`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		if app.Container == nil {
			return cli.ErrNotInitialized
		}

		cfg := *app.Container.Config
		if serveAddr != "" {
			cfg.MCPAddr = serveAddr
		}

		ctx := cmd.Context()
		app.Container.Start(ctx)

		err = mcpinternal.Serve(ctx, &cfg, app, cli.Version, app.Container.Logger)
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default MCP_ADDR)")
}
