// Package serve runs the HTTP API with the background scheduler.
package serve

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/pytron/adapter/api"
	"github.com/felixgeelhaar/pytron/adapter/cli"
)

const shutdownTimeout = 10 * time.Second

var addr string

// Cmd starts the HTTP API.
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Serve the JSON API under /api/v1 and Prometheus metrics under
/metrics. Notification checks run in the background while serving.
Set API_TOKEN to require a bearer token.

Examples:
  pytron serve
  pytron serve --addr 0.0.0.0:8080`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		c := app.Container
		if c == nil {
			return cli.ErrNotInitialized
		}

		handler := api.NewHandler(api.HandlerConfig{
			Tracking:  c.Tracking,
			Analytics: c.Analytics,
			Badges:    c.Badges,
			Goals:     c.Goals,
			Backup:    c.Backup,
			Store:     c.Store,
			Metrics:   c.Metrics,
			Logger:    c.Logger,
		})
		router := api.NewRouter(api.RouterConfig{
			Handler:        handler,
			Token:          c.Config.APIToken,
			MetricsHandler: c.Metrics.Handler(),
			Metrics:        c.Metrics,
			Logger:         c.Logger,
		})

		serverCfg := api.DefaultServerConfig()
		serverCfg.Addr = c.Config.APIAddr
		if addr != "" {
			serverCfg.Addr = addr
		}
		if c.Config.APIToken == "" {
			c.Logger.Warn("API_TOKEN not set; requests will be unauthenticated")
		}
		server := api.NewServer(serverCfg, router, c.Logger)

		ctx := cmd.Context()
		c.Start(ctx)

		errCh := make(chan error, 1)
		go func() { errCh <- server.Start() }()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return <-errCh
	},
}

func init() {
	Cmd.Flags().StringVar(&addr, "addr", "", "listen address (default API_ADDR)")
}
