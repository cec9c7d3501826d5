package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/pytron/adapter/cli"
	"github.com/felixgeelhaar/pytron/adapter/cli/badge"
	"github.com/felixgeelhaar/pytron/adapter/cli/goal"
	"github.com/felixgeelhaar/pytron/adapter/cli/hourlog"
	"github.com/felixgeelhaar/pytron/adapter/cli/mcp"
	"github.com/felixgeelhaar/pytron/adapter/cli/notify"
	"github.com/felixgeelhaar/pytron/adapter/cli/pomodoro"
	"github.com/felixgeelhaar/pytron/adapter/cli/serve"
	cliSettings "github.com/felixgeelhaar/pytron/adapter/cli/settings"
	"github.com/felixgeelhaar/pytron/adapter/cli/task"
	"github.com/felixgeelhaar/pytron/internal/app"
	"github.com/felixgeelhaar/pytron/pkg/config"
	"github.com/felixgeelhaar/pytron/pkg/observability"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	logCfg := observability.DefaultLogConfig()
	logCfg.Format = observability.LogFormat(cfg.LogFormat)
	logCfg.ServiceVersion = cli.Version
	if os.Getenv("LOG_LEVEL") != "" {
		logCfg.Level = observability.LogLevel(cfg.LogLevel)
	}
	if hasVerboseFlag(os.Args[1:]) {
		logCfg.Level = observability.LogLevelDebug
	}
	logger := observability.NewLogger(logCfg)
	cli.SetLogger(logger)

	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize container", "error", err)
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	cli.SetApp(cli.NewApp(container))

	cli.AddCommand(
		hourlog.Cmd,
		task.Cmd,
		badge.Cmd,
		goal.Cmd,
		pomodoro.Cmd,
		notify.Cmd,
		cliSettings.Cmd,
		serve.Cmd,
		mcp.Cmd,
	)

	code := 0
	if err := cli.Run(ctx); err != nil {
		code = 1
	}
	container.Close()
	os.Exit(code)
}

// hasVerboseFlag looks for -v before cobra parses flags; the logger is
// built before the command tree runs.
func hasVerboseFlag(args []string) bool {
	for _, a := range args {
		if a == "--" {
			return false
		}
		if a == "-v" || a == "--verbose" {
			return true
		}
	}
	return false
}
