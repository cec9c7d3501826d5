// Package mcp exposes the tracker to MCP clients as tools, resources and
// prompts.
package mcp

import (
	"errors"

	"github.com/felixgeelhaar/mcp-go"

	"github.com/felixgeelhaar/pytron/adapter/cli"
)

// ToolDependencies provides the services behind the MCP tools.
type ToolDependencies struct {
	App *cli.App
}

// RegisterCLITools registers MCP tools that mirror CLI functionality.
func RegisterCLITools(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return errors.New("server is required")
	}
	if deps.App == nil {
		return errors.New("app is required")
	}

	registerLogTools(srv, deps)
	registerTaskTools(srv, deps)
	registerGoalTools(srv, deps)
	registerPomodoroTools(srv, deps)
	return nil
}
