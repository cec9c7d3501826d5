package mcp

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/felixgeelhaar/mcp-go/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/pytron/adapter/cli"
)

func TestNewServer_RequiresApp(t *testing.T) {
	_, err := NewServer(nil, "test", nil)
	assert.Error(t, err)

	srv, err := NewServer(&cli.App{}, "test", nil)
	require.NoError(t, err)
	assert.NotNil(t, srv)
}

func TestServe_RequiresConfig(t *testing.T) {
	err := Serve(context.Background(), nil, &cli.App{}, "test", nil)
	assert.Error(t, err)
}

func TestMCPLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	l := mcpLogger{logger: slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))}

	l.Info("tool called", middleware.Field{Key: "tool", Value: "log.set"})
	l.Debug("debug line")

	out := buf.String()
	assert.Contains(t, out, "tool called")
	assert.Contains(t, out, "tool=log.set")
	assert.Contains(t, out, "debug line")
}

