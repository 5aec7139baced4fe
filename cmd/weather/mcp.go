package main

import (
	"log/slog"
	"os"

	// Packages
	halden "github.com/mutablelogic/go-weather/pkg/halden"
	mcp "github.com/mutablelogic/go-weather/pkg/mcp"
	version "github.com/mutablelogic/go-weather/pkg/version"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type MCPServerCmd struct {
	// No additional options - the search key comes from the globals
}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *MCPServerCmd) Run(ctx *Globals) error {
	// Create toolkit with tools
	toolkit, err := ctx.Toolkit()
	if err != nil {
		return err
	}

	// Report readiness of each upstream dependency
	slog.Info("forecast source ready", "location", "Halden", "lat", halden.Latitude, "lon", halden.Longitude)
	if ctx.BraveKey != "" {
		slog.Info("search ready")
	} else {
		slog.Info("search disabled", "hint", "set BRAVE_API_KEY to enable")
	}

	// Create MCP server and run it on stdio
	server, err := mcp.New(execName(), version.Version(), mcp.WithToolkit(toolkit))
	if err != nil {
		return err
	}
	return server.RunStdio(ctx.ctx, os.Stdin, os.Stdout)
}
