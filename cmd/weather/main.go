package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	// Packages
	kong "github.com/alecthomas/kong"
	client "github.com/mutablelogic/go-client"
	halden "github.com/mutablelogic/go-weather/pkg/halden"
	tool "github.com/mutablelogic/go-weather/pkg/tool"
	otel "go.opentelemetry.io/otel"
	trace "go.opentelemetry.io/otel/trace"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type Globals struct {
	// Debugging
	Debug   bool `name:"debug" help:"Enable debug output"`
	Verbose bool `name:"verbose" help:"Enable verbose output"`

	// Tools
	Brave `embed:"" help:"Brave search configuration"`

	// Context
	ctx    context.Context
	tracer trace.Tracer
}

type Brave struct {
	BraveKey string `env:"BRAVE_API_KEY" help:"Brave search API key"`
}

type CLI struct {
	Globals

	// Commands
	Mcp     MCPServerCmd `cmd:"" name:"mcp" help:"Start an MCP server on stdin and stdout"`
	Tools   ListToolsCmd `cmd:"" help:"Return a list of tools"`
	Run     RunToolCmd   `cmd:"" help:"Run a tool and print the result"`
	Version VersionCmd   `cmd:"" help:"Print version information"`
}

////////////////////////////////////////////////////////////////////////////////
// MAIN

func main() {
	// Create a cli parser
	cli := CLI{}
	cmd := kong.Parse(&cli,
		kong.Name(execName()),
		kong.Description("Weather and local-search tools for Halden, Norway"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{},
	)

	// Create a context
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	cli.Globals.ctx = ctx
	cli.Globals.tracer = otel.Tracer(execName())

	// Diagnostics go to stderr, stdout carries the MCP wire
	level := slog.LevelInfo
	if cli.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	// Run the command
	if err := cmd.Run(&cli.Globals); err != nil {
		cmd.FatalIfErrorf(err)
		return
	}
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// Toolkit creates the tools for the fixed location and registers them
// in a single toolkit
func (g *Globals) Toolkit() (*tool.Toolkit, error) {
	tools, err := halden.NewTools(g.BraveKey, g.clientOpts()...)
	if err != nil {
		return nil, err
	}
	return tool.NewToolkit(tools...)
}

func (g *Globals) clientOpts() []client.ClientOpt {
	result := []client.ClientOpt{}
	if g.Debug {
		result = append(result, client.OptTrace(os.Stderr, g.Verbose))
	}
	if g.tracer != nil {
		result = append(result, client.OptTracer(g.tracer))
	}
	return result
}

func execName() string {
	// The name of the executable
	name, err := os.Executable()
	if err != nil {
		panic(err)
	} else {
		return filepath.Base(name)
	}
}
