package main

import (
	"encoding/json"
	"fmt"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	version "github.com/mutablelogic/go-weather/pkg/version"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type ListToolsCmd struct{}

type RunToolCmd struct {
	Tool  string `arg:"" help:"Tool name"`
	Input string `arg:"" optional:"" help:"Tool input as JSON"`
}

type VersionCmd struct{}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *ListToolsCmd) Run(ctx *Globals) error {
	toolkit, err := ctx.Toolkit()
	if err != nil {
		return err
	}
	for _, t := range toolkit.Tools() {
		fmt.Printf("%-28s %s\n", t.Name(), t.Description())
	}
	return nil
}

func (cmd *RunToolCmd) Run(ctx *Globals) (err error) {
	toolkit, err := ctx.Toolkit()
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "RunToolCmd")
	defer func() { endSpan(err) }()

	// Run the tool
	var input json.RawMessage
	if cmd.Input != "" {
		input = json.RawMessage(cmd.Input)
	}
	result, err := toolkit.Run(parent, cmd.Tool, input)
	if err != nil {
		return err
	}

	// Print the result
	fmt.Println(result)
	return nil
}

func (cmd *VersionCmd) Run(ctx *Globals) error {
	fmt.Println(string(version.JSON(execName())))
	return nil
}
