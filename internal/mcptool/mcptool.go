// Package mcptool exposes the generator as a Model Context Protocol tool.
package mcptool

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/njchilds90/trickone/generator"
)

const (
	ServerName = "trickone"
	ToolName   = "generate_puzzle"
)

// Generator is the part of *generator.Generator the tool needs.
type Generator interface {
	GenerateResult(ctx context.Context, level generator.Level) (generator.Result, error)
}

// PuzzleInput is the tool input.
type PuzzleInput struct {
	Level int `json:"level" jsonschema:"difficulty level: 1 elementary, 2 polynomial, 3 recursive"`
}

// PuzzleResult is the tool output.
type PuzzleResult struct {
	Expr     string `json:"expr" jsonschema:"plain-text form of an expression that simplifies to 1"`
	LaTeX    string `json:"latex" jsonschema:"LaTeX form of the expression"`
	Level    int    `json:"level" jsonschema:"level the expression was generated at"`
	Key      string `json:"key" jsonschema:"structural key, unique per process"`
	Attempts int    `json:"attempts" jsonschema:"candidates tried before this one was accepted"`
}

func PuzzleTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        ToolName,
		Description: "Generates a disguised mathematical expression that simplifies exactly to 1.",
	}
}

func PuzzleHandler(gen Generator) mcp.ToolHandlerFor[PuzzleInput, PuzzleResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input PuzzleInput) (*mcp.CallToolResult, PuzzleResult, error) {
		level, err := generator.ParseLevel(input.Level)
		if err != nil {
			return nil, PuzzleResult{}, err
		}
		res, err := gen.GenerateResult(ctx, level)
		if errors.Is(err, generator.ErrGenerationExhausted) {
			return nil, PuzzleResult{}, fmt.Errorf("no new expression found at level %d, try again", input.Level)
		}
		if err != nil {
			return nil, PuzzleResult{}, fmt.Errorf("generate puzzle: %w", err)
		}
		return nil, PuzzleResult{
			Expr:     res.Display,
			LaTeX:    res.Typeset,
			Level:    int(res.Level),
			Key:      res.Key,
			Attempts: res.Attempts,
		}, nil
	}
}

// Register adds the puzzle tool to server.
func Register(server *mcp.Server, gen Generator) {
	mcp.AddTool(server, PuzzleTool(), PuzzleHandler(gen))
}

// NewServer builds an MCP server with the puzzle tool registered.
func NewServer(gen Generator, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: ServerName, Version: version}, nil)
	Register(server, gen)
	return server
}
