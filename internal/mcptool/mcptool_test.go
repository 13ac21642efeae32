package mcptool

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/njchilds90/trickone/generator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type exhaustedGenerator struct{}

func (exhaustedGenerator) GenerateResult(_ context.Context, level generator.Level) (generator.Result, error) {
	return generator.Result{}, &generator.ExhaustedError{Level: level, Attempts: generator.MaxAttempts}
}

func connect(t *testing.T, gen Generator) *mcp.ClientSession {
	t.Helper()
	ctx := t.Context()

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serverSession, err := NewServer(gen, "test").Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = serverSession.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func decode(t *testing.T, res *mcp.CallToolResult) PuzzleResult {
	t.Helper()
	raw, err := json.Marshal(res.StructuredContent)
	require.NoError(t, err)
	var out PuzzleResult
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestListTools(t *testing.T) {
	gen, err := generator.New(generator.WithTerms(generator.NewTermsFromSeed(1)))
	require.NoError(t, err)
	session := connect(t, gen)

	tools, err := session.ListTools(t.Context(), nil)
	require.NoError(t, err)
	require.Len(t, tools.Tools, 1)
	assert.Equal(t, ToolName, tools.Tools[0].Name)
}

func TestGeneratePuzzle(t *testing.T) {
	gen, err := generator.New(
		generator.WithTerms(generator.NewTermsFromSeed(2)),
		generator.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	require.NoError(t, err)
	session := connect(t, gen)

	seen := map[string]bool{}
	for _, level := range []int{1, 2, 3} {
		res, err := session.CallTool(t.Context(), &mcp.CallToolParams{
			Name:      ToolName,
			Arguments: map[string]any{"level": level},
		})
		require.NoError(t, err)
		require.False(t, res.IsError, "level %d", level)

		out := decode(t, res)
		assert.Equal(t, level, out.Level)
		assert.NotEmpty(t, out.Expr)
		assert.NotEmpty(t, out.LaTeX)
		assert.False(t, seen[out.Key], "duplicate key %s", out.Key)
		seen[out.Key] = true
	}
}

func TestGeneratePuzzle_Errors(t *testing.T) {
	tests := []struct {
		name  string
		gen   Generator
		level int
	}{
		{name: "invalid level", gen: exhaustedGenerator{}, level: 7},
		{name: "exhausted", gen: exhaustedGenerator{}, level: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := connect(t, tt.gen)
			res, err := session.CallTool(t.Context(), &mcp.CallToolParams{
				Name:      ToolName,
				Arguments: map[string]any{"level": tt.level},
			})
			require.NoError(t, err)
			assert.True(t, res.IsError)
		})
	}
}

func TestPuzzleHandler_Direct(t *testing.T) {
	_, _, err := PuzzleHandler(exhaustedGenerator{})(context.Background(), nil, PuzzleInput{Level: 2})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "try again")
}
