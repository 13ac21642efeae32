package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/njchilds90/trickone/internal/mcptool"
	"github.com/spf13/cobra"
)

func newMCPCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the generate_puzzle tool over MCP stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gen, err := a.newGenerator()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			// stdout belongs to the protocol; logs go to stderr.
			a.logger.Info("mcp server starting", "tool", mcptool.ToolName)
			return mcptool.NewServer(gen, version).Run(ctx, &mcp.StdioTransport{})
		},
	}
}
