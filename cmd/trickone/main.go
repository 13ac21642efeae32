// Command trickone generates disguised expressions that simplify to 1.
//
// Usage:
//
//	trickone serve                      HTTP API (POST /generate, GET /health, GET /metrics)
//	trickone mcp                        MCP server over stdio
//	trickone generate --level 2 -n 5    print expressions to stdout
//	trickone verify tree.json           check a JSON tree simplifies to 1
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/njchilds90/trickone/generator"
	"github.com/njchilds90/trickone/internal/config"
	"github.com/njchilds90/trickone/internal/telemetry"
	"github.com/spf13/cobra"
)

var version = "dev"

// app carries what PersistentPreRunE resolves for the subcommands.
type app struct {
	configPath string
	envFile    string

	cfg      config.Config
	logger   *slog.Logger
	shutdown func(context.Context) error
}

func main() {
	a := &app{}
	err := newRootCmd(a).Execute()
	a.close()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "trickone",
		Short:         "Generate expressions that are secretly equal to 1",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.configPath, a.envFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = cfg.NewLogger(cmd.ErrOrStderr())

			shutdown, err := telemetry.Setup(cmd.Context(), cfg.OTelEndpoint, version)
			if err != nil {
				return fmt.Errorf("setup tracing: %w", err)
			}
			a.shutdown = shutdown
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "",
		"Path to a YAML config file")
	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env",
		"Path to a dotenv file (ignored if missing)")

	root.AddCommand(newServeCmd(a), newMCPCmd(a), newGenerateCmd(a), newVerifyCmd(a))
	return root
}

// close flushes pending spans. Safe to call when setup never ran.
func (a *app) close() {
	if a.shutdown == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.shutdown(ctx); err != nil && a.logger != nil {
		a.logger.Warn("flush traces", slog.String("error", err.Error()))
	}
	a.shutdown = nil
}

func (a *app) newGenerator() (*generator.Generator, error) {
	return generator.New(
		generator.WithCoefficientRange(a.cfg.CoefficientRange()),
		generator.WithLogger(a.logger),
	)
}
