package main

import (
	"fmt"
	"io"
	"os"

	"github.com/njchilds90/trickone/symbolic"
	"github.com/spf13/cobra"
)

func newVerifyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "verify [FILE]",
		Short: "Check that a JSON expression tree simplifies to exactly 1",
		Long: `Reads an expression tree in the JSON form served by POST /generate
("tree" field) from FILE, or from stdin when FILE is omitted or "-".
Exits non-zero when the expression does not simplify to 1.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			raw, err := io.ReadAll(io.LimitReader(in, 1<<20))
			if err != nil {
				return fmt.Errorf("read tree: %w", err)
			}

			expr, err := symbolic.ParseJSON(string(raw))
			if err != nil {
				return err
			}
			simplified, err := symbolic.Simplify(expr)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, expr.String())
			fmt.Fprintln(out, "=", simplified.String())
			if !symbolic.IsZero(symbolic.AddOf(simplified, symbolic.N(-1))) {
				return fmt.Errorf("expression simplifies to %s, not 1", simplified)
			}
			a.logger.Debug("verified", "key", symbolic.Srepr(expr))
			return nil
		},
	}
}
