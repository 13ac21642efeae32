package main

import (
	"encoding/json"
	"fmt"

	"github.com/njchilds90/trickone/generator"
	"github.com/spf13/cobra"
)

type generateFlags struct {
	level int
	count int
	json  bool
	latex bool
}

type generateLine struct {
	Expr     string `json:"expr"`
	LaTeX    string `json:"latex"`
	Level    int    `json:"level"`
	Key      string `json:"key"`
	Attempts int    `json:"attempts"`
}

func newGenerateCmd(a *app) *cobra.Command {
	var f generateFlags
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Print freshly generated expressions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			level, err := generator.ParseLevel(f.level)
			if err != nil {
				return err
			}
			if f.count <= 0 {
				return fmt.Errorf("--count must be positive, got %d", f.count)
			}
			gen, err := a.newGenerator()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			enc := json.NewEncoder(out)
			for i := 0; i < f.count; i++ {
				res, err := gen.GenerateResult(cmd.Context(), level)
				if err != nil {
					return err
				}
				switch {
				case f.json:
					if err := enc.Encode(generateLine{
						Expr:     res.Display,
						LaTeX:    res.Typeset,
						Level:    int(res.Level),
						Key:      res.Key,
						Attempts: res.Attempts,
					}); err != nil {
						return err
					}
				case f.latex:
					fmt.Fprintln(out, res.Typeset)
				default:
					fmt.Fprintln(out, res.Display)
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&f.level, "level", "l", int(generator.Elementary),
		"Difficulty level: 1 elementary, 2 polynomial, 3 recursive")
	cmd.Flags().IntVarP(&f.count, "count", "n", 1, "Number of expressions to print")
	cmd.Flags().BoolVar(&f.json, "json", false, "Print one JSON object per line")
	cmd.Flags().BoolVar(&f.latex, "latex", false, "Print LaTeX instead of plain text")
	return cmd
}
