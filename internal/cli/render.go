package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"
)

// newRenderCmd creates the render command: DOT output, or SVG through the
// embedded Graphviz engine.
func newRenderCmd() *cobra.Command {
	var (
		output string
		format string
	)

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a graph to DOT or SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			cfg := configFromContext(ctx)

			if format == "" {
				format = cfg.Format
			}
			if format != formatDOT && format != formatSVG {
				return fmt.Errorf("unknown format %q (want %s or %s)", format, formatDOT, formatSVG)
			}

			ng, err := readEdgeList(args[0])
			if err != nil {
				return err
			}
			dot := toDOT(ng)

			var out []byte
			switch format {
			case formatDOT:
				out = []byte(dot)
			case formatSVG:
				if out, err = renderSVG(ctx, dot); err != nil {
					return err
				}
			}

			if output == "" {
				_, err = os.Stdout.Write(out)
				return err
			}
			if err := os.WriteFile(output, out, 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			logger.Info("rendered", "file", output, "format", format)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: dot (default) or svg")

	return cmd
}
