package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvlplanar/core"
	"github.com/katalvlaran/lvlplanar/kuratowski"
	"github.com/katalvlaran/lvlplanar/planarity"
)

// newCheckCmd creates the check command: planarity verdict plus Kuratowski
// certificate edges for nonplanar inputs.
func newCheckCmd() *cobra.Command {
	var (
		limit       int
		bundles     bool
		certificate bool
	)

	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Test a graph for planarity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			cfg := configFromContext(ctx)

			ng, err := readEdgeList(args[0])
			if err != nil {
				return err
			}
			logger.Debug("graph loaded", "nodes", ng.g.NumNodes(), "edges", ng.g.NumEdges())

			planar, err := planarity.IsPlanar(ng.g)
			if err != nil {
				return err
			}
			if planar {
				fmt.Println("planar")
				return nil
			}
			fmt.Println("nonplanar")
			if !certificate {
				return nil
			}

			if !cmd.Flags().Changed("limit") {
				limit = cfg.Certificate.Limit
			}
			if !cmd.Flags().Changed("bundles") {
				bundles = cfg.Certificate.Bundles
			}
			var opts []kuratowski.Option
			if limit != 0 {
				opts = append(opts, kuratowski.WithLimit(limit))
			} else if bundles {
				opts = append(opts, kuratowski.WithBundles())
			}

			wrappers, err := kuratowski.Extract(ng.g, opts...)
			if err != nil {
				return err
			}
			logger.Debug("certificates extracted", "count", len(wrappers))
			for i, w := range wrappers {
				fmt.Printf("certificate %d: %s (%d edges)\n", i+1, w.Type, len(w.Edges))
				printEdges(ng, w.Edges)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&certificate, "certificate", true, "extract Kuratowski subdivisions on failure")
	cmd.Flags().IntVar(&limit, "limit", 0, "max subdivisions to report (0: one per obstruction, <0: all)")
	cmd.Flags().BoolVar(&bundles, "bundles", false, "search rerouted subdivisions per obstruction")

	return cmd
}

func printEdges(ng *namedGraph, edges []core.EdgeID) {
	for _, e := range edges {
		u, v := ng.g.Ends(e)
		fmt.Fprintf(os.Stdout, "  %s %s\n", ng.label(u), ng.label(v))
	}
}
