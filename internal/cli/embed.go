package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvlplanar/planarity"
)

// newEmbedCmd creates the embed command: compute a combinatorial embedding
// and print the rotation system, one node per line.
func newEmbedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "embed [file]",
		Short: "Compute a planar embedding and print the rotation system",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			ng, err := readEdgeList(args[0])
			if err != nil {
				return err
			}

			ok, err := planarity.Embed(ng.g)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%s: graph is not planar", args[0])
			}
			logger.Debug("embedding computed", "faces", ng.g.FaceCount())

			for _, v := range ng.g.Nodes() {
				var neigh []string
				for _, a := range ng.g.AdjList(v) {
					neigh = append(neigh, ng.label(ng.g.Opposite(a.Edge(), v)))
				}
				fmt.Printf("%s: %s\n", ng.label(v), strings.Join(neigh, " "))
			}
			fmt.Printf("# faces: %d\n", ng.g.FaceCount())
			return nil
		},
	}
	return cmd
}
