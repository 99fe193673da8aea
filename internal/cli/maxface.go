package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvlplanar/core"
	"github.com/katalvlaran/lvlplanar/maxface"
)

// newMaxfaceCmd creates the maxface command: embed a biconnected planar
// graph so that one face, optionally one incident to --anchor, has maximum
// size, then print that face's walk.
func newMaxfaceCmd() *cobra.Command {
	var anchor string

	cmd := &cobra.Command{
		Use:   "maxface [file]",
		Short: "Embed maximizing the size of one face",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			ng, err := readEdgeList(args[0])
			if err != nil {
				return err
			}

			var (
				ext  core.AdjID
				size int
			)
			if anchor == "" {
				ext, size, err = maxface.Embed(ng.g, nil, nil)
			} else {
				v, ok := ng.ids[anchor]
				if !ok {
					return fmt.Errorf("anchor %q: no such node", anchor)
				}
				ext, size, err = maxface.EmbedAt(ng.g, v, nil, nil)
			}
			if err != nil {
				return err
			}
			logger.Debug("embedding computed", "faces", ng.g.FaceCount())

			fmt.Printf("size: %d\n", size)
			fmt.Printf("walk: %s\n", strings.Join(faceWalk(ng, ext), " "))
			return nil
		},
	}

	cmd.Flags().StringVar(&anchor, "anchor", "", "maximize over faces incident to this node")

	return cmd
}

// faceWalk lists the node labels along the face of dart ext.
func faceWalk(ng *namedGraph, ext core.AdjID) []string {
	var out []string
	a := ext
	for {
		out = append(out, ng.label(ng.g.NodeOf(a)))
		a = ng.g.FaceSucc(a)
		if a == ext {
			return out
		}
	}
}
