package cli

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
)

// toDOT converts an edge-list graph to Graphviz DOT. Node statements follow
// creation order and edge statements follow edge-id order, so output is
// stable for a given input file.
func toDOT(ng *namedGraph) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  node [shape=circle, fontsize=12];\n")
	buf.WriteString("\n")

	for _, v := range ng.g.Nodes() {
		fmt.Fprintf(&buf, "  %q;\n", ng.label(v))
	}
	buf.WriteString("\n")
	for _, e := range ng.g.Edges() {
		u, v := ng.g.Ends(e)
		fmt.Fprintf(&buf, "  %q -- %q;\n", ng.label(u), ng.label(v))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// renderSVG renders a DOT graph to SVG using the embedded Graphviz engine.
func renderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
