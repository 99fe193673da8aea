package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/katalvlaran/lvlplanar/core"
)

// namedGraph couples an arena graph with the string labels of its edge-list
// source. Nodes are created in first-appearance order, so labels index
// densely by NodeID.
type namedGraph struct {
	g      *core.Graph
	labels []string
	ids    map[string]core.NodeID
}

func (n *namedGraph) label(v core.NodeID) string { return n.labels[v] }

// readEdgeList parses a plain edge-list file: one "u v" pair per whitespace,
// blank lines and '#' comments ignored. A line with a single token declares
// an isolated node.
func readEdgeList(path string) (*namedGraph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open graph: %w", err)
	}
	defer f.Close()

	ng := &namedGraph{
		g:   core.NewGraph(),
		ids: make(map[string]core.NodeID),
	}
	node := func(label string) core.NodeID {
		if v, ok := ng.ids[label]; ok {
			return v
		}
		v := ng.g.NewNode()
		ng.ids[label] = v
		ng.labels = append(ng.labels, label)
		return v
	}

	sc := bufio.NewScanner(f)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		switch len(fields) {
		case 0:
			continue
		case 1:
			node(fields[0])
		case 2:
			u, v := node(fields[0]), node(fields[1])
			if _, err := ng.g.NewEdge(u, v); err != nil {
				return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
			}
		default:
			return nil, fmt.Errorf("%s:%d: expected 'u v', got %d fields", path, lineNo, len(fields))
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read graph: %w", err)
	}
	if ng.g.NumNodes() == 0 {
		return nil, fmt.Errorf("%s: empty graph", path)
	}
	return ng, nil
}
