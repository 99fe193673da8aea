// Package builder provides deterministic graph fixtures over core.
//
// Every constructor creates its own graph, numbers nodes in creation order
// (so NodeID i is the i-th node of the documented layout) and emits edges in
// a fixed, documented order. Same parameters always produce an identical
// arena layout, which keeps test oracles and golden outputs stable.
//
// Layout conventions:
//   - Star/Wheel: the center (hub) is node 0.
//   - Grid: row-major, node r*cols+c.
//   - CompleteBipartite: the left part first, then the right part.
//
// Errors:
//
//	ErrTooFewNodes  - a size parameter is below the constructor's minimum.
//	ErrUnknownSolid - Platonic received an out-of-range Solid.
package builder

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lvlplanar/core"
)

// Sentinel errors for fixture construction.
var (
	// ErrTooFewNodes indicates a size parameter below the constructor's minimum.
	ErrTooFewNodes = errors.New("builder: parameter too small")

	// ErrUnknownSolid indicates an out-of-range Solid value.
	ErrUnknownSolid = errors.New("builder: unknown platonic solid")
)

// Minimum sizes per constructor.
const (
	minCycleNodes = 3
	minPathNodes  = 2
	minStarNodes  = 2
	minWheelNodes = 4
	minGridSide   = 1
	minPartSize   = 1
)

// fresh allocates a graph with n nodes and returns both.
func fresh(n, edgeCap int) (*core.Graph, []core.NodeID) {
	g := core.NewGraph(core.WithNodeCapacity(n), core.WithEdgeCapacity(edgeCap))
	ns := make([]core.NodeID, n)
	for i := range ns {
		ns[i] = g.NewNode()
	}
	return g, ns
}

// link adds one edge, wrapping the arena error with the constructor tag.
func link(g *core.Graph, tag string, u, v core.NodeID) error {
	if _, err := g.NewEdge(u, v); err != nil {
		return fmt.Errorf("%s: edge %d-%d: %w", tag, u, v, err)
	}
	return nil
}

// Cycle builds the simple cycle C_n, n >= 3. Edge i joins node i to node
// (i+1) mod n.
func Cycle(n int) (*core.Graph, error) {
	if n < minCycleNodes {
		return nil, fmt.Errorf("Cycle: n=%d: %w", n, ErrTooFewNodes)
	}
	g, ns := fresh(n, n)
	for i := 0; i < n; i++ {
		if err := link(g, "Cycle", ns[i], ns[(i+1)%n]); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Path builds the simple path P_n, n >= 2.
func Path(n int) (*core.Graph, error) {
	if n < minPathNodes {
		return nil, fmt.Errorf("Path: n=%d: %w", n, ErrTooFewNodes)
	}
	g, ns := fresh(n, n-1)
	for i := 0; i+1 < n; i++ {
		if err := link(g, "Path", ns[i], ns[i+1]); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Star builds a star on n nodes, n >= 2: node 0 is the center, nodes 1..n-1
// are leaves.
func Star(n int) (*core.Graph, error) {
	if n < minStarNodes {
		return nil, fmt.Errorf("Star: n=%d: %w", n, ErrTooFewNodes)
	}
	g, ns := fresh(n, n-1)
	for i := 1; i < n; i++ {
		if err := link(g, "Star", ns[0], ns[i]); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Wheel builds the wheel W_n on n nodes, n >= 4: node 0 is the hub, nodes
// 1..n-1 form the rim cycle. Rim edges come first, then the spokes.
func Wheel(n int) (*core.Graph, error) {
	if n < minWheelNodes {
		return nil, fmt.Errorf("Wheel: n=%d: %w", n, ErrTooFewNodes)
	}
	g, ns := fresh(n, 2*(n-1))
	rim := n - 1
	for i := 0; i < rim; i++ {
		if err := link(g, "Wheel", ns[1+i], ns[1+(i+1)%rim]); err != nil {
			return nil, err
		}
	}
	for i := 1; i < n; i++ {
		if err := link(g, "Wheel", ns[0], ns[i]); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Complete builds the complete graph K_n, n >= 1. Edges are emitted in
// lexicographic (u, v) order.
func Complete(n int) (*core.Graph, error) {
	if n < 1 {
		return nil, fmt.Errorf("Complete: n=%d: %w", n, ErrTooFewNodes)
	}
	g, ns := fresh(n, n*(n-1)/2)
	for u := 0; u < n; u++ {
		for v := u + 1; v < n; v++ {
			if err := link(g, "Complete", ns[u], ns[v]); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}

// CompleteBipartite builds K_{n1,n2}, n1, n2 >= 1. Nodes 0..n1-1 form the
// left part, n1..n1+n2-1 the right part.
func CompleteBipartite(n1, n2 int) (*core.Graph, error) {
	if n1 < minPartSize || n2 < minPartSize {
		return nil, fmt.Errorf("CompleteBipartite: %dx%d: %w", n1, n2, ErrTooFewNodes)
	}
	g, ns := fresh(n1+n2, n1*n2)
	for u := 0; u < n1; u++ {
		for v := 0; v < n2; v++ {
			if err := link(g, "CompleteBipartite", ns[u], ns[n1+v]); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}

// Grid builds the rows x cols king-less grid (4-neighborhood), both sides
// >= 1. Node (r, c) is r*cols+c; horizontal edges of a row precede the
// vertical edges below it.
func Grid(rows, cols int) (*core.Graph, error) {
	if rows < minGridSide || cols < minGridSide {
		return nil, fmt.Errorf("Grid: %dx%d: %w", rows, cols, ErrTooFewNodes)
	}
	g, ns := fresh(rows*cols, 2*rows*cols-rows-cols)
	at := func(r, c int) core.NodeID { return ns[r*cols+c] }
	for r := 0; r < rows; r++ {
		for c := 0; c+1 < cols; c++ {
			if err := link(g, "Grid", at(r, c), at(r, c+1)); err != nil {
				return nil, err
			}
		}
		if r+1 < rows {
			for c := 0; c < cols; c++ {
				if err := link(g, "Grid", at(r, c), at(r+1, c)); err != nil {
					return nil, err
				}
			}
		}
	}
	return g, nil
}
