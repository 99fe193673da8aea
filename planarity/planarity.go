// Package planarity tests graphs for planarity and computes planar
// combinatorial embeddings.
//
// The test follows the vertex-addition method of Lempel, Even and
// Cederbaum realized with PQ-trees: edges of an st-numbered
// biconnected component are swept as PQ-tree leaves, and a failing
// reduction is exactly a non-planarity witness. Embedding extraction
// threads direction indicators through the sweep, settles
// adjacency-list reversals bottom-up, and completes the upward
// embedding into a full rotation system by a traversal from the
// highest-numbered node.
//
// Graphs are handled component by component: self-loops and bridges
// are embedded trivially, biconnected components independently, and
// the per-component rotations are concatenated at cut vertices.
package planarity

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lvlplanar/bicon"
	"github.com/katalvlaran/lvlplanar/core"
)

// ErrNilGraph is returned when the input graph is nil.
var ErrNilGraph = errors.New("planarity: nil graph")

// IsPlanar reports whether g admits a planar embedding. The graph is
// not modified.
//
// Complexity: O(V * E) with the per-step PQ-tree sweep used here.
// Errors: ErrNilGraph.
func IsPlanar(g *core.Graph) (bool, error) {
	return run(g, false)
}

// Embed rearranges the adjacency lists of g into a planar rotation
// system and returns true, or returns false leaving g untouched when
// no planar embedding exists. A graph whose rotation system already
// represents an embedding is left as is.
//
// Complexity: O(V * E).
// Errors: ErrNilGraph.
func Embed(g *core.Graph) (bool, error) {
	return run(g, true)
}

func run(g *core.Graph, apply bool) (bool, error) {
	if g == nil {
		return false, ErrNilGraph
	}
	if g.NumEdges() == 0 {
		return true, nil
	}
	if g.RepresentsCombEmbedding() {
		return true, nil
	}

	// Per-node dart order assembled from component contributions.
	order := core.NewNodeArray[[]core.AdjID](g, nil)

	comps, _ := bicon.BiconnectedComponents(g)
	for _, comp := range comps {
		if len(comp.Edges) == 1 {
			e := comp.Edges[0]
			if g.IsLoop(e) {
				continue // loops are spliced in afterwards
			}
			s, t := g.Source(e), g.Target(e)
			order.Set(s, append(order.Get(s), g.AdjSource(e)))
			order.Set(t, append(order.Get(t), g.AdjTarget(e)))
			continue
		}

		h, origNode, origEdge := buildSub(g, comp)
		rot, ok, err := embedComponent(h)
		if err != nil {
			return false, fmt.Errorf("planarity: component sweep: %w", err)
		}
		if !ok {
			return false, nil
		}
		for _, sv := range h.Nodes() {
			ov := origNode[sv]
			lst := order.Get(ov)
			for _, d := range rot.Get(sv) {
				e := origEdge[d.Edge()]
				if d == h.AdjSource(d.Edge()) {
					lst = append(lst, g.AdjSource(e))
				} else {
					lst = append(lst, g.AdjTarget(e))
				}
			}
			order.Set(ov, lst)
		}
	}

	// Self-loops: both darts side by side bound a face of their own.
	for _, e := range g.Edges() {
		if g.IsLoop(e) {
			v := g.Source(e)
			a := g.AdjSource(e)
			order.Set(v, append(order.Get(v), a, a.Twin()))
		}
	}

	if !apply {
		return true, nil
	}
	for _, v := range g.Nodes() {
		if g.Degree(v) == 0 {
			continue
		}
		if err := g.SetOrder(v, order.Get(v)); err != nil {
			return false, fmt.Errorf("planarity: apply rotation: %w", err)
		}
	}
	return true, nil
}

// buildSub copies one biconnected component into a fresh graph,
// preserving edge orientation and insertion order. The returned maps
// translate sub ids back to the originals.
func buildSub(g *core.Graph, comp bicon.Component) (*core.Graph, map[core.NodeID]core.NodeID, map[core.EdgeID]core.EdgeID) {
	h := core.NewGraph(core.WithNodeCapacity(len(comp.Nodes)), core.WithEdgeCapacity(len(comp.Edges)))
	toSub := make(map[core.NodeID]core.NodeID, len(comp.Nodes))
	origNode := make(map[core.NodeID]core.NodeID, len(comp.Nodes))
	origEdge := make(map[core.EdgeID]core.EdgeID, len(comp.Edges))
	for _, v := range comp.Nodes {
		sv := h.NewNode()
		toSub[v] = sv
		origNode[sv] = v
	}
	for _, e := range comp.Edges {
		se, _ := h.NewEdge(toSub[g.Source(e)], toSub[g.Target(e)])
		origEdge[se] = e
	}
	return h, origNode, origEdge
}
