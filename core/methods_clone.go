// Package core: graph copying.
//
// Because all state lives in flat arenas, a copy is three slice clones;
// identities carry over unchanged, so auxiliary arrays built against the
// original remain meaningful against the copy. The embedding pipeline
// leans on this: it mutates a disposable copy and maps results back by
// identity.

package core

// Copy returns a deep copy of g. Node, edge, and adjacency identities are
// identical in the copy, including retired slots.
// Complexity: O(V + E).
func (g *Graph) Copy() *Graph {
	c := &Graph{
		nodes:     append([]nodeRec(nil), g.nodes...),
		edges:     append([]edgeRec(nil), g.edges...),
		adj:       append([]adjRec(nil), g.adj...),
		freeNodes: append([]NodeID(nil), g.freeNodes...),
		freeEdges: append([]EdgeID(nil), g.freeEdges...),
		numNodes:  g.numNodes,
		numEdges:  g.numEdges,
	}
	return c
}
