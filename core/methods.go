// Package core: arena-backed Graph mutation and query methods.
//
// This file implements O(1) node/edge insertion and deletion and the
// split/unsplit pair used by the embedding algorithms to subdivide edges
// and undo subdivisions. All rotation surgery happens through the circular
// next/prev links of adjacency entries, so positions of untouched entries
// are preserved exactly.

package core

// NewNode inserts a fresh isolated node and returns its identity.
// Complexity: O(1) amortized.
func (g *Graph) NewNode() NodeID {
	if n := len(g.freeNodes); n > 0 {
		v := g.freeNodes[n-1]
		g.freeNodes = g.freeNodes[:n-1]
		g.nodes[v] = nodeRec{firstAdj: NilAdj, alive: true}
		g.numNodes++
		return v
	}
	g.nodes = append(g.nodes, nodeRec{firstAdj: NilAdj, alive: true})
	g.numNodes++
	return NodeID(len(g.nodes) - 1)
}

// HasNode reports whether v is a live node of g.
// Complexity: O(1).
func (g *Graph) HasNode(v NodeID) bool {
	return v >= 0 && int(v) < len(g.nodes) && g.nodes[v].alive
}

// HasEdge reports whether e is a live edge of g.
// Complexity: O(1).
func (g *Graph) HasEdge(e EdgeID) bool {
	return e >= 0 && int(e) < len(g.edges) && g.edges[e].alive
}

// NewEdge inserts an edge between u and v and returns its identity.
// Both adjacency entries are appended at the end of their owners'
// rotations (immediately before FirstAdj). Self-loops and parallel edges
// are always allowed.
// Returns ErrNodeNotFound if either endpoint is not a live node.
// Complexity: O(1) amortized.
func (g *Graph) NewEdge(u, v NodeID) (EdgeID, error) {
	if !g.HasNode(u) || !g.HasNode(v) {
		return NilEdge, ErrNodeNotFound
	}

	// Reuse a retired edge slot when possible; its two adjacency slots
	// already exist in the adj arena.
	var e EdgeID
	if n := len(g.freeEdges); n > 0 {
		e = g.freeEdges[n-1]
		g.freeEdges = g.freeEdges[:n-1]
		g.edges[e] = edgeRec{src: u, tgt: v, alive: true}
	} else {
		g.edges = append(g.edges, edgeRec{src: u, tgt: v, alive: true})
		g.adj = append(g.adj, adjRec{next: NilAdj, prev: NilAdj}, adjRec{next: NilAdj, prev: NilAdj})
		e = EdgeID(len(g.edges) - 1)
	}

	g.appendAdj(u, sourceAdj(e))
	g.appendAdj(v, targetAdj(e))
	g.numEdges++
	return e, nil
}

// DeleteEdge removes edge e, unlinking both adjacency entries from their
// owners' rotations. Returns ErrEdgeNotFound for a dead or unknown edge.
// Complexity: O(1).
func (g *Graph) DeleteEdge(e EdgeID) error {
	if !g.HasEdge(e) {
		return ErrEdgeNotFound
	}
	rec := g.edges[e]
	g.unlinkAdj(rec.src, sourceAdj(e))
	g.unlinkAdj(rec.tgt, targetAdj(e))
	g.edges[e].alive = false
	g.freeEdges = append(g.freeEdges, e)
	g.numEdges--
	return nil
}

// DeleteNode removes node v together with every incident edge.
// Complexity: O(deg(v)).
func (g *Graph) DeleteNode(v NodeID) error {
	if !g.HasNode(v) {
		return ErrNodeNotFound
	}
	// Collect incident edges first; a self-loop contributes two entries but
	// must be deleted once.
	for g.nodes[v].firstAdj != NilAdj {
		if err := g.DeleteEdge(g.nodes[v].firstAdj.Edge()); err != nil {
			return err
		}
	}
	g.nodes[v].alive = false
	g.freeNodes = append(g.freeNodes, v)
	g.numNodes--
	return nil
}

// SplitEdge subdivides e through a fresh node w: the original edge keeps
// its source and ends at w, a new edge runs from w to the original target
// and takes over the original entry's exact position in the target's
// rotation. Returns (w, the new edge).
// Complexity: O(1).
func (g *Graph) SplitEdge(e EdgeID) (NodeID, EdgeID, error) {
	if !g.HasEdge(e) {
		return NilNode, NilEdge, ErrEdgeNotFound
	}
	v := g.edges[e].tgt
	w := g.NewNode()

	// Allocate e2 = w→v without touching rotations yet.
	var e2 EdgeID
	if n := len(g.freeEdges); n > 0 {
		e2 = g.freeEdges[n-1]
		g.freeEdges = g.freeEdges[:n-1]
		g.edges[e2] = edgeRec{src: w, tgt: v, alive: true}
	} else {
		g.edges = append(g.edges, edgeRec{src: w, tgt: v, alive: true})
		g.adj = append(g.adj, adjRec{next: NilAdj, prev: NilAdj}, adjRec{next: NilAdj, prev: NilAdj})
		e2 = EdgeID(len(g.edges) - 1)
	}
	g.numEdges++

	// e2's target half replaces e's target half in v's rotation, in place.
	g.replaceAdj(v, targetAdj(e), targetAdj(e2))

	// e now ends at w; w's rotation is (e's target half, e2's source half).
	g.edges[e].tgt = w
	a, b := targetAdj(e), sourceAdj(e2)
	g.adj[a] = adjRec{next: b, prev: b}
	g.adj[b] = adjRec{next: a, prev: a}
	g.nodes[w].firstAdj = a
	g.nodes[w].degree = 2

	return w, e2, nil
}

// Unsplit merges the two edges meeting at subdivision node w back into a
// single edge and deletes w. The surviving edge is the one owning w's
// FirstAdj entry; it takes over the other edge's exact rotation position
// at the far endpoint. Returns the surviving edge.
// Returns ErrNotSplittable unless w has exactly two distinct non-loop
// incident edges.
// Complexity: O(1).
func (g *Graph) Unsplit(w NodeID) (EdgeID, error) {
	if !g.HasNode(w) {
		return NilEdge, ErrNodeNotFound
	}
	if g.nodes[w].degree != 2 {
		return NilEdge, ErrNotSplittable
	}
	a1 := g.nodes[w].firstAdj
	a2 := g.adj[a1].next
	e1, e2 := a1.Edge(), a2.Edge()
	if e1 == e2 {
		return NilEdge, ErrNotSplittable // a self-loop at w, not a subdivision
	}

	y := g.NodeOf(a2.Twin()) // far endpoint of the edge being absorbed

	// Rewire e1's w-end to y, occupying e2's slot in y's rotation.
	g.replaceAdj(y, a2.Twin(), a1)
	if a1.isSource() {
		g.edges[e1].src = y
	} else {
		g.edges[e1].tgt = y
	}

	// Retire e2 and w directly; their rotation links are now bypassed.
	g.edges[e2].alive = false
	g.freeEdges = append(g.freeEdges, e2)
	g.numEdges--
	g.nodes[w].alive = false
	g.nodes[w].firstAdj = NilAdj
	g.nodes[w].degree = 0
	g.freeNodes = append(g.freeNodes, w)
	g.numNodes--

	return e1, nil
}

// Source returns the nominal source endpoint of e.
func (g *Graph) Source(e EdgeID) NodeID { return g.edges[e].src }

// Target returns the nominal target endpoint of e.
func (g *Graph) Target(e EdgeID) NodeID { return g.edges[e].tgt }

// Ends returns both endpoints of e in source, target order.
func (g *Graph) Ends(e EdgeID) (NodeID, NodeID) { return g.edges[e].src, g.edges[e].tgt }

// Opposite returns the endpoint of e that is not v. For a self-loop it
// returns v itself.
func (g *Graph) Opposite(e EdgeID, v NodeID) NodeID {
	if g.edges[e].src == v {
		return g.edges[e].tgt
	}
	return g.edges[e].src
}

// IsLoop reports whether e is a self-loop.
func (g *Graph) IsLoop(e EdgeID) bool { return g.edges[e].src == g.edges[e].tgt }

// AdjSource returns the adjacency entry of e at its source endpoint.
func (g *Graph) AdjSource(e EdgeID) AdjID { return sourceAdj(e) }

// AdjTarget returns the adjacency entry of e at its target endpoint.
func (g *Graph) AdjTarget(e EdgeID) AdjID { return targetAdj(e) }

// AdjAt returns the adjacency entry of e owned by v. For a self-loop the
// source half is returned. NilAdj if v is not an endpoint of e.
func (g *Graph) AdjAt(e EdgeID, v NodeID) AdjID {
	switch v {
	case g.edges[e].src:
		return sourceAdj(e)
	case g.edges[e].tgt:
		return targetAdj(e)
	}
	return NilAdj
}

// NodeOf returns the node owning adjacency entry a.
func (g *Graph) NodeOf(a AdjID) NodeID {
	if a.isSource() {
		return g.edges[a.Edge()].src
	}
	return g.edges[a.Edge()].tgt
}

// Degree returns the number of adjacency entries at v (loops count twice).
func (g *Graph) Degree(v NodeID) int { return g.nodes[v].degree }

// NumNodes returns the number of live nodes.
func (g *Graph) NumNodes() int { return g.numNodes }

// NumEdges returns the number of live edges.
func (g *Graph) NumEdges() int { return g.numEdges }

// NodeCap returns an exclusive upper bound on live NodeIDs, suitable for
// sizing plain slices keyed by NodeID.
func (g *Graph) NodeCap() int { return len(g.nodes) }

// EdgeCap returns an exclusive upper bound on live EdgeIDs.
func (g *Graph) EdgeCap() int { return len(g.edges) }

// AdjCap returns an exclusive upper bound on live AdjIDs.
func (g *Graph) AdjCap() int { return len(g.adj) }

// Nodes returns all live node identities in ascending order.
// Complexity: O(NodeCap).
func (g *Graph) Nodes() []NodeID {
	out := make([]NodeID, 0, g.numNodes)
	for i := range g.nodes {
		if g.nodes[i].alive {
			out = append(out, NodeID(i))
		}
	}
	return out
}

// Edges returns all live edge identities in ascending order.
// Complexity: O(EdgeCap).
func (g *Graph) Edges() []EdgeID {
	out := make([]EdgeID, 0, g.numEdges)
	for i := range g.edges {
		if g.edges[i].alive {
			out = append(out, EdgeID(i))
		}
	}
	return out
}

// FirstAdj returns the entry point of v's rotation, NilAdj if v is
// isolated.
func (g *Graph) FirstAdj(v NodeID) AdjID { return g.nodes[v].firstAdj }

// NextAdj returns the cyclic successor of a within its owner's rotation.
func (g *Graph) NextAdj(a AdjID) AdjID { return g.adj[a].next }

// PrevAdj returns the cyclic predecessor of a within its owner's rotation.
func (g *Graph) PrevAdj(a AdjID) AdjID { return g.adj[a].prev }

// AdjList returns a snapshot of v's rotation starting at FirstAdj.
// Complexity: O(deg(v)).
func (g *Graph) AdjList(v NodeID) []AdjID {
	out := make([]AdjID, 0, g.nodes[v].degree)
	first := g.nodes[v].firstAdj
	if first == NilAdj {
		return out
	}
	for a := first; ; {
		out = append(out, a)
		a = g.adj[a].next
		if a == first {
			break
		}
	}
	return out
}

// appendAdj links entry a at the end of v's rotation.
func (g *Graph) appendAdj(v NodeID, a AdjID) {
	first := g.nodes[v].firstAdj
	if first == NilAdj {
		g.adj[a] = adjRec{next: a, prev: a}
		g.nodes[v].firstAdj = a
	} else {
		last := g.adj[first].prev
		g.adj[a] = adjRec{next: first, prev: last}
		g.adj[last].next = a
		g.adj[first].prev = a
	}
	g.nodes[v].degree++
}

// unlinkAdj removes entry a from v's rotation.
func (g *Graph) unlinkAdj(v NodeID, a AdjID) {
	if g.nodes[v].degree == 1 {
		g.nodes[v].firstAdj = NilAdj
	} else {
		p, n := g.adj[a].prev, g.adj[a].next
		g.adj[p].next = n
		g.adj[n].prev = p
		if g.nodes[v].firstAdj == a {
			g.nodes[v].firstAdj = n
		}
	}
	g.adj[a] = adjRec{next: NilAdj, prev: NilAdj}
	g.nodes[v].degree--
}

// replaceAdj substitutes entry repl for entry old at the same position of
// v's rotation. Degree is unchanged.
func (g *Graph) replaceAdj(v NodeID, old, repl AdjID) {
	if g.nodes[v].degree == 1 && g.nodes[v].firstAdj == old {
		g.adj[repl] = adjRec{next: repl, prev: repl}
		g.nodes[v].firstAdj = repl
		g.adj[old] = adjRec{next: NilAdj, prev: NilAdj}
		return
	}
	p, n := g.adj[old].prev, g.adj[old].next
	g.adj[repl] = adjRec{next: n, prev: p}
	g.adj[p].next = repl
	g.adj[n].prev = repl
	if g.nodes[v].firstAdj == old {
		g.nodes[v].firstAdj = repl
	}
	g.adj[old] = adjRec{next: NilAdj, prev: NilAdj}
}
