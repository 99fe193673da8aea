// Package core: rotation-system operations and combinatorial-embedding
// checks.
//
// Face tracing follows the usual half-edge convention: the successor of a
// dart a on its face is the rotation successor of Twin(a) at the node a
// points into. The orbits of that successor permutation over all darts are
// exactly the faces induced by the rotation system.

package core

// SetOrder installs the given rotation at v. The slice must be a
// permutation of v's current adjacency entries; otherwise ErrBadOrder is
// returned and the rotation is unchanged.
// Complexity: O(deg(v)).
func (g *Graph) SetOrder(v NodeID, order []AdjID) error {
	if !g.HasNode(v) {
		return ErrNodeNotFound
	}
	if len(order) != g.nodes[v].degree {
		return ErrBadOrder
	}
	if len(order) == 0 {
		return nil
	}

	// 1. Verify the permutation against the current rotation.
	current := make(map[AdjID]bool, len(order))
	for _, a := range g.AdjList(v) {
		current[a] = true
	}
	for _, a := range order {
		if !current[a] {
			return ErrBadOrder
		}
		delete(current, a)
	}

	// 2. Relink.
	n := len(order)
	for i, a := range order {
		g.adj[a].next = order[(i+1)%n]
		g.adj[a].prev = order[(i+n-1)%n]
	}
	g.nodes[v].firstAdj = order[0]
	return nil
}

// ReverseOrder flips v's rotation in place.
// Complexity: O(deg(v)).
func (g *Graph) ReverseOrder(v NodeID) error {
	if !g.HasNode(v) {
		return ErrNodeNotFound
	}
	first := g.nodes[v].firstAdj
	if first == NilAdj {
		return nil
	}
	a := first
	for {
		g.adj[a].next, g.adj[a].prev = g.adj[a].prev, g.adj[a].next
		a = g.adj[a].prev // original next
		if a == first {
			break
		}
	}
	return nil
}

// FaceSucc returns the dart following a on the boundary of a's face.
func (g *Graph) FaceSucc(a AdjID) AdjID {
	return g.adj[a.Twin()].next
}

// Faces traces all faces of the current rotation system and returns them
// as dart cycles. A dart belongs to exactly one face.
// Complexity: O(V + E).
func (g *Graph) Faces() [][]AdjID {
	seen := make([]bool, len(g.adj))
	var faces [][]AdjID
	for i := range g.edges {
		if !g.edges[i].alive {
			continue
		}
		for _, start := range []AdjID{sourceAdj(EdgeID(i)), targetAdj(EdgeID(i))} {
			if seen[start] {
				continue
			}
			var face []AdjID
			for a := start; !seen[a]; a = g.FaceSucc(a) {
				seen[a] = true
				face = append(face, a)
			}
			faces = append(faces, face)
		}
	}
	return faces
}

// FaceCount returns the number of faces traced from the rotation system.
// Complexity: O(V + E).
func (g *Graph) FaceCount() int { return len(g.Faces()) }

// FaceOf returns the dart cycle of the face containing dart a.
// Complexity: O(face length).
func (g *Graph) FaceOf(a AdjID) []AdjID {
	var face []AdjID
	for x := a; ; {
		face = append(face, x)
		x = g.FaceSucc(x)
		if x == a {
			break
		}
	}
	return face
}

// RepresentsCombEmbedding reports whether the rotation system describes a
// planar combinatorial embedding: for every connected component with at
// least one edge, Euler's relation n - m + f = 2 must hold with f counted
// by face tracing restricted to that component.
// Complexity: O(V + E).
func (g *Graph) RepresentsCombEmbedding() bool {
	comp := make([]int, len(g.nodes))
	for i := range comp {
		comp[i] = -1
	}

	// 1. Label connected components with an explicit stack.
	numComp := 0
	var stack []NodeID
	for i := range g.nodes {
		if !g.nodes[i].alive || comp[i] >= 0 {
			continue
		}
		comp[i] = numComp
		stack = append(stack[:0], NodeID(i))
		for len(stack) > 0 {
			v := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, a := range g.AdjList(v) {
				w := g.NodeOf(a.Twin())
				if comp[w] < 0 {
					comp[w] = numComp
					stack = append(stack, w)
				}
			}
		}
		numComp++
	}

	// 2. Per-component node, edge, and face tallies.
	nodesIn := make([]int, numComp)
	edgesIn := make([]int, numComp)
	facesIn := make([]int, numComp)
	for i := range g.nodes {
		if g.nodes[i].alive {
			nodesIn[comp[i]]++
		}
	}
	for i := range g.edges {
		if g.edges[i].alive {
			edgesIn[comp[g.edges[i].src]]++
		}
	}
	for _, face := range g.Faces() {
		facesIn[comp[g.NodeOf(face[0])]]++
	}

	// 3. Euler check per component that carries edges.
	for c := 0; c < numComp; c++ {
		if edgesIn[c] == 0 {
			continue
		}
		if nodesIn[c]-edgesIn[c]+facesIn[c] != 2 {
			return false
		}
	}
	return true
}

// Consistent validates the structural invariants of the arena: twin
// pairing, circular rotation integrity, ownership, and global counts. It
// returns nil when the graph is well formed. Tests of every mutating
// component run this after surgery.
// Complexity: O(V + E).
func (g *Graph) Consistent() error {
	liveNodes, liveEdges, totalDeg := 0, 0, 0
	seen := make([]bool, len(g.adj))

	for i := range g.nodes {
		if !g.nodes[i].alive {
			continue
		}
		liveNodes++
		v := NodeID(i)
		first := g.nodes[i].firstAdj
		if first == NilAdj {
			if g.nodes[i].degree != 0 {
				return ErrBadOrder
			}
			continue
		}
		count := 0
		for a := first; ; {
			if a < 0 || int(a) >= len(g.adj) || !g.edges[a.Edge()].alive {
				return ErrEdgeNotFound
			}
			if g.NodeOf(a) != v || seen[a] {
				return ErrBadOrder
			}
			seen[a] = true
			count++
			if count > g.nodes[i].degree {
				return ErrBadOrder
			}
			next := g.adj[a].next
			if g.adj[next].prev != a {
				return ErrBadOrder
			}
			a = next
			if a == first {
				break
			}
		}
		if count != g.nodes[i].degree {
			return ErrBadOrder
		}
		totalDeg += count
	}

	for i := range g.edges {
		if !g.edges[i].alive {
			continue
		}
		liveEdges++
		e := EdgeID(i)
		if !seen[sourceAdj(e)] || !seen[targetAdj(e)] {
			return ErrEdgeNotFound
		}
		if !g.HasNode(g.edges[i].src) || !g.HasNode(g.edges[i].tgt) {
			return ErrNodeNotFound
		}
	}

	if liveNodes != g.numNodes || liveEdges != g.numEdges || totalDeg != 2*liveEdges {
		return ErrBadOrder
	}
	return nil
}
