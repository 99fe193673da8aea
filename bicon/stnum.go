// Package bicon: Even-Tarjan st-numbering.
//
// Given a biconnected graph and an edge (s,t), the nodes are numbered
// 1..n so that s gets 1, t gets n, and every other node has both a
// lower-numbered and a higher-numbered neighbor. The construction is the
// classical pathfinder: a DFS records discovery numbers, parents, and
// lowpoints; a second pass grows paths of unused edges and interleaves
// them on an explicit stack. All tie-breaks follow adjacency order, so
// the numbering is deterministic for a given graph.

package bicon

import "github.com/katalvlaran/lvlplanar/core"

// stState carries the per-call state of one numbering run.
type stState struct {
	g      *core.Graph
	dfn    *core.NodeArray[int]
	low    *core.NodeArray[int]
	parent *core.NodeArray[core.NodeID]
	pedge  *core.NodeArray[core.EdgeID] // tree edge to parent
	lowE   *core.NodeArray[core.EdgeID] // edge realizing low[v]

	oldNode *core.NodeArray[bool]
	oldEdge *core.EdgeArray[bool]

	treeFrom [][]core.EdgeID // per node: tree edges to children, adjacency order
	backFrom [][]core.EdgeID // per node: back edges to ancestors
	backInto [][]core.EdgeID // per node: back edges from descendants
}

// STNumbering numbers the nodes of g from Source(ref)=1 to Target(ref)=n.
// Returns ErrNotBiconnected when g admits no such numbering.
// Complexity: O(V + E).
func STNumbering(g *core.Graph, ref core.EdgeID) (*core.NodeArray[int], error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if !g.HasEdge(ref) {
		return nil, ErrEdgeNotFound
	}
	s, t := g.Source(ref), g.Target(ref)
	if s == t || g.NumNodes() < 2 {
		return nil, ErrNotBiconnected
	}

	st := &stState{
		g:        g,
		dfn:      core.NewNodeArray(g, -1),
		low:      core.NewNodeArray(g, -1),
		parent:   core.NewNodeArray(g, core.NilNode),
		pedge:    core.NewNodeArray(g, core.NilEdge),
		lowE:     core.NewNodeArray(g, core.NilEdge),
		oldNode:  core.NewNodeArray(g, false),
		oldEdge:  core.NewEdgeArray(g, false),
		treeFrom: make([][]core.EdgeID, g.NodeCap()),
		backFrom: make([][]core.EdgeID, g.NodeCap()),
		backInto: make([][]core.EdgeID, g.NodeCap()),
	}

	if !st.dfs(s, t, ref) {
		return nil, ErrNotBiconnected
	}

	// Pathfinder numbering. s and t start old, as does the reference edge.
	st.oldNode.Set(s, true)
	st.oldNode.Set(t, true)
	st.oldEdge.Set(ref, true)

	number := core.NewNodeArray(g, 0)
	stack := []core.NodeID{t, s}
	next := 0
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		path := st.findPath(v)
		if len(path) == 0 {
			next++
			number.Set(v, next)
			continue
		}
		// Re-stack the path minus its old endpoint so v surfaces first
		// again: push path[k-1], ..., path[1], path[0].
		for i := len(path) - 2; i >= 0; i-- {
			stack = append(stack, path[i])
		}
	}

	if next != g.NumNodes() {
		return nil, ErrNotBiconnected
	}
	// A valid numbering gives every middle node both a lower and a higher
	// neighbor; anything else means the input was not biconnected.
	for _, v := range g.Nodes() {
		if v == s || v == t {
			continue
		}
		lower, higher := false, false
		for _, a := range g.AdjList(v) {
			w := g.NodeOf(a.Twin())
			if number.Get(w) < number.Get(v) {
				lower = true
			} else if number.Get(w) > number.Get(v) {
				higher = true
			}
		}
		if !lower || !higher {
			return nil, ErrNotBiconnected
		}
	}
	return number, nil
}

// dfs explores from s with (s,t) forced as the first tree edge, filling
// discovery numbers, lowpoints, and the pathfinder edge buckets.
func (st *stState) dfs(s, t core.NodeID, ref core.EdgeID) bool {
	g := st.g
	counter := 0
	st.dfn.Set(s, counter)
	st.low.Set(s, 0)
	counter++

	type frame struct {
		v    core.NodeID
		list []core.AdjID
		idx  int
	}
	// Force ref to the front of s's scan order.
	sList := []core.AdjID{g.AdjAt(ref, s)}
	for _, a := range g.AdjList(s) {
		if a != g.AdjAt(ref, s) {
			sList = append(sList, a)
		}
	}
	stack := []frame{{v: s, list: sList}}

	for len(stack) > 0 {
		fr := &stack[len(stack)-1]
		if fr.idx >= len(fr.list) {
			done := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if len(stack) > 0 {
				p := stack[len(stack)-1].v
				if st.low.Get(done.v) < st.low.Get(p) {
					st.low.Set(p, st.low.Get(done.v))
					st.lowE.Set(p, st.pedge.Get(done.v))
				}
			}
			continue
		}
		a := fr.list[fr.idx]
		fr.idx++
		e := a.Edge()
		if g.IsLoop(e) || e == st.pedge.Get(fr.v) {
			continue
		}
		w := g.NodeOf(a.Twin())
		if st.dfn.Get(w) < 0 {
			// Tree edge.
			st.parent.Set(w, fr.v)
			st.pedge.Set(w, e)
			st.dfn.Set(w, counter)
			st.low.Set(w, counter)
			counter++
			st.treeFrom[fr.v] = append(st.treeFrom[fr.v], e)
			stack = append(stack, frame{v: w, list: g.AdjList(w)})
		} else if st.dfn.Get(w) < st.dfn.Get(fr.v) {
			// Back edge from fr.v up to ancestor w.
			st.backFrom[fr.v] = append(st.backFrom[fr.v], e)
			st.backInto[w] = append(st.backInto[w], e)
			if st.dfn.Get(w) < st.low.Get(fr.v) {
				st.low.Set(fr.v, st.dfn.Get(w))
				st.lowE.Set(fr.v, e)
			}
		}
	}

	// The DFS must have reached everything and the forced first edge must
	// have made t the first child of s.
	for _, v := range st.g.Nodes() {
		if st.dfn.Get(v) < 0 {
			return false
		}
	}
	return st.parent.Get(t) == s && st.pedge.Get(t) == ref
}

// findPath grows one path of unused edges starting at old node v, marking
// everything it touches old. An empty result means v has no unused edge
// left.
func (st *stState) findPath(v core.NodeID) []core.NodeID {
	g := st.g

	// Case 1: an unused back edge from v to an ancestor.
	if e, ok := st.takeOne(&st.backFrom[v]); ok {
		return []core.NodeID{v, g.Opposite(e, v)}
	}

	// Case 2: an unused tree edge descending from v; follow the lowpoint
	// trail until an old node appears.
	if e, ok := st.takeOne(&st.treeFrom[v]); ok {
		w := g.Opposite(e, v)
		path := []core.NodeID{v, w}
		u := w
		for !st.oldNode.Get(u) {
			st.oldNode.Set(u, true)
			le := st.lowE.Get(u)
			if le == core.NilEdge {
				// No lowpoint trail exists; only possible on inputs that
				// are not biconnected. The final validation rejects them.
				break
			}
			st.oldEdge.Set(le, true)
			x := g.Opposite(le, u)
			path = append(path, x)
			u = x
		}
		return path
	}

	// Case 3: an unused back edge arriving at v from a descendant; climb
	// the tree from that descendant until an old node appears.
	if e, ok := st.takeOne(&st.backInto[v]); ok {
		w := g.Opposite(e, v)
		path := []core.NodeID{v, w}
		u := w
		for !st.oldNode.Get(u) {
			st.oldNode.Set(u, true)
			pe := st.pedge.Get(u)
			st.oldEdge.Set(pe, true)
			p := st.parent.Get(u)
			path = append(path, p)
			u = p
		}
		return path
	}

	return nil
}

// takeOne pops the first unused edge from the bucket, marking it old.
// Edges already consumed elsewhere are skipped and dropped.
func (st *stState) takeOne(bucket *[]core.EdgeID) (core.EdgeID, bool) {
	for len(*bucket) > 0 {
		e := (*bucket)[0]
		*bucket = (*bucket)[1:]
		if st.oldEdge.Get(e) {
			continue
		}
		st.oldEdge.Set(e, true)
		return e, true
	}
	return core.NilEdge, false
}
