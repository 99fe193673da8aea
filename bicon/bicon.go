// Package bicon provides the connectivity substrate of the planarity
// pipeline: connected components, Hopcroft-Tarjan biconnected components
// with cut vertices, and Even-Tarjan st-numbering.
//
// All traversals use explicit stacks; recursion depth never depends on
// graph size.
//
// Errors:
//
//	ErrNilGraph        - a nil graph was passed.
//	ErrEdgeNotFound    - the reference edge does not exist.
//	ErrNotBiconnected  - st-numbering requested on a graph that is not
//	                     biconnected.
package bicon

import (
	"errors"

	"github.com/katalvlaran/lvlplanar/core"
)

// Sentinel errors for connectivity analyses.
var (
	// ErrNilGraph is returned when a nil *core.Graph is passed.
	ErrNilGraph = errors.New("bicon: graph is nil")

	// ErrEdgeNotFound indicates the reference edge does not exist.
	ErrEdgeNotFound = errors.New("bicon: edge not found")

	// ErrNotBiconnected indicates the graph fails biconnectivity where it
	// is required.
	ErrNotBiconnected = errors.New("bicon: graph is not biconnected")
)

// Component is one biconnected component: its edges and the nodes they
// span. A bridge forms a component of one edge; a self-loop forms a
// component of its own.
type Component struct {
	Edges []core.EdgeID
	Nodes []core.NodeID
}

// Connected reports whether g is connected. The empty graph counts as
// connected.
// Complexity: O(V + E).
func Connected(g *core.Graph) bool {
	nodes := g.Nodes()
	if len(nodes) <= 1 {
		return true
	}
	visited := core.NewNodeArray(g, false)
	stack := []core.NodeID{nodes[0]}
	visited.Set(nodes[0], true)
	reached := 1
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, a := range g.AdjList(v) {
			w := g.NodeOf(a.Twin())
			if !visited.Get(w) {
				visited.Set(w, true)
				reached++
				stack = append(stack, w)
			}
		}
	}
	return reached == len(nodes)
}

// Components returns the connected components of g as node lists.
// Complexity: O(V + E).
func Components(g *core.Graph) [][]core.NodeID {
	visited := core.NewNodeArray(g, false)
	var out [][]core.NodeID
	for _, r := range g.Nodes() {
		if visited.Get(r) {
			continue
		}
		var comp []core.NodeID
		stack := []core.NodeID{r}
		visited.Set(r, true)
		for len(stack) > 0 {
			v := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			comp = append(comp, v)
			for _, a := range g.AdjList(v) {
				w := g.NodeOf(a.Twin())
				if !visited.Get(w) {
					visited.Set(w, true)
					stack = append(stack, w)
				}
			}
		}
		out = append(out, comp)
	}
	return out
}

// dfsFrame is one stack entry of the iterative biconnectivity sweep.
type dfsFrame struct {
	v     core.NodeID
	list  []core.AdjID
	idx   int
	enter core.AdjID // dart used to enter v, NilAdj for roots
}

// BiconnectedComponents computes the biconnected components of g and its
// cut vertices.
// Complexity: O(V + E).
func BiconnectedComponents(g *core.Graph) ([]Component, []core.NodeID) {
	dfn := core.NewNodeArray(g, -1)
	low := core.NewNodeArray(g, -1)
	isCut := core.NewNodeArray(g, false)
	loopDone := core.NewEdgeArray(g, false)

	var comps []Component
	var cuts []core.NodeID
	var estack []core.EdgeID
	counter := 0

	popComponent := func(until core.EdgeID) {
		var comp Component
		nodeSeen := map[core.NodeID]bool{}
		for {
			e := estack[len(estack)-1]
			estack = estack[:len(estack)-1]
			comp.Edges = append(comp.Edges, e)
			for _, v := range []core.NodeID{g.Source(e), g.Target(e)} {
				if !nodeSeen[v] {
					nodeSeen[v] = true
					comp.Nodes = append(comp.Nodes, v)
				}
			}
			if e == until {
				break
			}
		}
		comps = append(comps, comp)
	}

	for _, root := range g.Nodes() {
		if dfn.Get(root) >= 0 {
			continue
		}
		dfn.Set(root, counter)
		low.Set(root, counter)
		counter++
		rootChildren := 0
		stack := []dfsFrame{{v: root, list: g.AdjList(root), enter: core.NilAdj}}

		for len(stack) > 0 {
			fr := &stack[len(stack)-1]
			if fr.idx < len(fr.list) {
				a := fr.list[fr.idx]
				fr.idx++
				e := a.Edge()

				// A self-loop is its own component; both darts would
				// revisit it.
				if g.IsLoop(e) {
					if !loopDone.Get(e) {
						loopDone.Set(e, true)
						comps = append(comps, Component{Edges: []core.EdgeID{e}, Nodes: []core.NodeID{fr.v}})
					}
					continue
				}
				// Skip the exact dart we entered through; parallel edges
				// must still be scanned.
				if a == fr.enter {
					continue
				}
				w := g.NodeOf(a.Twin())
				if dfn.Get(w) < 0 {
					// Tree edge: descend.
					estack = append(estack, e)
					if fr.v == root {
						rootChildren++
					}
					dfn.Set(w, counter)
					low.Set(w, counter)
					counter++
					stack = append(stack, dfsFrame{v: w, list: g.AdjList(w), enter: a.Twin()})
				} else if dfn.Get(w) < dfn.Get(fr.v) {
					// Back edge to an ancestor.
					estack = append(estack, e)
					if dfn.Get(w) < low.Get(fr.v) {
						low.Set(fr.v, dfn.Get(w))
					}
				}
				continue
			}

			// Frame exhausted: fold into parent.
			done := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				break
			}
			parent := &stack[len(stack)-1]
			if low.Get(done.v) < low.Get(parent.v) {
				low.Set(parent.v, low.Get(done.v))
			}
			if low.Get(done.v) >= dfn.Get(parent.v) {
				popComponent(done.enter.Twin().Edge())
				if parent.v != root && !isCut.Get(parent.v) {
					isCut.Set(parent.v, true)
					cuts = append(cuts, parent.v)
				}
			}
		}

		if rootChildren > 1 && !isCut.Get(root) {
			isCut.Set(root, true)
			cuts = append(cuts, root)
		}
	}
	return comps, cuts
}

// IsBiconnected reports whether g is connected, has no cut vertex, and
// does not split into multiple components. Graphs with fewer than three
// nodes are biconnected when connected.
// Complexity: O(V + E).
func IsBiconnected(g *core.Graph) bool {
	if !Connected(g) {
		return false
	}
	if g.NumNodes() <= 2 {
		return true
	}
	_, cuts := BiconnectedComponents(g)
	return len(cuts) == 0
}
