package kuratowski

import "github.com/katalvlaran/lvlplanar/core"

// DynamicBacktrack enumerates the simple paths between two nodes one
// at a time. The depth-first stack persists across calls, so asking
// for the next path resumes where the previous one left off instead
// of restarting the search.
//
// The allowed filter restricts which edges may be used; nil allows
// every edge. Not safe for concurrent use.
type DynamicBacktrack struct {
	g       *core.Graph
	target  core.NodeID
	allowed func(core.EdgeID) bool

	stack  []btFrame
	onPath map[core.NodeID]bool
	edges  []core.EdgeID
}

type btFrame struct {
	v   core.NodeID
	adj []core.AdjID
	idx int
}

// NewDynamicBacktrack prepares an enumeration of the simple paths
// from start to target. With start == target the enumeration is
// empty.
func NewDynamicBacktrack(g *core.Graph, start, target core.NodeID, allowed func(core.EdgeID) bool) *DynamicBacktrack {
	b := &DynamicBacktrack{
		g:       g,
		target:  target,
		allowed: allowed,
		onPath:  map[core.NodeID]bool{start: true},
	}
	if start != target && g.HasNode(start) && g.HasNode(target) {
		b.stack = append(b.stack, btFrame{v: start, adj: g.AdjList(start)})
	}
	return b
}

// AddNextPath returns the next simple path as an edge list, or false
// when the search space is exhausted.
//
// Complexity: amortized O(path length) per returned path.
func (b *DynamicBacktrack) AddNextPath() ([]core.EdgeID, bool) {
	return b.AddNextPathExclude(nil)
}

// AddNextPathExclude behaves like AddNextPath but never routes
// through a node in exclude (the target itself is always allowed).
// The exclude set must stay the same across calls on one enumerator;
// the resumed stack assumes it.
func (b *DynamicBacktrack) AddNextPathExclude(exclude map[core.NodeID]bool) ([]core.EdgeID, bool) {
	for len(b.stack) > 0 {
		f := &b.stack[len(b.stack)-1]
		if f.idx == len(f.adj) {
			b.onPath[f.v] = false
			b.stack = b.stack[:len(b.stack)-1]
			if len(b.edges) > 0 {
				b.edges = b.edges[:len(b.edges)-1]
			}
			continue
		}
		a := f.adj[f.idx]
		f.idx++
		e := a.Edge()
		if b.g.IsLoop(e) || (b.allowed != nil && !b.allowed(e)) {
			continue
		}
		w := b.g.Opposite(e, f.v)
		if w == b.target {
			out := make([]core.EdgeID, len(b.edges)+1)
			copy(out, b.edges)
			out[len(b.edges)] = e
			return out, true
		}
		if b.onPath[w] || (exclude != nil && exclude[w]) {
			continue
		}
		b.onPath[w] = true
		b.edges = append(b.edges, e)
		b.stack = append(b.stack, btFrame{v: w, adj: b.g.AdjList(w)})
	}
	return nil, false
}
