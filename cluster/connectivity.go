// Package cluster: C-connectedness analysis.
//
// A cluster hierarchy admits a c-planar embedding only if every cluster's
// induced subgraph is connected and the subgraph induced by the cluster's
// complement is connected as well. Both sides are checked with plain
// graph sweeps over the underlying graph restricted by membership.

package cluster

import "github.com/katalvlaran/lvlplanar/core"

// CConnected reports whether every cluster of the tree satisfies the
// c-connectedness requirement. The check is read-only and repeatable:
// calling it twice on an unmodified graph yields the same answer.
// Complexity: O(clusters · (V + E)).
func (t *Tree) CConnected() bool {
	return t.FirstNonCConnected() == Nil
}

// FirstNonCConnected returns the first cluster (in post-order) violating
// c-connectedness, or Nil when all clusters pass. Callers use it to report
// the offending cluster.
func (t *Tree) FirstNonCConnected() ID {
	inside := core.NewNodeArray(t.g, false)
	for _, c := range t.PostOrder(t.root) {
		members := t.AllNodes(c)
		if len(members) == 0 {
			continue
		}
		for _, v := range members {
			inside.Set(v, true)
		}

		okIn := t.connectedWithin(members, inside, true)
		okOut := true
		if c != t.root {
			okOut = t.complementConnected(inside)
		}

		for _, v := range members {
			inside.Set(v, false)
		}
		if !okIn || !okOut {
			return c
		}
	}
	return Nil
}

// connectedWithin checks that all listed nodes are mutually reachable
// through edges whose endpoints both satisfy the membership predicate.
func (t *Tree) connectedWithin(members []core.NodeID, inside *core.NodeArray[bool], want bool) bool {
	if len(members) <= 1 {
		return true
	}
	visited := core.NewNodeArray(t.g, false)
	queue := []core.NodeID{members[0]}
	visited.Set(members[0], true)
	reached := 1
	for len(queue) > 0 {
		v := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		for _, a := range t.g.AdjList(v) {
			w := t.g.NodeOf(a.Twin())
			if inside.Get(w) != want || visited.Get(w) {
				continue
			}
			visited.Set(w, true)
			reached++
			queue = append(queue, w)
		}
	}
	return reached == len(members)
}

// complementConnected checks connectivity of the graph induced by all
// nodes outside the current cluster.
func (t *Tree) complementConnected(inside *core.NodeArray[bool]) bool {
	var outside []core.NodeID
	for _, v := range t.g.Nodes() {
		if !inside.Get(v) {
			outside = append(outside, v)
		}
	}
	return t.connectedWithin(outside, inside, false)
}
