// Package cluster: arc contiguity of a cluster within an embedding.
//
// In a c-planar drawing a cluster occupies a closed region, so every edge
// leaving the cluster must cross the region boundary through one common
// "outside". Combinatorially: restrict the rotation system to the
// cluster's induced subgraph, trace the faces of that sub-embedding, and
// require all leaving darts to sit in corners of one single induced face.

package cluster

import "github.com/katalvlaran/lvlplanar/core"

// Contiguous reports whether cluster c forms one contiguous arc in the
// current rotation system of the underlying graph. The rotation system is
// assumed to be a valid combinatorial embedding.
// Complexity: O(V + E) per cluster.
func (t *Tree) Contiguous(c ID) bool {
	members := t.AllNodes(c)
	if len(members) <= 1 {
		return true
	}

	g := t.g
	inside := core.NewNodeArray(g, false)
	for _, v := range members {
		inside.Set(v, true)
	}
	internal := func(a core.AdjID) bool {
		return inside.Get(g.NodeOf(a)) && inside.Get(g.NodeOf(a.Twin()))
	}

	// 1. Induced rotation: cyclic successor among internal darts only.
	nextInternal := core.NewAdjArray(g, core.NilAdj)
	for _, v := range members {
		list := g.AdjList(v)
		var internals []core.AdjID
		for _, a := range list {
			if internal(a) {
				internals = append(internals, a)
			}
		}
		if len(internals) == 0 {
			return false // induced subgraph leaves v isolated
		}
		for i, a := range internals {
			nextInternal.Set(a, internals[(i+1)%len(internals)])
		}
	}

	// 2. Trace faces of the induced sub-embedding.
	faceOf := core.NewAdjArray(g, -1)
	numFaces := 0
	for _, v := range members {
		for _, a := range g.AdjList(v) {
			if !internal(a) || faceOf.Get(a) >= 0 {
				continue
			}
			for x := a; faceOf.Get(x) < 0; x = nextInternal.Get(x.Twin()) {
				faceOf.Set(x, numFaces)
			}
			numFaces++
		}
	}

	// 3. Every leaving dart must live in one common induced face.
	exitFace := -1
	for _, v := range members {
		for _, a := range g.AdjList(v) {
			if internal(a) {
				continue
			}
			// Walk forward in the full rotation to the next internal dart;
			// its induced face is the corner this leaving dart occupies.
			y := g.NextAdj(a)
			for !internal(y) {
				y = g.NextAdj(y)
			}
			if f := faceOf.Get(y); exitFace < 0 {
				exitFace = f
			} else if f != exitFace {
				return false
			}
		}
	}
	return true
}

// ContiguousAll reports whether every non-root cluster is contiguous in
// the current rotation system.
// Complexity: O(clusters · (V + E)).
func (t *Tree) ContiguousAll() bool {
	for _, c := range t.Clusters() {
		if c == t.root {
			continue
		}
		if !t.Contiguous(c) {
			return false
		}
	}
	return true
}
