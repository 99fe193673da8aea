// Package maxface rearranges the rotation system of a planar
// biconnected graph so that one face becomes as large as possible,
// and reports an adjacency entry on that face. Face size is measured
// by caller-supplied non-negative node and edge lengths: a face walk
// scores the length of every traversed edge plus the length of the
// node each dart leaves from, so a simple k-gon with unit lengths
// scores 2k.
//
// The search runs over the SPQR tree of the graph. A bottom-up pass
// assigns every virtual edge the length of the component it stands
// for (series compositions add, parallel compositions keep their best
// branch, rigid skeletons consult their own planar embedding), a
// top-down pass mirrors those lengths toward the leaves, and the best
// skeleton face overall is then expanded back into a full rotation
// system of the original graph. An anchored variant restricts the
// choice to faces touching one given node.
//
// ComputeSize is the independent oracle: it scores one face of the
// current embedding directly, with no SPQR machinery, and the two
// paths must agree on the face Embed selects.
package maxface

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lvlplanar/bicon"
	"github.com/katalvlaran/lvlplanar/core"
	"github.com/katalvlaran/lvlplanar/planarity"
	"github.com/katalvlaran/lvlplanar/spqr"
)

var (
	// ErrNilGraph is returned on a nil graph.
	ErrNilGraph = errors.New("maxface: nil graph")
	// ErrNotPlanar is returned when the graph has no planar embedding.
	ErrNotPlanar = errors.New("maxface: graph is not planar")
	// ErrNotBiconnected is returned when the graph is not biconnected.
	ErrNotBiconnected = errors.New("maxface: graph must be biconnected")
	// ErrNegativeLength is returned when a node or edge length is
	// negative.
	ErrNegativeLength = errors.New("maxface: lengths must be non-negative")
	// ErrUnknownAnchor is returned by EmbedAt for a node outside the
	// graph.
	ErrUnknownAnchor = errors.New("maxface: anchor node not in graph")
	// ErrInternal reports a breach of the size invariant: the realized
	// embedding disagrees with the dynamic program.
	ErrInternal = errors.New("maxface: internal invariant violated")
)

// Embed rewrites the rotation system of g so that some face has
// maximum total length over all planar embeddings of g, and returns
// an adjacency entry on that face together with its size. Nil length
// arrays mean unit lengths.
//
// Errors: ErrNilGraph, ErrNotBiconnected, ErrNotPlanar,
// ErrNegativeLength; ErrInternal on a broken size invariant.
// Complexity: dominated by the SPQR construction.
func Embed(g *core.Graph, nodeLen *core.NodeArray[int], edgeLen *core.EdgeArray[int]) (core.AdjID, int, error) {
	return run(g, core.NilNode, nodeLen, edgeLen)
}

// EmbedAt is Embed restricted to faces whose boundary walk touches
// the anchor node.
func EmbedAt(g *core.Graph, anchor core.NodeID, nodeLen *core.NodeArray[int], edgeLen *core.EdgeArray[int]) (core.AdjID, int, error) {
	if g != nil && !g.HasNode(anchor) {
		return core.NilAdj, 0, ErrUnknownAnchor
	}
	return run(g, anchor, nodeLen, edgeLen)
}

// ComputeSize scores the face of the current embedding that contains
// ext: for every dart of the boundary walk it adds the edge length
// plus the length of the dart's tail node. Nil length arrays mean
// unit lengths. The graph is not modified.
func ComputeSize(g *core.Graph, ext core.AdjID, nodeLen *core.NodeArray[int], edgeLen *core.EdgeArray[int]) int {
	size := 0
	for _, a := range g.FaceOf(ext) {
		size += lenOf(edgeLen, a.Edge()) + lenOfNode(nodeLen, g.NodeOf(a))
	}
	return size
}

func lenOf(el *core.EdgeArray[int], e core.EdgeID) int {
	if el == nil {
		return 1
	}
	return el.Get(e)
}

func lenOfNode(nl *core.NodeArray[int], v core.NodeID) int {
	if nl == nil {
		return 1
	}
	return nl.Get(v)
}

func run(g *core.Graph, anchor core.NodeID, nodeLen *core.NodeArray[int], edgeLen *core.EdgeArray[int]) (core.AdjID, int, error) {
	if g == nil {
		return core.NilAdj, 0, ErrNilGraph
	}
	for _, v := range g.Nodes() {
		if lenOfNode(nodeLen, v) < 0 {
			return core.NilAdj, 0, ErrNegativeLength
		}
	}
	for _, e := range g.Edges() {
		if lenOf(edgeLen, e) < 0 {
			return core.NilAdj, 0, ErrNegativeLength
		}
	}
	if !bicon.IsBiconnected(g) {
		return core.NilAdj, 0, ErrNotBiconnected
	}
	if planar, err := planarity.IsPlanar(g); err != nil {
		return core.NilAdj, 0, err
	} else if !planar {
		return core.NilAdj, 0, ErrNotPlanar
	}

	// With at most two edges every embedding is the same; take it
	// directly.
	if g.NumEdges() <= 2 {
		if _, err := planarity.Embed(g); err != nil {
			return core.NilAdj, 0, err
		}
		a, size := bestFace(g, anchor, nodeLen, edgeLen)
		return a, size, nil
	}

	tr, err := spqr.Build(g)
	if err != nil {
		return core.NilAdj, 0, err
	}
	d := newDP(tr, nodeLen, edgeLen)
	d.bottomUp()
	d.topDown()

	bestNode, want := d.selectBest(anchor)
	if bestNode == spqr.NilTreeNode {
		return core.NilAdj, 0, fmt.Errorf("%w: no candidate face", ErrInternal)
	}
	if err := d.expand(g, bestNode, anchor); err != nil {
		return core.NilAdj, 0, err
	}

	a, size := bestFace(g, anchor, nodeLen, edgeLen)
	if size != want {
		return core.NilAdj, 0, fmt.Errorf("%w: realized face size %d, computed %d", ErrInternal, size, want)
	}
	return a, size, nil
}

// bestFace scans the faces of the current embedding of g and returns
// an entry on the largest one, restricted to faces touching anchor
// when anchor is a node.
func bestFace(g *core.Graph, anchor core.NodeID, nodeLen *core.NodeArray[int], edgeLen *core.EdgeArray[int]) (core.AdjID, int) {
	best, bestSize := core.NilAdj, -1
	for _, walk := range g.Faces() {
		if anchor != core.NilNode && !walkTouches(g, walk, anchor) {
			continue
		}
		size := 0
		for _, a := range walk {
			size += lenOf(edgeLen, a.Edge()) + lenOfNode(nodeLen, g.NodeOf(a))
		}
		if size > bestSize {
			best, bestSize = walk[0], size
		}
	}
	return best, bestSize
}

func walkTouches(g *core.Graph, walk []core.AdjID, v core.NodeID) bool {
	for _, a := range walk {
		if g.NodeOf(a) == v {
			return true
		}
	}
	return false
}
