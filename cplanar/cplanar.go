// Package cplanar tests cluster graphs for c-planarity and computes
// cluster-respecting planar embeddings. The cluster hierarchy must be
// c-connected: every cluster's induced subgraph and the subgraph
// induced by its complement are connected.
//
// The test is the bottom-up abstraction of Feng, Cohen and Eades.
// Each cluster is reduced to an ordinary planarity question on its
// induced subgraph plus a super-sink node standing in for every edge
// leaving the cluster. The PQ-tree surviving that test describes all
// admissible cyclic orders of the leaving edges, and the cluster is
// replaced in its parent by a placeholder gadget realizing exactly
// that family: a plain node where the order is free, a hub-and-rim
// wheel where it is fixed up to reversal. After the root graph
// embeds, the placeholders are expanded top-down: each cluster is
// re-embedded against a rim cycle forcing the boundary order its
// parent realized, mirrored when the two readings disagree, and the
// per-node rotations are mapped back onto the original graph.
//
// On failure the input graph and cluster tree are left untouched.
package cplanar

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lvlplanar/cluster"
	"github.com/katalvlaran/lvlplanar/core"
	"github.com/katalvlaran/lvlplanar/planarity"
)

// Code classifies why a cluster graph failed the test.
type Code int

const (
	// CodeNone means the test passed, or failed for a non-structural
	// reason reported through the error value.
	CodeNone Code = iota

	// CodeNonCConnected marks a cluster whose induced subgraph or
	// complement is disconnected.
	CodeNonCConnected

	// CodeNonPlanar marks a flattened graph that is not planar at all.
	CodeNonPlanar

	// CodeNonCPlanar marks a planar graph whose cluster constraints
	// admit no common embedding.
	CodeNonCPlanar
)

func (c Code) String() string {
	switch c {
	case CodeNone:
		return "none"
	case CodeNonCConnected:
		return "non-c-connected"
	case CodeNonPlanar:
		return "non-planar"
	case CodeNonCPlanar:
		return "non-c-planar"
	}
	return "unknown"
}

var (
	// ErrNilTree is returned when the cluster tree or its graph is nil.
	ErrNilTree = errors.New("cplanar: nil cluster tree")

	// ErrInternal reports a pipeline inconsistency: a re-embedding step
	// contradicted what the abstraction phase established.
	ErrInternal = errors.New("cplanar: embedding pipeline inconsistency")
)

// Test reports whether the cluster graph is c-planar without mutating
// the graph or the tree.
//
// Complexity: O(clusters * V * E).
// Errors: ErrNilTree.
func Test(ct *cluster.Tree) (bool, Code, error) {
	return run(ct, false)
}

// Embed rearranges the adjacency lists of the underlying graph into a
// planar rotation system in which every cluster occupies a contiguous
// region, and marks the tree's rotation as available. When the graph
// is not c-planar both inputs are left untouched and the Code names
// the first obstruction found.
//
// Complexity: O(clusters * V * E).
// Errors: ErrNilTree, ErrInternal.
func Embed(ct *cluster.Tree) (bool, Code, error) {
	return run(ct, true)
}

func run(ct *cluster.Tree, apply bool) (bool, Code, error) {
	if ct == nil || ct.Graph() == nil {
		return false, CodeNone, ErrNilTree
	}
	g := ct.Graph()

	// All structural work happens against a pruned copy of the overlay;
	// the caller's hierarchy is never rewritten.
	cw := ct.Copy(g)
	cw.PruneEmpty()

	if !cw.CConnected() {
		return false, CodeNonCConnected, nil
	}
	if ok, err := planarity.IsPlanar(g); err != nil {
		return false, CodeNone, fmt.Errorf("cplanar: flat test: %w", err)
	} else if !ok {
		return false, CodeNonPlanar, nil
	}

	if cw.NumClusters() == 1 {
		// No proper clusters survive pruning: plain planar embedding.
		if !apply {
			return true, CodeNone, nil
		}
		if ok, err := planarity.Embed(g); err != nil {
			return false, CodeNone, fmt.Errorf("cplanar: flat embed: %w", err)
		} else if !ok {
			return false, CodeNonPlanar, nil
		}
		ct.SetAdjAvailable(true)
		return true, CodeNone, nil
	}

	// A graph that already carries a valid embedding with every cluster
	// contiguous needs no work; re-running the pipeline would only permute
	// an equally valid rotation.
	if g.RepresentsCombEmbedding() && cw.ContiguousAll() {
		if apply {
			ct.SetAdjAvailable(true)
		}
		return true, CodeNone, nil
	}

	em := &embedder{g: g, cw: cw, recs: make(map[cluster.ID]*record)}
	for _, c := range cw.PostOrder(cw.Root()) {
		if c == cw.Root() {
			continue
		}
		ok, err := em.abstract(c)
		if err != nil {
			return false, CodeNone, err
		}
		if !ok {
			return false, CodeNonCPlanar, nil
		}
	}

	root, err := em.buildArea(cw.Root(), false)
	if err != nil {
		return false, CodeNone, err
	}
	if ok, err := planarity.Embed(root.h); err != nil {
		return false, CodeNone, fmt.Errorf("cplanar: root embed: %w", err)
	} else if !ok {
		return false, CodeNonCPlanar, nil
	}
	if !apply {
		return true, CodeNone, nil
	}

	rot, err := em.expand(root)
	if err != nil {
		return false, CodeNone, err
	}

	// Keep the pre-call rotation so a failed apply leaves g untouched.
	saved := make(map[core.NodeID][]core.AdjID, g.NumNodes())
	for _, v := range g.Nodes() {
		saved[v] = g.AdjList(v)
	}
	restore := func() {
		for v, lst := range saved {
			if len(lst) > 0 {
				g.SetOrder(v, lst)
			}
		}
	}
	for _, v := range g.Nodes() {
		if g.Degree(v) == 0 {
			continue
		}
		if err := g.SetOrder(v, rot.Get(v)); err != nil {
			restore()
			return false, CodeNone, fmt.Errorf("cplanar: apply rotation: %w", err)
		}
	}
	if !g.RepresentsCombEmbedding() {
		restore()
		return false, CodeNone, ErrInternal
	}
	ct.SetAdjAvailable(true)
	return true, CodeNone, nil
}
