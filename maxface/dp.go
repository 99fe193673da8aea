package maxface

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/lvlplanar/core"
	"github.com/katalvlaran/lvlplanar/planarity"
	"github.com/katalvlaran/lvlplanar/spqr"
)

// dp carries the two-pass dynamic program over the SPQR tree. cef[x]
// is the length of the component hanging below x, measured across its
// reference edge; tef[x] is the length of everything above x across
// the same pole pair. Both describe a traversal from one pole to the
// other: edge lengths plus the node lengths strictly between the
// poles.
type dp struct {
	tr  *spqr.Tree
	nl  *core.NodeArray[int]
	el  *core.EdgeArray[int]
	cef []int
	tef []int
}

func newDP(tr *spqr.Tree, nl *core.NodeArray[int], el *core.EdgeArray[int]) *dp {
	return &dp{
		tr:  tr,
		nl:  nl,
		el:  el,
		cef: make([]int, tr.NumNodes()),
		tef: make([]int, tr.NumNodes()),
	}
}

// skelEdgeLen is the effective length of skeleton edge se of tree
// node x: real edges keep their own length, virtual edges stand for
// the component on their far side.
func (d *dp) skelEdgeLen(x spqr.TreeNodeID, se core.EdgeID) int {
	if tw, ok := d.tr.TwinOf(x, se); ok {
		if se == d.tr.Reference(x) {
			return d.tef[x]
		}
		return d.cef[tw.Node]
	}
	oe, _ := d.tr.OriginalEdge(x, se)
	return lenOf(d.el, oe)
}

func (d *dp) origLen(x spqr.TreeNodeID, v core.NodeID) int {
	return lenOfNode(d.nl, d.tr.OriginalNode(x, v))
}

// across measures the length of skeleton x traversed pole to pole as
// seen from the far side of skeleton edge a: the best walk between
// the endpoints of a that avoids a itself. The length of a is never
// consulted.
func (d *dp) across(x spqr.TreeNodeID, a core.EdgeID) int {
	sk := d.tr.Skeleton(x)
	u, v := sk.Ends(a)
	switch d.tr.Kind(x) {
	case spqr.SNode:
		// Series: the one avoiding path is the rest of the cycle.
		sum := 0
		for _, se := range sk.Edges() {
			if se != a {
				sum += d.skelEdgeLen(x, se)
			}
		}
		for _, w := range sk.Nodes() {
			if w != u && w != v {
				sum += d.origLen(x, w)
			}
		}
		return sum
	case spqr.PNode:
		// Parallel: only the longest sibling branch matters.
		best := 0
		for _, se := range sk.Edges() {
			if se != a && d.skelEdgeLen(x, se) > best {
				best = d.skelEdgeLen(x, se)
			}
		}
		return best
	default:
		return d.acrossRigid(x, a)
	}
}

// acrossRigid handles the R case: embed the skeleton, inspect the two
// faces bounded by a and keep the larger boundary, not counting a or
// its poles.
func (d *dp) acrossRigid(x spqr.TreeNodeID, a core.EdgeID) int {
	sk, err := d.embeddedCopy(x, core.NilEdge)
	if err != nil {
		// Skeletons of planar graphs are planar; treated as zero so the
		// final invariant check reports the breach.
		return 0
	}
	u, v := sk.Ends(a)
	poles := d.origLen(x, u) + d.origLen(x, v)
	best := 0
	for _, walk := range sk.Faces() {
		if !walkHasEdge(walk, a) {
			continue
		}
		size := -poles
		for _, ad := range walk {
			if ad.Edge() != a {
				size += d.skelEdgeLen(x, ad.Edge())
			}
			size += d.origLen(x, sk.NodeOf(ad))
		}
		if size > best {
			best = size
		}
	}
	return best
}

func walkHasEdge(walk []core.AdjID, e core.EdgeID) bool {
	for _, a := range walk {
		if a.Edge() == e {
			return true
		}
	}
	return false
}

// bottomUp fills cef in post-order: children are resolved before any
// parent consults their virtual edges.
func (d *dp) bottomUp() {
	var order []spqr.TreeNodeID
	stack := []spqr.TreeNodeID{d.tr.Root()}
	for len(stack) > 0 {
		x := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		order = append(order, x)
		stack = append(stack, d.tr.Children(x)...)
	}
	for i := len(order) - 1; i >= 0; i-- {
		x := order[i]
		if ref := d.tr.Reference(x); ref != core.NilEdge {
			d.cef[x] = d.across(x, ref)
		}
	}
}

// topDown fills tef in pre-order: every child reads the component
// above it out of its parent's already-complete skeleton view.
func (d *dp) topDown() {
	queue := []spqr.TreeNodeID{d.tr.Root()}
	for len(queue) > 0 {
		x := queue[0]
		queue = queue[1:]
		for _, c := range d.tr.Children(x) {
			tw, _ := d.tr.TwinOf(c, d.tr.Reference(c))
			d.tef[c] = d.across(x, tw.Edge)
			queue = append(queue, c)
		}
	}
}

// selectBest returns the tree node whose skeleton exposes the largest
// face, together with that size. With an anchor only faces touching
// the anchor node count.
func (d *dp) selectBest(anchor core.NodeID) (spqr.TreeNodeID, int) {
	bestNode, best := spqr.NilTreeNode, -1
	for x := 0; x < d.tr.NumNodes(); x++ {
		id := spqr.TreeNodeID(x)
		size, ok := d.localBest(id, anchor)
		if ok && size > best {
			bestNode, best = id, size
		}
	}
	return bestNode, best
}

// localBest is the size of the largest face visible in skeleton x
// with every virtual edge carrying its component length.
func (d *dp) localBest(x spqr.TreeNodeID, anchor core.NodeID) (int, bool) {
	sk := d.tr.Skeleton(x)
	if anchor != core.NilNode && d.tr.Kind(x) != spqr.RNode && !d.skelHolds(x, anchor) {
		return 0, false
	}
	switch d.tr.Kind(x) {
	case spqr.SNode:
		sum := 0
		for _, se := range sk.Edges() {
			sum += d.skelEdgeLen(x, se)
		}
		for _, w := range sk.Nodes() {
			sum += d.origLen(x, w)
		}
		return sum, true
	case spqr.PNode:
		first, second := 0, 0
		for _, se := range sk.Edges() {
			l := d.skelEdgeLen(x, se)
			if l > first {
				first, second = l, first
			} else if l > second {
				second = l
			}
		}
		for _, w := range sk.Nodes() {
			first += d.origLen(x, w)
		}
		return first + second, true
	default:
		emb, err := d.embeddedCopy(x, core.NilEdge)
		if err != nil {
			return 0, false
		}
		best, ok := -1, false
		for _, walk := range emb.Faces() {
			if anchor != core.NilNode && !d.walkTouchesOrig(x, emb, walk, anchor) {
				continue
			}
			size := 0
			for _, ad := range walk {
				size += d.skelEdgeLen(x, ad.Edge()) + d.origLen(x, emb.NodeOf(ad))
			}
			if size > best {
				best, ok = size, true
			}
		}
		return best, ok
	}
}

func (d *dp) skelHolds(x spqr.TreeNodeID, orig core.NodeID) bool {
	for _, v := range d.tr.Skeleton(x).Nodes() {
		if d.tr.OriginalNode(x, v) == orig {
			return true
		}
	}
	return false
}

func (d *dp) walkTouchesOrig(x spqr.TreeNodeID, sk *core.Graph, walk []core.AdjID, orig core.NodeID) bool {
	for _, a := range walk {
		if d.tr.OriginalNode(x, sk.NodeOf(a)) == orig {
			return true
		}
	}
	return false
}

// embeddedCopy returns a planarly embedded copy of skeleton x. S
// skeletons are cycles and already embedded; P bundles are ordered by
// decreasing length, with `first` forced to the front when given, so
// the two longest branches (or `first` and the longest sibling) share
// a face; R skeletons run through the planarity sweep.
func (d *dp) embeddedCopy(x spqr.TreeNodeID, first core.EdgeID) (*core.Graph, error) {
	sk := d.tr.Skeleton(x).Copy()
	switch d.tr.Kind(x) {
	case spqr.SNode:
		return sk, nil
	case spqr.PNode:
		edges := sk.Edges()
		sort.SliceStable(edges, func(i, j int) bool {
			return d.skelEdgeLen(x, edges[i]) > d.skelEdgeLen(x, edges[j])
		})
		if first != core.NilEdge {
			for i, e := range edges {
				if e == first {
					copy(edges[1:i+1], edges[:i])
					edges[0] = first
					break
				}
			}
		}
		u, v := sk.Ends(edges[0])
		ordU := make([]core.AdjID, 0, len(edges))
		ordV := make([]core.AdjID, 0, len(edges))
		for _, e := range edges {
			ordU = append(ordU, sk.AdjAt(e, u))
			ordV = append(ordV, sk.AdjAt(e, v))
		}
		for i, j := 0, len(ordV)-1; i < j; i, j = i+1, j-1 {
			ordV[i], ordV[j] = ordV[j], ordV[i]
		}
		if err := sk.SetOrder(u, ordU); err != nil {
			return nil, err
		}
		if err := sk.SetOrder(v, ordV); err != nil {
			return nil, err
		}
		return sk, nil
	default:
		planar, err := planarity.Embed(sk)
		if err != nil {
			return nil, err
		}
		if !planar {
			return nil, fmt.Errorf("%w: non-planar rigid skeleton", ErrInternal)
		}
		return sk, nil
	}
}
