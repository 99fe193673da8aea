package maxface

import (
	"fmt"

	"github.com/katalvlaran/lvlplanar/core"
	"github.com/katalvlaran/lvlplanar/spqr"
)

// item is one slot of a rotation list under construction: either a
// dart of the original graph or a placeholder for a virtual skeleton
// edge still awaiting its twin component.
type item struct {
	dart  core.AdjID
	virt  bool
	owner spqr.TreeNodeID
	edge  core.EdgeID
}

// phKey names one placeholder: the tree node owning the virtual edge
// plus the skeleton edge id there. Its twin is reachable via the
// tree.
type phKey struct {
	node spqr.TreeNodeID
	edge core.EdgeID
}

// expand rewrites the rotation system of g, growing it outward from
// the chosen skeleton. Every virtual edge is replaced by the rotation
// lists of its twin skeleton, spliced in at the two shared poles; the
// twin is oriented so that its largest face bounded by the twin edge
// lands on the side the chosen face runs along. The traversal crosses
// every tree edge exactly once, driven by an explicit worklist.
func (d *dp) expand(g *core.Graph, b spqr.TreeNodeID, anchor core.NodeID) error {
	emb, err := d.embeddedCopy(b, core.NilEdge)
	if err != nil {
		return err
	}
	walk, ok := d.chooseFace(b, emb, anchor, core.NilEdge)
	if !ok {
		return fmt.Errorf("%w: chosen skeleton has no candidate face", ErrInternal)
	}

	rot := make(map[core.NodeID][]item, g.NumNodes())
	mark := make(map[phKey]core.NodeID)
	var work []phKey

	for n, lst := range d.buildLists(b, emb) {
		rot[n] = lst
	}
	d.markAndQueue(b, emb, walk, core.NilEdge, mark, &work)

	for len(work) > 0 {
		key := work[len(work)-1]
		work = work[:len(work)-1]
		if err := d.splice(key, rot, mark, &work); err != nil {
			return err
		}
	}

	for n, lst := range rot {
		order := make([]core.AdjID, 0, len(lst))
		for _, it := range lst {
			if it.virt {
				return fmt.Errorf("%w: unresolved virtual edge in rotation of node %d", ErrInternal, n)
			}
			order = append(order, it.dart)
		}
		if err := g.SetOrder(n, order); err != nil {
			return err
		}
	}
	return nil
}

// splice expands one placeholder: it embeds the twin skeleton,
// orients it against the mark left by the growing face, and grafts
// its rotation lists in place of the placeholder at both poles.
func (d *dp) splice(key phKey, rot map[core.NodeID][]item, mark map[phKey]core.NodeID, work *[]phKey) error {
	tw, ok := d.tr.TwinOf(key.node, key.edge)
	if !ok {
		return fmt.Errorf("%w: placeholder without a twin", ErrInternal)
	}
	y, ge := tw.Node, tw.Edge

	first := core.NilEdge
	if d.tr.Kind(y) == spqr.PNode {
		first = ge
	}
	emb, err := d.embeddedCopy(y, first)
	if err != nil {
		return err
	}
	walk, ok := d.chooseFace(y, emb, core.NilNode, ge)
	if !ok {
		return fmt.Errorf("%w: twin skeleton has no face along edge %d", ErrInternal, ge)
	}

	// The growing face enters the component across the twin edge; its
	// biggest boundary must land on that side. Mirror the skeleton
	// when the twin edge runs the same way on both walks.
	if m, marked := mark[key]; marked {
		if d.geTail(y, emb, walk, ge) == m {
			for _, v := range emb.Nodes() {
				if err := emb.ReverseOrder(v); err != nil {
					return err
				}
			}
			rev := make([]core.AdjID, 0, len(walk))
			for i := len(walk) - 1; i >= 0; i-- {
				rev = append(rev, walk[i].Twin())
			}
			walk = rev
		}
	}

	lists := d.buildLists(y, emb)
	su, sv := d.tr.Skeleton(y).Ends(ge)
	pu := d.tr.OriginalNode(y, su)
	pv := d.tr.OriginalNode(y, sv)

	for _, pole := range []core.NodeID{pu, pv} {
		seq, err := cutAt(lists[pole], y, ge)
		if err != nil {
			return err
		}
		dst, err := replacePlaceholder(rot[pole], key, seq)
		if err != nil {
			return err
		}
		rot[pole] = dst
	}
	for n, lst := range lists {
		if n == pu || n == pv {
			continue
		}
		rot[n] = lst
	}

	d.markAndQueue(y, emb, walk, ge, mark, work)
	return nil
}

// chooseFace picks the largest face of the embedded skeleton copy,
// restricted to faces along the edge `along` (when given) or touching
// the anchor node (when given).
func (d *dp) chooseFace(x spqr.TreeNodeID, emb *core.Graph, anchor core.NodeID, along core.EdgeID) ([]core.AdjID, bool) {
	var best []core.AdjID
	bestSize := -1
	for _, walk := range emb.Faces() {
		if along != core.NilEdge && !walkHasEdge(walk, along) {
			continue
		}
		if anchor != core.NilNode && !d.walkTouchesOrig(x, emb, walk, anchor) {
			continue
		}
		size := 0
		for _, a := range walk {
			size += d.skelEdgeLen(x, a.Edge()) + d.origLen(x, emb.NodeOf(a))
		}
		if size > bestSize {
			best, bestSize = walk, size
		}
	}
	return best, bestSize >= 0
}

// geTail returns the original node the face walk leaves from when it
// traverses edge ge.
func (d *dp) geTail(x spqr.TreeNodeID, emb *core.Graph, walk []core.AdjID, ge core.EdgeID) core.NodeID {
	for _, a := range walk {
		if a.Edge() == ge {
			return d.tr.OriginalNode(x, emb.NodeOf(a))
		}
	}
	return core.NilNode
}

// buildLists converts the rotations of an embedded skeleton copy into
// per-original-node item lists: real skeleton edges become darts of
// the original graph, virtual ones become placeholders.
func (d *dp) buildLists(x spqr.TreeNodeID, emb *core.Graph) map[core.NodeID][]item {
	g := d.tr.Original()
	lists := make(map[core.NodeID][]item, emb.NumNodes())
	for _, sn := range emb.Nodes() {
		orig := d.tr.OriginalNode(x, sn)
		lst := make([]item, 0, emb.Degree(sn))
		for _, a := range emb.AdjList(sn) {
			se := a.Edge()
			if oe, real := d.tr.OriginalEdge(x, se); real {
				lst = append(lst, item{dart: g.AdjAt(oe, orig)})
			} else {
				lst = append(lst, item{virt: true, owner: x, edge: se})
			}
		}
		lists[orig] = lst
	}
	return lists
}

// markAndQueue records, for every virtual edge the face walk crosses,
// which pole the walk leaves it from, and queues all virtual edges of
// the skeleton except the entry edge.
func (d *dp) markAndQueue(x spqr.TreeNodeID, emb *core.Graph, walk []core.AdjID, entry core.EdgeID, mark map[phKey]core.NodeID, work *[]phKey) {
	for _, a := range walk {
		se := a.Edge()
		if se == entry || !d.tr.IsVirtual(x, se) {
			continue
		}
		mark[phKey{node: x, edge: se}] = d.tr.OriginalNode(x, emb.NodeOf(a))
	}
	for _, se := range d.tr.Skeleton(x).Edges() {
		if se != entry && d.tr.IsVirtual(x, se) {
			*work = append(*work, phKey{node: x, edge: se})
		}
	}
}

// cutAt removes the placeholder for (owner, edge) from one skeleton
// list and rotates the remainder to start right after it.
func cutAt(lst []item, owner spqr.TreeNodeID, edge core.EdgeID) ([]item, error) {
	for i, it := range lst {
		if it.virt && it.owner == owner && it.edge == edge {
			seq := make([]item, 0, len(lst)-1)
			seq = append(seq, lst[i+1:]...)
			seq = append(seq, lst[:i]...)
			return seq, nil
		}
	}
	return nil, fmt.Errorf("%w: twin edge missing from its pole list", ErrInternal)
}

// replacePlaceholder swaps the placeholder for key with seq.
func replacePlaceholder(lst []item, key phKey, seq []item) ([]item, error) {
	for i, it := range lst {
		if it.virt && it.owner == key.node && it.edge == key.edge {
			out := make([]item, 0, len(lst)-1+len(seq))
			out = append(out, lst[:i]...)
			out = append(out, seq...)
			out = append(out, lst[i+1:]...)
			return out, nil
		}
	}
	return nil, fmt.Errorf("%w: placeholder missing from rotation list", ErrInternal)
}
