package planarity

import (
	"fmt"

	"github.com/katalvlaran/lvlplanar/bicon"
	"github.com/katalvlaran/lvlplanar/core"
	"github.com/katalvlaran/lvlplanar/pqtree"
)

// embedComponent runs the PQ-tree sweep over one biconnected,
// loop-free graph with at least two edges. It returns the planar
// rotation per node, or ok=false when a reduction fails, which means
// the component is not planar.
func embedComponent(h *core.Graph) (*core.NodeArray[[]core.AdjID], bool, error) {
	ref := firstEdge(h)
	num, err := bicon.STNumbering(h, ref)
	if err != nil {
		return nil, false, fmt.Errorf("st-numbering: %w", err)
	}
	n := h.NumNodes()
	byNum := make([]core.NodeID, n+1)
	for _, v := range h.Nodes() {
		byNum[num.Get(v)] = v
	}

	// Sweep nodes in st-order. Leaves are edge ids; indicator tags
	// are node ids, kept apart by the separate report channel.
	tree := newSweepTree(h, num, byNum)

	upward := core.NewNodeArray[[]core.AdjID](h, nil)
	relTo := core.NewNodeArray(h, core.NilNode)
	relOpp := core.NewNodeArray(h, false)

	for k := 2; k <= n; k++ {
		v := byNum[k]
		if !tree.Reduction(sideKeys(h, num, v, false)) {
			return nil, false, nil
		}
		var frontier []int
		var inds []pqtree.Indicator
		if k < n {
			frontier, inds = tree.ReplaceRoot(sideKeys(h, num, v, true), int(v))
		} else {
			frontier, inds = tree.Frontier()
		}
		up := make([]core.AdjID, 0, len(frontier))
		for _, key := range frontier {
			up = append(up, h.AdjAt(core.EdgeID(key), v))
		}
		upward.Set(v, up)
		for _, ind := range inds {
			u := core.NodeID(ind.Tag)
			relTo.Set(u, v)
			relOpp.Set(u, ind.Opposed)
		}
	}

	// Settle reversals top-down in decreasing st-number: each node's
	// orientation is pinned relative to the node that consumed its
	// indicator, which always carries a higher number.
	flip := core.NewNodeArray(h, false)
	for k := n - 1; k >= 2; k-- {
		v := byNum[k]
		w := relTo.Get(v)
		if w == core.NilNode {
			continue
		}
		flip.Set(v, flip.Get(w) != relOpp.Get(v))
	}
	for _, v := range h.Nodes() {
		if flip.Get(v) {
			reverseDarts(upward.Get(v))
		}
	}

	return entireEmbed(h, upward, byNum[n]), true, nil
}

// entireEmbed completes the upward embedding into a full rotation
// system by a depth-first walk from the sink: scanning each node's
// incoming darts in reverse upward order and prepending the opposite
// darts at their endpoints.
func entireEmbed(h *core.Graph, upward *core.NodeArray[[]core.AdjID], sink core.NodeID) *core.NodeArray[[]core.AdjID] {
	scan := core.NewNodeArray[[]core.AdjID](h, nil)
	push := core.NewNodeArray[[]core.AdjID](h, nil)
	for _, v := range h.Nodes() {
		up := upward.Get(v)
		rev := make([]core.AdjID, len(up))
		for i, a := range up {
			rev[len(up)-1-i] = a
		}
		scan.Set(v, rev)
	}

	mark := core.NewNodeArray(h, false)
	mark.Set(sink, true)
	type frame struct {
		v   core.NodeID
		idx int
	}
	stack := []frame{{sink, 0}}
	for len(stack) > 0 {
		f := &stack[len(stack)-1]
		sc := scan.Get(f.v)
		if f.idx == len(sc) {
			stack = stack[:len(stack)-1]
			continue
		}
		tw := sc[f.idx].Twin()
		f.idx++
		w := h.NodeOf(tw)
		push.Set(w, append(push.Get(w), tw))
		if !mark.Get(w) {
			mark.Set(w, true)
			stack = append(stack, frame{w, 0})
		}
	}

	rot := core.NewNodeArray[[]core.AdjID](h, nil)
	for _, v := range h.Nodes() {
		ps := push.Get(v)
		out := make([]core.AdjID, 0, len(ps)+len(scan.Get(v)))
		for i := len(ps) - 1; i >= 0; i-- {
			out = append(out, ps[i])
		}
		out = append(out, scan.Get(v)...)
		rot.Set(v, out)
	}
	return rot
}

// sideKeys lists the edges at v whose far endpoint has a higher
// (or lower) st-number, as PQ-tree leaf keys in adjacency order.
func sideKeys(h *core.Graph, num *core.NodeArray[int], v core.NodeID, higher bool) []int {
	nv := num.Get(v)
	var keys []int
	for _, a := range h.AdjList(v) {
		w := h.NodeOf(a.Twin())
		if (num.Get(w) > nv) == higher {
			keys = append(keys, int(a.Edge()))
		}
	}
	return keys
}

// newSweepTree seeds a PQ-tree with the out-edges of the lowest
// sweep node.
func newSweepTree(h *core.Graph, num *core.NodeArray[int], byNum []core.NodeID) *pqtree.Tree {
	tree := pqtree.New()
	tree.Initialize(sideKeys(h, num, byNum[1], true))
	return tree
}

func reverseDarts(s []core.AdjID) {
	for l, r := 0, len(s)-1; l < r; l, r = l+1, r-1 {
		s[l], s[r] = s[r], s[l]
	}
}

func firstEdge(h *core.Graph) core.EdgeID {
	for _, e := range h.Edges() {
		return e
	}
	return core.NilEdge
}
