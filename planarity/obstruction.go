package planarity

import (
	"fmt"

	"github.com/katalvlaran/lvlplanar/bicon"
	"github.com/katalvlaran/lvlplanar/core"
)

// Obstruction records where the sweep over one biconnected component
// got stuck: the component itself, the node whose edge bundle could
// not be made consecutive, and the lower attachment nodes of that
// bundle in sweep order.
type Obstruction struct {
	// Edges and Nodes span the failing biconnected component.
	Edges []core.EdgeID
	Nodes []core.NodeID
	// Failed is the node whose reduction failed.
	Failed core.NodeID
	// Pertinent holds the edges into Failed from already-swept nodes.
	Pertinent []core.EdgeID
	// Attach holds the far endpoints of Pertinent, lowest sweep
	// number first and highest last.
	Attach []core.NodeID
}

// Obstructions returns one record per biconnected component of g on
// which the planarity sweep fails, or nil when g is planar. The graph
// is not modified.
//
// Complexity: O(V * E).
// Errors: ErrNilGraph.
func Obstructions(g *core.Graph) ([]Obstruction, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	var out []Obstruction
	comps, _ := bicon.BiconnectedComponents(g)
	for _, comp := range comps {
		if len(comp.Edges) < 9 {
			// The smallest Kuratowski subdivision has nine edges.
			continue
		}
		h, origNode, origEdge := buildSub(g, comp)
		ob, failed, err := sweepFailure(h)
		if err != nil {
			return nil, fmt.Errorf("planarity: component sweep: %w", err)
		}
		if !failed {
			continue
		}
		rec := Obstruction{
			Edges:  append([]core.EdgeID(nil), comp.Edges...),
			Nodes:  append([]core.NodeID(nil), comp.Nodes...),
			Failed: origNode[ob.Failed],
		}
		for _, e := range ob.Pertinent {
			rec.Pertinent = append(rec.Pertinent, origEdge[e])
		}
		for _, v := range ob.Attach {
			rec.Attach = append(rec.Attach, origNode[v])
		}
		out = append(out, rec)
	}
	return out, nil
}

// sweepFailure runs the reduction sweep on one biconnected loop-free
// graph and reports the first failing step, in sub-graph ids.
func sweepFailure(h *core.Graph) (Obstruction, bool, error) {
	num, err := bicon.STNumbering(h, firstEdge(h))
	if err != nil {
		return Obstruction{}, false, fmt.Errorf("st-numbering: %w", err)
	}
	n := h.NumNodes()
	byNum := make([]core.NodeID, n+1)
	for _, v := range h.Nodes() {
		byNum[num.Get(v)] = v
	}

	tree := newSweepTree(h, num, byNum)
	for k := 2; k <= n; k++ {
		v := byNum[k]
		in := sideKeys(h, num, v, false)
		if !tree.Reduction(in) {
			ob := Obstruction{Failed: v}
			for _, key := range in {
				e := core.EdgeID(key)
				ob.Pertinent = append(ob.Pertinent, e)
				ob.Attach = append(ob.Attach, h.Opposite(e, v))
			}
			sortAttachBySweep(ob.Attach, num)
			return ob, true, nil
		}
		if k < n {
			tree.ReplaceRoot(sideKeys(h, num, v, true), -1)
		}
	}
	return Obstruction{}, false, nil
}

func sortAttachBySweep(attach []core.NodeID, num *core.NodeArray[int]) {
	for i := 1; i < len(attach); i++ {
		for j := i; j > 0 && num.Get(attach[j]) < num.Get(attach[j-1]); j-- {
			attach[j], attach[j-1] = attach[j-1], attach[j]
		}
	}
}
