package cplanar

import (
	"fmt"

	"github.com/katalvlaran/lvlplanar/bicon"
	"github.com/katalvlaran/lvlplanar/cluster"
	"github.com/katalvlaran/lvlplanar/core"
	"github.com/katalvlaran/lvlplanar/planarity"
	"github.com/katalvlaran/lvlplanar/pqtree"
)

// embedder carries the state of one test run: the original graph, the
// pruned overlay copy, and one record per already-abstracted cluster.
type embedder struct {
	g    *core.Graph
	cw   *cluster.Tree
	recs map[cluster.ID]*record
}

// record captures one cluster's abstraction: the induced-plus-sink
// area graph, the id maps back to the original graph, the admissible
// boundary family, and the gadget instances standing in for already
// abstracted child clusters.
type record struct {
	cl   cluster.ID
	h    *core.Graph
	sink core.NodeID

	origNode map[core.NodeID]core.NodeID // area node -> original node
	origEdge map[core.EdgeID]core.EdgeID // area edge -> original edge
	sinkAt   map[core.EdgeID]core.NodeID // original leaving edge -> area node it leaves from
	outs     []core.EdgeID               // original leaving edges, insertion order

	shape pqtree.Shape // boundary family, leaf keys are original edge ids
	insts map[cluster.ID]*gadgetInst
}

// gadgetInst is one placeholder built inside an enclosing area graph.
type gadgetInst struct {
	nodes  map[core.NodeID]bool        // scaffold nodes
	attach map[core.EdgeID]core.NodeID // original leaving edge -> carrying scaffold node
	hub    core.NodeID                 // rigid boundary marker, NilNode for free gadgets
}

// abstract tests one non-root cluster and records its boundary shape.
// A false return means the cluster admits no embedding with all its
// leaving edges on a common face.
func (em *embedder) abstract(c cluster.ID) (bool, error) {
	rec, err := em.buildArea(c, true)
	if err != nil {
		return false, err
	}
	ok, err := planarity.IsPlanar(rec.h)
	if err != nil {
		return false, fmt.Errorf("cplanar: cluster test: %w", err)
	}
	if !ok {
		return false, nil
	}
	shape, ok, err := em.boundaryShape(rec)
	if err != nil || !ok {
		return false, err
	}
	rec.shape = shape
	em.recs[c] = rec
	return true, nil
}

// buildArea assembles the area graph of cluster c: one node per direct
// member, one gadget per child cluster, the original edges among them,
// and, when withSink holds, a super-sink adjacent once per edge
// leaving the cluster's span.
func (em *embedder) buildArea(c cluster.ID, withSink bool) (*record, error) {
	rec := &record{
		cl:       c,
		sink:     core.NilNode,
		origNode: make(map[core.NodeID]core.NodeID),
		origEdge: make(map[core.EdgeID]core.EdgeID),
		sinkAt:   make(map[core.EdgeID]core.NodeID),
		insts:    make(map[cluster.ID]*gadgetInst),
	}
	rec.h = core.NewGraph()

	toArea := make(map[core.NodeID]core.NodeID)
	for _, v := range em.cw.Nodes(c) {
		hv := rec.h.NewNode()
		toArea[v] = hv
		rec.origNode[hv] = v
	}
	for _, ch := range em.cw.Children(c) {
		crec := em.recs[ch]
		if crec == nil {
			return nil, ErrInternal
		}
		rec.insts[ch] = buildGadget(rec.h, crec.shape)
	}

	for _, e := range em.g.Edges() {
		u, v := em.g.Ends(e)
		cu := em.unitOf(c, u)
		cv := em.unitOf(c, v)
		if cu == cluster.Nil && cv == cluster.Nil {
			continue
		}
		if cu == cv && cu != c {
			continue // internal to one child, handled deeper
		}
		hu, err := em.carrier(rec, toArea, cu, u, e)
		if err != nil {
			return nil, err
		}
		hv, err := em.carrier(rec, toArea, cv, v, e)
		if err != nil {
			return nil, err
		}

		if cu == cluster.Nil || cv == cluster.Nil {
			if !withSink {
				return nil, ErrInternal
			}
			inside := hu
			if cu == cluster.Nil {
				inside = hv
			}
			if rec.sink == core.NilNode {
				rec.sink = rec.h.NewNode()
			}
			se, err := rec.h.NewEdge(inside, rec.sink)
			if err != nil {
				return nil, fmt.Errorf("cplanar: area graph: %w", err)
			}
			rec.origEdge[se] = e
			rec.sinkAt[e] = inside
			rec.outs = append(rec.outs, e)
			continue
		}
		he, err := rec.h.NewEdge(hu, hv)
		if err != nil {
			return nil, fmt.Errorf("cplanar: area graph: %w", err)
		}
		rec.origEdge[he] = e
	}
	return rec, nil
}

// unitOf locates node v relative to cluster c: c itself for a direct
// member, the child whose subtree holds v, or Nil when v lies outside
// c's span entirely.
func (em *embedder) unitOf(c cluster.ID, v core.NodeID) cluster.ID {
	x := em.cw.ClusterOf(v)
	if x == c {
		return c
	}
	for x != cluster.Nil {
		p := em.cw.Parent(x)
		if p == c {
			return x
		}
		x = p
	}
	return cluster.Nil
}

// carrier resolves the area node carrying one endpoint of edge e:
// the member's own node, or the scaffold node its child gadget
// reserved for e.
func (em *embedder) carrier(rec *record, toArea map[core.NodeID]core.NodeID, unit cluster.ID, v core.NodeID, e core.EdgeID) (core.NodeID, error) {
	if unit == cluster.Nil {
		return core.NilNode, nil
	}
	if unit == rec.cl {
		return toArea[v], nil
	}
	inst := rec.insts[unit]
	if inst == nil {
		return core.NilNode, ErrInternal
	}
	at, ok := inst.attach[e]
	if !ok {
		return core.NilNode, ErrInternal
	}
	return at, nil
}

// boundaryShape derives the admissible cyclic orders of the leaving
// edges from the area graph: one block per biconnected component at
// the sink, blocks freely permutable, each multi-edge block shaped by
// the PQ-tree surviving its sweep.
func (em *embedder) boundaryShape(rec *record) (pqtree.Shape, bool, error) {
	switch len(rec.outs) {
	case 0:
		return pqtree.Shape{Kind: pqtree.ShapeP, Key: -1}, true, nil
	case 1:
		return pqtree.Shape{Kind: pqtree.ShapeLeaf, Key: int(rec.outs[0])}, true, nil
	case 2:
		// Two leaving edges admit every cyclic order.
		return pqtree.Shape{Kind: pqtree.ShapeP, Key: -1, Children: []pqtree.Shape{
			{Kind: pqtree.ShapeLeaf, Key: int(rec.outs[0])},
			{Kind: pqtree.ShapeLeaf, Key: int(rec.outs[1])},
		}}, true, nil
	}

	comps, _ := bicon.BiconnectedComponents(rec.h)
	var kids []pqtree.Shape
	for _, comp := range comps {
		if !holdsNode(comp.Nodes, rec.sink) {
			continue
		}
		if len(comp.Edges) == 1 {
			// A bridge to the sink is a single free leaf.
			kids = append(kids, pqtree.Shape{Kind: pqtree.ShapeLeaf, Key: int(rec.origEdge[comp.Edges[0]])})
			continue
		}
		sub, subSink, subOrig := buildComp(rec.h, comp, rec.sink)
		shape, ok, err := sinkSweep(sub, subSink)
		if err != nil || !ok {
			return pqtree.Shape{}, false, err
		}
		remapKeys(&shape, func(k int) int {
			return int(rec.origEdge[subOrig[core.EdgeID(k)]])
		})
		kids = append(kids, shape)
	}
	if len(kids) == 1 {
		return kids[0], true, nil
	}
	return pqtree.Shape{Kind: pqtree.ShapeP, Key: -1, Children: kids}, true, nil
}

// sinkSweep runs the PQ-tree sweep over one biconnected component
// along an st-numbering ending at the sink, stopping just before the
// sink itself is reduced. The surviving tree shape is exactly the
// family of admissible linear orders of the sink's incident edges;
// its leaf keys are sub-graph edge ids.
func sinkSweep(h *core.Graph, sink core.NodeID) (pqtree.Shape, bool, error) {
	ref := core.NilEdge
	for _, e := range h.Edges() {
		if h.Target(e) == sink {
			ref = e
			break
		}
	}
	if ref == core.NilEdge {
		return pqtree.Shape{}, false, ErrInternal
	}
	num, err := bicon.STNumbering(h, ref)
	if err != nil {
		return pqtree.Shape{}, false, fmt.Errorf("cplanar: sink sweep: %w", err)
	}
	n := h.NumNodes()
	byNum := make([]core.NodeID, n+1)
	for _, v := range h.Nodes() {
		byNum[num.Get(v)] = v
	}
	if byNum[n] != sink {
		return pqtree.Shape{}, false, ErrInternal
	}

	tree := pqtree.New()
	tree.Initialize(areaKeys(h, num, byNum[1], true))
	for k := 2; k < n; k++ {
		v := byNum[k]
		if !tree.Reduction(areaKeys(h, num, v, false)) {
			return pqtree.Shape{}, false, nil
		}
		tree.ReplaceRoot(areaKeys(h, num, v, true), -1)
	}
	shape, ok := tree.Snapshot()
	if !ok {
		return pqtree.Shape{}, false, ErrInternal
	}
	return shape, true, nil
}

// areaKeys lists the edges at v whose far endpoint has a higher (or
// lower) st-number, as PQ-tree leaf keys in adjacency order.
func areaKeys(h *core.Graph, num *core.NodeArray[int], v core.NodeID, higher bool) []int {
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

// buildComp copies one biconnected component into a fresh graph,
// preserving edge orientation, and reports where the sink landed.
func buildComp(g *core.Graph, comp bicon.Component, sink core.NodeID) (*core.Graph, core.NodeID, map[core.EdgeID]core.EdgeID) {
	h := core.NewGraph(core.WithNodeCapacity(len(comp.Nodes)), core.WithEdgeCapacity(len(comp.Edges)))
	toSub := make(map[core.NodeID]core.NodeID, len(comp.Nodes))
	orig := make(map[core.EdgeID]core.EdgeID, len(comp.Edges))
	for _, v := range comp.Nodes {
		toSub[v] = h.NewNode()
	}
	for _, e := range comp.Edges {
		se, _ := h.NewEdge(toSub[g.Source(e)], toSub[g.Target(e)])
		orig[se] = e
	}
	return h, toSub[sink], orig
}

// remapKeys rewrites every leaf key of the shape in place.
func remapKeys(s *pqtree.Shape, f func(int) int) {
	if s.Kind == pqtree.ShapeLeaf {
		s.Key = f(s.Key)
		return
	}
	for i := range s.Children {
		remapKeys(&s.Children[i], f)
	}
}

func holdsNode(nodes []core.NodeID, v core.NodeID) bool {
	for _, x := range nodes {
		if x == v {
			return true
		}
	}
	return false
}

// buildGadget instantiates the placeholder realizing a boundary
// family inside the enclosing area graph. A P-shape becomes a plain
// node whose contacts permute freely; a Q-shape becomes a hub-and-rim
// wheel whose rim pins the contact order up to reversal.
func buildGadget(h *core.Graph, s pqtree.Shape) *gadgetInst {
	inst := &gadgetInst{
		nodes:  make(map[core.NodeID]bool),
		attach: make(map[core.EdgeID]core.NodeID),
		hub:    core.NilNode,
	}
	switch {
	case s.Kind == pqtree.ShapeLeaf:
		inst.attach[core.EdgeID(s.Key)] = scaffold(h, inst)
	case s.Kind == pqtree.ShapeQ && len(s.Children) > 2:
		hub := scaffold(h, inst)
		inst.hub = hub
		rim := make([]core.NodeID, len(s.Children))
		for i := range s.Children {
			rim[i] = scaffold(h, inst)
			h.NewEdge(hub, rim[i])
		}
		for i := range rim {
			h.NewEdge(rim[i], rim[(i+1)%len(rim)])
		}
		for i, kid := range s.Children {
			placeChild(h, inst, kid, rim[i])
		}
	default:
		center := scaffold(h, inst)
		for _, kid := range s.Children {
			placeChild(h, inst, kid, center)
		}
	}
	return inst
}

// placeChild hangs one inner shape at a gadget node. Nested Q-shapes
// close a rim cycle through the attachment point itself, so the block
// stays contiguous and ordered as seen from there.
func placeChild(h *core.Graph, inst *gadgetInst, s pqtree.Shape, at core.NodeID) {
	switch {
	case s.Kind == pqtree.ShapeLeaf:
		inst.attach[core.EdgeID(s.Key)] = at
	case s.Kind == pqtree.ShapeQ && len(s.Children) > 2:
		hub := scaffold(h, inst)
		rim := make([]core.NodeID, len(s.Children))
		for i := range s.Children {
			rim[i] = scaffold(h, inst)
			h.NewEdge(hub, rim[i])
		}
		for i := 0; i+1 < len(rim); i++ {
			h.NewEdge(rim[i], rim[i+1])
		}
		h.NewEdge(at, rim[0])
		h.NewEdge(at, rim[len(rim)-1])
		for i, kid := range s.Children {
			placeChild(h, inst, kid, rim[i])
		}
	default:
		center := scaffold(h, inst)
		h.NewEdge(at, center)
		for _, kid := range s.Children {
			placeChild(h, inst, kid, center)
		}
	}
}

func scaffold(h *core.Graph, inst *gadgetInst) core.NodeID {
	n := h.NewNode()
	inst.nodes[n] = true
	return n
}
