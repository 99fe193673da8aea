package cplanar

import (
	"fmt"

	"github.com/katalvlaran/lvlplanar/core"
	"github.com/katalvlaran/lvlplanar/planarity"
)

// task is one cluster awaiting expansion: its record, the embedded
// incarnation of its area graph, and the map from rim-attachment
// edges of that incarnation back to original leaving edges.
type task struct {
	rec      *record
	emb      *core.Graph
	ringOrig map[core.EdgeID]core.EdgeID
}

// expand walks the cluster tree top-down, replacing every placeholder
// by a re-embedding of its cluster's area graph forced to the
// boundary order the parent realized, and collects the final rotation
// of every original node.
func (em *embedder) expand(root *record) (*core.NodeArray[[]core.AdjID], error) {
	rot := core.NewNodeArray[[]core.AdjID](em.g, nil)
	stack := []task{{rec: root, emb: root.h}}
	for len(stack) > 0 {
		tk := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if err := em.harvest(tk, rot); err != nil {
			return nil, err
		}
		for _, ch := range em.cw.Children(tk.rec.cl) {
			inst := tk.rec.insts[ch]
			crec := em.recs[ch]
			if inst == nil || crec == nil {
				return nil, ErrInternal
			}
			realized, err := em.realizedOrder(tk, inst)
			if err != nil {
				return nil, err
			}
			emb, ringOrig, err := em.force(crec, realized)
			if err != nil {
				return nil, err
			}
			stack = append(stack, task{rec: crec, emb: emb, ringOrig: ringOrig})
		}
	}
	return rot, nil
}

// realizedOrder reads the cyclic order of a child cluster's leaving
// edges as the parent's embedding arranged them around the gadget.
func (em *embedder) realizedOrder(tk task, inst *gadgetInst) ([]core.EdgeID, error) {
	exits, err := contour(tk.emb, func(v core.NodeID) bool { return inst.nodes[v] })
	if err != nil {
		return nil, err
	}
	out := make([]core.EdgeID, len(exits))
	for i, a := range exits {
		oe, err := em.resolve(tk, a.Edge())
		if err != nil {
			return nil, err
		}
		out[i] = oe
	}
	return out, nil
}

// resolve maps one edge of an embedded incarnation to its original
// edge. Rim attachments shadow retired sink-edge slots, so their map
// is consulted first.
func (em *embedder) resolve(tk task, he core.EdgeID) (core.EdgeID, error) {
	if oe, ok := tk.ringOrig[he]; ok {
		return oe, nil
	}
	if oe, ok := tk.rec.origEdge[he]; ok {
		return oe, nil
	}
	return core.NilEdge, ErrInternal
}

// force re-embeds one cluster's area graph against the boundary order
// its parent realized. With more than two leaving edges the sink is
// replaced by a rim cycle pinning that order; the embedding is then
// mirrored if its own boundary reading disagrees with the parent's.
func (em *embedder) force(rec *record, realized []core.EdgeID) (*core.Graph, map[core.EdgeID]core.EdgeID, error) {
	if len(realized) != len(rec.outs) {
		return nil, nil, ErrInternal
	}
	h := rec.h.Copy()
	if len(realized) <= 2 {
		// Any cyclic order of at most two contacts is realizable either
		// way round; the plain sink suffices.
		if ok, err := planarity.Embed(h); err != nil {
			return nil, nil, fmt.Errorf("cplanar: cluster embed: %w", err)
		} else if !ok {
			return nil, nil, ErrInternal
		}
		return h, nil, nil
	}

	if err := h.DeleteNode(rec.sink); err != nil {
		return nil, nil, fmt.Errorf("cplanar: cluster embed: %w", err)
	}
	k := len(realized)
	ringOrig := make(map[core.EdgeID]core.EdgeID, k)
	ringNode := make(map[core.NodeID]bool, k)
	rim := make([]core.NodeID, k)
	for i := range rim {
		rim[i] = h.NewNode()
		ringNode[rim[i]] = true
	}
	for i := range rim {
		if _, err := h.NewEdge(rim[i], rim[(i+1)%k]); err != nil {
			return nil, nil, fmt.Errorf("cplanar: cluster embed: %w", err)
		}
	}
	for i, oe := range realized {
		at, ok := rec.sinkAt[oe]
		if !ok {
			return nil, nil, ErrInternal
		}
		ne, err := h.NewEdge(at, rim[i])
		if err != nil {
			return nil, nil, fmt.Errorf("cplanar: cluster embed: %w", err)
		}
		ringOrig[ne] = oe
	}

	if ok, err := planarity.Embed(h); err != nil {
		return nil, nil, fmt.Errorf("cplanar: cluster embed: %w", err)
	} else if !ok {
		// The rim order came out of the gadget's own family, so a planar
		// completion must exist.
		return nil, nil, ErrInternal
	}

	// Both the parent's realized order and the forced reading walk the
	// boundary from the cluster's side, so they must agree as cyclic
	// sequences. A mismatch means the embedding realized the mirror
	// image; reversing every rotation repairs it.
	aligned, err := em.boundaryAligned(h, ringNode, ringOrig, realized)
	if err != nil {
		return nil, nil, err
	}
	if !aligned {
		for _, v := range h.Nodes() {
			if err := h.ReverseOrder(v); err != nil {
				return nil, nil, fmt.Errorf("cplanar: cluster embed: %w", err)
			}
		}
		aligned, err = em.boundaryAligned(h, ringNode, ringOrig, realized)
		if err != nil {
			return nil, nil, err
		}
		if !aligned {
			return nil, nil, ErrInternal
		}
	}
	return h, ringOrig, nil
}

// boundaryAligned reads the cluster-side boundary order of the forced
// embedding and compares it against the order the parent realized.
// Both walks run on the cluster's side of the boundary, so agreement
// means cyclic equality, not reversal.
func (em *embedder) boundaryAligned(h *core.Graph, ringNode map[core.NodeID]bool, ringOrig map[core.EdgeID]core.EdgeID, realized []core.EdgeID) (bool, error) {
	exits, err := contour(h, func(v core.NodeID) bool { return !ringNode[v] })
	if err != nil {
		return false, err
	}
	if len(exits) != len(realized) {
		return false, ErrInternal
	}
	inside := make([]core.EdgeID, len(exits))
	for i, a := range exits {
		oe, ok := ringOrig[a.Edge()]
		if !ok {
			return false, ErrInternal
		}
		inside[i] = oe
	}
	return cyclicEqual(inside, realized), nil
}

// harvest maps the rotation of every direct member of one expanded
// cluster back onto the original graph's darts.
func (em *embedder) harvest(tk task, rot *core.NodeArray[[]core.AdjID]) error {
	for hv, ov := range tk.rec.origNode {
		var (
			lst      []core.AdjID
			loopSeen map[core.EdgeID]bool
		)
		for _, a := range tk.emb.AdjList(hv) {
			oe, err := em.resolve(tk, a.Edge())
			if err != nil {
				return err
			}
			var d core.AdjID
			if em.g.IsLoop(oe) {
				if loopSeen == nil {
					loopSeen = make(map[core.EdgeID]bool)
				}
				if !loopSeen[oe] {
					d = em.g.AdjSource(oe)
					loopSeen[oe] = true
				} else {
					d = em.g.AdjTarget(oe)
				}
			} else {
				d = em.g.AdjAt(oe, ov)
			}
			lst = append(lst, d)
		}
		rot.Set(ov, lst)
	}
	return nil
}

// contour walks once around a node set inside an embedded graph,
// returning the darts leaving the set in boundary order. Collapsing
// everything outside the set to pendant stubs turns the walk into an
// ordinary face traversal; a connected outside puts every leaving
// dart on that one face.
func contour(emb *core.Graph, inSet func(core.NodeID) bool) ([]core.AdjID, error) {
	total := 0
	start := core.NilAdj
	for _, v := range emb.Nodes() {
		if !inSet(v) {
			continue
		}
		for _, a := range emb.AdjList(v) {
			if !inSet(emb.NodeOf(a.Twin())) {
				total++
				if start == core.NilAdj {
					start = a
				}
			}
		}
	}
	if total == 0 {
		return nil, nil
	}

	out := []core.AdjID{start}
	guard := 4*emb.NumEdges() + 4
	b := emb.NextAdj(start)
	for steps := 0; ; steps++ {
		if steps > guard {
			return nil, ErrInternal
		}
		if !inSet(emb.NodeOf(b.Twin())) {
			if b == start {
				break
			}
			out = append(out, b)
			b = emb.NextAdj(b)
			continue
		}
		b = emb.NextAdj(b.Twin())
	}
	if len(out) != total {
		return nil, ErrInternal
	}
	return out, nil
}

// cyclicEqual reports whether a equals b up to cyclic rotation.
func cyclicEqual(a, b []core.EdgeID) bool {
	n := len(a)
	if n != len(b) {
		return false
	}
	if n == 0 {
		return true
	}
	for shift := 0; shift < n; shift++ {
		match := true
		for i := 0; i < n; i++ {
			if a[i] != b[(i+shift)%n] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
