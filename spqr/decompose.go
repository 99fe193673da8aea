package spqr

import (
	"sort"

	"github.com/katalvlaran/lvlplanar/core"
)

// protoEdge is one edge of an intermediate component, expressed over
// original node ids. Virtual edges carry a pairing link instead of an
// original edge.
type protoEdge struct {
	u, v core.NodeID
	orig core.EdgeID // NilEdge when virtual
	link int         // twin pairing id, -1 when real
}

// proto is one finished decomposition component awaiting
// materialization.
type proto struct {
	kind NodeKind
	edge []protoEdge
	dead bool // absorbed by a series merge
}

// decomposer carries the worklist split-pair recursion. Components are
// processed iteratively; each step either emits a proto node or splits
// the component at a split pair into strictly smaller pieces.
type decomposer struct {
	work     [][]protoEdge
	protos   []proto
	nextLink int
}

func (d *decomposer) link() int {
	l := d.nextLink
	d.nextLink++
	return l
}

func (d *decomposer) run() {
	for len(d.work) > 0 {
		c := d.work[len(d.work)-1]
		d.work = d.work[:len(d.work)-1]
		d.classify(c)
	}
}

// classify emits c as a tree component or splits it further.
func (d *decomposer) classify(c []protoEdge) {
	ns := nodesOf(c)
	if len(ns) == 2 {
		d.protos = append(d.protos, proto{kind: PNode, edge: c})
		return
	}
	if isCycle(c, ns) {
		d.protos = append(d.protos, proto{kind: SNode, edge: c})
		return
	}
	if u, v, ok := parallelPair(c); ok {
		d.split(c, ns, u, v)
		return
	}
	if u, v, ok := separationPair(c, ns); ok {
		d.split(c, ns, u, v)
		return
	}
	// Simple, more than a cycle, no separation pair: 3-connected.
	d.protos = append(d.protos, proto{kind: RNode, edge: c})
}

// nodesOf lists the distinct endpoints of c in ascending order.
func nodesOf(c []protoEdge) []core.NodeID {
	set := make(map[core.NodeID]bool, len(c))
	for _, pe := range c {
		set[pe.u] = true
		set[pe.v] = true
	}
	ns := make([]core.NodeID, 0, len(set))
	for v := range set {
		ns = append(ns, v)
	}
	sort.Slice(ns, func(i, j int) bool { return ns[i] < ns[j] })
	return ns
}

// isCycle reports whether the connected component c is a simple cycle:
// every endpoint has degree exactly two.
func isCycle(c []protoEdge, ns []core.NodeID) bool {
	deg := make(map[core.NodeID]int, len(ns))
	for _, pe := range c {
		deg[pe.u]++
		deg[pe.v]++
	}
	for _, v := range ns {
		if deg[v] != 2 {
			return false
		}
	}
	return true
}

// parallelPair finds two endpoints joined by more than one edge.
func parallelPair(c []protoEdge) (core.NodeID, core.NodeID, bool) {
	seen := make(map[[2]core.NodeID]bool, len(c))
	for _, pe := range c {
		k := normPair(pe.u, pe.v)
		if seen[k] {
			return k[0], k[1], true
		}
		seen[k] = true
	}
	return 0, 0, false
}

func normPair(u, v core.NodeID) [2]core.NodeID {
	if u > v {
		u, v = v, u
	}
	return [2]core.NodeID{u, v}
}

// separationPair searches every node pair {u,v} for one whose removal
// disconnects the rest of c. Deterministic: the lexicographically
// first pair wins.
// Complexity: O(|ns|^2 * |c|).
func separationPair(c []protoEdge, ns []core.NodeID) (core.NodeID, core.NodeID, bool) {
	for i := 0; i < len(ns); i++ {
		for j := i + 1; j < len(ns); j++ {
			u, v := ns[i], ns[j]
			if countParts(c, ns, u, v) >= 2 {
				return u, v, true
			}
		}
	}
	return 0, 0, false
}

// countParts counts the connected components of c with u and v
// removed.
func countParts(c []protoEdge, ns []core.NodeID, u, v core.NodeID) int {
	comp := splitComponents(c, ns, u, v)
	max := -1
	for _, i := range comp {
		if i > max {
			max = i
		}
	}
	return max + 1
}

// splitComponents labels every node outside {u,v} with the index of
// its connected component in c - {u,v}. Labels follow ascending node
// order, so the labeling is deterministic.
func splitComponents(c []protoEdge, ns []core.NodeID, u, v core.NodeID) map[core.NodeID]int {
	adj := make(map[core.NodeID][]core.NodeID, len(ns))
	for _, pe := range c {
		if pe.u == u || pe.u == v || pe.v == u || pe.v == v {
			continue
		}
		adj[pe.u] = append(adj[pe.u], pe.v)
		adj[pe.v] = append(adj[pe.v], pe.u)
	}
	comp := make(map[core.NodeID]int, len(ns))
	next := 0
	for _, s := range ns {
		if s == u || s == v {
			continue
		}
		if _, done := comp[s]; done {
			continue
		}
		comp[s] = next
		stack := []core.NodeID{s}
		for len(stack) > 0 {
			x := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, y := range adj[x] {
				if _, done := comp[y]; !done {
					comp[y] = next
					stack = append(stack, y)
				}
			}
		}
		next++
	}
	return comp
}

// split cuts c at the split pair {u,v}. Direct u-v edges and one
// virtual edge per remaining component form a bond; each component
// recurses with its own virtual edge attached. With exactly two
// components and no direct edges the bond is spurious and the two
// virtual edges are twinned with each other instead.
func (d *decomposer) split(c []protoEdge, ns []core.NodeID, u, v core.NodeID) {
	comp := splitComponents(c, ns, u, v)
	var direct []protoEdge
	var parts [][]protoEdge
	at := func(pe protoEdge) int {
		if pe.u != u && pe.u != v {
			return comp[pe.u]
		}
		return comp[pe.v]
	}
	for _, pe := range c {
		if (pe.u == u || pe.u == v) && (pe.v == u || pe.v == v) {
			direct = append(direct, pe)
			continue
		}
		i := at(pe)
		for len(parts) <= i {
			parts = append(parts, nil)
		}
		parts[i] = append(parts[i], pe)
	}

	if len(direct) == 0 && len(parts) == 2 {
		l := d.link()
		parts[0] = append(parts[0], protoEdge{u: u, v: v, orig: core.NilEdge, link: l})
		parts[1] = append(parts[1], protoEdge{u: u, v: v, orig: core.NilEdge, link: l})
		d.work = append(d.work, parts[0], parts[1])
		return
	}

	bond := append([]protoEdge(nil), direct...)
	for i := range parts {
		l := d.link()
		bond = append(bond, protoEdge{u: u, v: v, orig: core.NilEdge, link: l})
		parts[i] = append(parts[i], protoEdge{u: u, v: v, orig: core.NilEdge, link: l})
		d.work = append(d.work, parts[i])
	}
	d.protos = append(d.protos, proto{kind: PNode, edge: bond})
}

// linkEnd locates one occurrence of a virtual link.
type linkEnd struct {
	proto int
	idx   int
}

func (d *decomposer) linkEnds() map[int][]linkEnd {
	ends := make(map[int][]linkEnd, d.nextLink)
	for pi := range d.protos {
		if d.protos[pi].dead {
			continue
		}
		for ei, pe := range d.protos[pi].edge {
			if pe.link >= 0 {
				ends[pe.link] = append(ends[pe.link], linkEnd{proto: pi, idx: ei})
			}
		}
	}
	return ends
}

// mergeSeries fuses adjacent S components into one larger cycle until
// the tree is canonical. Splitting never produces adjacent bonds, so
// only the S-S rule needs enforcing.
func (d *decomposer) mergeSeries() {
	for {
		ends := d.linkEnds()
		merged := false
		for l := 0; l < d.nextLink && !merged; l++ {
			pair, ok := ends[l]
			if !ok {
				continue
			}
			a, b := pair[0], pair[1]
			if d.protos[a.proto].kind != SNode || d.protos[b.proto].kind != SNode {
				continue
			}
			fused := make([]protoEdge, 0,
				len(d.protos[a.proto].edge)+len(d.protos[b.proto].edge)-2)
			for i, pe := range d.protos[a.proto].edge {
				if i != a.idx {
					fused = append(fused, pe)
				}
			}
			for i, pe := range d.protos[b.proto].edge {
				if i != b.idx {
					fused = append(fused, pe)
				}
			}
			d.protos[a.proto].edge = fused
			d.protos[b.proto].dead = true
			merged = true
		}
		if !merged {
			return
		}
	}
}

// materialize turns the surviving protos into skeleton graphs and twin
// links over a fresh Tree.
func (d *decomposer) materialize(g *core.Graph) *Tree {
	t := &Tree{
		orig:     g,
		root:     NilTreeNode,
		edgeHome: make([]TreeNodeID, g.EdgeCap()),
		edgeSkel: make([]core.EdgeID, g.EdgeCap()),
	}
	for i := range t.edgeHome {
		t.edgeHome[i] = NilTreeNode
		t.edgeSkel[i] = core.NilEdge
	}

	id := make([]TreeNodeID, len(d.protos))
	type end struct {
		node TreeNodeID
		edge core.EdgeID
	}
	ends := make(map[int][]end, d.nextLink)

	for pi := range d.protos {
		p := &d.protos[pi]
		if p.dead {
			id[pi] = NilTreeNode
			continue
		}
		x := TreeNodeID(len(t.nodes))
		id[pi] = x

		sk := skeleton{
			kind:   p.kind,
			g:      core.NewGraph(),
			parent: NilTreeNode,
			ref:    core.NilEdge,
		}
		toSkel := make(map[core.NodeID]core.NodeID)
		for _, on := range nodesOf(p.edge) {
			sn := sk.g.NewNode()
			toSkel[on] = sn
			sk.origNode = append(sk.origNode, on)
		}
		for _, pe := range p.edge {
			// Both endpoints were created just above; NewEdge cannot fail.
			se, _ := sk.g.NewEdge(toSkel[pe.u], toSkel[pe.v])
			sk.origEdge = append(sk.origEdge, pe.orig)
			sk.twin = append(sk.twin, Twin{Node: NilTreeNode, Edge: core.NilEdge})
			if pe.link >= 0 {
				ends[pe.link] = append(ends[pe.link], end{node: x, edge: se})
			} else {
				t.edgeHome[pe.orig] = x
				t.edgeSkel[pe.orig] = se
			}
		}
		t.nodes = append(t.nodes, sk)
	}

	for _, pair := range ends {
		a, b := pair[0], pair[1]
		t.nodes[a.node].twin[a.edge] = Twin{Node: b.node, Edge: b.edge}
		t.nodes[b.node].twin[b.edge] = Twin{Node: a.node, Edge: a.edge}
	}
	return t
}
