// Package spqr builds SPQR trees: the canonical decomposition of a
// biconnected multigraph into its triconnected components. Every tree
// node carries a small skeleton graph of one of three kinds - S (a
// cycle, a series composition), P (a bond of parallel edges) or R (a
// simple 3-connected graph). Skeleton edges are either real, mapping
// back to one edge of the decomposed graph, or virtual, paired with a
// twin virtual edge in a neighboring skeleton; the twin pair stands
// for the whole component hanging off that join.
//
// The tree is stored arena style: nodes are integer indices into a
// flat slice, twin edges are index pairs, and Consistent verifies the
// twin(twin(x)) == x relation together with the canonical-form rules
// (no two adjacent S nodes, no two adjacent P nodes).
//
// The decomposition is found by a recursive split-pair search rather
// than the linear-time Hopcroft-Tarjan machinery. Skeletons stay
// small, so the quadratic pair scan is a deliberate trade of speed for
// a fraction of the code.
package spqr

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lvlplanar/bicon"
	"github.com/katalvlaran/lvlplanar/core"
)

var (
	// ErrNilGraph is returned when Build receives a nil graph.
	ErrNilGraph = errors.New("spqr: nil graph")
	// ErrNotBiconnected is returned when the graph is not biconnected
	// or carries self-loops.
	ErrNotBiconnected = errors.New("spqr: graph must be biconnected without self-loops")
	// ErrTooSmall is returned for graphs with fewer than three edges,
	// which have no SPQR decomposition.
	ErrTooSmall = errors.New("spqr: graph must have at least three edges")
)

// NodeKind tags the skeleton shape of one tree node.
type NodeKind uint8

const (
	// SNode skeletons are cycles (series compositions).
	SNode NodeKind = iota
	// PNode skeletons are bonds: two poles joined by parallel edges.
	PNode
	// RNode skeletons are simple 3-connected graphs.
	RNode
)

// String implements fmt.Stringer.
func (k NodeKind) String() string {
	switch k {
	case SNode:
		return "S"
	case PNode:
		return "P"
	case RNode:
		return "R"
	}
	return fmt.Sprintf("NodeKind(%d)", uint8(k))
}

// TreeNodeID indexes one tree node inside a Tree.
type TreeNodeID int

// NilTreeNode is the absent tree node.
const NilTreeNode TreeNodeID = -1

// Twin names the other end of a virtual edge pair: the neighboring
// tree node and the virtual edge inside its skeleton.
type Twin struct {
	Node TreeNodeID
	Edge core.EdgeID
}

// skeleton is one arena slot of the tree.
type skeleton struct {
	kind     NodeKind
	g        *core.Graph
	origNode []core.NodeID // skeleton node -> original node
	origEdge []core.EdgeID // skeleton edge -> original edge, NilEdge when virtual
	twin     []Twin        // skeleton edge -> twin, Node == NilTreeNode when real
	parent   TreeNodeID
	ref      core.EdgeID // virtual edge toward parent, NilEdge at the root
	children []TreeNodeID
}

// Tree is the SPQR tree of one biconnected graph. The original graph
// is referenced, never mutated.
type Tree struct {
	orig     *core.Graph
	nodes    []skeleton
	root     TreeNodeID
	edgeHome []TreeNodeID  // original edge -> owning tree node
	edgeSkel []core.EdgeID // original edge -> its skeleton edge there
}

// Build decomposes g into its SPQR tree. The tree is rooted at the
// node owning the lowest-numbered edge of g; Reroot moves the root.
//
// Errors: ErrNilGraph, ErrTooSmall, ErrNotBiconnected.
// Complexity: O(V^2 * (V+E)) from the split-pair search.
func Build(g *core.Graph) (*Tree, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if g.NumEdges() < 3 {
		return nil, ErrTooSmall
	}
	for _, e := range g.Edges() {
		if g.IsLoop(e) {
			return nil, ErrNotBiconnected
		}
	}
	if !bicon.IsBiconnected(g) {
		return nil, ErrNotBiconnected
	}

	d := &decomposer{}
	all := make([]protoEdge, 0, g.NumEdges())
	for _, e := range g.Edges() {
		all = append(all, protoEdge{u: g.Source(e), v: g.Target(e), orig: e, link: -1})
	}
	d.work = append(d.work, all)
	d.run()
	d.mergeSeries()

	t := d.materialize(g)
	t.Reroot(t.edgeHome[g.Edges()[0]])
	return t, nil
}

// NumNodes returns the number of tree nodes.
func (t *Tree) NumNodes() int { return len(t.nodes) }

// Root returns the current root node.
func (t *Tree) Root() TreeNodeID { return t.root }

// Original returns the decomposed graph.
func (t *Tree) Original() *core.Graph { return t.orig }

// Kind returns the skeleton kind of x.
func (t *Tree) Kind(x TreeNodeID) NodeKind { return t.nodes[x].kind }

// Skeleton returns the skeleton graph of x. Callers must not mutate
// it.
func (t *Tree) Skeleton(x TreeNodeID) *core.Graph { return t.nodes[x].g }

// Parent returns the parent of x, NilTreeNode at the root.
func (t *Tree) Parent(x TreeNodeID) TreeNodeID { return t.nodes[x].parent }

// Children returns the children of x under the current rooting.
func (t *Tree) Children(x TreeNodeID) []TreeNodeID { return t.nodes[x].children }

// Reference returns the virtual skeleton edge of x leading toward its
// parent, NilEdge at the root.
func (t *Tree) Reference(x TreeNodeID) core.EdgeID { return t.nodes[x].ref }

// IsVirtual reports whether skeleton edge e of x is virtual.
func (t *Tree) IsVirtual(x TreeNodeID, e core.EdgeID) bool {
	return t.nodes[x].twin[e].Node != NilTreeNode
}

// TwinOf returns the twin of virtual skeleton edge e of x.
func (t *Tree) TwinOf(x TreeNodeID, e core.EdgeID) (Twin, bool) {
	tw := t.nodes[x].twin[e]
	return tw, tw.Node != NilTreeNode
}

// OriginalEdge maps a real skeleton edge of x back to the original
// graph; ok is false on virtual edges.
func (t *Tree) OriginalEdge(x TreeNodeID, e core.EdgeID) (core.EdgeID, bool) {
	oe := t.nodes[x].origEdge[e]
	return oe, oe != core.NilEdge
}

// OriginalNode maps a skeleton node of x back to the original graph.
func (t *Tree) OriginalNode(x TreeNodeID, v core.NodeID) core.NodeID {
	return t.nodes[x].origNode[v]
}

// FindNodeOf returns the tree node whose skeleton owns the original
// edge e as a real edge, together with that skeleton edge.
func (t *Tree) FindNodeOf(e core.EdgeID) (TreeNodeID, core.EdgeID) {
	return t.edgeHome[e], t.edgeSkel[e]
}

// Reroot re-hangs the tree from r, recomputing parents, children and
// reference edges. Skeletons and twin links are untouched.
// Complexity: O(tree size).
func (t *Tree) Reroot(r TreeNodeID) {
	t.root = r
	for i := range t.nodes {
		t.nodes[i].parent = NilTreeNode
		t.nodes[i].ref = core.NilEdge
		t.nodes[i].children = t.nodes[i].children[:0]
	}
	seen := make([]bool, len(t.nodes))
	seen[r] = true
	queue := []TreeNodeID{r}
	for len(queue) > 0 {
		x := queue[0]
		queue = queue[1:]
		for _, tw := range t.nodes[x].twin {
			if tw.Node == NilTreeNode || seen[tw.Node] {
				continue
			}
			seen[tw.Node] = true
			t.nodes[tw.Node].parent = x
			t.nodes[tw.Node].ref = tw.Edge
			t.nodes[x].children = append(t.nodes[x].children, tw.Node)
			queue = append(queue, tw.Node)
		}
	}
}

// Consistent verifies the structural invariants of the tree: twin
// pairs are mutual, reference edges point at parents, every original
// edge lives in exactly one skeleton, the tree is connected and
// canonical (no two adjacent S nodes, no two adjacent P nodes).
func (t *Tree) Consistent() error {
	realSeen := make(map[core.EdgeID]bool, t.orig.NumEdges())
	reached := make([]bool, len(t.nodes))
	reached[t.root] = true
	stack := []TreeNodeID{t.root}
	for len(stack) > 0 {
		x := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, tw := range t.nodes[x].twin {
			if tw.Node != NilTreeNode && !reached[tw.Node] {
				reached[tw.Node] = true
				stack = append(stack, tw.Node)
			}
		}
	}
	for x, ok := range reached {
		if !ok {
			return fmt.Errorf("spqr: node %d unreachable from the root", x)
		}
	}
	for x := range t.nodes {
		n := &t.nodes[x]
		switch n.kind {
		case SNode:
			if n.g.NumEdges() < 3 || n.g.NumEdges() != n.g.NumNodes() {
				return fmt.Errorf("spqr: node %d: S skeleton is not a cycle", x)
			}
		case PNode:
			if n.g.NumNodes() != 2 || n.g.NumEdges() < 3 {
				return fmt.Errorf("spqr: node %d: P skeleton is not a bond of >=3 edges", x)
			}
		case RNode:
			if n.g.NumNodes() < 4 {
				return fmt.Errorf("spqr: node %d: R skeleton too small", x)
			}
		}
		for _, se := range n.g.Edges() {
			tw := n.twin[se]
			if tw.Node == NilTreeNode {
				oe := n.origEdge[se]
				if realSeen[oe] {
					return fmt.Errorf("spqr: original edge %d appears twice", oe)
				}
				realSeen[oe] = true
				if t.edgeHome[oe] != TreeNodeID(x) || t.edgeSkel[oe] != se {
					return fmt.Errorf("spqr: edge home of %d is stale", oe)
				}
				continue
			}
			back := t.nodes[tw.Node].twin[tw.Edge]
			if back.Node != TreeNodeID(x) || back.Edge != se {
				return fmt.Errorf("spqr: twin of twin of edge %d in node %d differs", se, x)
			}
			if t.nodes[tw.Node].kind == n.kind && n.kind != RNode {
				return fmt.Errorf("spqr: adjacent %v nodes %d and %d", n.kind, x, tw.Node)
			}
		}
		if n.parent != NilTreeNode {
			tw := n.twin[n.ref]
			if tw.Node != n.parent {
				return fmt.Errorf("spqr: reference edge of node %d does not reach its parent", x)
			}
		} else if TreeNodeID(x) != t.root {
			return fmt.Errorf("spqr: node %d is parentless but not the root", x)
		}
	}
	if len(realSeen) != t.orig.NumEdges() {
		return fmt.Errorf("spqr: %d of %d original edges placed", len(realSeen), t.orig.NumEdges())
	}
	return nil
}
