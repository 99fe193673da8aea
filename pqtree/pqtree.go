// Package pqtree implements the PQ-tree data structure of Booth and
// Lueker, extended with the direction indicators of Chiba, Nishizeki,
// Abe and Ozawa for embedding extraction.
//
// A PQ-tree over a set of leaves represents a family of permutations
// of those leaves: the children of a P-node may be permuted freely,
// the children of a Q-node may only be reversed as a block. Reduction
// restricts the represented family to permutations in which a given
// leaf subset appears consecutively, and fails when no such
// permutation exists. This failure is the detection point used by the
// planarity test built on top of this package.
//
// Direction indicators are transparent pseudo-leaves threaded through
// the tree. Each records the reading direction in force when a leaf
// set was consumed; when an indicator later surfaces in a frontier
// scan it reveals whether that earlier reading agrees or disagrees
// with the current one. Callers use the reports to settle
// adjacency-list reversals after the sweep.
//
// Nodes live in a flat arena addressed by integer index; parent and
// children are indices, and a lazy mirror flag per node stands in for
// the orientation-free sibling links of the original formulation.
//
// The zero Tree is empty; seed it with Initialize.
package pqtree

// kind discriminates arena entries.
type kind uint8

const (
	leafNode kind = iota
	pNode
	qNode
	indicatorNode
)

// label is the transient pertinence state assigned during one
// Reduction call and consumed by ReplaceRoot.
type label uint8

const (
	labelEmpty label = iota
	labelFull
	labelPartial
)

const nilNode = -1

// nodeRec is one arena slot.
type nodeRec struct {
	kind     kind
	parent   int
	children []int // ordered; meaningful for Q-nodes, frontier order for all
	key      int   // leaf: caller key; indicator: vertex tag
	rev      bool  // pending mirror of the whole subtree
	dir      bool  // indicator only: reading direction at creation, rev folded in
	alive    bool

	// per-Reduction state
	label   label
	fullCnt int
}

// Indicator is one direction-indicator report surfaced by a frontier
// scan. Tag is the vertex the indicator was planted for; Opposed is
// true when the reading direction recorded at planting time is the
// reverse of the direction of the scan that consumed it.
type Indicator struct {
	Tag     int
	Opposed bool
}

// Tree is a PQ-tree. Not safe for concurrent use.
type Tree struct {
	nodes   []nodeRec
	free    []int
	root    int
	leafIdx map[int]int // caller key -> arena index
	numLeaf int

	touched  []int // nodes carrying transient reduction state
	pertRoot int   // pertinent root of the last successful Reduction
}

// New returns an empty tree.
func New() *Tree {
	return &Tree{root: nilNode, pertRoot: nilNode, leafIdx: make(map[int]int)}
}

// Initialize seeds the tree with a single P-node whose children are
// the given leaves, in order. A single leaf becomes the root itself.
// Any previous contents are discarded.
//
// Complexity: O(len(keys)).
func (t *Tree) Initialize(keys []int) {
	t.nodes = t.nodes[:0]
	t.free = t.free[:0]
	t.root = nilNode
	t.pertRoot = nilNode
	t.touched = t.touched[:0]
	t.leafIdx = make(map[int]int, len(keys))
	t.numLeaf = 0

	switch len(keys) {
	case 0:
		return
	case 1:
		t.root = t.newLeaf(keys[0], nilNode)
	default:
		t.root = t.alloc(pNode, nilNode)
		for _, k := range keys {
			// newLeaf may grow the arena; take the root pointer after it.
			kid := t.newLeaf(k, t.root)
			t.node(t.root).children = append(t.node(t.root).children, kid)
		}
	}
}

// Empty reports whether the tree holds no leaves.
func (t *Tree) Empty() bool { return t.numLeaf == 0 }

// NumLeaves returns the number of proper leaves (indicators excluded).
func (t *Tree) NumLeaves() int { return t.numLeaf }

func (t *Tree) node(i int) *nodeRec { return &t.nodes[i] }

func (t *Tree) alloc(k kind, parent int) int {
	if n := len(t.free); n > 0 {
		i := t.free[n-1]
		t.free = t.free[:n-1]
		t.nodes[i] = nodeRec{kind: k, parent: parent, key: -1, alive: true}
		return i
	}
	t.nodes = append(t.nodes, nodeRec{kind: k, parent: parent, key: -1, alive: true})
	return len(t.nodes) - 1
}

func (t *Tree) newLeaf(key, parent int) int {
	i := t.alloc(leafNode, parent)
	t.node(i).key = key
	t.leafIdx[key] = i
	t.numLeaf++
	return i
}

func (t *Tree) freeNode(i int) {
	n := t.node(i)
	if n.kind == leafNode {
		delete(t.leafIdx, n.key)
		t.numLeaf--
	}
	n.alive = false
	n.children = nil
	t.free = append(t.free, i)
}

// freeSubtree releases i and everything below it.
func (t *Tree) freeSubtree(i int) {
	stack := []int{i}
	for len(stack) > 0 {
		x := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		stack = append(stack, t.node(x).children...)
		t.freeNode(x)
	}
}

// toggleRev flips the pending mirror of a subtree. On indicators the
// flip folds straight into the direction bit; plain leaves ignore it.
func (t *Tree) toggleRev(i int) {
	n := t.node(i)
	switch n.kind {
	case leafNode:
	case indicatorNode:
		n.dir = !n.dir
	default:
		n.rev = !n.rev
	}
}

// reverseChildren mirrors the stored child order of i. Each child
// inherits a pending mirror so the subtree frontier reverses as a
// whole.
func (t *Tree) reverseChildren(i int) {
	cs := t.node(i).children
	for l, r := 0, len(cs)-1; l < r; l, r = l+1, r-1 {
		cs[l], cs[r] = cs[r], cs[l]
	}
	for _, c := range cs {
		t.toggleRev(c)
	}
}

// pushDown normalizes i: if a mirror is pending, the stored child
// order is rewritten to the true order and the pending flag moves to
// the children.
func (t *Tree) pushDown(i int) {
	n := t.node(i)
	if n.rev {
		n.rev = false
		t.reverseChildren(i)
	}
}

// childPos returns the position of c in its parent's child slice.
func (t *Tree) childPos(parent, c int) int {
	for i, x := range t.node(parent).children {
		if x == c {
			return i
		}
	}
	return -1
}

// spliceChild replaces the child at position pos of parent with the
// given replacement nodes.
func (t *Tree) spliceChild(parent, pos int, repl ...int) {
	n := t.node(parent)
	out := make([]int, 0, len(n.children)-1+len(repl))
	out = append(out, n.children[:pos]...)
	out = append(out, repl...)
	out = append(out, n.children[pos+1:]...)
	n.children = out
	for _, r := range repl {
		t.node(r).parent = parent
	}
}

// Consistent verifies the structural invariants of the arena: parent
// and child links agree, every alive non-root node has an alive
// parent, P- and Q-nodes carry at least two non-indicator children,
// and the leaf index is exact. Intended for tests.
func (t *Tree) Consistent() bool {
	if t.root == nilNode {
		return t.numLeaf == 0
	}
	seenLeaves := 0
	stack := []int{t.root}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := t.node(i)
		if !n.alive {
			return false
		}
		if i == t.root {
			if n.parent != nilNode {
				return false
			}
		} else if n.parent == nilNode || !t.node(n.parent).alive {
			return false
		}
		real := 0
		for _, c := range n.children {
			if t.node(c).parent != i {
				return false
			}
			if t.node(c).kind != indicatorNode {
				real++
			}
			stack = append(stack, c)
		}
		switch n.kind {
		case leafNode:
			if len(n.children) != 0 || t.leafIdx[n.key] != i {
				return false
			}
			seenLeaves++
		case indicatorNode:
			if len(n.children) != 0 {
				return false
			}
		default:
			if real < 2 && i != t.root {
				return false
			}
		}
	}
	return seenLeaves == t.numLeaf
}
