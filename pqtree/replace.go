package pqtree

// ReplaceRoot consumes the pertinent block of the last successful
// Reduction call. It returns the frontier of the block (leaf keys in
// left-to-right reading order) together with every direction
// indicator embedded in it, removes the block from the tree, and
// grafts fresh leaves for newKeys in its place. When tag >= 0 a new
// direction indicator carrying tag is planted beside the graft,
// recording the reading direction of this very call.
//
// The pertinent state is spent afterwards; call Reduction again
// before the next ReplaceRoot.
//
// Complexity: O(pertinent subtree + len(newKeys)).
func (t *Tree) ReplaceRoot(newKeys []int, tag int) (frontier []int, inds []Indicator) {
	r := t.pertRoot
	if r == nilNode {
		return nil, nil
	}
	t.pertRoot = nilNode
	repl := t.buildReplacement(newKeys, tag)

	n := t.node(r)
	if n.label == labelFull || n.kind == leafNode {
		// The whole pertinent subtree goes.
		t.walkCollect(r, &frontier, &inds)
		if r == t.root {
			t.freeSubtree(r)
			switch len(repl) {
			case 0:
				t.root = nilNode
			case 1:
				t.root = repl[0]
				t.node(repl[0]).parent = nilNode
			default:
				t.root = t.alloc(pNode, nilNode)
				t.adopt(t.root, repl)
			}
			return frontier, inds
		}
		parent, pos := n.parent, t.childPos(n.parent, r)
		t.freeSubtree(r)
		t.spliceChild(parent, pos, repl...)
		t.collapseSingle(parent)
		return frontier, inds
	}

	// Partial root: the full run sits directly among r's children,
	// or inside r's lone partial child when r is a P-node.
	target := r
	if n.kind == pNode {
		for _, c := range n.children {
			if t.node(c).label == labelPartial {
				target = c
				break
			}
		}
	}
	frontier, inds = t.replaceRun(target, repl)
	return frontier, inds
}

// buildReplacement allocates the graft: an optional direction
// indicator followed by a leaf, or a P-node over several leaves.
func (t *Tree) buildReplacement(newKeys []int, tag int) []int {
	var repl []int
	if tag >= 0 {
		ind := t.alloc(indicatorNode, nilNode)
		t.node(ind).key = tag
		t.node(ind).dir = true
		repl = append(repl, ind)
	}
	switch len(newKeys) {
	case 0:
	case 1:
		repl = append(repl, t.newLeaf(newKeys[0], nilNode))
	default:
		p := t.alloc(pNode, nilNode)
		for _, k := range newKeys {
			// newLeaf may grow the arena; take the P-node pointer after it.
			kid := t.newLeaf(k, p)
			t.node(p).children = append(t.node(p).children, kid)
		}
		repl = append(repl, p)
	}
	return repl
}

// replaceRun swaps the contiguous run of full children of x (plus any
// indicators touching it) for repl, reporting the removed frontier.
func (t *Tree) replaceRun(x int, repl []int) (frontier []int, inds []Indicator) {
	t.pushDown(x)
	cs := t.node(x).children
	first, last := -1, -1
	for i, c := range cs {
		if t.node(c).label == labelFull && t.node(c).kind != indicatorNode {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 {
		return nil, nil
	}
	for first > 0 && t.node(cs[first-1]).kind == indicatorNode {
		first--
	}
	for last+1 < len(cs) && t.node(cs[last+1]).kind == indicatorNode {
		last++
	}
	for i := first; i <= last; i++ {
		t.walkCollect(cs[i], &frontier, &inds)
	}
	removed := append([]int(nil), cs[first:last+1]...)
	out := make([]int, 0, len(cs)-(last-first+1)+len(repl))
	out = append(out, cs[:first]...)
	out = append(out, repl...)
	out = append(out, cs[last+1:]...)
	t.adopt(x, out)
	for _, c := range removed {
		t.freeSubtree(c)
	}
	t.collapseSingle(x)
	return frontier, inds
}

// collapseSingle splices x away when it is an internal non-root node
// left with a single proper child.
func (t *Tree) collapseSingle(x int) {
	n := t.node(x)
	if n.kind == leafNode || n.kind == indicatorNode || x == t.root {
		return
	}
	real := 0
	for _, c := range n.children {
		if t.node(c).kind != indicatorNode {
			real++
		}
	}
	if real != 1 || n.parent == nilNode {
		return
	}
	parent, pos := n.parent, t.childPos(n.parent, x)
	t.pushDown(x)
	children := n.children
	t.freeNode(x)
	t.spliceChild(parent, pos, children...)
}

// walkCollect appends the frontier of the subtree at x: leaf keys in
// true left-to-right order and indicator reports with their effective
// orientation.
func (t *Tree) walkCollect(x int, keys *[]int, inds *[]Indicator) {
	stack := []int{x}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := t.node(i)
		switch n.kind {
		case leafNode:
			*keys = append(*keys, n.key)
		case indicatorNode:
			*inds = append(*inds, Indicator{Tag: n.key, Opposed: !n.dir})
		default:
			t.pushDown(i)
			for j := len(n.children) - 1; j >= 0; j-- {
				stack = append(stack, n.children[j])
			}
		}
	}
}

// Frontier reads the whole tree left to right, returning every leaf
// key in order plus all remaining direction indicators. The
// indicators are consumed: they are removed from the tree.
//
// Complexity: O(tree size).
func (t *Tree) Frontier() (keys []int, inds []Indicator) {
	if t.root == nilNode {
		return nil, nil
	}
	t.walkCollect(t.root, &keys, &inds)
	if len(inds) > 0 {
		t.dropIndicators()
	}
	return keys, inds
}

// dropIndicators removes every indicator node from the tree.
func (t *Tree) dropIndicators() {
	for i := range t.nodes {
		n := &t.nodes[i]
		if !n.alive || n.kind != indicatorNode || n.parent == nilNode {
			continue
		}
		parent := n.parent
		pos := t.childPos(parent, i)
		t.spliceChild(parent, pos)
		t.freeNode(i)
	}
}

// ResetPertinent discards the transient pertinence state of the last
// Reduction call without touching the tree structure.
func (t *Tree) ResetPertinent() { t.resetPertinent() }

// ShapeKind tags one exported tree node.
type ShapeKind uint8

const (
	ShapeLeaf ShapeKind = iota
	ShapeP
	ShapeQ
)

// Shape is a structural snapshot of the tree with indicators and
// transient state stripped. Key is the leaf key, -1 on inner nodes.
type Shape struct {
	Kind     ShapeKind
	Key      int
	Children []Shape
}

// Snapshot exports the current tree shape, or false when the tree is
// empty. Inner nodes left with one proper child collapse into that
// child.
func (t *Tree) Snapshot() (Shape, bool) {
	if t.root == nilNode {
		return Shape{}, false
	}
	return t.snapshotAt(t.root), true
}

func (t *Tree) snapshotAt(x int) Shape {
	t.pushDown(x)
	n := t.node(x)
	if n.kind == leafNode {
		return Shape{Kind: ShapeLeaf, Key: n.key}
	}
	var kids []Shape
	for _, c := range n.children {
		if t.node(c).kind == indicatorNode {
			continue
		}
		kids = append(kids, t.snapshotAt(c))
	}
	if len(kids) == 1 {
		return kids[0]
	}
	s := Shape{Kind: ShapeP, Key: -1, Children: kids}
	if n.kind == qNode {
		s.Kind = ShapeQ
	}
	return s
}
