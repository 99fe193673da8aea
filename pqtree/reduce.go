package pqtree

// Reduction restricts the tree so that the leaves with the given keys
// are consecutive in every represented permutation. It returns false
// the moment some pertinent node cannot be rearranged into one of the
// canonical template patterns; the tree is then left mid-restructure
// and only Initialize may be called on it again. Unknown keys also
// yield false. An empty key set is vacuously true.
//
// Structural sharing: a successful call reparents and merges nodes
// freely. Callers must not retain node-derived state across calls;
// only leaf keys are stable.
//
// Complexity: O(tree size) per call.
func (t *Tree) Reduction(keys []int) bool {
	if len(keys) == 0 {
		return true
	}
	if t.root == nilNode {
		return false
	}
	t.resetPertinent()

	// 1. Mark the pertinent leaves.
	m := 0
	for _, k := range keys {
		i, ok := t.leafIdx[k]
		if !ok {
			return false
		}
		n := t.node(i)
		if n.fullCnt == 0 {
			n.label = labelFull
			n.fullCnt = 1
			t.touched = append(t.touched, i)
			m++
		}
	}

	// 2. Accumulate pertinent-leaf counts bottom-up over the whole
	// tree (post-order via reversed pre-order).
	order := t.preOrder(t.root)
	for i := len(order) - 1; i >= 0; i-- {
		x := order[i]
		n := t.node(x)
		if n.kind == leafNode || n.kind == indicatorNode {
			continue
		}
		sum := 0
		for _, c := range n.children {
			sum += t.node(c).fullCnt
		}
		if sum > 0 {
			n.fullCnt = sum
			t.touched = append(t.touched, x)
		}
	}

	// 3. Descend to the pertinent root: the deepest node whose
	// subtree holds every marked leaf.
	root := t.root
	for {
		next := nilNode
		for _, c := range t.node(root).children {
			if t.node(c).fullCnt == m {
				next = c
				break
			}
		}
		if next == nilNode {
			break
		}
		root = next
	}
	t.pertRoot = root

	// 4. Apply templates bottom-up across the pertinent subtree.
	for _, x := range t.postOrderPertinent(root) {
		n := t.node(x)
		if !n.alive || n.kind == leafNode || n.kind == indicatorNode {
			continue
		}
		var ok bool
		if n.kind == pNode {
			ok = t.templateP(x, x == root)
		} else {
			ok = t.templateQ(x, x == root)
		}
		if !ok {
			return false
		}
	}
	return true
}

// resetPertinent clears the transient labels and counters written by
// the previous Reduction call.
func (t *Tree) resetPertinent() {
	for _, i := range t.touched {
		n := t.node(i)
		n.label = labelEmpty
		n.fullCnt = 0
	}
	t.touched = t.touched[:0]
	t.pertRoot = nilNode
}

// preOrder lists the subtree of x, parents before children.
func (t *Tree) preOrder(x int) []int {
	out := make([]int, 0, len(t.nodes))
	stack := []int{x}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, i)
		stack = append(stack, t.node(i).children...)
	}
	return out
}

// postOrderPertinent lists the pertinent internal nodes under root,
// children before parents.
func (t *Tree) postOrderPertinent(root int) []int {
	pre := t.preOrder(root)
	out := make([]int, 0, len(pre))
	for i := len(pre) - 1; i >= 0; i-- {
		x := pre[i]
		n := t.node(x)
		if n.fullCnt > 0 && n.kind != leafNode && n.kind != indicatorNode {
			out = append(out, x)
		}
	}
	return out
}

// partitionP splits the children of a normalized P-node by label.
func (t *Tree) partitionP(x int) (empties, fulls, partials, inds []int) {
	for _, c := range t.node(x).children {
		n := t.node(c)
		switch {
		case n.kind == indicatorNode:
			inds = append(inds, c)
		case n.label == labelFull:
			fulls = append(fulls, c)
		case n.label == labelPartial:
			partials = append(partials, c)
		default:
			empties = append(empties, c)
		}
	}
	return empties, fulls, partials, inds
}

// groupP wraps nodes under a fresh P-node when there is more than
// one, reparenting them; a single node is returned as is.
func (t *Tree) groupP(nodes []int, lab label) int {
	if len(nodes) == 1 {
		return nodes[0]
	}
	g := t.alloc(pNode, nilNode)
	t.node(g).children = append(t.node(g).children, nodes...)
	for _, c := range nodes {
		t.node(c).parent = g
	}
	if lab != labelEmpty {
		t.node(g).label = lab
		t.touched = append(t.touched, g)
	}
	return g
}

// orientPartial normalizes a partial Q-node so that its empty side is
// leftmost (emptyFirst) or rightmost.
func (t *Tree) orientPartial(q int, emptyFirst bool) {
	t.pushDown(q)
	for _, c := range t.node(q).children {
		n := t.node(c)
		if n.kind == indicatorNode {
			continue
		}
		if (n.label == labelEmpty) != emptyFirst {
			t.reverseChildren(q)
		}
		return
	}
}

// adopt rewires x to own exactly the given children.
func (t *Tree) adopt(x int, children []int) {
	t.node(x).children = children
	for _, c := range children {
		t.node(c).parent = x
	}
}

// markPartial labels x partial for the enclosing reduction.
func (t *Tree) markPartial(x int) {
	n := t.node(x)
	if n.label != labelPartial {
		n.label = labelPartial
		if n.fullCnt == 0 {
			t.touched = append(t.touched, x)
		}
	}
}

// templateP applies the P-node templates. isRoot selects the
// pertinent-root variants, which may leave the pertinent leaves as an
// interior block rather than at one end.
func (t *Tree) templateP(x int, isRoot bool) bool {
	t.pushDown(x)
	empties, fulls, partials, inds := t.partitionP(x)
	e, f, p := len(empties), len(fulls), len(partials)

	// All children full: the node is full as a whole.
	if p == 0 && e == 0 {
		t.node(x).label = labelFull
		return true
	}

	if !isRoot {
		switch p {
		case 0:
			if f == 0 {
				return true // nothing pertinent beneath after all
			}
			// Some full, some empty: split into a two-sided Q.
			es := t.groupP(empties, labelEmpty)
			fs := t.groupP(fulls, labelFull)
			t.node(x).kind = qNode
			t.adopt(x, append(append([]int{es}, inds...), fs))
			t.markPartial(x)
			return true
		case 1:
			// One partial child: absorb everything into its Q.
			q := partials[0]
			t.orientPartial(q, true)
			merged := make([]int, 0, e+f+p+len(inds)+len(t.node(q).children))
			if e > 0 {
				merged = append(merged, t.groupP(empties, labelEmpty))
			}
			merged = append(merged, t.node(q).children...)
			merged = append(merged, inds...)
			if f > 0 {
				merged = append(merged, t.groupP(fulls, labelFull))
			}
			t.node(x).kind = qNode
			t.adopt(x, merged)
			t.freeNode(q)
			t.markPartial(x)
			return true
		}
		return false
	}

	switch p {
	case 0:
		// Pertinent root with fulls and empties: bundle the fulls so
		// the replacement step sees one block.
		fs := t.groupP(fulls, labelFull)
		t.adopt(x, append(append(append([]int{}, empties...), inds...), fs))
		t.markPartial(x)
		return true
	case 1:
		q := partials[0]
		t.orientPartial(q, true)
		if f > 0 {
			qc := append(t.node(q).children, inds...)
			qc = append(qc, t.groupP(fulls, labelFull))
			t.adopt(q, qc)
			t.adopt(x, append(append([]int{}, empties...), q))
		} else {
			t.adopt(x, append(append(append([]int{}, empties...), inds...), q))
		}
		t.markPartial(x)
		return true
	case 2:
		// Two partial children merge around the full block.
		q1, q2 := partials[0], partials[1]
		t.orientPartial(q1, true)
		t.orientPartial(q2, false)
		merged := append(t.node(q1).children, inds...)
		if f > 0 {
			merged = append(merged, t.groupP(fulls, labelFull))
		}
		merged = append(merged, t.node(q2).children...)
		t.adopt(q1, merged)
		t.freeNode(q2)
		if e == 0 {
			t.node(x).kind = qNode
			t.adopt(x, t.node(q1).children)
			t.freeNode(q1)
		} else {
			t.adopt(x, append(append([]int{}, empties...), q1))
		}
		t.markPartial(x)
		return true
	}
	return false
}

// templateQ applies the Q-node templates. Indicators are transparent
// to the pattern scan.
func (t *Tree) templateQ(x int, isRoot bool) bool {
	t.pushDown(x)
	n := t.node(x)

	real := make([]int, 0, len(n.children))
	for _, c := range n.children {
		if t.node(c).kind != indicatorNode {
			real = append(real, c)
		}
	}
	allFull := true
	for _, c := range real {
		if t.node(c).label != labelFull {
			allFull = false
			break
		}
	}
	if allFull {
		n.label = labelFull
		return true
	}

	if !isRoot {
		// Need empty* partial? full* in one of the two directions.
		if !t.matchesSided(real) {
			t.reverseChildren(x)
			real = real[:0]
			for _, c := range n.children {
				if t.node(c).kind != indicatorNode {
					real = append(real, c)
				}
			}
			if !t.matchesSided(real) {
				return false
			}
		}
		for _, c := range real {
			if t.node(c).label == labelPartial {
				t.orientPartial(c, true)
				t.flatten(x, c)
				break
			}
		}
		t.markPartial(x)
		return true
	}

	// Root pattern: empties flanking one contiguous pertinent block,
	// with at most one partial on each flank of the full run.
	var partials []int
	firstFull, lastFull := -1, -1
	for i, c := range real {
		switch t.node(c).label {
		case labelPartial:
			partials = append(partials, c)
		case labelFull:
			if firstFull < 0 {
				firstFull = i
			}
			lastFull = i
		}
	}
	if len(partials) > 2 {
		return false
	}
	if firstFull >= 0 {
		for i := firstFull; i <= lastFull; i++ {
			if t.node(real[i]).label == labelEmpty {
				return false
			}
		}
		for _, q := range partials {
			pos := t.posIn(real, q)
			if pos != firstFull-1 && pos != lastFull+1 {
				return false
			}
		}
	} else if len(partials) == 2 {
		if t.posIn(real, partials[1])-t.posIn(real, partials[0]) != 1 {
			return false
		}
	}
	// Flatten the flanking partials so the full run sits directly in
	// this node's child list.
	for _, q := range partials {
		leftOfRun := firstFull < 0 || t.posIn(real, q) < firstFull
		if firstFull < 0 && q == partials[len(partials)-1] {
			leftOfRun = false
		}
		t.orientPartial(q, leftOfRun)
		t.flatten(x, q)
	}
	t.markPartial(x)
	return true
}

// matchesSided reports whether the labels of real read as
// empty* partial? full* left to right.
func (t *Tree) matchesSided(real []int) bool {
	const (
		stEmpty = iota
		stPartial
		stFull
	)
	state := stEmpty
	for _, c := range real {
		switch t.node(c).label {
		case labelEmpty:
			if state != stEmpty {
				return false
			}
		case labelPartial:
			if state != stEmpty {
				return false
			}
			state = stPartial
		case labelFull:
			state = stFull
		}
	}
	return true
}

// flatten replaces child q of x with q's own children, in order.
func (t *Tree) flatten(x, q int) {
	pos := t.childPos(x, q)
	t.spliceChild(x, pos, t.node(q).children...)
	t.freeNode(q)
}

// posIn returns the index of c in s.
func (t *Tree) posIn(s []int, c int) int {
	for i, v := range s {
		if v == c {
			return i
		}
	}
	return -1
}
