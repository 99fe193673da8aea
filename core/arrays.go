// Package core: typed auxiliary arrays keyed by graph identities.
//
// NodeArray, EdgeArray, and AdjArray are growable slices indexed by NodeID,
// EdgeID, and AdjID. They return a default value for identities created
// after the array, growing lazily on Set, so algorithms can allocate
// per-element state once and keep mutating the graph underneath.

package core

// NodeArray maps NodeID to T with a default for untouched slots.
type NodeArray[T any] struct {
	data []T
	def  T
}

// NewNodeArray allocates a NodeArray sized for g's current node arena.
// Complexity: O(NodeCap).
func NewNodeArray[T any](g *Graph, def T) *NodeArray[T] {
	a := &NodeArray[T]{data: make([]T, g.NodeCap()), def: def}
	for i := range a.data {
		a.data[i] = def
	}
	return a
}

// Get returns the value stored for v, or the default if none was set.
func (a *NodeArray[T]) Get(v NodeID) T {
	if int(v) >= len(a.data) {
		return a.def
	}
	return a.data[v]
}

// Set stores x for v, growing the array as needed.
func (a *NodeArray[T]) Set(v NodeID, x T) {
	a.grow(int(v))
	a.data[v] = x
}

func (a *NodeArray[T]) grow(i int) {
	for len(a.data) <= i {
		a.data = append(a.data, a.def)
	}
}

// EdgeArray maps EdgeID to T with a default for untouched slots.
type EdgeArray[T any] struct {
	data []T
	def  T
}

// NewEdgeArray allocates an EdgeArray sized for g's current edge arena.
// Complexity: O(EdgeCap).
func NewEdgeArray[T any](g *Graph, def T) *EdgeArray[T] {
	a := &EdgeArray[T]{data: make([]T, g.EdgeCap()), def: def}
	for i := range a.data {
		a.data[i] = def
	}
	return a
}

// Get returns the value stored for e, or the default if none was set.
func (a *EdgeArray[T]) Get(e EdgeID) T {
	if int(e) >= len(a.data) {
		return a.def
	}
	return a.data[e]
}

// Set stores x for e, growing the array as needed.
func (a *EdgeArray[T]) Set(e EdgeID, x T) {
	for len(a.data) <= int(e) {
		a.data = append(a.data, a.def)
	}
	a.data[e] = x
}

// AdjArray maps AdjID to T with a default for untouched slots.
type AdjArray[T any] struct {
	data []T
	def  T
}

// NewAdjArray allocates an AdjArray sized for g's current adjacency arena.
// Complexity: O(AdjCap).
func NewAdjArray[T any](g *Graph, def T) *AdjArray[T] {
	a := &AdjArray[T]{data: make([]T, g.AdjCap()), def: def}
	for i := range a.data {
		a.data[i] = def
	}
	return a
}

// Get returns the value stored for x, or the default if none was set.
func (a *AdjArray[T]) Get(x AdjID) T {
	if int(x) >= len(a.data) {
		return a.def
	}
	return a.data[x]
}

// Set stores v for x, growing the array as needed.
func (a *AdjArray[T]) Set(x AdjID, v T) {
	for len(a.data) <= int(x) {
		a.data = append(a.data, a.def)
	}
	a.data[x] = v
}
