// Package core defines the embedded multigraph at the heart of lvlplanar:
// nodes, edges, and adjacency entries (edge halves) held in flat arenas and
// addressed by integer identities, plus the rotation system that turns a
// bare multigraph into a combinatorial embedding.
//
// Every edge owns exactly two adjacency entries, one per end, that are
// mutual twins; every node owns a circular, doubly linked sequence of the
// adjacency entries incident to it. The order of that sequence, once fixed,
// is the node's local rotation. Identities are stable across unrelated
// mutations, so they can key auxiliary NodeArray/EdgeArray/AdjArray data.
//
// The Graph is NOT safe for concurrent mutation. The embedding pipeline
// assumes exclusive ownership of its working graph for the duration of one
// call; independent graphs may be used from independent goroutines freely.
//
// Errors:
//
//	ErrNodeNotFound  - operation referenced a deleted or out-of-range node.
//	ErrEdgeNotFound  - operation referenced a deleted or out-of-range edge.
//	ErrBadOrder      - SetOrder got a sequence that is not a permutation of
//	                   the node's adjacency entries.
//	ErrNotSplittable - Unsplit called on a node that is not a degree-2
//	                   subdivision point.
package core

import "errors"

// Sentinel errors for core graph operations.
var (
	// ErrNodeNotFound indicates an operation referenced a non-existent node.
	ErrNodeNotFound = errors.New("core: node not found")

	// ErrEdgeNotFound indicates an operation referenced a non-existent edge.
	ErrEdgeNotFound = errors.New("core: edge not found")

	// ErrBadOrder indicates SetOrder received a slice that is not a
	// permutation of the node's current adjacency entries.
	ErrBadOrder = errors.New("core: order is not a permutation of the adjacency list")

	// ErrNotSplittable indicates Unsplit was called on a node that does not
	// have exactly two distinct incident edges.
	ErrNotSplittable = errors.New("core: node is not a subdivision point")
)

// NodeID identifies a node. IDs are small non-negative integers assigned in
// creation order; deleting a node retires its ID until the slot is reused.
type NodeID int

// EdgeID identifies an edge, same discipline as NodeID.
type EdgeID int

// AdjID identifies one adjacency entry (one edge half). The encoding is
// fixed: the source half of edge e is AdjID(2*e), the target half is
// AdjID(2*e+1). Twin lookup is therefore a single XOR and the invariant
// Twin(Twin(a)) == a holds by construction.
type AdjID int

// Nil identities, returned where "no such element" is a valid answer.
const (
	NilNode NodeID = -1
	NilEdge EdgeID = -1
	NilAdj  AdjID  = -1
)

// Twin returns the adjacency entry at the other end of the same edge.
func (a AdjID) Twin() AdjID {
	if a < 0 {
		return NilAdj
	}
	return a ^ 1
}

// Edge returns the edge this adjacency entry belongs to.
func (a AdjID) Edge() EdgeID {
	if a < 0 {
		return NilEdge
	}
	return EdgeID(a >> 1)
}

// isSource reports whether a is the source half of its edge.
func (a AdjID) isSource() bool { return a&1 == 0 }

// sourceAdj/targetAdj translate an edge into its two halves.
func sourceAdj(e EdgeID) AdjID { return AdjID(e << 1) }
func targetAdj(e EdgeID) AdjID { return AdjID(e<<1 | 1) }

// nodeRec is one arena slot of node state.
type nodeRec struct {
	firstAdj AdjID // entry point into the circular rotation; NilAdj if isolated
	degree   int   // number of incident edge halves (loops count twice)
	alive    bool
}

// edgeRec is one arena slot of edge state.
type edgeRec struct {
	src, tgt NodeID
	alive    bool
}

// adjRec is the rotation linkage of one adjacency entry. next/prev are
// cyclic within the owning node's rotation.
type adjRec struct {
	next, prev AdjID
}

// GraphOption configures a Graph at construction time.
type GraphOption func(g *Graph)

// WithNodeCapacity pre-sizes the node arena for n nodes.
func WithNodeCapacity(n int) GraphOption {
	return func(g *Graph) { g.nodes = make([]nodeRec, 0, n) }
}

// WithEdgeCapacity pre-sizes the edge and adjacency arenas for m edges.
func WithEdgeCapacity(m int) GraphOption {
	return func(g *Graph) {
		g.edges = make([]edgeRec, 0, m)
		g.adj = make([]adjRec, 0, 2*m)
	}
}

// Graph is an undirected embedded multigraph over flat arenas. Parallel
// edges and self-loops are always permitted; planarity algorithms depend on
// both. Edges carry a nominal source/target orientation that the embedding
// machinery is free to ignore.
type Graph struct {
	nodes []nodeRec
	edges []edgeRec
	adj   []adjRec // adj[a] valid iff edges[a>>1].alive

	freeNodes []NodeID
	freeEdges []EdgeID

	numNodes int
	numEdges int
}

// NewGraph creates an empty Graph.
// Complexity: O(1), or O(capacity) when capacity options are given.
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{}
	for _, opt := range opts {
		opt(g)
	}
	return g
}
