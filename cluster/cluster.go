// Package cluster overlays a rooted tree of clusters on a core.Graph.
//
// Every node belongs to exactly one leaf-most cluster and is visible to all
// ancestors of that cluster. The root cluster always exists and holds any
// node that was never assigned elsewhere. The overlay never mutates the
// underlying graph; it only tracks membership.
//
// The planarity pipeline consumes two analyses from this package:
// C-connectedness (every cluster's induced subgraph and its complement are
// connected) and arc contiguity of a cluster within a given combinatorial
// embedding.
//
// Errors:
//
//	ErrClusterNotFound - operation referenced a deleted or unknown cluster.
//	ErrRootImmutable   - attempt to delete or reparent the root cluster.
//	ErrNodeNotFound    - operation referenced a node the graph does not hold.
package cluster

import (
	"errors"

	"github.com/katalvlaran/lvlplanar/core"
)

// Sentinel errors for cluster-tree operations.
var (
	// ErrClusterNotFound indicates an operation referenced a non-existent cluster.
	ErrClusterNotFound = errors.New("cluster: cluster not found")

	// ErrRootImmutable indicates an attempt to delete or move the root cluster.
	ErrRootImmutable = errors.New("cluster: root cluster is immutable")

	// ErrNodeNotFound indicates an operation referenced a node unknown to the graph.
	ErrNodeNotFound = errors.New("cluster: node not found")
)

// ID identifies a cluster within one Tree.
type ID int

// Nil is the absent cluster identity.
const Nil ID = -1

// rec is one arena slot of cluster state.
type rec struct {
	parent   ID
	children []ID
	nodes    []core.NodeID // direct members only
	alive    bool
}

// Tree is a rooted cluster hierarchy over a core.Graph.
type Tree struct {
	g        *core.Graph
	clusters []rec
	root     ID
	member   *core.NodeArray[ID] // leaf-most cluster per node
	num      int

	adjAvailable bool
}

// New creates a Tree whose root cluster directly contains every live node
// of g.
// Complexity: O(V).
func New(g *core.Graph) *Tree {
	t := &Tree{g: g, root: 0}
	t.clusters = append(t.clusters, rec{parent: Nil, alive: true})
	t.member = core.NewNodeArray(g, ID(0))
	t.clusters[0].nodes = append(t.clusters[0].nodes, g.Nodes()...)
	t.num = 1
	return t
}

// Graph returns the underlying graph.
func (t *Tree) Graph() *core.Graph { return t.g }

// Root returns the root cluster.
func (t *Tree) Root() ID { return t.root }

// NumClusters returns the number of live clusters, root included.
func (t *Tree) NumClusters() int { return t.num }

// Has reports whether c is a live cluster.
func (t *Tree) Has(c ID) bool {
	return c >= 0 && int(c) < len(t.clusters) && t.clusters[c].alive
}

// NewCluster creates an empty cluster under parent.
// Complexity: O(1) amortized.
func (t *Tree) NewCluster(parent ID) (ID, error) {
	if !t.Has(parent) {
		return Nil, ErrClusterNotFound
	}
	c := ID(len(t.clusters))
	t.clusters = append(t.clusters, rec{parent: parent, alive: true})
	t.clusters[parent].children = append(t.clusters[parent].children, c)
	t.num++
	return c, nil
}

// DeleteCluster removes c, handing its direct nodes and children to the
// parent. The root cannot be deleted.
// Complexity: O(|children| + |nodes| + siblings).
func (t *Tree) DeleteCluster(c ID) error {
	if !t.Has(c) {
		return ErrClusterNotFound
	}
	if c == t.root {
		return ErrRootImmutable
	}
	p := t.clusters[c].parent
	for _, ch := range t.clusters[c].children {
		t.clusters[ch].parent = p
		t.clusters[p].children = append(t.clusters[p].children, ch)
	}
	for _, v := range t.clusters[c].nodes {
		t.member.Set(v, p)
		t.clusters[p].nodes = append(t.clusters[p].nodes, v)
	}
	t.detachChild(p, c)
	t.clusters[c] = rec{parent: Nil}
	t.num--
	return nil
}

// Assign moves node v into cluster c as a direct member.
// Complexity: O(size of previous cluster).
func (t *Tree) Assign(v core.NodeID, c ID) error {
	if !t.Has(c) {
		return ErrClusterNotFound
	}
	if !t.g.HasNode(v) {
		return ErrNodeNotFound
	}
	old := t.ClusterOf(v)
	if old == c {
		return nil
	}
	t.removeMember(old, v)
	t.clusters[c].nodes = append(t.clusters[c].nodes, v)
	t.member.Set(v, c)
	return nil
}

// ClusterOf returns the leaf-most cluster containing v. Nodes created after
// New and never assigned belong to the root.
func (t *Tree) ClusterOf(v core.NodeID) ID { return t.member.Get(v) }

// Parent returns the parent cluster of c, Nil for the root.
func (t *Tree) Parent(c ID) ID { return t.clusters[c].parent }

// Children returns a snapshot of c's child clusters.
func (t *Tree) Children(c ID) []ID {
	return append([]ID(nil), t.clusters[c].children...)
}

// Clusters returns all live cluster identities in ascending order.
func (t *Tree) Clusters() []ID {
	out := make([]ID, 0, t.num)
	for i := range t.clusters {
		if t.clusters[i].alive {
			out = append(out, ID(i))
		}
	}
	return out
}

// Nodes returns the direct members of c.
func (t *Tree) Nodes(c ID) []core.NodeID {
	return append([]core.NodeID(nil), t.clusters[c].nodes...)
}

// AllNodes returns every node visible to c: direct members plus the
// members of all descendant clusters.
// Complexity: O(subtree size).
func (t *Tree) AllNodes(c ID) []core.NodeID {
	var out []core.NodeID
	stack := []ID{c}
	for len(stack) > 0 {
		x := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, t.clusters[x].nodes...)
		stack = append(stack, t.clusters[x].children...)
	}
	return out
}

// IsAncestorOrEqual reports whether a is c or an ancestor of c.
func (t *Tree) IsAncestorOrEqual(a, c ID) bool {
	for x := c; x != Nil; x = t.clusters[x].parent {
		if x == a {
			return true
		}
	}
	return false
}

// PostOrder returns the clusters of the subtree rooted at c, children
// before parents, using an explicit stack.
// Complexity: O(subtree size).
func (t *Tree) PostOrder(c ID) []ID {
	var out []ID
	stack := []ID{c}
	for len(stack) > 0 {
		x := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, x)
		stack = append(stack, t.clusters[x].children...)
	}
	// Reversing the pre-order of a tree yields a valid post-order.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// PruneEmpty repeatedly deletes clusters that hold no nodes and no
// children, bottom-up, and returns the deleted identities. Structurally
// invisible clusters are always safe to delete before a planarity test.
func (t *Tree) PruneEmpty() []ID {
	var deleted []ID
	for {
		removedOne := false
		for _, c := range t.PostOrder(t.root) {
			if c == t.root || !t.Has(c) {
				continue
			}
			if len(t.clusters[c].nodes) == 0 && len(t.clusters[c].children) == 0 {
				if err := t.DeleteCluster(c); err == nil {
					deleted = append(deleted, c)
					removedOne = true
				}
			}
		}
		if !removedOne {
			return deleted
		}
	}
}

// AdjAvailable reports whether a successful embed marked the rotation
// system of the underlying graph as cluster-consistent.
func (t *Tree) AdjAvailable() bool { return t.adjAvailable }

// SetAdjAvailable is set by the embedding pipeline after it installs a
// cluster-consistent rotation system.
func (t *Tree) SetAdjAvailable(ok bool) { t.adjAvailable = ok }

// Copy clones the overlay onto the given graph, which must share identities
// with the original graph (typically core.Graph.Copy output).
// Complexity: O(V + clusters).
func (t *Tree) Copy(g *core.Graph) *Tree {
	c := &Tree{g: g, root: t.root, num: t.num}
	c.clusters = make([]rec, len(t.clusters))
	for i := range t.clusters {
		c.clusters[i] = rec{
			parent:   t.clusters[i].parent,
			children: append([]ID(nil), t.clusters[i].children...),
			nodes:    append([]core.NodeID(nil), t.clusters[i].nodes...),
			alive:    t.clusters[i].alive,
		}
	}
	c.member = core.NewNodeArray(g, ID(0))
	for _, v := range g.Nodes() {
		c.member.Set(v, t.member.Get(v))
	}
	return c
}

func (t *Tree) detachChild(p, c ID) {
	kids := t.clusters[p].children
	for i, x := range kids {
		if x == c {
			t.clusters[p].children = append(kids[:i], kids[i+1:]...)
			return
		}
	}
}

func (t *Tree) removeMember(c ID, v core.NodeID) {
	nodes := t.clusters[c].nodes
	for i, x := range nodes {
		if x == v {
			t.clusters[c].nodes = append(nodes[:i], nodes[i+1:]...)
			return
		}
	}
}
