package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlplanar/core"
)

// buildCycle creates C_n and returns the graph with its nodes and edges in
// creation order.
func buildCycle(t *testing.T, n int) (*core.Graph, []core.NodeID, []core.EdgeID) {
	t.Helper()
	g := core.NewGraph(core.WithNodeCapacity(n), core.WithEdgeCapacity(n))
	nodes := make([]core.NodeID, n)
	for i := range nodes {
		nodes[i] = g.NewNode()
	}
	edges := make([]core.EdgeID, n)
	for i := range edges {
		e, err := g.NewEdge(nodes[i], nodes[(i+1)%n])
		require.NoError(t, err)
		edges[i] = e
	}
	return g, nodes, edges
}

func TestNewEdge_UnknownEndpoint(t *testing.T) {
	g := core.NewGraph()
	v := g.NewNode()
	_, err := g.NewEdge(v, core.NodeID(7))
	assert.ErrorIs(t, err, core.ErrNodeNotFound)
}

func TestAdjacency_TwinAndOwnership(t *testing.T) {
	g, nodes, edges := buildCycle(t, 4)

	for _, e := range edges {
		s, tt := g.AdjSource(e), g.AdjTarget(e)
		assert.Equal(t, tt, s.Twin())
		assert.Equal(t, s, s.Twin().Twin())
		assert.Equal(t, g.Source(e), g.NodeOf(s))
		assert.Equal(t, g.Target(e), g.NodeOf(tt))
	}
	for _, v := range nodes {
		assert.Equal(t, 2, g.Degree(v))
		assert.Len(t, g.AdjList(v), 2)
	}
	require.NoError(t, g.Consistent())
}

func TestDeleteNode_RemovesIncidentEdges(t *testing.T) {
	g, nodes, _ := buildCycle(t, 4)

	require.NoError(t, g.DeleteNode(nodes[0]))
	assert.Equal(t, 3, g.NumNodes())
	assert.Equal(t, 2, g.NumEdges())
	assert.False(t, g.HasNode(nodes[0]))
	require.NoError(t, g.Consistent())
}

func TestDeleteEdge_SelfLoop(t *testing.T) {
	g := core.NewGraph()
	v := g.NewNode()
	e, err := g.NewEdge(v, v)
	require.NoError(t, err)
	assert.True(t, g.IsLoop(e))
	assert.Equal(t, 2, g.Degree(v))

	require.NoError(t, g.DeleteEdge(e))
	assert.Equal(t, 0, g.Degree(v))
	require.NoError(t, g.Consistent())
}

func TestSplitEdge_ThenUnsplit_RestoresShape(t *testing.T) {
	g, nodes, edges := buildCycle(t, 3)

	before := make(map[core.NodeID][]core.AdjID)
	for _, v := range nodes {
		before[v] = g.AdjList(v)
	}

	w, e2, err := g.SplitEdge(edges[0])
	require.NoError(t, err)
	assert.Equal(t, 4, g.NumNodes())
	assert.Equal(t, 4, g.NumEdges())
	assert.Equal(t, 2, g.Degree(w))
	assert.Equal(t, nodes[0], g.Source(edges[0]))
	assert.Equal(t, w, g.Target(edges[0]))
	assert.Equal(t, w, g.Source(e2))
	assert.Equal(t, nodes[1], g.Target(e2))
	require.NoError(t, g.Consistent())

	surviving, err := g.Unsplit(w)
	require.NoError(t, err)
	assert.Equal(t, edges[0], surviving)
	assert.Equal(t, 3, g.NumNodes())
	assert.Equal(t, 3, g.NumEdges())
	for _, v := range nodes {
		assert.Equal(t, before[v], g.AdjList(v), "rotation of %v changed", v)
	}
	require.NoError(t, g.Consistent())
}

func TestUnsplit_RejectsNonSubdivision(t *testing.T) {
	g := core.NewGraph()
	u, v := g.NewNode(), g.NewNode()
	if _, err := g.NewEdge(u, v); err != nil {
		t.Fatal(err)
	}
	_, err := g.Unsplit(u) // degree 1
	assert.ErrorIs(t, err, core.ErrNotSplittable)

	// A node carrying only a self-loop has degree 2 but is no subdivision.
	w := g.NewNode()
	_, err = g.NewEdge(w, w)
	require.NoError(t, err)
	_, err = g.Unsplit(w)
	assert.ErrorIs(t, err, core.ErrNotSplittable)
}

func TestSetOrder_RejectsForeignEntries(t *testing.T) {
	g, nodes, edges := buildCycle(t, 4)

	err := g.SetOrder(nodes[0], []core.AdjID{g.AdjSource(edges[0]), g.AdjSource(edges[1])})
	assert.ErrorIs(t, err, core.ErrBadOrder)

	err = g.SetOrder(nodes[0], []core.AdjID{g.AdjSource(edges[0])})
	assert.ErrorIs(t, err, core.ErrBadOrder)
}

func TestSetOrder_AndReverse(t *testing.T) {
	g := core.NewGraph()
	c := g.NewNode()
	leaves := make([]core.NodeID, 3)
	spokes := make([]core.EdgeID, 3)
	for i := range leaves {
		leaves[i] = g.NewNode()
		e, err := g.NewEdge(c, leaves[i])
		require.NoError(t, err)
		spokes[i] = e
	}

	want := []core.AdjID{g.AdjSource(spokes[2]), g.AdjSource(spokes[0]), g.AdjSource(spokes[1])}
	require.NoError(t, g.SetOrder(c, want))
	assert.Equal(t, want, g.AdjList(c))

	require.NoError(t, g.ReverseOrder(c))
	got := g.AdjList(c)
	assert.Equal(t, want[0], got[0])
	assert.Equal(t, want[2], got[1])
	assert.Equal(t, want[1], got[2])
	require.NoError(t, g.Consistent())
}

func TestCopy_IsIndependent(t *testing.T) {
	g, nodes, _ := buildCycle(t, 4)
	c := g.Copy()

	require.NoError(t, g.DeleteNode(nodes[0]))
	assert.Equal(t, 3, g.NumNodes())
	assert.Equal(t, 4, c.NumNodes())
	assert.True(t, c.HasNode(nodes[0]))
	require.NoError(t, c.Consistent())
}

func TestNodeArray_DefaultAndGrowth(t *testing.T) {
	g := core.NewGraph()
	v := g.NewNode()
	arr := core.NewNodeArray(g, -1)
	assert.Equal(t, -1, arr.Get(v))

	w := g.NewNode() // created after the array
	assert.Equal(t, -1, arr.Get(w))
	arr.Set(w, 42)
	assert.Equal(t, 42, arr.Get(w))
	assert.Equal(t, -1, arr.Get(v))
}
