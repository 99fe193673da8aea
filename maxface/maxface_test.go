package maxface_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlplanar/core"
	"github.com/katalvlaran/lvlplanar/maxface"
	"github.com/katalvlaran/lvlplanar/planarity"
)

func build(t *testing.T, n int, pairs [][2]int) (*core.Graph, []core.NodeID, []core.EdgeID) {
	t.Helper()
	g := core.NewGraph()
	ns := make([]core.NodeID, n)
	for i := range ns {
		ns[i] = g.NewNode()
	}
	es := make([]core.EdgeID, 0, len(pairs))
	for _, p := range pairs {
		e, err := g.NewEdge(ns[p[0]], ns[p[1]])
		require.NoError(t, err)
		es = append(es, e)
	}
	return g, ns, es
}

func TestComputeSize_Square(t *testing.T) {
	g, _, es := build(t, 4, [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}})
	ok, err := planarity.Embed(g)
	require.NoError(t, err)
	require.True(t, ok)
	// A cycle has two faces, both running through every node and edge.
	assert.Equal(t, 8, maxface.ComputeSize(g, g.AdjSource(es[0]), nil, nil))
	assert.Equal(t, 8, maxface.ComputeSize(g, g.AdjTarget(es[0]), nil, nil))
}

func TestEmbed_Square(t *testing.T) {
	g, _, _ := build(t, 4, [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}})
	adj, size, err := maxface.Embed(g, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 8, size)
	assert.Equal(t, 8, maxface.ComputeSize(g, adj, nil, nil))
	assert.True(t, g.RepresentsCombEmbedding())
}

func TestEmbed_K4(t *testing.T) {
	g, _, _ := build(t, 4, [][2]int{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}})
	adj, size, err := maxface.Embed(g, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 6, size)
	assert.Equal(t, 6, maxface.ComputeSize(g, adj, nil, nil))
	assert.True(t, g.RepresentsCombEmbedding())
	assert.Equal(t, 4, g.FaceCount())
}

func TestEmbed_Cube(t *testing.T) {
	g, _, _ := build(t, 8, [][2]int{
		{0, 1}, {1, 2}, {2, 3}, {3, 0},
		{4, 5}, {5, 6}, {6, 7}, {7, 4},
		{0, 4}, {1, 5}, {2, 6}, {3, 7},
	})
	adj, size, err := maxface.Embed(g, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 8, size, "every face of the cube is a quadrilateral")
	assert.Equal(t, 8, maxface.ComputeSize(g, adj, nil, nil))
	assert.True(t, g.RepresentsCombEmbedding())
	assert.Equal(t, 6, g.FaceCount())
}

func TestEmbed_TripleBond(t *testing.T) {
	g, _, _ := build(t, 2, [][2]int{{0, 1}, {0, 1}, {0, 1}})
	adj, size, err := maxface.Embed(g, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, size)
	assert.Equal(t, 4, maxface.ComputeSize(g, adj, nil, nil))
	assert.True(t, g.RepresentsCombEmbedding())
}

func TestEmbed_SingleEdge(t *testing.T) {
	g, _, _ := build(t, 2, [][2]int{{0, 1}})
	adj, size, err := maxface.Embed(g, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, size, "both darts of the lone edge bound one face")
	assert.Equal(t, 4, maxface.ComputeSize(g, adj, nil, nil))
}

func TestEmbed_SquareWithChord(t *testing.T) {
	g, _, es := build(t, 4, [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}, {0, 2}})

	adj, size, err := maxface.Embed(g, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 8, size, "the square keeps beating both triangles")
	assert.Equal(t, 8, maxface.ComputeSize(g, adj, nil, nil))
	assert.True(t, g.RepresentsCombEmbedding())

	// A heavy chord drags the optimum onto a triangle through it.
	el := core.NewEdgeArray(g, 1)
	el.Set(es[4], 10)
	adj, size, err = maxface.Embed(g, nil, el)
	require.NoError(t, err)
	assert.Equal(t, 15, size)
	assert.Equal(t, 15, maxface.ComputeSize(g, adj, nil, el))
	assert.True(t, g.RepresentsCombEmbedding())
}

func TestEmbed_NodeLengthsCount(t *testing.T) {
	g, ns, _ := build(t, 4, [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}, {0, 2}})
	nl := core.NewNodeArray(g, 1)
	nl.Set(ns[3], 7)
	// Triangles: 0-1-2 scores 6, 0-2-3 scores 12; square scores 14.
	adj, size, err := maxface.Embed(g, nl, nil)
	require.NoError(t, err)
	assert.Equal(t, 14, size)
	assert.Equal(t, 14, maxface.ComputeSize(g, adj, nl, nil))
}

// fourTheta joins two hubs by four internally disjoint length-2 paths
// through nodes 2..5, with the path through node 2 carrying weight 5
// per edge.
func fourTheta(t *testing.T) (*core.Graph, []core.NodeID, *core.EdgeArray[int]) {
	t.Helper()
	g, ns, es := build(t, 6, [][2]int{
		{0, 2}, {2, 1},
		{0, 3}, {3, 1},
		{0, 4}, {4, 1},
		{0, 5}, {5, 1},
	})
	el := core.NewEdgeArray(g, 1)
	el.Set(es[0], 5)
	el.Set(es[1], 5)
	return g, ns, el
}

func TestEmbed_WeightedTheta(t *testing.T) {
	g, _, el := fourTheta(t)
	adj, size, err := maxface.Embed(g, nil, el)
	require.NoError(t, err)
	assert.Equal(t, 16, size, "heavy path plus one unit path, hubs and two midpoints")
	assert.Equal(t, 16, maxface.ComputeSize(g, adj, nil, el))
	assert.True(t, g.RepresentsCombEmbedding())
}

func TestEmbedAt_ReordersBundleAroundAnchor(t *testing.T) {
	g, ns, el := fourTheta(t)
	// Anchored at the midpoint of a unit path: the bundle must be
	// reordered so that path becomes a neighbor of the heavy one.
	adj, size, err := maxface.EmbedAt(g, ns[4], nil, el)
	require.NoError(t, err)
	assert.Equal(t, 16, size)
	assert.Equal(t, 16, maxface.ComputeSize(g, adj, nil, el))
	assert.True(t, g.RepresentsCombEmbedding())

	touches := false
	for _, a := range g.FaceOf(adj) {
		if g.NodeOf(a) == ns[4] {
			touches = true
		}
	}
	assert.True(t, touches, "returned face must run through the anchor")
}

func TestEmbedAt_UnknownAnchor(t *testing.T) {
	g, _, _ := build(t, 3, [][2]int{{0, 1}, {1, 2}, {2, 0}})
	_, _, err := maxface.EmbedAt(g, core.NodeID(99), nil, nil)
	assert.ErrorIs(t, err, maxface.ErrUnknownAnchor)
}

func TestEmbed_Rejections(t *testing.T) {
	_, _, err := maxface.Embed(nil, nil, nil)
	assert.ErrorIs(t, err, maxface.ErrNilGraph)

	g, _, _ := build(t, 3, [][2]int{{0, 1}, {1, 2}})
	_, _, err = maxface.Embed(g, nil, nil)
	assert.ErrorIs(t, err, maxface.ErrNotBiconnected)

	k5, _, _ := build(t, 5, [][2]int{
		{0, 1}, {0, 2}, {0, 3}, {0, 4},
		{1, 2}, {1, 3}, {1, 4}, {2, 3}, {2, 4}, {3, 4},
	})
	_, _, err = maxface.Embed(k5, nil, nil)
	assert.ErrorIs(t, err, maxface.ErrNotPlanar)

	sq, _, es := build(t, 4, [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}})
	el := core.NewEdgeArray(sq, 1)
	el.Set(es[0], -2)
	_, _, err = maxface.Embed(sq, nil, el)
	assert.ErrorIs(t, err, maxface.ErrNegativeLength)
}
