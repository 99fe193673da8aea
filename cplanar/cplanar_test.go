package cplanar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlplanar/cluster"
	"github.com/katalvlaran/lvlplanar/core"
	"github.com/katalvlaran/lvlplanar/cplanar"
)

func build(t *testing.T, n int, pairs [][2]int) (*core.Graph, []core.NodeID) {
	t.Helper()
	g := core.NewGraph()
	ns := make([]core.NodeID, n)
	for i := range ns {
		ns[i] = g.NewNode()
	}
	for _, p := range pairs {
		_, err := g.NewEdge(ns[p[0]], ns[p[1]])
		require.NoError(t, err)
	}
	return g, ns
}

// prism returns the triangular prism: inner triangle 0-1-2, outer
// triangle 3-4-5, spokes i to i+3.
func prism(t *testing.T) (*core.Graph, []core.NodeID) {
	t.Helper()
	return build(t, 6, [][2]int{
		{0, 1}, {1, 2}, {2, 0},
		{3, 4}, {4, 5}, {5, 3},
		{0, 3}, {1, 4}, {2, 5},
	})
}

func TestEmbed_NilTree(t *testing.T) {
	_, _, err := cplanar.Embed(nil)
	assert.ErrorIs(t, err, cplanar.ErrNilTree)
}

func TestEmbed_NoClusters_BridgedTriangles(t *testing.T) {
	g, _ := build(t, 6, [][2]int{
		{0, 1}, {1, 2}, {2, 0},
		{3, 4}, {4, 5}, {5, 3},
		{2, 3},
	})
	ct := cluster.New(g)
	ok, code, err := cplanar.Embed(ct)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, cplanar.CodeNone, code)
	assert.True(t, g.RepresentsCombEmbedding())
	assert.Equal(t, 3, g.FaceCount(), "two triangles plus the outer face")
	assert.True(t, ct.AdjAvailable())
}

func TestEmbed_TrivialK5_NonPlanar(t *testing.T) {
	g, _ := build(t, 5, [][2]int{
		{0, 1}, {0, 2}, {0, 3}, {0, 4},
		{1, 2}, {1, 3}, {1, 4}, {2, 3}, {2, 4}, {3, 4},
	})
	ct := cluster.New(g)
	ok, code, err := cplanar.Embed(ct)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, cplanar.CodeNonPlanar, code)
	assert.False(t, ct.AdjAvailable())
}

func TestEmbed_NonCConnected(t *testing.T) {
	// One cluster holding the middle of a path: deleting it separates
	// the two outside nodes.
	g, ns := build(t, 3, [][2]int{{0, 1}, {1, 2}})
	ct := cluster.New(g)
	c, err := ct.NewCluster(ct.Root())
	require.NoError(t, err)
	require.NoError(t, ct.Assign(ns[1], c))

	before := g.AdjList(ns[1])
	ok, code, err := cplanar.Embed(ct)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, cplanar.CodeNonCConnected, code)
	assert.Equal(t, before, g.AdjList(ns[1]), "failed calls leave the rotation alone")
	assert.False(t, ct.AdjAvailable())
}

func TestEmbed_TriangleClusterInPrism(t *testing.T) {
	g, ns := prism(t)
	ct := cluster.New(g)
	c, err := ct.NewCluster(ct.Root())
	require.NoError(t, err)
	for _, i := range []int{0, 1, 2} {
		require.NoError(t, ct.Assign(ns[i], c))
	}

	ok, code, err := cplanar.Embed(ct)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, cplanar.CodeNone, code)
	assert.True(t, g.RepresentsCombEmbedding())
	assert.Equal(t, 5, g.FaceCount(), "prism: two triangles and three quads")
	assert.True(t, ct.AdjAvailable())
	assert.True(t, ct.ContiguousAll(), "the cluster occupies one arc of the embedding")
	assert.Equal(t, c, ct.ClusterOf(ns[0]), "membership survives embedding")
}

func TestEmbed_NestedClusters(t *testing.T) {
	g, ns := prism(t)
	ct := cluster.New(g)
	outer, err := ct.NewCluster(ct.Root())
	require.NoError(t, err)
	inner, err := ct.NewCluster(outer)
	require.NoError(t, err)
	for _, i := range []int{0, 1, 2} {
		require.NoError(t, ct.Assign(ns[i], inner))
	}
	require.NoError(t, ct.Assign(ns[3], outer))

	ok, code, err := cplanar.Embed(ct)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, cplanar.CodeNone, code)
	assert.True(t, g.RepresentsCombEmbedding())
	assert.Equal(t, 5, g.FaceCount())
	assert.True(t, ct.ContiguousAll())
}

func TestEmbed_Idempotent(t *testing.T) {
	g, ns := prism(t)
	ct := cluster.New(g)
	c, err := ct.NewCluster(ct.Root())
	require.NoError(t, err)
	for _, i := range []int{0, 1, 2} {
		require.NoError(t, ct.Assign(ns[i], c))
	}

	ok, code, err := cplanar.Embed(ct)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, cplanar.CodeNone, code)
	first := make([][]core.AdjID, len(ns))
	for i, v := range ns {
		first[i] = g.AdjList(v)
	}

	// Re-embedding an already valid clustered embedding is a no-op.
	ok, code, err = cplanar.Embed(ct)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, cplanar.CodeNone, code)
	for i, v := range ns {
		assert.Equal(t, first[i], g.AdjList(v))
	}
}

func TestTest_DoesNotMutate(t *testing.T) {
	g, ns := prism(t)
	ct := cluster.New(g)
	c, err := ct.NewCluster(ct.Root())
	require.NoError(t, err)
	for _, i := range []int{0, 1, 2} {
		require.NoError(t, ct.Assign(ns[i], c))
	}

	before := make([][]core.AdjID, len(ns))
	for i, v := range ns {
		before[i] = g.AdjList(v)
	}
	ok, code, err := cplanar.Test(ct)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, cplanar.CodeNone, code)
	for i, v := range ns {
		assert.Equal(t, before[i], g.AdjList(v))
	}
	assert.False(t, ct.AdjAvailable())
}

func TestEmbed_PrunesEmptyClusters(t *testing.T) {
	g, _ := build(t, 3, [][2]int{{0, 1}, {1, 2}, {2, 0}})
	ct := cluster.New(g)
	empty, err := ct.NewCluster(ct.Root())
	require.NoError(t, err)
	_, err = ct.NewCluster(empty)
	require.NoError(t, err)

	ok, code, err := cplanar.Embed(ct)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, cplanar.CodeNone, code)
	assert.True(t, g.RepresentsCombEmbedding())
	// Structurally invisible clusters are ignored, not deleted.
	assert.Equal(t, 3, ct.NumClusters())
}

func TestCodeString(t *testing.T) {
	assert.Equal(t, "none", cplanar.CodeNone.String())
	assert.Equal(t, "non-c-connected", cplanar.CodeNonCConnected.String())
	assert.Equal(t, "non-planar", cplanar.CodeNonPlanar.String())
	assert.Equal(t, "non-c-planar", cplanar.CodeNonCPlanar.String())
	assert.Equal(t, "unknown", cplanar.Code(99).String())
}
