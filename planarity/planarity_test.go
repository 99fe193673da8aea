package planarity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlplanar/core"
	"github.com/katalvlaran/lvlplanar/planarity"
)

// complete builds K_n with nodes in id order.
func complete(t *testing.T, n int) *core.Graph {
	t.Helper()
	g := core.NewGraph()
	ids := make([]core.NodeID, n)
	for i := range ids {
		ids[i] = g.NewNode()
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			_, err := g.NewEdge(ids[i], ids[j])
			require.NoError(t, err)
		}
	}
	return g
}

// bipartite builds K_{a,b}.
func bipartite(t *testing.T, a, b int) *core.Graph {
	t.Helper()
	g := core.NewGraph()
	left := make([]core.NodeID, a)
	right := make([]core.NodeID, b)
	for i := range left {
		left[i] = g.NewNode()
	}
	for i := range right {
		right[i] = g.NewNode()
	}
	for _, u := range left {
		for _, v := range right {
			_, err := g.NewEdge(u, v)
			require.NoError(t, err)
		}
	}
	return g
}

func cycle(t *testing.T, n int) *core.Graph {
	t.Helper()
	g := core.NewGraph()
	ids := make([]core.NodeID, n)
	for i := range ids {
		ids[i] = g.NewNode()
	}
	for i := range ids {
		_, err := g.NewEdge(ids[i], ids[(i+1)%n])
		require.NoError(t, err)
	}
	return g
}

func rotations(g *core.Graph) map[core.NodeID][]core.AdjID {
	out := make(map[core.NodeID][]core.AdjID)
	for _, v := range g.Nodes() {
		out[v] = append([]core.AdjID(nil), g.AdjList(v)...)
	}
	return out
}

func TestEmbed_Square(t *testing.T) {
	g := cycle(t, 4)
	ok, err := planarity.Embed(g)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, g.RepresentsCombEmbedding())
	assert.Equal(t, 2, g.FaceCount())
}

func TestEmbed_TwoTrianglesWithBridge(t *testing.T) {
	g := core.NewGraph()
	n := make([]core.NodeID, 6)
	for i := range n {
		n[i] = g.NewNode()
	}
	for _, tri := range [][3]int{{0, 1, 2}, {3, 4, 5}} {
		for i := 0; i < 3; i++ {
			_, err := g.NewEdge(n[tri[i]], n[tri[(i+1)%3]])
			require.NoError(t, err)
		}
	}
	_, err := g.NewEdge(n[2], n[3])
	require.NoError(t, err)

	ok, err := planarity.Embed(g)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, g.RepresentsCombEmbedding())
	// V=6, E=7, F=3: two triangle faces plus the outer face walking
	// the bridge twice.
	assert.Equal(t, 3, g.FaceCount())
}

func TestEmbed_K4(t *testing.T) {
	g := complete(t, 4)
	ok, err := planarity.Embed(g)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, g.RepresentsCombEmbedding())
	assert.Equal(t, 4, g.FaceCount())
}

func TestEmbed_K5NotPlanar(t *testing.T) {
	g := complete(t, 5)
	before := rotations(g)

	ok, err := planarity.Embed(g)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, before, rotations(g), "failed embed must leave the graph untouched")

	ok, err = planarity.IsPlanar(g)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEmbed_K33NotPlanar(t *testing.T) {
	g := bipartite(t, 3, 3)
	ok, err := planarity.Embed(g)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEmbed_K5MinusEdgeIsPlanar(t *testing.T) {
	g := complete(t, 5)
	for _, e := range g.Edges() {
		require.NoError(t, g.DeleteEdge(e))
		break
	}
	ok, err := planarity.Embed(g)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, g.RepresentsCombEmbedding())
}

func TestEmbed_Idempotent(t *testing.T) {
	g := complete(t, 4)
	ok, err := planarity.Embed(g)
	require.NoError(t, err)
	require.True(t, ok)
	after := rotations(g)

	ok, err = planarity.Embed(g)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, after, rotations(g), "second embed must not disturb the rotation")
}

func TestIsPlanar_DoesNotMutate(t *testing.T) {
	g := complete(t, 4)
	before := rotations(g)
	ok, err := planarity.IsPlanar(g)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, before, rotations(g))
}

func TestEmbed_LoopsAndParallels(t *testing.T) {
	g := core.NewGraph()
	u, v := g.NewNode(), g.NewNode()
	_, err := g.NewEdge(u, v)
	require.NoError(t, err)
	_, err = g.NewEdge(u, v)
	require.NoError(t, err)
	_, err = g.NewEdge(u, u)
	require.NoError(t, err)

	ok, err := planarity.Embed(g)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, g.RepresentsCombEmbedding())
	// V=2, E=3, F=3: two from the doubled edge, one more from the loop.
	assert.Equal(t, 3, g.FaceCount())
}

func TestEmbed_DisconnectedAndIsolated(t *testing.T) {
	g := cycle(t, 3)
	g.NewNode() // isolated
	h := []core.NodeID{g.NewNode(), g.NewNode(), g.NewNode(), g.NewNode()}
	for i := range h {
		_, err := g.NewEdge(h[i], h[(i+1)%len(h)])
		require.NoError(t, err)
	}

	ok, err := planarity.Embed(g)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, g.RepresentsCombEmbedding())
}

func TestEmbed_NilGraph(t *testing.T) {
	_, err := planarity.Embed(nil)
	assert.ErrorIs(t, err, planarity.ErrNilGraph)
}

func TestEmbed_EmptyAndEdgeless(t *testing.T) {
	g := core.NewGraph()
	ok, err := planarity.Embed(g)
	require.NoError(t, err)
	assert.True(t, ok)

	g.NewNode()
	ok, err = planarity.IsPlanar(g)
	require.NoError(t, err)
	assert.True(t, ok)
}
