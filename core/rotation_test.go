package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlplanar/core"
)

// buildK4 creates K4 with nodes 0..3 and edges in lexicographic pair order:
// 01, 02, 03, 12, 13, 23.
func buildK4(t *testing.T) (*core.Graph, []core.NodeID, map[[2]int]core.EdgeID) {
	t.Helper()
	g := core.NewGraph()
	nodes := make([]core.NodeID, 4)
	for i := range nodes {
		nodes[i] = g.NewNode()
	}
	edges := make(map[[2]int]core.EdgeID)
	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			e, err := g.NewEdge(nodes[i], nodes[j])
			require.NoError(t, err)
			edges[[2]int{i, j}] = e
		}
	}
	return g, nodes, edges
}

func TestFaces_Cycle(t *testing.T) {
	g, _, _ := buildCycle(t, 4)

	faces := g.Faces()
	assert.Len(t, faces, 2)
	for _, f := range faces {
		assert.Len(t, f, 4)
	}
	assert.True(t, g.RepresentsCombEmbedding())
}

func TestFaces_SingleLoop(t *testing.T) {
	g := core.NewGraph()
	v := g.NewNode()
	_, err := g.NewEdge(v, v)
	require.NoError(t, err)

	assert.Equal(t, 2, g.FaceCount())
	assert.True(t, g.RepresentsCombEmbedding())
}

func TestRepresentsCombEmbedding_K4(t *testing.T) {
	g, nodes, edges := buildK4(t)

	// Insertion-order rotations of K4 trace only two faces; Euler fails.
	assert.Equal(t, 2, g.FaceCount())
	assert.False(t, g.RepresentsCombEmbedding())

	// Install the rotation of the planar drawing with node 0 in the center
	// of triangle 1-2-3 (counterclockwise orders read off coordinates).
	at := func(i, j int) core.AdjID {
		if i < j {
			return g.AdjAt(edges[[2]int{i, j}], nodes[i])
		}
		return g.AdjAt(edges[[2]int{j, i}], nodes[i])
	}
	require.NoError(t, g.SetOrder(nodes[0], []core.AdjID{at(0, 1), at(0, 2), at(0, 3)}))
	require.NoError(t, g.SetOrder(nodes[1], []core.AdjID{at(1, 2), at(1, 0), at(1, 3)}))
	require.NoError(t, g.SetOrder(nodes[2], []core.AdjID{at(2, 3), at(2, 0), at(2, 1)}))
	require.NoError(t, g.SetOrder(nodes[3], []core.AdjID{at(3, 1), at(3, 0), at(3, 2)}))

	assert.Equal(t, 4, g.FaceCount())
	assert.True(t, g.RepresentsCombEmbedding())
	require.NoError(t, g.Consistent())
}

func TestFaceOf_WalksWholeBoundary(t *testing.T) {
	g, _, edges := buildCycle(t, 5)

	face := g.FaceOf(g.AdjSource(edges[0]))
	assert.Len(t, face, 5)
	seen := map[core.AdjID]bool{}
	for _, a := range face {
		assert.False(t, seen[a])
		seen[a] = true
	}
}

func TestRepresentsCombEmbedding_DisjointComponents(t *testing.T) {
	g, _, _ := buildCycle(t, 3)
	// Second component: another triangle in the same graph.
	u, v, w := g.NewNode(), g.NewNode(), g.NewNode()
	for _, pair := range [][2]core.NodeID{{u, v}, {v, w}, {w, u}} {
		_, err := g.NewEdge(pair[0], pair[1])
		require.NoError(t, err)
	}
	// An isolated node must not disturb the check.
	g.NewNode()

	assert.True(t, g.RepresentsCombEmbedding())
}
