package cluster_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlplanar/cluster"
	"github.com/katalvlaran/lvlplanar/core"
)

// buildSquare returns C4 with nodes and edges in creation order.
func buildSquare(t *testing.T) (*core.Graph, []core.NodeID) {
	t.Helper()
	g := core.NewGraph()
	nodes := make([]core.NodeID, 4)
	for i := range nodes {
		nodes[i] = g.NewNode()
	}
	for i := range nodes {
		_, err := g.NewEdge(nodes[i], nodes[(i+1)%4])
		require.NoError(t, err)
	}
	return g, nodes
}

func TestTree_RootHoldsAllNodes(t *testing.T) {
	g, nodes := buildSquare(t)
	ct := cluster.New(g)

	assert.Equal(t, 1, ct.NumClusters())
	assert.Len(t, ct.Nodes(ct.Root()), 4)
	for _, v := range nodes {
		assert.Equal(t, ct.Root(), ct.ClusterOf(v))
	}
}

func TestTree_AssignAndDelete(t *testing.T) {
	g, nodes := buildSquare(t)
	ct := cluster.New(g)

	c, err := ct.NewCluster(ct.Root())
	require.NoError(t, err)
	require.NoError(t, ct.Assign(nodes[0], c))
	require.NoError(t, ct.Assign(nodes[1], c))

	assert.Equal(t, c, ct.ClusterOf(nodes[0]))
	assert.Len(t, ct.Nodes(ct.Root()), 2)
	assert.ElementsMatch(t, []core.NodeID{nodes[0], nodes[1]}, ct.AllNodes(c))

	require.NoError(t, ct.DeleteCluster(c))
	assert.Equal(t, ct.Root(), ct.ClusterOf(nodes[0]))
	assert.Len(t, ct.Nodes(ct.Root()), 4)

	assert.ErrorIs(t, ct.DeleteCluster(ct.Root()), cluster.ErrRootImmutable)
}

func TestTree_PostOrderChildrenFirst(t *testing.T) {
	g, nodes := buildSquare(t)
	ct := cluster.New(g)
	outer, err := ct.NewCluster(ct.Root())
	require.NoError(t, err)
	inner, err := ct.NewCluster(outer)
	require.NoError(t, err)
	require.NoError(t, ct.Assign(nodes[0], inner))
	require.NoError(t, ct.Assign(nodes[1], outer))

	order := ct.PostOrder(ct.Root())
	pos := map[cluster.ID]int{}
	for i, c := range order {
		pos[c] = i
	}
	assert.Less(t, pos[inner], pos[outer])
	assert.Less(t, pos[outer], pos[ct.Root()])
}

func TestTree_PruneEmpty(t *testing.T) {
	g, _ := buildSquare(t)
	ct := cluster.New(g)
	a, _ := ct.NewCluster(ct.Root())
	b, _ := ct.NewCluster(a) // chain of two empties

	deleted := ct.PruneEmpty()
	assert.ElementsMatch(t, []cluster.ID{a, b}, deleted)
	assert.Equal(t, 1, ct.NumClusters())
}

func TestCConnected_Square(t *testing.T) {
	g, nodes := buildSquare(t)
	ct := cluster.New(g)
	c, _ := ct.NewCluster(ct.Root())
	require.NoError(t, ct.Assign(nodes[0], c))
	require.NoError(t, ct.Assign(nodes[1], c))

	assert.True(t, ct.CConnected())
	// Repeatable on an unmodified graph.
	assert.True(t, ct.CConnected())
}

func TestCConnected_DisconnectedComplement(t *testing.T) {
	// One clustered node joined to two outside nodes that are not joined
	// to each other: removing the cluster disconnects the rest.
	g := core.NewGraph()
	a, x, y := g.NewNode(), g.NewNode(), g.NewNode()
	_, err := g.NewEdge(a, x)
	require.NoError(t, err)
	_, err = g.NewEdge(a, y)
	require.NoError(t, err)

	ct := cluster.New(g)
	c, _ := ct.NewCluster(ct.Root())
	require.NoError(t, ct.Assign(a, c))

	assert.False(t, ct.CConnected())
	assert.Equal(t, c, ct.FirstNonCConnected())
}

func TestCConnected_DisconnectedCluster(t *testing.T) {
	g, nodes := buildSquare(t)
	ct := cluster.New(g)
	c, _ := ct.NewCluster(ct.Root())
	// Opposite corners of the square do not induce a connected subgraph.
	require.NoError(t, ct.Assign(nodes[0], c))
	require.NoError(t, ct.Assign(nodes[2], c))

	assert.False(t, ct.CConnected())
}

func TestContiguous_AdjacentPairOnCycle(t *testing.T) {
	g, nodes := buildSquare(t)
	ct := cluster.New(g)
	c, _ := ct.NewCluster(ct.Root())
	require.NoError(t, ct.Assign(nodes[0], c))
	require.NoError(t, ct.Assign(nodes[1], c))

	require.True(t, g.RepresentsCombEmbedding())
	assert.True(t, ct.Contiguous(c))
	assert.True(t, ct.ContiguousAll())
}

func TestContiguous_SingletonAlwaysHolds(t *testing.T) {
	g, nodes := buildSquare(t)
	ct := cluster.New(g)
	c, _ := ct.NewCluster(ct.Root())
	require.NoError(t, ct.Assign(nodes[3], c))

	assert.True(t, ct.Contiguous(c))
}

func TestCopy_SharesNothing(t *testing.T) {
	g, nodes := buildSquare(t)
	ct := cluster.New(g)
	c, _ := ct.NewCluster(ct.Root())
	require.NoError(t, ct.Assign(nodes[0], c))

	gc := g.Copy()
	cc := ct.Copy(gc)
	require.NoError(t, cc.Assign(nodes[1], c))

	assert.Equal(t, ct.Root(), ct.ClusterOf(nodes[1]))
	assert.Equal(t, c, cc.ClusterOf(nodes[1]))
}
