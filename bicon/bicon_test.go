package bicon_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlplanar/bicon"
	"github.com/katalvlaran/lvlplanar/core"
)

// addPath wires nodes[i] -- nodes[i+1] for all i and returns the edges.
func addPath(t *testing.T, g *core.Graph, nodes []core.NodeID) []core.EdgeID {
	t.Helper()
	edges := make([]core.EdgeID, 0, len(nodes)-1)
	for i := 0; i+1 < len(nodes); i++ {
		e, err := g.NewEdge(nodes[i], nodes[i+1])
		require.NoError(t, err)
		edges = append(edges, e)
	}
	return edges
}

// twoTrianglesBridge builds two triangles joined by one bridge edge.
func twoTrianglesBridge(t *testing.T) (*core.Graph, []core.NodeID, core.EdgeID) {
	t.Helper()
	g := core.NewGraph()
	n := make([]core.NodeID, 6)
	for i := range n {
		n[i] = g.NewNode()
	}
	for _, tri := range [][3]core.NodeID{{n[0], n[1], n[2]}, {n[3], n[4], n[5]}} {
		for i := 0; i < 3; i++ {
			_, err := g.NewEdge(tri[i], tri[(i+1)%3])
			require.NoError(t, err)
		}
	}
	bridge, err := g.NewEdge(n[2], n[3])
	require.NoError(t, err)
	return g, n, bridge
}

func TestConnected(t *testing.T) {
	g := core.NewGraph()
	assert.True(t, bicon.Connected(g))

	u, v := g.NewNode(), g.NewNode()
	assert.False(t, bicon.Connected(g))

	_, err := g.NewEdge(u, v)
	require.NoError(t, err)
	assert.True(t, bicon.Connected(g))
}

func TestComponents_TwoParts(t *testing.T) {
	g := core.NewGraph()
	a, b, c := g.NewNode(), g.NewNode(), g.NewNode()
	_, err := g.NewEdge(a, b)
	require.NoError(t, err)

	comps := bicon.Components(g)
	require.Len(t, comps, 2)
	assert.ElementsMatch(t, []core.NodeID{a, b}, comps[0])
	assert.ElementsMatch(t, []core.NodeID{c}, comps[1])
}

func TestBiconnectedComponents_BridgeAndCuts(t *testing.T) {
	g, n, bridge := twoTrianglesBridge(t)

	comps, cuts := bicon.BiconnectedComponents(g)
	require.Len(t, comps, 3)
	assert.ElementsMatch(t, []core.NodeID{n[2], n[3]}, cuts)

	sizes := make([]int, 0, 3)
	bridgeFound := false
	for _, c := range comps {
		sizes = append(sizes, len(c.Edges))
		if len(c.Edges) == 1 {
			assert.Equal(t, bridge, c.Edges[0])
			bridgeFound = true
		}
	}
	assert.ElementsMatch(t, []int{3, 3, 1}, sizes)
	assert.True(t, bridgeFound)
}

func TestBiconnectedComponents_SelfLoopIsOwnComponent(t *testing.T) {
	g := core.NewGraph()
	v, w := g.NewNode(), g.NewNode()
	_, err := g.NewEdge(v, w)
	require.NoError(t, err)
	loop, err := g.NewEdge(v, v)
	require.NoError(t, err)

	comps, _ := bicon.BiconnectedComponents(g)
	require.Len(t, comps, 2)
	var loopComp *bicon.Component
	for i := range comps {
		if len(comps[i].Edges) == 1 && comps[i].Edges[0] == loop {
			loopComp = &comps[i]
		}
	}
	require.NotNil(t, loopComp)
	assert.Equal(t, []core.NodeID{v}, loopComp.Nodes)
}

func TestBiconnectedComponents_ParallelEdges(t *testing.T) {
	g := core.NewGraph()
	u, v := g.NewNode(), g.NewNode()
	_, err := g.NewEdge(u, v)
	require.NoError(t, err)
	_, err = g.NewEdge(u, v)
	require.NoError(t, err)

	comps, cuts := bicon.BiconnectedComponents(g)
	require.Len(t, comps, 1)
	assert.Len(t, comps[0].Edges, 2)
	assert.Empty(t, cuts)
}

func TestIsBiconnected(t *testing.T) {
	g := core.NewGraph()
	nodes := []core.NodeID{g.NewNode(), g.NewNode(), g.NewNode()}
	addPath(t, g, nodes)
	assert.False(t, bicon.IsBiconnected(g), "a path has a cut vertex")

	_, err := g.NewEdge(nodes[2], nodes[0])
	require.NoError(t, err)
	assert.True(t, bicon.IsBiconnected(g), "a triangle is biconnected")
}

func TestSTNumbering_Triangle(t *testing.T) {
	g := core.NewGraph()
	s, c, tt := g.NewNode(), g.NewNode(), g.NewNode()
	ref, err := g.NewEdge(s, tt)
	require.NoError(t, err)
	_, err = g.NewEdge(tt, c)
	require.NoError(t, err)
	_, err = g.NewEdge(c, s)
	require.NoError(t, err)

	num, err := bicon.STNumbering(g, ref)
	require.NoError(t, err)
	assert.Equal(t, 1, num.Get(s))
	assert.Equal(t, 3, num.Get(tt))
	assert.Equal(t, 2, num.Get(c))
}

func TestSTNumbering_MiddleProperty(t *testing.T) {
	// K4: every numbering must give middle nodes both a lower and a
	// higher neighbor.
	g := core.NewGraph()
	nodes := make([]core.NodeID, 4)
	for i := range nodes {
		nodes[i] = g.NewNode()
	}
	var ref core.EdgeID
	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			e, err := g.NewEdge(nodes[i], nodes[j])
			require.NoError(t, err)
			if i == 0 && j == 1 {
				ref = e
			}
		}
	}

	num, err := bicon.STNumbering(g, ref)
	require.NoError(t, err)

	assert.Equal(t, 1, num.Get(g.Source(ref)))
	assert.Equal(t, 4, num.Get(g.Target(ref)))
	used := map[int]bool{}
	for _, v := range g.Nodes() {
		used[num.Get(v)] = true
	}
	assert.Len(t, used, 4)

	for _, v := range nodes {
		n := num.Get(v)
		if n == 1 || n == 4 {
			continue
		}
		lower, higher := false, false
		for _, a := range g.AdjList(v) {
			w := g.NodeOf(a.Twin())
			if num.Get(w) < n {
				lower = true
			}
			if num.Get(w) > n {
				higher = true
			}
		}
		assert.True(t, lower && higher, "node %v has no sandwich", v)
	}
}

func TestSTNumbering_Deterministic(t *testing.T) {
	g, _, _ := twoTrianglesBridge(t)
	// Make it biconnected by tying the triangles together twice.
	nodes := g.Nodes()
	e, err := g.NewEdge(nodes[0], nodes[5])
	require.NoError(t, err)

	first, err := bicon.STNumbering(g, e)
	require.NoError(t, err)
	second, err := bicon.STNumbering(g, e)
	require.NoError(t, err)
	for _, v := range g.Nodes() {
		assert.Equal(t, first.Get(v), second.Get(v))
	}
}

func TestSTNumbering_RejectsNonBiconnected(t *testing.T) {
	g := core.NewGraph()
	nodes := []core.NodeID{g.NewNode(), g.NewNode(), g.NewNode()}
	edges := addPath(t, g, nodes)

	_, err := bicon.STNumbering(g, edges[0])
	assert.ErrorIs(t, err, bicon.ErrNotBiconnected)
}
