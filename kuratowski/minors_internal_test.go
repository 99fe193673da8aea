package kuratowski

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/lvlplanar/core"
	"github.com/katalvlaran/lvlplanar/planarity"
)

func path(ids ...core.EdgeID) Path { return Path{Edges: ids} }

func TestMinorA_UnionWithoutDuplicates(t *testing.T) {
	got := minorA(path(1, 2, 3), path(3, 4), path(5), path(6, 1))
	assert.Equal(t, []core.EdgeID{1, 2, 3, 4, 5, 6}, got)
}

func TestMinorB_TruncatesExternalAtPertinent(t *testing.T) {
	got := minorB(path(1), path(2), path(3), path(10, 11), path(20, 21, 10, 22))
	// 10 sits on the pertinent path, so the external tail stops at 21.
	assert.Equal(t, []core.EdgeID{1, 2, 3, 10, 11, 20, 21}, got)
}

func TestMinorE_Splice(t *testing.T) {
	got := minorE(path(1, 2, 3), path(2), path(6), path(9))
	assert.Equal(t, []core.EdgeID{1, 3, 6, 9}, got)
}

func TestMinorE5_ChecksPreconditions(t *testing.T) {
	face, px, py, pw := path(1, 2), path(3), path(4), path(5)

	got, ok := minorE5(face, px, py, pw, 10, 11, 12, 10, 11, 12)
	assert.True(t, ok)
	assert.Equal(t, []core.EdgeID{1, 2, 3, 4, 5}, got)

	_, ok = minorE5(face, px, py, pw, 10, 11, 12, 99, 11, 12)
	assert.False(t, ok, "px must coincide with stopX")

	_, ok = minorE5(face, px, py, pw, 10, 11, 12, 10, 11, 99)
	assert.False(t, ok, "z must coincide with w")
}

// assembleWitness routes a certificate through the pattern assemblers
// without ever changing its edge set.
func TestAssembleWitness_PreservesEdgeSet(t *testing.T) {
	g := core.NewGraph()
	a := []core.NodeID{g.NewNode(), g.NewNode(), g.NewNode()}
	b := []core.NodeID{g.NewNode(), g.NewNode(), g.NewNode()}
	var edges []core.EdgeID
	for _, u := range a {
		for _, v := range b {
			e, err := g.NewEdge(u, v)
			if err != nil {
				t.Fatal(err)
			}
			edges = append(edges, e)
		}
	}

	ob := &planarity.Obstruction{Failed: a[0], Attach: []core.NodeID{b[0], b[2]}}
	got := assembleWitness(g, ob, edges, KindK33)
	assert.ElementsMatch(t, edges, got)
	assert.Equal(t, KindK33, WhichKuratowski(g, got))

	k5 := core.NewGraph()
	ns := []core.NodeID{k5.NewNode(), k5.NewNode(), k5.NewNode(), k5.NewNode(), k5.NewNode()}
	var k5edges []core.EdgeID
	for i := range ns {
		for j := i + 1; j < len(ns); j++ {
			e, err := k5.NewEdge(ns[i], ns[j])
			if err != nil {
				t.Fatal(err)
			}
			k5edges = append(k5edges, e)
		}
	}
	ob5 := &planarity.Obstruction{Failed: ns[0], Attach: []core.NodeID{ns[1], ns[2]}}
	got = assembleWitness(k5, ob5, k5edges, KindK5)
	assert.ElementsMatch(t, k5edges, got)
	assert.Equal(t, KindK5, WhichKuratowski(k5, got))
}

// Without usable witnesses the certificate passes through untouched.
func TestAssembleWitness_FallsBack(t *testing.T) {
	g := core.NewGraph()
	u, v := g.NewNode(), g.NewNode()
	e, err := g.NewEdge(u, v)
	if err != nil {
		t.Fatal(err)
	}
	edges := []core.EdgeID{e}

	ob := &planarity.Obstruction{Failed: u}
	got := assembleWitness(g, ob, edges, KindK33)
	assert.Equal(t, edges, got)
}

func TestInA_Mapping(t *testing.T) {
	assert.Equal(t, TypeAB, inA(TypeB))
	assert.Equal(t, TypeAC, inA(TypeC))
	assert.Equal(t, TypeAD, inA(TypeD))
	assert.Equal(t, TypeAE3, inA(TypeE3))
	assert.Equal(t, TypeA, inA(TypeA))
	assert.Equal(t, TypeE5, inA(TypeE5))
}
