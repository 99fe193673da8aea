package builder

import (
	"fmt"

	"github.com/katalvlaran/lvlplanar/core"
)

// Solid names one of the five Platonic graphs.
type Solid int

const (
	Tetrahedron Solid = iota
	Cube
	Octahedron
	Dodecahedron
	Icosahedron
)

// String returns the lower-case solid name.
func (s Solid) String() string {
	switch s {
	case Tetrahedron:
		return "tetrahedron"
	case Cube:
		return "cube"
	case Octahedron:
		return "octahedron"
	case Dodecahedron:
		return "dodecahedron"
	case Icosahedron:
		return "icosahedron"
	}
	return "unknown"
}

// platonicEdges holds the fixed edge list per solid. Node numbering follows
// the usual layered drawings: apex (if any) first, then rings top to bottom.
// The dodecahedron uses its generalized-Petersen GP(10,2) form: outer
// 10-cycle 0..9, inner nodes 10..19 with chords i to i+2.
var platonicEdges = map[Solid][][2]int{
	Tetrahedron: {
		{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3},
	},
	Cube: {
		{0, 1}, {1, 2}, {2, 3}, {3, 0},
		{4, 5}, {5, 6}, {6, 7}, {7, 4},
		{0, 4}, {1, 5}, {2, 6}, {3, 7},
	},
	Octahedron: {
		{0, 1}, {0, 2}, {0, 3}, {0, 4},
		{1, 2}, {2, 3}, {3, 4}, {4, 1},
		{5, 1}, {5, 2}, {5, 3}, {5, 4},
	},
	Dodecahedron: {
		{0, 1}, {1, 2}, {2, 3}, {3, 4}, {4, 5},
		{5, 6}, {6, 7}, {7, 8}, {8, 9}, {9, 0},
		{0, 10}, {1, 11}, {2, 12}, {3, 13}, {4, 14},
		{5, 15}, {6, 16}, {7, 17}, {8, 18}, {9, 19},
		{10, 12}, {12, 14}, {14, 16}, {16, 18}, {18, 10},
		{11, 13}, {13, 15}, {15, 17}, {17, 19}, {19, 11},
	},
	Icosahedron: {
		{0, 1}, {0, 2}, {0, 3}, {0, 4}, {0, 5},
		{1, 2}, {2, 3}, {3, 4}, {4, 5}, {5, 1},
		{1, 6}, {1, 7}, {2, 7}, {2, 8}, {3, 8},
		{3, 9}, {4, 9}, {4, 10}, {5, 10}, {5, 6},
		{6, 7}, {7, 8}, {8, 9}, {9, 10}, {10, 6},
		{11, 6}, {11, 7}, {11, 8}, {11, 9}, {11, 10},
	},
}

// platonicNodes is the vertex count per solid.
var platonicNodes = map[Solid]int{
	Tetrahedron:  4,
	Cube:         8,
	Octahedron:   6,
	Dodecahedron: 20,
	Icosahedron:  12,
}

// Platonic builds the chosen Platonic solid's graph. All five are planar and
// 3-connected, so their combinatorial embedding is unique up to reflection,
// which makes them convenient fixtures for embedding and face-size tests.
func Platonic(s Solid) (*core.Graph, error) {
	pairs, ok := platonicEdges[s]
	if !ok {
		return nil, fmt.Errorf("Platonic: %d: %w", int(s), ErrUnknownSolid)
	}
	g, ns := fresh(platonicNodes[s], len(pairs))
	for _, p := range pairs {
		if err := link(g, "Platonic", ns[p[0]], ns[p[1]]); err != nil {
			return nil, err
		}
	}
	return g, nil
}
