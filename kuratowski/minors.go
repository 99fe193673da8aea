package kuratowski

import (
	"github.com/katalvlaran/lvlplanar/core"
	"github.com/katalvlaran/lvlplanar/planarity"
)

// SubdivisionType tags a wrapper with the minor pattern it was built
// from. The A-prefixed values mark the sharper patterns B, C, D and
// E1..E4 when they surface inside an A-shaped obstruction during the
// bundled search. TypeE5 is the only K_5-producing value; everything
// else describes a K_{3,3}.
type SubdivisionType uint8

const (
	TypeA SubdivisionType = iota
	TypeAB
	TypeAC
	TypeAD
	TypeAE1
	TypeAE2
	TypeAE3
	TypeAE4
	TypeB
	TypeC
	TypeD
	TypeE1
	TypeE2
	TypeE3
	TypeE4
	TypeE5
)

var typeNames = [...]string{
	"A", "AB", "AC", "AD", "AE1", "AE2", "AE3", "AE4",
	"B", "C", "D", "E1", "E2", "E3", "E4", "E5",
}

func (t SubdivisionType) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "unknown"
}

// Kind returns the Kuratowski graph this type subdivides.
func (t SubdivisionType) Kind() Kind {
	if t == TypeE5 {
		return KindK5
	}
	return KindK33
}

// Wrapper is one extracted subdivision: its edges, the minor pattern
// it matched, and the sweep node at which the obstruction surfaced.
type Wrapper struct {
	Type   SubdivisionType
	Edges  []core.EdgeID
	Failed core.NodeID
}

// IsK5 reports whether the wrapper is a K_5 subdivision.
func (w Wrapper) IsK5() bool { return w.Type.Kind() == KindK5 }

// IsK33 reports whether the wrapper is a K_{3,3} subdivision.
func (w Wrapper) IsK33() bool { return w.Type.Kind() == KindK33 }

// Path is a witness path handed to the minor assemblers.
type Path struct {
	Edges []core.EdgeID
}

// unionEdges concatenates paths dropping duplicates, keeping first
// occurrence order.
func unionEdges(paths ...Path) []core.EdgeID {
	seen := make(map[core.EdgeID]bool)
	var out []core.EdgeID
	for _, p := range paths {
		for _, e := range p.Edges {
			if !seen[e] {
				seen[e] = true
				out = append(out, e)
			}
		}
	}
	return out
}

// subtractEdges removes drop's edges from base, keeping order.
func subtractEdges(base Path, drop Path) Path {
	dropped := make(map[core.EdgeID]bool, len(drop.Edges))
	for _, e := range drop.Edges {
		dropped[e] = true
	}
	var out []core.EdgeID
	for _, e := range base.Edges {
		if !dropped[e] {
			out = append(out, e)
		}
	}
	return Path{Edges: out}
}

// minorA assembles the plain three-path pattern: the face walk, the
// two stop paths and one pertinent path.
func minorA(face, stopX, stopY, pertinent Path) []core.EdgeID {
	return unionEdges(face, stopX, stopY, pertinent)
}

// minorB threads one more external path out of the branch node,
// truncated the moment it touches the pertinent path.
func minorB(face, stopX, stopY, pertinent, external Path) []core.EdgeID {
	shared := make(map[core.EdgeID]bool, len(pertinent.Edges))
	for _, e := range pertinent.Edges {
		shared[e] = true
	}
	trimmed := Path{}
	for _, e := range external.Edges {
		if shared[e] {
			break
		}
		trimmed.Edges = append(trimmed.Edges, e)
	}
	return unionEdges(face, stopX, stopY, pertinent, trimmed)
}

// minorE splices the face walk around a detour: drop is the walk
// segment cut out, add is the path replacing it. The same assembler
// serves every rerouted certificate of the bundled search; the tag is
// decided afterwards from the resulting shape.
func minorE(face, drop, add Path, rest ...Path) []core.EdgeID {
	parts := append([]Path{subtractEdges(face, drop), add}, rest...)
	return unionEdges(parts...)
}

// minorE5 assembles the unique K_5 pattern. The structural
// preconditions px == stopX, py == stopY and z == w are verified
// here rather than assumed; ok is false when they do not hold.
func minorE5(face, pathX, pathY, pathW Path, px, py, z, stopX, stopY, w core.NodeID) ([]core.EdgeID, bool) {
	if px != stopX || py != stopY || z != w {
		return nil, false
	}
	return unionEdges(face, pathX, pathY, pathW), true
}

// witnessSet hands out the subdivision paths of one certificate by
// their endpoints, each at most once.
type witnessSet struct {
	paths []subPath
	used  []bool
}

func newWitnessSet(paths []subPath) *witnessSet {
	return &witnessSet{paths: paths, used: make([]bool, len(paths))}
}

func (ws *witnessSet) between(a, b core.NodeID) (Path, bool) {
	for i, p := range ws.paths {
		if ws.used[i] {
			continue
		}
		if (p.a == a && p.b == b) || (p.a == b && p.b == a) {
			ws.used[i] = true
			return Path{Edges: p.edges}, true
		}
	}
	return Path{}, false
}

func (ws *witnessSet) at(v core.NodeID) (Path, bool) {
	for i, p := range ws.paths {
		if ws.used[i] {
			continue
		}
		if p.a == v || p.b == v {
			ws.used[i] = true
			return Path{Edges: p.edges}, true
		}
	}
	return Path{}, false
}

// rest unions every path not yet handed out.
func (ws *witnessSet) rest() Path {
	var out Path
	for i, p := range ws.paths {
		if !ws.used[i] {
			out.Edges = append(out.Edges, p.edges...)
		}
	}
	return out
}

// assembleWitness rebuilds a verified certificate through the minor
// assembler matching its pattern, reading the witness paths off the
// subdivision itself. The edge set never changes; the composition
// orders it by witness role. When the obstruction's witnesses did not
// survive minimization the certificate is returned as found.
func assembleWitness(g *core.Graph, ob *planarity.Obstruction, edges []core.EdgeID, kind Kind) []core.EdgeID {
	branch, paths, ok := decompose(g, edges)
	if !ok || len(ob.Attach) == 0 {
		return edges
	}
	stopX := ob.Attach[0]
	stopY := ob.Attach[len(ob.Attach)-1]
	if stopX == stopY || stopX == ob.Failed || stopY == ob.Failed {
		return edges
	}

	if kind == KindK5 {
		// Three witness paths meet at a fourth branch node m: one from
		// each stop and the pertinent one from the failed node.
		for _, m := range branch {
			if m == ob.Failed || m == stopX || m == stopY {
				continue
			}
			ws := newWitnessSet(paths)
			pathX, okX := ws.between(stopX, m)
			pathY, okY := ws.between(stopY, m)
			pathW, okW := ws.between(ob.Failed, m)
			if !okX || !okY || !okW {
				continue
			}
			if out, done := minorE5(ws.rest(), pathX, pathY, pathW, stopX, stopY, m, stopX, stopY, m); done {
				return out
			}
		}
		return edges
	}

	ws := newWitnessSet(paths)
	pert, okP := ws.at(ob.Failed)
	sx, okX := ws.at(stopX)
	sy, okY := ws.at(stopY)
	if !okP || !okX || !okY {
		return edges
	}
	if ext, okE := ws.at(ob.Failed); okE {
		return minorB(ws.rest(), sx, sy, pert, ext)
	}
	return minorA(ws.rest(), sx, sy, pert)
}

// classify assigns the minor pattern of a verified subdivision
// relative to the obstruction it came from. K_5 is always the E5
// pattern. For K_{3,3} the sharpest pattern whose witnesses hold is
// chosen: the E splices need all three witnesses (failed node and
// both stops) among the branch nodes, D and C need stops strictly
// inside a subdivision path, B needs the failed node as a branch
// node, and A always applies.
func classify(g *core.Graph, ob *planarity.Obstruction, edges []core.EdgeID, kind Kind) SubdivisionType {
	if kind == KindK5 {
		return TypeE5
	}
	deg := make(map[core.NodeID]int)
	for _, e := range edges {
		deg[g.Source(e)]++
		deg[g.Target(e)]++
	}
	isBranch := func(v core.NodeID) bool { return deg[v] >= 3 }
	inside := func(v core.NodeID) bool { return deg[v] == 2 }

	var stopX, stopY core.NodeID = core.NilNode, core.NilNode
	if len(ob.Attach) > 0 {
		stopX = ob.Attach[0]
		stopY = ob.Attach[len(ob.Attach)-1]
	}

	switch {
	case isBranch(ob.Failed) && isBranch(stopX) && isBranch(stopY):
		// Deterministic splice tag from the relative order of the
		// stops around the failed node.
		switch {
		case stopX < ob.Failed && stopY < ob.Failed:
			return TypeE1
		case stopX < ob.Failed:
			return TypeE2
		case stopY < ob.Failed:
			return TypeE3
		default:
			return TypeE4
		}
	case inside(stopX) && inside(stopY):
		return TypeD
	case inside(stopX) || inside(stopY):
		return TypeC
	case isBranch(ob.Failed):
		return TypeB
	default:
		return TypeA
	}
}

// inA maps a pattern to its A-combined counterpart for finds made by
// the bundled search inside an A-shaped obstruction.
func inA(t SubdivisionType) SubdivisionType {
	switch t {
	case TypeB:
		return TypeAB
	case TypeC:
		return TypeAC
	case TypeD:
		return TypeAD
	case TypeE1:
		return TypeAE1
	case TypeE2:
		return TypeAE2
	case TypeE3:
		return TypeAE3
	case TypeE4:
		return TypeAE4
	default:
		return t
	}
}
