package kuratowski

import "github.com/katalvlaran/lvlplanar/core"

// Kind is the verdict of the structural classifier.
type Kind uint8

const (
	// KindNone marks an edge list that is no Kuratowski subdivision.
	KindNone Kind = iota
	// KindK33 marks a subdivision of K_{3,3}.
	KindK33
	// KindK5 marks a subdivision of K_5.
	KindK5
)

func (k Kind) String() string {
	switch k {
	case KindK33:
		return "K33"
	case KindK5:
		return "K5"
	default:
		return "none"
	}
}

// subPath is one subdivision path between two branch nodes.
type subPath struct {
	a, b  core.NodeID
	edges []core.EdgeID
}

// WhichKuratowski classifies edges by degree profile alone: a K_{3,3}
// subdivision has exactly six degree-3 branch nodes joined by nine
// node-disjoint paths in a bipartite pattern, a K_5 subdivision five
// degree-4 branch nodes joined by ten paths. Everything else is
// KindNone. The check is independent of how the edge list was found.
//
// Complexity: O(len(edges)).
func WhichKuratowski(g *core.Graph, edges []core.EdgeID) Kind {
	branch, paths, ok := decompose(g, edges)
	if !ok {
		return KindNone
	}

	pairSeen := make(map[[2]core.NodeID]bool, len(paths))
	for _, p := range paths {
		key := orderPair(p.a, p.b)
		if pairSeen[key] {
			return KindNone // doubled path between two branch nodes
		}
		pairSeen[key] = true
	}

	switch len(branch) {
	case 6:
		if len(paths) != 9 || !allDegree(g, edges, branch, 3) {
			return KindNone
		}
		if !isBipartite33(branch, pairSeen) {
			return KindNone
		}
		return KindK33
	case 5:
		if len(paths) != 10 || !allDegree(g, edges, branch, 4) {
			return KindNone
		}
		// Ten distinct pairs over five nodes is the complete graph.
		return KindK5
	default:
		return KindNone
	}
}

// decompose splits the subgraph spanned by edges into branch nodes
// (degree 3 or more) and the paths of degree-2 nodes joining them.
// ok is false when the subgraph has loops, endpoints of degree 1,
// degree above 4, a path closing on its own branch node, or a
// floating cycle without branch nodes.
func decompose(g *core.Graph, edges []core.EdgeID) (branch []core.NodeID, paths []subPath, ok bool) {
	deg := make(map[core.NodeID]int)
	incident := make(map[core.NodeID][]core.EdgeID)
	for _, e := range edges {
		if g.IsLoop(e) {
			return nil, nil, false
		}
		s, t := g.Source(e), g.Target(e)
		deg[s]++
		deg[t]++
		incident[s] = append(incident[s], e)
		incident[t] = append(incident[t], e)
	}
	for v, d := range deg {
		switch {
		case d == 2:
		case d == 3 || d == 4:
			branch = append(branch, v)
		default:
			return nil, nil, false
		}
	}
	sortNodes(branch)

	visited := make(map[core.EdgeID]bool, len(edges))
	for _, b := range branch {
		for _, e := range incident[b] {
			if visited[e] {
				continue
			}
			p, pathOK := tracePath(g, incident, deg, visited, b, e)
			if !pathOK {
				return nil, nil, false
			}
			paths = append(paths, p)
		}
	}
	if len(visited) != len(edges) {
		return nil, nil, false // leftover degree-2 cycle
	}
	return branch, paths, true
}

// tracePath follows the degree-2 chain starting at branch node b via
// edge e until it reaches another branch node.
func tracePath(g *core.Graph, incident map[core.NodeID][]core.EdgeID, deg map[core.NodeID]int, visited map[core.EdgeID]bool, b core.NodeID, e core.EdgeID) (subPath, bool) {
	p := subPath{a: b}
	cur, via := b, e
	for {
		visited[via] = true
		p.edges = append(p.edges, via)
		cur = g.Opposite(via, cur)
		if deg[cur] != 2 {
			break
		}
		next := core.NilEdge
		for _, cand := range incident[cur] {
			if cand != via {
				next = cand
				break
			}
		}
		if next == core.NilEdge || visited[next] {
			return subPath{}, false
		}
		via = next
	}
	if cur == b {
		return subPath{}, false // path closing on its own endpoint
	}
	p.b = cur
	return p, true
}

// allDegree reports whether every branch node has exactly want
// incident edges in the subgraph.
func allDegree(g *core.Graph, edges []core.EdgeID, branch []core.NodeID, want int) bool {
	deg := make(map[core.NodeID]int, len(branch))
	for _, e := range edges {
		deg[g.Source(e)]++
		deg[g.Target(e)]++
	}
	for _, b := range branch {
		if deg[b] != want {
			return false
		}
	}
	return true
}

// isBipartite33 verifies that the branch adjacency is the complete
// bipartite pattern on 3+3 nodes.
func isBipartite33(branch []core.NodeID, pair map[[2]core.NodeID]bool) bool {
	if len(branch) != 6 {
		return false
	}
	// Side A: the first node plus the two non-neighbors of it.
	a0 := branch[0]
	var sideA, sideB []core.NodeID
	sideA = append(sideA, a0)
	for _, v := range branch[1:] {
		if pair[orderPair(a0, v)] {
			sideB = append(sideB, v)
		} else {
			sideA = append(sideA, v)
		}
	}
	if len(sideA) != 3 || len(sideB) != 3 {
		return false
	}
	for _, a := range sideA {
		for _, b := range sideB {
			if !pair[orderPair(a, b)] {
				return false
			}
		}
	}
	return true
}

func orderPair(a, b core.NodeID) [2]core.NodeID {
	if a > b {
		a, b = b, a
	}
	return [2]core.NodeID{a, b}
}

func sortNodes(s []core.NodeID) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j] < s[j-1]; j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}
