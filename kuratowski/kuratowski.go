// Package kuratowski extracts Kuratowski subdivisions — certificates
// of non-planarity — from graphs rejected by the planarity test.
//
// Every planarity failure pins down one biconnected component and a
// sweep node whose edge bundle could not be made consecutive. The
// extractor shrinks that component to a minimal non-planar subgraph,
// which by Kuratowski's theorem is exactly a subdivision of K_5 or
// K_{3,3}, verifies it with the independent degree-profile classifier
// and tags it with the minor pattern it matched. The bundled search
// additionally reroutes single subdivision paths through the rest of
// the component to enumerate further distinct certificates.
//
// Every returned wrapper has passed WhichKuratowski; a caller can
// re-validate any certificate in linear time without trusting the
// extraction.
package kuratowski

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lvlplanar/core"
	"github.com/katalvlaran/lvlplanar/planarity"
)

var (
	// ErrNilGraph is returned when the input graph is nil.
	ErrNilGraph = errors.New("kuratowski: nil graph")
	// ErrInternal flags a certificate that failed re-validation; it
	// indicates a bug, not a property of the input.
	ErrInternal = errors.New("kuratowski: internal invariant violated")
)

// Options configure Extract.
type Options struct {
	// Limit caps the number of wrappers collected; 0 means one per
	// obstruction without the bundled search, a negative value means
	// unlimited bundled search.
	Limit int
	// Bundles enables the rerouting search for additional distinct
	// subdivisions per obstruction.
	Bundles bool
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions collects one certificate per obstruction.
func DefaultOptions() Options { return Options{} }

// WithLimit caps the total number of returned wrappers. A positive
// limit implies the bundled search; negative means unlimited.
func WithLimit(n int) Option {
	return func(o *Options) {
		o.Limit = n
		if n != 0 {
			o.Bundles = true
		}
	}
}

// WithBundles enables the exhaustive rerouting search.
func WithBundles() Option {
	return func(o *Options) { o.Bundles = true; o.Limit = -1 }
}

// Extract returns Kuratowski subdivisions of g, or nil when g is
// planar. The graph is never modified.
//
// Complexity: O(E^2 * V) per obstruction for the minimal certificate;
// the bundled search additionally enumerates rerouted paths.
// Errors: ErrNilGraph, ErrInternal.
func Extract(g *core.Graph, opts ...Option) ([]Wrapper, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	obs, err := planarity.Obstructions(g)
	if err != nil {
		return nil, err
	}
	var out []Wrapper
	for i := range obs {
		ob := &obs[i]
		edges, err := minimalObstruction(g, ob.Edges)
		if err != nil {
			return nil, err
		}
		kind := WhichKuratowski(g, edges)
		if kind == KindNone {
			return nil, fmt.Errorf("%w: minimal obstruction fails classification", ErrInternal)
		}
		edges = assembleWitness(g, ob, edges, kind)
		w := Wrapper{Type: classify(g, ob, edges, kind), Edges: edges, Failed: ob.Failed}
		if isANewKuratowski(out, edges) {
			out = append(out, w)
		}
		if o.Limit > 0 && len(out) >= o.Limit {
			return out, nil
		}
		if o.Bundles {
			out = extractBundles(g, ob, w, out, o.Limit)
			if o.Limit > 0 && len(out) >= o.Limit {
				return out, nil
			}
		}
	}
	return out, nil
}

// minimalObstruction strips a non-planar edge set down to a minimal
// non-planar subgraph: every edge whose removal keeps the rest
// non-planar is dropped, in deterministic order. The survivor is a
// Kuratowski subdivision.
func minimalObstruction(g *core.Graph, edges []core.EdgeID) ([]core.EdgeID, error) {
	keep := append([]core.EdgeID(nil), edges...)
	for i := 0; i < len(keep); i++ {
		trial := make([]core.EdgeID, 0, len(keep)-1)
		trial = append(trial, keep[:i]...)
		trial = append(trial, keep[i+1:]...)
		planar, err := planarity.IsPlanar(buildMasked(g, trial))
		if err != nil {
			return nil, err
		}
		if !planar {
			keep = trial
			i--
		}
	}
	return keep, nil
}

// buildMasked copies just the given edges of g into a fresh graph.
// Node and edge identity is not preserved; the caller only tests
// planarity of the result.
func buildMasked(g *core.Graph, edges []core.EdgeID) *core.Graph {
	h := core.NewGraph(core.WithEdgeCapacity(len(edges)))
	sub := make(map[core.NodeID]core.NodeID)
	at := func(v core.NodeID) core.NodeID {
		sv, ok := sub[v]
		if !ok {
			sv = h.NewNode()
			sub[v] = sv
		}
		return sv
	}
	for _, e := range edges {
		_, _ = h.NewEdge(at(g.Source(e)), at(g.Target(e)))
	}
	return h
}

// extractBundles reroutes one subdivision path at a time through the
// failing component and collects every rerouted edge set that still
// classifies, until the limit is hit.
func extractBundles(g *core.Graph, ob *planarity.Obstruction, base Wrapper, out []Wrapper, limit int) []Wrapper {
	inComp := make(map[core.EdgeID]bool, len(ob.Edges))
	for _, e := range ob.Edges {
		inComp[e] = true
	}
	_, paths, ok := decompose(g, base.Edges)
	if !ok {
		return out
	}

	subNodes := make(map[core.NodeID]bool)
	for _, e := range base.Edges {
		subNodes[g.Source(e)] = true
		subNodes[g.Target(e)] = true
	}

	for _, p := range paths {
		// Nodes of the subdivision outside this path are off limits
		// for the detour; the path's own interior is rerouted away.
		exclude := make(map[core.NodeID]bool, len(subNodes))
		for v := range subNodes {
			exclude[v] = true
		}
		delete(exclude, p.a)
		delete(exclude, p.b)
		onP := p.a
		for _, e := range p.edges {
			onP = g.Opposite(e, onP)
			delete(exclude, onP)
		}

		skip := make(map[core.EdgeID]bool, len(p.edges))
		for _, e := range p.edges {
			skip[e] = true
		}
		bt := NewDynamicBacktrack(g, p.a, p.b, func(e core.EdgeID) bool {
			return inComp[e] && !skip[e]
		})
		for {
			alt, more := bt.AddNextPathExclude(exclude)
			if !more {
				break
			}
			cand := minorE(Path{Edges: base.Edges}, Path{Edges: p.edges}, Path{Edges: alt})
			kind := WhichKuratowski(g, cand)
			if kind == KindNone || !isANewKuratowski(out, cand) {
				continue
			}
			tag := classify(g, ob, cand, kind)
			if base.Type == TypeA {
				tag = inA(tag)
			}
			out = append(out, Wrapper{Type: tag, Edges: cand, Failed: ob.Failed})
			if limit > 0 && len(out) >= limit {
				return out
			}
		}
	}
	return out
}

// isANewKuratowski reports whether edges differ, as a set, from every
// already-collected wrapper.
func isANewKuratowski(existing []Wrapper, edges []core.EdgeID) bool {
	key := edgeSetKey(edges)
	for i := range existing {
		if edgeSetKey(existing[i].Edges) == key {
			return false
		}
	}
	return true
}

func edgeSetKey(edges []core.EdgeID) string {
	s := append([]core.EdgeID(nil), edges...)
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j] < s[j-1]; j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
	var b []byte
	for _, e := range s {
		b = append(b, byte(e), byte(e>>8), byte(e>>16), byte(e>>24))
	}
	return string(b)
}
