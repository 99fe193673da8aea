// Package lvlplanar is your in-memory toolkit for planarity testing,
// combinatorial embeddings, and everything a planar graph can certify.
//
// 🚀 What is lvlplanar?
//
//	A focused, arena-backed library that brings together:
//		• Core primitives: an index-arena graph with explicit rotation systems
//		• Planarity: PQ-tree vertex-addition testing and embedding
//		• Certificates: Kuratowski K5 / K3,3 subdivision extraction
//		• Decomposition: biconnected components, st-numbering, SPQR trees
//		• Optimization: embeddings maximizing the size of one face
//		• Clusters: c-planarity testing and embedding of clustered graphs
//
// ✨ Why choose lvlplanar?
//
//   - Deterministic – arena indices, stable iteration, reproducible embeddings
//   - Verifiable – every embedding passes the Euler face check
//   - Pure Go core – the graph engine has no dependencies beyond the stdlib
//   - Practical – a CLI for edge-list files, DOT/SVG rendering included
//
// Under the hood, everything is organized under focused subpackages:
//
//	core/       — arena graph, adjacency darts, rotation systems, faces
//	bicon/      — connectivity, biconnected components, st-numbering
//	pqtree/     — the PQ-tree: Reduction, ReplaceRoot, frontier shapes
//	planarity/  — IsPlanar / Embed via the vertex-addition sweep
//	kuratowski/ — Kuratowski subdivision certificates for nonplanar inputs
//	spqr/       — SPQR decomposition of biconnected graphs
//	maxface/    — embeddings maximizing one face, with node/edge lengths
//	cluster/    — cluster-tree overlay, c-connectivity, arc contiguity
//	cplanar/    — c-planarity test and embedding for clustered graphs
//	builder/    — deterministic fixtures: cycles, grids, K5, Platonic solids
//
// Quick ASCII example:
//
//	    A───B
//	    │ ╲ │
//	    C───D
//
//	a square with one diagonal: planar, three faces, and the diagonal can
//	always be exposed on the outer face.
//
// Dive into examples/ for runnable demos of each pipeline stage, and try
// the lvlplanar CLI on plain edge-list files.
//
//	go get github.com/katalvlaran/lvlplanar
package lvlplanar
