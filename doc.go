// Package arrowhead solves block-arrow (bordered block-diagonal) linear
// systems — many small local blocks coupled through a handful of shared
// global blocks — exactly, in a fraction of the work of a dense solve.
//
// 🚀 What is arrowhead?
//
//	A structured linear-algebra library for systems of the shape
//
//	    ┌ G_1          A_1 … A_dc ┐
//	    │     G_2      A_1 … A_dc │
//	    │         ⋱        ⋮      │
//	    │             G_N  ⋮      │
//	    └ A_1ᵀ  …  A_1ᵀ   C       ┘
//
//	that arise when N observation-level unknowns are tied together by a
//	small set of dc shared parameters (bundle adjustment, mixed-effects
//	models, per-sample curvature systems, derivative propagation).
//
// ✨ Why choose arrowhead?
//
//   - Exact answers — the structured solve matches a dense solve of the
//     fully materialized matrix to floating-point tolerance
//   - Linear scaling — local elimination is O(N), the one dense solve is
//     dc·ds unknowns, independent of N
//   - Parallel by construction — per-block elimination and back-substitution
//     fan out across workers with no shared mutable state
//   - Deterministic failures — singular pivots surface as sentinel errors,
//     never as garbage numbers
//
// Everything is organized under four subpackages:
//
//	system/  — the block-arrow data model (G, A, optional cross tensor B)
//	           and its dense materialization
//	schur/   — the structured elimination solve (the core algorithm)
//	oracle/  — the trusted dense solve used as correctness reference and
//	           benchmark baseline
//	builder/ — deterministic fixture systems for tests and benchmarks
//
// Dive into each package's doc.go for algorithm outlines, complexity notes
// and worked examples.
//
//	go get github.com/katalvlaran/arrowhead
package arrowhead
