// Package system defines the block-arrow structured system: the immutable
// aggregate of local blocks G, global blocks A and an optional second-order
// cross tensor B, together with its dense materialization.
//
// 🚀 What is a structured system?
//
//	N square ds×ds local blocks G_1..G_N sit on the diagonal, dc square
//	ds×ds global blocks A_1..A_dc form the border coupling every local
//	index to every shared parameter, and — at second order only — a cross
//	tensor B of N·dc·dc blocks encodes per-observation cross-parameter
//	curvature. The equivalent dense matrix is (N·ds+dc·ds) square, but the
//	structured form stores O(N + dc + N·dc²) blocks and never materializes
//	it on the solve path.
//
// ✨ Key properties:
//   - Immutable after construction — all operations are read-only queries,
//     so concurrent use needs no locking
//   - Eagerly validated — every block's shape is checked at New; mismatches
//     surface as ErrShapeMismatch, never as silent truncation
//   - Tagged coupling — the cross tensor is either present (second order)
//     or absent; supplying it at first order is ErrInvalidConfiguration
//
// ⚙️ Usage:
//
//	g := []*mat.Dense{...} // N blocks, ds×ds
//	a := []*mat.Dense{...} // dc blocks, ds×ds
//	s, err := system.New(system.FirstOrder, g, a, nil)
//	if err != nil { ... }
//	dense := s.MatrixFormFull() // test/benchmark only
//
// MatrixFormFull is O((N+dc)²·ds²) time and memory and exists for
// validation and benchmarking; the structured solve in package schur never
// calls it.
package system
