// Package schur implements the structured block-arrow solve: Schur-complement
// elimination that matches a dense solve of the materialized system while
// never forming the dense operator.
//
// 🚀 What does it do?
//
//	Given an operator system M and a right-hand side — either another
//	structured system R (Solve) or an arbitrary dense matrix/vector
//	(SolveDense) — it produces the X with M_dense·X = R_dense, exactly as a
//	dense solve would, but in work dominated by N small ds×ds
//	factorizations instead of one (N·ds+dc·ds)³ factorization.
//
// Algorithm Outline:
//  1. Local elimination — for each local index i independently, factorize
//     the ds×ds pivot G_i and apply G_i⁻¹ to the border and to i's slice of
//     the right-hand side. O(N·ds³·dc) total, embarrassingly parallel.
//  2. Schur accumulation — sum each local index's contribution into the
//     reduced (dc·ds)² global system. Workers keep thread-local partial
//     sums, merged after the group joins; nothing races on shared memory.
//  3. Reduced solve — one dense solve of dc·ds unknowns, independent of N.
//     This is the synchronization barrier between the two parallel phases.
//  4. Back-substitution — recover each local row block from the global
//     solution, again in parallel across i, each worker writing its own
//     disjoint slice of the pre-allocated output.
//
// Floating-point note: the partial-sum merge is ordered by worker index, so
// a solve is bit-for-bit reproducible for a fixed Workers setting; changing
// Workers reorders the associative accumulation and may perturb the last
// bits, which is within the library's tolerance contract.
//
// Errors:
//   - ErrSingularLocalBlock    — some pivot G_i is numerically singular
//   - ErrSingularReducedSystem — the accumulated global system is singular
//   - ErrShapeMismatch         — M and R disagree on N, ds or dc
//
// Neither input is mutated; solving twice with the same inputs and options
// yields identical output, and concurrent solves against one operator need
// no locking.
package schur
