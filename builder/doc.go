// Package builder constructs deterministic block-arrow fixture systems for
// tests, examples and benchmarks.
//
// The original use case generated inputs with unseeded randomness inside a
// timing loop; this package replaces that with explicit, reproducible
// generators:
//
//   - Uniform — scaled-identity local and global blocks, first order. Small
//     enough to verify by hand; the 6×6 scenarios in the test suites are
//     built from it.
//   - Random  — seeded pseudo-random blocks with diagonally dominant pivots,
//     at either derivative order, with or without a cross tensor. The same
//     seed always yields the same system, so tolerance-based tests stay
//     stable run over run.
//   - RandomDense — a seeded dense matrix, for right-hand sides and oracle
//     inputs.
//
// Generators return ordinary system.System values; nothing here is special
// to benchmarking beyond determinism.
package builder
