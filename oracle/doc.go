// Package oracle wraps the trusted dense linear solve the rest of the
// library is validated and benchmarked against.
//
// The solve itself is gonum's LU-backed mat.Dense.Solve — treated as an
// external primitive, never reimplemented here. The wrapper adds only the
// library's sentinel error surface: shape disagreement is ErrShapeMismatch,
// a singular or numerically unusable matrix is ErrSingular, both matchable
// with errors.Is.
//
// Tests use the oracle as the correctness reference for the structured
// solve; benchmarks use it as the cubic-cost baseline. Nothing on the
// structured solve's hot path calls into this package.
package oracle
