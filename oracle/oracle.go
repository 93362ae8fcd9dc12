package oracle

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Sentinel errors for the dense solve.
var (
	// ErrNilMatrix is returned when either operand is nil.
	ErrNilMatrix = errors.New("oracle: nil matrix")

	// ErrShapeMismatch is returned when a is not square or the row counts
	// of a and b disagree.
	ErrShapeMismatch = errors.New("oracle: shape mismatch")

	// ErrSingular is returned when a is singular to working precision and
	// no finite solution exists.
	ErrSingular = errors.New("oracle: matrix is singular to working precision")
)

// Solve returns the x satisfying a·x = b, computed by the trusted dense
// primitive (LU with partial pivoting under the hood).
//
// Inputs: a square n×n matrix a and an n×c right-hand side b (c ≥ 1; a
// column vector is the c = 1 case). The result is newly allocated; neither
// operand is mutated.
//
// Errors: ErrNilMatrix, ErrShapeMismatch, ErrSingular.
// Complexity: O(n³ + n²·c).
func Solve(a, b mat.Matrix) (*mat.Dense, error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("Solve: %w", ErrNilMatrix)
	}
	ar, ac := a.Dims()
	br, _ := b.Dims()
	if ar != ac {
		return nil, fmt.Errorf("Solve: lhs is %dx%d, want square: %w", ar, ac, ErrShapeMismatch)
	}
	if br != ar {
		return nil, fmt.Errorf("Solve: rhs has %d rows, want %d: %w", br, ar, ErrShapeMismatch)
	}

	var x mat.Dense
	if err := x.Solve(a, b); err != nil {
		// gonum reports singular and near-singular systems through its own
		// error values; fold both into the package sentinel.
		return nil, fmt.Errorf("Solve: %v: %w", err, ErrSingular)
	}

	return &x, nil
}
