// Package schur: solve options and the sentinel error set.
package schur

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/katalvlaran/arrowhead/system"
)

// Sentinel errors for the structured solve.
var (
	// ErrNilSystem is returned when the operator or right-hand-side system
	// is nil.
	ErrNilSystem = errors.New("schur: nil system")

	// ErrNilRHS is returned by SolveDense when the right-hand side is nil.
	ErrNilRHS = errors.New("schur: nil right-hand side")

	// ErrShapeMismatch is returned when operator and right-hand side
	// disagree on N, ds or dc (or on dense dimensions for SolveDense).
	ErrShapeMismatch = errors.New("schur: shape mismatch")

	// ErrSingularLocalBlock is returned when some local pivot G_i is
	// numerically singular — no local elimination exists.
	ErrSingularLocalBlock = errors.New("schur: singular local block")

	// ErrSingularReducedSystem is returned when the accumulated dc·ds
	// global system is numerically singular.
	ErrSingularReducedSystem = errors.New("schur: singular reduced system")

	// ErrOptionViolation is returned when an invalid Options field is
	// supplied (e.g. negative Workers).
	ErrOptionViolation = errors.New("schur: invalid option supplied")

	// ErrOutOfRange is returned by Solution.Block for a block index outside
	// the layout.
	ErrOutOfRange = errors.New("schur: block index out of range")
)

// Options configures a solve.
//
// Fields:
//   - Ctx     — cancellation/deadline for the parallel phases. The solve
//     itself never blocks on I/O; a caller deadline simply abandons the
//     remaining CPU work.
//   - Workers — fan-out width for local elimination and back-substitution.
//     0 selects runtime.GOMAXPROCS(0); values above N are clamped to N.
//     Negative values are ErrOptionViolation.
type Options struct {
	Ctx     context.Context
	Workers int
}

// DefaultOptions returns Options with a background context and automatic
// worker count.
func DefaultOptions() Options {
	return Options{
		Ctx:     context.Background(),
		Workers: 0,
	}
}

// normalize applies defaults to a possibly-nil opts and validates it.
func normalize(opts *Options) (Options, error) {
	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}
	if o.Ctx == nil {
		o.Ctx = context.Background()
	}
	if o.Workers < 0 {
		return o, fmt.Errorf("normalize: Workers=%d: %w", o.Workers, ErrOptionViolation)
	}

	return o, nil
}

// workersFor clamps the configured fan-out to the n available local indices.
func (o Options) workersFor(n int) int {
	w := o.Workers
	if w == 0 {
		w = runtime.GOMAXPROCS(0)
	}
	if w > n {
		w = n
	}

	return w
}

// checkPair validates the Solve precondition: both systems present and
// agreeing on N, ds and dc. Shape compatibility is a precondition, never
// inferred or repaired.
func checkPair(m, r *system.System) error {
	if m == nil || r == nil {
		return fmt.Errorf("Solve: %w", ErrNilSystem)
	}
	if !m.SameShape(r) {
		return fmt.Errorf("Solve: operator (N=%d,ds=%d,dc=%d) vs rhs (N=%d,ds=%d,dc=%d): %w",
			m.N(), m.BlockSize(), m.GlobalCount(), r.N(), r.BlockSize(), r.GlobalCount(), ErrShapeMismatch)
	}

	return nil
}
