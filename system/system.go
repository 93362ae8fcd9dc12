package system

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// System is the immutable block-arrow aggregate {G, A, B?, order, N, ds, dc}.
//
// Invariants (enforced at construction, relied upon everywhere else):
//   - g holds exactly N non-nil ds×ds blocks;
//   - a holds exactly dc non-nil ds×ds blocks;
//   - cross, when non-nil, spans exactly (N, dc, ds) and order is SecondOrder.
//
// A System stores references to the caller's blocks without copying; callers
// must not mutate blocks after construction. All methods are read-only, so a
// System is safe for concurrent use by any number of goroutines.
type System struct {
	order DerivativeOrder
	n     int // number of local blocks
	ds    int // block dimension
	dc    int // number of global blocks

	g     []*mat.Dense // local diagonal blocks, len n
	a     []*mat.Dense // global border blocks, len dc
	cross *CrossTensor // nil means no cross coupling
}

// New constructs a System from local blocks g, global blocks a and an
// optional cross tensor.
//
// Validation (eager, in order):
//  1. order must be FirstOrder or SecondOrder — ErrInvalidConfiguration;
//  2. g and a must be non-empty — ErrShapeMismatch;
//  3. every block must be non-nil (ErrNilBlock) and square of one common
//     dimension ds taken from g[0] — ErrShapeMismatch;
//  4. cross must be nil at FirstOrder — ErrInvalidConfiguration — and,
//     when present, must span exactly (len(g), len(a), ds) — ErrShapeMismatch.
//
// Complexity: O(N + dc) dimension checks; no block data is copied.
func New(order DerivativeOrder, g, a []*mat.Dense, cross *CrossTensor) (*System, error) {
	if !order.Valid() {
		return nil, fmt.Errorf("New: derivative order %d: %w", int(order), ErrInvalidConfiguration)
	}
	if len(g) == 0 {
		return nil, fmt.Errorf("New: no local blocks: %w", ErrShapeMismatch)
	}
	if len(a) == 0 {
		return nil, fmt.Errorf("New: no global blocks: %w", ErrShapeMismatch)
	}
	if g[0] == nil {
		return nil, fmt.Errorf("New: local block 0: %w", ErrNilBlock)
	}

	// The common block dimension is dictated by the first local block.
	ds, cols := g[0].Dims()
	if ds != cols {
		return nil, fmt.Errorf("New: local block 0 is %dx%d, want square: %w", ds, cols, ErrShapeMismatch)
	}
	if err := checkBlocks("local", g, ds); err != nil {
		return nil, fmt.Errorf("New: %w", err)
	}
	if err := checkBlocks("global", a, ds); err != nil {
		return nil, fmt.Errorf("New: %w", err)
	}

	if cross != nil {
		if order == FirstOrder {
			return nil, fmt.Errorf("New: cross tensor supplied at first order: %w", ErrInvalidConfiguration)
		}
		if cross.n != len(g) || cross.dc != len(a) || cross.ds != ds {
			return nil, fmt.Errorf("New: cross tensor spans (%d,%d,%d), want (%d,%d,%d): %w",
				cross.n, cross.dc, cross.ds, len(g), len(a), ds, ErrShapeMismatch)
		}
	}

	return &System{
		order: order,
		n:     len(g),
		ds:    ds,
		dc:    len(a),
		g:     g,
		a:     a,
		cross: cross,
	}, nil
}

// NewSecondOrder constructs a second-order System whose cross coupling is
// mandatory: a nil tensor is ErrInvalidConfiguration rather than "no
// contribution". Use New with a nil tensor for the opt-out form.
func NewSecondOrder(g, a []*mat.Dense, cross *CrossTensor) (*System, error) {
	if cross == nil {
		return nil, fmt.Errorf("NewSecondOrder: cross tensor required but absent: %w", ErrInvalidConfiguration)
	}

	return New(SecondOrder, g, a, cross)
}

// checkBlocks verifies every block in bs is non-nil and ds×ds.
func checkBlocks(kind string, bs []*mat.Dense, ds int) error {
	var r, c int // block dimensions under inspection
	for i, b := range bs {
		if b == nil {
			return fmt.Errorf("%s block %d: %w", kind, i, ErrNilBlock)
		}
		if r, c = b.Dims(); r != ds || c != ds {
			return fmt.Errorf("%s block %d is %dx%d, want %dx%d: %w", kind, i, r, c, ds, ds, ErrShapeMismatch)
		}
	}

	return nil
}

// Order returns the derivative order fixed at construction.
func (s *System) Order() DerivativeOrder { return s.order }

// N returns the number of local (observation) blocks.
func (s *System) N() int { return s.n }

// BlockSize returns ds, the dimension of every square block.
func (s *System) BlockSize() int { return s.ds }

// GlobalCount returns dc, the number of global parameters.
func (s *System) GlobalCount() int { return s.dc }

// HasCross reports whether the system carries a cross tensor.
func (s *System) HasCross() bool { return s.cross != nil }

// Dim returns the dimension (N+dc)·ds of the equivalent dense matrix.
func (s *System) Dim() int { return (s.n + s.dc) * s.ds }

// SameShape reports whether s and o agree on N, ds and dc — the
// precondition for participating in the same solve.
func (s *System) SameShape(o *System) bool {
	return o != nil && s.n == o.n && s.ds == o.ds && s.dc == o.dc
}

// LocalBlock returns G_i as a read-only view; callers must not mutate it.
// Returns ErrOutOfRange for i outside 0..N-1.
func (s *System) LocalBlock(i int) (*mat.Dense, error) {
	if i < 0 || i >= s.n {
		return nil, fmt.Errorf("LocalBlock(%d): %w", i, ErrOutOfRange)
	}

	return s.g[i], nil
}

// GlobalBlock returns A_j as a read-only view; callers must not mutate it.
// Returns ErrOutOfRange for j outside 0..dc-1.
func (s *System) GlobalBlock(j int) (*mat.Dense, error) {
	if j < 0 || j >= s.dc {
		return nil, fmt.Errorf("GlobalBlock(%d): %w", j, ErrOutOfRange)
	}

	return s.a[j], nil
}

// CrossBlock returns B[i,j,l] as a read-only view.
// Errors: ErrInvalidConfiguration when the system has no cross tensor,
// ErrOutOfRange on a bad index.
func (s *System) CrossBlock(i, j, l int) (*mat.Dense, error) {
	if s.cross == nil {
		return nil, fmt.Errorf("CrossBlock(%d,%d,%d): no cross tensor: %w", i, j, l, ErrInvalidConfiguration)
	}

	return s.cross.Block(i, j, l)
}
