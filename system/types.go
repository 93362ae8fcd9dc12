// Package system: derivative-order tags and the sentinel error set.
// All constructors and accessors MUST return these sentinels and tests MUST
// check them via errors.Is. No operation panics on user-triggered error
// conditions.
package system

import "errors"

// DerivativeOrder selects which coupling tensors a system carries.
// It is fixed at construction and immutable thereafter.
//
//   - FirstOrder  — only G and A contribute; no cross tensor may be supplied.
//   - SecondOrder — the cross tensor B may (but need not) be supplied; when
//     present it adds per-observation cross-parameter coupling to the
//     global sub-block.
type DerivativeOrder int

const (
	// FirstOrder marks a system built from first derivatives only.
	FirstOrder DerivativeOrder = 1

	// SecondOrder marks a system that may carry second-derivative
	// cross-coupling between pairs of global parameters.
	SecondOrder DerivativeOrder = 2
)

// Valid reports whether o is one of the supported derivative orders.
func (o DerivativeOrder) Valid() bool {
	return o == FirstOrder || o == SecondOrder
}

// String returns a human-readable tag for the order.
func (o DerivativeOrder) String() string {
	switch o {
	case FirstOrder:
		return "first-order"
	case SecondOrder:
		return "second-order"
	default:
		return "invalid-order"
	}
}

var (
	// ErrShapeMismatch indicates a block count or block dimension that
	// disagrees with the declared N, ds or dc. Detected eagerly at
	// construction; nothing is silently truncated or padded.
	ErrShapeMismatch = errors.New("system: block shape mismatch")

	// ErrInvalidConfiguration indicates an unsupported derivative order, a
	// cross tensor supplied at first order, or a cross tensor required but
	// absent for the explicit second-order-with-coupling constructor.
	ErrInvalidConfiguration = errors.New("system: invalid configuration")

	// ErrNilBlock indicates a nil matrix where a ds×ds block was required.
	ErrNilBlock = errors.New("system: nil block")

	// ErrOutOfRange indicates a local, global or tensor index outside the
	// declared bounds. Accessors return it rather than panicking.
	ErrOutOfRange = errors.New("system: index out of range")
)
