package system

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// CrossTensor stores the second-order cross-coupling blocks B[i,j,l] for
// local index i in 0..n-1 and global indices j, l in 0..dc-1, each block a
// ds×ds matrix.
//
// Storage is a single contiguous []float64; Block returns a ds×ds view over
// the backing array, so reads allocate only the view header and writes via
// SetBlock copy into place. Blocks are laid out row-major by (i, j, l).
type CrossTensor struct {
	n, dc, ds int
	data      []float64
}

// NewCrossTensor allocates a zero-filled tensor of n·dc·dc blocks, each
// ds×ds. Returns ErrShapeMismatch when any dimension is non-positive.
func NewCrossTensor(n, dc, ds int) (*CrossTensor, error) {
	if n <= 0 || dc <= 0 || ds <= 0 {
		return nil, fmt.Errorf("NewCrossTensor: n=%d dc=%d ds=%d: %w", n, dc, ds, ErrShapeMismatch)
	}

	return &CrossTensor{
		n:    n,
		dc:   dc,
		ds:   ds,
		data: make([]float64, n*dc*dc*ds*ds),
	}, nil
}

// N returns the number of local indices the tensor spans.
func (t *CrossTensor) N() int { return t.n }

// GlobalCount returns dc, the number of global parameters.
func (t *CrossTensor) GlobalCount() int { return t.dc }

// BlockSize returns ds, the dimension of each square block.
func (t *CrossTensor) BlockSize() int { return t.ds }

// offset computes the start of block (i, j, l) in the backing array.
// Callers must have validated the indices.
func (t *CrossTensor) offset(i, j, l int) int {
	return ((i*t.dc+j)*t.dc + l) * t.ds * t.ds
}

// block returns the (i, j, l) view without bounds checks; internal hot-path
// accessor for validated indices.
func (t *CrossTensor) block(i, j, l int) *mat.Dense {
	off := t.offset(i, j, l)

	return mat.NewDense(t.ds, t.ds, t.data[off:off+t.ds*t.ds])
}

// Block returns the ds×ds block at (i, j, l) as a view over the tensor's
// backing storage: mutations through the view alter the tensor.
// Returns ErrOutOfRange when any index is outside its declared bound.
func (t *CrossTensor) Block(i, j, l int) (*mat.Dense, error) {
	if i < 0 || i >= t.n || j < 0 || j >= t.dc || l < 0 || l >= t.dc {
		return nil, fmt.Errorf("Block(%d,%d,%d): %w", i, j, l, ErrOutOfRange)
	}

	return t.block(i, j, l), nil
}

// SetBlock copies src into the block at (i, j, l).
// Errors: ErrOutOfRange on a bad index, ErrNilBlock on nil src,
// ErrShapeMismatch when src is not ds×ds.
func (t *CrossTensor) SetBlock(i, j, l int, src mat.Matrix) error {
	if i < 0 || i >= t.n || j < 0 || j >= t.dc || l < 0 || l >= t.dc {
		return fmt.Errorf("SetBlock(%d,%d,%d): %w", i, j, l, ErrOutOfRange)
	}
	if src == nil {
		return fmt.Errorf("SetBlock(%d,%d,%d): %w", i, j, l, ErrNilBlock)
	}
	if r, c := src.Dims(); r != t.ds || c != t.ds {
		return fmt.Errorf("SetBlock(%d,%d,%d): got %dx%d, want %dx%d: %w", i, j, l, r, c, t.ds, t.ds, ErrShapeMismatch)
	}
	t.block(i, j, l).Copy(src)

	return nil
}
