package schur

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Solution is a dense solve result addressable by the block layout of the
// right-hand-side system: block rows and columns 0..N-1 are local, block
// rows and columns N..N+dc-1 are global, each block ds×ds.
//
// The backing matrix belongs to the Solution; Block returns views into it.
type Solution struct {
	n, ds, dc int
	x         *mat.Dense
}

// Dense returns the full (N·ds+dc·ds) square solution matrix.
func (s *Solution) Dense() *mat.Dense { return s.x }

// N returns the number of local block indices.
func (s *Solution) N() int { return s.n }

// BlockSize returns ds, the dimension of each square block.
func (s *Solution) BlockSize() int { return s.ds }

// GlobalCount returns dc, the number of global block indices.
func (s *Solution) GlobalCount() int { return s.dc }

// Dim returns the dense dimension (N+dc)·ds.
func (s *Solution) Dim() int { return (s.n + s.dc) * s.ds }

// Block returns the ds×ds view at block row bi and block column bj, both in
// 0..N+dc-1 (local indices first, then global).
// Returns ErrOutOfRange for an index outside the layout.
func (s *Solution) Block(bi, bj int) (*mat.Dense, error) {
	nb := s.n + s.dc
	if bi < 0 || bi >= nb || bj < 0 || bj >= nb {
		return nil, fmt.Errorf("Block(%d,%d): want 0..%d: %w", bi, bj, nb-1, ErrOutOfRange)
	}

	return s.x.Slice(bi*s.ds, (bi+1)*s.ds, bj*s.ds, (bj+1)*s.ds).(*mat.Dense), nil
}
