package schur

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/arrowhead/system"
)

// SolveDense — structured elimination of M against an arbitrary dense
// right-hand side.
//
// Description:
//
//	Produces the X with MatrixFormFull(M)·X = rhs for any rhs with
//	(N+dc)·ds rows and c ≥ 1 columns (a column vector is the c = 1 case).
//	Same elimination as Solve, but without exploiting structure in the
//	right-hand side: each local slice of rhs is pushed through its pivot
//	as-is.
//
// Errors: ErrNilSystem, ErrNilRHS, ErrShapeMismatch, ErrSingularLocalBlock,
// ErrSingularReducedSystem, ErrOptionViolation.
// Complexity: O(N·ds²·(ds·dc + c)) local work + one dense solve of dc·ds
// unknowns with c columns. rhs is not mutated.
func SolveDense(m *system.System, rhs mat.Matrix, opts *Options) (*mat.Dense, error) {
	o, err := normalize(opts)
	if err != nil {
		return nil, fmt.Errorf("SolveDense: %w", err)
	}
	if m == nil {
		return nil, fmt.Errorf("SolveDense: %w", ErrNilSystem)
	}
	if rhs == nil {
		return nil, fmt.Errorf("SolveDense: %w", ErrNilRHS)
	}

	var (
		n   = m.N()
		ds  = m.BlockSize()
		dc  = m.GlobalCount()
		bw  = dc * ds
		dim = m.Dim()
		gl  = n * ds
	)
	rows, nc := rhs.Dims()
	if rows != dim || nc < 1 {
		return nil, fmt.Errorf("SolveDense: rhs is %dx%d, want %d rows: %w", rows, nc, dim, ErrShapeMismatch)
	}

	// Private copy: sliceable, and guarantees the caller's rhs stays intact.
	f := mat.DenseCopyOf(rhs)

	var (
		borderM  = border(m)
		borderMT = mat.DenseCopyOf(borderM.T())
	)

	elims := make([]localElim, n)

	workers := o.workersFor(n)
	parts := make([]*partial, workers)
	chunk := (n + workers - 1) / workers
	eg, ctx := errgroup.WithContext(o.Ctx)
	for w := 0; w < workers; w++ {
		lo, hi := w*chunk, (w+1)*chunk
		if hi > n {
			hi = n
		}
		if lo >= hi {
			break
		}
		part := &partial{
			s:  mat.NewDense(bw, bw, nil),
			tg: mat.NewDense(bw, nc, nil),
		}
		parts[w] = part
		eg.Go(func() error {
			return eliminateDenseRange(ctx, m, f, lo, hi, borderM, borderMT, elims, part)
		})
	}
	if err = eg.Wait(); err != nil {
		return nil, err
	}

	// Reduced system: operator as in Solve, right-hand side F_global plus
	// the workers' (negated) accumulations.
	schurOp := globalCurvature(m)
	reduced := mat.NewDense(bw, nc, nil)
	reduced.Copy(f.Slice(gl, dim, 0, nc))
	for _, part := range parts {
		if part == nil {
			continue
		}
		schurOp.Add(schurOp, part.s)
		reduced.Add(reduced, part.tg)
	}

	xg := mat.NewDense(bw, nc, nil)
	if err = luSolve(xg, schurOp, reduced); err != nil {
		return nil, fmt.Errorf("SolveDense: reduced system: %w", ErrSingularReducedSystem)
	}

	x := mat.NewDense(dim, nc, nil)
	x.Slice(gl, dim, 0, nc).(*mat.Dense).Copy(xg)
	eg, ctx = errgroup.WithContext(o.Ctx)
	for w := 0; w < workers; w++ {
		lo, hi := w*chunk, (w+1)*chunk
		if hi > n {
			hi = n
		}
		if lo >= hi {
			break
		}
		eg.Go(func() error {
			return backSubstituteRange(ctx, lo, hi, ds, gl, dim, elims, xg, x, false)
		})
	}
	if err = eg.Wait(); err != nil {
		return nil, err
	}

	return x, nil
}

// eliminateDenseRange is eliminateRange's dense-rhs counterpart: the pivot
// is applied to [borderM | F_i] and the chunk contributes −A_jᵀ·G_i⁻¹·F_i
// to the reduced right-hand side.
func eliminateDenseRange(
	ctx context.Context,
	m *system.System,
	f *mat.Dense,
	lo, hi int,
	borderM, borderMT *mat.Dense,
	elims []localElim,
	part *partial,
) error {
	var (
		ds = m.BlockSize()
		dc = m.GlobalCount()
		bw = dc * ds
	)
	_, nc := f.Dims()

	var (
		lu    mat.LU
		rhs   = mat.NewDense(ds, bw+nc, nil) // [borderM | F_i]
		tmpBB = mat.NewDense(bw, bw, nil)
		tmpBC = mat.NewDense(bw, nc, nil)
	)
	rhs.Slice(0, ds, 0, bw).(*mat.Dense).Copy(borderM)

	for i := lo; i < hi; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		gi, _ := m.LocalBlock(i)
		rhs.Slice(0, ds, bw, bw+nc).(*mat.Dense).Copy(f.Slice(i*ds, (i+1)*ds, 0, nc))

		lu.Factorize(gi)
		sol := mat.NewDense(ds, bw+nc, nil)
		if err := lu.SolveTo(sol, false, rhs); err != nil {
			return fmt.Errorf("SolveDense: local block %d: %w", i, ErrSingularLocalBlock)
		}
		e := localElim{
			p: sol.Slice(0, ds, 0, bw).(*mat.Dense),
			q: sol.Slice(0, ds, bw, bw+nc).(*mat.Dense),
		}
		elims[i] = e

		tmpBB.Mul(borderMT, e.p)
		part.s.Sub(part.s, tmpBB)
		if m.HasCross() {
			addCross(part.s, m, i, ds, dc)
		}

		tmpBC.Mul(borderMT, e.q)
		part.tg.Sub(part.tg, tmpBC)
	}

	return nil
}
