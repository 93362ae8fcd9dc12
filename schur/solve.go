package schur

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/arrowhead/system"
)

// localElim holds one local index's eliminated data: every field is the
// named quantity with G_i⁻¹ already applied.
type localElim struct {
	p *mat.Dense // ds×(dc·ds): G_i⁻¹·[A_1 … A_dc], the pivoted border
	q *mat.Dense // ds×c:       G_i⁻¹·(local right-hand-side slice)
	w *mat.Dense // ds×(dc·ds): G_i⁻¹·[Â_1 … Â_dc]; nil on the dense path
}

// partial is one worker's thread-local accumulator for the reduction phase.
// Partials are merged in worker order after the group joins, so no two
// goroutines ever touch the same accumulator.
type partial struct {
	s  *mat.Dense // contribution to the reduced (Schur) operator
	tg *mat.Dense // contribution to the reduced right-hand side
}

// Solve — structured elimination of M against a structured right-hand side.
//
// Description:
//
//	Produces the X with MatrixFormFull(M)·X = MatrixFormFull(R), computed by
//	block-arrow elimination (see the package doc for the outline) without
//	materializing either side. The result is numerically equivalent to the
//	dense oracle on the materialized forms, within floating-point tolerance.
//
// Preconditions: M and R share N, ds and dc. Neither system is mutated; R's
// blocks are input values, never an operator.
//
// Errors:
//   - ErrNilSystem, ErrShapeMismatch — precondition violations
//   - ErrSingularLocalBlock          — some G_i has no local pivot
//   - ErrSingularReducedSystem       — the global system is singular
//   - ErrOptionViolation             — bad Options
//
// Complexity: O(N·dc·ds³) local work + one dense solve of dc·ds unknowns
// with (N+dc)·ds right-hand-side columns. Memory: O(N·dc·ds² + dim²) for
// the eliminations and the dense result.
func Solve(m, r *system.System, opts *Options) (*Solution, error) {
	o, err := normalize(opts)
	if err != nil {
		return nil, fmt.Errorf("Solve: %w", err)
	}
	if err = checkPair(m, r); err != nil {
		return nil, err
	}

	var (
		n   = m.N()
		ds  = m.BlockSize()
		dc  = m.GlobalCount()
		bw  = dc * ds  // border width
		dim = m.Dim()  // dense dimension
		gl  = n * ds   // first global row/column
	)

	// The borders are fixed-size (independent of N) and shared read-only by
	// every worker.
	var (
		borderM  = border(m)                   // ds×bw
		borderR  = border(r)                   // ds×bw
		borderMT = mat.DenseCopyOf(borderM.T()) // bw×ds
		borderRT = mat.DenseCopyOf(borderR.T()) // bw×ds
	)

	elims := make([]localElim, n)
	reduced := mat.NewDense(bw, dim, nil) // reduced right-hand side

	// Stage 1+2: parallel local elimination with thread-local Schur partials.
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
			tg: mat.NewDense(bw, bw, nil),
		}
		parts[w] = part
		eg.Go(func() error {
			return eliminateRange(ctx, m, r, lo, hi, borderM, borderR, borderMT, borderRT, elims, reduced, part)
		})
	}
	if err = eg.Wait(); err != nil {
		return nil, err
	}

	// Stage 3: assemble and solve the reduced global system (the barrier).
	schurOp := globalCurvature(m)
	redGlob := globalCurvature(r)
	for _, part := range parts {
		if part == nil {
			continue
		}
		schurOp.Add(schurOp, part.s)
		redGlob.Add(redGlob, part.tg)
	}
	reduced.Slice(0, bw, gl, dim).(*mat.Dense).Copy(redGlob)

	xg := mat.NewDense(bw, dim, nil)
	if err = luSolve(xg, schurOp, reduced); err != nil {
		return nil, fmt.Errorf("Solve: reduced system: %w", ErrSingularReducedSystem)
	}

	// Stage 4: parallel back-substitution into disjoint row slices.
	x := mat.NewDense(dim, dim, nil)
	x.Slice(gl, dim, 0, dim).(*mat.Dense).Copy(xg)
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
			return backSubstituteRange(ctx, lo, hi, ds, gl, dim, elims, xg, x, true)
		})
	}
	if err = eg.Wait(); err != nil {
		return nil, err
	}

	return &Solution{n: n, ds: ds, dc: dc, x: x}, nil
}

// eliminateRange runs stage 1+2 for local indices lo..hi-1: factorize each
// pivot, apply it to the border and to R's slice, write the reduced
// right-hand side's local columns (disjoint per index) and fold this chunk's
// Schur contribution into part.
func eliminateRange(
	ctx context.Context,
	m, r *system.System,
	lo, hi int,
	borderM, borderR, borderMT, borderRT *mat.Dense,
	elims []localElim,
	reduced *mat.Dense,
	part *partial,
) error {
	var (
		ds = m.BlockSize()
		dc = m.GlobalCount()
		bw = dc * ds

		lu    mat.LU
		rhs   = mat.NewDense(ds, 2*bw+ds, nil) // [borderM | Ĝ_i | borderR]
		tmpBB = mat.NewDense(bw, bw, nil)
		tmpBD = mat.NewDense(bw, ds, nil)
	)
	// The border slices of the per-pivot right-hand side never change.
	rhs.Slice(0, ds, 0, bw).(*mat.Dense).Copy(borderM)
	rhs.Slice(0, ds, bw+ds, 2*bw+ds).(*mat.Dense).Copy(borderR)

	for i := lo; i < hi; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		gi, _ := m.LocalBlock(i)
		ghat, _ := r.LocalBlock(i)
		rhs.Slice(0, ds, bw, bw+ds).(*mat.Dense).Copy(ghat)

		lu.Factorize(gi)
		sol := mat.NewDense(ds, 2*bw+ds, nil) // owned by elims[i] after the solve
		if err := lu.SolveTo(sol, false, rhs); err != nil {
			return fmt.Errorf("Solve: local block %d: %w", i, ErrSingularLocalBlock)
		}
		e := localElim{
			p: sol.Slice(0, ds, 0, bw).(*mat.Dense),
			q: sol.Slice(0, ds, bw, bw+ds).(*mat.Dense),
			w: sol.Slice(0, ds, bw+ds, 2*bw+ds).(*mat.Dense),
		}
		elims[i] = e

		// Schur operator contribution: −[A_jᵀ·G_i⁻¹·A_l] (+ M's cross blocks).
		tmpBB.Mul(borderMT, e.p)
		part.s.Sub(part.s, tmpBB)
		if m.HasCross() {
			addCross(part.s, m, i, ds, dc)
		}

		// Reduced right-hand side, global columns: −[A_jᵀ·G_i⁻¹·Â_l]
		// (+ R's cross blocks).
		tmpBB.Mul(borderMT, e.w)
		part.tg.Sub(part.tg, tmpBB)
		if r.HasCross() {
			addCross(part.tg, r, i, ds, dc)
		}

		// Reduced right-hand side, local column block i: Â_jᵀ − A_jᵀ·G_i⁻¹·Ĝ_i.
		// Column blocks are disjoint across i, so this write is race-free.
		tmpBD.Mul(borderMT, e.q)
		reduced.Slice(0, bw, i*ds, (i+1)*ds).(*mat.Dense).Sub(borderRT, tmpBD)
	}

	return nil
}

// backSubstituteRange runs stage 4 for local indices lo..hi-1, writing row
// block i of the output: X_i = −p_i·xg, plus q_i at column block i and — on
// the structured path — w_i at the global columns.
func backSubstituteRange(
	ctx context.Context,
	lo, hi, ds, gl, dim int,
	elims []localElim,
	xg, x *mat.Dense,
	structured bool,
) error {
	_, nc := x.Dims()
	tmp := mat.NewDense(ds, nc, nil)

	for i := lo; i < hi; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		e := elims[i]
		row := x.Slice(i*ds, (i+1)*ds, 0, nc).(*mat.Dense)
		tmp.Mul(e.p, xg)
		row.Scale(-1, tmp)

		if structured {
			// Structured right-hand side: Ĝ_i lands at column block i and the
			// eliminated border at the global columns.
			d := row.Slice(0, ds, i*ds, (i+1)*ds).(*mat.Dense)
			d.Add(d, e.q)
			g := row.Slice(0, ds, gl, dim).(*mat.Dense)
			g.Add(g, e.w)

			continue
		}
		// Dense right-hand side: q_i spans every column.
		row.Add(row, e.q)
	}

	return nil
}

// border lays the system's global blocks side by side: the ds×(dc·ds)
// matrix [A_1 … A_dc] the arrow couples every local index through.
func border(s *system.System) *mat.Dense {
	var (
		ds  = s.BlockSize()
		dc  = s.GlobalCount()
		out = mat.NewDense(ds, dc*ds, nil)
	)
	for j := 0; j < dc; j++ {
		aj, _ := s.GlobalBlock(j)
		out.Slice(0, ds, j*ds, (j+1)*ds).(*mat.Dense).Copy(aj)
	}

	return out
}

// globalCurvature builds the first-order global sub-block: block-diagonal
// A_j + A_jᵀ, the part of the global system formed from A alone. Cross
// contributions are folded in per local index by the elimination workers.
func globalCurvature(s *system.System) *mat.Dense {
	var (
		ds  = s.BlockSize()
		dc  = s.GlobalCount()
		out = mat.NewDense(dc*ds, dc*ds, nil)
		sym mat.Dense
	)
	for j := 0; j < dc; j++ {
		aj, _ := s.GlobalBlock(j)
		sym.Add(aj, aj.T())
		out.Slice(j*ds, (j+1)*ds, j*ds, (j+1)*ds).(*mat.Dense).Copy(&sym)
	}

	return out
}

// addCross folds B[i,:,:] of s into the dc·ds square accumulator dst.
func addCross(dst *mat.Dense, s *system.System, i, ds, dc int) {
	var v *mat.Dense
	for j := 0; j < dc; j++ {
		for l := 0; l < dc; l++ {
			blk, _ := s.CrossBlock(i, j, l)
			v = dst.Slice(j*ds, (j+1)*ds, l*ds, (l+1)*ds).(*mat.Dense)
			v.Add(v, blk)
		}
	}
}

// luSolve solves op·dst = rhs by LU with partial pivoting, the one dense
// solve in the algorithm.
func luSolve(dst *mat.Dense, op, rhs *mat.Dense) error {
	var lu mat.LU
	lu.Factorize(op)

	return lu.SolveTo(dst, false, rhs)
}
