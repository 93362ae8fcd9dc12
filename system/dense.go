package system

import "gonum.org/v1/gonum/mat"

// MatrixFormFull — dense materialization of the block-arrow system.
//
// Description:
//
//	Assembles the single (N·ds+dc·ds) square matrix the system represents.
//	This is the validation/benchmark surface only: the structured solve in
//	package schur never forms it, and the result is newly allocated on every
//	call — nothing is cached inside the System.
//
// Block layout (local block-rows 0..N-1, global block-rows N..N+dc-1):
//  1. (i, i)     = G_i                                the local diagonal
//  2. (i, N+j)   = A_j and (N+j, i) = A_jᵀ            the arrow border,
//     identical for every local index i
//  3. (N+j, N+j) = A_j + A_jᵀ                         first-order global
//     curvature of parameter j, formed from A alone
//  4. (N+j, N+l) += Σ_i B[i,j,l]                      second-order cross
//     coupling, accumulated over all local indices when the tensor is
//     present; an absent tensor contributes nothing, so a second-order
//     system without B materializes identically to a first-order one
//
// Complexity: O((N+dc)·dc·ds² + N·dc²·ds²) writes into an O((N+dc)²·ds²)
// zero-initialized matrix.
func (s *System) MatrixFormFull() *mat.Dense {
	var (
		dim = s.Dim()
		ds  = s.ds
		out = mat.NewDense(dim, dim, nil)
		gl  = s.n * ds // first row/column of the global border
	)

	// Stage 1: local diagonal blocks.
	for i := 0; i < s.n; i++ {
		out.Slice(i*ds, (i+1)*ds, i*ds, (i+1)*ds).(*mat.Dense).Copy(s.g[i])
	}

	// Stage 2: the border — A_j east of every local block, A_jᵀ south.
	for i := 0; i < s.n; i++ {
		for j := 0; j < s.dc; j++ {
			out.Slice(i*ds, (i+1)*ds, gl+j*ds, gl+(j+1)*ds).(*mat.Dense).Copy(s.a[j])
			out.Slice(gl+j*ds, gl+(j+1)*ds, i*ds, (i+1)*ds).(*mat.Dense).Copy(s.a[j].T())
		}
	}

	// Stage 3: global diagonal from A alone.
	var sym mat.Dense // A_j + A_jᵀ scratch
	for j := 0; j < s.dc; j++ {
		sym.Add(s.a[j], s.a[j].T())
		out.Slice(gl+j*ds, gl+(j+1)*ds, gl+j*ds, gl+(j+1)*ds).(*mat.Dense).Copy(&sym)
	}

	// Stage 4: accumulate the cross tensor into the global sub-block.
	if s.cross != nil {
		var dst *mat.Dense // (N+j, N+l) view being accumulated into
		for j := 0; j < s.dc; j++ {
			for l := 0; l < s.dc; l++ {
				dst = out.Slice(gl+j*ds, gl+(j+1)*ds, gl+l*ds, gl+(l+1)*ds).(*mat.Dense)
				for i := 0; i < s.n; i++ {
					dst.Add(dst, s.cross.block(i, j, l))
				}
			}
		}
	}

	return out
}
