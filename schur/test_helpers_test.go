package schur_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/arrowhead/builder"
	"github.com/katalvlaran/arrowhead/system"
)

// solveTol is the agreement tolerance between the structured solve and the
// dense oracle, applied per entry as abs-or-rel.
const solveTol = 1e-8

// requireAgree asserts entry-wise agreement of got with want within tol.
func requireAgree(t *testing.T, want, got mat.Matrix, tol float64) {
	t.Helper()

	wr, wc := want.Dims()
	gr, gc := got.Dims()
	require.Equal(t, wr, gr, "row count")
	require.Equal(t, wc, gc, "column count")
	for i := 0; i < wr; i++ {
		for j := 0; j < wc; j++ {
			require.True(t, scalar.EqualWithinAbsOrRel(want.At(i, j), got.At(i, j), tol, tol),
				"entry (%d,%d): want %v, got %v", i, j, want.At(i, j), got.At(i, j))
		}
	}
}

// scenarioOperator builds the hand-checkable operator: N=2, ds=2, dc=1,
// G = [I, I], A = [0.5·I], first order.
func scenarioOperator(t *testing.T) *system.System {
	t.Helper()

	s, err := builder.Uniform(2, 2, 1, 1.0, 0.5)
	require.NoError(t, err)

	return s
}

// randomSystem is a shorthand over builder.Random that fails the test on
// construction errors.
func randomSystem(t *testing.T, n, ds, dc int, order system.DerivativeOrder, withCross bool, seed int64) *system.System {
	t.Helper()

	s, err := builder.Random(n, ds, dc, order, withCross, seed)
	require.NoError(t, err)

	return s
}

// withZeroCross rebuilds s as a second-order system over the same blocks
// plus an all-zero cross tensor.
func withZeroCross(t *testing.T, s *system.System) *system.System {
	t.Helper()

	g := make([]*mat.Dense, s.N())
	for i := range g {
		blk, err := s.LocalBlock(i)
		require.NoError(t, err)
		g[i] = blk
	}
	a := make([]*mat.Dense, s.GlobalCount())
	for j := range a {
		blk, err := s.GlobalBlock(j)
		require.NoError(t, err)
		a[j] = blk
	}
	zero, err := system.NewCrossTensor(s.N(), s.GlobalCount(), s.BlockSize())
	require.NoError(t, err)
	out, err := system.New(system.SecondOrder, g, a, zero)
	require.NoError(t, err)

	return out
}
