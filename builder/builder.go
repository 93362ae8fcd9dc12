package builder

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/arrowhead/system"
)

// Generator defaults. Pivot dominance keeps every fixture's local blocks and
// reduced system comfortably away from singularity, so tolerance tests do
// not depend on the luck of a seed.
const (
	// pivotBoost is added to each diagonal entry of a random ds×ds block,
	// scaled by ds, making the block strictly diagonally dominant over its
	// U[0,1) off-diagonal entries.
	pivotBoost = 1.0

	// crossShift centers cross-tensor entries on zero (U[-0.5,0.5)), so
	// accumulating them over many local indices behaves like noise instead
	// of drifting the global sub-block toward a rank-deficient mean.
	crossShift = 0.5
)

// Uniform builds a first-order system with G_i = gScale·I and A_j = aScale·I.
//
// Every quantity derived from it is computable by hand, which makes it the
// fixture of choice for pinning exact expected values.
// Errors: system.ErrShapeMismatch via system.New on non-positive dimensions.
func Uniform(n, ds, dc int, gScale, aScale float64) (*system.System, error) {
	if n <= 0 || ds <= 0 || dc <= 0 {
		return nil, fmt.Errorf("Uniform: n=%d ds=%d dc=%d: %w", n, ds, dc, system.ErrShapeMismatch)
	}

	g := make([]*mat.Dense, n)
	for i := range g {
		g[i] = scaledEye(ds, gScale)
	}
	a := make([]*mat.Dense, dc)
	for j := range a {
		a[j] = scaledEye(ds, aScale)
	}

	return system.New(system.FirstOrder, g, a, nil)
}

// Random builds a seeded pseudo-random system of the given order.
//
// Local and global blocks draw entries from U[0,1) with a ds-scaled boost on
// the diagonal (see pivotBoost); when order is SecondOrder and withCross is
// true, a cross tensor with zero-centered entries is attached. Identical
// arguments always produce an identical system.
//
// Errors: system.ErrInvalidConfiguration for a bad order or for
// withCross at FirstOrder; system.ErrShapeMismatch on bad dimensions.
func Random(n, ds, dc int, order system.DerivativeOrder, withCross bool, seed int64) (*system.System, error) {
	if !order.Valid() || (withCross && order == system.FirstOrder) {
		return nil, fmt.Errorf("Random: order=%s withCross=%t: %w", order, withCross, system.ErrInvalidConfiguration)
	}
	if n <= 0 || ds <= 0 || dc <= 0 {
		return nil, fmt.Errorf("Random: n=%d ds=%d dc=%d: %w", n, ds, dc, system.ErrShapeMismatch)
	}

	rng := rand.New(rand.NewSource(seed))

	g := make([]*mat.Dense, n)
	for i := range g {
		g[i] = dominantBlock(rng, ds)
	}
	a := make([]*mat.Dense, dc)
	for j := range a {
		a[j] = dominantBlock(rng, ds)
	}

	var cross *system.CrossTensor
	if withCross {
		var err error
		if cross, err = system.NewCrossTensor(n, dc, ds); err != nil {
			return nil, fmt.Errorf("Random: %w", err)
		}
		blk := mat.NewDense(ds, ds, nil)
		for i := 0; i < n; i++ {
			for j := 0; j < dc; j++ {
				for l := 0; l < dc; l++ {
					fillCentered(rng, blk)
					// Indices are in range by construction; SetBlock cannot fail.
					_ = cross.SetBlock(i, j, l, blk)
				}
			}
		}
	}

	return system.New(order, g, a, cross)
}

// RandomDense returns a seeded r×c matrix with U[0,1) entries.
func RandomDense(r, c int, seed int64) *mat.Dense {
	rng := rand.New(rand.NewSource(seed))
	out := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, rng.Float64())
		}
	}

	return out
}

// scaledEye returns s·I of dimension ds.
func scaledEye(ds int, s float64) *mat.Dense {
	out := mat.NewDense(ds, ds, nil)
	for i := 0; i < ds; i++ {
		out.Set(i, i, s)
	}

	return out
}

// dominantBlock returns a ds×ds block with U[0,1) entries and a strictly
// dominant diagonal.
func dominantBlock(rng *rand.Rand, ds int) *mat.Dense {
	out := mat.NewDense(ds, ds, nil)
	for i := 0; i < ds; i++ {
		for j := 0; j < ds; j++ {
			v := rng.Float64()
			if i == j {
				v += float64(ds) * pivotBoost
			}
			out.Set(i, j, v)
		}
	}

	return out
}

// fillCentered overwrites blk with U[-0.5,0.5) entries.
func fillCentered(rng *rand.Rand, blk *mat.Dense) {
	r, c := blk.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			blk.Set(i, j, rng.Float64()-crossShift)
		}
	}
}
