package builder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/arrowhead/builder"
	"github.com/katalvlaran/arrowhead/system"
)

// TestUniform_Blocks verifies the scaled-identity layout.
func TestUniform_Blocks(t *testing.T) {
	s, err := builder.Uniform(2, 2, 1, 1.0, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 2, s.N())
	assert.Equal(t, system.FirstOrder, s.Order())
	assert.False(t, s.HasCross())

	g0, err := s.LocalBlock(0)
	require.NoError(t, err)
	assert.True(t, mat.Equal(mat.NewDense(2, 2, []float64{1, 0, 0, 1}), g0))

	a0, err := s.GlobalBlock(0)
	require.NoError(t, err)
	assert.True(t, mat.Equal(mat.NewDense(2, 2, []float64{0.5, 0, 0, 0.5}), a0))
}

// TestUniform_BadDims rejects non-positive shapes.
func TestUniform_BadDims(t *testing.T) {
	_, err := builder.Uniform(0, 2, 1, 1, 1)
	assert.ErrorIs(t, err, system.ErrShapeMismatch)
	_, err = builder.Uniform(2, -1, 1, 1, 1)
	assert.ErrorIs(t, err, system.ErrShapeMismatch)
}

// TestRandom_Deterministic: identical arguments yield block-identical systems.
func TestRandom_Deterministic(t *testing.T) {
	s1, err := builder.Random(4, 3, 2, system.SecondOrder, true, 42)
	require.NoError(t, err)
	s2, err := builder.Random(4, 3, 2, system.SecondOrder, true, 42)
	require.NoError(t, err)

	assert.True(t, mat.Equal(s1.MatrixFormFull(), s2.MatrixFormFull()))

	// A different seed must not reproduce the same system.
	s3, err := builder.Random(4, 3, 2, system.SecondOrder, true, 43)
	require.NoError(t, err)
	assert.False(t, mat.Equal(s1.MatrixFormFull(), s3.MatrixFormFull()))
}

// TestRandom_Shapes checks declared dimensions and cross presence per mode.
func TestRandom_Shapes(t *testing.T) {
	s, err := builder.Random(5, 2, 3, system.SecondOrder, true, 1)
	require.NoError(t, err)
	assert.Equal(t, 5, s.N())
	assert.Equal(t, 2, s.BlockSize())
	assert.Equal(t, 3, s.GlobalCount())
	assert.True(t, s.HasCross())

	s, err = builder.Random(5, 2, 3, system.SecondOrder, false, 1)
	require.NoError(t, err)
	assert.False(t, s.HasCross(), "opting out of the tensor at second order is allowed")

	s, err = builder.Random(5, 2, 3, system.FirstOrder, false, 1)
	require.NoError(t, err)
	assert.False(t, s.HasCross())
}

// TestRandom_InvalidModes rejects a cross request at first order and bad orders.
func TestRandom_InvalidModes(t *testing.T) {
	_, err := builder.Random(2, 2, 1, system.FirstOrder, true, 1)
	assert.ErrorIs(t, err, system.ErrInvalidConfiguration)

	_, err = builder.Random(2, 2, 1, system.DerivativeOrder(9), false, 1)
	assert.ErrorIs(t, err, system.ErrInvalidConfiguration)
}

// TestRandom_DominantPivots: every generated local block carries a strictly
// dominant diagonal, the property the solver fixtures rely on.
func TestRandom_DominantPivots(t *testing.T) {
	s, err := builder.Random(6, 4, 2, system.FirstOrder, false, 7)
	require.NoError(t, err)

	var rowSum float64
	for i := 0; i < s.N(); i++ {
		g, err := s.LocalBlock(i)
		require.NoError(t, err)
		for r := 0; r < 4; r++ {
			rowSum = 0
			for c := 0; c < 4; c++ {
				if c != r {
					rowSum += g.At(r, c)
				}
			}
			assert.Greater(t, g.At(r, r), rowSum, "block %d row %d", i, r)
		}
	}
}

// TestRandomDense_Deterministic pins shape and seed-reproducibility.
func TestRandomDense_Deterministic(t *testing.T) {
	m1 := builder.RandomDense(4, 3, 9)
	m2 := builder.RandomDense(4, 3, 9)
	r, c := m1.Dims()
	assert.Equal(t, 4, r)
	assert.Equal(t, 3, c)
	assert.True(t, mat.Equal(m1, m2))
}
