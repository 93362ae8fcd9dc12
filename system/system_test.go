package system_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/arrowhead/system"
)

// eye returns the ds×ds identity.
func eye(ds int) *mat.Dense {
	out := mat.NewDense(ds, ds, nil)
	for i := 0; i < ds; i++ {
		out.Set(i, i, 1)
	}

	return out
}

// eyes returns n fresh ds×ds identity blocks.
func eyes(n, ds int) []*mat.Dense {
	out := make([]*mat.Dense, n)
	for i := range out {
		out[i] = eye(ds)
	}

	return out
}

// TestNew_Valid covers the happy path at both orders and checks every getter.
func TestNew_Valid(t *testing.T) {
	s, err := system.New(system.FirstOrder, eyes(3, 2), eyes(2, 2), nil)
	require.NoError(t, err)
	assert.Equal(t, system.FirstOrder, s.Order())
	assert.Equal(t, 3, s.N())
	assert.Equal(t, 2, s.BlockSize())
	assert.Equal(t, 2, s.GlobalCount())
	assert.Equal(t, 10, s.Dim(), "(N+dc)·ds = (3+2)·2")
	assert.False(t, s.HasCross())

	cross, err := system.NewCrossTensor(3, 2, 2)
	require.NoError(t, err)
	s2, err := system.New(system.SecondOrder, eyes(3, 2), eyes(2, 2), cross)
	require.NoError(t, err)
	assert.True(t, s2.HasCross())
	assert.Equal(t, system.SecondOrder, s2.Order())
}

// TestNew_InvalidOrder rejects orders outside {1,2}.
func TestNew_InvalidOrder(t *testing.T) {
	_, err := system.New(system.DerivativeOrder(0), eyes(1, 2), eyes(1, 2), nil)
	assert.ErrorIs(t, err, system.ErrInvalidConfiguration)

	_, err = system.New(system.DerivativeOrder(3), eyes(1, 2), eyes(1, 2), nil)
	assert.ErrorIs(t, err, system.ErrInvalidConfiguration)
}

// TestNew_CrossAtFirstOrder rejects a tensor supplied at first order.
func TestNew_CrossAtFirstOrder(t *testing.T) {
	cross, err := system.NewCrossTensor(2, 1, 2)
	require.NoError(t, err)

	_, err = system.New(system.FirstOrder, eyes(2, 2), eyes(1, 2), cross)
	assert.ErrorIs(t, err, system.ErrInvalidConfiguration)
}

// TestNewSecondOrder_RequiresCross: the explicit with-coupling constructor
// treats an absent tensor as a configuration error, not as "no contribution".
func TestNewSecondOrder_RequiresCross(t *testing.T) {
	_, err := system.NewSecondOrder(eyes(2, 2), eyes(1, 2), nil)
	assert.ErrorIs(t, err, system.ErrInvalidConfiguration)

	cross, err := system.NewCrossTensor(2, 1, 2)
	require.NoError(t, err)
	s, err := system.NewSecondOrder(eyes(2, 2), eyes(1, 2), cross)
	require.NoError(t, err)
	assert.True(t, s.HasCross())
}

// TestNew_ShapeMismatch walks every way a block set can disagree with the
// declared shape; none may silently truncate.
func TestNew_ShapeMismatch(t *testing.T) {
	t.Run("no local blocks", func(t *testing.T) {
		_, err := system.New(system.FirstOrder, nil, eyes(1, 2), nil)
		assert.ErrorIs(t, err, system.ErrShapeMismatch)
	})

	t.Run("no global blocks", func(t *testing.T) {
		_, err := system.New(system.FirstOrder, eyes(2, 2), nil, nil)
		assert.ErrorIs(t, err, system.ErrShapeMismatch)
	})

	t.Run("nil local block", func(t *testing.T) {
		g := eyes(2, 2)
		g[1] = nil
		_, err := system.New(system.FirstOrder, g, eyes(1, 2), nil)
		assert.ErrorIs(t, err, system.ErrNilBlock)
	})

	t.Run("non-square local block", func(t *testing.T) {
		g := eyes(2, 2)
		g[0] = mat.NewDense(2, 3, nil)
		_, err := system.New(system.FirstOrder, g, eyes(1, 2), nil)
		assert.ErrorIs(t, err, system.ErrShapeMismatch)
	})

	t.Run("odd-sized local block", func(t *testing.T) {
		g := eyes(3, 2)
		g[2] = eye(3)
		_, err := system.New(system.FirstOrder, g, eyes(1, 2), nil)
		assert.ErrorIs(t, err, system.ErrShapeMismatch)
	})

	t.Run("odd-sized global block", func(t *testing.T) {
		a := eyes(2, 2)
		a[1] = eye(4)
		_, err := system.New(system.FirstOrder, eyes(2, 2), a, nil)
		assert.ErrorIs(t, err, system.ErrShapeMismatch)
	})

	t.Run("tensor span disagrees", func(t *testing.T) {
		cross, err := system.NewCrossTensor(5, 1, 2) // N=5, system declares N=2
		require.NoError(t, err)
		_, err = system.New(system.SecondOrder, eyes(2, 2), eyes(1, 2), cross)
		assert.ErrorIs(t, err, system.ErrShapeMismatch)
	})
}

// TestSystem_Accessors checks block retrieval and range errors.
func TestSystem_Accessors(t *testing.T) {
	g := eyes(2, 2)
	g[1].Set(0, 1, 7) // make the blocks distinguishable
	a := eyes(1, 2)
	a[0].Scale(0.5, a[0])

	s, err := system.New(system.FirstOrder, g, a, nil)
	require.NoError(t, err)

	got, err := s.LocalBlock(1)
	require.NoError(t, err)
	assert.Equal(t, 7.0, got.At(0, 1))

	got, err = s.GlobalBlock(0)
	require.NoError(t, err)
	assert.Equal(t, 0.5, got.At(0, 0))

	_, err = s.LocalBlock(2)
	assert.ErrorIs(t, err, system.ErrOutOfRange)
	_, err = s.LocalBlock(-1)
	assert.ErrorIs(t, err, system.ErrOutOfRange)
	_, err = s.GlobalBlock(1)
	assert.ErrorIs(t, err, system.ErrOutOfRange)

	// CrossBlock on a system without a tensor is a configuration error.
	_, err = s.CrossBlock(0, 0, 0)
	assert.ErrorIs(t, err, system.ErrInvalidConfiguration)
}

// TestSystem_SameShape verifies the solve-compatibility predicate.
func TestSystem_SameShape(t *testing.T) {
	s1, err := system.New(system.FirstOrder, eyes(3, 2), eyes(2, 2), nil)
	require.NoError(t, err)
	s2, err := system.New(system.SecondOrder, eyes(3, 2), eyes(2, 2), nil)
	require.NoError(t, err)
	s3, err := system.New(system.FirstOrder, eyes(4, 2), eyes(2, 2), nil)
	require.NoError(t, err)

	assert.True(t, s1.SameShape(s2), "order plays no part in shape compatibility")
	assert.False(t, s1.SameShape(s3), "N differs")
	assert.False(t, s1.SameShape(nil))
}
