// Package matrix_test contains unit tests for universal Matrix (linear algebra) operations.
package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvframe/matrix"
)

// TestHelpers_InterfaceHiding_Fallback ensures that using a non-nil wrapper
// (which hides the concrete type) forces the interface fallback path and
// produces the same results as with the bare Dense.
func TestHelpers_InterfaceHiding_Fallback(t *testing.T) {
	t.Parallel()

	base := MustDense(t, 3, 4)
	RandomFill(t, base, 12345)
	other := MustDense(t, 4, 2)
	RandomFill(t, other, 777)

	fast, err := matrix.Mul(base, other)
	require.NoError(t, err)
	slow, err := matrix.Mul(hide{base}, hide{other})
	require.NoError(t, err)
	ok, err := matrix.AllClose(fast, slow, 0, 0)
	require.NoError(t, err)
	assert.True(t, ok, "fast path and fallback must agree bitwise")

	tf, err := matrix.Transpose(base)
	require.NoError(t, err)
	ts, err := matrix.Transpose(hide{base})
	require.NoError(t, err)
	ok, err = matrix.AllClose(tf, ts, 0, 0)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMul_Correctness(t *testing.T) {
	t.Parallel()

	a := MustFrom(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	b := MustFrom(t, [][]float64{{7, 8}, {9, 10}, {11, 12}})
	c, err := matrix.Mul(a, b)
	require.NoError(t, err)
	CompareClose(t, [][]float64{{58, 64}, {139, 154}}, c, 0)

	_, err = matrix.Mul(a, a)
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestMul_EmptyInner(t *testing.T) {
	a := MustDense(t, 2, 0)
	b := MustDense(t, 0, 3)
	c, err := matrix.Mul(a, b)
	require.NoError(t, err)
	CompareClose(t, [][]float64{{0, 0, 0}, {0, 0, 0}}, c, 0)
}

func TestTransposeScale(t *testing.T) {
	t.Parallel()

	a := MustFrom(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	at, err := matrix.Transpose(a)
	require.NoError(t, err)
	CompareClose(t, [][]float64{{1, 4}, {2, 5}, {3, 6}}, at, 0)

	s, err := matrix.Scale(hide{a}, -2)
	require.NoError(t, err)
	CompareClose(t, [][]float64{{-2, -4, -6}, {-8, -10, -12}}, s, 0)
}

func TestMatVec(t *testing.T) {
	t.Parallel()

	a := MustFrom(t, [][]float64{{1, 2}, {3, 4}, {5, 6}})
	y, err := matrix.MatVec(a, []float64{1, -1})
	require.NoError(t, err)
	assert.Equal(t, []float64{-1, -1, -1}, y)

	y2, err := matrix.MatVec(hide{a}, []float64{1, -1})
	require.NoError(t, err)
	assert.Equal(t, y, y2)

	_, err = matrix.MatVec(a, []float64{1})
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestScaleRowsCols_Basic(t *testing.T) {
	t.Parallel()

	a := MustFrom(t, [][]float64{{1, 2}, {3, 4}})
	r, err := matrix.ScaleRows(a, []float64{2, 3})
	require.NoError(t, err)
	CompareClose(t, [][]float64{{2, 4}, {9, 12}}, r, 0)

	c, err := matrix.ScaleCols(hide{a}, []float64{2, 3})
	require.NoError(t, err)
	CompareClose(t, [][]float64{{2, 6}, {6, 12}}, c, 0)

	_, err = matrix.ScaleCols(a, []float64{1})
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestAllClose_Basic(t *testing.T) {
	a := MustFrom(t, [][]float64{{1, 2}})
	b := MustFrom(t, [][]float64{{1 + 1e-10, 2}})
	ok, err := matrix.AllClose(a, b, 0, 1e-9)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = matrix.AllClose(a, b, 0, 1e-12)
	require.NoError(t, err)
	assert.False(t, ok)
}
