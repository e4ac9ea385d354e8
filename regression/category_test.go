// SPDX-License-Identifier: MIT

package regression_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvframe/frame"
	"github.com/katalvlaran/lvframe/regression"
)

func dummyFrame(t *testing.T) *frame.Frame {
	t.Helper()
	f, err := frame.NewFrame(rowKeys(4),
		frame.NumericColumn("catA", []float64{1, 1, 0, 0}),
		frame.NumericColumn("catB", []float64{0, 0, 1, 1}),
		frame.TextColumn("label", []string{"a", "a", "b", "b"}),
	)
	require.NoError(t, err)

	return f
}

func TestCategoryConstraint_WeightedTerms(t *testing.T) {
	f := dummyFrame(t)
	w := mustSeries(t, "w", []float64{1, 1, 1, 3}) // ŵ = [1/6, 1/6, 1/6, 1/2]

	c, err := regression.CategoryConstraint("cat", []string{"catA", "catB"}, f, w)
	require.NoError(t, err)
	assert.Equal(t, "cat", c.Name())
	assert.Equal(t, 0.0, c.Value())
	assert.InDelta(t, 1.0/3, c.Coefficient("catA"), 1e-15)
	assert.InDelta(t, 2.0/3, c.Coefficient("catB"), 1e-15)
}

func TestCategoryConstraint_ScaleInvariant(t *testing.T) {
	f := dummyFrame(t)
	small, err := regression.CategoryConstraint("c", []string{"catA", "catB"}, f, mustSeries(t, "w", []float64{1, 2, 3, 4}))
	require.NoError(t, err)
	large, err := regression.CategoryConstraint("c", []string{"catA", "catB"}, f, mustSeries(t, "w", []float64{100, 200, 300, 400}))
	require.NoError(t, err)
	assert.InDelta(t, small.Coefficient("catA"), large.Coefficient("catA"), 1e-15)
	assert.InDelta(t, small.Coefficient("catB"), large.Coefficient("catB"), 1e-15)
}

func TestCategoryConstraint_Errors(t *testing.T) {
	f := dummyFrame(t)
	w := mustSeries(t, "w", []float64{1, 1, 1, 1})

	_, err := regression.CategoryConstraint("c", []string{"catA", "label"}, f, w)
	assert.ErrorIs(t, err, frame.ErrNonNumeric)

	_, err = regression.CategoryConstraint("c", []string{"catZ"}, f, w)
	assert.ErrorIs(t, err, frame.ErrMissingColumn)

	short, err := frame.NewSeries("w", []string{"r1", "r2", "r3"}, []float64{1, 1, 1})
	require.NoError(t, err)
	_, err = regression.CategoryConstraint("c", []string{"catA"}, f, short)
	assert.ErrorIs(t, err, regression.ErrMissingWeight)
	assert.Contains(t, err.Error(), `"r4"`)

	_, err = regression.CategoryConstraint("c", []string{"catA"}, f, mustSeries(t, "w", []float64{0, 0, 0, 0}))
	assert.ErrorIs(t, err, regression.ErrZeroWeights)

	_, err = regression.CategoryConstraint("c", []string{"catA"}, f, mustSeries(t, "w", []float64{1, -1, 1, 1}))
	assert.ErrorIs(t, err, regression.ErrNegativeWeight)

	_, err = regression.CategoryConstraint("c", nil, f, w)
	assert.ErrorIs(t, err, regression.ErrInvalidConstraint)

	_, err = regression.CategoryConstraint("c", []string{"catA"}, nil, w)
	assert.ErrorIs(t, err, regression.ErrNilInput)
}
