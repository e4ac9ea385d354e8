// SPDX-License-Identifier: MIT

package regression_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvframe/frame"
	"github.com/katalvlaran/lvframe/regression"
)

// rowKeys returns "r1".."rn".
func rowKeys(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("r%d", i+1)
	}

	return out
}

// mustFrame builds a frame over rowKeys(len(values)) from named numeric
// columns given in order as name, values, name, values, ...
func mustFrame(t *testing.T, cols ...any) *frame.Frame {
	t.Helper()
	require.Zero(t, len(cols)%2, "mustFrame wants name/values pairs")
	var fc []frame.Column
	n := 0
	for i := 0; i < len(cols); i += 2 {
		vals := cols[i+1].([]float64)
		n = len(vals)
		fc = append(fc, frame.NumericColumn(cols[i].(string), vals))
	}
	f, err := frame.NewFrame(rowKeys(n), fc...)
	require.NoError(t, err)

	return f
}

func mustSeries(t *testing.T, name string, values []float64) *frame.Series {
	t.Helper()
	s, err := frame.NewSeries(name, rowKeys(len(values)), values)
	require.NoError(t, err)

	return s
}

func mustConstraint(t *testing.T, name string, value float64, terms ...regression.Term) *regression.Constraint {
	t.Helper()
	c, err := regression.NewConstraint(name, value, terms...)
	require.NoError(t, err)

	return c
}

// mustBuild builds a model from the frame with "y" as regressand.
func mustBuild(t *testing.T, f *frame.Frame, regressors []string, cs ...*regression.Constraint) *regression.Model {
	t.Helper()
	b, err := regression.NewModelBuilderFromFrame(f, "y")
	require.NoError(t, err)
	if regressors != nil {
		require.NoError(t, b.SetRegressors(regressors...))
	}
	for _, c := range cs {
		require.NoError(t, b.AddConstraint(c))
	}
	m, err := b.Build()
	require.NoError(t, err)

	return m
}

// lineFrame is y ≈ 0.9 + 0.9·x with an explicit intercept column.
func lineFrame(t *testing.T) *frame.Frame {
	return mustFrame(t,
		"y", []float64{1, 2, 2, 4},
		"const", []float64{1, 1, 1, 1},
		"x", []float64{0, 1, 2, 3},
	)
}
