// SPDX-License-Identifier: MIT

package regression_test

import (
	"bytes"
	"log/slog"
	"math"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvframe/matrix"
	"github.com/katalvlaran/lvframe/regression"
	"github.com/katalvlaran/lvframe/svd"
)

func mustSolve(t *testing.T, m *regression.Model, opts ...regression.Option) (*regression.Solver, *regression.Result) {
	t.Helper()
	s, err := regression.NewSolver(m, opts...)
	require.NoError(t, err)
	res, err := s.Solve()
	require.NoError(t, err)

	return s, res
}

func TestSolve_InterceptOnly(t *testing.T) {
	f := mustFrame(t, "y", []float64{1, 2, 3, 4}, "const", []float64{1, 1, 1, 1})
	_, res := mustSolve(t, mustBuild(t, f, nil))

	beta, err := res.Beta("const")
	require.NoError(t, err)
	assert.InDelta(t, 2.5, beta, 1e-12)
	assert.InDeltaSlice(t, []float64{2.5, 2.5, 2.5, 2.5}, res.Fitted().Values(), 1e-12)
	// residual = fitted − observed: the first row is over-predicted.
	assert.InDeltaSlice(t, []float64{1.5, 0.5, -0.5, -1.5}, res.Residuals().Values(), 1e-12)
	assert.InDelta(t, 5.0, res.RSS(), 1e-12)
	assert.Equal(t, 0, res.Duals().Len())
	assert.Equal(t, rowKeys(4), res.Fitted().Keys())

	_, err = res.Beta("nope")
	assert.ErrorIs(t, err, regression.ErrUnknownRegressor)
}

func TestSolve_OrdinaryLeastSquares(t *testing.T) {
	_, res := mustSolve(t, mustBuild(t, lineFrame(t), nil))
	assert.InDeltaSlice(t, []float64{0.9, 0.9}, res.Betas().Values(), 1e-12)
	assert.Equal(t, []string{"const", "x"}, res.Betas().Keys())
	assert.Equal(t, 2, res.Rank())
	assert.Greater(t, res.Threshold(), 0.0)
}

func TestPseudoInverse_ReducesToOLS(t *testing.T) {
	s, err := regression.NewSolver(mustBuild(t, lineFrame(t), nil))
	require.NoError(t, err)
	q, err := s.PseudoInverse()
	require.NoError(t, err)

	// (AᵀA)⁻¹Aᵀ for A = [1 x], x = 0..3.
	want := [][]float64{
		{0.7, 0.4, 0.1, -0.2},
		{-0.3, -0.1, 0.1, 0.3},
	}
	require.Equal(t, 2, q.Rows())
	require.Equal(t, 4, q.Cols())
	for i := range want {
		row, _ := q.RawRow(i)
		assert.InDeltaSlice(t, want[i], row, 1e-12, "row %d", i)
	}
}

func TestPseudoInverse_ReproducesSolve(t *testing.T) {
	c := mustConstraint(t, "slope", 1, regression.Term{Regressor: "x", Coefficient: 1})
	m := mustBuild(t, lineFrame(t), nil, c)
	s, err := regression.NewSolver(m)
	require.NoError(t, err)

	q, err := s.PseudoInverse()
	require.NoError(t, err)
	require.Equal(t, 3, q.Rows())
	require.Equal(t, 5, q.Cols())

	sys, err := s.System()
	require.NoError(t, err)
	rhs := append(sys.RegressandVector(), sys.ConstraintVector()...)
	x, err := matrix.MatVec(q, rhs)
	require.NoError(t, err)

	res, err := s.Solve()
	require.NoError(t, err)
	want := append(res.Betas().Values(), res.Duals().Values()...)
	assert.InDeltaSlice(t, want, x, 1e-10)
}

func TestSolve_ConstraintsHold(t *testing.T) {
	f := mustFrame(t,
		"y", []float64{3, 1, 4, 1, 5, 9, 2, 6},
		"const", []float64{1, 1, 1, 1, 1, 1, 1, 1},
		"x1", []float64{0.5, 1.5, 2, 3, 1, 0, 2.5, 4},
		"x2", []float64{1, 0, 2, 1, 3, 2, 0, 1},
	)
	c1 := mustConstraint(t, "sum", 1, regression.Term{Regressor: "x1", Coefficient: 1}, regression.Term{Regressor: "x2", Coefficient: 1})
	c2 := mustConstraint(t, "level", 2, regression.Term{Regressor: "const", Coefficient: 1}, regression.Term{Regressor: "x1", Coefficient: -2})
	m := mustBuild(t, f, nil, c1, c2)
	s, res := mustSolve(t, m)

	sys, err := s.System()
	require.NoError(t, err)
	cb, err := matrix.MatVec(sys.ConstraintMatrix(), res.Betas().Values())
	require.NoError(t, err)
	assert.InDeltaSlice(t, sys.ConstraintVector(), cb, 1e-9)

	// The constrained optimum cannot be improved along the constraint surface:
	// the KKT solution satisfies the stationarity row block exactly.
	dec, err := s.SVD()
	require.NoError(t, err)
	sol := append(res.Betas().Values(), res.Duals().Values()...)
	exact, err := svd.IsExactSolution(sys.AugmentedMatrix(), sol, sys.AugmentedVector(), 1e-9)
	require.NoError(t, err)
	assert.True(t, exact)
	assert.Equal(t, 0, dec.Truncated())
}

func TestSolve_BitIdentical(t *testing.T) {
	s, first := mustSolve(t, mustBuild(t, lineFrame(t), nil))
	second, err := s.Solve()
	require.NoError(t, err)
	assert.Equal(t, first.Betas().Values(), second.Betas().Values())
	assert.Equal(t, first.Residuals().Values(), second.Residuals().Values())
	assert.Equal(t, first.Duals().Values(), second.Duals().Values())
}

// Category dummies with an explicit intercept: the design is singular
// (const = catA + catB) and the category constraint only selects one of the
// equally good fits, so it is non-binding and its dual is zero.
func TestSolve_CategoryDual_NonBinding(t *testing.T) {
	f := mustFrame(t,
		"y", []float64{1, 1, 3, 3},
		"const", []float64{1, 1, 1, 1},
		"catA", []float64{1, 1, 0, 0},
		"catB", []float64{0, 0, 1, 1},
	)
	b, err := regression.NewModelBuilderFromFrame(f, "y")
	require.NoError(t, err)
	require.NoError(t, b.AddCategoryConstraint("cat", "catA", "catB"))
	m, err := b.Build()
	require.NoError(t, err)

	_, res := mustSolve(t, m)
	assert.InDeltaSlice(t, []float64{2, -1, 1}, res.Betas().Values(), 1e-9)
	dual, err := res.Dual("cat")
	require.NoError(t, err)
	assert.InDelta(t, 0, dual, 1e-9)
	assert.InDelta(t, 0, res.RSS(), 1e-18)
}

// Without an intercept the same constraint forces βA = −βB, which costs fit:
// the constraint binds and its dual is non-zero.
func TestSolve_CategoryDual_Binding(t *testing.T) {
	f := mustFrame(t,
		"y", []float64{1, 1, 3, 3},
		"catA", []float64{1, 1, 0, 0},
		"catB", []float64{0, 0, 1, 1},
	)
	b, err := regression.NewModelBuilderFromFrame(f, "y")
	require.NoError(t, err)
	require.NoError(t, b.AddCategoryConstraint("cat", "catA", "catB"))
	m, err := b.Build()
	require.NoError(t, err)

	_, res := mustSolve(t, m)
	assert.InDeltaSlice(t, []float64{-1, 1}, res.Betas().Values(), 1e-9)
	dual, err := res.Dual("cat")
	require.NoError(t, err)
	assert.InDelta(t, 16, dual, 1e-9)

	_, err = res.Dual("nope")
	assert.ErrorIs(t, err, regression.ErrUnknownConstraint)
}

// x2 = 2·x1 exactly: the augmented matrix is singular. Truncating the null
// direction yields the minimum-norm β ∝ (1, 2); a near-zero threshold may
// yield a different β, yet both give the least-squares fitted vector.
func TestSolve_CollinearThreshold(t *testing.T) {
	f := mustFrame(t,
		"y", []float64{1, 2, 2, 5},
		"x1", []float64{1, 2, 3, 4},
		"x2", []float64{2, 4, 6, 8},
	)
	m := mustBuild(t, f, nil)
	// fitted = c·x1 with c = Σx·y / Σx² = 31/30.
	c := 31.0 / 30.0
	wantFitted := []float64{c, 2 * c, 3 * c, 4 * c}

	s, err := regression.NewSolver(m, regression.WithSingularValueThreshold(1e-8))
	require.NoError(t, err)
	truncated, err := s.Solve()
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{c / 5, 2 * c / 5}, truncated.Betas().Values(), 1e-9)
	assert.InDeltaSlice(t, wantFitted, truncated.Fitted().Values(), 1e-9)
	assert.Equal(t, 1, truncated.Rank())
	dec, err := s.SVD()
	require.NoError(t, err)
	coarse := dec.Truncated()

	require.NoError(t, s.SetSingularValueThreshold(svd.Epsilon))
	fine, err := s.Solve()
	require.NoError(t, err)
	assert.LessOrEqual(t, dec.Truncated(), coarse, "a smaller threshold never zeroes more values")
	assert.InDeltaSlice(t, wantFitted, fine.Fitted().Values(), 1e-6)
}

// Without an explicit threshold the adaptive default already drops the
// rounding-level singular value of the collinear design.
func TestSolve_CollinearDefaultThreshold(t *testing.T) {
	f := mustFrame(t,
		"y", []float64{1, 2, 2, 5},
		"x1", []float64{1, 2, 3, 4},
		"x2", []float64{2, 4, 6, 8},
	)
	c := 31.0 / 30.0

	s, res := mustSolve(t, mustBuild(t, f, nil))
	assert.Equal(t, 1, res.Rank())
	assert.InDeltaSlice(t, []float64{c / 5, 2 * c / 5}, res.Betas().Values(), 1e-9)

	// 2AᵀWA = 2·AᵀA has σ_max = 300 for unit weights.
	want := 0.5 * math.Sqrt(2+2+1) * 300 * svd.Epsilon
	assert.InDelta(t, want, res.Threshold(), want*1e-9)

	require.NoError(t, s.SetSingularValueThreshold(svd.Epsilon))
	fine, err := s.Solve()
	require.NoError(t, err)
	assert.InDeltaSlice(t, res.Fitted().Values(), fine.Fitted().Values(), 1e-6)
	assert.Equal(t, res.Fitted().Keys(), fine.Fitted().Keys())
}

func TestSolver_ThresholdPropagation(t *testing.T) {
	s, err := regression.NewSolver(mustBuild(t, lineFrame(t), nil))
	require.NoError(t, err)

	// Before the decomposition exists the threshold is stored.
	require.NoError(t, s.SetSingularValueThreshold(1e-6))
	dec, err := s.SVD()
	require.NoError(t, err)
	assert.Equal(t, 1e-6, dec.Threshold())

	// Afterwards it is pushed into the same decomposition.
	require.NoError(t, s.SetSingularValueThreshold(1e-3))
	again, err := s.SVD()
	require.NoError(t, err)
	assert.Same(t, dec, again)
	assert.Equal(t, 1e-3, again.Threshold())

	for _, bad := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		assert.ErrorIs(t, s.SetSingularValueThreshold(bad), svd.ErrInvalidThreshold)
	}
	assert.Equal(t, 1e-3, again.Threshold())
}

func TestWithSingularValueThreshold_Panics(t *testing.T) {
	assert.Panics(t, func() { regression.WithSingularValueThreshold(0) })
	assert.NotPanics(t, func() { regression.WithSingularValueThreshold(1e-10) })
}

func TestSolver_SetModel(t *testing.T) {
	m1 := mustBuild(t, lineFrame(t), nil)
	s, err := regression.NewSolver(m1)
	require.NoError(t, err)
	sys1, err := s.System()
	require.NoError(t, err)

	// Same configuration: caches survive.
	require.NoError(t, s.SetModel(mustBuild(t, lineFrame(t), nil)))
	sys2, err := s.System()
	require.NoError(t, err)
	assert.Same(t, sys1, sys2)

	// Different configuration: caches are rebuilt.
	m3 := mustBuild(t, lineFrame(t), []string{"x"})
	require.NoError(t, s.SetModel(m3))
	sys3, err := s.System()
	require.NoError(t, err)
	assert.NotSame(t, sys1, sys3)
	assert.Same(t, m3, s.Model())
	assert.Equal(t, 1, sys3.NumRegressors())

	assert.ErrorIs(t, s.SetModel(nil), regression.ErrNilInput)
	_, err = regression.NewSolver(nil)
	assert.ErrorIs(t, err, regression.ErrNilInput)
}

func TestSolver_SystemErrorsPropagate(t *testing.T) {
	f := mustFrame(t, "y", []float64{1, 2}, "x", []float64{1, 2})
	b, err := regression.NewModelBuilderFromFrame(f, "y")
	require.NoError(t, err)
	require.NoError(t, b.SetWeights(mustSeries(t, "w", []float64{1, -1})))
	m, err := b.Build()
	require.NoError(t, err)

	s, err := regression.NewSolver(m)
	require.NoError(t, err)
	_, err = s.Solve()
	assert.ErrorIs(t, err, regression.ErrNegativeWeight)
	_, err = s.PseudoInverse()
	assert.ErrorIs(t, err, regression.ErrNegativeWeight)
}

func TestSolver_LoggingAndMetrics(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	reg := prometheus.NewRegistry()
	metrics, err := regression.NewMetrics(reg)
	require.NoError(t, err)

	s, err := regression.NewSolver(mustBuild(t, lineFrame(t), nil),
		regression.WithLogger(logger), regression.WithMetrics(metrics))
	require.NoError(t, err)
	_, err = s.Solve()
	require.NoError(t, err)
	_, err = s.Solve()
	require.NoError(t, err)

	assert.Equal(t, 2.0, metrics.SolvesTotal("ok"))
	assert.Equal(t, 0.0, metrics.SolvesTotal("error"))
	assert.Equal(t, 1.0, metrics.SystemsBuilt(), "the system is assembled once")

	out := buf.String()
	assert.Contains(t, out, `"msg":"system assembled"`)
	assert.Contains(t, out, `"msg":"solve complete"`)
	assert.Contains(t, out, `"solve_id"`)

	// Registering twice on the same registry is rejected by Prometheus.
	_, err = regression.NewMetrics(reg)
	assert.Error(t, err)
}

func TestSolver_WarnsOnUnsupportedRegressor(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	s, res := mustSolve(t, unsupportedModel(t), regression.WithLogger(logger))
	assert.Contains(t, buf.String(), `"msg":"regressors without weighted support"`)
	assert.Contains(t, buf.String(), `"z"`)

	// The unsupported direction is truncated and solves to zero.
	assert.Equal(t, 1, res.Rank())
	z, err := res.Beta("z")
	require.NoError(t, err)
	assert.InDelta(t, 0.0, z, 1e-12)
	c, err := res.Beta("const")
	require.NoError(t, err)
	assert.InDelta(t, 1.5, c, 1e-12)

	dec, err := s.SVD()
	require.NoError(t, err)
	assert.Equal(t, 1, dec.Truncated())
}
