// SPDX-License-Identifier: MIT

package regression

import (
	"fmt"

	"github.com/katalvlaran/lvframe/frame"
)

// predictedName labels the series returned by Predict.
const predictedName = "predicted"

// Result is the immutable output of one Solve.
type Result struct {
	betas     *frame.Series // keyed by regressor
	duals     *frame.Series // keyed by constraint name
	fitted    *frame.Series // keyed by observation
	residuals *frame.Series // keyed by observation
	threshold float64
	rank      int
}

// NewResult bundles the four series of a solve.
//
// Errors:
//   - ErrNilInput, ErrKeyMismatch (fitted and residuals keyed differently).
func NewResult(betas, duals, fitted, residuals *frame.Series) (*Result, error) {
	if betas == nil || duals == nil || fitted == nil || residuals == nil {
		return nil, fmt.Errorf("NewResult: %w", ErrNilInput)
	}
	if !fitted.SameKeys(residuals) {
		return nil, fmt.Errorf("NewResult: %d fitted, %d residual keys: %w", fitted.Len(), residuals.Len(), ErrKeyMismatch)
	}

	return &Result{betas: betas, duals: duals, fitted: fitted, residuals: residuals}, nil
}

// Betas returns the coefficients keyed by regressor.
func (r *Result) Betas() *frame.Series { return r.betas }

// Duals returns the Lagrange multipliers keyed by constraint name.
func (r *Result) Duals() *frame.Series { return r.duals }

// Fitted returns A·β keyed by active observation.
func (r *Result) Fitted() *frame.Series { return r.fitted }

// Residuals returns A·β − b keyed by active observation. The sign is fitted
// minus observed, so an over-predicted observation has a positive residual;
// negate the series for the observed − fitted convention.
func (r *Result) Residuals() *frame.Series { return r.residuals }

// Threshold returns the singular-value threshold used by the solve
// (0 for a Result assembled with NewResult).
func (r *Result) Threshold() float64 { return r.threshold }

// Rank returns the number of augmented-matrix singular values kept.
func (r *Result) Rank() int { return r.rank }

// Beta returns the coefficient of one regressor.
func (r *Result) Beta(regressor string) (float64, error) {
	if !r.betas.Has(regressor) {
		return 0, fmt.Errorf("Beta(%q): %w", regressor, ErrUnknownRegressor)
	}

	return r.betas.Double(regressor), nil
}

// Dual returns the Lagrange multiplier of one constraint.
func (r *Result) Dual(constraint string) (float64, error) {
	if !r.duals.Has(constraint) {
		return 0, fmt.Errorf("Dual(%q): %w", constraint, ErrUnknownConstraint)
	}

	return r.duals.Double(constraint), nil
}

// RSS returns the residual sum of squares over the active observations.
func (r *Result) RSS() float64 {
	var sum float64
	for _, v := range r.residuals.Values() {
		sum += v * v
	}

	return sum
}

// Predict evaluates Σ_k β_k·f(row, k) for the given rows of f (all rows when
// none are given). f may hold observations that were not used for fitting.
//
// Errors:
//   - ErrNilInput, frame.ErrMissingColumn, frame.ErrNonNumeric, frame.ErrMissingRow.
func (r *Result) Predict(f *frame.Frame, rows ...string) (*frame.Series, error) {
	if f == nil {
		return nil, fmt.Errorf("Predict: %w", ErrNilInput)
	}
	keys := r.betas.Keys()
	if err := f.RequireNumeric(keys...); err != nil {
		return nil, fmt.Errorf("Predict: %w", err)
	}
	if len(rows) == 0 {
		rows = f.RowKeys()
	} else if err := f.RequireRows(rows...); err != nil {
		return nil, fmt.Errorf("Predict: %w", err)
	}
	beta := r.betas.Values()
	out := make([]float64, len(rows))
	for i, row := range rows {
		var acc float64
		for k, key := range keys {
			v, err := f.Float(row, key)
			if err != nil {
				return nil, fmt.Errorf("Predict: %w", err)
			}
			acc += beta[k] * v
		}
		out[i] = acc
	}

	return frame.NewSeries(predictedName, rows, out)
}
