// SPDX-License-Identifier: MIT

package regression

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvframe/frame"
)

// CategoryConstraint derives the zero right-hand-side constraint that centers a
// group of category (dummy) regressors: for each category key k,
//
//	term_k = Σ_i ŵ_i · obs(i, k),   ŵ = weights over obs rows, normalized to sum to 1.
//
// The normalization here is a plain sum-to-one and is unrelated to the
// positive-mean rescale applied by NewSystem.
//
// Errors:
//   - ErrNilInput for a nil frame or weights.
//   - frame.ErrMissingColumn, frame.ErrNonNumeric for a bad category key.
//   - ErrMissingWeight naming the first row of obs without a weight.
//   - ErrNegativeWeight, ErrNonFinite for an unusable weight.
//   - ErrZeroWeights when the weights sum to zero.
//   - ErrInvalidConstraint from NewConstraint (e.g. no categories, repeated key).
//
// Complexity: O(R·K) for R rows and K categories.
func CategoryConstraint(name string, categories []string, obs *frame.Frame, weights *frame.Series) (*Constraint, error) {
	if obs == nil || weights == nil {
		return nil, fmt.Errorf("category %q: %w", name, ErrNilInput)
	}
	if err := obs.RequireNumeric(categories...); err != nil {
		return nil, fmt.Errorf("category %q: %w", name, err)
	}

	rows := obs.RowKeys()
	w := make([]float64, len(rows))
	var total float64
	for i, row := range rows {
		v := weights.Double(row)
		switch {
		case !weights.Has(row) || math.IsNaN(v):
			return nil, fmt.Errorf("category %q: observation %q: %w", name, row, ErrMissingWeight)
		case math.IsInf(v, 0):
			return nil, fmt.Errorf("category %q: observation %q: %w", name, row, ErrNonFinite)
		case v < 0:
			return nil, fmt.Errorf("category %q: observation %q weight %g: %w", name, row, v, ErrNegativeWeight)
		}
		w[i] = v
		total += v
	}
	if total == 0 {
		return nil, fmt.Errorf("category %q: %w", name, ErrZeroWeights)
	}

	terms := make([]Term, len(categories))
	for k, key := range categories {
		col, err := obs.Column(key)
		if err != nil {
			return nil, fmt.Errorf("category %q: %w", name, err)
		}
		var acc float64
		for i := range col {
			acc += w[i] / total * col[i]
		}
		terms[k] = Term{Regressor: key, Coefficient: acc}
	}

	return NewConstraint(name, 0, terms...)
}
