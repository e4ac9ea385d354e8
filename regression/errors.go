// SPDX-License-Identifier: MIT
// Package regression: sentinel error set.
//
// Every configuration or shape problem is reported synchronously by the
// constructor or setter that detects it; no partially-valid value is
// returned. Callers match with errors.Is; messages carry the offending key.
//
// Numerical degeneracy (tiny singular values) is never an error: it is
// absorbed by singular-value truncation in the svd package.

package regression

import "errors"

var (
	// ErrNilInput indicates a nil model, series, frame or constraint argument.
	ErrNilInput = errors.New("regression: nil input")

	// ErrInvalidConstraint indicates a malformed constraint: empty name,
	// no terms, an empty or repeated regressor key, or a non-finite number.
	ErrInvalidConstraint = errors.New("regression: invalid constraint")

	// ErrDuplicateConstraint indicates two constraints sharing one name.
	ErrDuplicateConstraint = errors.New("regression: duplicate constraint name")

	// ErrRankDeficient indicates that the constraint matrix has rank below
	// the number of constraints (redundant or conflicting constraints).
	ErrRankDeficient = errors.New("regression: rank-deficient constraint set")

	// ErrUnknownRegressor indicates a regressor key that is not active in the
	// model (or not present in the requested column ordering).
	ErrUnknownRegressor = errors.New("regression: unknown regressor")

	// ErrUnknownConstraint indicates a constraint name absent from a result.
	ErrUnknownConstraint = errors.New("regression: unknown constraint")

	// ErrDuplicateRegressor indicates a regressor listed twice.
	ErrDuplicateRegressor = errors.New("regression: duplicate regressor")

	// ErrRegressandIsRegressor indicates the regressand column used as a regressor.
	ErrRegressandIsRegressor = errors.New("regression: regressand used as regressor")

	// ErrMissingWeight indicates an observation without a weight.
	ErrMissingWeight = errors.New("regression: missing weight")

	// ErrNegativeWeight indicates a negative observation weight.
	ErrNegativeWeight = errors.New("regression: negative weight")

	// ErrZeroWeights indicates weights that sum to zero.
	ErrZeroWeights = errors.New("regression: weights sum to zero")

	// ErrNonFinite indicates a NaN or ±Inf input value.
	ErrNonFinite = errors.New("regression: non-finite value")

	// ErrEmptyModel indicates a model without regressors or observations.
	ErrEmptyModel = errors.New("regression: model has no regressors or observations")

	// ErrKeyMismatch indicates fitted and residual series with different keys.
	ErrKeyMismatch = errors.New("regression: fitted and residual keys differ")
)
