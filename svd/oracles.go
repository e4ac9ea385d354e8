// SPDX-License-Identifier: MIT

package svd

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvframe/matrix"
)

// perturbation is the relative step applied to each coordinate by both
// oracles; zero coordinates move by the same absolute amount.
const perturbation = 0.01

// Fitted returns A·x.
func Fitted(a matrix.Matrix, x []float64) ([]float64, error) {
	y, err := matrix.MatVec(a, x)
	if err != nil {
		return nil, fmt.Errorf("svd.Fitted: %w", err)
	}

	return y, nil
}

// Residual returns A·x − b.
func Residual(a matrix.Matrix, x, b []float64) ([]float64, error) {
	y, err := Fitted(a, x)
	if err != nil {
		return nil, err
	}
	if len(b) != len(y) {
		return nil, fmt.Errorf("svd.Residual: len(b)=%d, want %d: %w", len(b), len(y), matrix.ErrDimensionMismatch)
	}
	for i := range y {
		y[i] -= b[i]
	}

	return y, nil
}

// RSS returns the residual sum of squares Σ(A·x − b)².
func RSS(a matrix.Matrix, x, b []float64) (float64, error) {
	r, err := Residual(a, x, b)
	if err != nil {
		return 0, err
	}
	var sum float64
	for _, v := range r {
		sum += v * v
	}

	return sum, nil
}

// IsExactSolution reports whether x solves A·x = b: the RSS is at most tol
// and no ±1% move of a single coordinate lowers it by more than tol.
// A least-squares optimum of an inconsistent system is not exact.
func IsExactSolution(a matrix.Matrix, x, b []float64, tol float64) (bool, error) {
	base, err := RSS(a, x, b)
	if err != nil {
		return false, err
	}
	if base > tol {
		return false, nil
	}

	return notImprovable(a, x, b, base, tol)
}

// IsLeastSquaresSolution perturbs each coordinate of x by ±1% (±0.01 for a
// zero coordinate) and reports false if any perturbation lowers the RSS by
// more than tol.
//
// Complexity: O(N·M·N).
func IsLeastSquaresSolution(a matrix.Matrix, x, b []float64, tol float64) (bool, error) {
	base, err := RSS(a, x, b)
	if err != nil {
		return false, err
	}

	return notImprovable(a, x, b, base, tol)
}

// notImprovable moves one coordinate at a time by ±perturbation and reports
// whether every move keeps the RSS at or above base−tol.
func notImprovable(a matrix.Matrix, x, b []float64, base, tol float64) (bool, error) {
	moved := append([]float64(nil), x...)
	var (
		j         int
		step, rss float64
		err       error
	)
	for j = range x {
		step = perturbation * math.Abs(x[j])
		if step == 0 {
			step = perturbation
		}
		for _, sign := range [2]float64{+1, -1} {
			moved[j] = x[j] + sign*step
			if rss, err = RSS(a, moved, b); err != nil {
				return false, err
			}
			if rss < base-tol {
				return false, nil
			}
		}
		moved[j] = x[j]
	}

	return true, nil
}
