// SPDX-License-Identifier: MIT

package svd

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/lvframe/matrix"
)

// Epsilon is the float64 machine epsilon (2⁻⁵²).
const Epsilon = 0x1p-52

// ErrInvalidThreshold is returned for a NaN, infinite or sub-epsilon threshold.
var ErrInvalidThreshold = errors.New("svd: threshold must be finite and >= machine epsilon")

// ErrInvalidFactors is returned by FromFactors for inconsistent factor shapes.
var ErrInvalidFactors = errors.New("svd: inconsistent decomposition factors")

// Solver solves A·x ≈ b through a thresholded pseudo-inverse of A.
// The decomposition is fixed at construction; only the threshold changes.
type Solver struct {
	dec       *matrix.SVD
	threshold float64
}

// New decomposes a and returns a Solver using DefaultThreshold.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrEmptyMatrix, matrix.ErrNaNInf,
//     matrix.ErrFactorizationFailed.
//
// Complexity: O(M·N·min(M,N)).
func New(a matrix.Matrix) (*Solver, error) {
	dec, err := matrix.Decompose(a)
	if err != nil {
		return nil, fmt.Errorf("svd.New: %w", err)
	}

	return &Solver{dec: dec, threshold: DefaultThreshold(dec)}, nil
}

// FromFactors wraps an existing decomposition. U must be Rows×k, V Cols×k,
// and Values of length k = min(Rows, Cols).
func FromFactors(dec *matrix.SVD) (*Solver, error) {
	if dec == nil || dec.U == nil || dec.V == nil {
		return nil, fmt.Errorf("svd.FromFactors: %w", matrix.ErrNilMatrix)
	}
	k := len(dec.Values)
	if k != min(dec.Rows, dec.Cols) ||
		dec.U.Rows() != dec.Rows || dec.U.Cols() != k ||
		dec.V.Rows() != dec.Cols || dec.V.Cols() != k {
		return nil, fmt.Errorf("svd.FromFactors: U %dx%d, V %dx%d, %d values for %dx%d: %w",
			dec.U.Rows(), dec.U.Cols(), dec.V.Rows(), dec.V.Cols(), k, dec.Rows, dec.Cols, ErrInvalidFactors)
	}

	return &Solver{dec: dec, threshold: DefaultThreshold(dec)}, nil
}

// DefaultThreshold returns 0.5·sqrt(M+N+1)·σ_max·ε. It scales with σ_max and
// may be smaller than ε for a small-scale matrix; an all-zero or non-finite
// decomposition falls back to ε. ValidateThreshold applies to caller-supplied
// thresholds only.
func DefaultThreshold(dec *matrix.SVD) float64 {
	smax := dec.MaxValue()
	if smax == 0 || math.IsNaN(smax) || math.IsInf(smax, 0) {
		return Epsilon
	}

	return 0.5 * math.Sqrt(float64(dec.Rows+dec.Cols+1)) * smax * Epsilon
}

// ValidateThreshold reports ErrInvalidThreshold unless t is finite and ≥ ε.
func ValidateThreshold(t float64) error {
	if math.IsNaN(t) || math.IsInf(t, 0) || t < Epsilon {
		return fmt.Errorf("%g: %w", t, ErrInvalidThreshold)
	}

	return nil
}

// SetThreshold replaces the threshold without recomputing the decomposition.
func (s *Solver) SetThreshold(t float64) error {
	if err := ValidateThreshold(t); err != nil {
		return err
	}
	s.threshold = t

	return nil
}

// Threshold returns the active singular-value threshold.
func (s *Solver) Threshold() float64 { return s.threshold }

// Rows returns M, the row count of the decomposed matrix.
func (s *Solver) Rows() int { return s.dec.Rows }

// Cols returns N, the column count of the decomposed matrix.
func (s *Solver) Cols() int { return s.dec.Cols }

// SingularValues returns a copy of σ in descending order.
func (s *Solver) SingularValues() []float64 {
	return append([]float64(nil), s.dec.Values...)
}

// Rank counts the singular values strictly above the threshold.
func (s *Solver) Rank() int {
	r := 0
	for _, v := range s.dec.Values {
		if v > s.threshold {
			r++
		}
	}

	return r
}

// Truncated counts the singular values treated as zero.
func (s *Solver) Truncated() int { return len(s.dec.Values) - s.Rank() }

// invertedValues returns 1/σ_i for σ_i above the threshold, 0 otherwise.
func (s *Solver) invertedValues() []float64 {
	inv := make([]float64, len(s.dec.Values))
	for i, v := range s.dec.Values {
		if v > s.threshold {
			inv[i] = 1.0 / v
		}
	}

	return inv
}

// InvertSingularValues returns the k×k diagonal matrix Σ⁺.
func (s *Solver) InvertSingularValues() *matrix.Dense {
	d, _ := matrix.NewDiagonal(s.invertedValues()) // 1/σ of a positive finite σ is finite

	return d
}

// Invert returns the N×M pseudo-inverse V·Σ⁺·Uᵀ.
//
// Complexity: O(N·M·k).
func (s *Solver) Invert() (*matrix.Dense, error) {
	vs, err := matrix.ScaleCols(s.dec.V, s.invertedValues())
	if err != nil {
		return nil, fmt.Errorf("svd.Invert: %w", err)
	}
	ut, err := matrix.Transpose(s.dec.U)
	if err != nil {
		return nil, fmt.Errorf("svd.Invert: %w", err)
	}
	pinv, err := matrix.Mul(vs, ut)
	if err != nil {
		return nil, fmt.Errorf("svd.Invert: %w", err)
	}

	return pinv, nil
}

// Solve returns x = V·Σ⁺·Uᵀ·b for a right-hand side of length M.
//
// Complexity: O(M·k + N·k).
func (s *Solver) Solve(b []float64) ([]float64, error) {
	if err := matrix.ValidateVecLen(b, s.dec.Rows); err != nil {
		return nil, fmt.Errorf("svd.Solve: len(b)=%d, want %d: %w", len(b), s.dec.Rows, err)
	}
	ut, err := matrix.Transpose(s.dec.U)
	if err != nil {
		return nil, fmt.Errorf("svd.Solve: %w", err)
	}
	y, err := matrix.MatVec(ut, b)
	if err != nil {
		return nil, fmt.Errorf("svd.Solve: %w", err)
	}
	inv := s.invertedValues()
	for i := range y {
		y[i] *= inv[i]
	}
	x, err := matrix.MatVec(s.dec.V, y)
	if err != nil {
		return nil, fmt.Errorf("svd.Solve: %w", err)
	}

	return x, nil
}

// SolveMatrix returns X = V·Σ⁺·Uᵀ·B for an M×K matrix of right-hand sides.
//
// Complexity: O(M·k·K + N·k·K).
func (s *Solver) SolveMatrix(b matrix.Matrix) (*matrix.Dense, error) {
	if err := matrix.ValidateNotNil(b); err != nil {
		return nil, fmt.Errorf("svd.SolveMatrix: %w", err)
	}
	if b.Rows() != s.dec.Rows {
		return nil, fmt.Errorf("svd.SolveMatrix: B has %d rows, want %d: %w", b.Rows(), s.dec.Rows, matrix.ErrDimensionMismatch)
	}
	ut, err := matrix.Transpose(s.dec.U)
	if err != nil {
		return nil, fmt.Errorf("svd.SolveMatrix: %w", err)
	}
	utb, err := matrix.Mul(ut, b)
	if err != nil {
		return nil, fmt.Errorf("svd.SolveMatrix: %w", err)
	}
	scaled, err := matrix.ScaleRows(utb, s.invertedValues())
	if err != nil {
		return nil, fmt.Errorf("svd.SolveMatrix: %w", err)
	}
	x, err := matrix.Mul(s.dec.V, scaled)
	if err != nil {
		return nil, fmt.Errorf("svd.SolveMatrix: %w", err)
	}

	return x, nil
}
