// SPDX-License-Identifier: MIT

package regression

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvframe/matrix"
)

// System is the immutable augmented (KKT) linear system derived from a Model:
//
//	[ 2AᵀWA  Cᵀ ] [β]   [2AᵀWb]
//	[ C      0  ] [λ] = [  d  ]
//
// with A the M×N design matrix, W = diag(w) the rescaled weights, b the
// regressand vector, C the P×N constraint matrix and d its right-hand side.
// Every field is computed by NewSystem; accessors return copies.
type System struct {
	model *Model

	a      *matrix.Dense // M×N
	b      []float64     // M
	w      []float64     // M, rescaled
	twoATW *matrix.Dense // N×M
	c      *matrix.Dense // P×N
	d      []float64     // P
	aug    *matrix.Dense // (N+P)×(N+P)
	augVec []float64     // N+P
}

// NewSystem assembles the augmented system from m.
//
// Implementation:
//   - Stage 1: copy A over active observations × active regressors.
//   - Stage 2: copy raw weights, reject negatives, rescale by count(w>0)/Σw.
//   - Stage 3: copy b.
//   - Stage 4: 2AᵀW = 2·(Aᵀ with column i scaled by w_i).
//   - Stage 5: write 2AᵀWA, Cᵀ and C into one preallocated (N+P)² buffer.
//   - Stage 6: write 2AᵀWb and d into one (N+P) vector.
//
// Errors:
//   - ErrNilInput, ErrEmptyModel.
//   - ErrNonFinite naming the observation (and regressor) with a NaN/±Inf value.
//   - ErrMissingWeight, ErrNegativeWeight naming the observation.
//   - ErrZeroWeights when no weight is positive.
//
// Complexity:
//   - Time O(M·N² + (N+P)²), Space O(M·N + (N+P)²).
func NewSystem(m *Model) (*System, error) {
	if m == nil {
		return nil, fmt.Errorf("NewSystem: %w", ErrNilInput)
	}
	rows, cols := m.observations, m.regressors
	M, N, P := len(rows), len(cols), m.constraints.Len()
	if M == 0 || N == 0 {
		return nil, fmt.Errorf("NewSystem: %w", ErrEmptyModel)
	}
	s := &System{model: m}

	// Stage 1: design matrix.
	a, err := matrix.NewDense(M, N)
	if err != nil {
		return nil, fmt.Errorf("NewSystem: %w", err)
	}
	var i, j int
	var v float64
	for j = 0; j < N; j++ {
		for i = 0; i < M; i++ {
			if v, err = m.frame.Float(rows[i], cols[j]); err != nil {
				return nil, fmt.Errorf("NewSystem: %w", err)
			}
			if !isFinite(v) {
				return nil, fmt.Errorf("NewSystem: observation %q regressor %q is %g: %w", rows[i], cols[j], v, ErrNonFinite)
			}
			_ = a.Set(i, j, v) // finite and in range
		}
	}
	s.a = a

	// Stage 2: weights.
	if s.w, err = rescaleWeights(m); err != nil {
		return nil, fmt.Errorf("NewSystem: %w", err)
	}

	// Stage 3: regressand.
	s.b = make([]float64, M)
	for i = 0; i < M; i++ {
		v = m.regressand.Double(rows[i])
		if !isFinite(v) {
			return nil, fmt.Errorf("NewSystem: regressand at observation %q is %g: %w", rows[i], v, ErrNonFinite)
		}
		s.b[i] = v
	}

	// Stage 4: 2AᵀW.
	at, err := matrix.Transpose(a)
	if err != nil {
		return nil, fmt.Errorf("NewSystem: %w", err)
	}
	atw, err := matrix.ScaleCols(at, s.w)
	if err != nil {
		return nil, fmt.Errorf("NewSystem: %w", err)
	}
	if s.twoATW, err = matrix.Scale(atw, 2); err != nil {
		return nil, fmt.Errorf("NewSystem: %w", err)
	}

	// Stage 5: augmented matrix.
	if s.c, err = m.constraints.Matrix(cols); err != nil {
		return nil, fmt.Errorf("NewSystem: %w", err)
	}
	s.d = m.constraints.Values()
	h, err := matrix.Mul(s.twoATW, a)
	if err != nil {
		return nil, fmt.Errorf("NewSystem: %w", err)
	}
	if s.aug, err = matrix.NewDense(N+P, N+P); err != nil {
		return nil, fmt.Errorf("NewSystem: %w", err)
	}
	if err = matrix.SetBlock(s.aug, 0, 0, h, false); err != nil {
		return nil, fmt.Errorf("NewSystem: %w", err)
	}
	if err = matrix.SetBlock(s.aug, 0, N, s.c, true); err != nil {
		return nil, fmt.Errorf("NewSystem: %w", err)
	}
	if err = matrix.SetBlock(s.aug, N, 0, s.c, false); err != nil {
		return nil, fmt.Errorf("NewSystem: %w", err)
	}

	// Stage 6: augmented vector.
	twoATWb, err := matrix.MatVec(s.twoATW, s.b)
	if err != nil {
		return nil, fmt.Errorf("NewSystem: %w", err)
	}
	s.augVec = make([]float64, N+P)
	if err = matrix.SetVecBlock(s.augVec, 0, twoATWb); err != nil {
		return nil, fmt.Errorf("NewSystem: %w", err)
	}
	if err = matrix.SetVecBlock(s.augVec, N, s.d); err != nil {
		return nil, fmt.Errorf("NewSystem: %w", err)
	}

	return s, nil
}

// rescaleWeights copies the raw weights over the active rows and rescales
// them so that the strictly positive entries average 1.
func rescaleWeights(m *Model) ([]float64, error) {
	w := make([]float64, len(m.observations))
	var sum float64
	positive := 0
	for i, row := range m.observations {
		v := m.weights.Double(row)
		switch {
		case math.IsNaN(v) && !m.weights.Has(row):
			return nil, fmt.Errorf("observation %q: %w", row, ErrMissingWeight)
		case !isFinite(v):
			return nil, fmt.Errorf("observation %q weight %g: %w", row, v, ErrNonFinite)
		case v < 0:
			return nil, fmt.Errorf("observation %q weight %g: %w", row, v, ErrNegativeWeight)
		case v > 0:
			positive++
		}
		w[i] = v
		sum += v
	}
	if positive == 0 {
		return nil, ErrZeroWeights
	}
	scale := float64(positive) / sum
	for i := range w {
		w[i] *= scale
	}

	return w, nil
}

// Model returns the model the system was built from.
func (s *System) Model() *Model { return s.model }

// NumObservations returns M.
func (s *System) NumObservations() int { return len(s.b) }

// NumRegressors returns N.
func (s *System) NumRegressors() int { return s.a.Cols() }

// NumConstraints returns P.
func (s *System) NumConstraints() int { return len(s.d) }

// DesignMatrix returns a copy of A (M×N).
func (s *System) DesignMatrix() *matrix.Dense { return cloneDense(s.a) }

// RegressandVector returns a copy of b.
func (s *System) RegressandVector() []float64 { return append([]float64(nil), s.b...) }

// WeightVector returns a copy of the rescaled weights.
func (s *System) WeightVector() []float64 { return append([]float64(nil), s.w...) }

// TwoATW returns a copy of 2·Aᵀ·W (N×M).
func (s *System) TwoATW() *matrix.Dense { return cloneDense(s.twoATW) }

// ConstraintMatrix returns a copy of C (P×N), columns in regressor order.
func (s *System) ConstraintMatrix() *matrix.Dense { return cloneDense(s.c) }

// ConstraintVector returns a copy of d.
func (s *System) ConstraintVector() []float64 { return append([]float64(nil), s.d...) }

// Hessian returns a copy of the leading N×N block 2AᵀWA of the augmented matrix.
func (s *System) Hessian() *matrix.Dense {
	n := s.a.Cols()
	h, _ := matrix.Block(s.aug, 0, 0, n, n) // always inside aug

	return h
}

// Unsupported returns the active regressors whose column is zero on every
// positively weighted observation. Their coefficient is not identified by
// the data and only constraints (or truncation) pin it down.
func (s *System) Unsupported() []string {
	var out []string
	for j, v := range matrix.Diagonal(s.Hessian()) {
		if v == 0 {
			out = append(out, s.model.regressors[j])
		}
	}

	return out
}

// AugmentedMatrix returns a copy of the (N+P)×(N+P) KKT matrix.
func (s *System) AugmentedMatrix() *matrix.Dense { return cloneDense(s.aug) }

// AugmentedVector returns a copy of [2AᵀWb; d].
func (s *System) AugmentedVector() []float64 { return append([]float64(nil), s.augVec...) }

func cloneDense(m *matrix.Dense) *matrix.Dense { return m.Clone().(*matrix.Dense) }
