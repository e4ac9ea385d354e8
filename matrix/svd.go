// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Expose a thin singular value decomposition A = U·diag(σ)·Vᵀ backed by
//     gonum's LAPACK port, with the factors converted back to *Dense.
//   - Bridge *Dense to and from gonum matrices.
//
// Determinism:
//   - gonum's SVD is deterministic for identical inputs; singular values are
//     returned in descending order.

package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

const opSVD = "Decompose"

// SVD holds a thin singular value decomposition of a rows×cols matrix.
//   - U is rows×k with orthonormal columns, V is cols×k with orthonormal columns.
//   - Values has length k = min(rows, cols), sorted descending.
type SVD struct {
	U      *Dense
	V      *Dense
	Values []float64
	Rows   int
	Cols   int
}

// MaxValue returns the largest singular value (0 for an empty decomposition).
func (s *SVD) MaxValue() float64 {
	if len(s.Values) == 0 {
		return 0
	}

	return s.Values[0]
}

// Decompose computes the thin SVD of m.
//
// Implementation:
//   - Stage 1: validate m non-nil, non-empty and finite.
//   - Stage 2: copy into a gonum Dense and factorize with mat.SVDThin.
//   - Stage 3: extract U, V and the singular values into *Dense / []float64.
//
// Errors:
//   - ErrNilMatrix, ErrEmptyMatrix, ErrNaNInf, ErrFactorizationFailed.
//
// Complexity:
//   - Time O(r*c*min(r,c)), Space O(r*c).
func Decompose(m Matrix) (*SVD, error) {
	if err := ValidateFinite(m); err != nil {
		return nil, matrixErrorf(opSVD, err)
	}
	g, err := ToGonum(m)
	if err != nil {
		return nil, matrixErrorf(opSVD, err)
	}

	var f mat.SVD
	if ok := f.Factorize(g, mat.SVDThin); !ok {
		return nil, matrixErrorf(opSVD, ErrFactorizationFailed)
	}
	var u, v mat.Dense
	f.UTo(&u)
	f.VTo(&v)

	return &SVD{
		U:      FromGonum(&u),
		V:      FromGonum(&v),
		Values: f.Values(nil),
		Rows:   m.Rows(),
		Cols:   m.Cols(),
	}, nil
}

// ToGonum copies m into a freshly allocated gonum Dense.
//
// Errors:
//   - ErrNilMatrix, ErrEmptyMatrix (gonum forbids zero-sized matrices).
func ToGonum(m Matrix) (*mat.Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, err
	}
	r, c := m.Rows(), m.Cols()
	if r == 0 || c == 0 {
		return nil, fmt.Errorf("%dx%d: %w", r, c, ErrEmptyMatrix)
	}
	buf := make([]float64, r*c)
	if d, ok := m.(*Dense); ok {
		copy(buf, d.data)

		return mat.NewDense(r, c, buf), nil
	}
	var i, j int
	var v float64
	var err error
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, err
			}
			buf[i*c+j] = v
		}
	}

	return mat.NewDense(r, c, buf), nil
}

// FromGonum copies any gonum matrix into a *Dense. The numeric policy is left
// off: values produced by a factorization are taken as they are.
func FromGonum(g mat.Matrix) *Dense {
	r, c := g.Dims()
	out := &Dense{r: r, c: c, data: make([]float64, r*c)}
	var i, j int
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			out.data[i*c+j] = g.At(i, j)
		}
	}

	return out
}
