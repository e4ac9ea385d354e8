// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Sub-block assignment and extraction for block-matrix assembly
//     (index-offset writes into one preallocated buffer).
//   - Identity and diagonal constructors.

package matrix

import "fmt"

const (
	opSetBlock = "SetBlock"
	opBlock    = "Block"
	opDiag     = "NewDiagonal"
)

// SetBlock copies src into dst with its top-left corner at (r0, c0).
// When transpose is true, srcᵀ is written instead, which lets callers place
// both C and Cᵀ of a KKT matrix without allocating the transpose.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (block does not fit), ErrOutOfRange.
//
// Complexity:
//   - Time O(src.r*src.c), Space O(1).
func SetBlock(dst *Dense, r0, c0 int, src Matrix, transpose bool) error {
	if dst == nil {
		return matrixErrorf(opSetBlock, ErrNilMatrix)
	}
	if err := ValidateNotNil(src); err != nil {
		return matrixErrorf(opSetBlock, err)
	}
	h, w := src.Rows(), src.Cols()
	if transpose {
		h, w = w, h
	}
	if r0 < 0 || c0 < 0 {
		return matrixErrorf(opSetBlock, ErrOutOfRange)
	}
	if r0+h > dst.r || c0+w > dst.c {
		return matrixErrorf(opSetBlock, fmt.Errorf("%dx%d block at (%d,%d) into %dx%d: %w",
			h, w, r0, c0, dst.r, dst.c, ErrDimensionMismatch))
	}

	var i, j int
	var v float64
	var err error
	sd, fast := src.(*Dense)
	for i = 0; i < src.Rows(); i++ {
		for j = 0; j < src.Cols(); j++ {
			if fast {
				v = sd.data[i*sd.c+j]
			} else if v, err = src.At(i, j); err != nil {
				return matrixErrorf(opSetBlock, err)
			}
			if transpose {
				dst.data[(r0+j)*dst.c+c0+i] = v
			} else {
				dst.data[(r0+i)*dst.c+c0+j] = v
			}
		}
	}

	return nil
}

// SetVecBlock writes x into dst starting at offset off.
//
// Errors:
//   - ErrDimensionMismatch when x does not fit.
func SetVecBlock(dst []float64, off int, x []float64) error {
	if off < 0 || off+len(x) > len(dst) {
		return matrixErrorf("SetVecBlock", ErrDimensionMismatch)
	}
	copy(dst[off:], x)

	return nil
}

// Block returns a copy of the rows×cols window of m starting at (r0, c0).
//
// Errors:
//   - ErrNilMatrix, ErrOutOfRange when the window leaves m.
//
// Complexity:
//   - Time O(rows*cols), Space O(rows*cols).
func Block(m *Dense, r0, c0, rows, cols int) (*Dense, error) {
	if m == nil {
		return nil, matrixErrorf(opBlock, ErrNilMatrix)
	}
	if r0 < 0 || c0 < 0 || rows < 0 || cols < 0 || r0+rows > m.r || c0+cols > m.c {
		return nil, matrixErrorf(opBlock, fmt.Errorf("(%d,%d,%d,%d): %w", r0, c0, rows, cols, ErrOutOfRange))
	}
	res, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opBlock, err)
	}
	res.validateNaNInf = m.validateNaNInf
	for i := 0; i < rows; i++ {
		copy(res.data[i*cols:(i+1)*cols], m.data[(r0+i)*m.c+c0:(r0+i)*m.c+c0+cols])
	}

	return res, nil
}

// NewIdentity returns the n×n identity matrix.
func NewIdentity(n int) (*Dense, error) {
	m, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1.0
	}

	return m, nil
}

// NewDiagonal returns the square matrix with d on its main diagonal.
//
// Errors:
//   - ErrNaNInf if an entry is not finite.
func NewDiagonal(d []float64) (*Dense, error) {
	n := len(d)
	m, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opDiag, err)
	}
	for i := 0; i < n; i++ {
		if err = m.Set(i, i, d[i]); err != nil {
			return nil, matrixErrorf(opDiag, err)
		}
	}

	return m, nil
}

// Diagonal returns a copy of the main diagonal of m (length min(r, c)).
func Diagonal(m *Dense) []float64 {
	k := min(m.r, m.c)
	out := make([]float64, k)
	for i := 0; i < k; i++ {
		out[i] = m.data[i*m.c+i]
	}

	return out
}
