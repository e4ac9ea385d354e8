// Package matrix offers the dense linear-algebra primitives used by the
// regression engine.
//
// The matrix package provides:
//
//   - Dense: a row-major float64 matrix with error-returning At/Set and an
//     optional finite-only numeric policy.
//   - Kernels: Mul, Transpose, Scale, MatVec, ScaleRows, ScaleCols, AllClose. Every kernel has a *Dense fast path and a generic fallback.
//   - Block helpers: SetBlock / SetVecBlock (index-offset writes into one
//     preallocated buffer), Block, NewIdentity, NewDiagonal, Diagonal.
//   - Decompose: a thin SVD (U, V, singular values) delegated to gonum.
//
// Zero-sized shapes are legal everywhere except Decompose: an empty constraint
// block (P = 0) must flow through block assembly without special cases.
//
// All failures are sentinel errors (see errors.go) wrapped with an operation
// tag; match them with errors.Is.
package matrix
