// SPDX-License-Identifier: MIT

// Package svd provides a reusable thresholded-SVD linear solver.
//
// A Solver wraps the thin decomposition A = U·diag(σ)·Vᵀ of an M×N matrix
// (computed once by matrix.Decompose) together with a singular-value
// threshold. Singular values at or below the threshold are treated as exactly
// zero when inverting, so singular and ill-conditioned systems are solved in
// the minimum-norm least-squares sense instead of failing.
//
// Threshold:
//
//   - The default threshold is DefaultThreshold = 0.5·sqrt(M+N+1)·σ_max·ε,
//     where ε is the float64 machine epsilon. Only an all-zero matrix
//     (σ_max = 0) falls back to ε.
//   - SetThreshold swaps the threshold without touching U, V or σ, which makes
//     threshold-sensitivity sweeps cheap: the O(M·N·min(M,N)) factorization is
//     paid once.
//
// Operations:
//
//	InvertSingularValues()  // k×k diag(1/σ_i if σ_i > t else 0)
//	Invert()                // N×M pseudo-inverse V·Σ⁺·Uᵀ
//	Solve(b)                // x = V·Σ⁺·Uᵀ·b
//	SolveMatrix(B)          // X = V·Σ⁺·Uᵀ·B (batched right-hand sides)
//	Rank(), Truncated()     // count of kept / zeroed singular values
//
// Oracles:
//
// Fitted, Residual and RSS evaluate a candidate x against (A, b).
// IsExactSolution and IsLeastSquaresSolution are verification oracles for
// property tests. Both perturb every coordinate of x by ±1% and check that
// the residual sum of squares never improves; IsExactSolution additionally
// requires the RSS itself to be within tolerance.
//
// The package has no regression semantics; the regression package drives it
// with the augmented KKT matrix.
package svd
