// Package regression estimates linear-regression coefficients subject to
// linear equality constraints.
//
// The weighted least-squares problem
//
//	minimize (Aβ − b)ᵀ W (Aβ − b)   subject to   Cβ = d
//
// is solved through its Karush-Kuhn-Tucker system
//
//	[ 2AᵀWA  Cᵀ ] [β]   [2AᵀWb]
//	[ C      0  ] [λ] = [  d  ]
//
// using the thresholded SVD solver of package svd, so singular or
// ill-conditioned designs (collinear regressors, redundant dummies) yield the
// minimum-norm solution instead of an error. λ holds the dual values
// (Lagrange multipliers) of the constraints.
//
// Workflow:
//
//	b, _ := regression.NewModelBuilderFromFrame(f, "y")
//	_ = b.SetRegressors("const", "x")
//	_ = b.AddConstraint(c)
//	m, _ := b.Build()                // immutable, validated Model
//	s, _ := regression.NewSolver(m)  // lazy System + decomposition
//	res, _ := s.Solve()              // Result: betas, duals, fitted, residuals
//
// Components:
//
//   - Constraint, ConstraintSet: named equalities; a set must have full row rank.
//   - CategoryConstraint: the zero right-hand-side constraint that centers a
//     group of dummy regressors around the intercept, using weights that are
//     normalized to sum to one.
//   - ModelBuilder, Model: eager validation with a memoized ConstraintSet,
//     then an immutable snapshot with an xxHash fingerprint.
//   - System: the assembled KKT system. Weights are rescaled so that positive
//     weights average one; this is independent of the category normalization.
//   - Solver: memoized System and decomposition, threshold changes without a
//     rebuild, Solve and PseudoInverse.
//   - Result: coefficients and diagnostics, with Predict for rows outside the
//     fitting subset.
//
// No intercept is ever added implicitly.
//
// Observability: WithLogger traces assembly, decomposition and each solve
// (tagged with a UUID) at debug level; WithMetrics exports Prometheus
// counters and histograms.
package regression
