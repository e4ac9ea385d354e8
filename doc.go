// Package lvframe estimates linear-regression coefficients over labeled
// tabular data, optionally subject to linear equality constraints.
//
// What is lvframe?
//
//	A small in-process library that brings together:
//		• Labeled containers: Series and Frame keyed by row and column
//		• Dense matrix kernels with block assembly and a gonum-backed SVD
//		• A thresholded SVD solver with least-squares solution oracles
//		• Constrained regression: constraints, category (dummy) groups,
//		  weighted observations, dual values, pseudo-inverse
//
// The fit minimises Σ w_i·(A_i·β − b_i)² subject to C·β = d by solving the
// Karush-Kuhn-Tucker system
//
//	[ 2AᵀWA  Cᵀ ] [ β ]   [ 2AᵀWb ]
//	[ C      0  ] [ λ ] = [ d     ]
//
// through a pseudo-inverse that zeroes singular values at or below a
// threshold, so collinear regressors degrade to the minimum-norm solution
// instead of failing.
//
// Packages:
//
//	frame/      - Series, Frame, key-coverage assertions
//	matrix/     - Dense, products, block get/set, SVD factors
//	svd/        - Solver with adjustable threshold, residual/RSS oracles
//	regression/ - Constraint, ConstraintSet, ModelBuilder, Model, System,
//	              Solver, Result, metrics
//	config/     - YAML + LVFRAME_* environment settings
//	logging/    - slog logger construction (tint or JSON)
//
// Typical flow:
//
//	b, _ := regression.NewModelBuilderFromFrame(f, "y")
//	_ = b.AddCategoryConstraint("region", "north", "south")
//	m, _ := b.Build()
//	s, _ := regression.NewSolver(m)
//	res, _ := s.Solve()
//	fmt.Println(res.Betas(), res.Duals())
//
//	go get github.com/katalvlaran/lvframe
package lvframe
