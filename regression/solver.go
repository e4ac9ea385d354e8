// SPDX-License-Identifier: MIT

package regression

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/lvframe/frame"
	"github.com/katalvlaran/lvframe/matrix"
	"github.com/katalvlaran/lvframe/svd"
)

// Series names used in a Result.
const (
	betasName     = "beta"
	dualsName     = "dual"
	fittedName    = "fitted"
	residualsName = "residual"
)

// Solver combines a Model, its System and an svd.Solver over the augmented
// matrix. System and decomposition are built lazily on first use and cached
// until the model changes; the threshold can change without a rebuild.
//
// A Solver is not safe for concurrent use.
type Solver struct {
	model     *Model
	threshold float64 // 0 ⇒ default of the svd package
	logger    *slog.Logger
	metrics   *Metrics

	system cell[*System]
	svd    cell[*svd.Solver]
}

// NewSolver returns a Solver for m. Nothing is computed until first use.
func NewSolver(m *Model, opts ...Option) (*Solver, error) {
	if m == nil {
		return nil, fmt.Errorf("NewSolver: %w", ErrNilInput)
	}
	o := gatherOptions(opts...)

	return &Solver{
		model:     m,
		threshold: o.threshold,
		logger:    o.logger,
		metrics:   o.metrics,
	}, nil
}

// Model returns the current model.
func (s *Solver) Model() *Model { return s.model }

// SetModel swaps the model. The cached System and decomposition are dropped
// unless the new model has the same fingerprint as the current one.
func (s *Solver) SetModel(m *Model) error {
	if m == nil {
		return fmt.Errorf("SetModel: %w", ErrNilInput)
	}
	if m.Fingerprint() != s.model.Fingerprint() {
		s.system.reset()
		s.svd.reset()
	}
	s.model = m

	return nil
}

// System returns the augmented system, assembling it on first use.
func (s *Solver) System() (*System, error) {
	return s.system.get(func() (*System, error) {
		start := time.Now()
		sys, err := NewSystem(s.model)
		if err != nil {
			return nil, err
		}
		s.metrics.observeSystem()
		s.logger.Debug("system assembled",
			slog.Int("observations", sys.NumObservations()),
			slog.Int("regressors", sys.NumRegressors()),
			slog.Int("constraints", sys.NumConstraints()),
			slog.Duration("elapsed", time.Since(start)))
		if idle := sys.Unsupported(); len(idle) > 0 {
			s.logger.Warn("regressors without weighted support", slog.Any("regressors", idle))
		}

		return sys, nil
	})
}

// SVD returns the thresholded solver over the augmented matrix, decomposing
// it on first use.
func (s *Solver) SVD() (*svd.Solver, error) {
	return s.svd.get(func() (*svd.Solver, error) {
		sys, err := s.System()
		if err != nil {
			return nil, err
		}
		if err = matrix.ValidateSquare(sys.aug); err != nil {
			return nil, err
		}
		start := time.Now()
		dec, err := svd.New(sys.aug)
		if err != nil {
			return nil, err
		}
		if s.threshold > 0 {
			if err = dec.SetThreshold(s.threshold); err != nil {
				return nil, err
			}
		}
		s.logger.Debug("augmented matrix decomposed",
			slog.Int("size", sys.aug.Rows()),
			slog.Float64("threshold", dec.Threshold()),
			slog.Int("rank", dec.Rank()),
			slog.Duration("elapsed", time.Since(start)))

		return dec, nil
	})
}

// SetSingularValueThreshold validates t and applies it: immediately to an
// existing decomposition (no rebuild), otherwise on first build.
//
// Errors:
//   - svd.ErrInvalidThreshold.
func (s *Solver) SetSingularValueThreshold(t float64) error {
	if err := svd.ValidateThreshold(t); err != nil {
		return fmt.Errorf("SetSingularValueThreshold: %w", err)
	}
	s.threshold = t
	if dec, ok := s.svd.peek(); ok {
		return dec.SetThreshold(t)
	}

	return nil
}

// Solve solves the augmented system for [β; λ] and packages the
// coefficients, dual values, fitted values and residuals over the active
// observations. Repeated calls on an unchanged Solver are bit-identical.
//
// Complexity: O((N+P)³ + M·N²) on the first call, O((N+P)² + M·N) afterwards.
func (s *Solver) Solve() (res *Result, err error) {
	start := time.Now()
	id := uuid.New()
	log := s.logger.With(slog.String("solve_id", id.String()))
	truncated := 0
	defer func() {
		s.metrics.observeSolve(start, truncated, err)
		if err != nil {
			log.Debug("solve failed", slog.Any("err", err))
		}
	}()

	sys, err := s.System()
	if err != nil {
		return nil, fmt.Errorf("Solve: %w", err)
	}
	dec, err := s.SVD()
	if err != nil {
		return nil, fmt.Errorf("Solve: %w", err)
	}
	x, err := dec.Solve(sys.augVec)
	if err != nil {
		return nil, fmt.Errorf("Solve: %w", err)
	}
	truncated = dec.Truncated()

	n := sys.NumRegressors()
	beta, lambda := x[:n], x[n:]
	fitted, err := matrix.MatVec(sys.a, beta)
	if err != nil {
		return nil, fmt.Errorf("Solve: %w", err)
	}
	residual := make([]float64, len(fitted))
	for i := range fitted {
		residual[i] = fitted[i] - sys.b[i]
	}

	m := s.model
	betas, err := frame.NewSeries(betasName, m.regressors, beta)
	if err != nil {
		return nil, fmt.Errorf("Solve: %w", err)
	}
	duals, err := frame.NewSeries(dualsName, m.constraints.Names(), lambda)
	if err != nil {
		return nil, fmt.Errorf("Solve: %w", err)
	}
	fit, err := frame.NewSeries(fittedName, m.observations, fitted)
	if err != nil {
		return nil, fmt.Errorf("Solve: %w", err)
	}
	resid, err := frame.NewSeries(residualsName, m.observations, residual)
	if err != nil {
		return nil, fmt.Errorf("Solve: %w", err)
	}
	if res, err = NewResult(betas, duals, fit, resid); err != nil {
		return nil, fmt.Errorf("Solve: %w", err)
	}
	res.threshold = dec.Threshold()
	res.rank = dec.Rank()

	if log.Enabled(context.Background(), slog.LevelDebug) {
		log.Debug("solve complete",
			slog.Int("rank", res.rank),
			slog.Int("truncated", truncated),
			slog.Float64("rss", res.RSS()),
			slog.Duration("elapsed", time.Since(start)))
	}

	return res, nil
}

// PseudoInverse returns Q ((N+P)×(M+P)) such that [β; λ] = Q·[b; d]:
//
//	Q = K⁺ · R,   R = [ 2AᵀW  0 ]
//	                  [ 0     I ]
//
// with K the augmented matrix. With no constraints and uniform weights Q is
// the ordinary least-squares pseudo-inverse (AᵀA)⁻¹Aᵀ.
func (s *Solver) PseudoInverse() (*matrix.Dense, error) {
	sys, err := s.System()
	if err != nil {
		return nil, fmt.Errorf("PseudoInverse: %w", err)
	}
	dec, err := s.SVD()
	if err != nil {
		return nil, fmt.Errorf("PseudoInverse: %w", err)
	}
	inv, err := dec.Invert()
	if err != nil {
		return nil, fmt.Errorf("PseudoInverse: %w", err)
	}

	m, n, p := sys.NumObservations(), sys.NumRegressors(), sys.NumConstraints()
	r, err := matrix.NewDense(n+p, m+p)
	if err != nil {
		return nil, fmt.Errorf("PseudoInverse: %w", err)
	}
	if err = matrix.SetBlock(r, 0, 0, sys.twoATW, false); err != nil {
		return nil, fmt.Errorf("PseudoInverse: %w", err)
	}
	id, err := matrix.NewIdentity(p)
	if err != nil {
		return nil, fmt.Errorf("PseudoInverse: %w", err)
	}
	if err = matrix.SetBlock(r, n, m, id, false); err != nil {
		return nil, fmt.Errorf("PseudoInverse: %w", err)
	}
	q, err := matrix.Mul(inv, r)
	if err != nil {
		return nil, fmt.Errorf("PseudoInverse: %w", err)
	}

	return q, nil
}
