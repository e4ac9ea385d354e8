// SPDX-License-Identifier: MIT

package regression

import (
	"fmt"

	"github.com/katalvlaran/lvframe/matrix"
	"github.com/katalvlaran/lvframe/svd"
)

// ConstraintSet is a validated, ordered collection of uniquely named
// constraints whose P×N coefficient matrix has full row rank P.
type ConstraintSet struct {
	constraints []*Constraint
	index       map[string]int
	regressors  []string // union of referenced keys, first-seen order
}

// NewConstraintSet inserts the constraints in order and checks rank sufficiency.
//
// Implementation:
//   - Stage 1: reject nil entries and duplicate names; accumulate the
//     regressor universe in first-seen order.
//   - Stage 2: build the P×N matrix over that universe and count singular
//     values above the default svd threshold; the set is valid iff that rank is P.
//
// Errors:
//   - ErrNilInput, ErrDuplicateConstraint, ErrRankDeficient.
//
// Complexity:
//   - Time O(P·N·min(P,N)) for the rank check, Space O(P·N).
func NewConstraintSet(constraints ...*Constraint) (*ConstraintSet, error) {
	cs := &ConstraintSet{
		constraints: make([]*Constraint, 0, len(constraints)),
		index:       make(map[string]int, len(constraints)),
	}
	seen := make(map[string]struct{})
	for i, c := range constraints {
		if c == nil {
			return nil, fmt.Errorf("NewConstraintSet: constraint %d: %w", i, ErrNilInput)
		}
		if _, dup := cs.index[c.name]; dup {
			return nil, fmt.Errorf("NewConstraintSet: %q: %w", c.name, ErrDuplicateConstraint)
		}
		cs.index[c.name] = len(cs.constraints)
		cs.constraints = append(cs.constraints, c)
		for _, t := range c.terms {
			if _, ok := seen[t.Regressor]; !ok {
				seen[t.Regressor] = struct{}{}
				cs.regressors = append(cs.regressors, t.Regressor)
			}
		}
	}
	if len(cs.constraints) == 0 {
		return cs, nil
	}

	c, err := cs.Matrix(cs.regressors)
	if err != nil {
		return nil, fmt.Errorf("NewConstraintSet: %w", err)
	}
	s, err := svd.New(c)
	if err != nil {
		return nil, fmt.Errorf("NewConstraintSet: %w", err)
	}
	if rank := s.Rank(); rank != len(cs.constraints) {
		return nil, fmt.Errorf("NewConstraintSet: rank %d for %d constraints over %d regressors: %w",
			rank, len(cs.constraints), len(cs.regressors), ErrRankDeficient)
	}

	return cs, nil
}

// Len returns P, the number of constraints.
func (cs *ConstraintSet) Len() int { return len(cs.constraints) }

// Names returns the constraint names in insertion order.
func (cs *ConstraintSet) Names() []string {
	out := make([]string, len(cs.constraints))
	for i, c := range cs.constraints {
		out[i] = c.name
	}

	return out
}

// Get returns the constraint with the given name.
func (cs *ConstraintSet) Get(name string) (*Constraint, bool) {
	i, ok := cs.index[name]
	if !ok {
		return nil, false
	}

	return cs.constraints[i], true
}

// Constraints returns the constraints in insertion order.
func (cs *ConstraintSet) Constraints() []*Constraint {
	return append([]*Constraint(nil), cs.constraints...)
}

// Regressors returns every regressor referenced by some constraint, in
// first-seen order.
func (cs *ConstraintSet) Regressors() []string {
	return append([]string(nil), cs.regressors...)
}

// Matrix builds the P×len(columnKeys) coefficient matrix against the given
// column ordering, with 0 where a constraint does not reference a column.
//
// Errors:
//   - ErrDuplicateRegressor if columnKeys repeats a key.
//   - ErrUnknownRegressor if a constraint references a key not in columnKeys.
//
// Complexity: O(P·(len(columnKeys) + terms)).
func (cs *ConstraintSet) Matrix(columnKeys []string) (*matrix.Dense, error) {
	pos := make(map[string]int, len(columnKeys))
	for j, k := range columnKeys {
		if _, dup := pos[k]; dup {
			return nil, fmt.Errorf("constraint matrix: column %q: %w", k, ErrDuplicateRegressor)
		}
		pos[k] = j
	}
	out, err := matrix.NewDense(len(cs.constraints), len(columnKeys))
	if err != nil {
		return nil, err
	}
	for i, c := range cs.constraints {
		for _, t := range c.terms {
			j, ok := pos[t.Regressor]
			if !ok {
				return nil, fmt.Errorf("constraint %q references %q: %w", c.name, t.Regressor, ErrUnknownRegressor)
			}
			if err = out.Set(i, j, t.Coefficient); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}

// Values returns the right-hand sides in Names() order.
func (cs *ConstraintSet) Values() []float64 {
	out := make([]float64, len(cs.constraints))
	for i, c := range cs.constraints {
		out[i] = c.value
	}

	return out
}
