// SPDX-License-Identifier: MIT

package regression

import (
	"fmt"
	"math"
)

// Term is one coefficient of a linear constraint on a regressor.
type Term struct {
	Regressor   string
	Coefficient float64
}

// Constraint is a named linear equality Σ_k coef_k·β_k = value.
// It is immutable once built; terms keep the order they were given in.
type Constraint struct {
	name  string
	value float64
	terms []Term
	index map[string]int
}

// NewConstraint validates and builds a Constraint.
//
// Errors:
//   - ErrInvalidConstraint for an empty name, no terms, an empty or duplicate
//     regressor key, or a non-finite value or coefficient.
func NewConstraint(name string, value float64, terms ...Term) (*Constraint, error) {
	if name == "" {
		return nil, fmt.Errorf("empty name: %w", ErrInvalidConstraint)
	}
	if len(terms) == 0 {
		return nil, fmt.Errorf("constraint %q has no terms: %w", name, ErrInvalidConstraint)
	}
	if !isFinite(value) {
		return nil, fmt.Errorf("constraint %q: value %g: %w", name, value, ErrInvalidConstraint)
	}
	index := make(map[string]int, len(terms))
	for i, t := range terms {
		switch {
		case t.Regressor == "":
			return nil, fmt.Errorf("constraint %q: term %d has an empty regressor: %w", name, i, ErrInvalidConstraint)
		case !isFinite(t.Coefficient):
			return nil, fmt.Errorf("constraint %q: coefficient of %q is %g: %w", name, t.Regressor, t.Coefficient, ErrInvalidConstraint)
		}
		if _, dup := index[t.Regressor]; dup {
			return nil, fmt.Errorf("constraint %q: regressor %q repeated: %w", name, t.Regressor, ErrInvalidConstraint)
		}
		index[t.Regressor] = i
	}

	return &Constraint{
		name:  name,
		value: value,
		terms: append([]Term(nil), terms...),
		index: index,
	}, nil
}

// Name returns the unique constraint key.
func (c *Constraint) Name() string { return c.name }

// Value returns the right-hand side.
func (c *Constraint) Value() float64 { return c.value }

// Terms returns a copy of the terms in declaration order.
func (c *Constraint) Terms() []Term { return append([]Term(nil), c.terms...) }

// Coefficient returns the coefficient on regressor, 0 when not referenced.
func (c *Constraint) Coefficient(regressor string) float64 {
	if i, ok := c.index[regressor]; ok {
		return c.terms[i].Coefficient
	}

	return 0
}

// References reports whether the constraint has a term on regressor.
func (c *Constraint) References(regressor string) bool {
	_, ok := c.index[regressor]

	return ok
}

// Regressors returns the referenced regressor keys in term order.
func (c *Constraint) Regressors() []string {
	out := make([]string, len(c.terms))
	for i, t := range c.terms {
		out[i] = t.Regressor
	}

	return out
}

// String renders the constraint as "name: 1*a + -1*b = 0".
func (c *Constraint) String() string {
	s := c.name + ":"
	for i, t := range c.terms {
		if i > 0 {
			s += " +"
		}
		s += fmt.Sprintf(" %g*%s", t.Coefficient, t.Regressor)
	}

	return s + fmt.Sprintf(" = %g", c.value)
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
