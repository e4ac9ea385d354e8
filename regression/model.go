// SPDX-License-Identifier: MIT

package regression

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/katalvlaran/lvframe/frame"
)

// weightsName labels the default uniform weight series.
const weightsName = "weight"

// ModelBuilder accumulates the configuration of a regression model.
// Every setter validates eagerly, leaves the builder unchanged on error, and
// clears the memoized ConstraintSet. Build yields an immutable Model.
//
// A ModelBuilder is not safe for concurrent use.
type ModelBuilder struct {
	regressand   *frame.Series
	frame        *frame.Frame
	regressors   []string
	observations []string
	weights      *frame.Series
	constraints  []*Constraint

	constraintSet cell[*ConstraintSet]
}

// NewModelBuilder starts a model over a regressand series and a regressor frame.
//
// Defaults:
//   - regressors: every numeric column of the frame, except a column named
//     like the regressand;
//   - observations: the frame rows the regressand also covers, in frame
//     order; rows without a regressand value (holdout rows) are left out;
//   - weights: 1.0 for every frame row.
//
// No intercept is added; supply a constant column and select it as a
// regressor to fit one. An empty default observation set surfaces as
// ErrEmptyModel from Build.
//
// Errors:
//   - ErrNilInput.
func NewModelBuilder(regressand *frame.Series, regressors *frame.Frame) (*ModelBuilder, error) {
	if regressand == nil || regressors == nil {
		return nil, fmt.Errorf("NewModelBuilder: %w", ErrNilInput)
	}
	rows := regressors.RowKeys()
	obs := make([]string, 0, len(rows))
	for _, r := range rows {
		if regressand.Has(r) {
			obs = append(obs, r)
		}
	}
	var cols []string
	for _, k := range regressors.NumericColumnKeys() {
		if k != regressand.Name() {
			cols = append(cols, k)
		}
	}
	w, err := frame.Uniform(weightsName, rows, 1.0)
	if err != nil {
		return nil, fmt.Errorf("NewModelBuilder: %w", err)
	}

	return &ModelBuilder{
		regressand:   regressand,
		frame:        regressors,
		regressors:   cols,
		observations: obs,
		weights:      w,
	}, nil
}

// NewModelBuilderFromFrame uses the numeric column regressandKey of f as the
// regressand and the remaining numeric columns as default regressors.
func NewModelBuilderFromFrame(f *frame.Frame, regressandKey string) (*ModelBuilder, error) {
	if f == nil {
		return nil, fmt.Errorf("NewModelBuilderFromFrame: %w", ErrNilInput)
	}
	y, err := f.Series(regressandKey)
	if err != nil {
		return nil, fmt.Errorf("NewModelBuilderFromFrame: %w", err)
	}

	return NewModelBuilder(y, f)
}

// SetRegressors replaces the active regressors (order is kept).
//
// Errors:
//   - frame.ErrMissingColumn, frame.ErrNonNumeric, ErrDuplicateRegressor,
//     ErrRegressandIsRegressor, ErrUnknownRegressor (an existing constraint
//     references a dropped regressor).
func (b *ModelBuilder) SetRegressors(keys ...string) error {
	if err := b.frame.RequireNumeric(keys...); err != nil {
		return fmt.Errorf("SetRegressors: %w", err)
	}
	active := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if k == b.regressand.Name() {
			return fmt.Errorf("SetRegressors: %q: %w", k, ErrRegressandIsRegressor)
		}
		if _, dup := active[k]; dup {
			return fmt.Errorf("SetRegressors: %q: %w", k, ErrDuplicateRegressor)
		}
		active[k] = struct{}{}
	}
	for _, c := range b.constraints {
		for _, t := range c.terms {
			if _, ok := active[t.Regressor]; !ok {
				return fmt.Errorf("SetRegressors: constraint %q references %q: %w", c.name, t.Regressor, ErrUnknownRegressor)
			}
		}
	}
	b.regressors = append([]string(nil), keys...)
	b.constraintSet.reset()

	return nil
}

// SetObservations replaces the active observation rows (order is kept).
//
// Errors:
//   - frame.ErrMissingRow (absent from the frame or the regressand),
//     frame.ErrDuplicateKey, ErrMissingWeight.
func (b *ModelBuilder) SetObservations(keys ...string) error {
	if err := b.frame.RequireRows(keys...); err != nil {
		return fmt.Errorf("SetObservations: %w", err)
	}
	seen := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if _, dup := seen[k]; dup {
			return fmt.Errorf("SetObservations: row %q: %w", k, frame.ErrDuplicateKey)
		}
		seen[k] = struct{}{}
		if !b.regressand.Has(k) {
			return fmt.Errorf("SetObservations: regressand %q: row %q: %w", b.regressand.Name(), k, frame.ErrMissingRow)
		}
		if !b.weights.Has(k) {
			return fmt.Errorf("SetObservations: row %q: %w", k, ErrMissingWeight)
		}
	}
	b.observations = append([]string(nil), keys...)
	b.constraintSet.reset()

	return nil
}

// SetWeights replaces the observation weights. The series must cover every
// active observation; sign and scale are checked when the system is built.
//
// Errors:
//   - ErrNilInput, ErrMissingWeight.
func (b *ModelBuilder) SetWeights(w *frame.Series) error {
	if w == nil {
		return fmt.Errorf("SetWeights: %w", ErrNilInput)
	}
	for _, k := range b.observations {
		if !w.Has(k) {
			return fmt.Errorf("SetWeights: row %q: %w", k, ErrMissingWeight)
		}
	}
	b.weights = w
	b.constraintSet.reset()

	return nil
}

// SetWeightsColumn uses the numeric frame column key as weights.
func (b *ModelBuilder) SetWeightsColumn(key string) error {
	w, err := b.frame.Series(key)
	if err != nil {
		return fmt.Errorf("SetWeightsColumn: %w", err)
	}

	return b.SetWeights(w)
}

// AddConstraint appends a constraint on active regressors.
//
// Errors:
//   - ErrNilInput, ErrDuplicateConstraint, ErrUnknownRegressor.
func (b *ModelBuilder) AddConstraint(c *Constraint) error {
	if c == nil {
		return fmt.Errorf("AddConstraint: %w", ErrNilInput)
	}
	for _, existing := range b.constraints {
		if existing.name == c.name {
			return fmt.Errorf("AddConstraint: %q: %w", c.name, ErrDuplicateConstraint)
		}
	}
	active := make(map[string]struct{}, len(b.regressors))
	for _, k := range b.regressors {
		active[k] = struct{}{}
	}
	for _, t := range c.terms {
		if _, ok := active[t.Regressor]; !ok {
			return fmt.Errorf("AddConstraint: %q references %q: %w", c.name, t.Regressor, ErrUnknownRegressor)
		}
	}
	b.constraints = append(b.constraints, c)
	b.constraintSet.reset()

	return nil
}

// AddCategoryConstraint builds a CategoryConstraint from the model's own
// frame restricted to the active observations and the model weights, then
// adds it.
func (b *ModelBuilder) AddCategoryConstraint(name string, categories ...string) error {
	obs, err := b.frame.Select(b.observations...)
	if err != nil {
		return fmt.Errorf("AddCategoryConstraint: %w", err)
	}
	c, err := CategoryConstraint(name, categories, obs, b.weights)
	if err != nil {
		return fmt.Errorf("AddCategoryConstraint: %w", err)
	}

	return b.AddConstraint(c)
}

// ConstraintSet validates the constraints added so far, memoizing the result
// until the next setter call.
func (b *ModelBuilder) ConstraintSet() (*ConstraintSet, error) {
	return b.constraintSet.get(func() (*ConstraintSet, error) {
		return NewConstraintSet(b.constraints...)
	})
}

// Build snapshots the configuration into an immutable Model.
//
// Errors:
//   - ErrEmptyModel, plus any ConstraintSet error.
func (b *ModelBuilder) Build() (*Model, error) {
	if len(b.regressors) == 0 || len(b.observations) == 0 {
		return nil, fmt.Errorf("Build: %d regressors, %d observations: %w", len(b.regressors), len(b.observations), ErrEmptyModel)
	}
	cs, err := b.ConstraintSet()
	if err != nil {
		return nil, fmt.Errorf("Build: %w", err)
	}
	m := &Model{
		regressand:   b.regressand,
		frame:        b.frame,
		regressors:   append([]string(nil), b.regressors...),
		observations: append([]string(nil), b.observations...),
		weights:      b.weights,
		constraints:  cs,
	}
	m.fingerprint = m.hash()

	return m, nil
}

// Model is an immutable, validated regression configuration.
// It is safe for concurrent reads.
type Model struct {
	regressand   *frame.Series
	frame        *frame.Frame
	regressors   []string
	observations []string
	weights      *frame.Series
	constraints  *ConstraintSet
	fingerprint  uint64
}

// Regressand returns the response series.
func (m *Model) Regressand() *frame.Series { return m.regressand }

// RegressandKey returns the regressand series name.
func (m *Model) RegressandKey() string { return m.regressand.Name() }

// Frame returns the regressor frame.
func (m *Model) Frame() *frame.Frame { return m.frame }

// Regressors returns the active regressor keys in column order of A.
func (m *Model) Regressors() []string { return append([]string(nil), m.regressors...) }

// Observations returns the active observation keys in row order of A.
func (m *Model) Observations() []string { return append([]string(nil), m.observations...) }

// Weights returns the raw (not rescaled) weight series.
func (m *Model) Weights() *frame.Series { return m.weights }

// ConstraintSet returns the validated constraints.
func (m *Model) ConstraintSet() *ConstraintSet { return m.constraints }

// NumRegressors returns N.
func (m *Model) NumRegressors() int { return len(m.regressors) }

// NumObservations returns M.
func (m *Model) NumObservations() int { return len(m.observations) }

// NumConstraints returns P.
func (m *Model) NumConstraints() int { return m.constraints.Len() }

// Fingerprint identifies the model's configuration and data: two models with
// equal fingerprints produce the same System.
func (m *Model) Fingerprint() uint64 { return m.fingerprint }

// hash digests keys, active data and constraints with xxHash64. Fields are
// length-prefixed so that adjacent strings cannot collide by concatenation.
func (m *Model) hash() uint64 {
	d := xxhash.New()
	var buf [8]byte
	putInt := func(n int) {
		binary.LittleEndian.PutUint64(buf[:], uint64(n))
		_, _ = d.Write(buf[:])
	}
	putFloat := func(v float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		_, _ = d.Write(buf[:])
	}
	putString := func(s string) {
		putInt(len(s))
		_, _ = d.WriteString(s)
	}

	putString(m.regressand.Name())
	putInt(len(m.regressors))
	for _, k := range m.regressors {
		putString(k)
	}
	putInt(len(m.observations))
	for _, row := range m.observations {
		putString(row)
		putFloat(m.regressand.Double(row))
		putFloat(m.weights.Double(row))
		for _, k := range m.regressors {
			v, _ := m.frame.Float(row, k) // keys were validated by the builder
			putFloat(v)
		}
	}
	putInt(m.constraints.Len())
	for _, c := range m.constraints.constraints {
		putString(c.name)
		putFloat(c.value)
		putInt(len(c.terms))
		for _, t := range c.terms {
			putString(t.Regressor)
			putFloat(t.Coefficient)
		}
	}

	return d.Sum64()
}
