package frame

import (
	"fmt"
	"math"
)

// NewSeries builds a Series from parallel key and value slices (both copied).
//
// Errors:
//   - ErrLengthMismatch if len(keys) != len(values).
//   - ErrEmptyKey, ErrDuplicateKey for invalid keys.
//
// Complexity: O(n).
func NewSeries(name string, keys []string, values []float64) (*Series, error) {
	if len(keys) != len(values) {
		return nil, fmt.Errorf("NewSeries(%q): %d keys, %d values: %w", name, len(keys), len(values), ErrLengthMismatch)
	}
	index, err := buildIndex(keys)
	if err != nil {
		return nil, fmt.Errorf("NewSeries(%q): %w", name, err)
	}
	s := &Series{
		name:   name,
		keys:   append([]string(nil), keys...),
		values: append([]float64(nil), values...),
		index:  index,
	}

	return s, nil
}

// Uniform builds a Series holding the same value for every key.
func Uniform(name string, keys []string, value float64) (*Series, error) {
	values := make([]float64, len(keys))
	for i := range values {
		values[i] = value
	}

	return NewSeries(name, keys, values)
}

// FromMap builds a Series from a map, ordering entries by the given keys.
// Keys missing from m are reported with ErrMissingRow.
func FromMap(name string, keys []string, m map[string]float64) (*Series, error) {
	values := make([]float64, len(keys))
	for i, k := range keys {
		v, ok := m[k]
		if !ok {
			return nil, fmt.Errorf("FromMap(%q): key %q: %w", name, k, ErrMissingRow)
		}
		values[i] = v
	}

	return NewSeries(name, keys, values)
}

// Name returns the series label.
func (s *Series) Name() string { return s.name }

// Len returns the number of entries.
func (s *Series) Len() int { return len(s.keys) }

// Keys returns a copy of the ordered keys.
func (s *Series) Keys() []string { return append([]string(nil), s.keys...) }

// Values returns a copy of the values in key order.
func (s *Series) Values() []float64 { return append([]float64(nil), s.values...) }

// Has reports whether key is present.
func (s *Series) Has(key string) bool {
	_, ok := s.index[key]

	return ok
}

// Double returns the value for key, or NaN when the key is missing.
func (s *Series) Double(key string) float64 {
	return s.DoubleOrElse(key, math.NaN())
}

// DoubleOrElse returns the value for key, or fallback when the key is missing.
func (s *Series) DoubleOrElse(key string, fallback float64) float64 {
	if i, ok := s.index[key]; ok {
		return s.values[i]
	}

	return fallback
}

// At returns the key and value at position i. It panics if i is out of
// range, like slice indexing.
func (s *Series) At(i int) (string, float64) { return s.keys[i], s.values[i] }

// Map returns a copy of the series as a map.
func (s *Series) Map() map[string]float64 {
	out := make(map[string]float64, len(s.keys))
	for i, k := range s.keys {
		out[k] = s.values[i]
	}

	return out
}

// SameKeys reports whether s and other hold the same key set, regardless of order.
func (s *Series) SameKeys(other *Series) bool {
	if s.Len() != other.Len() {
		return false
	}
	for _, k := range s.keys {
		if !other.Has(k) {
			return false
		}
	}

	return true
}

// Sum returns the sum of all values.
func (s *Series) Sum() float64 {
	var total float64
	for _, v := range s.values {
		total += v
	}

	return total
}

// buildIndex maps keys to positions, rejecting empty and duplicate keys.
func buildIndex(keys []string) (map[string]int, error) {
	index := make(map[string]int, len(keys))
	for i, k := range keys {
		if k == "" {
			return nil, fmt.Errorf("position %d: %w", i, ErrEmptyKey)
		}
		if _, dup := index[k]; dup {
			return nil, fmt.Errorf("key %q: %w", k, ErrDuplicateKey)
		}
		index[k] = i
	}

	return index, nil
}
