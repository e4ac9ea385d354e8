// Package frame defines the labeled containers consumed by the regression
// engine: Series (a 1D numeric vector keyed by string) and Frame (a 2D table
// with ordered row keys and named, typed columns).
//
// This file declares Series, Column, Frame, the column Kind enumeration and
// the sentinel errors.
//
// Errors:
//
//	ErrDuplicateKey   - a row, column or series key occurs twice.
//	ErrLengthMismatch - keys and values (or a column and the row keys) differ in length.
//	ErrMissingRow     - a requested row key is not present.
//	ErrMissingColumn  - a requested column key is not present.
//	ErrNonNumeric     - a numeric operation targeted a text column.
//	ErrEmptyKey       - an empty string was used as a key.
package frame

import "errors"

// Sentinel errors for frame operations.
var (
	// ErrDuplicateKey indicates that a key appears more than once.
	ErrDuplicateKey = errors.New("frame: duplicate key")

	// ErrLengthMismatch indicates inconsistent lengths between keys and values.
	ErrLengthMismatch = errors.New("frame: length mismatch")

	// ErrMissingRow indicates that a row key is not part of the frame.
	ErrMissingRow = errors.New("frame: row not found")

	// ErrMissingColumn indicates that a column key is not part of the frame.
	ErrMissingColumn = errors.New("frame: column not found")

	// ErrNonNumeric indicates that a column does not hold numeric values.
	ErrNonNumeric = errors.New("frame: column is not numeric")

	// ErrEmptyKey indicates an empty row, column or series key.
	ErrEmptyKey = errors.New("frame: key is empty")
)

// Kind enumerates the value type of a Column.
type Kind int

const (
	// Numeric columns hold float64 values.
	Numeric Kind = iota
	// Text columns hold string values (labels, category names).
	Text
)

// String returns "numeric" or "text".
func (k Kind) String() string {
	if k == Text {
		return "text"
	}

	return "numeric"
}

// Series is an immutable 1D numeric container keyed by string.
// Keys keep their insertion order.
type Series struct {
	name   string         // optional label (e.g. the regressand column key)
	keys   []string       // ordered keys
	values []float64      // values[i] belongs to keys[i]
	index  map[string]int // key -> position
}

// Column is one named column of a Frame. Exactly one of nums/texts is used,
// depending on kind.
type Column struct {
	key   string
	kind  Kind
	nums  []float64
	texts []string
}

// Frame is an immutable 2D container: ordered row keys and ordered, uniquely
// named columns of equal length.
type Frame struct {
	rowKeys  []string       // ordered row keys
	rowIndex map[string]int // row key -> position
	cols     []Column       // ordered columns
	colIndex map[string]int // column key -> position in cols
}
