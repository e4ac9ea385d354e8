package frame

import "fmt"

// NumericColumn declares a float64 column (values copied).
func NumericColumn(key string, values []float64) Column {
	return Column{key: key, kind: Numeric, nums: append([]float64(nil), values...)}
}

// TextColumn declares a string column (values copied).
func TextColumn(key string, values []string) Column {
	return Column{key: key, kind: Text, texts: append([]string(nil), values...)}
}

// Key returns the column key.
func (c Column) Key() string { return c.key }

// Kind returns the value type of the column.
func (c Column) Kind() Kind { return c.kind }

// Len returns the number of values.
func (c Column) Len() int {
	if c.kind == Text {
		return len(c.texts)
	}

	return len(c.nums)
}

// NewFrame builds a Frame over the ordered rowKeys with the given columns.
// Every column must hold exactly len(rowKeys) values.
//
// Errors:
//   - ErrEmptyKey, ErrDuplicateKey for row or column keys.
//   - ErrLengthMismatch for a column of the wrong length.
//
// Complexity: O(R + C).
func NewFrame(rowKeys []string, cols ...Column) (*Frame, error) {
	rowIndex, err := buildIndex(rowKeys)
	if err != nil {
		return nil, fmt.Errorf("NewFrame: rows: %w", err)
	}
	colKeys := make([]string, len(cols))
	for j := range cols {
		colKeys[j] = cols[j].key
		if cols[j].Len() != len(rowKeys) {
			return nil, fmt.Errorf("NewFrame: column %q has %d values for %d rows: %w",
				cols[j].key, cols[j].Len(), len(rowKeys), ErrLengthMismatch)
		}
	}
	colIndex, err := buildIndex(colKeys)
	if err != nil {
		return nil, fmt.Errorf("NewFrame: columns: %w", err)
	}

	return &Frame{
		rowKeys:  append([]string(nil), rowKeys...),
		rowIndex: rowIndex,
		cols:     append([]Column(nil), cols...),
		colIndex: colIndex,
	}, nil
}

// NumRows returns the number of rows.
func (f *Frame) NumRows() int { return len(f.rowKeys) }

// NumCols returns the number of columns.
func (f *Frame) NumCols() int { return len(f.cols) }

// RowKeys returns a copy of the ordered row keys.
func (f *Frame) RowKeys() []string { return append([]string(nil), f.rowKeys...) }

// ColumnKeys returns a copy of the ordered column keys.
func (f *Frame) ColumnKeys() []string {
	out := make([]string, len(f.cols))
	for j := range f.cols {
		out[j] = f.cols[j].key
	}

	return out
}

// NumericColumnKeys returns the keys of all numeric columns, in column order.
func (f *Frame) NumericColumnKeys() []string {
	out := make([]string, 0, len(f.cols))
	for j := range f.cols {
		if f.cols[j].kind == Numeric {
			out = append(out, f.cols[j].key)
		}
	}

	return out
}

// HasRow reports whether the row key exists.
func (f *Frame) HasRow(key string) bool {
	_, ok := f.rowIndex[key]

	return ok
}

// HasColumn reports whether the column key exists.
func (f *Frame) HasColumn(key string) bool {
	_, ok := f.colIndex[key]

	return ok
}

// RowIndex returns the position of a row key.
func (f *Frame) RowIndex(key string) (int, bool) {
	i, ok := f.rowIndex[key]

	return i, ok
}

// RequireRows returns ErrMissingRow naming the first absent key.
func (f *Frame) RequireRows(keys ...string) error {
	for _, k := range keys {
		if _, ok := f.rowIndex[k]; !ok {
			return fmt.Errorf("row %q: %w", k, ErrMissingRow)
		}
	}

	return nil
}

// RequireColumns returns ErrMissingColumn naming the first absent key.
func (f *Frame) RequireColumns(keys ...string) error {
	for _, k := range keys {
		if _, ok := f.colIndex[k]; !ok {
			return fmt.Errorf("column %q: %w", k, ErrMissingColumn)
		}
	}

	return nil
}

// RequireNumeric checks that every key names an existing numeric column.
//
// Errors:
//   - ErrMissingColumn, ErrNonNumeric (first offending key).
func (f *Frame) RequireNumeric(keys ...string) error {
	for _, k := range keys {
		j, ok := f.colIndex[k]
		if !ok {
			return fmt.Errorf("column %q: %w", k, ErrMissingColumn)
		}
		if f.cols[j].kind != Numeric {
			return fmt.Errorf("column %q (%s): %w", k, f.cols[j].kind, ErrNonNumeric)
		}
	}

	return nil
}

// numeric resolves a numeric column or explains why it cannot.
func (f *Frame) numeric(col string) (*Column, error) {
	if err := f.RequireNumeric(col); err != nil {
		return nil, err
	}

	return &f.cols[f.colIndex[col]], nil
}

// Float returns the value at (row key, column key).
//
// Errors:
//   - ErrMissingRow, ErrMissingColumn, ErrNonNumeric.
func (f *Frame) Float(row, col string) (float64, error) {
	c, err := f.numeric(col)
	if err != nil {
		return 0, err
	}
	i, ok := f.rowIndex[row]
	if !ok {
		return 0, fmt.Errorf("row %q: %w", row, ErrMissingRow)
	}

	return c.nums[i], nil
}

// FloatAt returns the value at (row position, column key).
//
// Errors:
//   - ErrMissingRow when i is out of range, ErrMissingColumn, ErrNonNumeric.
func (f *Frame) FloatAt(i int, col string) (float64, error) {
	c, err := f.numeric(col)
	if err != nil {
		return 0, err
	}
	if i < 0 || i >= len(f.rowKeys) {
		return 0, fmt.Errorf("row position %d: %w", i, ErrMissingRow)
	}

	return c.nums[i], nil
}

// Column returns a copy of a numeric column's values in row order.
func (f *Frame) Column(col string) ([]float64, error) {
	c, err := f.numeric(col)
	if err != nil {
		return nil, err
	}

	return append([]float64(nil), c.nums...), nil
}

// Series returns a numeric column as a Series keyed by row key.
func (f *Frame) Series(col string) (*Series, error) {
	c, err := f.numeric(col)
	if err != nil {
		return nil, err
	}

	return NewSeries(col, f.rowKeys, c.nums)
}

// Select returns a new Frame restricted to the given rows, in the given order.
//
// Errors:
//   - ErrMissingRow, ErrDuplicateKey.
//
// Complexity: O(len(rows) * C).
func (f *Frame) Select(rows ...string) (*Frame, error) {
	pos := make([]int, len(rows))
	for i, k := range rows {
		p, ok := f.rowIndex[k]
		if !ok {
			return nil, fmt.Errorf("Select: row %q: %w", k, ErrMissingRow)
		}
		pos[i] = p
	}
	cols := make([]Column, len(f.cols))
	for j := range f.cols {
		src := &f.cols[j]
		dst := Column{key: src.key, kind: src.kind}
		if src.kind == Text {
			dst.texts = make([]string, len(pos))
			for i, p := range pos {
				dst.texts[i] = src.texts[p]
			}
		} else {
			dst.nums = make([]float64, len(pos))
			for i, p := range pos {
				dst.nums[i] = src.nums[p]
			}
		}
		cols[j] = dst
	}

	return NewFrame(rows, cols...)
}
