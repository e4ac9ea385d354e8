// SPDX-License-Identifier: MIT

package regression

// cell is a memoization slot: unset until the first successful get, cleared
// by reset. A failed build leaves the cell unset.
type cell[T any] struct {
	val T
	ok  bool
}

// get returns the cached value, building and storing it when unset.
func (c *cell[T]) get(build func() (T, error)) (T, error) {
	if c.ok {
		return c.val, nil
	}
	v, err := build()
	if err != nil {
		var zero T

		return zero, err
	}
	c.val, c.ok = v, true

	return v, nil
}

// peek returns the cached value without building it.
func (c *cell[T]) peek() (T, bool) { return c.val, c.ok }

// reset drops the cached value.
func (c *cell[T]) reset() {
	var zero T
	c.val, c.ok = zero, false
}
