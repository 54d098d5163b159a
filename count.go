// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package casx

import "unsafe"

// Count is a wrapping atomic counter built on one integer cell.
//
// Increments use acquire ordering and decrements release ordering, so a
// count used as a reference count correctly pairs each drop with the
// acquisitions it balances. Reads are relaxed: a counter value is a
// snapshot, stale by the time the caller looks at it.
//
// The zero Count holds zero and is ready to use. Count adds no invariants
// beyond the underlying integer cell's; arithmetic wraps on overflow.
type Count[I IntValue] struct {
	cell Int[I]
}

// NewCount returns a counter holding initial.
func NewCount[I IntValue](initial I) *Count[I] {
	c := &Count[I]{}
	c.cell.Store(initial, Relaxed)
	return c
}

// CountOf returns a counter view over an integer cell owned elsewhere.
// The cell must outlive the returned counter.
func CountOf[I IntValue](cell *Int[I]) *Count[I] {
	// A Count is exactly its cell; the borrowed view reinterprets it.
	return (*Count[I])(unsafe.Pointer(cell))
}

// Cell returns the underlying integer cell.
func (c *Count[I]) Cell() *Int[I] {
	return &c.cell
}

// Inc adds one and returns the previous value.
func (c *Count[I]) Inc() I {
	return c.Add(1)
}

// Add adds val and returns the previous value.
func (c *Count[I]) Add(val I) I {
	return c.cell.FetchAdd(val, Acquire)
}

// Dec subtracts one and returns the previous value.
func (c *Count[I]) Dec() I {
	return c.Sub(1)
}

// Sub subtracts val and returns the previous value.
func (c *Count[I]) Sub(val I) I {
	return c.cell.FetchSub(val, Release)
}

// Value returns a relaxed snapshot of the count.
func (c *Count[I]) Value() I {
	return c.cell.Load(Relaxed)
}
