// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package casx

import (
	"sync/atomic"
	"unsafe"
)

// Pointer is an atomic cell holding one *T.
//
// Pointer supports only load, store, swap, and compare-exchange: raw
// pointers have no meaningful arithmetic or bitwise operations. It is the
// backing cell of [Slot], which layers the claim/release ownership protocol
// on top.
//
// The zero Pointer holds nil. Pointer must not be copied after first use.
type Pointer[T any] struct {
	_ noCopy
	p unsafe.Pointer
}

var _ Cell[*int] = (*Pointer[int])(nil)

// Load returns the current pointer.
func (c *Pointer[T]) Load(order Ordering) *T {
	return (*T)(atomic.LoadPointer(&c.p))
}

// Store unconditionally replaces the current pointer.
func (c *Pointer[T]) Store(val *T, order Ordering) {
	atomic.StorePointer(&c.p, unsafe.Pointer(val))
}

// Swap stores val and returns the previous pointer.
func (c *Pointer[T]) Swap(val *T, order Ordering) *T {
	return (*T)(atomic.SwapPointer(&c.p, unsafe.Pointer(val)))
}

// CompareExchange attempts a strong CAS from current to desired.
// Comparison is pointer identity. See [Cell] for the result contract.
func (c *Pointer[T]) CompareExchange(current, desired *T, success, failure Ordering) (*T, bool) {
	if atomic.CompareAndSwapPointer(&c.p, unsafe.Pointer(current), unsafe.Pointer(desired)) {
		return desired, true
	}
	return c.Load(failure), false
}

// CompareExchangeWeak attempts a weak CAS from current to desired.
// Callers must loop, per the [Cell] contract.
func (c *Pointer[T]) CompareExchangeWeak(current, desired *T, success, failure Ordering) (*T, bool) {
	return c.CompareExchange(current, desired, success, failure)
}
