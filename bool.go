// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package casx

import (
	"sync/atomic"

	"code.hybscloud.com/spin"
)

// Bool is an atomic boolean cell backed by a 32-bit word holding 0 or 1.
//
// Besides the [Cell] operations it supports the bitwise fetch family, which
// on booleans reads as logical AND/OR/XOR/NAND with the stored flag.
//
// The zero Bool holds false. Bool must not be copied after first use.
type Bool struct {
	_ noCopy
	v uint32
}

var _ Bitwise[bool] = (*Bool)(nil)

func b32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// Load returns the current value.
func (c *Bool) Load(order Ordering) bool {
	return atomic.LoadUint32(&c.v) != 0
}

// Store unconditionally replaces the current value.
func (c *Bool) Store(val bool, order Ordering) {
	atomic.StoreUint32(&c.v, b32(val))
}

// Swap stores val and returns the previous value.
func (c *Bool) Swap(val bool, order Ordering) bool {
	return atomic.SwapUint32(&c.v, b32(val)) != 0
}

// CompareExchange attempts a strong CAS from current to desired.
// See [Cell] for the result contract.
func (c *Bool) CompareExchange(current, desired bool, success, failure Ordering) (bool, bool) {
	if atomic.CompareAndSwapUint32(&c.v, b32(current), b32(desired)) {
		return desired, true
	}
	return c.Load(failure), false
}

// CompareExchangeWeak attempts a weak CAS from current to desired.
// Callers must loop, per the [Cell] contract.
func (c *Bool) CompareExchangeWeak(current, desired bool, success, failure Ordering) (bool, bool) {
	return c.CompareExchange(current, desired, success, failure)
}

// FetchAnd stores the logical AND of the flag and mask, returning the
// previous value.
func (c *Bool) FetchAnd(mask bool, order Ordering) bool {
	if mask {
		return c.Load(order) // x && true == x: nothing to write
	}
	return c.Swap(false, order)
}

// FetchOr stores the logical OR of the flag and mask, returning the
// previous value. FetchOr(true) is the classic test-and-set.
func (c *Bool) FetchOr(mask bool, order Ordering) bool {
	if !mask {
		return c.Load(order)
	}
	return c.Swap(true, order)
}

// FetchXor stores the logical XOR of the flag and mask, returning the
// previous value. FetchXor(true) toggles the flag.
func (c *Bool) FetchXor(mask bool, order Ordering) bool {
	if !mask {
		return c.Load(order)
	}
	sw := spin.Wait{}
	old := c.Load(order)
	for {
		observed, ok := c.CompareExchangeWeak(old, !old, order, order)
		if ok {
			return old
		}
		old = observed
		sw.Once()
	}
}

// FetchNand stores NOT(flag AND mask), returning the previous value.
func (c *Bool) FetchNand(mask bool, order Ordering) bool {
	sw := spin.Wait{}
	old := c.Load(order)
	for {
		observed, ok := c.CompareExchangeWeak(old, !(old && mask), order, order)
		if ok {
			return old
		}
		old = observed
		sw.Once()
	}
}
