// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package casx

import (
	"sync/atomic"
	"unsafe"

	"code.hybscloud.com/spin"
)

// IntValue is the set of integer types Go can back with a native atomic
// word. 8- and 16-bit widths are excluded: the runtime exposes no sub-word
// atomics, and emulating them with a shifted 32-bit CAS would break the
// one-hardware-instruction contract of the fetch operations.
type IntValue interface {
	~int32 | ~uint32 | ~int64 | ~uint64 | ~int | ~uint | ~uintptr
}

// Int is an atomic cell holding one integer of type I.
//
// One generic implementation serves every width: each method dispatches on
// unsafe.Sizeof, which is an instantiation-time constant, so the unused
// branch is dead code. The zero Int holds zero and is ready to use.
//
// An Int holding a 64-bit type must be 64-bit aligned; on 32-bit hosts keep
// it first in its struct or allocate it directly.
//
// Int must not be copied after first use.
type Int[I IntValue] struct {
	_ noCopy
	v I
}

// Compile-time capability checks for both widths.
var (
	_ Numeric[int32]   = (*Int[int32])(nil)
	_ Numeric[uint64]  = (*Int[uint64])(nil)
	_ Numeric[uintptr] = (*Int[uintptr])(nil)
)

// Int32 through UintptrCell are the concrete cells consumers normally name.
type (
	Int32   = Int[int32]
	Uint32  = Int[uint32]
	Int64   = Int[int64]
	Uint64  = Int[uint64]
	IntCell = Int[int]
	Uintptr = Int[uintptr]
)

func (c *Int[I]) u32() *uint32 { return (*uint32)(unsafe.Pointer(&c.v)) }
func (c *Int[I]) u64() *uint64 { return (*uint64)(unsafe.Pointer(&c.v)) }

// Load returns the current value.
func (c *Int[I]) Load(order Ordering) I {
	if unsafe.Sizeof(c.v) == 4 {
		return I(atomic.LoadUint32(c.u32()))
	}
	return I(atomic.LoadUint64(c.u64()))
}

// Store unconditionally replaces the current value.
func (c *Int[I]) Store(val I, order Ordering) {
	if unsafe.Sizeof(c.v) == 4 {
		atomic.StoreUint32(c.u32(), uint32(val))
		return
	}
	atomic.StoreUint64(c.u64(), uint64(val))
}

// Swap stores val and returns the previous value.
func (c *Int[I]) Swap(val I, order Ordering) I {
	if unsafe.Sizeof(c.v) == 4 {
		return I(atomic.SwapUint32(c.u32(), uint32(val)))
	}
	return I(atomic.SwapUint64(c.u64(), uint64(val)))
}

// CompareExchange attempts a strong CAS from current to desired.
// See [Cell] for the result contract.
func (c *Int[I]) CompareExchange(current, desired I, success, failure Ordering) (I, bool) {
	if unsafe.Sizeof(c.v) == 4 {
		if atomic.CompareAndSwapUint32(c.u32(), uint32(current), uint32(desired)) {
			return desired, true
		}
	} else {
		if atomic.CompareAndSwapUint64(c.u64(), uint64(current), uint64(desired)) {
			return desired, true
		}
	}
	return c.Load(failure), false
}

// CompareExchangeWeak attempts a weak CAS from current to desired.
// A strong CAS is a valid weak CAS, so this delegates to CompareExchange;
// callers must still loop, per the [Cell] contract.
func (c *Int[I]) CompareExchangeWeak(current, desired I, success, failure Ordering) (I, bool) {
	return c.CompareExchange(current, desired, success, failure)
}

// FetchAdd atomically adds delta and returns the previous value,
// wrapping on overflow.
func (c *Int[I]) FetchAdd(delta I, order Ordering) I {
	if unsafe.Sizeof(c.v) == 4 {
		return I(atomic.AddUint32(c.u32(), uint32(delta))) - delta
	}
	return I(atomic.AddUint64(c.u64(), uint64(delta))) - delta
}

// FetchSub atomically subtracts delta and returns the previous value,
// wrapping on overflow.
func (c *Int[I]) FetchSub(delta I, order Ordering) I {
	return c.FetchAdd(-delta, order)
}

// FetchAnd atomically applies bitwise AND and returns the previous value.
func (c *Int[I]) FetchAnd(mask I, order Ordering) I {
	if unsafe.Sizeof(c.v) == 4 {
		return I(atomic.AndUint32(c.u32(), uint32(mask)))
	}
	return I(atomic.AndUint64(c.u64(), uint64(mask)))
}

// FetchOr atomically applies bitwise OR and returns the previous value.
func (c *Int[I]) FetchOr(mask I, order Ordering) I {
	if unsafe.Sizeof(c.v) == 4 {
		return I(atomic.OrUint32(c.u32(), uint32(mask)))
	}
	return I(atomic.OrUint64(c.u64(), uint64(mask)))
}

// FetchXor atomically applies bitwise XOR and returns the previous value.
// No native XOR exists, so this is a CAS loop.
func (c *Int[I]) FetchXor(mask I, order Ordering) I {
	return c.rmw(order, func(old I) I { return old ^ mask })
}

// FetchNand atomically applies bitwise NAND and returns the previous value.
func (c *Int[I]) FetchNand(mask I, order Ordering) I {
	return c.rmw(order, func(old I) I { return ^(old & mask) })
}

// FetchMax atomically stores the maximum of the current value and val,
// returning the previous value.
func (c *Int[I]) FetchMax(val I, order Ordering) I {
	return c.rmw(order, func(old I) I {
		if old > val {
			return old
		}
		return val
	})
}

// FetchMin atomically stores the minimum of the current value and val,
// returning the previous value.
func (c *Int[I]) FetchMin(val I, order Ordering) I {
	return c.rmw(order, func(old I) I {
		if old < val {
			return old
		}
		return val
	})
}

// rmw is the CAS loop behind the read-modify-write operations that have no
// native instruction. Each failed attempt re-reads, so the loop is
// lock-free: losing means another thread committed.
func (c *Int[I]) rmw(order Ordering, f func(I) I) I {
	sw := spin.Wait{}
	old := c.Load(order)
	for {
		observed, ok := c.CompareExchangeWeak(old, f(old), order, order)
		if ok {
			return old
		}
		old = observed
		sw.Once()
	}
}

// FetchUpdate loads with fetchOrder, applies f, and stores the result with
// setOrder, retrying internally while the CAS loses races. It returns
// (previous, true) once a store commits, or (previous, false) as soon as f
// declines. See [Numeric] for the result-narrowing contract.
func (c *Int[I]) FetchUpdate(fetchOrder, setOrder Ordering, f func(I) (I, bool)) (I, bool) {
	sw := spin.Wait{}
	prev := c.Load(fetchOrder)
	for {
		next, ok := f(prev)
		if !ok {
			return prev, false
		}
		observed, ok := c.CompareExchangeWeak(prev, next, setOrder, fetchOrder)
		if ok {
			return prev, true
		}
		prev = observed
		sw.Once()
	}
}
