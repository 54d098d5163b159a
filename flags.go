// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package casx

import "code.hybscloud.com/spin"

// Flags is the spin-retry engine: it turns a predicate/transform pair into
// a correctly ordered optimistic-retry protocol over any [Cell].
//
// Flags borrows the cell it operates on; the cell's true owner must outlive
// every Flags referencing it (trivially satisfied under Go's GC). The
// ordering policy O governs every load and compare-and-swap the engine
// performs.
//
// The predicate and transform supplied to TryOnce and TrySpin may be
// re-evaluated on stale snapshots and therefore must be pure: side effects
// other than computing on the single input value void the correctness
// guarantees, and nothing checks this at runtime.
//
// Create Flags with [NewFlags] or a per-cell helper; the zero Flags has no
// cell.
type Flags[T comparable, C Cell[T], O Orderings] struct {
	cell C
}

// NewFlags wraps cell in a spin-retry engine governed by policy O.
// Panics if O violates the compare-and-swap ordering rules.
func NewFlags[T comparable, C Cell[T], O Orderings](cell C) Flags[T, C, O] {
	validatePolicy[O]()
	return Flags[T, C, O]{cell: cell}
}

// IntFlags wraps an integer cell. Shorthand for [NewFlags] that spares the
// caller spelling the cell type parameter.
func IntFlags[I IntValue, O Orderings](cell *Int[I]) Flags[I, *Int[I], O] {
	return NewFlags[I, *Int[I], O](cell)
}

// BoolFlags wraps a boolean cell.
func BoolFlags[O Orderings](cell *Bool) Flags[bool, *Bool, O] {
	return NewFlags[bool, *Bool, O](cell)
}

// PointerFlags wraps a pointer cell. [Slot] offers the higher-level
// claim/release protocol over the same cell.
func PointerFlags[T any, O Orderings](cell *Pointer[T]) Flags[*T, *Pointer[T], O] {
	return NewFlags[*T, *Pointer[T], O](cell)
}

// Cell returns the wrapped cell.
func (f Flags[T, C, O]) Cell() C {
	return f.cell
}

// Value loads the current value with the policy's load ordering.
func (f Flags[T, C, O]) Value() T {
	var o O
	return f.cell.Load(o.Load())
}

// TryOnce performs at most one guarded weak compare-and-swap against a
// value the caller has already observed.
//
// If expect(current) is false, TryOnce returns Rejected(current) without
// touching the cell. Otherwise it computes desire(current) and attempts one
// weak CAS from current to it, returning Succeeded(desired) if the swap
// committed or Contended(observed) if it lost — where "lost" includes
// spurious weak-CAS failure, so a Contended result does not prove the
// comparand was wrong.
func (f Flags[T, C, O]) TryOnce(current T, expect func(T) bool, desire func(T) T) Outcome[T] {
	if !expect(current) {
		return rejected(current)
	}
	var o O
	desired := desire(current)
	observed, ok := f.cell.CompareExchangeWeak(current, desired, o.Success(), o.Failure())
	if ok {
		return succeeded(desired)
	}
	return contended(observed)
}

// TrySpin retries TryOnce until the predicate rejects the observed value
// or a swap commits; it never returns Contended. Each iteration feeds the
// value observed by the failed attempt back in as the new snapshot, so the
// closures only ever see values that were really present in the cell.
//
// Termination is not guaranteed under adversarial scheduling, but every
// failed attempt means another thread committed a change, so the system as
// a whole stays lock-free. Callers needing bounded spinning must impose
// their own cap or backoff around this call; none is built in.
func (f Flags[T, C, O]) TrySpin(expect func(T) bool, desire func(T) T) Outcome[T] {
	var o O
	sw := spin.Wait{}
	current := f.cell.Load(o.Load())
	for {
		r := f.TryOnce(current, expect, desire)
		if !r.IsContended() {
			return r
		}
		current = r.Value()
		sw.Once()
	}
}
