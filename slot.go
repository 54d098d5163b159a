// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package casx

import (
	"fmt"
	"unsafe"

	"code.hybscloud.com/spin"
)

// Slot is a single atomic pointer location modeling optional ownership:
// nil means empty, non-nil means occupied by exactly one logical owner
// (though concurrently readable by anyone).
//
// Slot is the building block of lock-free publish/retract protocols —
// once-initialized shared state, single-owner handoff, claim-based
// resource slots. All transitions go through the spin-retry engine with
// pointer-specific predicate/transform pairs, so each named operation
// terminates: its predicate is a test on the present value alone, and the
// predicate flips only when other threads commit real changes.
//
// The zero Slot is an empty slot ready to use. The ordering policy O
// governs every access; use [SlotOf] to drive a [Pointer] cell owned
// elsewhere.
type Slot[T any, O Orderings] struct {
	cell Pointer[T]
}

// NewSlot returns an empty slot. Panics if O violates the compare-and-swap
// ordering rules.
func NewSlot[T any, O Orderings]() *Slot[T, O] {
	validatePolicy[O]()
	return &Slot[T, O]{}
}

// SlotOf returns a slot view over a pointer cell owned elsewhere. The cell
// must outlive the returned slot. Panics if O violates the
// compare-and-swap ordering rules.
func SlotOf[T any, O Orderings](cell *Pointer[T]) *Slot[T, O] {
	validatePolicy[O]()
	// A Slot is exactly its cell, so the borrowed view is a reinterpret
	// of the same word.
	return (*Slot[T, O])(unsafe.Pointer(cell))
}

// Cell returns the underlying pointer cell.
func (s *Slot[T, O]) Cell() *Pointer[T] {
	return &s.cell
}

func (s *Slot[T, O]) flags() Flags[*T, *Pointer[T], O] {
	return Flags[*T, *Pointer[T], O]{cell: &s.cell}
}

// Load returns the current occupant, or nil when the slot is empty,
// using the policy's load ordering.
func (s *Slot[T, O]) Load() *T {
	var o O
	return s.cell.Load(o.Load())
}

// Store unconditionally publishes p, replacing any occupant without
// observing it. Prefer the conditional transitions when the caller does
// not hold exclusive write rights.
func (s *Slot[T, O]) Store(p *T) {
	var o O
	s.cell.Store(p, o.Success())
}

// TryOnce exposes the engine's single guarded attempt for custom pointer
// protocols. See [Flags.TryOnce].
func (s *Slot[T, O]) TryOnce(current *T, expect func(*T) bool, desire func(*T) *T) Outcome[*T] {
	return s.flags().TryOnce(current, expect, desire)
}

// TrySpin exposes the engine's spin loop for custom pointer protocols.
// See [Flags.TrySpin].
func (s *Slot[T, O]) TrySpin(expect func(*T) bool, desire func(*T) *T) Outcome[*T] {
	return s.flags().TrySpin(expect, desire)
}

// TryClaim transitions the slot from empty to owning p.
//
// On success it returns (nil, nil): the slot was empty and now holds p. If
// the slot is already occupied it returns the occupant and ErrWouldBlock —
// in a once-style initialization race the loser learns the winner's value.
//
// Panics if p is nil: a nil claim would be indistinguishable from an empty
// slot.
func (s *Slot[T, O]) TryClaim(p *T) (*T, error) {
	if p == nil {
		panic("casx: claiming nil")
	}
	r := s.TrySpin(
		func(x *T) bool { return x == nil },
		func(*T) *T { return p },
	)
	if r.IsSucceeded() {
		return nil, nil
	}
	return r.Value(), ErrWouldBlock
}

// TryRelease transitions the slot from occupied to empty, regardless of
// who the occupant is, and returns the freed occupant. If the slot is
// already empty it returns (nil, ErrWouldBlock).
//
// Blind release is only safe for a caller holding exclusive release
// rights; anyone else must use [Slot.TryReleaseIf] to avoid vacating an
// occupant installed after the caller's last observation.
func (s *Slot[T, O]) TryRelease() (*T, error) {
	return s.releaseWhere(func(x *T) bool { return x != nil })
}

// TryReleaseIf transitions the slot from owning exactly expected (pointer
// identity) to empty, returning expected. If the current occupant differs —
// including when the slot was released and re-claimed with another value
// since the caller's read — it returns the observed value and
// ErrWouldBlock, and the slot is left untouched.
//
// Panics if expected is nil; releasing an empty slot is not a transition.
func (s *Slot[T, O]) TryReleaseIf(expected *T) (*T, error) {
	if expected == nil {
		panic("casx: expected occupant is nil")
	}
	return s.releaseWhere(func(x *T) bool { return x == expected })
}

// releaseWhere spins a nil-producing transform under expect, tracking the
// snapshot across contended attempts so the freed occupant can be
// returned. Equivalent to a TrySpin but without routing the previous value
// through the transform closure, which must stay pure.
func (s *Slot[T, O]) releaseWhere(expect func(*T) bool) (*T, error) {
	var o O
	sw := spin.Wait{}
	f := s.flags()
	desire := func(*T) *T { return nil }
	current := s.cell.Load(o.Load())
	for {
		r := f.TryOnce(current, expect, desire)
		if r.IsSucceeded() {
			return current, nil
		}
		if r.IsRejected() {
			return r.Value(), ErrWouldBlock
		}
		current = r.Value()
		sw.Once()
	}
}

// String formats the slot as "[0x...]" or "[nil]" for debugging.
func (s *Slot[T, O]) String() string {
	if p := s.Load(); p != nil {
		return fmt.Sprintf("[%p]", p)
	}
	return "[nil]"
}
