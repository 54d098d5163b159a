// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package casx_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"code.hybscloud.com/casx"
)

// =============================================================================
// Pointer Slot - Basic Transitions
// =============================================================================

func TestSlotClaimReleaseRoundTrip(t *testing.T) {
	var s casx.Slot[int, casx.StrictOrderings]
	if got := s.Load(); got != nil {
		t.Fatalf("zero slot: got %p, want nil", got)
	}

	p := new(int)
	occupant, err := s.TryClaim(p)
	if err != nil || occupant != nil {
		t.Fatalf("TryClaim on empty: got (%p, %v), want (nil, nil)", occupant, err)
	}
	if got := s.Load(); got != p {
		t.Fatalf("Load after claim: got %p, want %p", got, p)
	}

	freed, err := s.TryRelease()
	if err != nil {
		t.Fatalf("TryRelease: %v", err)
	}
	if freed != p {
		t.Fatalf("TryRelease: got %p, want the claimed %p", freed, p)
	}
	if got := s.Load(); got != nil {
		t.Fatalf("slot after release: got %p, want empty", got)
	}
}

func TestSlotClaimOccupied(t *testing.T) {
	var s casx.Slot[int, casx.StrictOrderings]
	x, y := new(int), new(int)

	if _, err := s.TryClaim(x); err != nil {
		t.Fatalf("TryClaim: %v", err)
	}
	occupant, err := s.TryClaim(y)
	if !errors.Is(err, casx.ErrWouldBlock) {
		t.Fatalf("TryClaim on occupied: got %v, want ErrWouldBlock", err)
	}
	if occupant != x {
		t.Fatalf("loser must learn the winner: got %p, want %p", occupant, x)
	}
	if got := s.Load(); got != x {
		t.Fatalf("occupant: got %p, want %p untouched", got, x)
	}
}

func TestSlotReleaseEmpty(t *testing.T) {
	var s casx.Slot[int, casx.StrictOrderings]
	freed, err := s.TryRelease()
	if !errors.Is(err, casx.ErrWouldBlock) {
		t.Fatalf("TryRelease on empty: got %v, want ErrWouldBlock", err)
	}
	if freed != nil {
		t.Fatalf("freed: got %p, want nil", freed)
	}
	if !casx.IsWouldBlock(err) || !casx.IsSemantic(err) || !casx.IsNonFailure(err) {
		t.Fatal("ErrWouldBlock must classify as a non-failure control flow signal")
	}
}

func TestSlotReleaseIf(t *testing.T) {
	var s casx.Slot[int, casx.StrictOrderings]
	x, y := new(int), new(int)

	// Slot went through a release/re-claim cycle after the caller last saw
	// x; the conditional release must refuse to vacate y.
	s.TryClaim(x)
	s.TryRelease()
	s.TryClaim(y)

	observed, err := s.TryReleaseIf(x)
	if !errors.Is(err, casx.ErrWouldBlock) {
		t.Fatalf("TryReleaseIf stale: got %v, want ErrWouldBlock", err)
	}
	if observed != y {
		t.Fatalf("observed: got %p, want the current occupant %p", observed, y)
	}
	if got := s.Load(); got != y {
		t.Fatalf("occupant: got %p, want %p untouched", got, y)
	}

	freed, err := s.TryReleaseIf(y)
	if err != nil || freed != y {
		t.Fatalf("TryReleaseIf current: got (%p, %v), want (%p, nil)", freed, err, y)
	}
	if got := s.Load(); got != nil {
		t.Fatalf("slot: got %p, want empty", got)
	}
}

func TestSlotNilArgumentsPanic(t *testing.T) {
	var s casx.Slot[int, casx.StrictOrderings]
	mustPanic := func(name string, f func()) {
		t.Helper()
		defer func() {
			if recover() == nil {
				t.Fatalf("%s: nil argument did not panic", name)
			}
		}()
		f()
	}
	mustPanic("TryClaim", func() { s.TryClaim(nil) })
	mustPanic("TryReleaseIf", func() { s.TryReleaseIf(nil) })
}

func TestSlotStoreAndString(t *testing.T) {
	var s casx.Slot[int, casx.StrictOrderings]
	if got := s.String(); got != "[nil]" {
		t.Fatalf("String empty: got %q, want %q", got, "[nil]")
	}

	p := new(int)
	s.Store(p)
	if got := s.Load(); got != p {
		t.Fatalf("Load after store: got %p, want %p", got, p)
	}
	if want := fmt.Sprintf("[%p]", p); s.String() != want {
		t.Fatalf("String: got %q, want %q", s.String(), want)
	}

	// Store replaces blindly, no observation of the old occupant.
	s.Store(nil)
	if got := s.Load(); got != nil {
		t.Fatalf("Load after nil store: got %p, want nil", got)
	}
}

func TestSlotOfBorrowsCell(t *testing.T) {
	var cell casx.Pointer[int]
	p := new(int)
	cell.Store(p, casx.SeqCst)

	s := casx.SlotOf[int, casx.LocksOrderings](&cell)
	if got := s.Load(); got != p {
		t.Fatalf("borrowed view: got %p, want %p", got, p)
	}
	if freed, err := s.TryRelease(); err != nil || freed != p {
		t.Fatalf("TryRelease via view: got (%p, %v), want (%p, nil)", freed, err, p)
	}
	// The transition lands in the borrowed cell, not a copy.
	if got := cell.Load(casx.SeqCst); got != nil {
		t.Fatalf("backing cell: got %p, want nil", got)
	}
	if s.Cell() != &cell {
		t.Fatal("Cell: view does not expose the borrowed cell")
	}
}

func TestSlotCustomProtocol(t *testing.T) {
	// TryOnce/TrySpin passthroughs let callers build transitions the named
	// operations don't cover, here swap-if-occupied.
	var s casx.Slot[int, casx.StrictOrderings]
	x, y := new(int), new(int)
	s.Store(x)

	r := s.TrySpin(
		func(p *int) bool { return p != nil },
		func(*int) *int { return y },
	)
	if v, ok := r.Ok(); !ok || v != y {
		t.Fatalf("TrySpin: got (%p, %v), want (%p, true)", v, ok, y)
	}

	if r := s.TryOnce(x, func(p *int) bool { return p == x }, func(*int) *int { return nil }); !r.IsContended() {
		t.Fatalf("TryOnce stale snapshot: got %v, want contended", r)
	}
}

// =============================================================================
// Pointer Slot - Concurrency
// =============================================================================

// TestSlotClaimRace runs two claimants against one empty slot. Exactly one
// must win, and the loser must observe the winner's pointer.
func TestSlotClaimRace(t *testing.T) {
	rounds := 2000
	if casx.RaceEnabled {
		rounds = 200
	}

	for range rounds {
		var s casx.Slot[int, casx.StrictOrderings]
		x, y := new(int), new(int)

		var wg sync.WaitGroup
		results := [2]*int{}
		errs := [2]error{}
		for i, p := range [2]*int{x, y} {
			wg.Add(1)
			go func() {
				defer wg.Done()
				results[i], errs[i] = s.TryClaim(p)
			}()
		}
		wg.Wait()

		switch {
		case errs[0] == nil && errs[1] == nil:
			t.Fatal("both claimants succeeded")
		case errs[0] != nil && errs[1] != nil:
			t.Fatal("both claimants failed on an empty slot")
		case errs[0] != nil:
			if results[0] != y {
				t.Fatalf("loser observed %p, want winner's %p", results[0], y)
			}
			if s.Load() != y {
				t.Fatalf("occupant: got %p, want %p", s.Load(), y)
			}
		default:
			if results[1] != x {
				t.Fatalf("loser observed %p, want winner's %p", results[1], x)
			}
			if s.Load() != x {
				t.Fatalf("occupant: got %p, want %p", s.Load(), x)
			}
		}
	}
}

// TestSlotOwnershipMutualExclusion hammers one slot from N goroutines,
// each looping claim-then-release with its own pointer. At any instant at
// most one goroutine holds ownership, so the held counter must never
// exceed one and every successful claim must release its own pointer.
func TestSlotOwnershipMutualExclusion(t *testing.T) {
	const workers = 8
	iters := 5000
	if casx.RaceEnabled {
		iters = 300
	}

	var s casx.Slot[int, casx.StrictOrderings]
	var held casx.Int64
	var claims casx.Uint64
	var wg sync.WaitGroup

	for w := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			mine := new(int)
			*mine = w
			for range iters {
				if _, err := s.TryClaim(mine); err != nil {
					continue // occupied; next round
				}
				if h := held.FetchAdd(1, casx.AcqRel) + 1; h != 1 {
					t.Errorf("holders after claim: got %d, want 1", h)
				}
				claims.FetchAdd(1, casx.SeqCst)
				held.FetchSub(1, casx.AcqRel)
				freed, err := s.TryReleaseIf(mine)
				if err != nil || freed != mine {
					t.Errorf("TryReleaseIf own pointer: got (%p, %v), want (%p, nil)", freed, err, mine)
				}
			}
		}()
	}
	wg.Wait()

	if got := s.Load(); got != nil {
		t.Fatalf("slot at quiescence: got %p, want empty", got)
	}
	if claims.Load(casx.SeqCst) == 0 {
		t.Fatal("no claim ever succeeded")
	}
}
