// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package casx is a toolkit for building lock-free algorithms on hardware
// compare-and-swap.
//
// The package has three layers:
//
//   - Atomic cells ([Int], [Bool], [Pointer]): a uniform abstraction over
//     native atomic storage of varying width, with every access
//     parameterized by an explicit memory [Ordering].
//   - The spin-retry engine ([Flags]): turns a predicate/transform pair
//     into a correctly ordered optimistic-retry loop over weak CAS,
//     classifying every attempt with a three-way [Outcome].
//   - The pointer [Slot]: a single nil/non-nil ownership location with
//     claim, release, and conditional-release transitions — the primitive
//     under once-initialized shared state and single-owner handoff.
//
// # Quick Start
//
// Once-style initialization, where the loser of the race discovers the
// winner's value:
//
//	var slot casx.Slot[Config, casx.StrictOrderings]
//
//	cfg := loadConfig()
//	if winner, err := slot.TryClaim(cfg); err != nil {
//	    cfg = winner // someone beat us to it; use theirs
//	}
//
// A custom retry protocol over any cell:
//
//	var word casx.Uint64
//	f := casx.IntFlags[uint64, casx.StrictOrderings](&word)
//
//	// Set the low bit only while the high bits are zero.
//	r := f.TrySpin(
//	    func(v uint64) bool { return v>>32 == 0 },
//	    func(v uint64) uint64 { return v | 1 },
//	)
//	if v, ok := r.Ok(); ok {
//	    _ = v // v is the stored value
//	}
//
// # Ordering Policies
//
// Every load and compare-and-swap is governed by a policy chosen at the
// type level: [StrictOrderings] (sequentially consistent, the default
// choice) or [LocksOrderings] (acquire/release, for spinlock and mutex
// internals where pairing with the previous owner's release suffices).
// The policy is a zero-size type parameter, so selection costs nothing at
// run time. On the Go backend all operations map to sync/atomic and the
// declared orderings are lower bounds; see [Ordering].
//
// # Outcome Classification
//
// A plain CAS failure conflates "the value wasn't what the algorithm
// expected" with "a concurrent writer won the race". [Outcome] keeps the
// two apart: Rejected means the precondition for progress is gone and
// spinning is pointless, Contended means only the snapshot went stale and
// an immediate retry is right. [Flags.TrySpin] retries exactly the
// Contended case and surfaces the rest.
//
// # Progress and Blocking
//
// Nothing here blocks in the OS sense and nothing spawns or parks a
// thread. TrySpin busy-retries, so the guarantee is lock-free, not
// wait-free: one caller can lose every race, but each loss means another
// caller committed. There is no built-in timeout, retry cap, or backoff —
// bounding the spin is orthogonal to CAS correctness and belongs to the
// caller. Under a cooperative scheduler do not spin while holding the only
// thread of execution.
//
// Slot transitions that cannot proceed return [ErrWouldBlock], a control
// flow signal shared with the rest of the ecosystem via iox:
//
//	if prev, err := slot.TryRelease(); casx.IsWouldBlock(err) {
//	    // already empty
//	} else {
//	    recycle(prev)
//	}
//
// # Caller Contract
//
// Predicates and transforms passed to TryOnce and TrySpin may be evaluated
// multiple times on stale snapshots. They must be pure functions of their
// single input value; this is documented, not checked.
package casx
