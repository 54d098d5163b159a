// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package casx

// Cell is the capability shared by every atomic cell in this package: one
// hardware-backed storage location holding a single primitive value of
// type T, with every access parameterized by an explicit [Ordering].
//
// [Flags] accepts any Cell, so algorithms written against the spin-retry
// engine run unchanged over integer, boolean, and pointer cells — or over
// instrumented wrappers supplied by tests.
//
// All implementations in this package map to sync/atomic, so requested
// orderings are honored as lower bounds (see [Ordering]).
type Cell[T any] interface {
	// Load returns the current value using the given ordering.
	Load(order Ordering) T

	// Store unconditionally replaces the current value.
	Store(val T, order Ordering)

	// Swap stores val and returns the previous value.
	Swap(val T, order Ordering) T

	// CompareExchange stores desired if the current value equals current.
	// It returns (desired, true) on success. On failure it returns a
	// freshly observed value and false; the observed value is re-read
	// with the failure ordering and is not necessarily the exact value
	// that defeated the swap, only one that was really present in the
	// cell afterwards.
	//
	// CompareExchange never fails spuriously. Use it where the caller
	// handles exactly one contention step; spins should prefer
	// CompareExchangeWeak.
	CompareExchange(current, desired T, success, failure Ordering) (T, bool)

	// CompareExchangeWeak is CompareExchange but additionally permitted
	// to fail even when the comparand matches, which is cheaper on
	// architectures without a strong native CAS. Callers must loop and
	// must not infer from failure that the comparand was wrong.
	CompareExchangeWeak(current, desired T, success, failure Ordering) (T, bool)
}

// Bitwise is the capability of cells supporting atomic bitwise
// read-modify-write operations: integer cells and [Bool].
//
// Every operation applies the mask to the current value, stores the result,
// and returns the previous value.
type Bitwise[T any] interface {
	Cell[T]

	FetchAnd(mask T, order Ordering) T
	FetchOr(mask T, order Ordering) T
	FetchXor(mask T, order Ordering) T
	FetchNand(mask T, order Ordering) T
}

// Numeric is the capability of cells supporting atomic arithmetic:
// the integer cells.
//
// FetchAdd and FetchSub wrap around on overflow. FetchMax and FetchMin
// compare in T's own domain, so signed types compare signed.
type Numeric[T any] interface {
	Bitwise[T]

	FetchAdd(delta T, order Ordering) T
	FetchSub(delta T, order Ordering) T
	FetchMax(val T, order Ordering) T
	FetchMin(val T, order Ordering) T

	// FetchUpdate loads the current value with fetchOrder, applies f, and
	// attempts to store the result with setOrder, retrying the whole step
	// while the CAS loses races. It returns (previous, true) once a store
	// commits, or (previous, false) as soon as f declines by returning
	// false.
	//
	// The two-way result deliberately folds every non-success into false:
	// unlike [Outcome], it cannot distinguish "f declined" from anything
	// else, because contention is retried internally and decline is the
	// only terminal failure. Callers needing the three-way classification
	// use [Flags.TryOnce] instead.
	FetchUpdate(fetchOrder, setOrder Ordering, f func(T) (T, bool)) (T, bool)
}

// noCopy triggers go vet's copylocks check when a cell is copied by value
// after first use.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
