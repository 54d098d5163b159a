// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package casx

// Ordering is the memory-ordering strength requested for an atomic operation.
//
// Orderings are lower bounds: the Go backend maps every operation to
// sync/atomic, which is sequentially consistent, so an operation may be
// executed with a stronger ordering than requested but never a weaker one.
// The declared ordering still matters — it records the synchronization the
// algorithm relies on, and ports of the same algorithm to backends with true
// relaxed atomics honor it literally.
type Ordering uint8

const (
	// Relaxed imposes no synchronization, only atomicity.
	Relaxed Ordering = iota
	// Acquire makes the operation synchronize-with a Release write of the
	// same cell: no later access may be reordered before it.
	Acquire
	// Release publishes all earlier writes to Acquire readers of the same
	// cell: no earlier access may be reordered after it.
	Release
	// AcqRel combines Acquire on the read half and Release on the write
	// half of a read-modify-write operation.
	AcqRel
	// SeqCst additionally places the operation in the single global order
	// of all SeqCst operations.
	SeqCst
)

// String returns the conventional lowercase name of the ordering.
func (o Ordering) String() string {
	switch o {
	case Relaxed:
		return "relaxed"
	case Acquire:
		return "acquire"
	case Release:
		return "release"
	case AcqRel:
		return "acqrel"
	case SeqCst:
		return "seqcst"
	default:
		return "invalid"
	}
}

// Orderings is the compile-time ordering policy consumed by every
// compare-and-swap and load in this package.
//
// A policy is a stateless zero-size type selected as a generic type
// parameter, so the three strengths resolve at instantiation with no
// per-call branch. Two canonical policies ship: [StrictOrderings] and
// [LocksOrderings].
type Orderings interface {
	// Success is the ordering applied when a compare-and-swap commits.
	Success() Ordering
	// Failure is the ordering applied to the read observed by a failed
	// compare-and-swap. Must not be Release or AcqRel, and must not be
	// stronger than Success.
	Failure() Ordering
	// Load is the ordering applied by plain value loads.
	Load() Ordering
}

// StrictOrderings requests sequential consistency for every access.
//
// If you don't know which policy to use, this is the safe choice.
type StrictOrderings struct{}

func (StrictOrderings) Success() Ordering { return SeqCst }
func (StrictOrderings) Failure() Ordering { return SeqCst }
func (StrictOrderings) Load() Ordering    { return SeqCst }

// LocksOrderings is the acquire/release policy for hand-rolled spinlock and
// mutex internals, where the only synchronization needed is pairing each
// successful acquire with the previous owner's release. Sequential
// consistency would be wasted cost on such paths.
type LocksOrderings struct{}

func (LocksOrderings) Success() Ordering { return Acquire }
func (LocksOrderings) Failure() Ordering { return Relaxed }
func (LocksOrderings) Load() Ordering    { return Acquire }

// strength is the partial order used to validate a policy. Acquire and
// Release are incomparable; both rank between Relaxed and AcqRel.
func strength(o Ordering) int {
	switch o {
	case Relaxed:
		return 0
	case Acquire, Release:
		return 1
	case AcqRel:
		return 2
	default:
		return 3
	}
}

// validatePolicy panics if O breaks the compare-and-swap ordering rules:
// the failure ordering may not carry a release half and may not be stronger
// than the success ordering. Called once per wrapper construction, never on
// an operation path.
func validatePolicy[O Orderings]() {
	var o O
	fail := o.Failure()
	if fail == Release || fail == AcqRel {
		panic("casx: failure ordering cannot release")
	}
	if strength(fail) > strength(o.Success()) {
		panic("casx: failure ordering stronger than success ordering")
	}
}
