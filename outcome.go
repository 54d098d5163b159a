// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package casx

// outcomeTag discriminates the three ways a guarded compare-and-swap
// attempt can end.
type outcomeTag uint8

const (
	outcomeSucceeded outcomeTag = iota
	outcomeContended
	outcomeRejected
)

// Outcome is the three-way result of one guarded compare-and-swap attempt.
//
// A plain compare-and-swap conflates two very different failures: "I refused
// to touch the cell because its value wasn't what the algorithm expected"
// and "I tried, and a concurrent writer beat me to it". Outcome keeps them
// apart so callers can pick a different policy for each — give up when the
// precondition for progress is gone, retry immediately when only the
// snapshot went stale.
//
// The carried value depends on the tag:
//
//   - Succeeded: the value now stored in the cell (the transform's output)
//   - Contended: a value observed in the cell after the lost race
//   - Rejected: the value that failed the predicate; no CAS was attempted
type Outcome[T any] struct {
	value T
	tag   outcomeTag
}

func succeeded[T any](v T) Outcome[T] { return Outcome[T]{value: v, tag: outcomeSucceeded} }
func contended[T any](v T) Outcome[T] { return Outcome[T]{value: v, tag: outcomeContended} }
func rejected[T any](v T) Outcome[T]  { return Outcome[T]{value: v, tag: outcomeRejected} }

// IsSucceeded reports whether the attempt updated the cell.
func (o Outcome[T]) IsSucceeded() bool { return o.tag == outcomeSucceeded }

// IsContended reports whether the attempt raced a concurrent writer and
// lost. The precondition may still hold; callers typically retry with the
// carried value as the new snapshot.
func (o Outcome[T]) IsContended() bool { return o.tag == outcomeContended }

// IsRejected reports whether the predicate refused the observed value
// before any hardware CAS was attempted.
func (o Outcome[T]) IsRejected() bool { return o.tag == outcomeRejected }

// Value returns the carried value regardless of tag.
func (o Outcome[T]) Value() T { return o.value }

// Succeeded returns the stored value and true when the attempt committed.
func (o Outcome[T]) Succeeded() (T, bool) {
	return o.value, o.tag == outcomeSucceeded
}

// Contended returns the observed value and true when the attempt lost a
// race.
func (o Outcome[T]) Contended() (T, bool) {
	return o.value, o.tag == outcomeContended
}

// Rejected returns the refused value and true when the predicate declined.
func (o Outcome[T]) Rejected() (T, bool) {
	return o.value, o.tag == outcomeRejected
}

// Ok narrows the outcome to a binary result.
//
// This narrowing is lossy: Contended and Rejected both collapse to false,
// discarding the distinction that is this type's main value. Use it only
// after a spin (which never surfaces Contended) or where the caller
// genuinely does not care why the attempt did not commit.
func (o Outcome[T]) Ok() (T, bool) {
	return o.value, o.tag == outcomeSucceeded
}

// String returns the tag name for debugging.
func (o Outcome[T]) String() string {
	switch o.tag {
	case outcomeSucceeded:
		return "succeeded"
	case outcomeContended:
		return "contended"
	default:
		return "rejected"
	}
}
