// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package casx

import "code.hybscloud.com/iox"

// ErrWouldBlock indicates a slot transition cannot proceed against the
// current occupant.
//
// For TryClaim: the slot is already occupied.
// For TryRelease / TryReleaseIf: the slot is empty, or held by someone else.
//
// ErrWouldBlock is a control flow signal, not a failure: the precondition
// for the transition is gone right now, and whether to retry once the
// occupant changes is the caller's policy. Contention, by contrast, never
// surfaces as an error — the spin engine retries it internally.
//
// This is an alias for [iox.ErrWouldBlock] for ecosystem consistency.
var ErrWouldBlock = iox.ErrWouldBlock

// IsWouldBlock reports whether err indicates the operation would block.
// Delegates to [iox.IsWouldBlock] for wrapped error support.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control flow signal (not a failure).
// Delegates to [iox.IsSemantic].
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

// IsNonFailure reports whether err represents a non-failure condition.
// Delegates to [iox.IsNonFailure].
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err)
}
