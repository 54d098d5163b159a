// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package casx_test

import (
	"sync/atomic"
	"testing"

	"code.hybscloud.com/casx"
)

// =============================================================================
// Cell Baselines (overhead vs raw sync/atomic)
// =============================================================================

func BenchmarkRawAtomicAdd(b *testing.B) {
	var v uint64
	b.ResetTimer()
	for range b.N {
		atomic.AddUint64(&v, 1)
	}
}

func BenchmarkIntFetchAdd(b *testing.B) {
	var c casx.Uint64
	b.ResetTimer()
	for range b.N {
		c.FetchAdd(1, casx.AcqRel)
	}
}

func BenchmarkIntFetchUpdate(b *testing.B) {
	var c casx.Uint64
	b.ResetTimer()
	for range b.N {
		c.FetchUpdate(casx.SeqCst, casx.SeqCst, func(v uint64) (uint64, bool) {
			return v + 1, true
		})
	}
}

// =============================================================================
// Engine and Slot
// =============================================================================

func BenchmarkTrySpinUncontended(b *testing.B) {
	var cell casx.Uint64
	f := casx.IntFlags[uint64, casx.StrictOrderings](&cell)
	expect := func(uint64) bool { return true }
	desire := func(v uint64) uint64 { return v + 1 }

	b.ResetTimer()
	for range b.N {
		f.TrySpin(expect, desire)
	}
}

func BenchmarkSlotClaimRelease(b *testing.B) {
	var s casx.Slot[int, casx.StrictOrderings]
	p := new(int)

	b.ResetTimer()
	for range b.N {
		s.TryClaim(p)
		s.TryRelease()
	}
}

func BenchmarkSlotClaimReleaseParallel(b *testing.B) {
	var s casx.Slot[int, casx.StrictOrderings]

	b.RunParallel(func(pb *testing.PB) {
		mine := new(int)
		for pb.Next() {
			if _, err := s.TryClaim(mine); err == nil {
				s.TryReleaseIf(mine)
			}
		}
	})
}

func BenchmarkCountIncDec(b *testing.B) {
	c := casx.NewCount[int64](0)
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			c.Inc()
			c.Dec()
		}
	})
}
