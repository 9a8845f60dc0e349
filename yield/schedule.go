// Copyright (C) 2026, CloudWalk, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package yield

// Resolve determines the phase of an account anchored at anchor, observed
// at ref, and the timestamps of the upcoming phase transitions. The phase
// boundary itself belongs to the lock sub-interval: an account exactly
// LockDuration past its anchor is still locked.
//
// For every schedule with UnlockDuration > 0 the returned values satisfy
// phase == PhaseLocked iff nextLockAt > nextUnlockAt.
func (s Schedule) Resolve(anchor, ref uint64) (nextLockAt, nextUnlockAt uint64, phase Phase, err error) {
	if ref < anchor {
		return 0, 0, PhaseLocked, ErrInvalidTimeRange
	}

	period := s.Period()
	elapsed := ref - anchor
	cycles := elapsed / period
	position := elapsed % period

	nextLockAt = anchor + (cycles+1)*period
	if position <= s.LockDuration {
		phase = PhaseLocked
		nextUnlockAt = nextLockAt - s.UnlockDuration
	} else {
		phase = PhaseUnlocked
		nextUnlockAt = nextLockAt + s.LockDuration
	}
	return nextLockAt, nextUnlockAt, phase, nil
}

// Split partitions the elapsed duration between anchor and ref into the
// portion spent in lock sub-intervals and the portion spent in unlock
// sub-intervals. The two always sum to exactly ref-anchor.
func (s Schedule) Split(anchor, ref uint64) (lock, unlock uint64, err error) {
	if ref < anchor {
		return 0, 0, ErrInvalidTimeRange
	}

	period := s.Period()
	elapsed := ref - anchor
	cycles := elapsed / period
	position := elapsed % period

	lock = cycles * s.LockDuration
	unlock = cycles * s.UnlockDuration
	if position <= s.LockDuration {
		lock += position
	} else {
		lock += s.LockDuration
		unlock += position - s.LockDuration
	}
	return lock, unlock, nil
}
